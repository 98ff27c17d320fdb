package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recordhub/internal/model"
	"recordhub/internal/testutil"
)

func TestChirpRepository_CreateLoadsAuthor(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "Ada", "ada@example.com")
	repo := NewChirpRepository(db)

	chirp := &model.Chirp{UserID: user.ID, Message: "hello"}
	require.NoError(t, repo.Create(context.Background(), chirp))

	require.NotNil(t, chirp.User)
	assert.Equal(t, "Ada", chirp.User.Name)
	assert.Empty(t, chirp.User.Email, "only id and name are loaded")
}

func TestChirpRepository_ListLatestNewestFirst(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "Ada", "ada@example.com")
	repo := NewChirpRepository(db)
	ctx := context.Background()

	base := time.Date(2024, 9, 22, 9, 0, 0, 0, time.UTC)
	for i, msg := range []string{"first", "second", "third"} {
		chirp := &model.Chirp{UserID: user.ID, Message: msg, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, repo.Create(ctx, chirp))
	}

	chirps, err := repo.ListLatest(ctx)
	require.NoError(t, err)
	require.Len(t, chirps, 3)
	assert.Equal(t, []string{"third", "second", "first"}, []string{chirps[0].Message, chirps[1].Message, chirps[2].Message})
	assert.Equal(t, "Ada", chirps[0].User.Name)
}

func TestChirpRepository_UpdateMessageKeepsOwner(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "Ada", "ada@example.com")
	repo := NewChirpRepository(db)
	ctx := context.Background()

	chirp := &model.Chirp{UserID: user.ID, Message: "hello"}
	require.NoError(t, repo.Create(ctx, chirp))

	updated, err := repo.UpdateMessage(ctx, chirp.ID, "hello again")
	require.NoError(t, err)
	assert.Equal(t, "hello again", updated.Message)
	assert.Equal(t, user.ID, updated.UserID)

	missing, err := repo.UpdateMessage(ctx, chirp.ID+1, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestChirpRepository_RejectsUnknownUser(t *testing.T) {
	repo := NewChirpRepository(testutil.NewDB(t))
	err := repo.Create(context.Background(), &model.Chirp{UserID: 404, Message: "orphan"})
	assert.Error(t, err)
}

func TestUserRepository_DeleteCascadesToChirps(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	ada := testutil.CreateUser(t, db, "Ada", "ada@example.com")
	bob := testutil.CreateUser(t, db, "Bob", "bob@example.com")
	chirps := NewChirpRepository(db)
	require.NoError(t, chirps.Create(ctx, &model.Chirp{UserID: ada.ID, Message: "mine"}))
	require.NoError(t, chirps.Create(ctx, &model.Chirp{UserID: bob.ID, Message: "his"}))

	removed, err := NewUserRepository(db).Delete(ctx, ada.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	count, err := chirps.CountByUserID(ctx, ada.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	remaining, err := chirps.ListLatest(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "his", remaining[0].Message)
}

func TestUserRepository_Lookups(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	user := &model.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))

	byEmail, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	none, err := repo.GetByID(ctx, user.ID+10)
	require.NoError(t, err)
	assert.Nil(t, none)

	assert.Error(t, repo.Create(ctx, &model.User{Name: "Dup", Email: "ada@example.com", PasswordHash: "x"}))
}

func TestActivityRepository_ListByRecord(t *testing.T) {
	repo := NewActivityRepository(testutil.NewDB(t))
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, &model.ActivityEntry{Kind: "game", RecordID: 1, Action: model.ActionCreated, OccurredAt: now}))
	require.NoError(t, repo.Create(ctx, &model.ActivityEntry{Kind: "game", RecordID: 1, Action: model.ActionDeleted, OccurredAt: now.Add(time.Second)}))
	require.NoError(t, repo.Create(ctx, &model.ActivityEntry{Kind: "mayor", RecordID: 1, Action: model.ActionCreated, OccurredAt: now}))

	entries, err := repo.ListByRecord(ctx, "game", 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, model.ActionCreated, entries[0].Action)
	assert.Equal(t, model.ActionDeleted, entries[1].Action)
}
