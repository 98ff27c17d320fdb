package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recordhub/internal/model"
	"recordhub/internal/repository"
	"recordhub/internal/testutil"
	"recordhub/internal/validation"
)

type recordingPublisher struct {
	mu      sync.Mutex
	entries []model.ActivityEntry
	err     error
}

func (p *recordingPublisher) Publish(_ context.Context, entry model.ActivityEntry) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.entries = append(p.entries, entry)
	return nil
}

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.entries))
	for _, e := range p.entries {
		out = append(out, e.Kind+":"+e.Action)
	}
	return out
}

func newGameService(t *testing.T) (*GameService, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	return NewGameService(repository.NewGameRepository(testutil.NewDB(t)), pub, nil), pub
}

func chessFields() validation.Fields {
	return validation.Fields{"name": "Chess", "studio": "Indie", "genre": "Strategy", "review": "positive"}
}

func TestGameService_CreateThenList(t *testing.T) {
	svc, pub := newGameService(t)
	ctx := context.Background()

	game, err := svc.Create(ctx, chessFields())
	require.NoError(t, err)
	assert.NotZero(t, game.ID)

	games, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, game.ID, games[0].ID)
	assert.Equal(t, "Chess", games[0].Name)
	assert.Equal(t, "Indie", games[0].Studio)
	assert.Equal(t, "Strategy", games[0].Genre)
	assert.Equal(t, "positive", games[0].Review)
	assert.Equal(t, []string{"game:created"}, pub.actions())
}

func TestGameService_CreateEmptyNameFailsOnNameOnly(t *testing.T) {
	svc, pub := newGameService(t)
	ctx := context.Background()

	in := chessFields()
	in["name"] = ""
	_, err := svc.Create(ctx, in)

	require.ErrorIs(t, err, validation.ErrValidationFailed)
	fields, ok := validation.FromError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"name"}, keys(fields))

	games, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, games)
	assert.Empty(t, pub.actions())
}

func TestGameService_CreateIgnoresUnknownFields(t *testing.T) {
	svc, _ := newGameService(t)
	in := chessFields()
	in["id"] = float64(999)
	in["created_at"] = "1999-01-01"

	game, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.NotEqual(t, uint(999), game.ID)
	assert.NotEqual(t, 1999, game.CreatedAt.Year())
}

func TestGameService_UpdateMissingIsNotFound(t *testing.T) {
	svc, _ := newGameService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, 42, chessFields())
	assert.ErrorIs(t, err, ErrNotFound)

	// NotFound wins over validation, like route model binding.
	_, err = svc.Update(ctx, 42, validation.Fields{})
	assert.ErrorIs(t, err, ErrNotFound)

	games, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestGameService_UpdateInvalidLeavesRecord(t *testing.T) {
	svc, _ := newGameService(t)
	ctx := context.Background()
	game, err := svc.Create(ctx, chessFields())
	require.NoError(t, err)

	_, err = svc.Update(ctx, game.ID, validation.Fields{"name": "Renamed", "review": "great"})
	require.ErrorIs(t, err, validation.ErrValidationFailed)

	stored, err := svc.Get(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, "Chess", stored.Name)
}

func TestGameService_IdenticalUpdateIsNoOp(t *testing.T) {
	svc, pub := newGameService(t)
	ctx := context.Background()
	game, err := svc.Create(ctx, chessFields())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, game.ID, chessFields())
	require.NoError(t, err)
	assert.Equal(t, game.ID, updated.ID)
	assert.Equal(t, game.Name, updated.Name)
	assert.Equal(t, game.Studio, updated.Studio)
	assert.Equal(t, game.Genre, updated.Genre)
	assert.Equal(t, game.Review, updated.Review)
	assert.Equal(t, []string{"game:created", "game:updated"}, pub.actions())
}

func TestGameService_DeleteTwice(t *testing.T) {
	svc, _ := newGameService(t)
	ctx := context.Background()
	game, err := svc.Create(ctx, chessFields())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, game.ID))
	games, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, games)

	assert.ErrorIs(t, svc.Delete(ctx, game.ID), ErrNotFound)
	_, err = svc.Get(ctx, game.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGameService_PublishFailureDoesNotFailWrite(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := NewGameService(repository.NewGameRepository(testutil.NewDB(t)), pub, nil)

	game, err := svc.Create(context.Background(), chessFields())
	require.NoError(t, err)
	assert.NotZero(t, game.ID)
}

func TestGameService_ActorTravelsInContext(t *testing.T) {
	svc, pub := newGameService(t)
	_, err := svc.Create(WithActor(context.Background(), 5), chessFields())
	require.NoError(t, err)
	require.Len(t, pub.entries, 1)
	assert.Equal(t, uint(5), pub.entries[0].ActorID)
}

func TestMayorService_NegativeAge(t *testing.T) {
	svc := NewMayorService(repository.NewMayorRepository(testutil.NewDB(t)), nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, validation.Fields{"name": "Jane", "age": -1, "address": "1 Main St", "city": "Springfield"})
	fields, ok := validation.FromError(err)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"age": "The age field must be at least 0."}, map[string]string(fields))

	mayors, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, mayors)
}

func TestMayorService_Lifecycle(t *testing.T) {
	svc := NewMayorService(repository.NewMayorRepository(testutil.NewDB(t)), nil, nil)
	ctx := context.Background()

	mayor, err := svc.Create(ctx, validation.Fields{"name": "Jane", "age": "48", "address": "1 Main St", "city": "Springfield"})
	require.NoError(t, err)
	assert.Equal(t, 48, mayor.Age)

	updated, err := svc.Update(ctx, mayor.ID, validation.Fields{"name": "Jane", "age": float64(49), "address": "2 Main St", "city": "Springfield"})
	require.NoError(t, err)
	assert.Equal(t, 49, updated.Age)
	assert.Equal(t, "2 Main St", updated.Address)

	require.NoError(t, svc.Delete(ctx, mayor.ID))
	assert.ErrorIs(t, svc.Delete(ctx, mayor.ID), ErrNotFound)
	_, err = svc.Update(ctx, mayor.ID, validation.Fields{"name": "Jane", "age": 1, "address": "x", "city": "y"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMayorService_MissingFieldsNamedExactly(t *testing.T) {
	svc := NewMayorService(repository.NewMayorRepository(testutil.NewDB(t)), nil, nil)

	_, err := svc.Create(context.Background(), validation.Fields{"name": "Jane", "age": 3})
	fields, ok := validation.FromError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"address", "city"}, keys(fields))
}

func keys(errs validation.Errors) []string {
	out := make([]string, 0, len(errs))
	for _, name := range []string{"name", "studio", "genre", "review", "age", "address", "city", "message"} {
		if _, ok := errs[name]; ok {
			out = append(out, name)
		}
	}
	return out
}
