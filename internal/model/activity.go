package model

import "time"

const (
	KindGame  = "game"
	KindMayor = "mayor"
	KindChirp = "chirp"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ActivityEntry records one committed write against a resource. It is also
// the payload published to the activity queue.
type ActivityEntry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Kind       string    `gorm:"size:16;not null;index:idx_activity_record" json:"kind"`
	RecordID   uint      `gorm:"not null;index:idx_activity_record" json:"record_id"`
	Action     string    `gorm:"size:16;not null" json:"action"`
	ActorID    uint      `gorm:"not null;default:0" json:"actor_id"`
	OccurredAt time.Time `gorm:"not null" json:"occurred_at"`
}

// AllModels lists every table the service migrates.
func AllModels() []any {
	return []any{&User{}, &Game{}, &Mayor{}, &Chirp{}, &ActivityEntry{}}
}
