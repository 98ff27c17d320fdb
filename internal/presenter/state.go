package presenter

import (
	"maps"

	"recordhub/internal/validation"
)

// State is sealed: only the four types below implement it.
type State interface {
	isState()
}

type Idle struct{}

// AddEditOpen holds the in-progress form. Draft.ID is zero when adding.
type AddEditOpen struct {
	Draft  Draft
	Errors validation.Errors
}

type DetailsOpen[R any] struct {
	Record R
}

type DeleteConfirmOpen[R any] struct {
	Record R
}

func (Idle) isState()                 {}
func (AddEditOpen) isState()          {}
func (DetailsOpen[R]) isState()       {}
func (DeleteConfirmOpen[R]) isState() {}

type Draft struct {
	ID     uint
	Values map[string]string
}

func (d Draft) clone() Draft {
	return Draft{ID: d.ID, Values: maps.Clone(d.Values)}
}

func (d Draft) fields() validation.Fields {
	out := make(validation.Fields, len(d.Values))
	for k, v := range d.Values {
		out[k] = v
	}
	return out
}

// Result is the outcome of Submit or ConfirmDelete.
type Result int

const (
	// Saved means the backend accepted the change and the list was refreshed.
	Saved Result = iota
	// Rejected means field errors are shown in the still-open dialog.
	Rejected
	// Failed means the change did not happen; see Notice.
	Failed
)
