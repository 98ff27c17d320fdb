package presenter

import (
	"context"
	"time"

	"recordhub/internal/validation"
)

// Backend is the resource service a page talks to.
type Backend[R any] interface {
	List(ctx context.Context) ([]R, error)
	Create(ctx context.Context, fields validation.Fields) (*R, error)
	Update(ctx context.Context, id uint, fields validation.Fields) (*R, error)
	Delete(ctx context.Context, id uint) error
}

type FieldSpec struct {
	Name        string
	Label       string
	Type        string // text, number, select or textarea
	Choices     []string
	Placeholder string
}

type Column[R any] struct {
	Label string
	Value func(R) string
}

type Options[R any] struct {
	Kind     string // route segment, e.g. "games"
	Title    string
	Singular string

	Form    []FieldSpec
	Columns []Column[R]

	IDOf    func(R) uint
	DraftOf func(R) map[string]string
	// CanModify hides edit and delete for a record; nil allows everything.
	CanModify func(R) bool

	// PreValidateClientSide checks RequiredMessages locally before any
	// backend call.
	PreValidateClientSide bool
	RequiredMessages      map[string]string

	Timeout time.Duration
}

const defaultTimeout = 10 * time.Second

func (o Options[R]) timeout() time.Duration {
	if o.Timeout <= 0 {
		return defaultTimeout
	}
	return o.Timeout
}

func (o Options[R]) emptyDraft() Draft {
	values := make(map[string]string, len(o.Form))
	for _, f := range o.Form {
		values[f.Name] = ""
	}
	return Draft{Values: values}
}

func (o Options[R]) hasField(name string) bool {
	for _, f := range o.Form {
		if f.Name == name {
			return true
		}
	}
	return false
}

func (o Options[R]) canModify(record R) bool {
	return o.CanModify == nil || o.CanModify(record)
}
