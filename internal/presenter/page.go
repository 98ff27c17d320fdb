package presenter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"recordhub/internal/app"
	"recordhub/internal/validation"
)

var (
	ErrInvalidTransition = errors.New("invalid page transition")
	ErrUnknownRecord     = errors.New("record is not on the page")
	ErrUnknownField      = errors.New("field is not on the form")
	ErrInFlight          = errors.New("a request is already in flight")
)

const (
	noticeTimeout   = "The server took too long to respond. Please try again."
	noticeGone      = "That record no longer exists. The list has been refreshed."
	noticeForbidden = "You are not allowed to change that record."
	noticeSignIn    = "Please sign in to continue."
	noticeFailed    = "Something went wrong. Please try again."
	noticeLoad      = "The list could not be loaded. Please try again."
)

type Page[R any] struct {
	backend Backend[R]
	opts    Options[R]

	mu       sync.Mutex
	state    State
	records  []R
	notice   string
	lastErr  error
	inFlight bool
}

func NewPage[R any](backend Backend[R], opts Options[R]) *Page[R] {
	return &Page[R]{
		backend: backend,
		opts:    opts,
		state:   Idle{},
	}
}

func (p *Page[R]) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Page[R]) Records() []R {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]R(nil), p.records...)
}

func (p *Page[R]) Notice() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.notice
}

// Err is the backend error behind the last Failed result, nil otherwise.
func (p *Page[R]) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// Load fetches the full list. On failure the previous rows stay and a notice
// is shown.
func (p *Page[R]) Load(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.opts.timeout())
	defer cancel()

	records, err := p.backend.List(ctx)
	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.notice = noticeLoad
		if errors.Is(err, context.DeadlineExceeded) {
			p.notice = noticeTimeout
		}
		return fmt.Errorf("load %s failed: %w", p.opts.Kind, err)
	}
	p.records = records
	return nil
}

func (p *Page[R]) OpenAdd() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.state.(Idle); !ok {
		return ErrInvalidTransition
	}
	p.state = AddEditOpen{Draft: p.opts.emptyDraft(), Errors: validation.Errors{}}
	return nil
}

func (p *Page[R]) OpenEdit(id uint) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.state.(Idle); !ok {
		return ErrInvalidTransition
	}
	record, ok := p.find(id)
	if !ok {
		p.notice = noticeGone
		return ErrUnknownRecord
	}
	if !p.opts.canModify(record) {
		p.notice = noticeForbidden
		return app.ErrForbidden
	}
	draft := p.opts.emptyDraft()
	draft.ID = id
	for k, v := range p.opts.DraftOf(record) {
		if _, known := draft.Values[k]; known {
			draft.Values[k] = v
		}
	}
	p.state = AddEditOpen{Draft: draft, Errors: validation.Errors{}}
	return nil
}

func (p *Page[R]) OpenDetails(id uint) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.state.(Idle); !ok {
		return ErrInvalidTransition
	}
	record, ok := p.find(id)
	if !ok {
		p.notice = noticeGone
		return ErrUnknownRecord
	}
	p.state = DetailsOpen[R]{Record: record}
	return nil
}

func (p *Page[R]) OpenDelete(id uint) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.state.(Idle); !ok {
		return ErrInvalidTransition
	}
	record, ok := p.find(id)
	if !ok {
		p.notice = noticeGone
		return ErrUnknownRecord
	}
	if !p.opts.canModify(record) {
		p.notice = noticeForbidden
		return app.ErrForbidden
	}
	p.state = DeleteConfirmOpen[R]{Record: record}
	return nil
}

// Cancel discards the draft or the pending delete.
func (p *Page[R]) Cancel() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.state.(type) {
	case AddEditOpen, DeleteConfirmOpen[R]:
		if p.inFlight {
			return ErrInFlight
		}
		p.state = Idle{}
		return nil
	}
	return ErrInvalidTransition
}

func (p *Page[R]) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.state.(DetailsOpen[R]); !ok {
		return ErrInvalidTransition
	}
	p.state = Idle{}
	return nil
}

func (p *Page[R]) SetField(name, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	open, ok := p.state.(AddEditOpen)
	if !ok {
		return ErrInvalidTransition
	}
	if !p.opts.hasField(name) {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	draft := open.Draft.clone()
	draft.Values[name] = value
	p.state = AddEditOpen{Draft: draft, Errors: open.Errors}
	return nil
}

// Submit sends the draft. Field errors keep the dialog open with the draft
// intact; success closes it and refreshes the list.
func (p *Page[R]) Submit(ctx context.Context) (Result, error) {
	p.mu.Lock()
	open, ok := p.state.(AddEditOpen)
	if !ok {
		p.mu.Unlock()
		return Failed, ErrInvalidTransition
	}
	if p.inFlight {
		p.mu.Unlock()
		return Failed, ErrInFlight
	}
	draft := open.Draft.clone()
	if p.opts.PreValidateClientSide {
		if errs := p.missingRequired(draft); len(errs) > 0 {
			p.state = AddEditOpen{Draft: draft, Errors: errs}
			p.mu.Unlock()
			return Rejected, nil
		}
	}
	p.inFlight = true
	p.mu.Unlock()

	callCtx, cancel := context.WithTimeout(ctx, p.opts.timeout())
	var err error
	if draft.ID == 0 {
		_, err = p.backend.Create(callCtx, draft.fields())
	} else {
		_, err = p.backend.Update(callCtx, draft.ID, draft.fields())
	}
	cancel()

	p.mu.Lock()
	p.inFlight = false
	if fieldErrs, isValidation := validation.FromError(err); isValidation {
		p.lastErr = nil
		p.state = AddEditOpen{Draft: draft, Errors: fieldErrs}
		p.mu.Unlock()
		return Rejected, nil
	}
	result := p.settle(err, AddEditOpen{Draft: draft, Errors: open.Errors})
	p.mu.Unlock()

	if result != Failed || errors.Is(err, app.ErrNotFound) {
		_ = p.Load(ctx)
	}
	return result, nil
}

func (p *Page[R]) ConfirmDelete(ctx context.Context) (Result, error) {
	p.mu.Lock()
	confirm, ok := p.state.(DeleteConfirmOpen[R])
	if !ok {
		p.mu.Unlock()
		return Failed, ErrInvalidTransition
	}
	if p.inFlight {
		p.mu.Unlock()
		return Failed, ErrInFlight
	}
	p.inFlight = true
	p.mu.Unlock()

	callCtx, cancel := context.WithTimeout(ctx, p.opts.timeout())
	err := p.backend.Delete(callCtx, p.opts.IDOf(confirm.Record))
	cancel()

	p.mu.Lock()
	p.inFlight = false
	result := p.settle(err, confirm)
	p.mu.Unlock()

	if result != Failed || errors.Is(err, app.ErrNotFound) {
		_ = p.Load(ctx)
	}
	return result, nil
}

// settle maps a backend error to the next state and notice. Caller holds mu.
func (p *Page[R]) settle(err error, retry State) Result {
	p.lastErr = err
	switch {
	case err == nil:
		p.state = Idle{}
		p.notice = ""
		return Saved
	case errors.Is(err, app.ErrNotFound):
		p.state = Idle{}
		p.notice = noticeGone
	case errors.Is(err, app.ErrForbidden):
		p.state = Idle{}
		p.notice = noticeForbidden
	case errors.Is(err, app.ErrUnauthorized):
		p.state = Idle{}
		p.notice = noticeSignIn
	case errors.Is(err, context.DeadlineExceeded):
		p.state = retry
		p.notice = noticeTimeout
	default:
		p.state = retry
		p.notice = noticeFailed
	}
	return Failed
}

func (p *Page[R]) missingRequired(draft Draft) validation.Errors {
	errs := validation.Errors{}
	for _, f := range p.opts.Form {
		msg, required := p.opts.RequiredMessages[f.Name]
		if required && strings.TrimSpace(draft.Values[f.Name]) == "" {
			errs[f.Name] = msg
		}
	}
	return errs
}

func (p *Page[R]) find(id uint) (R, bool) {
	for _, r := range p.records {
		if p.opts.IDOf(r) == id {
			return r, true
		}
	}
	var zero R
	return zero, false
}
