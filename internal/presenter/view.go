package presenter

import "recordhub/internal/validation"

// Modal names used by the templates.
const (
	ModalNone    = ""
	ModalForm    = "form"
	ModalDetails = "details"
	ModalDelete  = "delete"
)

type Cell struct {
	Label string
	Value string
}

type Row struct {
	ID        uint
	Cells     []Cell
	CanModify bool
}

// View is a render-ready snapshot of a page.
type View struct {
	Kind     string
	Title    string
	Singular string
	Headers  []string
	Form     []FieldSpec
	Rows     []Row
	Notice   string

	Modal    string
	Draft    Draft
	Errors   validation.Errors
	Selected *Row
}

// Editing reports whether the form dialog targets an existing record.
func (v View) Editing() bool {
	return v.Modal == ModalForm && v.Draft.ID != 0
}

// Colspan spans the data columns plus the actions column.
func (v View) Colspan() int {
	return len(v.Headers) + 1
}

func (p *Page[R]) View() View {
	p.mu.Lock()
	defer p.mu.Unlock()

	v := View{
		Kind:     p.opts.Kind,
		Title:    p.opts.Title,
		Singular: p.opts.Singular,
		Form:     p.opts.Form,
		Notice:   p.notice,
		Rows:     make([]Row, 0, len(p.records)),
	}
	for _, c := range p.opts.Columns {
		v.Headers = append(v.Headers, c.Label)
	}
	for _, r := range p.records {
		v.Rows = append(v.Rows, p.row(r))
	}

	switch s := p.state.(type) {
	case AddEditOpen:
		v.Modal = ModalForm
		v.Draft = s.Draft.clone()
		v.Errors = s.Errors
	case DetailsOpen[R]:
		v.Modal = ModalDetails
		row := p.row(s.Record)
		v.Selected = &row
	case DeleteConfirmOpen[R]:
		v.Modal = ModalDelete
		row := p.row(s.Record)
		v.Selected = &row
	}
	return v
}

func (p *Page[R]) row(r R) Row {
	row := Row{ID: p.opts.IDOf(r), CanModify: p.opts.canModify(r)}
	for _, c := range p.opts.Columns {
		row.Cells = append(row.Cells, Cell{Label: c.Label, Value: c.Value(r)})
	}
	return row
}
