package views

import (
	"context"
	"net/url"
	"strconv"

	"lumincoin/internal/core"
	"lumincoin/internal/i18n"
	"lumincoin/internal/validation"
)

// OperationRow is one line of the operations table.
type OperationRow struct {
	Number   int
	ID       int
	Kind     core.Kind
	KindText string
	Category string
	Amount   string
	Date     string
	Comment  string
	EditHref string
}

// DeleteConfirm is the delete confirmation popup. ConfirmHref is the action
// route the confirm button opens.
type DeleteConfirm struct {
	Open        bool
	ConfirmHref string
}

func (c *DeleteConfirm) ask(href string) {
	c.Open = true
	c.ConfirmHref = href
}

// Cancel closes the popup.
func (c *DeleteConfirm) Cancel() {
	c.Open = false
}

// OperationsList is the filtered ledger.
type OperationsList struct {
	base
	Filter PeriodFilter
	Rows   []OperationRow
	Delete DeleteConfirm
}

func NewOperationsList(ctx context.Context, d Deps) (*OperationsList, error) {
	b := newBase(d)
	if ok, err := b.requireSession(ctx); !ok {
		return nil, err
	}
	v := &OperationsList{base: b, Filter: newPeriodFilter()}
	return v, v.reload(ctx, core.Filter{Period: core.PeriodToday})
}

func (v *OperationsList) filter() *PeriodFilter { return &v.Filter }

func (v *OperationsList) reload(ctx context.Context, f core.Filter) error {
	res := v.Operations.List(ctx, f)
	if !res.OK() {
		return v.failed(ctx, res.Err, res.Redirect)
	}
	v.Rows = make([]OperationRow, 0, len(res.Value))
	for i, op := range res.Value {
		v.Rows = append(v.Rows, OperationRow{
			Number:   i + 1,
			ID:       op.ID,
			Kind:     op.Type,
			KindText: v.t(i18n.KindMsg(string(op.Type))),
			Category: op.Category,
			Amount:   op.Amount.String() + "$",
			Date:     core.ISOToDisplay(op.Date),
			Comment:  op.Comment,
			EditHref: "/operations/edit?id=" + strconv.Itoa(op.ID),
		})
	}
	return nil
}

func (v *OperationsList) SetPeriod(ctx context.Context, p core.Period) error {
	return setPeriod(ctx, v, p)
}

func (v *OperationsList) SetDateFrom(ctx context.Context, date string) error {
	return setDate(ctx, v, &v.Filter.From, date)
}

func (v *OperationsList) SetDateTo(ctx context.Context, date string) error {
	return setDate(ctx, v, &v.Filter.To, date)
}

// AskDelete opens the confirmation for operation id.
func (v *OperationsList) AskDelete(id int) {
	v.Delete.ask("/operations/delete?id=" + strconv.Itoa(id))
}

// CategoryOption is an entry of the category select. The placeholder has ID 0
// and is disabled.
type CategoryOption struct {
	ID       int
	Title    string
	Disabled bool
}

// OperationForm is the form shared by the create and edit pages.
type OperationForm struct {
	base
	Type     core.Kind
	Options  []CategoryOption
	Category validation.Field
	Amount   validation.Field
	Date     validation.Field
	Comment  string
	// DateMax is today in YYYY-MM-DD; future dates are not offered.
	DateMax string
}

func newOperationForm(b base) OperationForm {
	return OperationForm{
		base:     b,
		Category: validation.Field{Name: "categorySelect"},
		Amount:   validation.Field{Name: "amountInput"},
		Date:     validation.Field{Name: "dateInput"},
		DateMax:  b.Now().Format(core.ISODateLayout),
	}
}

// loadCategories fills the select for kind and preselects the category
// titled selected, if any.
func (f *OperationForm) loadCategories(ctx context.Context, kind core.Kind, selected string) error {
	res := f.Categories(kind).List(ctx)
	if !res.OK() {
		return f.failed(ctx, res.Err, res.Redirect)
	}
	f.Options = []CategoryOption{{Title: f.t(i18n.MsgCategoryHint), Disabled: true}}
	f.Category.Value = ""
	for _, c := range res.Value {
		f.Options = append(f.Options, CategoryOption{ID: c.ID, Title: c.Title})
		if selected != "" && c.Title == selected {
			f.Category.Value = strconv.Itoa(c.ID)
		}
	}
	return nil
}

// SetType switches the operation kind and reloads the categories.
func (f *OperationForm) SetType(ctx context.Context, kind core.Kind) error {
	if !kind.Valid() {
		return core.ErrInvalidKind
	}
	f.Type = kind
	return f.loadCategories(ctx, kind, "")
}

// SelectCategory picks a category by id.
func (f *OperationForm) SelectCategory(id int) {
	f.Category.Value = strconv.Itoa(id)
}

// input validates the form and builds the payload. An empty comment is sent
// as a single space.
func (f *OperationForm) input() (core.OperationInput, bool) {
	ok := validation.ValidateForm([]validation.Rule{
		validation.Required(&f.Category),
		validation.Required(&f.Amount),
		validation.Required(&f.Date),
	})
	if !ok {
		return core.OperationInput{}, false
	}

	categoryID, err := strconv.Atoi(f.Category.Value)
	if err != nil || categoryID <= 0 {
		f.Category.Invalid = true
		ok = false
	}
	cents, err := core.ParseDecimalToCents(f.Amount.Value)
	if err != nil {
		f.Amount.Invalid = true
		ok = false
	}
	date, err := formDate(f.Date.Value)
	if err != nil {
		f.Date.Invalid = true
		ok = false
	}
	if !ok {
		return core.OperationInput{}, false
	}

	comment := f.Comment
	if comment == "" {
		comment = " "
	}
	return core.OperationInput{
		Type:       f.Type,
		Amount:     core.Money{Cents: cents},
		Date:       date,
		Comment:    comment,
		CategoryID: categoryID,
	}, true
}

// formDate accepts YYYY-MM-DD or DD.MM.YYYY and returns YYYY-MM-DD.
func formDate(s string) (string, error) {
	if iso, err := core.DisplayToISO(s); err == nil {
		return iso, nil
	}
	t, err := core.ParseISODate(s)
	if err != nil {
		return "", err
	}
	return t.Format(core.ISODateLayout), nil
}

// OperationCreate adds an operation of the kind given by ?type=.
type OperationCreate struct {
	OperationForm
}

func NewOperationCreate(ctx context.Context, d Deps, q url.Values) (*OperationCreate, error) {
	b := newBase(d)
	if ok, err := b.requireSession(ctx); !ok {
		return nil, err
	}
	kind, err := core.ParseKind(q.Get("type"))
	if err != nil {
		return nil, b.open(ctx, "/")
	}
	v := &OperationCreate{OperationForm: newOperationForm(b)}
	return v, v.SetType(ctx, kind)
}

func (v *OperationCreate) Save(ctx context.Context) error {
	in, ok := v.input()
	if !ok {
		return nil
	}
	res := v.Operations.Create(ctx, in)
	if !res.OK() {
		return v.failed(ctx, res.Err, res.Redirect)
	}
	return v.open(ctx, "/operations")
}

// OperationEdit changes the operation given by ?id=.
type OperationEdit struct {
	OperationForm
	ID int
}

func NewOperationEdit(ctx context.Context, d Deps, q url.Values) (*OperationEdit, error) {
	b := newBase(d)
	if ok, err := b.requireSession(ctx); !ok {
		return nil, err
	}
	id, ok := queryID(q)
	if !ok {
		return nil, b.open(ctx, "/")
	}
	v := &OperationEdit{OperationForm: newOperationForm(b), ID: id}
	return v, v.load(ctx)
}

func (v *OperationEdit) load(ctx context.Context) error {
	res := v.Operations.Get(ctx, v.ID)
	if !res.OK() {
		return v.failed(ctx, res.Err, res.Redirect)
	}
	op := res.Value
	v.Amount.Value = op.Amount.String()
	v.Comment = op.Comment
	v.Date.Value = op.Date
	v.Type = op.Type
	if !op.Type.Valid() {
		return nil
	}
	return v.loadCategories(ctx, op.Type, op.Category)
}

func (v *OperationEdit) Save(ctx context.Context) error {
	in, ok := v.input()
	if !ok {
		return nil
	}
	res := v.Operations.Update(ctx, v.ID, in)
	if !res.OK() {
		return v.failed(ctx, res.Err, res.Redirect)
	}
	return v.open(ctx, "/operations")
}

// DeleteOperation removes the operation given by ?id= and returns to the
// list.
func DeleteOperation(ctx context.Context, d Deps, q url.Values) error {
	b := newBase(d)
	id, ok := queryID(q)
	if !ok {
		return b.open(ctx, "/")
	}
	res := b.Operations.Delete(ctx, id)
	if !res.OK() {
		return b.failed(ctx, res.Err, res.Redirect)
	}
	return b.open(ctx, "/operations")
}
