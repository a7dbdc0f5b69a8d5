package views

import (
	"context"
	"net/url"
	"strconv"

	"lumincoin/internal/core"
	"lumincoin/internal/validation"
)

// CategoryCard is one category on the list page.
type CategoryCard struct {
	ID       int
	Title    string
	EditHref string
}

func kindPath(kind core.Kind) string {
	return "/" + string(kind)
}

// CategoryList shows the categories of one kind.
type CategoryList struct {
	base
	Kind   core.Kind
	Cards  []CategoryCard
	Delete DeleteConfirm
}

func NewCategoryList(ctx context.Context, d Deps, kind core.Kind) (*CategoryList, error) {
	b := newBase(d)
	if ok, err := b.requireSession(ctx); !ok {
		return nil, err
	}
	v := &CategoryList{base: b, Kind: kind}
	return v, v.load(ctx)
}

func (v *CategoryList) load(ctx context.Context) error {
	res := v.Categories(v.Kind).List(ctx)
	if !res.OK() {
		return v.failed(ctx, res.Err, res.Redirect)
	}
	v.Cards = make([]CategoryCard, 0, len(res.Value))
	for _, c := range res.Value {
		v.Cards = append(v.Cards, CategoryCard{
			ID:       c.ID,
			Title:    c.Title,
			EditHref: kindPath(v.Kind) + "/edit?id=" + strconv.Itoa(c.ID),
		})
	}
	return nil
}

// AskDelete opens the confirmation for category id.
func (v *CategoryList) AskDelete(id int) {
	v.Delete.ask(kindPath(v.Kind) + "/delete?id=" + strconv.Itoa(id))
}

// CategoryCreate adds a category of one kind.
type CategoryCreate struct {
	base
	Kind  core.Kind
	Title validation.Field
}

func NewCategoryCreate(ctx context.Context, d Deps, kind core.Kind) (*CategoryCreate, error) {
	b := newBase(d)
	if ok, err := b.requireSession(ctx); !ok {
		return nil, err
	}
	return &CategoryCreate{base: b, Kind: kind, Title: validation.Field{Name: "nameInput"}}, nil
}

func (v *CategoryCreate) Save(ctx context.Context) error {
	if !validation.ValidateField(validation.Required(&v.Title)) {
		return nil
	}
	res := v.Categories(v.Kind).Create(ctx, v.Title.Value)
	if !res.OK() {
		return v.failed(ctx, res.Err, res.Redirect)
	}
	return v.open(ctx, kindPath(v.Kind))
}

// CategoryEdit renames the category given by ?id=.
type CategoryEdit struct {
	base
	Kind     core.Kind
	Title    validation.Field
	original core.Category
}

func NewCategoryEdit(ctx context.Context, d Deps, kind core.Kind, q url.Values) (*CategoryEdit, error) {
	b := newBase(d)
	if ok, err := b.requireSession(ctx); !ok {
		return nil, err
	}
	id, ok := queryID(q)
	if !ok {
		return nil, b.open(ctx, "/")
	}
	v := &CategoryEdit{base: b, Kind: kind, Title: validation.Field{Name: "nameInput"}}
	return v, v.load(ctx, id)
}

func (v *CategoryEdit) load(ctx context.Context, id int) error {
	res := v.Categories(v.Kind).Get(ctx, id)
	if !res.OK() {
		return v.failed(ctx, res.Err, res.Redirect)
	}
	v.original = res.Value
	v.Title.Value = res.Value.Title
	return nil
}

// Save updates the category when its title changed. An unchanged title
// keeps the page open.
func (v *CategoryEdit) Save(ctx context.Context) error {
	if !validation.ValidateField(validation.Required(&v.Title)) {
		return nil
	}
	if v.original.ID == 0 || v.Title.Value == v.original.Title {
		return nil
	}
	res := v.Categories(v.Kind).Update(ctx, v.original.ID, v.Title.Value)
	if !res.OK() {
		return v.failed(ctx, res.Err, res.Redirect)
	}
	return v.open(ctx, kindPath(v.Kind))
}

// DeleteCategory removes the category given by ?id= and returns to the list
// of its kind.
func DeleteCategory(ctx context.Context, d Deps, kind core.Kind, q url.Values) error {
	b := newBase(d)
	id, ok := queryID(q)
	if !ok {
		return b.open(ctx, "/")
	}
	res := b.Categories(kind).Delete(ctx, id)
	if !res.OK() {
		return b.failed(ctx, res.Err, res.Redirect)
	}
	return b.open(ctx, kindPath(kind))
}
