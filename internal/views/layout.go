package views

import (
	"context"

	"lumincoin/internal/core"
	"lumincoin/internal/i18n"
	"lumincoin/internal/validation"
)

// AccountLink is the sign-in or sign-out entry of the profile popover.
type AccountLink struct {
	Text string
	Href string
}

// Layout drives the shared shell: the balance widget and its editor.
type Layout struct {
	base
	BalanceLabel string
	EditorOpen   bool
	BalanceInput validation.Field
	Account      AccountLink
}

// NewLayout loads the balance. Anonymous users are sent to the login page
// and nil is returned.
func NewLayout(ctx context.Context, d Deps) (*Layout, error) {
	b := newBase(d)
	if ok, err := b.requireSession(ctx); !ok {
		return nil, err
	}
	v := &Layout{
		base:         b,
		BalanceInput: validation.Field{Name: "balanceInput"},
		Account:      AccountLink{Text: b.t(i18n.MsgLogout), Href: "/logout"},
	}
	return v, v.load(ctx)
}

func (v *Layout) load(ctx context.Context) error {
	res := v.Balance.Get(ctx)
	if !res.OK() {
		return v.failed(ctx, res.Err, res.Redirect)
	}
	v.show(res.Value)
	return nil
}

func (v *Layout) show(balance core.Money) {
	v.BalanceLabel = balance.String() + "$"
}

// OpenEditor shows the balance editor.
func (v *Layout) OpenEditor() {
	v.EditorOpen = true
}

// CancelEditor hides the editor and clears its marker.
func (v *Layout) CancelEditor() {
	v.EditorOpen = false
	v.BalanceInput.Invalid = false
}

// ConfirmBalance stores the value typed in the editor.
func (v *Layout) ConfirmBalance(ctx context.Context) error {
	if !validation.ValidateField(validation.Required(&v.BalanceInput)) {
		return nil
	}
	cents, err := core.ParseSignedDecimalToCents(v.BalanceInput.Value)
	if err != nil {
		v.BalanceInput.Invalid = true
		return nil
	}

	res := v.Balance.Update(ctx, core.Money{Cents: cents})
	if !res.OK() {
		return v.failed(ctx, res.Err, res.Redirect)
	}
	v.show(res.Value)
	v.EditorOpen = false
	return nil
}
