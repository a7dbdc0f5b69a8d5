package services

import (
	"context"
	"net/http"

	"lumincoin/internal/core"
	"lumincoin/internal/i18n"
)

type Balance struct {
	base
}

func NewBalance(d Deps) *Balance {
	return &Balance{base: newBase(d)}
}

type balanceResponse struct {
	Balance core.Money `json:"balance"`
}

// Get returns the current balance.
func (b *Balance) Get(ctx context.Context) Result[core.Money] {
	res := b.client.Request(ctx, "/balance", http.MethodGet, true, nil)
	if !accepted(res) {
		return fail[core.Money](b.base, i18n.MsgBalanceGet, res)
	}
	out := decode[balanceResponse](ctx, b.base, i18n.MsgBalanceGet, res)
	return Result[core.Money]{Err: out.Err, Redirect: out.Redirect, Value: out.Value.Balance}
}

// Update sets a new balance and returns the stored value.
func (b *Balance) Update(ctx context.Context, amount core.Money) Result[core.Money] {
	res := b.client.Request(ctx, "/balance", http.MethodPut, true, map[string]core.Money{"newBalance": amount})
	if !accepted(res) {
		return fail[core.Money](b.base, i18n.MsgBalanceUpdate, res)
	}
	out := decode[balanceResponse](ctx, b.base, i18n.MsgBalanceUpdate, res)
	return Result[core.Money]{Err: out.Err, Redirect: out.Redirect, Value: out.Value.Balance}
}
