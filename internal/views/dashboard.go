package views

import (
	"context"

	"lumincoin/internal/core"
	"lumincoin/internal/i18n"
)

// Pie is the data of one pie chart. Empty pies hold a single placeholder
// slice.
type Pie struct {
	Title  string
	Slices []core.CategoryAmount
	Empty  bool
}

func (b base) pie(title string, ops []core.Operation, kind core.Kind) Pie {
	slices := core.SummarizeByCategory(ops, kind)
	if len(slices) == 0 {
		return Pie{
			Title:  title,
			Slices: []core.CategoryAmount{{Name: b.t(i18n.MsgNoData), Amount: core.Money{Cents: 100}}},
			Empty:  true,
		}
	}
	return Pie{Title: title, Slices: slices}
}

// Dashboard shows income and expense pies for the selected period.
type Dashboard struct {
	base
	Filter     PeriodFilter
	IncomePie  Pie
	ExpensePie Pie
}

func NewDashboard(ctx context.Context, d Deps) (*Dashboard, error) {
	b := newBase(d)
	if ok, err := b.requireSession(ctx); !ok {
		return nil, err
	}
	v := &Dashboard{base: b, Filter: newPeriodFilter()}
	v.show(nil)
	return v, v.reload(ctx, core.Filter{Period: core.PeriodToday})
}

func (v *Dashboard) filter() *PeriodFilter { return &v.Filter }

func (v *Dashboard) reload(ctx context.Context, f core.Filter) error {
	res := v.Operations.List(ctx, f)
	if !res.OK() {
		return v.failed(ctx, res.Err, res.Redirect)
	}
	v.show(res.Value)
	return nil
}

func (v *Dashboard) show(ops []core.Operation) {
	v.IncomePie = v.pie(v.t(i18n.MsgChartIncome), ops, core.Income)
	v.ExpensePie = v.pie(v.t(i18n.MsgChartExpense), ops, core.Expense)
}

// SetPeriod switches the period. Switching to the interval only reloads
// when both dates are set.
func (v *Dashboard) SetPeriod(ctx context.Context, p core.Period) error {
	return setPeriod(ctx, v, p)
}

func (v *Dashboard) SetDateFrom(ctx context.Context, date string) error {
	return setDate(ctx, v, &v.Filter.From, date)
}

func (v *Dashboard) SetDateTo(ctx context.Context, date string) error {
	return setDate(ctx, v, &v.Filter.To, date)
}
