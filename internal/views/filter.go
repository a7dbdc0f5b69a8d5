package views

import (
	"context"

	"lumincoin/internal/core"
	"lumincoin/internal/validation"
)

// PeriodFilter is the period selector shared by the dashboard and the
// operations list. The interval dates are DD.MM.YYYY.
type PeriodFilter struct {
	Period core.Period
	From   validation.Field
	To     validation.Field
}

func newPeriodFilter() PeriodFilter {
	return PeriodFilter{
		Period: core.PeriodToday,
		From:   validation.Field{Name: "calendar-from"},
		To:     validation.Field{Name: "calendar-to"},
	}
}

// DatesEnabled reports whether the date pickers accept input.
func (f *PeriodFilter) DatesEnabled() bool {
	return f.Period == core.PeriodInterval
}

// ready returns the filter to query, or false when the interval is
// incomplete. Both date fields are marked either way.
func (f *PeriodFilter) ready() (core.Filter, bool) {
	if f.Period != core.PeriodInterval {
		return core.Filter{Period: f.Period}, true
	}
	ok := validation.ValidateForm([]validation.Rule{
		validation.Required(&f.From),
		validation.Required(&f.To),
	})
	if !ok {
		return core.Filter{}, false
	}
	return core.Filter{Period: f.Period, DateFrom: f.From.Value, DateTo: f.To.Value}, true
}

// filterView reloads its data whenever the filter changes.
type filterView interface {
	filter() *PeriodFilter
	reload(ctx context.Context, f core.Filter) error
}

func setPeriod(ctx context.Context, v filterView, p core.Period) error {
	if _, err := core.ParsePeriod(string(p)); err != nil {
		return err
	}
	pf := v.filter()
	pf.Period = p
	f, ok := pf.ready()
	if !ok {
		return nil
	}
	return v.reload(ctx, f)
}

func setDate(ctx context.Context, v filterView, field *validation.Field, value string) error {
	field.Value = value
	pf := v.filter()
	if !pf.DatesEnabled() {
		return nil
	}
	f, ok := pf.ready()
	if !ok {
		return nil
	}
	return v.reload(ctx, f)
}
