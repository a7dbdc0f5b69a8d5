package core

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// SummarizeByCategory sums the amounts of the given kind per category.
// Categories appear in the order they are first seen.
func SummarizeByCategory(ops []Operation, kind Kind) []CategoryAmount {
	var out []CategoryAmount
	index := make(map[string]int)
	for _, op := range ops {
		if op.Type != kind {
			continue
		}
		i, ok := index[op.Category]
		if !ok {
			i = len(out)
			index[op.Category] = i
			out = append(out, CategoryAmount{Name: op.Category})
		}
		out[i].Amount.Cents += op.Amount.Cents
	}
	return out
}

// Total sums the amounts.
func Total(items []CategoryAmount) Money {
	var m Money
	for _, it := range items {
		m.Cents += it.Amount.Cents
	}
	return m
}
