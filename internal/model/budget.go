// Package model defines the budget data shared by the loader, the chart core and the CLI.
package model

// CategoryDatum is one labeled budget value. Identity is positional: two
// entries with the same title are still distinct segments.
type CategoryDatum struct {
	Title  string  `json:"title"`
	Budget float64 `json:"budget"`
}

// BudgetDocument is the JSON document served at the budget resource.
type BudgetDocument struct {
	MyBudget []CategoryDatum `json:"myBudget"`
}

// TotalBudget sums every budget in order.
func TotalBudget(categories []CategoryDatum) float64 {
	total := 0.0
	for _, c := range categories {
		total += c.Budget
	}
	return total
}

// Share returns the fraction of total held by budget, or 0 when total is 0.
func Share(budget, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return budget / total
}
