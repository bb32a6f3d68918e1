package cli

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ametova/finkeeper/internal/models"
	"github.com/ametova/finkeeper/internal/report"
)

// ListBudgets prints every budgeted month with its limit, running spent
// counter, and the spent amount derived from the actual transactions.
func (a *App) ListBudgets(ctx context.Context) error {
	items := a.budgets.Items()
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No budgets set")
		return nil
	}

	expensesByMonth := a.expenses.Items()
	for _, b := range items {
		actual := report.MonthSpent(expensesByMonth, b.Month)
		fmt.Fprintf(a.out, "%s: limit %s, spent %s (recorded %s)\n",
			b.Month,
			report.FormatAmount(b.Limit, a.config.Currency),
			report.FormatAmount(actual, a.config.Currency),
			report.FormatAmount(b.Spent, a.config.Currency))
	}
	return nil
}

// SetBudget sets the limit for a month, creating the budget if needed.
func (a *App) SetBudget(ctx context.Context, month string, limit decimal.Decimal) error {
	if month == "" {
		month = models.MonthOf(timeNow())
	}
	if !models.ValidMonth(month) {
		return fmt.Errorf("invalid month %q, want YYYY-MM", month)
	}
	return a.budgets.SetLimit(ctx, month, limit)
}
