package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ametova/finkeeper/internal/models"
	"github.com/ametova/finkeeper/internal/report"
)

// ListExpenses prints the transaction history with totals.
func (a *App) ListExpenses(ctx context.Context) error {
	items := a.expenses.Items()
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No transactions yet")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tDESCRIPTION\tCATEGORY\tAMOUNT")
	for _, e := range items {
		category := string(e.Category)
		sign := "-"
		if e.IsIncome {
			category = "income"
			sign = "+"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s%s\n",
			e.ID, e.Date.Format("2006-01-02"), e.Description, category,
			sign, report.FormatAmount(e.Amount, a.config.Currency))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nBalance: %s (income %s, expenses %s)\n",
		report.FormatAmount(a.expenses.Balance(), a.config.Currency),
		report.FormatAmount(a.expenses.TotalIncome(), a.config.Currency),
		report.FormatAmount(a.expenses.TotalExpenses(), a.config.Currency))
	return nil
}

// AddExpense interactively records a new transaction. An income record skips
// the category prompt.
func (a *App) AddExpense(ctx context.Context, isIncome bool) error {
	description, err := getSimpleText(a.reader, "Description", a.out)
	if err != nil {
		return err
	}

	amount, err := GetAmount(a.reader, "Amount", a.out)
	if err != nil {
		return err
	}

	category := models.CategoryOther
	if !isIncome {
		names := make([]string, 0, len(models.ExpenseCategories()))
		for _, c := range models.ExpenseCategories() {
			names = append(names, string(c))
		}
		raw, err := getSimpleText(a.reader, "Category ("+strings.Join(names, ", ")+")", a.out)
		if err != nil {
			return err
		}
		category = models.ExpenseCategory(raw)
		if !category.Valid() {
			return fmt.Errorf("unknown category %q", raw)
		}
	}

	date, err := GetDate(a.reader, "Date", a.out, time.Now())
	if err != nil {
		return err
	}

	_, err = a.expenses.Add(ctx, models.Expense{
		Amount:      amount,
		Description: description,
		Category:    category,
		Date:        date,
		IsIncome:    isIncome,
	})
	return err
}

// DeleteExpense removes a transaction by id.
func (a *App) DeleteExpense(ctx context.Context, id string) error {
	return a.expenses.Delete(ctx, id)
}
