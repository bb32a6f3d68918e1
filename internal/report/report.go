// Package report derives read-only views over expense collections, such as
// monthly windows and transaction summaries. Everything here is a pure
// function over a snapshot; nothing touches storage.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/ametova/finkeeper/internal/models"
)

// IncomeBucket is the pseudo-category income records are grouped under in
// summaries, alongside the real expense categories.
const IncomeBucket = "income"

// Summary is the aggregate view of a transaction slice.
type Summary struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	Balance       decimal.Decimal
	ByCategory    map[string]decimal.Decimal
}

// Summarize folds a transaction slice into totals and per-category sums.
// Income records are bucketed under IncomeBucket; categories with a zero
// total are omitted.
func Summarize(items []models.Expense) Summary {
	s := Summary{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		ByCategory:    make(map[string]decimal.Decimal),
	}
	for i := range items {
		bucket := string(items[i].Category)
		if items[i].IsIncome {
			bucket = IncomeBucket
			s.TotalIncome = s.TotalIncome.Add(items[i].Amount)
		} else {
			s.TotalExpenses = s.TotalExpenses.Add(items[i].Amount)
		}
		s.ByCategory[bucket] = s.ByCategory[bucket].Add(items[i].Amount)
	}
	for bucket, total := range s.ByCategory {
		if total.IsZero() {
			delete(s.ByCategory, bucket)
		}
	}
	s.Balance = s.TotalIncome.Sub(s.TotalExpenses)
	return s
}

// ForMonth filters transactions to those dated within the given "YYYY-MM"
// month, preserving order.
func ForMonth(items []models.Expense, month string) []models.Expense {
	var out []models.Expense
	for i := range items {
		if models.MonthOf(items[i].Date) == month {
			out = append(out, items[i])
		}
	}
	return out
}

// MonthSpent is the true amount spent in a month, derived from the expense
// records themselves rather than the budget's running counter.
func MonthSpent(items []models.Expense, month string) decimal.Decimal {
	total := decimal.Zero
	for i := range items {
		if !items[i].IsIncome && models.MonthOf(items[i].Date) == month {
			total = total.Add(items[i].Amount)
		}
	}
	return total
}

// FormatAmount renders an amount in the given ISO currency code, e.g.
// FormatAmount(decimal.NewFromFloat(45.99), "EUR") == "€45.99".
func FormatAmount(d decimal.Decimal, currencyCode string) string {
	cur := money.GetCurrency(currencyCode)
	if cur == nil {
		return d.StringFixed(2) + " " + currencyCode
	}
	minor := d.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, currencyCode).Display()
}

// Render writes a plain-text transaction history with a summary section,
// the same content the web client exported as PDF.
func Render(w io.Writer, items []models.Expense, userName, currencyCode string) error {
	if _, err := fmt.Fprintf(w, "Transaction History for %s\n\n", userName); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tDESCRIPTION\tCATEGORY\tAMOUNT")
	for i := range items {
		category := string(items[i].Category)
		sign := "-"
		if items[i].IsIncome {
			category = IncomeBucket
			sign = "+"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s%s\n",
			items[i].Date.Format("2006-01-02"),
			items[i].Description,
			category,
			sign,
			FormatAmount(items[i].Amount, currencyCode),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := Summarize(items)
	fmt.Fprintf(w, "\nTotal Income:   %s\n", FormatAmount(s.TotalIncome, currencyCode))
	fmt.Fprintf(w, "Total Expenses: %s\n", FormatAmount(s.TotalExpenses, currencyCode))
	fmt.Fprintf(w, "Balance:        %s\n", FormatAmount(s.Balance, currencyCode))

	if len(s.ByCategory) > 0 {
		fmt.Fprintln(w, "\nBy category:")
		buckets := make([]string, 0, len(s.ByCategory))
		for b := range s.ByCategory {
			buckets = append(buckets, b)
		}
		sort.Strings(buckets)
		for _, b := range buckets {
			fmt.Fprintf(w, "  %-16s %s\n", b, FormatAmount(s.ByCategory[b], currencyCode))
		}
	}
	return nil
}

// WriteCSV writes transactions as CSV with a fixed header row.
func WriteCSV(w io.Writer, items []models.Expense) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "description", "category", "amount", "type"}); err != nil {
		return err
	}
	for i := range items {
		kind := "expense"
		if items[i].IsIncome {
			kind = "income"
		}
		record := []string{
			items[i].Date.Format("2006-01-02"),
			items[i].Description,
			string(items[i].Category),
			items[i].Amount.String(),
			kind,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
