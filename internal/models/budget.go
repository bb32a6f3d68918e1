package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a monthly spending budget. At most one record exists per
// (user, month); the month string is the logical key within a partition.
//
// Spent is a denormalized running counter adjusted via delta updates. It is
// not automatically reconciled with the expense collection; display paths
// that need the true figure derive it from expenses (see package report).
type Budget struct {
	ID    string          `json:"id"`
	Month string          `json:"month"` // "2006-01"
	Limit decimal.Decimal `json:"limit"`
	Spent decimal.Decimal `json:"spent"`
}

// MonthOf returns the budget month key for a point in time, e.g. "2024-03".
func MonthOf(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// ValidMonth reports whether s is a well-formed "YYYY-MM" month key.
func ValidMonth(s string) bool {
	_, err := time.Parse("2006-01", s)
	return err == nil
}
