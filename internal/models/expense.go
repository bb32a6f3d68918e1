package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory classifies an expense record. The category is ignored for
// income records.
type ExpenseCategory string

const (
	CategoryFood           ExpenseCategory = "food"
	CategoryTransportation ExpenseCategory = "transportation"
	CategoryHousing        ExpenseCategory = "housing"
	CategoryUtilities      ExpenseCategory = "utilities"
	CategoryEntertainment  ExpenseCategory = "entertainment"
	CategoryHealthcare     ExpenseCategory = "healthcare"
	CategoryEducation      ExpenseCategory = "education"
	CategoryShopping       ExpenseCategory = "shopping"
	CategoryPersonal       ExpenseCategory = "personal"
	CategoryOther          ExpenseCategory = "other"
)

// ExpenseCategories lists every valid category in display order.
func ExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		CategoryFood, CategoryTransportation, CategoryHousing,
		CategoryUtilities, CategoryEntertainment, CategoryHealthcare,
		CategoryEducation, CategoryShopping, CategoryPersonal, CategoryOther,
	}
}

// Valid reports whether c is one of the fixed expense categories.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case CategoryFood, CategoryTransportation, CategoryHousing,
		CategoryUtilities, CategoryEntertainment, CategoryHealthcare,
		CategoryEducation, CategoryShopping, CategoryPersonal, CategoryOther:
		return true
	}
	return false
}

// Expense is a single expense or income record, owned by exactly one user.
type Expense struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    ExpenseCategory `json:"category"`
	Date        time.Time       `json:"date"`
	IsIncome    bool            `json:"isIncome"`
}

// ExpensePatch is a partial update. Nil fields are left untouched.
type ExpensePatch struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description *string          `json:"description,omitempty"`
	Category    *ExpenseCategory `json:"category,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
	IsIncome    *bool            `json:"isIncome,omitempty"`
}

// Apply copies the patch's non-nil fields onto e.
func (p ExpensePatch) Apply(e *Expense) {
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.IsIncome != nil {
		e.IsIncome = *p.IsIncome
	}
}
