package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalCategory classifies a savings goal.
type GoalCategory string

const (
	GoalEmergencyFund GoalCategory = "emergency_fund"
	GoalVacation      GoalCategory = "vacation"
	GoalHouse         GoalCategory = "house"
	GoalCar           GoalCategory = "car"
	GoalEducation     GoalCategory = "education"
	GoalRetirement    GoalCategory = "retirement"
	GoalInvestment    GoalCategory = "investment"
	GoalOther         GoalCategory = "other"
)

// GoalCategories lists every valid goal category in display order.
func GoalCategories() []GoalCategory {
	return []GoalCategory{
		GoalEmergencyFund, GoalVacation, GoalHouse, GoalCar,
		GoalEducation, GoalRetirement, GoalInvestment, GoalOther,
	}
}

// Valid reports whether c is one of the fixed goal categories.
func (c GoalCategory) Valid() bool {
	switch c {
	case GoalEmergencyFund, GoalVacation, GoalHouse, GoalCar,
		GoalEducation, GoalRetirement, GoalInvestment, GoalOther:
		return true
	}
	return false
}

// Goal is a savings goal. CurrentAmount moves by signed deltas and is
// clamped so it never goes negative.
type Goal struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Category      GoalCategory    `json:"category"`
	TargetDate    time.Time       `json:"targetDate"`
	Description   string          `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// GoalPatch is a partial update. Nil fields are left untouched.
// ID and CreatedAt are store-managed and cannot be patched.
type GoalPatch struct {
	Name          *string          `json:"name,omitempty"`
	TargetAmount  *decimal.Decimal `json:"targetAmount,omitempty"`
	CurrentAmount *decimal.Decimal `json:"currentAmount,omitempty"`
	Category      *GoalCategory    `json:"category,omitempty"`
	TargetDate    *time.Time       `json:"targetDate,omitempty"`
	Description   *string          `json:"description,omitempty"`
}

// Apply copies the patch's non-nil fields onto g.
func (p GoalPatch) Apply(g *Goal) {
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.TargetAmount != nil {
		g.TargetAmount = *p.TargetAmount
	}
	if p.CurrentAmount != nil {
		g.CurrentAmount = *p.CurrentAmount
	}
	if p.Category != nil {
		g.Category = *p.Category
	}
	if p.TargetDate != nil {
		g.TargetDate = *p.TargetDate
	}
	if p.Description != nil {
		g.Description = *p.Description
	}
}
