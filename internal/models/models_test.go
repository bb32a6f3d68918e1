package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"User@Example.com", "user@example.com"},
		{"  ALICE@X.COM ", "alice@x.com"},
		{"plain@x.com", "plain@x.com"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, NormalizeEmail(tc.in))
	}
}

func TestIdentity_Valid(t *testing.T) {
	assert.True(t, Identity{ID: "1", Email: "a@b.c", Name: "A"}.Valid())
	assert.False(t, Identity{Email: "a@b.c", Name: "A"}.Valid())
	assert.False(t, Identity{ID: "1", Name: "A"}.Valid())
	assert.False(t, Identity{ID: "1", Email: "a@b.c"}.Valid())
}

func TestCredential_Identity_StripsPassword(t *testing.T) {
	c := Credential{ID: "7", Email: "a@b.c", Name: "A", PasswordHash: "$2a$10$x"}
	id := c.Identity()
	assert.Equal(t, Identity{ID: "7", Email: "a@b.c", Name: "A"}, id)
}

func TestExpenseCategory_Valid(t *testing.T) {
	for _, c := range ExpenseCategories() {
		assert.True(t, c.Valid(), string(c))
	}
	assert.False(t, ExpenseCategory("groceries").Valid())
	assert.False(t, ExpenseCategory("").Valid())
	assert.Len(t, ExpenseCategories(), 10)
}

func TestGoalCategory_Valid(t *testing.T) {
	for _, c := range GoalCategories() {
		assert.True(t, c.Valid(), string(c))
	}
	assert.False(t, GoalCategory("boat").Valid())
	assert.Len(t, GoalCategories(), 8)
}

func TestExpensePatch_Apply_PartialOnly(t *testing.T) {
	e := Expense{
		ID:          "1",
		Amount:      decimal.NewFromInt(50),
		Description: "Lunch",
		Category:    CategoryFood,
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	amount := decimal.NewFromInt(75)
	p := ExpensePatch{Amount: &amount}
	p.Apply(&e)

	assert.True(t, e.Amount.Equal(decimal.NewFromInt(75)))
	assert.Equal(t, "Lunch", e.Description)
	assert.Equal(t, CategoryFood, e.Category)
}

func TestGoalPatch_Apply_PartialOnly(t *testing.T) {
	g := Goal{ID: "g1", Name: "Car", TargetAmount: decimal.NewFromInt(10000), Category: GoalCar}

	name := "New car"
	target := decimal.NewFromInt(12000)
	p := GoalPatch{Name: &name, TargetAmount: &target}
	p.Apply(&g)

	assert.Equal(t, "New car", g.Name)
	assert.True(t, g.TargetAmount.Equal(decimal.NewFromInt(12000)))
	assert.Equal(t, GoalCar, g.Category)
}

func TestMonthOf(t *testing.T) {
	assert.Equal(t, "2024-03", MonthOf(time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)))
}

func TestValidMonth(t *testing.T) {
	assert.True(t, ValidMonth("2024-03"))
	assert.False(t, ValidMonth("2024-3"))
	assert.False(t, ValidMonth("march"))
}

func TestNotePatch_Apply(t *testing.T) {
	n := Note{ID: "n1", Title: "t", Content: "c"}
	content := "updated"
	NotePatch{Content: &content}.Apply(&n)
	require.Equal(t, "t", n.Title)
	require.Equal(t, "updated", n.Content)
}
