package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ametova/finkeeper/internal/models"
)

func sampleExpenses() []models.Expense {
	march := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	april := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
	return []models.Expense{
		{ID: "1", Amount: decimal.RequireFromString("45.99"), Description: "Grocery shopping", Category: models.CategoryFood, Date: march},
		{ID: "2", Amount: decimal.RequireFromString("1200"), Description: "Monthly salary", Category: models.CategoryOther, Date: march, IsIncome: true},
		{ID: "3", Amount: decimal.RequireFromString("30"), Description: "Gas", Category: models.CategoryTransportation, Date: april},
		{ID: "4", Amount: decimal.RequireFromString("800"), Description: "Rent", Category: models.CategoryHousing, Date: march},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleExpenses())

	assert.True(t, s.TotalIncome.Equal(decimal.RequireFromString("1200")))
	assert.True(t, s.TotalExpenses.Equal(decimal.RequireFromString("875.99")))
	assert.True(t, s.Balance.Equal(decimal.RequireFromString("324.01")))

	assert.Len(t, s.ByCategory, 4)
	assert.True(t, s.ByCategory[IncomeBucket].Equal(decimal.RequireFromString("1200")))
	assert.True(t, s.ByCategory["food"].Equal(decimal.RequireFromString("45.99")))
	assert.True(t, s.ByCategory["transportation"].Equal(decimal.RequireFromString("30")))
	assert.True(t, s.ByCategory["housing"].Equal(decimal.RequireFromString("800")))
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.True(t, s.TotalIncome.IsZero())
	assert.True(t, s.TotalExpenses.IsZero())
	assert.True(t, s.Balance.IsZero())
	assert.Empty(t, s.ByCategory)
}

func TestForMonth(t *testing.T) {
	march := ForMonth(sampleExpenses(), "2024-03")
	require.Len(t, march, 3)
	assert.Equal(t, "1", march[0].ID)
	assert.Equal(t, "2", march[1].ID)
	assert.Equal(t, "4", march[2].ID)

	assert.Empty(t, ForMonth(sampleExpenses(), "2023-12"))
}

func TestMonthSpent(t *testing.T) {
	// Income in the same month does not count towards spending.
	spent := MonthSpent(sampleExpenses(), "2024-03")
	assert.True(t, spent.Equal(decimal.RequireFromString("845.99")))

	spent = MonthSpent(sampleExpenses(), "2024-04")
	assert.True(t, spent.Equal(decimal.RequireFromString("30")))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$45.99", FormatAmount(decimal.RequireFromString("45.99"), "USD"))
	assert.Equal(t, "$1,200.00", FormatAmount(decimal.RequireFromString("1200"), "USD"))
	// Unknown code falls back to a plain rendering.
	assert.Equal(t, "10.00 XXQ", FormatAmount(decimal.RequireFromString("10"), "XXQ"))
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, sampleExpenses(), "Demo User", "USD")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Transaction History for Demo User")
	assert.Contains(t, out, "Grocery shopping")
	assert.Contains(t, out, "+$1,200.00")
	assert.Contains(t, out, "Total Expenses: $875.99")
	assert.Contains(t, out, "Balance:        $324.01")
	assert.Contains(t, out, "income")
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleExpenses()[:2]))

	assert.Equal(t,
		"date,description,category,amount,type\n"+
			"2024-03-10,Grocery shopping,food,45.99,expense\n"+
			"2024-03-10,Monthly salary,other,1200,income\n",
		buf.String())
}
