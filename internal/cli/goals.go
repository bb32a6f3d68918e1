package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ametova/finkeeper/internal/models"
	"github.com/ametova/finkeeper/internal/report"
)

// ListGoals prints every savings goal with its progress.
func (a *App) ListGoals(ctx context.Context) error {
	items := a.goals.Items()
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No goals yet")
		return nil
	}

	for _, g := range items {
		fmt.Fprintf(a.out, "%s  %s [%s]: %s of %s, due %s\n",
			g.ID, g.Name, g.Category,
			report.FormatAmount(g.CurrentAmount, a.config.Currency),
			report.FormatAmount(g.TargetAmount, a.config.Currency),
			g.TargetDate.Format("2006-01-02"))
	}

	fmt.Fprintf(a.out, "\nTotal saved: %s of %s\n",
		report.FormatAmount(a.goals.TotalSaved(), a.config.Currency),
		report.FormatAmount(a.goals.TotalTarget(), a.config.Currency))
	return nil
}

// AddGoal interactively creates a savings goal.
func (a *App) AddGoal(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Goal name", a.out)
	if err != nil {
		return err
	}

	target, err := GetAmount(a.reader, "Target amount", a.out)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(models.GoalCategories()))
	for _, c := range models.GoalCategories() {
		names = append(names, string(c))
	}
	raw, err := getSimpleText(a.reader, "Category ("+strings.Join(names, ", ")+")", a.out)
	if err != nil {
		return err
	}
	category := models.GoalCategory(raw)
	if !category.Valid() {
		return fmt.Errorf("unknown category %q", raw)
	}

	due, err := GetDate(a.reader, "Target date", a.out, timeNow())
	if err != nil {
		return err
	}

	_, err = a.goals.Add(ctx, models.Goal{
		Name:         name,
		TargetAmount: target,
		Category:     category,
		TargetDate:   due,
	})
	return err
}

// FundGoal moves an amount into (or, when negative, out of) a goal.
func (a *App) FundGoal(ctx context.Context, id string, delta decimal.Decimal) error {
	return a.goals.AddToGoal(ctx, id, delta)
}

// DeleteGoal removes a goal by id.
func (a *App) DeleteGoal(ctx context.Context, id string) error {
	return a.goals.Delete(ctx, id)
}
