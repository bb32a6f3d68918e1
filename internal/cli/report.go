package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/ametova/finkeeper/internal/report"
)

// Report renders the transaction history with a summary, optionally limited
// to one YYYY-MM month.
func (a *App) Report(ctx context.Context, month string) error {
	items := a.expenses.Items()
	if month != "" {
		items = report.ForMonth(items, month)
	}

	name := ""
	if id := a.sess.Current(); id != nil {
		name = id.Name
	}
	return report.Render(a.out, items, name, a.config.Currency)
}

// Export writes the transaction history to a CSV file.
func (a *App) Export(ctx context.Context, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := report.WriteCSV(f, a.expenses.Items()); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Exported to", path)
	return nil
}
