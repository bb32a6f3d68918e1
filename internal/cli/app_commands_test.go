package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ametova/finkeeper/internal/budgets"
	cliconfig "github.com/ametova/finkeeper/internal/cli/config"
	"github.com/ametova/finkeeper/internal/expenses"
	"github.com/ametova/finkeeper/internal/goals"
	"github.com/ametova/finkeeper/internal/kvstore"
	"github.com/ametova/finkeeper/internal/logging"
	"github.com/ametova/finkeeper/internal/notes"
	"github.com/ametova/finkeeper/internal/notify"
	"github.com/ametova/finkeeper/internal/session"
)

// newTestApp builds an App over an in-memory store with scripted stdin and
// captured stdout.
func newTestApp(t *testing.T, input string) (*App, *bytes.Buffer) {
	t.Helper()

	kv := kvstore.NewMemoryStore()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	var out bytes.Buffer
	notifier := notify.NewConsoleNotifier(&out)

	sess := session.New(kv, notifier, log, session.WithBcryptCost(bcrypt.MinCost))

	cfg := &cliconfig.Config{DatabasePath: ":memory:", Currency: "USD"}
	app := &App{
		config:   cfg,
		sess:     sess,
		expenses: expenses.New(kv, sess, notifier, log),
		budgets:  budgets.New(kv, sess, notifier, log),
		goals:    goals.New(kv, sess, notifier, log),
		notes:    notes.New(kv, sess, notifier, log),
		reader:   bufio.NewReader(strings.NewReader(input)),
		out:      &out,
	}
	require.NoError(t, sess.Restore(context.Background()))
	return app, &out
}

// stubPassword overrides the terminal password seam for one test.
func stubPassword(t *testing.T, passwords ...string) {
	t.Helper()
	orig := getPassword
	i := 0
	getPassword = func(io.Writer, string) (string, error) {
		pw := passwords[i%len(passwords)]
		i++
		return pw, nil
	}
	t.Cleanup(func() { getPassword = orig })
}

func TestLogin_DemoAccount(t *testing.T) {
	app, _ := newTestApp(t, session.DemoEmail+"\n")
	stubPassword(t, session.DemoPassword)

	require.NoError(t, app.Login(context.Background()))
	assert.True(t, app.isLoggedIn())
	assert.Equal(t, "(Demo User)", app.getStatus())
}

func TestRegister_LogsIn(t *testing.T) {
	app, _ := newTestApp(t, "Alice\nalice@example.com\n")
	stubPassword(t, "pw123456")

	require.NoError(t, app.Register(context.Background()))
	assert.True(t, app.isLoggedIn())
	assert.Equal(t, "(Alice)", app.getStatus())
}

func TestAddAndListExpenses(t *testing.T) {
	// Login input, then AddExpense prompts: description, amount, category, date.
	app, out := newTestApp(t,
		session.DemoEmail+"\n"+
			"Lunch\n12.50\nfood\n2024-03-10\n")
	stubPassword(t, session.DemoPassword)
	ctx := context.Background()

	require.NoError(t, app.Login(ctx))
	// The demo user starts with seeded sample transactions.
	seeded := len(app.expenses.Items())
	require.NotZero(t, seeded)

	require.NoError(t, app.AddExpense(ctx, false))
	assert.Len(t, app.expenses.Items(), seeded+1)

	out.Reset()
	require.NoError(t, app.ListExpenses(ctx))
	assert.Contains(t, out.String(), "Lunch")
	assert.Contains(t, out.String(), "Balance:")
}

func TestDispatch_RequiresLogin(t *testing.T) {
	app, _ := newTestApp(t, "")

	err := app.dispatch(context.Background(), "list", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestDispatch_UnknownCommand(t *testing.T) {
	app, _ := newTestApp(t, session.DemoEmail+"\n")
	stubPassword(t, session.DemoPassword)
	ctx := context.Background()
	require.NoError(t, app.Login(ctx))

	err := app.dispatch(ctx, "frobnicate", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestBudgetCommands(t *testing.T) {
	app, out := newTestApp(t, session.DemoEmail+"\n")
	stubPassword(t, session.DemoPassword)
	ctx := context.Background()
	require.NoError(t, app.Login(ctx))

	require.NoError(t, app.dispatch(ctx, "budget", []string{"2024-03", "1000"}))
	assert.Error(t, app.dispatch(ctx, "budget", []string{"march", "1000"}))
	assert.Error(t, app.dispatch(ctx, "budget", []string{"2024-03", "lots"}))

	out.Reset()
	require.NoError(t, app.ListBudgets(ctx))
	assert.Contains(t, out.String(), "2024-03: limit $1,000.00")
}

func TestGoalFundAndDelete(t *testing.T) {
	// AddGoal prompts: name, target, category, date.
	app, out := newTestApp(t,
		session.DemoEmail+"\n"+
			"Vacation\n2000\nvacation\n2025-06-01\n")
	stubPassword(t, session.DemoPassword)
	ctx := context.Background()
	require.NoError(t, app.Login(ctx))

	require.NoError(t, app.AddGoal(ctx))
	items := app.goals.Items()
	require.Len(t, items, 1)

	require.NoError(t, app.FundGoal(ctx, items[0].ID, decimalFromString(t, "500")))
	assert.True(t, app.goals.Items()[0].CurrentAmount.Equal(decimalFromString(t, "500")))

	out.Reset()
	require.NoError(t, app.ListGoals(ctx))
	assert.Contains(t, out.String(), "Vacation")
	assert.Contains(t, out.String(), "$500.00")

	require.NoError(t, app.DeleteGoal(ctx, items[0].ID))
	assert.Empty(t, app.goals.Items())
}

func TestNoteCommands(t *testing.T) {
	app, out := newTestApp(t,
		session.DemoEmail+"\n"+
			// AddNote: title, multiline content, blank to finish.
			"Shopping list\nmilk\neggs\n\n")
	stubPassword(t, session.DemoPassword)
	ctx := context.Background()
	require.NoError(t, app.Login(ctx))

	require.NoError(t, app.AddNote(ctx))
	items := app.notes.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "milk\neggs", items[0].Content)

	out.Reset()
	require.NoError(t, app.ListNotes(ctx))
	assert.Contains(t, out.String(), "Shopping list")
}

func TestLogout_ClearsStores(t *testing.T) {
	app, _ := newTestApp(t, session.DemoEmail+"\n")
	stubPassword(t, session.DemoPassword)
	ctx := context.Background()
	require.NoError(t, app.Login(ctx))
	require.NotEmpty(t, app.expenses.Items())

	require.NoError(t, app.Logout(ctx))
	assert.False(t, app.isLoggedIn())
	assert.Empty(t, app.expenses.Items())
}

func TestReportCommand(t *testing.T) {
	app, out := newTestApp(t, session.DemoEmail+"\n")
	stubPassword(t, session.DemoPassword)
	ctx := context.Background()
	require.NoError(t, app.Login(ctx))

	out.Reset()
	require.NoError(t, app.Report(ctx, ""))
	assert.Contains(t, out.String(), "Transaction History for Demo User")
	assert.Contains(t, out.String(), "Total Income:")
}

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
