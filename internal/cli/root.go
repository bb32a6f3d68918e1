package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// Root runs the command loop. It reads a line, parses the first token as
// the command, and dispatches. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Command errors are printed, not returned, so one bad input never ends the
// session.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to FinKeeper CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "fk %s> ", a.getStatus())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(a.out, "Bye!")
			return
		}

		if err := a.dispatch(ctx, cmd, args); err != nil {
			fmt.Fprintln(a.out, "error:", err)
		}
	}
}

func (a *App) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		a.printHelp()
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	}

	if !a.isLoggedIn() {
		return fmt.Errorf("not logged in, try 'login' or 'register'")
	}

	switch cmd {
	case "l", "list":
		return a.ListExpenses(ctx)
	case "add":
		return a.AddExpense(ctx, false)
	case "income":
		return a.AddExpense(ctx, true)
	case "del":
		if len(args) != 1 {
			return fmt.Errorf("usage: del <id>")
		}
		return a.DeleteExpense(ctx, args[0])

	case "budgets":
		return a.ListBudgets(ctx)
	case "budget":
		if len(args) != 2 {
			return fmt.Errorf("usage: budget <YYYY-MM> <limit>")
		}
		limit, err := decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Errorf("invalid limit %q", args[1])
		}
		return a.SetBudget(ctx, args[0], limit)

	case "goals":
		return a.ListGoals(ctx)
	case "addgoal":
		return a.AddGoal(ctx)
	case "fund":
		if len(args) != 2 {
			return fmt.Errorf("usage: fund <id> <amount>")
		}
		delta, err := decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[1])
		}
		return a.FundGoal(ctx, args[0], delta)
	case "delgoal":
		if len(args) != 1 {
			return fmt.Errorf("usage: delgoal <id>")
		}
		return a.DeleteGoal(ctx, args[0])

	case "notes":
		return a.ListNotes(ctx)
	case "addnote":
		return a.AddNote(ctx)
	case "editnote":
		if len(args) != 1 {
			return fmt.Errorf("usage: editnote <id>")
		}
		return a.EditNote(ctx, args[0])
	case "delnote":
		if len(args) != 1 {
			return fmt.Errorf("usage: delnote <id>")
		}
		return a.DeleteNote(ctx, args[0])

	case "report":
		month := ""
		if len(args) > 0 {
			month = args[0]
		}
		return a.Report(ctx, month)
	case "export":
		if len(args) != 1 {
			return fmt.Errorf("usage: export <file.csv>")
		}
		return a.Export(ctx, args[0])

	case "passwd":
		return a.ChangePassword(ctx)
	case "logout":
		return a.Logout(ctx)
	}

	return fmt.Errorf("unknown command %q", cmd)
}

func (a *App) printHelp() {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Transactions: (l)ist, add, income, del <id>")
		fmt.Fprintln(a.out, "Budgets:      budgets, budget <YYYY-MM> <limit>")
		fmt.Fprintln(a.out, "Goals:        goals, addgoal, fund <id> <amount>, delgoal <id>")
		fmt.Fprintln(a.out, "Notes:        notes, addnote, editnote <id>, delnote <id>")
		fmt.Fprintln(a.out, "Reports:      report [YYYY-MM], export <file.csv>")
		fmt.Fprintln(a.out, "Account:      passwd, logout, exit")
	} else {
		fmt.Fprintln(a.out, "Available commands: register, login, exit")
	}
}
