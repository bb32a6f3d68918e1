package notify

import (
	"context"
	"fmt"
	"io"
)

// ConsoleNotifier prints notifications to a writer, one per line. The CLI
// uses it against stdout.
type ConsoleNotifier struct {
	w io.Writer
}

func NewConsoleNotifier(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{w: w}
}

func (n *ConsoleNotifier) Success(_ context.Context, msg string) {
	fmt.Fprintln(n.w, "[ok]", msg)
}

func (n *ConsoleNotifier) Error(_ context.Context, msg string) {
	fmt.Fprintln(n.w, "[error]", msg)
}

func (n *ConsoleNotifier) Info(_ context.Context, msg string) {
	fmt.Fprintln(n.w, "[info]", msg)
}
