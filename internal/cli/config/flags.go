package config

import (
	"flag"
	"os"
	"time"

	"github.com/ametova/finkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-f string   path to the local sqlite database file
//	-m string   ISO currency code for rendering amounts
//	-l int      simulated login latency in milliseconds
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-f", "-m", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "f", cfg.DatabasePath, "path to local database file")
	fs.StringVar(&cfg.Currency, "m", cfg.Currency, "ISO currency code")
	loginDelay := fs.Int("l", int(cfg.LoginDelay.Milliseconds()), "login delay (in milliseconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.LoginDelay = time.Duration(*loginDelay) * time.Millisecond
}
