package config

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, c.DatabasePath, "finkeeper.db")
	assert.Equal(t, c.Currency, "USD")
	assert.Equal(t, c.LoginDelay, 500*time.Millisecond)
}

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)
	os.Args = []string{"cmd", "-f", "other.db", "-m", "EUR", "-l", "0"}

	config := &Config{}
	require.NotPanics(t, func() { parseFlags(config) })

	assert.Empty(t, cmp.Diff(config, &Config{
		DatabasePath: "other.db",
		Currency:     "EUR",
		LoginDelay:   0,
	}))
}

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(map[string]any{
		"database_path": "finance.db",
		"currency":      "EUR",
		"login_delay":   "250ms",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))

	os.Args = []string{"testbin", "-config", path}

	cfg := &Config{}
	parseJson(cfg)

	assert.Equal(t, "finance.db", cfg.DatabasePath)
	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, 250*time.Millisecond, cfg.LoginDelay)
}
