package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/ametova/finkeeper/internal/flagx"
	"github.com/ametova/finkeeper/internal/timex"
)

// JsonConfig is the JSON-facing shape of the CLI configuration. Duration
// fields accept either strings like "500ms" or integer nanoseconds.
type JsonConfig struct {
	DatabasePath string         `json:"database_path"`
	Currency     string         `json:"currency"`
	LoginDelay   timex.Duration `json:"login_delay"`
}

// parseJson loads configuration values from the JSON file named by the -c or
// -config command-line flags. When neither flag is set, nothing is loaded.
// An unreadable or invalid file panics.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.DatabasePath = c.DatabasePath
	config.Currency = c.Currency
	config.LoginDelay = time.Duration(c.LoginDelay.Duration)
}
