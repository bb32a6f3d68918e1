// Package sqlitemigrations embeds the goose migrations for the SQLite
// key-value store.
package sqlitemigrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
