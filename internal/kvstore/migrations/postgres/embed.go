// Package pgmigrations embeds the goose migrations for the Postgres
// key-value store.
package pgmigrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
