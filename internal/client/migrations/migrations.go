// Package migrations embeds the goose migrations for the local sqlite state
// database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
