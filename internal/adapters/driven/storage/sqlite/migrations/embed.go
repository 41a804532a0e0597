// Package migrations embeds the SQL migrations for the scrape
// history database.
package migrations

import "embed"

// FS holds the versioned migration files, embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
