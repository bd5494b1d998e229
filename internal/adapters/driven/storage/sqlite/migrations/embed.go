// Package migrations holds the numbered schema scripts of the ticket database.
package migrations

import "embed"

// FS holds the NNN_name.up.sql and NNN_name.down.sql scripts.
//
//go:embed *.sql
var FS embed.FS
