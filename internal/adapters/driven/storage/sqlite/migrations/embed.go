// Package migrations holds the corpus cache schema. Files are named
// NNN_name.up.sql / NNN_name.down.sql and applied in version order.
package migrations

import "embed"

// FS holds the migration files compiled into the binary.
//
//go:embed *.sql
var FS embed.FS
