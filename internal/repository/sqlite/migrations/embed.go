// Package migrations holds the SQL schema and the runner that applies it.
package migrations

import "embed"

// FS contains the numbered migration files, applied in filename order.
//
//go:embed *.sql
var FS embed.FS
