package migrations

import "embed"

// FS contains embedded SQLite migrations for the raid result ledger.
//
//go:embed *.sql
var FS embed.FS
