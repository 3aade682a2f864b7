// Package migrations embeds the SQL schema migrations so the migrator binary
// ships with them.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
