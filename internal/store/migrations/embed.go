// Package migrations embeds the SQL migrations applied on store open.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
