// Package migrations embeds the SQL schema migrations for the creature store.
package migrations

import "embed"

// FS holds every *.up.sql and *.down.sql file in golang-migrate naming order.
//
//go:embed *.sql
var FS embed.FS
