// Package migrations embeds the goose SQL migrations so the API and tests can
// apply them without a checkout on disk.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
