// Package migrations contains the embedded SQL migrations for the checkpoint
// archive.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
