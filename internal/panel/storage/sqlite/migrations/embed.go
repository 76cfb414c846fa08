// Package migrations contains embedded SQL migrations for the SQLite store.
package migrations

import "embed"

//go:embed panel/*.sql
var PanelFS embed.FS
