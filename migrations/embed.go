// Package migrations embebe el esquema SQL versionado con goose.
package migrations

import "embed"

//go:embed *.sql
var Embed embed.FS
