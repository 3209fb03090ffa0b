// Package schema provides the embedded JSON schemas for gotest-ctrf
// configuration files and the reports it writes.
package schema

import "embed"

// FS contains the embedded schema files.
//
//go:embed *.schema.json
var FS embed.FS
