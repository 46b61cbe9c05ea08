// Package migrations embeds the goose schema migrations for every supported
// database dialect. Each dialect lives in its own directory.
package migrations

import "embed"

const (
	DirPostgres = "postgres"
	DirSQLite   = "sqlite"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS
