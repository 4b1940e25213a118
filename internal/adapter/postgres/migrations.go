package postgres

import "embed"

// Migrations holds the schema and the BATODA sample data.
//
//go:embed migrations/*.sql
var Migrations embed.FS
