// Package db embeds the SQL migrations so production builds can carry
// their schema with them; whether the binary reads these or the files on
// disk is decided in cmd/formsctl by the embed_migrations build tag.
package db

import "embed"

//go:embed migrations
var Migrations embed.FS
