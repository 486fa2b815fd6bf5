// Package migrations embeds the GroupTrail schema into the binary so the
// service can migrate a fresh database without SQL files on disk.
package migrations

import (
	"embed"

	"github.com/nerrad567/grouptrail/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "."
}
