package commands

import (
	"context"

	"github.com/mapwise/storymap/migrations"
	"github.com/mapwise/storymap/pkg/configuration"
)

// MigrateUp applies every pending migration to the configured database.
func MigrateUp(ctx context.Context) error {
	conf := configuration.Use()
	conf.Logger().Info("applying migrations")
	return migrations.Up(ctx, conf.Database.ConnectionString())
}

// MigrateDown rolls back the most recent migration.
func MigrateDown(ctx context.Context) error {
	conf := configuration.Use()
	conf.Logger().Info("rolling back last migration")
	return migrations.Down(ctx, conf.Database.ConnectionString())
}
