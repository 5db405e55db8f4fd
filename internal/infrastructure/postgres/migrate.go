package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/tern/v2/migrate"
)

// versionTable registra la versión de esquema aplicada por tern.
const versionTable = "schema_version"

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate lleva el esquema a la última versión embebida en migrations/ y devuelve los nombres
// de las migraciones aplicadas en esta llamada. tern serializa migradores concurrentes con un
// lock consultivo y ejecuta cada migración en su propia transacción.
func Migrate(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	m, err := migrate.NewMigrator(ctx, conn.Conn(), versionTable)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}

	scripts, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open migrations: %w", err)
	}
	if err := m.LoadMigrations(scripts); err != nil {
		return nil, fmt.Errorf("load migrations: %w", err)
	}

	var applied []string
	m.OnStart = func(_ int32, name, _, _ string) {
		applied = append(applied, name)
	}
	if err := m.Migrate(ctx); err != nil {
		return applied, fmt.Errorf("migrate: %w", err)
	}
	return applied, nil
}
