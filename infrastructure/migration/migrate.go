// Package migration applies the SQL files under sql/ to the database in
// version order, recording each applied version in schema_migrations.
package migration

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/database/postgres"
	"github.com/sirupsen/logrus"
)

const migrationsTable = "schema_migrations"

//go:embed sql/*.sql
var files embed.FS

type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Load reads the embedded migrations sorted by version. File names must look
// like 0001_name.sql.
func Load() ([]Migration, error) {
	return load(files, "sql")
}

func load(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	migrations := make([]Migration, 0, len(entries))
	seen := make(map[int]string, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		version, name, err := parseFileName(entry.Name())
		if err != nil {
			return nil, err
		}
		if previous, ok := seen[version]; ok {
			return nil, fmt.Errorf("migrations %s and %s share version %d", previous, entry.Name(), version)
		}
		seen[version] = entry.Name()

		content, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}

		migrations = append(migrations, Migration{Version: version, Name: name, SQL: string(content)})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

func parseFileName(fileName string) (int, string, error) {
	base := strings.TrimSuffix(fileName, ".sql")
	prefix, name, found := strings.Cut(base, "_")
	if !found || name == "" {
		return 0, "", fmt.Errorf("migration %s: expected <version>_<name>.sql", fileName)
	}

	version, err := strconv.Atoi(prefix)
	if err != nil || version <= 0 {
		return 0, "", fmt.Errorf("migration %s: invalid version %q", fileName, prefix)
	}

	return version, name, nil
}

// Apply runs every migration newer than the database's latest version, each
// in its own transaction, and returns the names of those applied.
func Apply(ctx context.Context, conn postgres.Conn) ([]string, error) {
	migrations, err := Load()
	if err != nil {
		return nil, err
	}

	if _, err := conn.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+migrationsTable+` (
		version    INTEGER PRIMARY KEY,
		name       TEXT        NOT NULL,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`); err != nil {
		return nil, fmt.Errorf("create %s: %w", migrationsTable, err)
	}

	current, err := currentVersion(ctx, conn)
	if err != nil {
		return nil, err
	}

	applied := make([]string, 0)
	for _, migration := range pending(migrations, current) {
		logger := logrus.WithFields(logrus.Fields{
			"version": migration.Version,
			"name":    migration.Name,
		})

		err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, migration.SQL); err != nil {
				return err
			}

			query, args, err := recordQuery(migration)
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx, query, args...)
			return err
		})
		if err != nil {
			logger.WithError(err).Error("migration failed")
			return applied, fmt.Errorf("apply migration %04d_%s: %w", migration.Version, migration.Name, err)
		}

		logger.Info("migration applied")
		applied = append(applied, fmt.Sprintf("%04d_%s", migration.Version, migration.Name))
	}

	return applied, nil
}

func currentVersion(ctx context.Context, conn postgres.Queryer) (int, error) {
	query, args, err := squirrel.
		Select("COALESCE(MAX(version), 0)").
		From(migrationsTable).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var version int
	if err := conn.QueryRowContext(ctx, query, args...).Scan(&version); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

func pending(migrations []Migration, current int) []Migration {
	out := make([]Migration, 0, len(migrations))
	for _, migration := range migrations {
		if migration.Version > current {
			out = append(out, migration)
		}
	}
	return out
}

func recordQuery(migration Migration) (string, []any, error) {
	return squirrel.
		Insert(migrationsTable).
		Columns("version", "name").
		Values(migration.Version, migration.Name).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}
