package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Migration struct {
	Version string
	Name    string
	File    string
}

// RunMigrations applies every *.sql file in dir that is not yet recorded in
// schema_migrations, in lexical order, each inside its own transaction.
// Files are named <version>_<name>.sql.
func RunMigrations(ctx context.Context, db *pgxpool.Pool, dir string, logger *zap.Logger) error {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	rows, err := db.Query(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return fmt.Errorf("list applied migrations: %w", err)
	}
	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			rows.Close()
			return fmt.Errorf("scan migration record: %w", err)
		}
		applied[version] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read migration records: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, e.Name())
		}
	}

	for _, m := range Pending(files, applied, logger) {
		content, err := os.ReadFile(filepath.Join(dir, m.File))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", m.File, err)
		}

		logger.Info("applying migration", zap.String("version", m.Version), zap.String("name", m.Name))

		tx, err := db.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}

		if _, err := tx.Exec(ctx, string(content)); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("apply migration %s: %w", m.File, err)
		}

		_, err = tx.Exec(ctx,
			"INSERT INTO schema_migrations (version, name, applied_at) VALUES ($1, $2, $3)",
			m.Version, m.Name, time.Now(),
		)
		if err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("record migration %s: %w", m.File, err)
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit migration %s: %w", m.File, err)
		}
	}

	return nil
}

// Pending returns the migrations among files that are not in applied, sorted
// by version. Names that do not follow <version>_<name>.sql are skipped.
func Pending(files []string, applied map[string]bool, logger *zap.Logger) []Migration {
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	var out []Migration
	for _, file := range sorted {
		if !strings.HasSuffix(file, ".sql") {
			continue
		}
		parts := strings.SplitN(file, "_", 2)
		if len(parts) != 2 || parts[0] == "" {
			logger.Warn("skipping badly named migration", zap.String("file", file))
			continue
		}
		if applied[parts[0]] {
			continue
		}
		out = append(out, Migration{
			Version: parts[0],
			Name:    strings.TrimSuffix(parts[1], ".sql"),
			File:    file,
		})
	}
	return out
}
