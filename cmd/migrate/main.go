package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/aqarat/estate-engine/internal/config"
)

func main() {
	_ = godotenv.Load()

	var dir string

	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Estate engine schema migration tool",
	}
	rootCmd.PersistentFlags().StringVar(&dir, "dir", "migrations", "directory holding *.sql migration files")

	rootCmd.AddCommand(upCmd(&dir), statusCmd(&dir))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func upCmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := getDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := ensureVersionTable(db); err != nil {
				return err
			}

			files, err := migrationFiles(*dir)
			if err != nil {
				return err
			}
			applied, err := appliedVersions(db)
			if err != nil {
				return err
			}

			ran := 0
			for _, file := range files {
				version := filepath.Base(file)
				if applied[version] {
					continue
				}
				sql, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", file, err)
				}

				tx, err := db.Beginx()
				if err != nil {
					return err
				}
				if _, err := tx.Exec(string(sql)); err != nil {
					_ = tx.Rollback()
					return fmt.Errorf("migration %s failed: %w", version, err)
				}
				if _, err := tx.Exec(
					`INSERT INTO schema_migrations (version, applied_at) VALUES ($1, $2)`,
					version, time.Now().UTC(),
				); err != nil {
					_ = tx.Rollback()
					return fmt.Errorf("failed to record %s: %w", version, err)
				}
				if err := tx.Commit(); err != nil {
					return err
				}

				fmt.Printf("applied %s\n", version)
				ran++
			}

			if ran == 0 {
				fmt.Println("nothing to apply")
			}
			return nil
		},
	}
}

func statusCmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which migrations have been applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := getDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := ensureVersionTable(db); err != nil {
				return err
			}

			files, err := migrationFiles(*dir)
			if err != nil {
				return err
			}
			applied, err := appliedVersions(db)
			if err != nil {
				return err
			}

			fmt.Printf("%-48s  %-8s\n", "Migration", "Status")
			for _, file := range files {
				version := filepath.Base(file)
				status := "Pending"
				if applied[version] {
					status = "Applied"
				}
				fmt.Printf("%-48s  %-8s\n", version, status)
			}
			return nil
		},
	}
}

func getDB() (*sqlx.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return sqlx.Connect("postgres", cfg.Database.URL)
}

func ensureVersionTable(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL
		)`)
	return err
}

func migrationFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no migration files found in %s", dir)
	}
	sort.Strings(files)
	return files, nil
}

func appliedVersions(db *sqlx.DB) (map[string]bool, error) {
	var versions []string
	if err := db.Select(&versions, `SELECT version FROM schema_migrations`); err != nil {
		return nil, err
	}
	applied := make(map[string]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}
	return applied, nil
}
