package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/saurabhwebdev/tailtally-sub001/internal/infrastructure/config"
)

func main() {
	var (
		dir  = flag.String("dir", "migrations", "directory holding migration files")
		step = flag.Int("step", 0, "number of migrations for the step command")
	)
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(2)
	}
	command := flag.Arg(0)

	if command == "create" {
		if flag.NArg() < 2 {
			fmt.Fprintln(os.Stderr, "create requires a migration name")
			os.Exit(2)
		}
		if err := createMigration(*dir, flag.Arg(1)); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: load configuration: %v\n", err)
		os.Exit(1)
	}

	m, cleanup, err := newMigrator(cfg, *dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := runCommand(m, command, *step); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newMigrator(cfg *config.Config, dir string) (*migrate.Migrate, func(), error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+dir, cfg.Database.DBName, driver)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create migrator: %w", err)
	}

	cleanup := func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			fmt.Fprintf(os.Stderr, "warning: close source: %v\n", srcErr)
		}
		if dbErr != nil {
			fmt.Fprintf(os.Stderr, "warning: close database: %v\n", dbErr)
		}
	}
	return m, cleanup, nil
}

func runCommand(m *migrate.Migrate, command string, step int) error {
	switch command {
	case "up":
		return describe(m.Up(), "all pending migrations applied")
	case "down":
		return describe(m.Steps(-1), "rolled back one migration")
	case "step":
		if step == 0 {
			return errors.New("step requires a non-zero -step value")
		}
		return describe(m.Steps(step), fmt.Sprintf("stepped %d migration(s)", step))
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("no migrations applied")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("version: %d, dirty: %t\n", version, dirty)
		return nil
	case "force":
		if flag.NArg() < 2 {
			return errors.New("force requires a version argument")
		}
		version, err := strconv.Atoi(flag.Arg(1))
		if err != nil {
			return fmt.Errorf("invalid version %q", flag.Arg(1))
		}
		return describe(m.Force(version), fmt.Sprintf("forced version to %d", version))
	case "drop":
		return describe(m.Drop(), "dropped everything in the database")
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func describe(err error, success string) error {
	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Println("no change")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println(success)
	return nil
}

func createMigration(dir, name string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	version := time.Now().UTC().Format("20060102150405")
	for _, direction := range []string{"up", "down"} {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.%s.sql", version, name, direction))
		if err := os.WriteFile(path, []byte("-- "+name+" ("+direction+")\n"), 0o644); err != nil {
			return err
		}
		fmt.Println("created", path)
	}
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Database migration tool

Usage:
  migrate [flags] <command> [args]

Commands:
  up              apply all pending migrations
  down            roll back the most recent migration
  step            apply -step migrations (negative rolls back)
  version         print the current migration version
  force <v>       mark the database as at version v without running migrations
  drop            drop everything in the database
  create <name>   create a new pair of migration files

Flags:
`)
	flag.PrintDefaults()
}
