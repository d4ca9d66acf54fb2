package server

import (
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migrate applies database migrations from the given directory.
// dir example: file://migrations
func Migrate(dir string, dsn string, direction string, steps int) error {
	if dir == "" {
		dir = "file://migrations"
	}
	if dsn == "" {
		dsn = os.Getenv("DATABASE_URL")
	}
	if dsn == "" {
		return fmt.Errorf("no database DSN configured")
	}

	m, err := migrate.New(dir, dsn)
	if err != nil {
		return err
	}
	switch direction {
	case "up":
		if steps > 0 {
			return stepUnlessNoChange(m.Steps(steps))
		}
		return stepUnlessNoChange(m.Up())
	case "down":
		if steps > 0 {
			return stepUnlessNoChange(m.Steps(-steps))
		}
		return stepUnlessNoChange(m.Down())
	default:
		return fmt.Errorf("unknown direction: %s", direction)
	}
}

// stepUnlessNoChange treats an already-migrated database as success.
func stepUnlessNoChange(err error) error {
	if err == migrate.ErrNoChange {
		return nil
	}
	return err
}
