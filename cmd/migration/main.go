package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	_ "github.com/mattn/go-sqlite3"

	"github.com/fadedpez/cardroyale/internal/logging"
	"github.com/fadedpez/cardroyale/pkg/db/migrations"
)

// Globals are flags shared by every command
type Globals struct {
	DB    string `help:"Path to SQLite database" default:"data/cardroyale.db" type:"path"`
	Dir   string `help:"Read migrations from this directory instead of the built-in set" type:"path"`
	Debug bool   `help:"Enable debug logging"`
}

var cli struct {
	Globals

	Up     UpCmd     `cmd:"" help:"Apply pending migrations"`
	Status StatusCmd `cmd:"" help:"List migrations and whether they are applied"`
	Create CreateCmd `cmd:"" help:"Create a new migration file"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("migration"),
		kong.Description("Card Royale database migrations"),
		kong.UsageOnError(),
	)

	level := logging.INFO
	if cli.Debug {
		level = logging.DEBUG
	}
	logger := logging.NewLogger(level)

	ctx.FatalIfErrorf(ctx.Run(&cli.Globals, logger))
}

func (g *Globals) migrator(logger *logging.Logger) (*migrations.Migrator, func(), error) {
	// Ensure database directory exists
	if err := os.MkdirAll(filepath.Dir(g.DB), 0755); err != nil {
		return nil, nil, fmt.Errorf("error creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", g.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening database: %w", err)
	}

	source := migrations.Embedded()
	if g.Dir != "" {
		source = os.DirFS(g.Dir)
	}
	return migrations.NewMigrator(db, source, logger), func() { db.Close() }, nil
}

// UpCmd applies pending migrations
type UpCmd struct{}

func (c *UpCmd) Run(g *Globals, logger *logging.Logger) error {
	migrator, closeDB, err := g.migrator(logger)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := migrator.MigrateUp(); err != nil {
		return fmt.Errorf("error applying migrations: %w", err)
	}

	fmt.Println("Migrations applied successfully!")
	return nil
}

// StatusCmd prints every migration with its state
type StatusCmd struct{}

func (c *StatusCmd) Run(g *Globals, logger *logging.Logger) error {
	migrator, closeDB, err := g.migrator(logger)
	if err != nil {
		return err
	}
	defer closeDB()

	statuses, err := migrator.Status()
	if err != nil {
		return fmt.Errorf("error reading migration status: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tDESCRIPTION\tAPPLIED")
	for _, s := range statuses {
		fmt.Fprintf(w, "%s\t%s\t%t\n", s.Version, s.Description, s.Applied)
	}
	return w.Flush()
}

// CreateCmd writes the next numbered migration file
type CreateCmd struct {
	Description string `arg:"" help:"Short description, used in the file name"`
	Out         string `help:"Directory to store migrations" default:"pkg/db/migrations/sql" type:"path"`
}

func (c *CreateCmd) Run(g *Globals) error {
	filePath, err := migrations.CreateMigration(c.Out, c.Description)
	if err != nil {
		return fmt.Errorf("error creating migration: %w", err)
	}

	if err := addSQLiteExamples(filePath); err != nil {
		return err
	}

	fmt.Printf("Created migration file: %s\n", filePath)
	fmt.Println("Edit this file to add your database schema changes.")
	return nil
}

func addSQLiteExamples(filePath string) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("error reading migration file: %w", err)
	}

	examples := `
-- SQLite Examples:

-- Create a new table
-- CREATE TABLE IF NOT EXISTS table_name (
--   id INTEGER PRIMARY KEY AUTOINCREMENT,
--   account_id TEXT NOT NULL,
--   amount INTEGER DEFAULT 0,
--   created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
-- );

-- Add a column to existing table
-- ALTER TABLE table_name ADD COLUMN new_column TEXT;

-- Create an index
-- CREATE INDEX IF NOT EXISTS idx_table_column ON table_name(column_name);

-- Your migration SQL goes below this line:

`

	if err := os.WriteFile(filePath, []byte(string(content)+examples), 0644); err != nil {
		return fmt.Errorf("error writing to migration file: %w", err)
	}
	return nil
}
