package content

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Source yields the raw lines of a world definition
type Source interface {
	Lines(ctx context.Context) ([]string, error)
	String() string
}

// FileSource reads a world file from disk
type FileSource struct {
	Path string
}

func (s FileSource) String() string { return s.Path }

func (s FileSource) Lines(ctx context.Context) ([]string, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open world file: %w", err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading world file: %w", err)
	}
	return lines, nil
}

// PostgresSource reads the lines of one named world from the world_lines table
type PostgresSource struct {
	DB    *sql.DB
	World string
}

func (s PostgresSource) String() string { return "postgres:" + s.World }

func (s PostgresSource) Lines(ctx context.Context) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT line FROM world_lines WHERE world = $1 ORDER BY line_no`, s.World)
	if err != nil {
		return nil, fmt.Errorf("failed to query world lines: %w", err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("failed to scan world line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read world lines: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("world %q has no lines", s.World)
	}
	return lines, nil
}

// OpenPostgres connects to dsn and ensures the world_lines table exists
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return db, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS world_lines (
		world   TEXT    NOT NULL,
		line_no INTEGER NOT NULL,
		line    TEXT    NOT NULL,
		PRIMARY KEY (world, line_no)
	)`)
	return err
}

// ImportLines replaces the stored lines of world with lines, in one transaction
func ImportLines(ctx context.Context, db *sql.DB, world string, lines []string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM world_lines WHERE world = $1`, world); err != nil {
		return fmt.Errorf("failed to clear world %q: %w", world, err)
	}
	for i, line := range lines {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO world_lines (world, line_no, line) VALUES ($1, $2, $3)`,
			world, i+1, line); err != nil {
			return fmt.Errorf("failed to insert line %d: %w", i+1, err)
		}
	}
	return tx.Commit()
}
