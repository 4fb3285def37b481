package migrations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ErrTableMissing is returned when the study plan table does not exist
var ErrTableMissing = errors.New("krsmatakuliah table does not exist")

const (
	studyPlanTable = "krsmatakuliah"
	usulanColumn   = "usulan_hapus"
)

// TableStructure describes the study plan table as seen in information_schema
type TableStructure struct {
	TableExists    bool
	HasUsulanHapus bool
	ColumnCount    int
}

// Result reports what a migration run did
type Result struct {
	Success      bool
	Message      string
	HadToMigrate bool
}

// Migrator keeps the academic schema compatible with the portal. It runs on
// database/sql so it can be driven by any driver, including the pgx pool bridge.
type Migrator struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewMigrator creates a new migrator
func NewMigrator(db *sql.DB, logger zerolog.Logger) *Migrator {
	return &Migrator{
		db:     db,
		logger: logger.With().Str("component", "migrator").Logger(),
	}
}

// CheckTableStructure inspects the study plan table columns
func (m *Migrator) CheckTableStructure(ctx context.Context) (TableStructure, error) {
	var s TableStructure

	var tables int
	err := m.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = current_schema() AND table_name = $1`, studyPlanTable).Scan(&tables)
	if err != nil {
		return s, fmt.Errorf("failed to check table existence: %w", err)
	}
	if tables == 0 {
		return s, ErrTableMissing
	}
	s.TableExists = true

	rows, err := m.db.QueryContext(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = $1
		ORDER BY ordinal_position`, studyPlanTable)
	if err != nil {
		return s, fmt.Errorf("failed to list columns: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return s, fmt.Errorf("failed to scan column: %w", err)
		}
		s.ColumnCount++
		if name == usulanColumn {
			s.HasUsulanHapus = true
		}
	}
	if err := rows.Err(); err != nil {
		return s, fmt.Errorf("error iterating columns: %w", err)
	}

	m.logger.Debug().
		Bool("has_usulan_hapus", s.HasUsulanHapus).
		Int("columns", s.ColumnCount).
		Msg("Study plan table inspected")
	return s, nil
}

func (m *Migrator) hasUsulanHapusColumn(ctx context.Context) (bool, error) {
	var found bool
	err := m.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.columns
			WHERE table_schema = current_schema() AND table_name = $1 AND column_name = $2
		)`, studyPlanTable, usulanColumn).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("failed to check %s column: %w", usulanColumn, err)
	}
	return found, nil
}

// Run adds the usulan_hapus column when it is missing. It is safe to call on
// every startup.
func (m *Migrator) Run(ctx context.Context) Result {
	structure, err := m.CheckTableStructure(ctx)
	if err != nil {
		return Result{Message: fmt.Sprintf("Migration failed: %v", err)}
	}

	if structure.HasUsulanHapus {
		return Result{Success: true, Message: "usulan_hapus column already exists"}
	}

	m.logger.Info().Msg("Adding usulan_hapus column to krsmatakuliah")
	if _, err := m.db.ExecContext(ctx,
		`ALTER TABLE krsmatakuliah ADD COLUMN usulan_hapus BOOLEAN NOT NULL DEFAULT FALSE`); err != nil {
		return Result{Message: fmt.Sprintf("Migration failed: %v", err)}
	}

	ok, err := m.hasUsulanHapusColumn(ctx)
	if err != nil {
		return Result{HadToMigrate: true, Message: fmt.Sprintf("Migration failed: %v", err)}
	}
	if !ok {
		return Result{HadToMigrate: true, Message: "Migration completed but column verification failed"}
	}

	return Result{
		Success:      true,
		HadToMigrate: true,
		Message:      "Successfully added usulan_hapus column to krsmatakuliah table",
	}
}

// Initialize runs the migration and turns an unsuccessful result into an error
func (m *Migrator) Initialize(ctx context.Context) error {
	result := m.Run(ctx)
	if !result.Success {
		m.logger.Error().Str("reason", result.Message).Msg("Database migration failed")
		return fmt.Errorf("database migration failed: %s", result.Message)
	}

	if result.HadToMigrate {
		m.logger.Info().Msg(result.Message)
	} else {
		m.logger.Info().Str("reason", result.Message).Msg("Database migration skipped")
	}
	return nil
}
