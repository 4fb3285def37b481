package migrations

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockMigrator(t *testing.T) (*Migrator, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewMigrator(db, zerolog.Nop()), mock
}

func expectTable(mock sqlmock.Sqlmock, count int) {
	mock.ExpectQuery(`SELECT COUNT\(\*\)\s+FROM information_schema\.tables`).
		WithArgs("krsmatakuliah").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(count))
}

func expectColumns(mock sqlmock.Sqlmock, names ...string) {
	rows := sqlmock.NewRows([]string{"column_name"})
	for _, n := range names {
		rows.AddRow(n)
	}
	mock.ExpectQuery(`SELECT column_name\s+FROM information_schema\.columns`).
		WithArgs("krsmatakuliah").
		WillReturnRows(rows)
}

func TestRunSkipsWhenColumnExists(t *testing.T) {
	m, mock := newMockMigrator(t)
	expectTable(mock, 1)
	expectColumns(mock, "nrm", "kdmk", "usulan_hapus")

	result := m.Run(context.Background())

	assert.True(t, result.Success)
	assert.False(t, result.HadToMigrate)
	assert.Equal(t, "usulan_hapus column already exists", result.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunAddsMissingColumn(t *testing.T) {
	m, mock := newMockMigrator(t)
	expectTable(mock, 1)
	expectColumns(mock, "nrm", "kdmk")
	mock.ExpectExec(`ALTER TABLE krsmatakuliah ADD COLUMN usulan_hapus BOOLEAN NOT NULL DEFAULT FALSE`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("krsmatakuliah", "usulan_hapus").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	result := m.Run(context.Background())

	assert.True(t, result.Success)
	assert.True(t, result.HadToMigrate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunReportsFailedVerification(t *testing.T) {
	m, mock := newMockMigrator(t)
	expectTable(mock, 1)
	expectColumns(mock, "nrm")
	mock.ExpectExec(`ALTER TABLE krsmatakuliah`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("krsmatakuliah", "usulan_hapus").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	result := m.Run(context.Background())

	assert.False(t, result.Success)
	assert.True(t, result.HadToMigrate)
	assert.Equal(t, "Migration completed but column verification failed", result.Message)
}

func TestRunFailsWithoutTable(t *testing.T) {
	m, mock := newMockMigrator(t)
	expectTable(mock, 0)

	result := m.Run(context.Background())

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "krsmatakuliah table does not exist")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitializePropagatesAlterError(t *testing.T) {
	m, mock := newMockMigrator(t)
	expectTable(mock, 1)
	expectColumns(mock, "nrm")
	mock.ExpectExec(`ALTER TABLE krsmatakuliah`).WillReturnError(errors.New("permission denied"))

	err := m.Initialize(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckTableStructureCountsColumns(t *testing.T) {
	m, mock := newMockMigrator(t)
	expectTable(mock, 1)
	expectColumns(mock, "nrm", "kdmk", "semester")

	s, err := m.CheckTableStructure(context.Background())

	require.NoError(t, err)
	assert.True(t, s.TableExists)
	assert.False(t, s.HasUsulanHapus)
	assert.Equal(t, 3, s.ColumnCount)
}
