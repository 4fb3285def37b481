package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errQueryStopped = errors.New("query stopped")

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

// queryRecorder keeps the last statement and its arguments. Query always
// fails so tests can inspect the SQL without a result set.
type queryRecorder struct {
	sql    string
	args   []any
	tag    string
	rowErr error
}

func (q *queryRecorder) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.sql, q.args = sql, args
	return pgconn.NewCommandTag(q.tag), nil
}

func (q *queryRecorder) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.sql, q.args = sql, args
	return nil, errQueryStopped
}

func (q *queryRecorder) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.sql, q.args = sql, args
	return errRow{err: q.rowErr}
}

func TestFindByCompactNameStripsAllWhitespace(t *testing.T) {
	conn := &queryRecorder{rowErr: pgx.ErrNoRows}
	repo := NewStudentRepository(conn)

	_, err := repo.FindByCompactNameAndNRM(context.Background(), " Siti\tAminah\n", "2021001")

	assert.ErrorIs(t, err, ErrStudentNotFound)
	assert.Contains(t, conn.sql, `LOWER(REGEXP_REPLACE(namam, '\s', '', 'g')) = LOWER($1)`)
	assert.Contains(t, conn.sql, "nrm = $2")
	assert.Contains(t, conn.sql, "LIMIT 1")
	assert.Equal(t, []any{"SitiAminah", "2021001"}, conn.args)
}

func TestFindByNameIsCaseInsensitive(t *testing.T) {
	conn := &queryRecorder{rowErr: pgx.ErrNoRows}
	repo := NewStudentRepository(conn)

	_, err := repo.FindByNameAndNRM(context.Background(), "Siti Aminah", "2021001")

	assert.ErrorIs(t, err, ErrStudentNotFound)
	assert.Contains(t, conn.sql, "LOWER(namam) = LOWER($1)")
	assert.Equal(t, []any{"Siti Aminah", "2021001"}, conn.args)
}

func TestFindByNIMWrapsDatabaseErrors(t *testing.T) {
	conn := &queryRecorder{rowErr: errors.New("connection reset")}
	repo := NewStudentRepository(conn)

	_, err := repo.FindByNIMAndNRM(context.Background(), "A11.2021.00001", "2021001")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrStudentNotFound)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Contains(t, conn.sql, "FROM mahasiswa WHERE")
	assert.Equal(t, []any{"A11.2021.00001", "2021001"}, conn.args)
}

func TestFindByIdentityFiltersOnBirthDate(t *testing.T) {
	conn := &queryRecorder{}
	repo := NewStudentRepository(conn)
	birth := time.Date(2003, 7, 15, 0, 0, 0, 0, time.UTC)

	_, err := repo.FindByIdentity(context.Background(), "A11.2021.00001", "2021001", birth)

	assert.ErrorIs(t, err, errQueryStopped)
	assert.Contains(t, conn.sql, "nim = $1")
	assert.Contains(t, conn.sql, "nrm = $2")
	assert.Contains(t, conn.sql, "tglahir = $3")
	assert.Equal(t, []any{"A11.2021.00001", "2021001", birth}, conn.args)
}

func TestListRosterOrdersByName(t *testing.T) {
	conn := &queryRecorder{}
	repo := NewStudentRepository(conn)

	_, err := repo.ListRoster(context.Background())

	assert.ErrorIs(t, err, errQueryStopped)
	assert.Equal(t, "SELECT a.nrm, m.namam FROM akademik a JOIN mahasiswa m ON a.nrm = m.nrm ORDER BY m.namam ASC", conn.sql)
	assert.Empty(t, conn.args)
}
