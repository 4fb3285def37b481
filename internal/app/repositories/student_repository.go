package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/wirahusada/portal-backend/internal/app/models"
	"github.com/wirahusada/portal-backend/internal/db"
	"github.com/wirahusada/portal-backend/internal/pkg/dberrors"
	"github.com/wirahusada/portal-backend/internal/pkg/helpers"
)

// Student error types
var (
	ErrStudentNotFound = errors.New("student not found")
)

var studentColumns = []string{"nrm", "nim", "namam", "tgdaftar", "tplahir", "tglahir", "kdagama", "prodi"}

// StudentRepository reads the mahasiswa master table
type StudentRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(conn db.DBTX) *StudentRepository {
	return &StudentRepository{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanStudent(row interface{ Scan(...any) error }) (*models.Student, error) {
	var s models.Student
	if err := row.Scan(&s.NRM, &s.NIM, &s.Namam, &s.TgDaftar, &s.TpLahir, &s.TgLahir, &s.KdAgama, &s.Prodi); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StudentRepository) findOne(ctx context.Context, where squirrel.Sqlizer) (*models.Student, error) {
	query, args, err := r.sb.Select(studentColumns...).From("mahasiswa").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// FindByNIMAndNRM matches the student number exactly
func (r *StudentRepository) FindByNIMAndNRM(ctx context.Context, nim, nrm string) (*models.Student, error) {
	return r.findOne(ctx, squirrel.Eq{"nim": nim, "nrm": nrm})
}

// FindByNameAndNRM matches the full name case-insensitively
func (r *StudentRepository) FindByNameAndNRM(ctx context.Context, name, nrm string) (*models.Student, error) {
	return r.findOne(ctx, squirrel.And{
		squirrel.Expr("LOWER(namam) = LOWER(?)", name),
		squirrel.Eq{"nrm": nrm},
	})
}

// FindByCompactNameAndNRM matches the name with all whitespace removed on both sides
func (r *StudentRepository) FindByCompactNameAndNRM(ctx context.Context, name, nrm string) (*models.Student, error) {
	return r.findOne(ctx, squirrel.And{
		squirrel.Expr(`LOWER(REGEXP_REPLACE(namam, '\s', '', 'g')) = LOWER(?)`, helpers.StripWhitespace(name)),
		squirrel.Eq{"nrm": nrm},
	})
}

// FindByNRM looks a student up by registration number
func (r *StudentRepository) FindByNRM(ctx context.Context, nrm string) (*models.Student, error) {
	return r.findOne(ctx, squirrel.Eq{"nrm": nrm})
}

// FindByIdentity returns every student with the given numbers and birth date
func (r *StudentRepository) FindByIdentity(ctx context.Context, nim, nrm string, birthDate time.Time) ([]*models.Student, error) {
	query, args, err := r.sb.Select(studentColumns...).
		From("mahasiswa").
		Where(squirrel.Eq{"nim": nim, "nrm": nrm, "tglahir": birthDate}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build identity query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying students by identity: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return students, nil
}

// ListRoster returns every student with an academic record, ordered by name
func (r *StudentRepository) ListRoster(ctx context.Context) ([]models.RosterEntry, error) {
	query, args, err := r.sb.Select("a.nrm", "m.namam").
		From("akademik a").
		Join("mahasiswa m ON a.nrm = m.nrm").
		OrderBy("m.namam ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build roster query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying roster: %w", err)
	}
	defer rows.Close()

	roster := make([]models.RosterEntry, 0)
	for rows.Next() {
		var e models.RosterEntry
		if err := rows.Scan(&e.NRM, &e.Namam); err != nil {
			return nil, fmt.Errorf("error scanning roster: %w", err)
		}
		roster = append(roster, e)
	}
	return roster, rows.Err()
}
