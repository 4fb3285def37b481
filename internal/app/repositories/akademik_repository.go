package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/wirahusada/portal-backend/internal/app/models"
	"github.com/wirahusada/portal-backend/internal/db"
)

// Academic record error types
var (
	ErrCourseRecordNotFound = errors.New("course record not found")
)

// AkademikRepository reads study plans and grades
type AkademikRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewAkademikRepository creates a new AkademikRepository
func NewAkademikRepository(conn db.DBTX) *AkademikRepository {
	return &AkademikRepository{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *AkademikRepository) query(ctx context.Context, b squirrel.Sqlizer) (pgx.Rows, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return r.db.Query(ctx, query, args...)
}

// GetTranscriptRows returns every course row of the student, by semester then course name
func (r *AkademikRepository) GetTranscriptRows(ctx context.Context, nrm string) ([]models.TranscriptRow, error) {
	rows, err := r.query(ctx, r.sb.Select(
		"km.kdmk", "mk.namamk", "mk.sks", "km.nilai", "km.bobotnilai", "km.semesterke", "km.usulan_hapus",
	).
		From("krsmatakuliah km").
		Join("matakuliah mk ON km.kdmk = mk.kdmk AND km.kurikulum = mk.kurikulum").
		Where(squirrel.Eq{"km.nrm": nrm}).
		OrderBy("km.semesterke", "mk.namamk"))
	if err != nil {
		return nil, fmt.Errorf("error querying transcript: %w", err)
	}

	result, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.TranscriptRow])
	if err != nil {
		return nil, fmt.Errorf("error scanning transcript: %w", err)
	}
	return result, nil
}

// GetCourseHistory returns the full course history with study-plan headers and classes
func (r *AkademikRepository) GetCourseHistory(ctx context.Context, nrm string) ([]models.HistoryRow, error) {
	rows, err := r.query(ctx, r.sb.Select(
		"km.semesterke", "k.semester", "k.tahun", "km.nilai", "km.bobotnilai", "km.status",
		"mk.kdmk", "mk.namamk", "mk.sks", "kls.nama AS kelas",
	).
		From("krsmatakuliah km").
		Join("matakuliah mk ON km.kdmk = mk.kdmk AND km.kurikulum = mk.kurikulum").
		LeftJoin("krs k ON km.nrm = k.nrm AND km.semesterke = k.semesterke").
		LeftJoin("kelasmahasiswa kls ON km.nrm = kls.nrm AND k.tahun = kls.tahun AND km.semesterkrs = kls.semester AND km.kdmk = kls.kdmk").
		Where(squirrel.Eq{"km.nrm": nrm}).
		OrderBy("km.semesterke", "mk.kdmk"))
	if err != nil {
		return nil, fmt.Errorf("error querying course history: %w", err)
	}

	result, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.HistoryRow])
	if err != nil {
		return nil, fmt.Errorf("error scanning course history: %w", err)
	}
	return result, nil
}

func (r *AkademikRepository) studyPlanSelect() squirrel.SelectBuilder {
	return r.sb.Select(
		"krs.semesterke", "krs.semester", "krs.tahun",
		"mk.kdmk", "mk.namamk", "mk.sks", "kls.nama AS kelas",
	).
		From("krs").
		Join("krsmatakuliah km ON krs.nrm = km.nrm AND krs.semesterke = km.semesterke AND krs.semester = km.semesterkrs AND krs.tahun = km.tahun").
		Join("matakuliah mk ON km.kdmk = mk.kdmk AND km.kurikulum = mk.kurikulum").
		LeftJoin("kelasmahasiswa kls ON km.nrm = kls.nrm AND krs.tahun = kls.tahun AND km.semesterkrs = kls.semester AND km.kdmk = kls.kdmk AND km.kurikulum = kls.kurikulum")
}

func (r *AkademikRepository) collectStudyPlan(ctx context.Context, b squirrel.Sqlizer) ([]models.StudyPlanRow, error) {
	rows, err := r.query(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("error querying study plan: %w", err)
	}

	result, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.StudyPlanRow])
	if err != nil {
		return nil, fmt.Errorf("error scanning study plan: %w", err)
	}
	return result, nil
}

// GetStudyPlanBySemester returns the plan for one semester index and semester type
func (r *AkademikRepository) GetStudyPlanBySemester(ctx context.Context, nrm string, semesterKe, jenisSemester int) ([]models.StudyPlanRow, error) {
	return r.collectStudyPlan(ctx, r.studyPlanSelect().
		Where(squirrel.Eq{"krs.nrm": nrm, "krs.semesterke": semesterKe, "krs.semester": jenisSemester}).
		OrderBy("mk.kdmk"))
}

// GetStudyPlanByYear returns every plan row of one academic year
func (r *AkademikRepository) GetStudyPlanByYear(ctx context.Context, nrm string, tahun int) ([]models.StudyPlanRow, error) {
	return r.collectStudyPlan(ctx, r.studyPlanSelect().
		Where(squirrel.Eq{"krs.nrm": nrm, "krs.tahun": tahun}).
		OrderBy("krs.semesterke", "mk.kdmk"))
}

// ListStudyPlanYears returns the distinct academic years with a study plan, newest first
func (r *AkademikRepository) ListStudyPlanYears(ctx context.Context, nrm string) ([]int, error) {
	rows, err := r.query(ctx, r.sb.Select("DISTINCT tahun").
		From("krs").
		Where(squirrel.And{squirrel.Eq{"nrm": nrm}, squirrel.NotEq{"tahun": nil}}).
		OrderBy("tahun DESC"))
	if err != nil {
		return nil, fmt.Errorf("error querying study plan years: %w", err)
	}

	years, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("error scanning study plan years: %w", err)
	}
	return years, nil
}

// LatestSemester returns the highest semester index with a study plan, or 0
func (r *AkademikRepository) LatestSemester(ctx context.Context, nrm string) (int, error) {
	query, args, err := r.sb.Select("COALESCE(MAX(semesterke), 0)").
		From("krs").
		Where(squirrel.Eq{"nrm": nrm}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build latest semester query: %w", err)
	}

	var semester int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&semester); err != nil {
		return 0, fmt.Errorf("error retrieving latest semester: %w", err)
	}
	return semester, nil
}

// SetUsulanHapus stores the deletion request flag on one course row
func (r *AkademikRepository) SetUsulanHapus(ctx context.Context, ref models.CourseRef, usulan bool) error {
	query, args, err := r.sb.Update("krsmatakuliah").
		Set("usulan_hapus", usulan).
		Where(squirrel.Eq{"nrm": ref.NRM, "kdmk": ref.KdMK, "semesterke": ref.SemesterKe}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build usulan hapus update: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error updating usulan hapus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCourseRecordNotFound
	}
	return nil
}
