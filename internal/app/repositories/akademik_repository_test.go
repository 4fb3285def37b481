package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wirahusada/portal-backend/internal/app/models"
)

func TestStudyPlanBySemesterFilters(t *testing.T) {
	conn := &queryRecorder{}
	repo := NewAkademikRepository(conn)

	_, err := repo.GetStudyPlanBySemester(context.Background(), "2021001", 4, 2)

	assert.ErrorIs(t, err, errQueryStopped)
	assert.Contains(t, conn.sql, "FROM krs JOIN krsmatakuliah km")
	assert.Contains(t, conn.sql, "LEFT JOIN kelasmahasiswa kls")
	assert.Contains(t, conn.sql, "ORDER BY mk.kdmk")
	assert.Equal(t, []any{"2021001", 2, 4}, conn.args)
}

func TestStudyPlanByYearOrdersBySemester(t *testing.T) {
	conn := &queryRecorder{}
	repo := NewAkademikRepository(conn)

	_, err := repo.GetStudyPlanByYear(context.Background(), "2021001", 2023)

	assert.ErrorIs(t, err, errQueryStopped)
	assert.Contains(t, conn.sql, "ORDER BY krs.semesterke, mk.kdmk")
	assert.Equal(t, []any{"2021001", 2023}, conn.args)
}

func TestListStudyPlanYearsSkipsNullYears(t *testing.T) {
	conn := &queryRecorder{}
	repo := NewAkademikRepository(conn)

	_, err := repo.ListStudyPlanYears(context.Background(), "2021001")

	assert.ErrorIs(t, err, errQueryStopped)
	assert.Contains(t, conn.sql, "SELECT DISTINCT tahun FROM krs")
	assert.Contains(t, conn.sql, "tahun IS NOT NULL")
	assert.Contains(t, conn.sql, "ORDER BY tahun DESC")
}

func TestTranscriptRowsQuery(t *testing.T) {
	conn := &queryRecorder{}
	repo := NewAkademikRepository(conn)

	_, err := repo.GetTranscriptRows(context.Background(), "2021001")

	assert.ErrorIs(t, err, errQueryStopped)
	assert.Contains(t, conn.sql, "km.usulan_hapus")
	assert.Contains(t, conn.sql, "ORDER BY km.semesterke, mk.namamk")
	assert.Equal(t, []any{"2021001"}, conn.args)
}

func TestSetUsulanHapus(t *testing.T) {
	ref := models.CourseRef{NRM: "2021001", KdMK: "KB101", SemesterKe: 2}

	t.Run("updates matching row", func(t *testing.T) {
		conn := &queryRecorder{tag: "UPDATE 1"}
		repo := NewAkademikRepository(conn)

		require.NoError(t, repo.SetUsulanHapus(context.Background(), ref, true))
		assert.Contains(t, conn.sql, "UPDATE krsmatakuliah SET usulan_hapus = $1 WHERE")
		assert.Equal(t, []any{true, "KB101", "2021001", 2}, conn.args)
	})

	t.Run("no matching row", func(t *testing.T) {
		conn := &queryRecorder{tag: "UPDATE 0"}
		repo := NewAkademikRepository(conn)

		assert.ErrorIs(t, repo.SetUsulanHapus(context.Background(), ref, false), ErrCourseRecordNotFound)
	})
}

func TestLatestSemesterDefaultsToZero(t *testing.T) {
	conn := &queryRecorder{}
	repo := NewAkademikRepository(conn)

	semester, err := repo.LatestSemester(context.Background(), "2021001")

	require.NoError(t, err)
	assert.Equal(t, 0, semester)
	assert.Contains(t, conn.sql, "COALESCE(MAX(semesterke), 0)")
}
