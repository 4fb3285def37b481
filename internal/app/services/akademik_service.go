package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/wirahusada/portal-backend/internal/app/models"
	"github.com/wirahusada/portal-backend/internal/app/models/dto"
	"github.com/wirahusada/portal-backend/internal/app/models/dto/enums"
	"github.com/wirahusada/portal-backend/internal/app/repositories"
	"github.com/wirahusada/portal-backend/internal/pkg/apperrors"
)

// Academic service messages
const (
	MsgStudentNotFound = "Data mahasiswa tidak ditemukan"
	MsgCourseNotFound  = "Mata kuliah tidak ditemukan pada riwayat studi mahasiswa ini."
)

// AkademikService builds transcripts, grade cards and study plans
type AkademikService struct {
	students repositories.StudentReader
	records  repositories.AkademikStore
	logger   zerolog.Logger
}

// NewAkademikService creates a new AkademikService
func NewAkademikService(students repositories.StudentReader, records repositories.AkademikStore, logger zerolog.Logger) *AkademikService {
	return &AkademikService{
		students: students,
		records:  records,
		logger:   logger,
	}
}

// ListStudents returns the full roster ordered by name
func (s *AkademikService) ListStudents(ctx context.Context) ([]dto.DaftarMahasiswa, error) {
	roster, err := s.students.ListRoster(ctx)
	if err != nil {
		return nil, apperrors.Internal("Gagal mengambil daftar mahasiswa", err)
	}

	result := make([]dto.DaftarMahasiswa, 0, len(roster))
	for _, e := range roster {
		result = append(result, dto.DaftarMahasiswa{NRM: e.NRM, Namam: e.Namam})
	}
	return result, nil
}

// GetInfo returns the student's identity with their latest semester and plan years
func (s *AkademikService) GetInfo(ctx context.Context, nrm string) (*dto.MahasiswaInfo, error) {
	student, err := s.students.FindByNRM(ctx, nrm)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return nil, apperrors.NotFound(MsgStudentNotFound)
		}
		return nil, apperrors.Internal("Gagal mengambil data mahasiswa", err)
	}

	latest, err := s.records.LatestSemester(ctx, nrm)
	if err != nil {
		return nil, apperrors.Internal("Gagal mengambil data semester", err)
	}

	years, err := s.ListKRSYears(ctx, nrm)
	if err != nil {
		return nil, err
	}

	return &dto.MahasiswaInfo{
		NRM:              student.NRM,
		NIM:              student.NIM,
		Namam:            student.Namam,
		SemesterTerakhir: latest,
		TahunKRS:         years,
	}, nil
}

// GetTranscript returns every course with the cumulative GPA
func (s *AkademikService) GetTranscript(ctx context.Context, nrm string) (*dto.Transcript, error) {
	rows, err := s.records.GetTranscriptRows(ctx, nrm)
	if err != nil {
		return nil, apperrors.Internal("Gagal mengambil transkrip", err)
	}
	return BuildTranscript(rows)
}

// GetKHS returns the grade card for one semester index
func (s *AkademikService) GetKHS(ctx context.Context, nrm string, semesterKe int) (*dto.KHS, error) {
	if semesterKe < 1 {
		return nil, apperrors.Validation("Parameter semesterKe harus berupa angka positif")
	}

	history, err := s.records.GetCourseHistory(ctx, nrm)
	if err != nil {
		return nil, apperrors.Internal("Gagal mengambil KHS", err)
	}
	return BuildKHS(history, semesterKe)
}

// GetKRSBySemester returns the study plan for one semester index. The regular
// term is implied by parity.
func (s *AkademikService) GetKRSBySemester(ctx context.Context, nrm string, semesterKe int) (*dto.KRS, error) {
	if semesterKe < 1 {
		return nil, apperrors.Validation("Parameter semesterKe harus berupa angka positif")
	}

	jenis := enums.SemesterTypeFor(semesterKe)
	rows, err := s.records.GetStudyPlanBySemester(ctx, nrm, semesterKe, int(jenis))
	if err != nil {
		return nil, apperrors.Internal("Gagal mengambil KRS", err)
	}
	if len(rows) == 0 {
		return nil, apperrors.NotFound(MsgKRSEmpty)
	}
	return BuildKRS(rows), nil
}

// GetKRSByYear returns the study plan for one academic year; a year without
// rows yields an empty plan rather than an error.
func (s *AkademikService) GetKRSByYear(ctx context.Context, nrm string, tahun int) (*dto.KRS, error) {
	rows, err := s.records.GetStudyPlanByYear(ctx, nrm, tahun)
	if err != nil {
		return nil, apperrors.Internal("Gagal mengambil KRS", err)
	}
	if len(rows) == 0 {
		return EmptyKRS(tahun), nil
	}
	return BuildKRS(rows), nil
}

// ListKRSYears returns the academic years that have a study plan, newest first
func (s *AkademikService) ListKRSYears(ctx context.Context, nrm string) ([]int, error) {
	years, err := s.records.ListStudyPlanYears(ctx, nrm)
	if err != nil {
		return nil, apperrors.Internal("Gagal mengambil tahun KRS", err)
	}
	if years == nil {
		years = []int{}
	}
	return years, nil
}

// SetUsulanHapus flags or unflags one of the student's courses for removal
func (s *AkademikService) SetUsulanHapus(ctx context.Context, nrm string, req dto.UsulHapusRequest) (*dto.UsulHapusResponse, error) {
	kode := strings.TrimSpace(req.KodeMataKuliah)
	if kode == "" || req.SemesterKe < 1 || req.UsulanHapus == nil {
		return nil, apperrors.Validation("kodeMataKuliah, semesterKe, dan usulanHapus harus diisi")
	}

	ref := models.CourseRef{NRM: nrm, KdMK: kode, SemesterKe: req.SemesterKe}
	if err := s.records.SetUsulanHapus(ctx, ref, *req.UsulanHapus); err != nil {
		if errors.Is(err, repositories.ErrCourseRecordNotFound) {
			return nil, apperrors.NotFound(MsgCourseNotFound)
		}
		return nil, apperrors.Internal("Gagal memperbarui usulan hapus", err)
	}

	s.logger.Info().
		Str("nrm", nrm).
		Str("kdmk", kode).
		Int("semesterKe", req.SemesterKe).
		Bool("usulanHapus", *req.UsulanHapus).
		Msg("Deletion request updated")

	return &dto.UsulHapusResponse{
		KodeMataKuliah: kode,
		SemesterKe:     req.SemesterKe,
		UsulanHapus:    *req.UsulanHapus,
	}, nil
}
