package services

import (
	"fmt"

	"github.com/wirahusada/portal-backend/internal/app/models"
	"github.com/wirahusada/portal-backend/internal/app/models/dto"
	"github.com/wirahusada/portal-backend/internal/app/models/dto/enums"
	"github.com/wirahusada/portal-backend/internal/pkg/apperrors"
	"github.com/wirahusada/portal-backend/internal/pkg/helpers"
)

// Academic record messages
const (
	MsgTranscriptEmpty = "Tidak ada data transkrip ditemukan untuk mahasiswa ini."
	MsgHistoryEmpty    = "Tidak ada data riwayat studi ditemukan untuk mahasiswa ini."
	MsgKHSEmptyFormat  = "Tidak ada data KHS ditemukan untuk semester %d."
	MsgKRSEmpty        = "Tidak ada data KRS ditemukan untuk semester yang diminta."
)

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// BuildTranscript computes the cumulative GPA over rows that carry both a
// grade weight and credit hours.
func BuildTranscript(rows []models.TranscriptRow) (*dto.Transcript, error) {
	if len(rows) == 0 {
		return nil, apperrors.NotFound(MsgTranscriptEmpty)
	}

	var totalSKS int
	var weighted float64
	courses := make([]dto.TranscriptCourse, 0, len(rows))

	for _, row := range rows {
		if row.BobotNilai != nil && row.SKS != nil {
			totalSKS += *row.SKS
			weighted += *row.BobotNilai * float64(*row.SKS)
		}
		courses = append(courses, dto.TranscriptCourse{
			KodeMataKuliah: row.KdMK,
			NamaMK:         row.NamaMK,
			SKS:            row.SKS,
			Nilai:          row.Nilai,
			BobotNilai:     row.BobotNilai,
			SemesterKe:     row.SemesterKe,
			UsulanHapus:    row.UsulanHapus,
		})
	}

	return &dto.Transcript{
		IPK:      helpers.FormatGPA(helpers.Round2(helpers.WeightedAverage(weighted, float64(totalSKS)))),
		TotalSKS: totalSKS,
		Courses:  courses,
	}, nil
}

// gradeTally accumulates attempted and passed credit hours and weighted credits
type gradeTally struct {
	sksBeban, sksLulus     int
	bobotBeban, bobotLulus float64
}

func (t *gradeTally) add(row models.HistoryRow) {
	sks := intOrZero(row.SKS)
	weighted := float64(sks) * floatOrZero(row.BobotNilai)

	t.sksBeban += sks
	t.bobotBeban += weighted
	if row.Passed() {
		t.sksLulus += sks
		t.bobotLulus += weighted
	}
}

func (t gradeTally) ipString() string {
	return fmt.Sprintf("%s / %s",
		helpers.FormatGPA(helpers.WeightedAverage(t.bobotLulus, float64(t.sksLulus))),
		helpers.FormatGPA(helpers.WeightedAverage(t.bobotBeban, float64(t.sksBeban))),
	)
}

func (t gradeTally) sksString() string {
	return fmt.Sprintf("%d / %d", t.sksLulus, t.sksBeban)
}

// BuildKHS builds the grade card of one semester from the full course history.
// Semester figures cover rows of that semester; cumulative figures cover every
// row up to and including it.
func BuildKHS(history []models.HistoryRow, semesterKe int) (*dto.KHS, error) {
	if len(history) == 0 {
		return nil, apperrors.NotFound(MsgHistoryEmpty)
	}

	var semester, cumulative gradeTally
	var header *models.HistoryRow
	courses := make([]dto.KHSCourse, 0)

	for i := range history {
		row := history[i]

		if row.SemesterKe == semesterKe {
			if header == nil {
				header = &history[i]
			}
			semester.add(row)

			nilai := "-"
			if row.Nilai != nil && *row.Nilai != "" {
				nilai = *row.Nilai
			}
			courses = append(courses, dto.KHSCourse{
				Nilai:          nilai,
				KodeMataKuliah: row.KdMK,
				NamaMataKuliah: row.NamaMK,
				SKS:            intOrZero(row.SKS),
				Kelas:          nonEmpty(row.Kelas),
			})
		}

		if row.SemesterKe <= semesterKe {
			cumulative.add(row)
		}
	}

	if header == nil {
		return nil, apperrors.NotFoundf(MsgKHSEmptyFormat, semesterKe)
	}

	tahunAjaran := "-"
	if header.Tahun != nil {
		tahunAjaran = helpers.TahunAjaran(*header.Tahun)
	}

	return &dto.KHS{
		SemesterKe:    header.SemesterKe,
		JenisSemester: enums.SemesterType(intOrZero(header.JenisSemesterKode)).ShortLabel(),
		TahunAjaran:   tahunAjaran,
		MataKuliah:    courses,
		Rekapitulasi: dto.Rekapitulasi{
			IPSemester:   semester.ipString(),
			SKSSemester:  semester.sksString(),
			IPKumulatif:  cumulative.ipString(),
			SKSKumulatif: cumulative.sksString(),
		},
	}, nil
}

// BuildKRS shapes study plan rows; the header comes from the first row
func BuildKRS(rows []models.StudyPlanRow) *dto.KRS {
	courses := make([]dto.KRSCourse, 0, len(rows))
	total := 0
	for _, row := range rows {
		sks := intOrZero(row.SKS)
		total += sks
		courses = append(courses, dto.KRSCourse{
			KodeMataKuliah: row.KdMK,
			NamaMataKuliah: row.NamaMK,
			SKS:            sks,
			Kelas:          nonEmpty(row.Kelas),
		})
	}

	krs := &dto.KRS{MataKuliah: courses, TotalSKS: total}
	if len(rows) > 0 {
		first := rows[0]
		krs.SemesterKe = first.SemesterKe
		krs.JenisSemester = enums.SemesterType(first.JenisSemesterKode).Label()
		krs.TahunAjaran = helpers.TahunAjaran(first.Tahun)
	}
	return krs
}

// EmptyKRS is the zero-filled plan returned for a year without rows
func EmptyKRS(tahun int) *dto.KRS {
	return &dto.KRS{
		JenisSemester: enums.SemesterType(0).Label(),
		TahunAjaran:   helpers.TahunAjaran(tahun),
		MataKuliah:    []dto.KRSCourse{},
	}
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
