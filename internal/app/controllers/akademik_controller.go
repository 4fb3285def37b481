package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/wirahusada/portal-backend/internal/app/models/dto"
	"github.com/wirahusada/portal-backend/internal/middleware"
)

// Query parameter messages
const (
	MsgSemesterInvalid   = "Parameter semesterKe harus berupa angka positif"
	MsgSemesterRequired  = "Parameter semesterKe dibutuhkan"
	MsgTahunInvalid      = "Parameter tahun harus berupa angka positif"
	MsgKRSSelectorNeeded = "Parameter semesterKe atau tahun dibutuhkan"
	MsgKRSSelectorBoth   = "Gunakan salah satu parameter: semesterKe atau tahun"
)

// AkademikController serves transcripts, grade cards and study plans
type AkademikController struct {
	akademikService AkademikService
	logger          zerolog.Logger
}

// NewAkademikController creates a new AkademikController
func NewAkademikController(akademikService AkademikService, logger zerolog.Logger) *AkademikController {
	return &AkademikController{
		akademikService: akademikService,
		logger:          logger,
	}
}

func parsePositive(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func badRequest(ctx *gin.Context, message string) {
	ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(message))
}

// ListStudents returns the student roster
// @Summary Student roster
// @Description Lists every student with an academic record, ordered by name
// @Tags akademik
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.DaftarMahasiswa} "Daftar mahasiswa berhasil diambil"
// @Failure 500 {object} dto.APIResponse "Gagal mengambil daftar mahasiswa"
// @Router /akademik/mahasiswa/daftar [get]
func (c *AkademikController) ListStudents(ctx *gin.Context) {
	list, err := c.akademikService.ListStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, "Gagal mengambil daftar mahasiswa", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Daftar mahasiswa berhasil diambil", list))
}

// GetInfo returns the student's identity and semester context
// @Summary Student info
// @Description Returns the authenticated student's identity, latest semester and available study plan years
// @Tags akademik
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.MahasiswaInfo} "Data mahasiswa berhasil diambil"
// @Failure 401 {object} dto.APIResponse "Access token required"
// @Failure 404 {object} dto.APIResponse "Data mahasiswa tidak ditemukan"
// @Failure 500 {object} dto.APIResponse "Gagal mengambil data mahasiswa"
// @Router /akademik/mahasiswa/info [get]
func (c *AkademikController) GetInfo(ctx *gin.Context) {
	nrm, ok := requireStudent(ctx)
	if !ok {
		return
	}

	info, err := c.akademikService.GetInfo(ctx.Request.Context(), nrm)
	if err != nil {
		middleware.HandleAPIError(ctx, "Gagal mengambil data mahasiswa", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Data mahasiswa berhasil diambil", info))
}

// GetTranscript returns the student's transcript
// @Summary Transcript
// @Description Returns every course of the authenticated student with the cumulative GPA
// @Tags akademik
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.Transcript} "Transkrip berhasil diambil"
// @Failure 401 {object} dto.APIResponse "Access token required"
// @Failure 403 {object} dto.APIResponse "Invalid or expired token"
// @Failure 404 {object} dto.APIResponse "Tidak ada data transkrip"
// @Failure 500 {object} dto.APIResponse "Gagal mengambil transkrip"
// @Router /akademik/mahasiswa/transkrip [get]
func (c *AkademikController) GetTranscript(ctx *gin.Context) {
	nrm, ok := requireStudent(ctx)
	if !ok {
		return
	}

	transcript, err := c.akademikService.GetTranscript(ctx.Request.Context(), nrm)
	if err != nil {
		middleware.HandleAPIError(ctx, "Gagal mengambil transkrip", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Transkrip berhasil diambil", transcript))
}

// SetUsulanHapus flags a transcript course for removal
// @Summary Request course removal
// @Description Sets or clears the removal request flag on one of the student's courses
// @Tags akademik
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UsulHapusRequest true "Course and flag"
// @Success 200 {object} dto.APIResponse{data=dto.UsulHapusResponse} "Usulan hapus berhasil diperbarui"
// @Failure 400 {object} dto.APIResponse "Invalid body"
// @Failure 404 {object} dto.APIResponse "Mata kuliah tidak ditemukan"
// @Failure 500 {object} dto.APIResponse "Gagal memperbarui usulan hapus"
// @Router /akademik/mahasiswa/transkrip/usul-hapus [post]
func (c *AkademikController) SetUsulanHapus(ctx *gin.Context) {
	nrm, ok := requireStudent(ctx)
	if !ok {
		return
	}

	var req dto.UsulHapusRequest
	if !middleware.BindJSON(ctx, &req, "Data usulan hapus tidak valid") {
		return
	}

	resp, err := c.akademikService.SetUsulanHapus(ctx.Request.Context(), nrm, req)
	if err != nil {
		middleware.HandleAPIError(ctx, "Gagal memperbarui usulan hapus", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Usulan hapus berhasil diperbarui", resp))
}

// GetKHS returns one semester grade card
// @Summary Semester grade card
// @Description Returns the KHS of one semester with semester and cumulative recap
// @Tags akademik
// @Produce json
// @Security BearerAuth
// @Param semesterKe query int true "Semester index, starting at 1"
// @Success 200 {object} dto.APIResponse{data=dto.KHS} "KHS berhasil diambil"
// @Failure 400 {object} dto.APIResponse "Invalid semesterKe"
// @Failure 404 {object} dto.APIResponse "Tidak ada data KHS"
// @Failure 500 {object} dto.APIResponse "Gagal mengambil KHS"
// @Router /akademik/mahasiswa/khs [get]
func (c *AkademikController) GetKHS(ctx *gin.Context) {
	nrm, ok := requireStudent(ctx)
	if !ok {
		return
	}

	rawSemester := ctx.Query("semesterKe")
	if strings.TrimSpace(rawSemester) == "" {
		badRequest(ctx, MsgSemesterRequired)
		return
	}
	semesterKe, valid := parsePositive(rawSemester)
	if !valid {
		badRequest(ctx, MsgSemesterInvalid)
		return
	}

	khs, err := c.akademikService.GetKHS(ctx.Request.Context(), nrm, semesterKe)
	if err != nil {
		middleware.HandleAPIError(ctx, "Gagal mengambil KHS", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(fmt.Sprintf("KHS semester %d berhasil diambil", semesterKe), khs))
}

// GetKRS returns a study plan by semester index or by academic year
// @Summary Study plan
// @Description Exactly one of semesterKe or tahun must be given. A year without a plan returns an empty plan.
// @Tags akademik
// @Produce json
// @Security BearerAuth
// @Param semesterKe query int false "Semester index, starting at 1"
// @Param tahun query int false "Academic year start, e.g. 2023"
// @Success 200 {object} dto.APIResponse{data=dto.KRS} "KRS berhasil diambil"
// @Failure 400 {object} dto.APIResponse "Invalid selector"
// @Failure 404 {object} dto.APIResponse "Tidak ada data KRS"
// @Failure 500 {object} dto.APIResponse "Gagal mengambil KRS"
// @Router /akademik/mahasiswa/krs [get]
func (c *AkademikController) GetKRS(ctx *gin.Context) {
	nrm, ok := requireStudent(ctx)
	if !ok {
		return
	}

	rawSemester, rawTahun := ctx.Query("semesterKe"), ctx.Query("tahun")
	hasSemester := strings.TrimSpace(rawSemester) != ""
	hasTahun := strings.TrimSpace(rawTahun) != ""

	switch {
	case hasSemester && hasTahun:
		badRequest(ctx, MsgKRSSelectorBoth)
	case hasSemester:
		semesterKe, valid := parsePositive(rawSemester)
		if !valid {
			badRequest(ctx, MsgSemesterInvalid)
			return
		}
		krs, err := c.akademikService.GetKRSBySemester(ctx.Request.Context(), nrm, semesterKe)
		if err != nil {
			middleware.HandleAPIError(ctx, "Gagal mengambil KRS", err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(fmt.Sprintf("KRS semester %d berhasil diambil", semesterKe), krs))
	case hasTahun:
		tahun, valid := parsePositive(rawTahun)
		if !valid {
			badRequest(ctx, MsgTahunInvalid)
			return
		}
		krs, err := c.akademikService.GetKRSByYear(ctx.Request.Context(), nrm, tahun)
		if err != nil {
			middleware.HandleAPIError(ctx, "Gagal mengambil KRS", err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(fmt.Sprintf("Data KRS untuk tahun ajaran %d berhasil diambil", tahun), krs))
	default:
		badRequest(ctx, MsgKRSSelectorNeeded)
	}
}

// ListKRSYears returns the academic years that have a study plan
// @Summary Study plan years
// @Description Distinct academic years with a study plan, newest first
// @Tags akademik
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]int} "Tahun KRS berhasil diambil"
// @Failure 500 {object} dto.APIResponse "Gagal mengambil tahun KRS"
// @Router /akademik/mahasiswa/krs/tahun [get]
func (c *AkademikController) ListKRSYears(ctx *gin.Context) {
	nrm, ok := requireStudent(ctx)
	if !ok {
		return
	}

	years, err := c.akademikService.ListKRSYears(ctx.Request.Context(), nrm)
	if err != nil {
		middleware.HandleAPIError(ctx, "Gagal mengambil tahun KRS", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Tahun KRS berhasil diambil", years))
}
