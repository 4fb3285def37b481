package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/wirahusada/portal-backend/internal/app/models/dto"
	"github.com/wirahusada/portal-backend/internal/middleware"
)

// PaymentController serves the student's finance records
type PaymentController struct {
	paymentService PaymentService
	logger         zerolog.Logger
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(paymentService PaymentService, logger zerolog.Logger) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
		logger:         logger,
	}
}

// GetHistory returns a page of the student's transactions
// @Summary Payment history
// @Description Paginated transactions of the authenticated student with optional date, type and ordering filters
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param startDate query string false "From date (YYYY-MM-DD)"
// @Param endDate query string false "Until date (YYYY-MM-DD)"
// @Param type query string false "Transaction type code or name"
// @Param sortBy query string false "tanggal, jumlah or type"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]dto.PaymentHistoryItem}} "Riwayat pembayaran berhasil diambil"
// @Failure 400 {object} dto.APIResponse "Invalid query"
// @Failure 500 {object} dto.APIResponse "Gagal mengambil riwayat pembayaran"
// @Router /payments/history [get]
func (c *PaymentController) GetHistory(ctx *gin.Context) {
	nrm, ok := requireStudent(ctx)
	if !ok {
		return
	}

	var q dto.PaymentHistoryQuery
	if !middleware.BindQuery(ctx, &q, "Parameter riwayat pembayaran tidak valid") {
		return
	}

	page, err := c.paymentService.GetHistory(ctx.Request.Context(), nrm, q)
	if err != nil {
		middleware.HandleAPIError(ctx, "Gagal mengambil riwayat pembayaran", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Riwayat pembayaran berhasil diambil", page))
}

// GetSummary returns the settled totals per transaction type
// @Summary Payment summary
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.PaymentSummary} "Ringkasan pembayaran berhasil diambil"
// @Failure 500 {object} dto.APIResponse "Gagal mengambil ringkasan pembayaran"
// @Router /payments/summary [get]
func (c *PaymentController) GetSummary(ctx *gin.Context) {
	nrm, ok := requireStudent(ctx)
	if !ok {
		return
	}

	summary, err := c.paymentService.GetSummary(ctx.Request.Context(), nrm)
	if err != nil {
		middleware.HandleAPIError(ctx, "Gagal mengambil ringkasan pembayaran", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Ringkasan pembayaran berhasil diambil", summary))
}

// GetDetail returns one transaction of the student
// @Summary Transaction detail
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Success 200 {object} dto.APIResponse{data=dto.TransactionDetail} "Detail transaksi berhasil diambil"
// @Failure 400 {object} dto.APIResponse "ID transaksi tidak valid"
// @Failure 404 {object} dto.APIResponse "Transaksi tidak ditemukan"
// @Failure 500 {object} dto.APIResponse "Gagal mengambil detail transaksi"
// @Router /payments/detail/{id} [get]
func (c *PaymentController) GetDetail(ctx *gin.Context) {
	nrm, ok := requireStudent(ctx)
	if !ok {
		return
	}

	detail, err := c.paymentService.GetDetail(ctx.Request.Context(), nrm, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, "Gagal mengambil detail transaksi", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Detail transaksi berhasil diambil", detail))
}

// Refresh recomputes the payment summary
// @Summary Refresh payment data
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.PaymentRefreshResponse} "Data pembayaran berhasil diperbarui"
// @Failure 500 {object} dto.APIResponse "Gagal memperbarui data pembayaran"
// @Router /payments/refresh [post]
func (c *PaymentController) Refresh(ctx *gin.Context) {
	nrm, ok := requireStudent(ctx)
	if !ok {
		return
	}

	resp, err := c.paymentService.Refresh(ctx.Request.Context(), nrm)
	if err != nil {
		middleware.HandleAPIError(ctx, "Gagal memperbarui data pembayaran", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Data pembayaran berhasil diperbarui", resp))
}

// ListTypes returns the transaction types usable as history filters
// @Summary Payment types
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.PaymentType} "Jenis pembayaran berhasil diambil"
// @Failure 500 {object} dto.APIResponse "Gagal mengambil jenis pembayaran"
// @Router /payments/types [get]
func (c *PaymentController) ListTypes(ctx *gin.Context) {
	types, err := c.paymentService.ListTypes(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, "Gagal mengambil jenis pembayaran", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Jenis pembayaran berhasil diambil", types))
}
