package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/wirahusada/portal-backend/internal/app/models"
	"github.com/wirahusada/portal-backend/internal/app/models/dto"
	"github.com/wirahusada/portal-backend/internal/app/repositories"
	"github.com/wirahusada/portal-backend/internal/pkg/apperrors"
	"github.com/wirahusada/portal-backend/internal/pkg/helpers"
)

// Payment messages
const (
	MsgTransactionNotFound = "Transaksi tidak ditemukan"
	MsgInvalidTransaction  = "ID transaksi tidak valid"
)

// PaymentService reads a student's finance records
type PaymentService struct {
	payments repositories.PaymentStore
	students repositories.StudentReader
	logger   zerolog.Logger
	now      func() time.Time
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(payments repositories.PaymentStore, students repositories.StudentReader, logger zerolog.Logger) *PaymentService {
	return &PaymentService{
		payments: payments,
		students: students,
		logger:   logger,
		now:      time.Now,
	}
}

func historyItem(t models.Transaction) dto.PaymentHistoryItem {
	return dto.PaymentHistoryItem{
		ID:          strconv.FormatInt(t.ID, 10),
		Tanggal:     helpers.FormatTanggal(t.Tanggal),
		TanggalFull: t.Tanggal.Format(time.RFC3339),
		Type:        stringOr(t.JenisNama, "Lainnya"),
		Jumlah:      helpers.FormatRupiah(t.Total),
		Status:      t.Status,
		TxID:        t.KodeTransaksi,
		Method:      stringOr(t.AkunNama, "-"),
		MethodCode:  stringOr(t.AkunKode, "-"),
	}
}

func stringOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

// GetHistory returns one page of the student's transactions
func (s *PaymentService) GetHistory(ctx context.Context, nrm string, q dto.PaymentHistoryQuery) (*dto.PaginatedResponse, error) {
	filter := models.TransactionFilter{
		NRM:       nrm,
		Type:      q.Type,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	}

	if q.StartDate != "" {
		start, err := helpers.ParseISODate(q.StartDate)
		if err != nil {
			return nil, apperrors.Validation("Format startDate harus YYYY-MM-DD")
		}
		filter.StartDate = &start
	}
	if q.EndDate != "" {
		end, err := helpers.ParseISODate(q.EndDate)
		if err != nil {
			return nil, apperrors.Validation("Format endDate harus YYYY-MM-DD")
		}
		filter.EndDate = &end
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, apperrors.Validation("endDate tidak boleh sebelum startDate")
	}

	filter.Offset, filter.Limit = helpers.CalculateOffsetLimit(q.Page, q.Limit)

	txs, total, err := s.payments.ListTransactions(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal("Gagal mengambil riwayat pembayaran", err)
	}

	items := make([]dto.PaymentHistoryItem, 0, len(txs))
	for _, t := range txs {
		items = append(items, historyItem(t))
	}

	return &dto.PaginatedResponse{
		Items:      items,
		Pagination: helpers.NewPaginationInfo(total, q.Page, int(filter.Limit)),
	}, nil
}

// GetSummary totals the student's settled payments per type
func (s *PaymentService) GetSummary(ctx context.Context, nrm string) (*dto.PaymentSummary, error) {
	totals, err := s.payments.SettledTotalsByType(ctx, nrm)
	if err != nil {
		return nil, apperrors.Internal("Gagal mengambil ringkasan pembayaran", err)
	}

	var grand float64
	breakdown := make(map[string]string, len(totals))
	for _, t := range totals {
		grand += t.Total
		breakdown[t.JenisNama] = helpers.FormatRupiah(t.Total)
	}

	return &dto.PaymentSummary{
		TotalPembayaran: helpers.FormatRupiah(grand),
		Breakdown:       breakdown,
	}, nil
}

// Refresh recomputes the summary and stamps it
func (s *PaymentService) Refresh(ctx context.Context, nrm string) (*dto.PaymentRefreshResponse, error) {
	summary, err := s.GetSummary(ctx, nrm)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("nrm", nrm).Msg("Payment summary refreshed")
	return &dto.PaymentRefreshResponse{PaymentSummary: *summary, RefreshedAt: s.now()}, nil
}

// ListTypes returns the transaction types usable as history filters
func (s *PaymentService) ListTypes(ctx context.Context) ([]dto.PaymentType, error) {
	types, err := s.payments.ListPaymentTypes(ctx)
	if err != nil {
		return nil, apperrors.Internal("Gagal mengambil jenis pembayaran", err)
	}

	result := make([]dto.PaymentType, 0, len(types))
	for _, t := range types {
		result = append(result, dto.PaymentType{
			ID:        strconv.FormatInt(t.ID, 10),
			Kode:      t.Kode,
			NamaJenis: t.NamaJenis,
		})
	}
	return result, nil
}

// GetDetail returns one of the student's transactions with its breakdown.
// Transactions of other students are reported as missing.
func (s *PaymentService) GetDetail(ctx context.Context, nrm, rawID string) (*dto.TransactionDetail, error) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id < 1 {
		return nil, apperrors.Validation(MsgInvalidTransaction)
	}

	tx, err := s.payments.GetTransaction(ctx, nrm, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, apperrors.NotFound(MsgTransactionNotFound)
		}
		return nil, apperrors.Internal("Gagal mengambil detail transaksi", err)
	}

	lines, err := s.payments.GetTransactionLines(ctx, tx.ID)
	if err != nil {
		return nil, apperrors.Internal("Gagal mengambil detail transaksi", err)
	}

	breakdown := make(map[string]string, len(lines))
	sums := make(map[string]float64, len(lines))
	for _, l := range lines {
		sums[l.JenisNama] += l.Jumlah
	}
	for name, v := range sums {
		breakdown[name] = helpers.FormatRupiah(v)
	}

	detail := &dto.TransactionDetail{
		PaymentHistoryItem: historyItem(*tx),
		PaymentBreakdown:   breakdown,
	}

	student, err := s.students.FindByNRM(ctx, nrm)
	switch {
	case err == nil:
		detail.StudentName = student.Namam
		detail.StudentNIM = student.NIM
		detail.StudentProdi = stringOr(student.Prodi, "-")
	case errors.Is(err, repositories.ErrStudentNotFound):
		detail.StudentProdi = "-"
	default:
		return nil, apperrors.Internal("Gagal mengambil data mahasiswa", err)
	}

	return detail, nil
}
