package dto

import "time"

// PaymentHistoryQuery filters and orders the payment history
type PaymentHistoryQuery struct {
	Page      int    `form:"page" binding:"omitempty,min=1,max=100000"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	StartDate string `form:"startDate" binding:"omitempty,isodate"`
	EndDate   string `form:"endDate" binding:"omitempty,isodate"`
	Type      string `form:"type"`
	SortBy    string `form:"sortBy" binding:"omitempty,oneof=tanggal jumlah type"`
	SortOrder string `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
}

// PaymentHistoryItem is one transaction as shown in the history list
type PaymentHistoryItem struct {
	ID          string `json:"id" example:"1024"`
	Tanggal     string `json:"tanggal" example:"15/08/2024"`
	TanggalFull string `json:"tanggal_full" example:"2024-08-15T09:30:00+07:00"`
	Type        string `json:"type" example:"SPP Semester Ganjil"`
	Jumlah      string `json:"jumlah" example:"Rp 1.500.000"`
	Status      string `json:"status" example:"lunas"`
	TxID        string `json:"tx_id" example:"TRX-2024-0001"`
	Method      string `json:"method" example:"Bank BNI"`
	MethodCode  string `json:"method_code" example:"1102"`
}

// PaymentSummary totals settled payments, broken down by type
type PaymentSummary struct {
	TotalPembayaran string            `json:"total_pembayaran" example:"Rp 6.000.000"`
	Breakdown       map[string]string `json:"breakdown"`
}

// PaymentRefreshResponse is a freshly computed summary
type PaymentRefreshResponse struct {
	PaymentSummary
	RefreshedAt time.Time `json:"refreshed_at"`
}

// TransactionDetail is one transaction with student info and per-item breakdown
type TransactionDetail struct {
	PaymentHistoryItem
	StudentName      string            `json:"student_name" example:"Siti Aminah"`
	StudentNIM       string            `json:"student_nim" example:"A11.2021.00001"`
	StudentProdi     string            `json:"student_prodi" example:"S1 Keperawatan"`
	PaymentBreakdown map[string]string `json:"payment_breakdown"`
}

// PaymentType is a transaction type usable as a history filter
type PaymentType struct {
	ID        string `json:"id" example:"3"`
	Kode      string `json:"kode" example:"SPP"`
	NamaJenis string `json:"nama_jenis" example:"SPP Semester Ganjil"`
}
