package models

import "time"

// Transaction is a finance transaction joined with its type and debit account
type Transaction struct {
	ID            int64     `db:"id"`
	KodeTransaksi string    `db:"kode_transaksi"`
	NRM           string    `db:"nrm"`
	Tanggal       time.Time `db:"tanggal"`
	Total         float64   `db:"total"`
	Status        string    `db:"status"`
	JenisNama     *string   `db:"nama_jenis"`
	AkunNama      *string   `db:"nama_akun"`
	AkunKode      *string   `db:"kode_akun"`
}

// TransactionLine is one detailtransaksi row named by its type
type TransactionLine struct {
	JenisNama string  `db:"nama_jenis"`
	Jumlah    float64 `db:"jumlah"`
}

// PaymentType is a jenistransaksi row
type PaymentType struct {
	ID        int64  `db:"id"`
	Kode      string `db:"kode"`
	NamaJenis string `db:"nama_jenis"`
}

// TypeTotal is the settled amount for one transaction type
type TypeTotal struct {
	JenisNama string  `db:"nama_jenis"`
	Total     float64 `db:"total"`
}

// TransactionFilter narrows a student's transaction history
type TransactionFilter struct {
	NRM       string
	StartDate *time.Time
	EndDate   *time.Time
	Type      string
	SortBy    string
	SortOrder string
	Offset    uint64
	Limit     uint64
}
