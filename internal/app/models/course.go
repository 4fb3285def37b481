package models

// TranscriptRow is one krsmatakuliah row joined with the course catalog
type TranscriptRow struct {
	KdMK        string   `db:"kdmk"`
	NamaMK      string   `db:"namamk"`
	SKS         *int     `db:"sks"`
	Nilai       *string  `db:"nilai"`
	BobotNilai  *float64 `db:"bobotnilai"`
	SemesterKe  int      `db:"semesterke"`
	UsulanHapus bool     `db:"usulan_hapus"`
}

// HistoryRow is one course attempt with its study-plan header and class, used for grade cards
type HistoryRow struct {
	SemesterKe        int      `db:"semesterke"`
	JenisSemesterKode *int     `db:"semester"`
	Tahun             *int     `db:"tahun"`
	Nilai             *string  `db:"nilai"`
	BobotNilai        *float64 `db:"bobotnilai"`
	Status            *int     `db:"status"`
	KdMK              string   `db:"kdmk"`
	NamaMK            string   `db:"namamk"`
	SKS               *int     `db:"sks"`
	Kelas             *string  `db:"kelas"`
}

// Passed reports whether the attempt counts as passed
func (r HistoryRow) Passed() bool {
	return r.Status != nil && *r.Status == 1
}
