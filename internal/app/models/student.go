package models

import "time"

// Student is a row of the mahasiswa table
type Student struct {
	NRM      string     `json:"nrm" db:"nrm"`
	NIM      string     `json:"nim" db:"nim"`
	Namam    string     `json:"namam" db:"namam"`
	TgDaftar *time.Time `json:"tgdaftar" db:"tgdaftar"`
	TpLahir  *string    `json:"tplahir" db:"tplahir"`
	TgLahir  *time.Time `json:"tglahir" db:"tglahir"`
	KdAgama  *string    `json:"kdagama" db:"kdagama"`
	Prodi    *string    `json:"prodi" db:"prodi"`
}

// RosterEntry is a row of the student roster
type RosterEntry struct {
	NRM   string `db:"nrm"`
	Namam string `db:"namam"`
}
