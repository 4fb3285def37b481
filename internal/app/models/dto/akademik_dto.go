package dto

// DaftarMahasiswa is one roster entry
type DaftarMahasiswa struct {
	NRM   string `json:"nrm" example:"2021001"`
	Namam string `json:"namam" example:"Siti Aminah"`
}

// TranscriptCourse is one course row on the transcript
type TranscriptCourse struct {
	KodeMataKuliah string   `json:"kodeMataKuliah" example:"KB101"`
	NamaMK         string   `json:"namamk" example:"Anatomi Fisiologi"`
	SKS            *int     `json:"sks" example:"3"`
	Nilai          *string  `json:"nilai" example:"A"`
	BobotNilai     *float64 `json:"bobotnilai" example:"4"`
	SemesterKe     int      `json:"semesterKe" example:"1"`
	UsulanHapus    bool     `json:"usulanHapus" example:"false"`
}

// Transcript is the all-time course list with cumulative GPA
type Transcript struct {
	IPK      string             `json:"ipk" example:"3.45"`
	TotalSKS int                `json:"total_sks" example:"110"`
	Courses  []TranscriptCourse `json:"courses"`
}

// KHSCourse is one course row on a semester grade card
type KHSCourse struct {
	Nilai          string  `json:"nilai" example:"B"`
	KodeMataKuliah string  `json:"kodeMataKuliah" example:"KB101"`
	NamaMataKuliah string  `json:"namaMataKuliah" example:"Anatomi Fisiologi"`
	SKS            int     `json:"sks" example:"3"`
	Kelas          *string `json:"kelas" example:"A"`
}

// Rekapitulasi holds "passed / attempted" pairs
type Rekapitulasi struct {
	IPSemester   string `json:"ipSemester" example:"3.50 / 3.20"`
	SKSSemester  string `json:"sksSemester" example:"18 / 20"`
	IPKumulatif  string `json:"ipKumulatif" example:"3.40 / 3.30"`
	SKSKumulatif string `json:"sksKumulatif" example:"54 / 58"`
}

// KHS is a semester grade card
type KHS struct {
	SemesterKe    int          `json:"semesterKe" example:"3"`
	JenisSemester string       `json:"jenisSemester" example:"Ganjil"`
	TahunAjaran   string       `json:"tahunAjaran" example:"2022/2023"`
	MataKuliah    []KHSCourse  `json:"mataKuliah"`
	Rekapitulasi  Rekapitulasi `json:"rekapitulasi"`
}

// KRSCourse is one course row on a study plan
type KRSCourse struct {
	KodeMataKuliah string  `json:"kodeMataKuliah" example:"KB101"`
	NamaMataKuliah string  `json:"namaMataKuliah" example:"Anatomi Fisiologi"`
	SKS            int     `json:"sks" example:"3"`
	Kelas          *string `json:"kelas" example:"A"`
}

// KRS is a study plan for one semester or one academic year
type KRS struct {
	SemesterKe    int         `json:"semesterKe" example:"3"`
	JenisSemester string      `json:"jenisSemester" example:"Ganjil"`
	TahunAjaran   string      `json:"tahunAjaran" example:"2022/2023"`
	MataKuliah    []KRSCourse `json:"mataKuliah"`
	TotalSKS      int         `json:"totalSks" example:"20"`
}

// MahasiswaInfo is the authenticated student's profile plus semester context
type MahasiswaInfo struct {
	NRM              string `json:"nrm" example:"2021001"`
	NIM              string `json:"nim" example:"A11.2021.00001"`
	Namam            string `json:"namam" example:"Siti Aminah"`
	SemesterTerakhir int    `json:"semesterTerakhir" example:"4"`
	TahunKRS         []int  `json:"tahunKrs"`
}

// UsulHapusRequest toggles the deletion request flag of one transcript row
type UsulHapusRequest struct {
	KodeMataKuliah string `json:"kodeMataKuliah" binding:"required" example:"KB101"`
	SemesterKe     int    `json:"semesterKe" binding:"required,min=1" example:"2"`
	UsulanHapus    *bool  `json:"usulanHapus" binding:"required" example:"true"`
}

// UsulHapusResponse echoes the stored flag
type UsulHapusResponse struct {
	KodeMataKuliah string `json:"kodeMataKuliah" example:"KB101"`
	SemesterKe     int    `json:"semesterKe" example:"2"`
	UsulanHapus    bool   `json:"usulanHapus" example:"true"`
}
