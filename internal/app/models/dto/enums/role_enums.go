package enums

// AppCode identifies an application in the identity store
type AppCode string

// RoleID identifies a role in the identity store
type RoleID string

const (
	// AppWismon is the student finance/monitoring application
	AppWismon AppCode = "wmon"
	// RoleStudent is assigned to every self-registered account
	RoleStudent RoleID = "stu"
)

// SemesterType is the krs.semester code
type SemesterType int

const (
	SemesterGanjil        SemesterType = 1
	SemesterGenap         SemesterType = 2
	SemesterAntaraPendek  SemesterType = 3
	SemesterAntaraPanjang SemesterType = 4
)

// SemesterTypeFor derives the regular term from a semester index: even is Genap, odd is Ganjil
func SemesterTypeFor(semesterKe int) SemesterType {
	if semesterKe%2 == 0 {
		return SemesterGenap
	}
	return SemesterGanjil
}

// Label returns the study-plan label of the code
func (s SemesterType) Label() string {
	switch s {
	case SemesterGanjil:
		return "Ganjil"
	case SemesterGenap:
		return "Genap"
	case SemesterAntaraPendek:
		return "Antara Pendek"
	case SemesterAntaraPanjang:
		return "Antara Panjang"
	default:
		return "Tidak Diketahui"
	}
}

// ShortLabel returns the grade-card label, which folds both intersessions into "Antara"
func (s SemesterType) ShortLabel() string {
	switch s {
	case SemesterGanjil:
		return "Ganjil"
	case SemesterGenap:
		return "Genap"
	default:
		return "Antara"
	}
}
