package models

// StudyPlanRow is one course on a study plan with the plan's header columns
type StudyPlanRow struct {
	SemesterKe        int     `db:"semesterke"`
	JenisSemesterKode int     `db:"semester"`
	Tahun             int     `db:"tahun"`
	KdMK              string  `db:"kdmk"`
	NamaMK            string  `db:"namamk"`
	SKS               *int    `db:"sks"`
	Kelas             *string `db:"kelas"`
}

// CourseRef identifies one course row of a student's study history
type CourseRef struct {
	NRM        string
	KdMK       string
	SemesterKe int
}
