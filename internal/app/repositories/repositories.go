package repositories

import (
	"context"
	"time"

	"github.com/wirahusada/portal-backend/internal/app/models"
	"github.com/wirahusada/portal-backend/internal/db"
)

// StudentReader is the student lookup surface used by the services
type StudentReader interface {
	FindByNIMAndNRM(ctx context.Context, nim, nrm string) (*models.Student, error)
	FindByNameAndNRM(ctx context.Context, name, nrm string) (*models.Student, error)
	FindByCompactNameAndNRM(ctx context.Context, name, nrm string) (*models.Student, error)
	FindByNRM(ctx context.Context, nrm string) (*models.Student, error)
	FindByIdentity(ctx context.Context, nim, nrm string, birthDate time.Time) ([]*models.Student, error)
	ListRoster(ctx context.Context) ([]models.RosterEntry, error)
}

// AkademikStore reads and updates academic records
type AkademikStore interface {
	GetTranscriptRows(ctx context.Context, nrm string) ([]models.TranscriptRow, error)
	GetCourseHistory(ctx context.Context, nrm string) ([]models.HistoryRow, error)
	GetStudyPlanBySemester(ctx context.Context, nrm string, semesterKe, jenisSemester int) ([]models.StudyPlanRow, error)
	GetStudyPlanByYear(ctx context.Context, nrm string, tahun int) ([]models.StudyPlanRow, error)
	ListStudyPlanYears(ctx context.Context, nrm string) ([]int, error)
	LatestSemester(ctx context.Context, nrm string) (int, error)
	SetUsulanHapus(ctx context.Context, ref models.CourseRef, usulan bool) error
}

// PaymentStore reads the finance store
type PaymentStore interface {
	ListTransactions(ctx context.Context, f models.TransactionFilter) ([]models.Transaction, int64, error)
	GetTransaction(ctx context.Context, nrm string, id int64) (*models.Transaction, error)
	GetTransactionLines(ctx context.Context, transactionID int64) ([]models.TransactionLine, error)
	ListPaymentTypes(ctx context.Context) ([]models.PaymentType, error)
	SettledTotalsByType(ctx context.Context, nrm string) ([]models.TypeTotal, error)
}

// AccountStore checks and creates student logins
type AccountStore interface {
	StudentAccountExists(ctx context.Context, nim string) (bool, error)
	IdentityNameExists(ctx context.Context, name string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	CreateAccount(ctx context.Context, acc models.NewAccount) error
}

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository  *StudentRepository
	AkademikRepository *AkademikRepository
	PaymentRepository  *PaymentRepository
	AccountRepository  *AccountRepository
}

// NewRepositories initializes all repositories on their pools
func NewRepositories(dbs *db.Databases) *Repositories {
	return &Repositories{
		StudentRepository:  NewStudentRepository(dbs.WIS.Pool),
		AkademikRepository: NewAkademikRepository(dbs.WIS.Pool),
		PaymentRepository:  NewPaymentRepository(dbs.WISMON.Pool),
		AccountRepository:  NewAccountRepository(dbs.WIS, dbs.SSO),
	}
}
