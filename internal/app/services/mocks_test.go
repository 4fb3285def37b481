package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/wirahusada/portal-backend/internal/app/models"
	"github.com/wirahusada/portal-backend/internal/pkg/auth"
)

type mockStudentReader struct{ mock.Mock }

func studentResult(args mock.Arguments) (*models.Student, error) {
	s, _ := args.Get(0).(*models.Student)
	return s, args.Error(1)
}

func (m *mockStudentReader) FindByNIMAndNRM(ctx context.Context, nim, nrm string) (*models.Student, error) {
	return studentResult(m.Called(ctx, nim, nrm))
}

func (m *mockStudentReader) FindByNameAndNRM(ctx context.Context, name, nrm string) (*models.Student, error) {
	return studentResult(m.Called(ctx, name, nrm))
}

func (m *mockStudentReader) FindByCompactNameAndNRM(ctx context.Context, name, nrm string) (*models.Student, error) {
	return studentResult(m.Called(ctx, name, nrm))
}

func (m *mockStudentReader) FindByNRM(ctx context.Context, nrm string) (*models.Student, error) {
	return studentResult(m.Called(ctx, nrm))
}

func (m *mockStudentReader) FindByIdentity(ctx context.Context, nim, nrm string, birthDate time.Time) ([]*models.Student, error) {
	args := m.Called(ctx, nim, nrm, birthDate)
	s, _ := args.Get(0).([]*models.Student)
	return s, args.Error(1)
}

func (m *mockStudentReader) ListRoster(ctx context.Context) ([]models.RosterEntry, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).([]models.RosterEntry)
	return r, args.Error(1)
}

type mockAkademikStore struct{ mock.Mock }

func (m *mockAkademikStore) GetTranscriptRows(ctx context.Context, nrm string) ([]models.TranscriptRow, error) {
	args := m.Called(ctx, nrm)
	r, _ := args.Get(0).([]models.TranscriptRow)
	return r, args.Error(1)
}

func (m *mockAkademikStore) GetCourseHistory(ctx context.Context, nrm string) ([]models.HistoryRow, error) {
	args := m.Called(ctx, nrm)
	r, _ := args.Get(0).([]models.HistoryRow)
	return r, args.Error(1)
}

func (m *mockAkademikStore) GetStudyPlanBySemester(ctx context.Context, nrm string, semesterKe, jenisSemester int) ([]models.StudyPlanRow, error) {
	args := m.Called(ctx, nrm, semesterKe, jenisSemester)
	r, _ := args.Get(0).([]models.StudyPlanRow)
	return r, args.Error(1)
}

func (m *mockAkademikStore) GetStudyPlanByYear(ctx context.Context, nrm string, tahun int) ([]models.StudyPlanRow, error) {
	args := m.Called(ctx, nrm, tahun)
	r, _ := args.Get(0).([]models.StudyPlanRow)
	return r, args.Error(1)
}

func (m *mockAkademikStore) ListStudyPlanYears(ctx context.Context, nrm string) ([]int, error) {
	args := m.Called(ctx, nrm)
	r, _ := args.Get(0).([]int)
	return r, args.Error(1)
}

func (m *mockAkademikStore) LatestSemester(ctx context.Context, nrm string) (int, error) {
	args := m.Called(ctx, nrm)
	return args.Int(0), args.Error(1)
}

func (m *mockAkademikStore) SetUsulanHapus(ctx context.Context, ref models.CourseRef, usulan bool) error {
	return m.Called(ctx, ref, usulan).Error(0)
}

type mockPaymentStore struct{ mock.Mock }

func (m *mockPaymentStore) ListTransactions(ctx context.Context, f models.TransactionFilter) ([]models.Transaction, int64, error) {
	args := m.Called(ctx, f)
	r, _ := args.Get(0).([]models.Transaction)
	return r, args.Get(1).(int64), args.Error(2)
}

func (m *mockPaymentStore) GetTransaction(ctx context.Context, nrm string, id int64) (*models.Transaction, error) {
	args := m.Called(ctx, nrm, id)
	r, _ := args.Get(0).(*models.Transaction)
	return r, args.Error(1)
}

func (m *mockPaymentStore) GetTransactionLines(ctx context.Context, transactionID int64) ([]models.TransactionLine, error) {
	args := m.Called(ctx, transactionID)
	r, _ := args.Get(0).([]models.TransactionLine)
	return r, args.Error(1)
}

func (m *mockPaymentStore) ListPaymentTypes(ctx context.Context) ([]models.PaymentType, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).([]models.PaymentType)
	return r, args.Error(1)
}

func (m *mockPaymentStore) SettledTotalsByType(ctx context.Context, nrm string) ([]models.TypeTotal, error) {
	args := m.Called(ctx, nrm)
	r, _ := args.Get(0).([]models.TypeTotal)
	return r, args.Error(1)
}

type mockAccountStore struct{ mock.Mock }

func (m *mockAccountStore) StudentAccountExists(ctx context.Context, nim string) (bool, error) {
	args := m.Called(ctx, nim)
	return args.Bool(0), args.Error(1)
}

func (m *mockAccountStore) IdentityNameExists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockAccountStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockAccountStore) CreateAccount(ctx context.Context, acc models.NewAccount) error {
	return m.Called(ctx, acc).Error(0)
}

type mockTokenIssuer struct{ mock.Mock }

func (m *mockTokenIssuer) IssueToken(identity auth.Identity) (string, time.Time, error) {
	args := m.Called(identity)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }
func boolPtr(v bool) *bool        { return &v }
