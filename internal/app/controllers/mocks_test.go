package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wirahusada/portal-backend/internal/app/models/dto"
	"github.com/wirahusada/portal-backend/internal/middleware"
	"github.com/wirahusada/portal-backend/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testStudent = auth.Identity{NRM: "2021001", NIM: "A11.2021.00001", Namam: "Siti Aminah"}

// fixedVerifier accepts any token as the given identity
type fixedVerifier struct{ identity auth.Identity }

func (v fixedVerifier) VerifyToken(string) (*auth.Claims, error) {
	return &auth.Claims{Identity: v.identity}, nil
}

// asStudent runs the real JWT guard with a request token that verifies as identity
func asStudent(identity auth.Identity) gin.HandlerFunc {
	guard := middleware.NewAuthMiddleware(fixedVerifier{identity: identity}, zerolog.Nop()).JWTAuth()
	return func(c *gin.Context) {
		c.Request.Header.Set("Authorization", "Bearer test-token")
		guard(c)
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
}

func perform(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*dto.LoginResponse)
	return r, args.Error(1)
}

func (m *mockAuthService) GetProfile(ctx context.Context, nrm string) (*dto.ProfileResponse, error) {
	args := m.Called(ctx, nrm)
	r, _ := args.Get(0).(*dto.ProfileResponse)
	return r, args.Error(1)
}

type mockAkademikService struct{ mock.Mock }

func (m *mockAkademikService) ListStudents(ctx context.Context) ([]dto.DaftarMahasiswa, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).([]dto.DaftarMahasiswa)
	return r, args.Error(1)
}

func (m *mockAkademikService) GetInfo(ctx context.Context, nrm string) (*dto.MahasiswaInfo, error) {
	args := m.Called(ctx, nrm)
	r, _ := args.Get(0).(*dto.MahasiswaInfo)
	return r, args.Error(1)
}

func (m *mockAkademikService) GetTranscript(ctx context.Context, nrm string) (*dto.Transcript, error) {
	args := m.Called(ctx, nrm)
	r, _ := args.Get(0).(*dto.Transcript)
	return r, args.Error(1)
}

func (m *mockAkademikService) GetKHS(ctx context.Context, nrm string, semesterKe int) (*dto.KHS, error) {
	args := m.Called(ctx, nrm, semesterKe)
	r, _ := args.Get(0).(*dto.KHS)
	return r, args.Error(1)
}

func (m *mockAkademikService) GetKRSBySemester(ctx context.Context, nrm string, semesterKe int) (*dto.KRS, error) {
	args := m.Called(ctx, nrm, semesterKe)
	r, _ := args.Get(0).(*dto.KRS)
	return r, args.Error(1)
}

func (m *mockAkademikService) GetKRSByYear(ctx context.Context, nrm string, tahun int) (*dto.KRS, error) {
	args := m.Called(ctx, nrm, tahun)
	r, _ := args.Get(0).(*dto.KRS)
	return r, args.Error(1)
}

func (m *mockAkademikService) ListKRSYears(ctx context.Context, nrm string) ([]int, error) {
	args := m.Called(ctx, nrm)
	r, _ := args.Get(0).([]int)
	return r, args.Error(1)
}

func (m *mockAkademikService) SetUsulanHapus(ctx context.Context, nrm string, req dto.UsulHapusRequest) (*dto.UsulHapusResponse, error) {
	args := m.Called(ctx, nrm, req)
	r, _ := args.Get(0).(*dto.UsulHapusResponse)
	return r, args.Error(1)
}

type mockPaymentService struct{ mock.Mock }

func (m *mockPaymentService) GetHistory(ctx context.Context, nrm string, q dto.PaymentHistoryQuery) (*dto.PaginatedResponse, error) {
	args := m.Called(ctx, nrm, q)
	r, _ := args.Get(0).(*dto.PaginatedResponse)
	return r, args.Error(1)
}

func (m *mockPaymentService) GetSummary(ctx context.Context, nrm string) (*dto.PaymentSummary, error) {
	args := m.Called(ctx, nrm)
	r, _ := args.Get(0).(*dto.PaymentSummary)
	return r, args.Error(1)
}

func (m *mockPaymentService) Refresh(ctx context.Context, nrm string) (*dto.PaymentRefreshResponse, error) {
	args := m.Called(ctx, nrm)
	r, _ := args.Get(0).(*dto.PaymentRefreshResponse)
	return r, args.Error(1)
}

func (m *mockPaymentService) ListTypes(ctx context.Context) ([]dto.PaymentType, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).([]dto.PaymentType)
	return r, args.Error(1)
}

func (m *mockPaymentService) GetDetail(ctx context.Context, nrm, rawID string) (*dto.TransactionDetail, error) {
	args := m.Called(ctx, nrm, rawID)
	r, _ := args.Get(0).(*dto.TransactionDetail)
	return r, args.Error(1)
}

type mockRegistrationService struct{ mock.Mock }

func (m *mockRegistrationService) VerifyIdentity(ctx context.Context, req dto.VerifyIdentityRequest) (*dto.VerifiedStudent, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*dto.VerifiedStudent)
	return r, args.Error(1)
}

func (m *mockRegistrationService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*dto.CreatedAccount, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*dto.CreatedAccount)
	return r, args.Error(1)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }
