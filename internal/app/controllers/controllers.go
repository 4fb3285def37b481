// Package controllers handles HTTP request handling
package controllers

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/wirahusada/portal-backend/internal/app/models/dto"
	"github.com/wirahusada/portal-backend/internal/app/services"
	"github.com/wirahusada/portal-backend/internal/db"
	"github.com/wirahusada/portal-backend/internal/pkg/apperrors"
)

// AuthService is the login surface used by AuthController
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	GetProfile(ctx context.Context, nrm string) (*dto.ProfileResponse, error)
}

// AkademikService is the academic records surface used by AkademikController
type AkademikService interface {
	ListStudents(ctx context.Context) ([]dto.DaftarMahasiswa, error)
	GetInfo(ctx context.Context, nrm string) (*dto.MahasiswaInfo, error)
	GetTranscript(ctx context.Context, nrm string) (*dto.Transcript, error)
	GetKHS(ctx context.Context, nrm string, semesterKe int) (*dto.KHS, error)
	GetKRSBySemester(ctx context.Context, nrm string, semesterKe int) (*dto.KRS, error)
	GetKRSByYear(ctx context.Context, nrm string, tahun int) (*dto.KRS, error)
	ListKRSYears(ctx context.Context, nrm string) ([]int, error)
	SetUsulanHapus(ctx context.Context, nrm string, req dto.UsulHapusRequest) (*dto.UsulHapusResponse, error)
}

// PaymentService is the finance surface used by PaymentController
type PaymentService interface {
	GetHistory(ctx context.Context, nrm string, q dto.PaymentHistoryQuery) (*dto.PaginatedResponse, error)
	GetSummary(ctx context.Context, nrm string) (*dto.PaymentSummary, error)
	Refresh(ctx context.Context, nrm string) (*dto.PaymentRefreshResponse, error)
	ListTypes(ctx context.Context) ([]dto.PaymentType, error)
	GetDetail(ctx context.Context, nrm, rawID string) (*dto.TransactionDetail, error)
}

// RegistrationService is the self registration surface used by RegistrationController
type RegistrationService interface {
	VerifyIdentity(ctx context.Context, req dto.VerifyIdentityRequest) (*dto.VerifiedStudent, error)
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*dto.CreatedAccount, error)
}

// Controllers holds every HTTP controller
type Controllers struct {
	Auth         *AuthController
	Akademik     *AkademikController
	Payment      *PaymentController
	Registration *RegistrationController
	Health       *HealthController
}

// NewControllers builds the controllers on top of the services
func NewControllers(svcs *services.Services, pingers map[string]db.Pinger, logger zerolog.Logger) *Controllers {
	return &Controllers{
		Auth:         NewAuthController(svcs.Auth, logger),
		Akademik:     NewAkademikController(svcs.Akademik, logger),
		Payment:      NewPaymentController(svcs.Payment, logger),
		Registration: NewRegistrationController(svcs.Registration, logger),
		Health:       NewHealthController(pingers),
	}
}

// internalFallback returns message for internal errors so causes never
// decide the envelope text; other kinds keep their own message.
func internalFallback(err error, message string) string {
	if apperrors.KindOf(err) == apperrors.KindInternal {
		return message
	}
	return ""
}
