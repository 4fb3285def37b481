package services

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/wirahusada/portal-backend/internal/app/repositories"
	"github.com/wirahusada/portal-backend/internal/pkg/auth"
)

// TokenIssuer signs a student identity into a bearer token
type TokenIssuer interface {
	IssueToken(identity auth.Identity) (string, time.Time, error)
}

// Services holds every domain service
type Services struct {
	Auth         *AuthService
	Akademik     *AkademikService
	Payment      *PaymentService
	Registration *RegistrationService
}

// NewServices wires the domain services to their repositories
func NewServices(repos *repositories.Repositories, tokens TokenIssuer, logger zerolog.Logger) *Services {
	return &Services{
		Auth:         NewAuthService(repos.StudentRepository, tokens, logger),
		Akademik:     NewAkademikService(repos.StudentRepository, repos.AkademikRepository, logger),
		Payment:      NewPaymentService(repos.PaymentRepository, repos.StudentRepository, logger),
		Registration: NewRegistrationService(repos.StudentRepository, repos.AccountRepository, logger),
	}
}
