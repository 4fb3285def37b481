package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/wirahusada/portal-backend/internal/app/models"
	"github.com/wirahusada/portal-backend/internal/app/models/dto"
	"github.com/wirahusada/portal-backend/internal/app/repositories"
	"github.com/wirahusada/portal-backend/internal/pkg/apperrors"
	"github.com/wirahusada/portal-backend/internal/pkg/auth"
)

// Auth messages
const (
	MsgCredentialsRequired = "Student name/NIM and NRM are required"
	MsgInvalidCredentials  = "Student not found or invalid credentials"
	MsgProfileNotFound     = "Student profile not found"
)

// AuthService handles student login and profile lookups
type AuthService struct {
	students repositories.StudentReader
	tokens   TokenIssuer
	logger   zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(students repositories.StudentReader, tokens TokenIssuer, logger zerolog.Logger) *AuthService {
	return &AuthService{
		students: students,
		tokens:   tokens,
		logger:   logger,
	}
}

type studentLookup func(ctx context.Context, identifier, nrm string) (*models.Student, error)

// findStudent tries NIM, then exact name, then name without spaces; first hit wins
func (s *AuthService) findStudent(ctx context.Context, identifier, nrm string) (*models.Student, error) {
	lookups := []studentLookup{
		s.students.FindByNIMAndNRM,
		s.students.FindByNameAndNRM,
		s.students.FindByCompactNameAndNRM,
	}

	for _, lookup := range lookups {
		student, err := lookup(ctx, identifier, nrm)
		if err == nil {
			return student, nil
		}
		if !errors.Is(err, repositories.ErrStudentNotFound) {
			return nil, apperrors.Internal("Database error while finding student", err)
		}
	}
	return nil, apperrors.Unauthorized(MsgInvalidCredentials)
}

// Login resolves the student and issues a token
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	identifier := strings.TrimSpace(req.NamamNim)
	nrm := strings.TrimSpace(req.NRM)
	if identifier == "" || nrm == "" {
		return nil, apperrors.Validation(MsgCredentialsRequired)
	}

	student, err := s.findStudent(ctx, identifier, nrm)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindUnauthorized) {
			s.logger.Info().Str("nrm", nrm).Msg("Login rejected: no matching student")
		} else {
			s.logger.Error().Err(err).Str("nrm", nrm).Msg("Login lookup failed")
		}
		return nil, err
	}

	identity := auth.Identity{NRM: student.NRM, NIM: student.NIM, Namam: student.Namam}
	token, expiresAt, err := s.tokens.IssueToken(identity)
	if err != nil {
		return nil, apperrors.Internal("Failed to issue token", err)
	}

	s.logger.Info().Str("nrm", student.NRM).Msg("Student logged in")

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User: dto.StudentIdentity{
			NRM:   student.NRM,
			NIM:   student.NIM,
			Namam: student.Namam,
		},
	}, nil
}

// GetProfile returns the public profile of the student
func (s *AuthService) GetProfile(ctx context.Context, nrm string) (*dto.ProfileResponse, error) {
	student, err := s.students.FindByNRM(ctx, nrm)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return nil, apperrors.NotFound(MsgProfileNotFound)
		}
		return nil, apperrors.Internal("Database error while getting student profile", err)
	}

	return &dto.ProfileResponse{
		NRM:      student.NRM,
		NIM:      student.NIM,
		Namam:    student.Namam,
		TgDaftar: student.TgDaftar,
		TpLahir:  student.TpLahir,
	}, nil
}
