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
	"github.com/wirahusada/portal-backend/internal/pkg/helpers"
	"github.com/wirahusada/portal-backend/internal/pkg/logger"
	"github.com/wirahusada/portal-backend/internal/pkg/validation"
)

// Registration messages
const (
	MsgIdentityFieldsRequired = "Semua field harus diisi"
	MsgBirthDateFormat        = "Format tanggal lahir harus YYYY-MM-DD"
	MsgIdentityNotFound       = "Data tidak ditemukan di database mahasiswa"
	MsgAlreadyRegistered      = "Akun dengan data ini sudah terdaftar"
	MsgIdentityVerified       = "Data mahasiswa berhasil diverifikasi"
	MsgAccountFieldsRequired  = "Username, email, dan password harus diisi"
	MsgUsernameFormat         = "Username hanya boleh mengandung huruf dan angka"
	MsgEmailFormat            = "Format email tidak valid"
	MsgUsernameTaken          = "Username sudah digunakan"
	MsgSaveFailed             = "Gagal menyimpan data ke database"
	MsgAccountCreated         = "Registrasi berhasil! Akun Anda telah dibuat."
)

// PasswordHasher turns a plaintext password into its stored form
type PasswordHasher func(password string) (string, error)

// RegistrationService runs the two-stage self registration. Nothing is kept
// between the stages; the second stage re-verifies the identity it is given.
type RegistrationService struct {
	students repositories.StudentReader
	accounts repositories.AccountStore
	hash     PasswordHasher
	logger   zerolog.Logger
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(students repositories.StudentReader, accounts repositories.AccountStore, logger zerolog.Logger) *RegistrationService {
	return &RegistrationService{
		students: students,
		accounts: accounts,
		hash:     auth.HashPassword,
		logger:   logger,
	}
}

// VerifyIdentity is stage one: the student must exist and have no account yet
func (s *RegistrationService) VerifyIdentity(ctx context.Context, req dto.VerifyIdentityRequest) (*dto.VerifiedStudent, error) {
	student, err := s.matchStudent(ctx, req)
	if err != nil {
		return nil, err
	}

	registered, err := s.accounts.StudentAccountExists(ctx, student.NIM)
	if err != nil {
		return nil, apperrors.Internal("Gagal memeriksa akun", err)
	}
	if !registered {
		registered, err = s.accounts.IdentityNameExists(ctx, student.Namam)
		if err != nil {
			return nil, apperrors.Internal("Gagal memeriksa akun", err)
		}
	}
	if registered {
		return nil, apperrors.Conflict(MsgAlreadyRegistered)
	}

	s.logger.Info().Str("nrm", student.NRM).Str("nama", logger.Mask(student.Namam)).Msg("Registration identity verified")

	return &dto.VerifiedStudent{Nama: student.Namam, NIM: student.NIM, NRM: student.NRM}, nil
}

func (s *RegistrationService) matchStudent(ctx context.Context, req dto.VerifyIdentityRequest) (*models.Student, error) {
	nama := strings.TrimSpace(req.Nama)
	nim := strings.TrimSpace(req.NIM)
	nrm := strings.TrimSpace(req.NRM)
	tglahir := strings.TrimSpace(req.TgLahir)

	if nama == "" || nim == "" || nrm == "" || tglahir == "" {
		return nil, apperrors.Validation(MsgIdentityFieldsRequired)
	}

	birthDate, err := helpers.ParseISODate(tglahir)
	if err != nil {
		return nil, apperrors.Validation(MsgBirthDateFormat)
	}

	candidates, err := s.students.FindByIdentity(ctx, nim, nrm, birthDate)
	if err != nil {
		return nil, apperrors.Internal("Gagal mencari data mahasiswa", err)
	}

	want := helpers.NormalizeName(nama)
	for _, c := range candidates {
		if helpers.NormalizeName(c.Namam) == want {
			return c, nil
		}
	}
	return nil, apperrors.NotFound(MsgIdentityNotFound)
}

// CreateAccount is stage two: it re-runs stage one, then stores the login
func (s *RegistrationService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*dto.CreatedAccount, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	if username == "" || email == "" || req.Password == "" {
		return nil, apperrors.Validation(MsgAccountFieldsRequired)
	}
	if !validation.UsernamePattern.MatchString(username) {
		return nil, apperrors.Validation(MsgUsernameFormat)
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, apperrors.Validation(MsgEmailFormat)
	}

	student, err := s.VerifyIdentity(ctx, req.VerifyIdentityRequest)
	if err != nil {
		return nil, err
	}

	taken, err := s.accounts.UsernameExists(ctx, username)
	if err != nil {
		return nil, apperrors.Internal("Gagal memeriksa username", err)
	}
	if taken {
		return nil, apperrors.Conflict(MsgUsernameTaken)
	}

	hashed, err := s.hash(req.Password)
	if err != nil {
		return nil, apperrors.Internal(MsgSaveFailed, err)
	}

	err = s.accounts.CreateAccount(ctx, models.NewAccount{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Name:         student.Nama,
		NIM:          student.NIM,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrUsernameTaken) {
			return nil, apperrors.Conflict(MsgUsernameTaken)
		}
		s.logger.Error().Err(err).Str("username", username).Msg("Failed to create account")
		return nil, apperrors.Internal(MsgSaveFailed, err)
	}

	s.logger.Info().Str("username", username).Str("nim", student.NIM).Msg("Student account created")

	return &dto.CreatedAccount{Username: username, NIM: student.NIM}, nil
}
