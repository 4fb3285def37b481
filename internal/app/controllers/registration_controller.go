package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/wirahusada/portal-backend/internal/app/models/dto"
	"github.com/wirahusada/portal-backend/internal/app/services"
	"github.com/wirahusada/portal-backend/internal/middleware"
)

// MsgSystemError is shown when registration fails for reasons the student cannot fix
const MsgSystemError = "Terjadi kesalahan sistem. Silakan coba lagi."

// RegistrationController runs the two-stage self registration
type RegistrationController struct {
	registrationService RegistrationService
	logger              zerolog.Logger
}

// NewRegistrationController creates a new RegistrationController
func NewRegistrationController(registrationService RegistrationService, logger zerolog.Logger) *RegistrationController {
	return &RegistrationController{
		registrationService: registrationService,
		logger:              logger,
	}
}

// VerifyIdentity is registration stage one
// @Summary Verify student identity
// @Description Matches name, NIM, NRM and birth date against the academic records and checks that no account exists yet
// @Tags registration
// @Accept json
// @Produce json
// @Param request body dto.VerifyIdentityRequest true "Identity"
// @Success 200 {object} dto.APIResponse{data=dto.VerifiedStudent} "Data mahasiswa berhasil diverifikasi"
// @Failure 400 {object} dto.APIResponse "Missing or malformed fields"
// @Failure 404 {object} dto.APIResponse "Data tidak ditemukan"
// @Failure 409 {object} dto.APIResponse "Akun sudah terdaftar"
// @Failure 429 {object} dto.APIResponse "Too many requests"
// @Failure 500 {object} dto.APIResponse "System error"
// @Router /registration/verify-identity [post]
func (c *RegistrationController) VerifyIdentity(ctx *gin.Context) {
	var req dto.VerifyIdentityRequest
	if !middleware.BindJSON(ctx, &req, services.MsgIdentityFieldsRequired) {
		return
	}

	student, err := c.registrationService.VerifyIdentity(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, internalFallback(err, MsgSystemError), err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(services.MsgIdentityVerified, student))
}

// CreateAccount is registration stage two
// @Summary Create student account
// @Description Re-verifies the identity, then stores the login in the identity and academic stores
// @Tags registration
// @Accept json
// @Produce json
// @Param request body dto.CreateAccountRequest true "Identity and credentials"
// @Success 200 {object} dto.APIResponse{data=dto.CreatedAccount} "Registrasi berhasil"
// @Failure 400 {object} dto.APIResponse "Missing or malformed fields"
// @Failure 404 {object} dto.APIResponse "Data tidak ditemukan"
// @Failure 409 {object} dto.APIResponse "Already registered or username taken"
// @Failure 429 {object} dto.APIResponse "Too many requests"
// @Failure 500 {object} dto.APIResponse "System error"
// @Router /registration/create-account [post]
func (c *RegistrationController) CreateAccount(ctx *gin.Context) {
	var req dto.CreateAccountRequest
	if !middleware.BindJSON(ctx, &req, services.MsgAccountFieldsRequired) {
		return
	}

	created, err := c.registrationService.CreateAccount(ctx.Request.Context(), req)
	if err != nil {
		c.logger.Warn().Err(err).Str("username", req.Username).Msg("Account creation rejected")
		middleware.HandleAPIError(ctx, internalFallback(err, MsgSystemError), err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(services.MsgAccountCreated, created))
}
