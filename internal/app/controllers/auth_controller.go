package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/wirahusada/portal-backend/internal/app/models/dto"
	"github.com/wirahusada/portal-backend/internal/app/services"
	"github.com/wirahusada/portal-backend/internal/middleware"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// requireStudent writes a 401 and returns false when the guard attached no identity
func requireStudent(ctx *gin.Context) (string, bool) {
	identity, ok := middleware.CurrentStudent(ctx)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized,
			dto.NewErrorResponse("Authentication required", "User not found in request"))
		return "", false
	}
	return identity.NRM, true
}

// Login handles student login
// @Summary Student login
// @Description Authenticates a student by name or NIM together with the NRM and returns a 24 hour token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Login successful"
// @Failure 400 {object} dto.APIResponse "Missing credentials"
// @Failure 401 {object} dto.APIResponse "Student not found or invalid credentials"
// @Failure 429 {object} dto.APIResponse "Too many requests"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req, services.MsgCredentialsRequired, "namam_nim and nrm fields are required") {
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, internalFallback(err, "Login failed"), err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Login successful", resp))
}

// GetProfile returns the authenticated student's profile
// @Summary Get profile
// @Description Returns the profile of the student identified by the bearer token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse} "Profile retrieved successfully"
// @Failure 401 {object} dto.APIResponse "Access token required"
// @Failure 403 {object} dto.APIResponse "Invalid or expired token"
// @Failure 404 {object} dto.APIResponse "Student profile not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /auth/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	nrm, ok := requireStudent(ctx)
	if !ok {
		return
	}

	profile, err := c.authService.GetProfile(ctx.Request.Context(), nrm)
	if err != nil {
		middleware.HandleAPIError(ctx, internalFallback(err, "Failed to retrieve profile"), err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Profile retrieved successfully", profile))
}

// VerifyToken echoes the identity carried by a valid token
// @Summary Verify token
// @Description Confirms the bearer token is valid and returns its identity
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentIdentity} "Token is valid"
// @Failure 401 {object} dto.APIResponse "Access token required"
// @Failure 403 {object} dto.APIResponse "Invalid or expired token"
// @Router /auth/verify [post]
func (c *AuthController) VerifyToken(ctx *gin.Context) {
	identity, ok := middleware.CurrentStudent(ctx)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid token", "Token verification failed"))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Token is valid", dto.StudentIdentity{
		NRM:   identity.NRM,
		NIM:   identity.NIM,
		Namam: identity.Namam,
	}))
}
