package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/wirahusada/portal-backend/internal/app/models/dto"
	"github.com/wirahusada/portal-backend/internal/app/services"
	"github.com/wirahusada/portal-backend/internal/middleware"
	"github.com/wirahusada/portal-backend/internal/pkg/apperrors"
)

func authRouter(svc AuthService) *gin.Engine {
	ctrl := NewAuthController(svc, zerolog.Nop())
	r := gin.New()
	r.POST("/auth/login", ctrl.Login)
	r.GET("/auth/profile", asStudent(testStudent), ctrl.GetProfile)
	r.POST("/auth/verify", asStudent(testStudent), ctrl.VerifyToken)
	r.GET("/anon/profile", ctrl.GetProfile)
	return r
}

func TestLoginEndpoint(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Login", mock.Anything, dto.LoginRequest{NamamNim: "A12345", NRM: "99001"}).Return(&dto.LoginResponse{
		Token:     "signed",
		ExpiresAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		User:      dto.StudentIdentity{NRM: "99001", NIM: "A12345", Namam: "Siti"},
	}, nil)
	svc.On("Login", mock.Anything, dto.LoginRequest{NamamNim: "A12345", NRM: "00000"}).
		Return(nil, apperrors.Unauthorized(services.MsgInvalidCredentials))

	r := authRouter(svc)

	w, env := perform(t, r, http.MethodPost, "/auth/login", `{"namam_nim":"A12345","nrm":"99001"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Login successful", env.Message)
	assert.Contains(t, string(env.Data), `"token":"signed"`)

	w, env = perform(t, r, http.MethodPost, "/auth/login", `{"namam_nim":"A12345","nrm":"00000"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, services.MsgInvalidCredentials, env.Message)
	assert.Equal(t, []string{services.MsgInvalidCredentials}, env.Errors)
}

func TestLoginEndpointMissingFields(t *testing.T) {
	svc := new(mockAuthService)
	r := authRouter(svc)

	w, env := perform(t, r, http.MethodPost, "/auth/login", `{"namam_nim":"A12345"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Student name/NIM and NRM are required", env.Message)
	assert.Equal(t, []string{"namam_nim and nrm fields are required"}, env.Errors)
	svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestLoginEndpointInternalError(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Login", mock.Anything, mock.Anything).Return(nil, apperrors.Internal("Database error while finding student", errors.New("eof")))

	w, env := perform(t, authRouter(svc), http.MethodPost, "/auth/login", `{"namam_nim":"x","nrm":"y"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Login failed", env.Message)
}

func TestProfileEndpoint(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("GetProfile", mock.Anything, testStudent.NRM).Return(&dto.ProfileResponse{NRM: testStudent.NRM, Namam: testStudent.Namam}, nil)

	w, env := perform(t, authRouter(svc), http.MethodGet, "/auth/profile", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Profile retrieved successfully", env.Message)
	assert.Contains(t, string(env.Data), `"namam":"Siti Aminah"`)
}

func TestProfileEndpointErrors(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("GetProfile", mock.Anything, testStudent.NRM).Return(nil, apperrors.NotFound(services.MsgProfileNotFound))
	r := authRouter(svc)

	w, env := perform(t, r, http.MethodGet, "/auth/profile", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Student profile not found", env.Message)

	w, env = perform(t, r, http.MethodGet, "/anon/profile", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authentication required", env.Message)
}

func TestProfileEndpointBehindGuard(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("GetProfile", mock.Anything, testStudent.NRM).Return(&dto.ProfileResponse{NRM: testStudent.NRM}, nil)
	guard := middleware.NewAuthMiddleware(fixedVerifier{identity: testStudent}, zerolog.Nop()).JWTAuth()
	r := gin.New()
	r.GET("/auth/profile", guard, NewAuthController(svc, zerolog.Nop()).GetProfile)

	w, env := perform(t, r, http.MethodGet, "/auth/profile", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, middleware.MsgTokenRequired, env.Message)

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer signed")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestVerifyEndpoint(t *testing.T) {
	w, env := perform(t, authRouter(new(mockAuthService)), http.MethodPost, "/auth/verify", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Token is valid", env.Message)
	assert.JSONEq(t, `{"nrm":"2021001","nim":"A11.2021.00001","namam":"Siti Aminah"}`, string(env.Data))
}
