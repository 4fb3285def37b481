package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wirahusada/portal-backend/internal/app/models/dto"
	"github.com/wirahusada/portal-backend/internal/pkg/apperrors"
	"github.com/wirahusada/portal-backend/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) dto.APIResponse {
	t.Helper()
	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func guardedRouter(jwtService *auth.JWTService) *gin.Engine {
	r := gin.New()
	guard := NewAuthMiddleware(jwtService, zerolog.Nop())
	r.GET("/me", guard.JWTAuth(), func(c *gin.Context) {
		identity, ok := CurrentStudent(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", identity))
	})
	return r
}

func TestJWTAuth(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", TokenIssuer: "test"})
	r := guardedRouter(jwtService)

	token, _, err := jwtService.IssueToken(auth.Identity{NRM: "2021001", NIM: "A11", Namam: "Siti"})
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		resp := decodeEnvelope(t, w)
		assert.False(t, resp.Success)
		assert.Equal(t, MsgTokenRequired, resp.Message)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, MsgTokenInvalid, decodeEnvelope(t, w).Message)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := auth.NewJWTService(auth.JWTConfig{SecretKey: "other", TokenIssuer: "test"})
		forged, _, err := other.IssueToken(auth.Identity{NRM: "2021001"})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"nrm":"2021001"`)
	})
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fallback string
		status   int
		message  string
	}{
		{"validation", apperrors.Validation("bad input"), "", http.StatusBadRequest, "bad input"},
		{"unauthorized", apperrors.Unauthorized("nope"), "", http.StatusUnauthorized, "nope"},
		{"not found with fallback", apperrors.NotFound("Tidak ada data"), "Gagal mengambil KHS", http.StatusNotFound, "Gagal mengambil KHS"},
		{"conflict", apperrors.Conflict("taken"), "", http.StatusConflict, "taken"},
		{"plain error", errors.New("boom"), "Gagal", http.StatusInternalServerError, "Gagal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			HandleAPIError(c, tt.fallback, tt.err)

			assert.Equal(t, tt.status, w.Code)
			resp := decodeEnvelope(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.message, resp.Message)
			assert.Equal(t, []string{tt.err.Error()}, resp.Errors)
		})
	}
}

func TestRecoveryAndNoRoute(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.NoRoute(NoRoute)
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, decodeEnvelope(t, w).Success)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, []string{"GET /missing"}, decodeEnvelope(t, w).Errors)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), RequestLogger(zerolog.Nop()))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, RequestIDFrom(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	handler := func(c *gin.Context) { c.Status(http.StatusOK) }

	t.Run("wildcard", func(t *testing.T) {
		r := gin.New()
		r.Use(CORS("*"))
		r.GET("/", handler)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://anything.example")
		r.ServeHTTP(w, req)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("listed origins", func(t *testing.T) {
		r := gin.New()
		r.Use(CORS("https://portal.example.ac.id, https://admin.example.ac.id"))
		r.GET("/", handler)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://admin.example.ac.id")
		r.ServeHTTP(w, req)
		assert.Equal(t, "https://admin.example.ac.id", w.Header().Get("Access-Control-Allow-Origin"))

		w = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://evil.example")
		r.ServeHTTP(w, req)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		r := gin.New()
		r.Use(CORS("*"))
		r.POST("/auth/login", handler)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/auth/login", nil)
		req.Header.Set("Origin", "https://portal.example.ac.id")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.True(t, strings.Contains(w.Header().Get("Access-Control-Allow-Headers"), "Authorization"))
	})
}
