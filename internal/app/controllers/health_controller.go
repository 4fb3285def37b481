package controllers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wirahusada/portal-backend/internal/app/models/dto"
	"github.com/wirahusada/portal-backend/internal/db"
)

const pingTimeout = 2 * time.Second

// HealthController serves the banner and health endpoints
type HealthController struct {
	pingers   map[string]db.Pinger
	startedAt time.Time
	now       func() time.Time
}

// NewHealthController creates a new HealthController
func NewHealthController(pingers map[string]db.Pinger) *HealthController {
	return &HealthController{
		pingers:   pingers,
		startedAt: time.Now(),
		now:       time.Now,
	}
}

// Root returns the service banner
// @Summary Service banner
// @Tags system
// @Produce json
// @Success 200 {object} dto.ServiceInfo
// @Router / [get]
func (h *HealthController) Root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ServiceInfo{
		Message:   "Wirahusada Portal Backend API",
		Status:    "running",
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}

// Health reports uptime and pings every pool concurrently
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthController) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), pingTimeout)
	defer cancel()

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		out = make(map[string]string, len(h.pingers))
	)
	for name, p := range h.pingers {
		wg.Add(1)
		go func(name string, p db.Pinger) {
			defer wg.Done()
			state := "up"
			if err := p.Ping(pingCtx); err != nil {
				state = "down"
			}
			mu.Lock()
			out[name] = state
			mu.Unlock()
		}(name, p)
	}
	wg.Wait()

	status, code := "healthy", http.StatusOK
	for _, state := range out {
		if state != "up" {
			status, code = "degraded", http.StatusServiceUnavailable
			break
		}
	}

	ctx.JSON(code, dto.HealthResponse{
		Status:    status,
		Uptime:    h.now().Sub(h.startedAt).Seconds(),
		Databases: out,
	})
}
