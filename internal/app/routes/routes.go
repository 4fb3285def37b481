package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/wirahusada/portal-backend/internal/app/controllers"
	"github.com/wirahusada/portal-backend/internal/middleware"
)

// Options carries the cross-cutting handlers the route table attaches
type Options struct {
	Auth        *middleware.AuthMiddleware
	RateLimiter *middleware.RateLimiter
	Metrics     *middleware.Metrics
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrls *controllers.Controllers, opts Options) {
	router.NoRoute(middleware.NoRoute)

	// --- Plumbing ---
	router.GET("/", ctrls.Health.Root)
	router.GET("/health", ctrls.Health.Health)
	if opts.Metrics != nil {
		router.GET("/metrics", opts.Metrics.Handler())
	}

	limited := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if opts.RateLimiter == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{opts.RateLimiter.Handler(), h}
	}
	guard := opts.Auth.JWTAuth()

	// --- Auth ---
	auth := router.Group("/auth")
	{
		auth.POST("/login", limited(ctrls.Auth.Login)...)
		auth.GET("/profile", guard, ctrls.Auth.GetProfile)
		auth.POST("/verify", guard, ctrls.Auth.VerifyToken)
	}

	// --- Academic records ---
	mahasiswa := router.Group("/akademik/mahasiswa")
	{
		mahasiswa.GET("/daftar", ctrls.Akademik.ListStudents)

		own := mahasiswa.Group("", guard)
		own.GET("/info", ctrls.Akademik.GetInfo)
		own.GET("/transkrip", ctrls.Akademik.GetTranscript)
		own.POST("/transkrip/usul-hapus", ctrls.Akademik.SetUsulanHapus)
		own.GET("/khs", ctrls.Akademik.GetKHS)
		own.GET("/krs", ctrls.Akademik.GetKRS)
		own.GET("/krs/tahun", ctrls.Akademik.ListKRSYears)
	}

	// --- Payments: every route needs a token ---
	payments := router.Group("/payments", guard)
	{
		payments.GET("/history", ctrls.Payment.GetHistory)
		payments.GET("/summary", ctrls.Payment.GetSummary)
		payments.GET("/types", ctrls.Payment.ListTypes)
		payments.GET("/detail/:id", ctrls.Payment.GetDetail)
		payments.POST("/refresh", ctrls.Payment.Refresh)
	}

	// --- Self registration ---
	registration := router.Group("/registration")
	{
		registration.POST("/verify-identity", limited(ctrls.Registration.VerifyIdentity)...)
		registration.POST("/create-account", limited(ctrls.Registration.CreateAccount)...)
	}
}
