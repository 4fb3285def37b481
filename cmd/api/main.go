package main

import (
	"os"

	"github.com/wirahusada/portal-backend/internal/pkg/logger"
	"github.com/wirahusada/portal-backend/internal/server"
)

// @title Wirahusada Portal Backend API
// @version 1.0
// @description Student portal API: authentication, academic records, payments and self registration.

// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
