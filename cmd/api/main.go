package main

import (
	"os"

	"github.com/pucknotes/server/internal/pkg/logger"
	"github.com/pucknotes/server/internal/server"
)

// @title PuckNotes API
// @version 1.0
// @description Course note sharing: notes, comments, likes and moderation reports

// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Bearer session token from /auth/login

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
