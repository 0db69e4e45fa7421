package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"contacts-backend/pkg/logger"
)

// The optional first argument selects the configuration profile: "direct"
// reads a local .env file, "cloud" trusts the injected environment.
func main() {
	profile := "direct"
	if len(os.Args) > 1 {
		profile = os.Args[1]
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info().Str("environment", env).Str("profile", profile).Msg("starting contacts service")
	Serve(profile)
}
