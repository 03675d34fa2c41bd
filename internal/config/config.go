package config

import (
	"log"

	"go.uber.org/zap"
)

// Logger is the process wide logger. It is a no-op until InitLogger runs.
var Logger = zap.NewNop()

func InitLogger(env string) {
	var (
		l   *zap.Logger
		err error
	)
	if env == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	Logger = l

	Logger.Info("✅ Zap logger initialized", zap.String("env", env))
}
