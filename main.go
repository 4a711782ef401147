package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/hotelsara/concierge/internal/app"
	"github.com/hotelsara/concierge/internal/logger"
)

func main() {
	// Best effort: a missing .env is fine.
	_ = godotenv.Load()

	l := logger.New(log.Default())

	var exitCode int

	if err := app.Run(l); err != nil {
		l.LogErrorf("Failed to run app: %v", err.Error())

		exitCode = 1
	}

	os.Exit(exitCode)
}
