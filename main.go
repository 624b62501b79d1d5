package main

import (
	"log"

	"github.com/joho/godotenv"

	"fincare-backend/cmd"
	"fincare-backend/internal/config"
	"fincare-backend/internal/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load()
	if err := logger.Setup(cfg.LoggerConfig()); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	cmd.Execute(cfg)
}
