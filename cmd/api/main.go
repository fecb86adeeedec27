package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"climatec_os/internal/adapter/http/routes"
	"climatec_os/internal/infrastructure/config"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Climatec OS API
// @version         1.0
// @description     Service orders, budgets and reports for HVAC technicians, backed by DynamoDB and S3.

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := routes.Run(ctx, cfg); err != nil {
		log.Fatalf("Failed to startup the application: %v", err)
	}
}
