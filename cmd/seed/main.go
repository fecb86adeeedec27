package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"climatec_os/internal/adapter/persistence/repository"
	"climatec_os/internal/infrastructure/config"
	"climatec_os/internal/infrastructure/database"
	"climatec_os/internal/seed"
	"climatec_os/internal/usecase"

	_ "github.com/joho/godotenv/autoload"
	"github.com/juju/clock"
)

func main() {
	file := flag.String("file", "configs/materials.yaml", "material catalog to load")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("Failed to open catalog: %v", err)
	}
	defer f.Close()

	catalog, err := seed.LoadCatalog(f)
	if err != nil {
		log.Fatalf("Failed to read catalog: %v", err)
	}

	awsCfg, err := database.NewAWSConfig(ctx, cfg.AWS)
	if err != nil {
		log.Fatalf("Failed to load AWS configuration: %v", err)
	}
	repo := repository.NewMaterialDynamoRepository(database.NewDynamoDBClient(awsCfg, cfg.AWS), cfg.Tables.Materials)

	res, err := seed.Apply(ctx, usecase.NewMaterialUseCase(repo, clock.WallClock), catalog)
	if err != nil {
		log.Fatalf("Seed failed after creating %d materials: %v", res.Created, err)
	}
	log.Printf("[seed][material] done created=%d skipped=%d table=%s", res.Created, res.Skipped, cfg.Tables.Materials)
}
