package main

import (
	"context"
	"flag"
	"log"

	"bikestore/config"
	"bikestore/database"
	datasetapp "bikestore/internal/dataset/application"
	datasetinfra "bikestore/internal/dataset/infrastructure"
	sharedinfra "bikestore/internal/shared/infrastructure"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// seed importe un répertoire de CSV BikeStore dans PostgreSQL
func main() {
	// Charge .env
	if err := godotenv.Load(); err != nil {
		log.Println("Attention: fichier .env non trouvé, utilisation des valeurs par défaut")
	}
	cfg := config.LoadEnv()

	dir := flag.String("dir", cfg.Source.CSVDir, "répertoire contenant les cinq fichiers CSV")
	flag.Parse()

	appLogger, err := sharedinfra.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	ctx := context.Background()

	// Les CSV passent par le même chargement validé que le serveur
	ds, err := datasetapp.NewLoader(appLogger).Load(ctx, datasetinfra.NewCSVSource(*dir))
	if err != nil {
		appLogger.Fatal("failed to load csv dataset", zap.String("dir", *dir), zap.Error(err))
	}

	db, err := database.Open(ctx, cfg.Postgres)
	if err != nil {
		appLogger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	appLogger.Info("Démarrage du seed de la base de données", zap.String("dir", *dir))
	counts, err := database.SeedDatabase(ctx, db, ds, appLogger)
	if err != nil {
		appLogger.Fatal("seed failed", zap.Error(err))
	}

	appLogger.Info("Seed terminé avec succès",
		zap.Int("categories", counts["categories"]),
		zap.Int("staffs", counts["staffs"]),
		zap.Int("products", counts["products"]),
		zap.Int("orders", counts["orders"]),
		zap.Int("order_items", counts["order_items"]),
	)
}
