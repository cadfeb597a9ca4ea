// cmd/precompute/main.go
//
// Regenerates product image manifests and the paged catalog cache the API
// serves with X-Cache: PRECOMPUTED. Run after adding images or products.
package main

import (
	"context"
	"log"
	"os"
	"time"

	outdb "m3dshop/internal/adapters/out/db"
	usecase "m3dshop/internal/application/usecase"
	"m3dshop/internal/infra/config"
	"m3dshop/internal/infra/database"
)

func main() {
	cfg := config.Load()

	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Printf("[precompute] FATAL: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	uc := usecase.NewCatalogUsecase(outdb.NewProductRepositoryPG(db.Client), cfg.PublicDir)
	if err := uc.Precompute(ctx); err != nil {
		log.Printf("[precompute] FATAL: %v", err)
		os.Exit(1)
	}
	log.Printf("[precompute] done")
}
