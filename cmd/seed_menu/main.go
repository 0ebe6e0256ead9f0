// seed_menu carga un menú de ejemplo (productos con un lote de stock cada uno) en PostgreSQL.
//
// Uso: go run ./cmd/seed_menu
// Lee la misma configuración que la API (DB_*, DATABASE_URL). Es idempotente respecto a los
// artículos: si el producto ya existe se reutiliza, pero cada ejecución agrega un lote nuevo.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-restaurante/internal/application/dto"
	"github.com/jhoicas/pos-restaurante/internal/application/inventory"
	"github.com/jhoicas/pos-restaurante/internal/domain/entity"
	"github.com/jhoicas/pos-restaurante/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-restaurante/pkg/config"
	"github.com/jhoicas/pos-restaurante/pkg/logger"
)

type menuItem struct {
	name     string
	category string
	price    int64
}

var menu = []menuItem{
	{"Chicken Adobo", "Platos", 120},
	{"Beef Sinigang", "Platos", 150},
	{"Pork Sisig", "Platos", 180},
	{"Fish Paksiw", "Platos", 130},
	{"Pancit Canton", "Platos", 90},
	{"Fried Rice", "Acompañamientos", 70},
	{"Coke", "Bebidas", 25},
	{"Sprite", "Bebidas", 25},
	{"San Miguel Beer", "Bebidas", 45},
	{"Halo-Halo", "Postres", 80},
	{"Leche Flan", "Postres", 60},
	{"Turon", "Postres", 35},
}

const (
	batchQuantity   = 50
	batchExpiryDays = 30
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed_menu"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	itemRepo := postgres.NewInventoryItemRepository(pool)
	batchRepo := postgres.NewStockBatchRepository(pool)
	items := inventory.NewItemUseCase(itemRepo, batchRepo, postgres.NewOrderRepository(pool))
	ledger := inventory.NewStockLedger(postgres.NewTxRunner(pool), itemRepo, batchRepo)

	expiry := time.Now().AddDate(0, 0, batchExpiryDays)
	for _, m := range menu {
		item, created, err := items.Create(ctx, dto.ItemRequest{
			Name:     m.name,
			Type:     entity.ItemTypeProduct,
			Unit:     "pcs",
			Category: m.category,
			Price:    decimal.NewFromInt(m.price),
		})
		if err != nil {
			log.Fatal().Err(err).Str("item", m.name).Msg("crear producto")
		}
		if _, err := ledger.AddBatch(ctx, inventory.AddBatchInput{
			ItemID:   item.ID,
			Quantity: batchQuantity,
			Expiry:   expiry,
		}); err != nil {
			log.Fatal().Err(err).Str("item", m.name).Msg("agregar lote")
		}
		log.Info().Int64("item_id", item.ID).Str("item", m.name).Bool("created", created).Msg("producto listo")
	}
	log.Info().Int("products", len(menu)).Msg("menú cargado")
}
