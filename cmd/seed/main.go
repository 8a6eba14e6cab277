// seed carga el stock inicial del departamento central para cada artículo del catálogo.
//
// Uso: go run ./cmd/seed [-qty 10] [-department MMG]
// Usa la misma configuración que la API (STORAGE_DRIVER, DATABASE_URL, SQLITE_PATH, CATALOG_*).
// Las entradas existentes se acumulan y conservan su ledger.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/inventario-mmg/internal/application/stock"
	"github.com/jhoicas/inventario-mmg/internal/domain/ledger"
	"github.com/jhoicas/inventario-mmg/internal/infrastructure/catalogfile"
	"github.com/jhoicas/inventario-mmg/internal/infrastructure/storage"
	"github.com/jhoicas/inventario-mmg/pkg/config"
	"github.com/jhoicas/inventario-mmg/pkg/logger"
)

func main() {
	qty := flag.Int("qty", 10, "unidades por artículo")
	department := flag.String("department", "", "departamento destino (por defecto el central)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	dep := *department
	if dep == "" {
		dep = cfg.Workflow.CentralDepartment
	}

	cat, err := catalogfile.Resolve(cfg.Catalog.File, cfg.Catalog.Variant)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Catálogo: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Almacenamiento: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	uc := stock.NewUseCase(store.Stock, cat, ledger.NewGenerator(), log.Zerolog(), nil)

	var created, updated int
	for _, c := range cat.All() {
		for _, item := range c.Items {
			_, isNew, err := uc.Intake(ctx, stock.IntakeInput{
				ItemName:   item,
				Category:   c.Name,
				Department: dep,
				Quantity:   *qty,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "Ingreso de %q: %v\n", item, err)
				store.Close()
				os.Exit(1)
			}
			if isNew {
				created++
			} else {
				updated++
			}
		}
	}

	log.Info().
		Str("department", dep).
		Int("created", created).
		Int("updated", updated).
		Msg("stock inicial cargado")
}
