package cli

import (
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/andrescamacho/alchemist-go/internal/adapters/persistence"
	"github.com/andrescamacho/alchemist-go/internal/application/alchemy/services"
	"github.com/andrescamacho/alchemist-go/internal/domain/alchemy"
	"github.com/andrescamacho/alchemist-go/internal/infrastructure/config"
	"github.com/andrescamacho/alchemist-go/internal/infrastructure/database"
)

// openServices wires the repository-backed services from the loaded config.
// The returned cleanup closes the database connection.
func openServices() (*services.CatalogService, *services.LaboratoryService, func(), error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		closeDB(db)
		return nil, nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	repo := persistence.NewGormCatalogRepository(db)
	catalogs := services.NewCatalogService(repo)
	labs := services.NewLaboratoryService(repo,
		alchemy.WithResidueEpsilon(cfg.Lab.ResidueEpsilon))

	cleanup := func() { closeDB(db) }
	return catalogs, labs, cleanup, nil
}

func closeDB(db *gorm.DB) {
	_ = database.Close(db)
}

// printStock prints an inventory snapshot in name order.
func printStock(stock map[string]float64) {
	names := make([]string, 0, len(stock))
	for name := range stock {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-24s %g\n", name, stock[name])
	}
}
