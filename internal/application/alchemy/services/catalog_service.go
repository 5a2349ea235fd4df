package services

import (
	"context"
	"fmt"

	"github.com/andrescamacho/alchemist-go/internal/domain/alchemy"
	"github.com/andrescamacho/alchemist-go/internal/domain/ports"
)

// CatalogService manages stored laboratory definitions
type CatalogService struct {
	catalogs ports.CatalogRepository
}

// NewCatalogService creates a catalog service backed by the given repository
func NewCatalogService(catalogs ports.CatalogRepository) *CatalogService {
	return &CatalogService{catalogs: catalogs}
}

// Save validates and stores a catalog. Validation is by construction: a
// Laboratory is built from the definition, so a catalog that cannot produce a
// working laboratory (bad names, unknown reagents, singular cycles) is
// rejected before it ever reaches storage.
func (s *CatalogService) Save(ctx context.Context, catalog *ports.Catalog) error {
	if catalog.Name == "" {
		return fmt.Errorf("catalog name cannot be empty")
	}
	if _, err := alchemy.NewLaboratory(catalog.Substances, catalog.Stock, catalog.Recipes); err != nil {
		return fmt.Errorf("catalog %q is not a valid laboratory definition: %w", catalog.Name, err)
	}
	return s.catalogs.SaveCatalog(ctx, catalog)
}

// List returns summaries of all stored catalogs
func (s *CatalogService) List(ctx context.Context) ([]ports.CatalogSummary, error) {
	return s.catalogs.ListCatalogs(ctx)
}
