package ports

import (
	"context"

	"github.com/andrescamacho/alchemist-go/internal/domain/alchemy"
)

// Catalog is a stored laboratory definition: the construction inputs of a
// Laboratory, not its runtime inventory. Importing a catalog and opening it
// are the only ways definitions enter the system; once a Laboratory is built
// from a catalog the two never synchronize again.
type Catalog struct {
	Name       string
	Substances []string
	Stock      map[string]float64
	Recipes    map[string][]alchemy.Reagent
	// RecipeOrder preserves the declaration order of products from the source
	// document, used for stable display
	RecipeOrder []string
}

// CatalogSummary is a listing row for stored catalogs
type CatalogSummary struct {
	Name       string
	Substances int
	Recipes    int
}

// CatalogRepository defines the domain's interface for catalog storage.
// The persistence adapter implements it; application services depend only on
// this interface.
type CatalogRepository interface {
	// SaveCatalog stores a catalog, replacing any existing catalog of the same name
	SaveCatalog(ctx context.Context, catalog *Catalog) error

	// FindCatalog loads a catalog by name
	FindCatalog(ctx context.Context, name string) (*Catalog, error)

	// ListCatalogs returns summaries of all stored catalogs
	ListCatalogs(ctx context.Context) ([]CatalogSummary, error)
}
