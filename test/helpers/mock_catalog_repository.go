package helpers

import (
	"context"
	"fmt"

	"github.com/andrescamacho/alchemist-go/internal/domain/ports"
)

// MockCatalogRepository is an in-memory test double for the catalog repository
type MockCatalogRepository struct {
	catalogs map[string]*ports.Catalog
}

// NewMockCatalogRepository creates a new mock catalog repository
func NewMockCatalogRepository() *MockCatalogRepository {
	return &MockCatalogRepository{catalogs: make(map[string]*ports.Catalog)}
}

// SaveCatalog stores a catalog, replacing any existing catalog of the same name
func (m *MockCatalogRepository) SaveCatalog(_ context.Context, catalog *ports.Catalog) error {
	m.catalogs[catalog.Name] = catalog
	return nil
}

// FindCatalog loads a catalog by name
func (m *MockCatalogRepository) FindCatalog(_ context.Context, name string) (*ports.Catalog, error) {
	catalog, ok := m.catalogs[name]
	if !ok {
		return nil, fmt.Errorf("catalog not found: %s", name)
	}
	return catalog, nil
}

// ListCatalogs returns summaries of all stored catalogs
func (m *MockCatalogRepository) ListCatalogs(_ context.Context) ([]ports.CatalogSummary, error) {
	summaries := make([]ports.CatalogSummary, 0, len(m.catalogs))
	for _, catalog := range m.catalogs {
		summaries = append(summaries, ports.CatalogSummary{
			Name:       catalog.Name,
			Substances: len(catalog.Substances),
			Recipes:    len(catalog.Recipes),
		})
	}
	return summaries, nil
}
