package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andrescamacho/alchemist-go/internal/domain/alchemy"
	"github.com/andrescamacho/alchemist-go/internal/domain/ports"
)

// GormCatalogRepository implements ports.CatalogRepository using GORM
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GORM catalog repository
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// SaveCatalog stores a catalog, replacing any existing catalog of the same
// name. The whole save runs in one transaction so a half-written catalog is
// never observable.
func (r *GormCatalogRepository) SaveCatalog(ctx context.Context, catalog *ports.Catalog) error {
	if catalog.Name == "" {
		return fmt.Errorf("catalog name cannot be empty")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteCatalogByName(tx, catalog.Name); err != nil {
			return err
		}

		model := CatalogModel{
			ID:        uuid.New().String(),
			Name:      catalog.Name,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.Create(&model).Error; err != nil {
			return fmt.Errorf("failed to create catalog: %w", err)
		}

		for i, name := range catalog.Substances {
			row := SubstanceModel{CatalogID: model.ID, Name: name, Ordinal: i}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to create substance row: %w", err)
			}
		}

		for name, qty := range catalog.Stock {
			row := StockModel{CatalogID: model.ID, Name: name, Quantity: qty}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to create stock row: %w", err)
			}
		}

		for i, product := range r.recipeOrder(catalog) {
			recipe := RecipeModel{
				ID:        uuid.New().String(),
				CatalogID: model.ID,
				Product:   product,
				Ordinal:   i,
			}
			if err := tx.Create(&recipe).Error; err != nil {
				return fmt.Errorf("failed to create recipe row: %w", err)
			}
			for j, reagent := range catalog.Recipes[product] {
				row := ReagentModel{
					RecipeID:    recipe.ID,
					Ordinal:     j,
					Name:        reagent.Name,
					Coefficient: reagent.Coefficient,
				}
				if err := tx.Create(&row).Error; err != nil {
					return fmt.Errorf("failed to create reagent row: %w", err)
				}
			}
		}

		return nil
	})
}

// FindCatalog loads a catalog by name
func (r *GormCatalogRepository) FindCatalog(ctx context.Context, name string) (*ports.Catalog, error) {
	var model CatalogModel
	result := r.db.WithContext(ctx).Where("name = ?", name).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("catalog not found: %s", name)
		}
		return nil, fmt.Errorf("failed to find catalog: %w", result.Error)
	}

	catalog := &ports.Catalog{
		Name:    model.Name,
		Stock:   make(map[string]float64),
		Recipes: make(map[string][]alchemy.Reagent),
	}

	var substances []SubstanceModel
	if err := r.db.WithContext(ctx).Where("catalog_id = ?", model.ID).Order("ordinal").Find(&substances).Error; err != nil {
		return nil, fmt.Errorf("failed to load substances: %w", err)
	}
	for _, row := range substances {
		catalog.Substances = append(catalog.Substances, row.Name)
	}

	var stock []StockModel
	if err := r.db.WithContext(ctx).Where("catalog_id = ?", model.ID).Find(&stock).Error; err != nil {
		return nil, fmt.Errorf("failed to load stock: %w", err)
	}
	for _, row := range stock {
		catalog.Stock[row.Name] = row.Quantity
	}

	var recipes []RecipeModel
	if err := r.db.WithContext(ctx).Where("catalog_id = ?", model.ID).Order("ordinal").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}
	for _, recipe := range recipes {
		var reagents []ReagentModel
		if err := r.db.WithContext(ctx).Where("recipe_id = ?", recipe.ID).Order("ordinal").Find(&reagents).Error; err != nil {
			return nil, fmt.Errorf("failed to load reagents for %s: %w", recipe.Product, err)
		}
		list := make([]alchemy.Reagent, 0, len(reagents))
		for _, row := range reagents {
			list = append(list, alchemy.Reagent{Coefficient: row.Coefficient, Name: row.Name})
		}
		catalog.Recipes[recipe.Product] = list
		catalog.RecipeOrder = append(catalog.RecipeOrder, recipe.Product)
	}

	return catalog, nil
}

// ListCatalogs returns summaries of all stored catalogs
func (r *GormCatalogRepository) ListCatalogs(ctx context.Context) ([]ports.CatalogSummary, error) {
	var models []CatalogModel
	if err := r.db.WithContext(ctx).Order("name").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list catalogs: %w", err)
	}

	summaries := make([]ports.CatalogSummary, 0, len(models))
	for _, model := range models {
		var substances, recipes int64
		if err := r.db.WithContext(ctx).Model(&SubstanceModel{}).Where("catalog_id = ?", model.ID).Count(&substances).Error; err != nil {
			return nil, fmt.Errorf("failed to count substances: %w", err)
		}
		if err := r.db.WithContext(ctx).Model(&RecipeModel{}).Where("catalog_id = ?", model.ID).Count(&recipes).Error; err != nil {
			return nil, fmt.Errorf("failed to count recipes: %w", err)
		}
		summaries = append(summaries, ports.CatalogSummary{
			Name:       model.Name,
			Substances: int(substances),
			Recipes:    int(recipes),
		})
	}

	return summaries, nil
}

// recipeOrder yields products in the catalog's declared order, falling back
// to map order for catalogs assembled without one
func (r *GormCatalogRepository) recipeOrder(catalog *ports.Catalog) []string {
	if len(catalog.RecipeOrder) == len(catalog.Recipes) {
		return catalog.RecipeOrder
	}
	order := make([]string, 0, len(catalog.Recipes))
	for product := range catalog.Recipes {
		order = append(order, product)
	}
	return order
}

// deleteCatalogByName removes a catalog and its dependent rows
func deleteCatalogByName(tx *gorm.DB, name string) error {
	var existing CatalogModel
	result := tx.Where("name = ?", name).First(&existing)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil
		}
		return fmt.Errorf("failed to look up existing catalog: %w", result.Error)
	}

	var recipes []RecipeModel
	if err := tx.Where("catalog_id = ?", existing.ID).Find(&recipes).Error; err != nil {
		return fmt.Errorf("failed to load recipes for delete: %w", err)
	}
	for _, recipe := range recipes {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&ReagentModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete reagents: %w", err)
		}
	}
	if err := tx.Where("catalog_id = ?", existing.ID).Delete(&RecipeModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete recipes: %w", err)
	}
	if err := tx.Where("catalog_id = ?", existing.ID).Delete(&StockModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete stock: %w", err)
	}
	if err := tx.Where("catalog_id = ?", existing.ID).Delete(&SubstanceModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete substances: %w", err)
	}
	if err := tx.Delete(&existing).Error; err != nil {
		return fmt.Errorf("failed to delete catalog: %w", err)
	}
	return nil
}
