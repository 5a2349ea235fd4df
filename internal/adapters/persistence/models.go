package persistence

import "time"

// CatalogModel represents the catalogs table
type CatalogModel struct {
	ID        string    `gorm:"column:id;primaryKey;not null"`
	Name      string    `gorm:"column:name;unique;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (CatalogModel) TableName() string {
	return "catalogs"
}

// SubstanceModel represents the catalog_substances table: the raw substance
// declarations of a catalog, in declaration order.
type SubstanceModel struct {
	ID        int    `gorm:"column:id;primaryKey;autoIncrement"`
	CatalogID string `gorm:"column:catalog_id;not null;index"`
	Name      string `gorm:"column:name;not null"`
	Ordinal   int    `gorm:"column:ordinal;not null"`
}

func (SubstanceModel) TableName() string {
	return "catalog_substances"
}

// StockModel represents the catalog_stock table: initial stock overrides,
// applicable to raw substances and products alike.
type StockModel struct {
	ID        int     `gorm:"column:id;primaryKey;autoIncrement"`
	CatalogID string  `gorm:"column:catalog_id;not null;index"`
	Name      string  `gorm:"column:name;not null"`
	Quantity  float64 `gorm:"column:quantity;not null"`
}

func (StockModel) TableName() string {
	return "catalog_stock"
}

// RecipeModel represents the catalog_recipes table
type RecipeModel struct {
	ID        string `gorm:"column:id;primaryKey;not null"`
	CatalogID string `gorm:"column:catalog_id;not null;index"`
	Product   string `gorm:"column:product;not null"`
	Ordinal   int    `gorm:"column:ordinal;not null"`
}

func (RecipeModel) TableName() string {
	return "catalog_recipes"
}

// ReagentModel represents the catalog_reagents table. The ordinal column
// preserves reagent order, which the recipe contract requires.
type ReagentModel struct {
	ID          int     `gorm:"column:id;primaryKey;autoIncrement"`
	RecipeID    string  `gorm:"column:recipe_id;not null;index"`
	Ordinal     int     `gorm:"column:ordinal;not null"`
	Name        string  `gorm:"column:name;not null"`
	Coefficient float64 `gorm:"column:coefficient;not null"`
}

func (ReagentModel) TableName() string {
	return "catalog_reagents"
}
