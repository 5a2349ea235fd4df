package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/alchemist-go/internal/adapters/persistence"
	"github.com/andrescamacho/alchemist-go/internal/domain/alchemy"
	"github.com/andrescamacho/alchemist-go/internal/domain/ports"
	"github.com/andrescamacho/alchemist-go/test/helpers"
)

func sampleCatalog() *ports.Catalog {
	return &ports.Catalog{
		Name:       "starter",
		Substances: []string{"stardust", "moonwater"},
		Stock:      map[string]float64{"stardust": 10, "moonwater": 5},
		Recipes: map[string][]alchemy.Reagent{
			"elixir": {{Coefficient: 2, Name: "stardust"}, {Coefficient: 1, Name: "moonwater"}},
			"potion": {{Coefficient: 1, Name: "elixir"}},
		},
		RecipeOrder: []string{"elixir", "potion"},
	}
}

func TestCatalogRepository_SaveAndFind(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormCatalogRepository(db)

	// Act - Save
	err := repo.SaveCatalog(context.Background(), sampleCatalog())

	// Assert
	require.NoError(t, err)

	// Act - FindCatalog
	found, err := repo.FindCatalog(context.Background(), "starter")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "starter", found.Name)
	assert.Equal(t, []string{"stardust", "moonwater"}, found.Substances)
	assert.Equal(t, map[string]float64{"stardust": 10, "moonwater": 5}, found.Stock)
	assert.Equal(t, []string{"elixir", "potion"}, found.RecipeOrder)
	require.Len(t, found.Recipes["elixir"], 2)
	assert.Equal(t, alchemy.Reagent{Coefficient: 2, Name: "stardust"}, found.Recipes["elixir"][0])
	assert.Equal(t, alchemy.Reagent{Coefficient: 1, Name: "moonwater"}, found.Recipes["elixir"][1])
	require.Len(t, found.Recipes["potion"], 1)
	assert.Equal(t, alchemy.Reagent{Coefficient: 1, Name: "elixir"}, found.Recipes["potion"][0])
}

func TestCatalogRepository_SaveReplacesExisting(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormCatalogRepository(db)
	require.NoError(t, repo.SaveCatalog(context.Background(), sampleCatalog()))

	replacement := &ports.Catalog{
		Name:       "starter",
		Substances: []string{"lead"},
		Stock:      map[string]float64{"lead": 1},
		Recipes: map[string][]alchemy.Reagent{
			"gold": {{Coefficient: 8, Name: "lead"}},
		},
		RecipeOrder: []string{"gold"},
	}

	// Act
	err := repo.SaveCatalog(context.Background(), replacement)

	// Assert: old rows are gone, only the replacement remains
	require.NoError(t, err)
	found, err := repo.FindCatalog(context.Background(), "starter")
	require.NoError(t, err)
	assert.Equal(t, []string{"lead"}, found.Substances)
	assert.NotContains(t, found.Recipes, "elixir")
	require.Len(t, found.Recipes["gold"], 1)

	summaries, err := repo.ListCatalogs(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].Substances)
	assert.Equal(t, 1, summaries[0].Recipes)
}

func TestCatalogRepository_FindMissing(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormCatalogRepository(db)

	// Act
	_, err := repo.FindCatalog(context.Background(), "nonexistent")

	// Assert
	assert.Error(t, err)
}

func TestCatalogRepository_ListCatalogs(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormCatalogRepository(db)
	require.NoError(t, repo.SaveCatalog(context.Background(), sampleCatalog()))

	second := &ports.Catalog{
		Name:       "auric",
		Substances: []string{"lead"},
	}
	require.NoError(t, repo.SaveCatalog(context.Background(), second))

	// Act
	summaries, err := repo.ListCatalogs(context.Background())

	// Assert: ordered by name
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "auric", summaries[0].Name)
	assert.Equal(t, "starter", summaries[1].Name)
	assert.Equal(t, 2, summaries[1].Substances)
	assert.Equal(t, 2, summaries[1].Recipes)
}
