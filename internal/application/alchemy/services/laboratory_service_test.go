package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/alchemist-go/internal/application/alchemy/services"
	"github.com/andrescamacho/alchemist-go/internal/domain/alchemy"
	"github.com/andrescamacho/alchemist-go/internal/domain/journal"
	"github.com/andrescamacho/alchemist-go/internal/domain/ports"
	"github.com/andrescamacho/alchemist-go/test/helpers"
)

func starterCatalog() *ports.Catalog {
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

func openStarterSession(t *testing.T) *services.Session {
	t.Helper()
	repo := helpers.NewMockCatalogRepository()
	require.NoError(t, repo.SaveCatalog(context.Background(), starterCatalog()))

	service := services.NewLaboratoryService(repo)
	session, err := service.Open(context.Background(), "starter")
	require.NoError(t, err)
	return session
}

func TestLaboratoryService_OpenMissingCatalog(t *testing.T) {
	// Arrange
	service := services.NewLaboratoryService(helpers.NewMockCatalogRepository())

	// Act
	_, err := service.Open(context.Background(), "nonexistent")

	// Assert
	assert.Error(t, err)
}

func TestSession_MakeJournalsOutcome(t *testing.T) {
	// Arrange
	session := openStarterSession(t)

	// Act
	produced, err := session.Make("elixir", 3)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3.0, produced)

	entries := session.Journal().ByKind(journal.KindMake)
	require.Len(t, entries, 1)
	assert.Equal(t, "elixir", entries[0].Substance())
	assert.Equal(t, 3.0, entries[0].Requested())
	assert.Equal(t, 3.0, entries[0].Applied())
	deltas := entries[0].Deltas()
	assert.Equal(t, -6.0, deltas["stardust"])
	assert.Equal(t, -3.0, deltas["moonwater"])
	assert.Equal(t, 3.0, deltas["elixir"])
}

func TestSession_DeclinedMakeIsStillJournaled(t *testing.T) {
	// Arrange
	session := openStarterSession(t)

	// Act: unknown product degrades to zero without error
	produced, err := session.Make("ambrosia", 2)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0.0, produced)

	entries := session.Journal().ByKind(journal.KindMake)
	require.Len(t, entries, 1)
	assert.Equal(t, 0.0, entries[0].Applied())
	assert.Empty(t, entries[0].Deltas())
}

func TestSession_AddJournalsAddition(t *testing.T) {
	// Arrange
	session := openStarterSession(t)

	// Act
	total, err := session.Add("Stardust", 2.5)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 12.5, total)

	entries := session.Journal().ByKind(journal.KindAdd)
	require.Len(t, entries, 1)
	assert.Equal(t, "stardust", entries[0].Substance())
	assert.Equal(t, 2.5, entries[0].Applied())
}

func TestSession_InvalidAddIsNotJournaled(t *testing.T) {
	// Arrange
	session := openStarterSession(t)

	// Act
	_, err := session.Add("stardust", -1)

	// Assert
	assert.Error(t, err)
	assert.Equal(t, 0, session.Journal().Len())
}

func TestSession_InspectBuildsRecipeTree(t *testing.T) {
	// Arrange
	session := openStarterSession(t)

	// Act
	root := session.Inspect("potion")

	// Assert
	require.NotNil(t, root)
	assert.Equal(t, "potion", root.Name)
	assert.True(t, root.Producible)
	require.Len(t, root.Children, 1)

	elixir := root.Children[0]
	assert.Equal(t, "elixir", elixir.Name)
	assert.Equal(t, 1.0, elixir.Coefficient)
	require.Len(t, elixir.Children, 2)
	assert.Equal(t, "stardust", elixir.Children[0].Name)
	assert.False(t, elixir.Children[0].Producible)
}

func TestSession_InspectRawSubstance(t *testing.T) {
	// Arrange
	session := openStarterSession(t)

	// Act / Assert
	assert.Nil(t, session.Inspect("stardust"))
}

func TestSession_InspectCyclicRecipeTerminates(t *testing.T) {
	// Arrange
	repo := helpers.NewMockCatalogRepository()
	require.NoError(t, repo.SaveCatalog(context.Background(), &ports.Catalog{
		Name:       "cyclic",
		Substances: []string{"raw"},
		Recipes: map[string][]alchemy.Reagent{
			"a": {{Coefficient: 1, Name: "raw"}, {Coefficient: 0.5, Name: "b"}},
			"b": {{Coefficient: 1, Name: "a"}},
		},
	}))
	service := services.NewLaboratoryService(repo)
	session, err := service.Open(context.Background(), "cyclic")
	require.NoError(t, err)

	// Act
	root := session.Inspect("a")

	// Assert: the cycle is marked and cut instead of expanding forever
	require.NotNil(t, root)
	assert.True(t, root.Cyclic)
	require.Len(t, root.Children, 2)
	b := root.Children[1]
	assert.Equal(t, "b", b.Name)
	require.Len(t, b.Children, 1)
	assert.True(t, b.Children[0].Revisited)
	assert.Empty(t, b.Children[0].Children)
}

func TestCatalogService_SaveRejectsBrokenDefinitions(t *testing.T) {
	// Arrange
	repo := helpers.NewMockCatalogRepository()
	service := services.NewCatalogService(repo)

	broken := &ports.Catalog{
		Name:       "broken",
		Substances: []string{"stardust"},
		Recipes: map[string][]alchemy.Reagent{
			"elixir": {{Coefficient: 1, Name: "ectoplasm"}},
		},
	}

	// Act
	err := service.Save(context.Background(), broken)

	// Assert: never reaches storage
	require.Error(t, err)
	_, findErr := repo.FindCatalog(context.Background(), "broken")
	assert.Error(t, findErr)
}

func TestCatalogService_SaveAndList(t *testing.T) {
	// Arrange
	repo := helpers.NewMockCatalogRepository()
	service := services.NewCatalogService(repo)

	// Act
	err := service.Save(context.Background(), starterCatalog())

	// Assert
	require.NoError(t, err)
	summaries, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "starter", summaries[0].Name)
}
