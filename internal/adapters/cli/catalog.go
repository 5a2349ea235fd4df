package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/andrescamacho/alchemist-go/internal/domain/alchemy"
	"github.com/andrescamacho/alchemist-go/internal/domain/ports"
)

// NewCatalogCommand creates the catalog command with subcommands
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage stored recipe catalogs",
		Long: `Manage stored recipe catalogs.

A catalog bundles the substance list, the recipe table and the starting
stock of a laboratory. Importing a catalog validates the definition by
constructing the laboratory (unknown reagents, duplicate substances and
unsolvable recipe cycles are rejected) before it is stored.

Examples:
  alchemist catalog import starter.yaml
  alchemist catalog import starter.yaml --name brewing
  alchemist catalog list`,
	}

	cmd.AddCommand(newCatalogImportCommand())
	cmd.AddCommand(newCatalogListCommand())

	return cmd
}

// catalogDocument is the on-disk shape of a catalog definition file
type catalogDocument struct {
	Name       string                       `mapstructure:"name"`
	Substances []string                     `mapstructure:"substances"`
	Stock      map[string]float64           `mapstructure:"stock"`
	Recipes    map[string][]reagentDocument `mapstructure:"recipes"`
}

type reagentDocument struct {
	Coefficient float64 `mapstructure:"coefficient"`
	Substance   string  `mapstructure:"substance"`
}

func newCatalogImportCommand() *cobra.Command {
	var nameOverride string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a catalog definition from a YAML file",
		Long: `Import a catalog definition from a YAML file.

The file lists substances, recipes and optional starting stock:

  name: starter
  substances: [stardust, moonwater]
  stock:
    stardust: 10
    moonwater: 5
  recipes:
    elixir:
      - {coefficient: 2, substance: stardust}
      - {coefficient: 1, substance: moonwater}

Importing a catalog with an existing name replaces it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readCatalogDocument(args[0])
			if err != nil {
				return err
			}
			if nameOverride != "" {
				doc.Name = nameOverride
			}
			if doc.Name == "" {
				return fmt.Errorf("catalog file has no name; set one with --name")
			}

			catalog := documentToCatalog(doc)

			catalogs, _, cleanup, err := openServices()
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := catalogs.Save(ctx, catalog); err != nil {
				return fmt.Errorf("failed to import catalog: %w", err)
			}

			fmt.Println("✓ Catalog imported successfully")
			fmt.Printf("  Name:        %s\n", catalog.Name)
			fmt.Printf("  Substances:  %d\n", len(catalog.Substances))
			fmt.Printf("  Recipes:     %d\n", len(catalog.Recipes))
			return nil
		},
	}

	cmd.Flags().StringVar(&nameOverride, "name", "", "Store the catalog under this name instead of the file's")

	return cmd
}

func newCatalogListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored catalogs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogs, _, cleanup, err := openServices()
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			summaries, err := catalogs.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list catalogs: %w", err)
			}
			if len(summaries) == 0 {
				fmt.Println("No catalogs stored")
				return nil
			}

			fmt.Printf("%-24s %-12s %s\n", "NAME", "SUBSTANCES", "RECIPES")
			for _, s := range summaries {
				fmt.Printf("%-24s %-12d %d\n", s.Name, s.Substances, s.Recipes)
			}
			return nil
		},
	}
}

// readCatalogDocument parses a catalog definition file via viper
func readCatalogDocument(path string) (*catalogDocument, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var doc catalogDocument
	if err := v.Unmarshal(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	return &doc, nil
}

// documentToCatalog converts the file shape into the repository shape.
// YAML maps carry no order, so recipes are ordered by product name.
func documentToCatalog(doc *catalogDocument) *ports.Catalog {
	recipes := make(map[string][]alchemy.Reagent, len(doc.Recipes))
	order := make([]string, 0, len(doc.Recipes))
	for product, reagents := range doc.Recipes {
		list := make([]alchemy.Reagent, 0, len(reagents))
		for _, r := range reagents {
			list = append(list, alchemy.Reagent{Coefficient: r.Coefficient, Name: r.Substance})
		}
		recipes[product] = list
		order = append(order, product)
	}
	sort.Strings(order)

	return &ports.Catalog{
		Name:        doc.Name,
		Substances:  doc.Substances,
		Stock:       doc.Stock,
		Recipes:     recipes,
		RecipeOrder: order,
	}
}
