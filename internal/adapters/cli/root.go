package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "alchemist",
		Short: "Alchemist CLI - Manage catalogs and run laboratory sessions",
		Long: `Alchemist CLI manages recipe catalogs and runs one-shot laboratory sessions.

Catalogs (substances, recipes, starting stock) are stored in the configured
database. Lab commands load a catalog, rebuild the laboratory from its
definition, and run the requested operation against it.

Examples:
  alchemist catalog import starter.yaml
  alchemist catalog list
  alchemist lab make elixir 3 --catalog starter
  alchemist lab add stardust 10 --catalog starter
  alchemist lab quantity elixir --catalog starter
  alchemist lab inspect elixir --catalog starter`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to a config file (defaults to ./config.yaml when present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	// Add command groups
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewLabCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
