package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/alchemist-go/internal/application/alchemy/services"
)

// NewLabCommand creates the lab command with subcommands
func NewLabCommand() *cobra.Command {
	var catalogName string

	cmd := &cobra.Command{
		Use:   "lab",
		Short: "Run laboratory operations against a stored catalog",
		Long: `Run laboratory operations against a stored catalog.

Each invocation is a one-shot session: the laboratory is rebuilt from the
catalog definition, the operation runs, and the resulting stock is printed.
Stock changes are not written back to the catalog.

Examples:
  alchemist lab make elixir 3 --catalog starter
  alchemist lab add stardust 10 --catalog starter
  alchemist lab quantity elixir --catalog starter
  alchemist lab inspect elixir --catalog starter`,
	}

	cmd.PersistentFlags().StringVar(&catalogName, "catalog", "", "Name of the stored catalog (required)")
	_ = cmd.MarkPersistentFlagRequired("catalog")

	cmd.AddCommand(newLabMakeCommand(&catalogName))
	cmd.AddCommand(newLabAddCommand(&catalogName))
	cmd.AddCommand(newLabQuantityCommand(&catalogName))
	cmd.AddCommand(newLabInspectCommand(&catalogName))

	return cmd
}

func newLabMakeCommand(catalogName *string) *cobra.Command {
	return &cobra.Command{
		Use:   "make <product> <quantity>",
		Short: "Produce a quantity of a product",
		Long: `Produce a quantity of a product.

Reagents are drawn recursively from stock, producing intermediates on
demand. When stock cannot support the full request the largest achievable
amount is produced instead, which may be zero.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			desired, err := parseQuantity(args[1])
			if err != nil {
				return err
			}

			session, cleanup, err := openSession(*catalogName)
			if err != nil {
				return err
			}
			defer cleanup()

			produced, err := session.Make(args[0], desired)
			if err != nil {
				return fmt.Errorf("make failed: %w", err)
			}

			if produced < desired {
				fmt.Printf("✓ Produced %g of %g requested %s (stock-limited)\n", produced, desired, args[0])
			} else {
				fmt.Printf("✓ Produced %g %s\n", produced, args[0])
			}
			fmt.Println("Resulting stock:")
			printStock(session.Snapshot())
			return nil
		},
	}
}

func newLabAddCommand(catalogName *string) *cobra.Command {
	return &cobra.Command{
		Use:   "add <substance> <quantity>",
		Short: "Add stock of a declared substance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseQuantity(args[1])
			if err != nil {
				return err
			}

			session, cleanup, err := openSession(*catalogName)
			if err != nil {
				return err
			}
			defer cleanup()

			total, err := session.Add(args[0], amount)
			if err != nil {
				return fmt.Errorf("add failed: %w", err)
			}

			fmt.Printf("✓ Added %g %s (now %g)\n", amount, args[0], total)
			return nil
		},
	}
}

func newLabQuantityCommand(catalogName *string) *cobra.Command {
	return &cobra.Command{
		Use:   "quantity [substance]",
		Short: "Show stock of one substance, or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, cleanup, err := openSession(*catalogName)
			if err != nil {
				return err
			}
			defer cleanup()

			if len(args) == 1 {
				qty, err := session.Quantity(args[0])
				if err != nil {
					return err
				}
				fmt.Printf("%g\n", qty)
				return nil
			}

			printStock(session.Snapshot())
			return nil
		},
	}
}

func newLabInspectCommand(catalogName *string) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <product>",
		Short: "Show the dependency tree of a product's recipe",
		Long: `Show the dependency tree of a product's recipe.

Producible substances expand into their reagents; raw substances are
leaves. Members of recipe cycles are marked, and a branch that re-enters
a substance already on the path is cut with an ellipsis.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, cleanup, err := openSession(*catalogName)
			if err != nil {
				return err
			}
			defer cleanup()

			node := session.Inspect(args[0])
			if node == nil {
				return fmt.Errorf("unknown substance: %s", args[0])
			}

			formatter := NewTreeFormatter()
			fmt.Print(formatter.FormatTree(node))
			return nil
		},
	}
}

// openSession opens a one-shot laboratory session on the named catalog
func openSession(catalogName string) (*services.Session, func(), error) {
	_, labs, cleanup, err := openServices()
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	session, err := labs.Open(ctx, catalogName)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to open catalog %q: %w", catalogName, err)
	}
	return session, cleanup, nil
}

func parseQuantity(raw string) (float64, error) {
	qty, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q: %w", raw, err)
	}
	return qty, nil
}
