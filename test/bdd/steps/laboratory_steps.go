package steps

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/alchemist-go/internal/domain/alchemy"
)

type laboratoryContext struct {
	substances []string
	stock      map[string]float64
	recipes    map[string][]alchemy.Reagent

	lab         *alchemy.Laboratory
	assemblyErr error

	produced float64
	opErr    error
}

func (lc *laboratoryContext) reset() {
	lc.substances = nil
	lc.stock = make(map[string]float64)
	lc.recipes = make(map[string][]alchemy.Reagent)
	lc.lab = nil
	lc.assemblyErr = nil
	lc.produced = 0
	lc.opErr = nil
}

// Setup steps

func (lc *laboratoryContext) theSubstances(list string) error {
	for _, name := range strings.Split(list, ",") {
		lc.substances = append(lc.substances, strings.TrimSpace(name))
	}
	return nil
}

func (lc *laboratoryContext) startingStock(table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header
		}
		qty, err := strconv.ParseFloat(row.Cells[1].Value, 64)
		if err != nil {
			return fmt.Errorf("invalid quantity %q: %w", row.Cells[1].Value, err)
		}
		lc.stock[row.Cells[0].Value] = qty
	}
	return nil
}

func (lc *laboratoryContext) aRecipeProducing(product string, table *godog.Table) error {
	reagents := make([]alchemy.Reagent, 0, len(table.Rows)-1)
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header
		}
		coeff, err := strconv.ParseFloat(row.Cells[0].Value, 64)
		if err != nil {
			return fmt.Errorf("invalid coefficient %q: %w", row.Cells[0].Value, err)
		}
		reagents = append(reagents, alchemy.Reagent{
			Coefficient: coeff,
			Name:        row.Cells[1].Value,
		})
	}
	lc.recipes[product] = reagents
	return nil
}

// Action steps

func (lc *laboratoryContext) theLaboratoryIsAssembled() error {
	lc.lab, lc.assemblyErr = alchemy.NewLaboratory(lc.substances, lc.stock, lc.recipes)
	return nil
}

func (lc *laboratoryContext) iMakeOf(quantity float64, product string) error {
	if lc.lab == nil {
		return fmt.Errorf("laboratory was not assembled")
	}
	lc.produced, lc.opErr = lc.lab.Make(product, quantity)
	return nil
}

func (lc *laboratoryContext) iAddOf(quantity float64, substance string) error {
	if lc.lab == nil {
		return fmt.Errorf("laboratory was not assembled")
	}
	_, lc.opErr = lc.lab.Add(substance, quantity)
	return nil
}

// Assertion steps

func (lc *laboratoryContext) assemblyShouldSucceed() error {
	if lc.assemblyErr != nil {
		return fmt.Errorf("expected assembly to succeed, got: %v", lc.assemblyErr)
	}
	return nil
}

func (lc *laboratoryContext) assemblyShouldFailWithAnUnsolvableRecipeSystem() error {
	var singular *alchemy.ErrSingularSystem
	if !errors.As(lc.assemblyErr, &singular) {
		return fmt.Errorf("expected a singular system error, got: %v", lc.assemblyErr)
	}
	return nil
}

func (lc *laboratoryContext) assemblyShouldFailWithAnUnknownSubstance() error {
	var unknown *alchemy.ErrUnknownSubstance
	if !errors.As(lc.assemblyErr, &unknown) {
		return fmt.Errorf("expected an unknown substance error, got: %v", lc.assemblyErr)
	}
	return nil
}

func (lc *laboratoryContext) shouldBeProduced(quantity float64) error {
	if lc.opErr != nil {
		return fmt.Errorf("expected production to succeed, got: %v", lc.opErr)
	}
	if math.Abs(lc.produced-quantity) > 1e-9 {
		return fmt.Errorf("expected %g produced, got %g", quantity, lc.produced)
	}
	return nil
}

func (lc *laboratoryContext) theStockOfShouldBe(substance string, quantity float64) error {
	qty, err := lc.lab.Quantity(substance)
	if err != nil {
		return err
	}
	if math.Abs(qty-quantity) > 1e-9 {
		return fmt.Errorf("expected stock of %s to be %g, got %g", substance, quantity, qty)
	}
	return nil
}

func (lc *laboratoryContext) theOperationShouldFailWithAnUnknownSubstance() error {
	var unknown *alchemy.ErrUnknownSubstance
	if !errors.As(lc.opErr, &unknown) {
		return fmt.Errorf("expected an unknown substance error, got: %v", lc.opErr)
	}
	return nil
}

func (lc *laboratoryContext) theOperationShouldFailWithAnInvalidQuantity() error {
	var invalid *alchemy.ErrInvalidQuantity
	if !errors.As(lc.opErr, &invalid) {
		return fmt.Errorf("expected an invalid quantity error, got: %v", lc.opErr)
	}
	return nil
}

// RegisterLaboratorySteps registers all laboratory step definitions
func RegisterLaboratorySteps(sc *godog.ScenarioContext) {
	lc := &laboratoryContext{}

	sc.Before(func(ctx context.Context, scn *godog.Scenario) (context.Context, error) {
		lc.reset()
		return ctx, nil
	})

	// Setup steps
	sc.Step(`^the substances "([^"]*)"$`, lc.theSubstances)
	sc.Step(`^starting stock:$`, lc.startingStock)
	sc.Step(`^a recipe producing "([^"]*)" from:$`, lc.aRecipeProducing)

	// Action steps
	sc.Step(`^the laboratory is assembled$`, lc.theLaboratoryIsAssembled)
	sc.Step(`^I make (\d+(?:\.\d+)?) of "([^"]*)"$`, lc.iMakeOf)
	sc.Step(`^I add (-?\d+(?:\.\d+)?) of "([^"]*)"$`, lc.iAddOf)

	// Assertion steps
	sc.Step(`^assembly should succeed$`, lc.assemblyShouldSucceed)
	sc.Step(`^assembly should fail with an unsolvable recipe system$`, lc.assemblyShouldFailWithAnUnsolvableRecipeSystem)
	sc.Step(`^assembly should fail with an unknown substance$`, lc.assemblyShouldFailWithAnUnknownSubstance)
	sc.Step(`^(\d+(?:\.\d+)?) should be produced$`, lc.shouldBeProduced)
	sc.Step(`^the stock of "([^"]*)" should be (\d+(?:\.\d+)?)$`, lc.theStockOfShouldBe)
	sc.Step(`^the operation should fail with an unknown substance$`, lc.theOperationShouldFailWithAnUnknownSubstance)
	sc.Step(`^the operation should fail with an invalid quantity$`, lc.theOperationShouldFailWithAnInvalidQuantity)
}
