package services

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/alchemist-go/internal/domain/alchemy"
	"github.com/andrescamacho/alchemist-go/internal/domain/journal"
	"github.com/andrescamacho/alchemist-go/internal/domain/ports"
)

// LaboratoryService opens laboratory sessions from stored catalogs
type LaboratoryService struct {
	catalogs ports.CatalogRepository
	labOpts  []alchemy.LaboratoryOption
}

// NewLaboratoryService creates a laboratory service. The given options are
// applied to every laboratory the service constructs.
func NewLaboratoryService(catalogs ports.CatalogRepository, labOpts ...alchemy.LaboratoryOption) *LaboratoryService {
	return &LaboratoryService{catalogs: catalogs, labOpts: labOpts}
}

// Open loads a catalog and constructs a laboratory session from it.
// Construction errors from the domain surface unchanged.
func (s *LaboratoryService) Open(ctx context.Context, catalogName string) (*Session, error) {
	catalog, err := s.catalogs.FindCatalog(ctx, catalogName)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %q: %w", catalogName, err)
	}

	lab, err := alchemy.NewLaboratory(catalog.Substances, catalog.Stock, catalog.Recipes, s.labOpts...)
	if err != nil {
		return nil, err
	}

	return &Session{
		CatalogName: catalog.Name,
		lab:         lab,
		journal:     journal.NewJournal(),
		now:         time.Now,
	}, nil
}

// Session is a live laboratory built from one catalog. Stock changes live and
// die with the session; nothing is written back to storage.
type Session struct {
	CatalogName string

	lab     *alchemy.Laboratory
	journal *journal.Journal
	now     func() time.Time
}

// Quantity returns the current stock of a substance
func (s *Session) Quantity(name string) (float64, error) {
	return s.lab.Quantity(name)
}

// Add increases stock and journals the addition
func (s *Session) Add(name string, amount float64) (float64, error) {
	total, err := s.lab.Add(name, amount)
	if err != nil {
		return 0, err
	}

	entry, jerr := journal.NewEntry(s.now(), journal.KindAdd, alchemy.NormalizeName(name), amount, amount,
		map[string]float64{alchemy.NormalizeName(name): amount})
	if jerr == nil {
		s.journal.Record(entry)
	}
	return total, nil
}

// Make requests production and journals the outcome, including requests that
// degraded to zero.
func (s *Session) Make(product string, desired float64) (float64, error) {
	before := s.lab.Snapshot()
	produced, err := s.lab.Make(product, desired)
	if err != nil {
		return 0, err
	}

	deltas := make(map[string]float64)
	for name, after := range s.lab.Snapshot() {
		if delta := after - before[name]; delta != 0 {
			deltas[name] = delta
		}
	}
	entry, jerr := journal.NewEntry(s.now(), journal.KindMake, alchemy.NormalizeName(product), desired, produced, deltas)
	if jerr == nil {
		s.journal.Record(entry)
	}
	return produced, nil
}

// Snapshot returns a copy of all current stock levels
func (s *Session) Snapshot() map[string]float64 {
	return s.lab.Snapshot()
}

// Journal returns the session's operation journal
func (s *Session) Journal() *journal.Journal {
	return s.journal
}

// Inspect builds the recipe dependency tree for a product. Reporting only -
// no stock moves. Returns nil when the name has no recipe.
func (s *Session) Inspect(product string) *RecipeNode {
	name := alchemy.NormalizeName(product)
	if !s.lab.HasRecipe(name) {
		return nil
	}
	return s.buildNode(name, 1, make(map[string]bool))
}

// RecipeNode is one node of a recipe dependency tree. Revisited nodes inside
// a cyclic group are marked and not expanded further, so the tree stays
// finite for cyclic recipes.
type RecipeNode struct {
	Name        string
	Coefficient float64
	Producible  bool
	Cyclic      bool
	Revisited   bool
	Children    []*RecipeNode
}

func (s *Session) buildNode(name string, coefficient float64, visiting map[string]bool) *RecipeNode {
	node := &RecipeNode{
		Name:        name,
		Coefficient: coefficient,
		Producible:  s.lab.HasRecipe(name),
		Cyclic:      s.lab.InCycle(name),
	}
	if !node.Producible {
		return node
	}
	if visiting[name] {
		node.Revisited = true
		return node
	}

	visiting[name] = true
	defer delete(visiting, name)

	reagents, _ := s.lab.RecipeOf(name)
	for _, reagent := range reagents {
		node.Children = append(node.Children, s.buildNode(reagent.Name, reagent.Coefficient, visiting))
	}
	return node
}
