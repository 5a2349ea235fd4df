package alchemy

import "math"

// Inventory tracks the current stock of every known substance.
// Quantities are finite, non-negative reals; the zero state of a freshly
// declared product is 0. The Laboratory owns its Inventory exclusively -
// all reads and writes go through Quantity, Add and Make.
type Inventory struct {
	stock map[string]float64
}

// NewInventory creates an empty inventory
func NewInventory() *Inventory {
	return &Inventory{stock: make(map[string]float64)}
}

// Has reports whether a substance is tracked
func (inv *Inventory) Has(name string) bool {
	_, ok := inv.stock[name]
	return ok
}

// Declare registers a substance at quantity 0.
// Declaring an already-known name fails with ErrDuplicateName.
func (inv *Inventory) Declare(name string) error {
	if inv.Has(name) {
		return &ErrDuplicateName{Name: name}
	}
	inv.stock[name] = 0
	return nil
}

// Quantity returns the current stock of a substance
func (inv *Inventory) Quantity(name string) (float64, error) {
	qty, ok := inv.stock[name]
	if !ok {
		return 0, &ErrUnknownSubstance{Name: name}
	}
	return qty, nil
}

// Add increases the stock of a substance by amount and returns the new total.
// The amount must be a finite number >= 0.
func (inv *Inventory) Add(name string, amount float64) (float64, error) {
	if !inv.Has(name) {
		return 0, &ErrUnknownSubstance{Name: name}
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return 0, &ErrInvalidQuantity{Field: name, Value: amount}
	}
	inv.stock[name] += amount
	return inv.stock[name], nil
}

// Names returns every tracked substance name
func (inv *Inventory) Names() []string {
	names := make([]string, 0, len(inv.stock))
	for name := range inv.stock {
		names = append(names, name)
	}
	return names
}

// Snapshot returns a copy of the current stock levels
func (inv *Inventory) Snapshot() map[string]float64 {
	snapshot := make(map[string]float64, len(inv.stock))
	for name, qty := range inv.stock {
		snapshot[name] = qty
	}
	return snapshot
}

// peek returns the stock of a known substance without error plumbing.
// Callers must only use it for names already validated against the inventory.
func (inv *Inventory) peek(name string) float64 {
	return inv.stock[name]
}

// set overwrites the stock of a known substance. Production commit paths use
// it after computing the exact post-production level.
func (inv *Inventory) set(name string, qty float64) {
	inv.stock[name] = qty
}
