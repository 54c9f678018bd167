// Package cart keeps the shopping cart arithmetic: lines keyed by strain,
// quantities in grams, prices derived from the catalog's per-3.5 g price.
package cart

import (
	"errors"
	"fmt"
	"math"
)

// UnitGrams is the quantity a catalog price refers to (an eighth).
const UnitGrams = 3.5

// ErrInvalidQuantity is returned by QuantityPolicy.Validate.
var ErrInvalidQuantity = errors.New("invalid quantity")

// Item is the catalog data a cart line needs.
type Item struct {
	StrainID uint
	Name     string
	Price    float64
}

// Line is one strain in the cart.
type Line struct {
	Item  Item
	Grams float64
}

// Price is the cost of the line: the per-gram price times the quantity.
func (l Line) Price() float64 {
	return l.Item.Price / UnitGrams * l.Grams
}

// Cart is an ordered set of lines, one per strain.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add puts grams of item into the cart, growing the existing line when the
// strain is already present. Non-positive quantities are ignored.
func (c *Cart) Add(item Item, grams float64) {
	if grams <= 0 || math.IsNaN(grams) {
		return
	}
	if i := c.index(item.StrainID); i >= 0 {
		c.lines[i].Grams += grams
		c.lines[i].Item = item
		return
	}
	c.lines = append(c.lines, Line{Item: item, Grams: grams})
}

// SetQuantity replaces the quantity of a line. Zero or less removes it.
// Strains not in the cart are left alone.
func (c *Cart) SetQuantity(strainID uint, grams float64) {
	i := c.index(strainID)
	if i < 0 {
		return
	}
	if grams <= 0 || math.IsNaN(grams) {
		c.Remove(strainID)
		return
	}
	c.lines[i].Grams = grams
}

// Remove drops the line for strainID.
func (c *Cart) Remove(strainID uint) {
	if i := c.index(strainID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Line looks up the line for strainID.
func (c *Cart) Line(strainID uint) (Line, bool) {
	if i := c.index(strainID); i >= 0 {
		return c.lines[i], true
	}
	return Line{}, false
}

// Len is the number of distinct strains in the cart.
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// TotalGrams sums the quantity of every line.
func (c *Cart) TotalGrams() float64 {
	total := 0.0
	for _, line := range c.lines {
		total += line.Grams
	}
	return total
}

// Total sums the line prices.
func (c *Cart) Total() float64 {
	total := 0.0
	for _, line := range c.lines {
		total += line.Price()
	}
	return total
}

func (c *Cart) index(strainID uint) int {
	for i, line := range c.lines {
		if line.Item.StrainID == strainID {
			return i
		}
	}
	return -1
}

// QuantityPolicy is the stepped range a storefront offers per line.
type QuantityPolicy struct {
	Min  float64
	Max  float64
	Step float64
}

// DefaultPolicy offers an eighth up to an ounce in eighth steps.
var DefaultPolicy = QuantityPolicy{Min: UnitGrams, Max: 28, Step: UnitGrams}

// Validate checks grams against the range and step.
func (p QuantityPolicy) Validate(grams float64) error {
	if math.IsNaN(grams) || grams < p.Min || grams > p.Max {
		return fmt.Errorf("%w: %.1fg outside %.1f-%.1fg", ErrInvalidQuantity, grams, p.Min, p.Max)
	}
	if p.Step > 0 {
		steps := grams / p.Step
		if math.Abs(steps-math.Round(steps)) > 1e-9 {
			return fmt.Errorf("%w: %.1fg is not a multiple of %.1fg", ErrInvalidQuantity, grams, p.Step)
		}
	}
	return nil
}
