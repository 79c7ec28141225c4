// Package catalog holds the fixed taxonomy of categories and offerings a
// visitor can choose from.  Order matters: the 1-based position shown to
// the visitor is the position in these slices.
package catalog

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownOffering = errors.New("unknown offering")
	ErrIndexOutOfRange = errors.New("offering number out of range")
)

// Category is one named list of offerings.
type Category struct {
	Name      string
	Offerings []string
}

// Catalog is an immutable, ordered list of categories.
type Catalog struct {
	categories []Category
}

// New copies the given categories so later changes to the caller's slices
// cannot reorder or mutate the catalog.
func New(categories ...Category) *Catalog {
	c := &Catalog{categories: make([]Category, len(categories))}
	for i, cat := range categories {
		c.categories[i] = Category{Name: cat.Name, Offerings: slices.Clone(cat.Offerings)}
	}
	return c
}

// Default returns the Puerto Galera catalog.
func Default() *Catalog {
	return New(
		Category{Name: "Resort", Offerings: []string{
			"Mermaid Resort", "Blue Crystal Beach Resort", "Edgewater Dive & Spa",
			"Arkipelago Beach Resort", "Steps and Garden Resort",
		}},
		Category{Name: "Restaurant", Offerings: []string{
			"Atlantis Restaurant", "Aplayang Munti Resto", "Badladz",
			"Fisherman's Cove", "Jalyn's Resto",
		}},
		Category{Name: "Activities", Offerings: []string{
			"Snorkeling", "Scuba Diving", "Island Hopping", "Sunset Cruise", "Water Sports",
		}},
		Category{Name: "Places", Offerings: []string{
			"White Beach", "Sabang Beach", "Tamaraw Falls", "Mangrove Forest", "Coral Garden",
		}},
	)
}

// Categories returns the category names in catalog order.
func (c *Catalog) Categories() []string {
	names := make([]string, len(c.categories))
	for i, cat := range c.categories {
		names[i] = cat.Name
	}
	return names
}

// Offerings returns a copy of the offerings of category in catalog order.
func (c *Catalog) Offerings(category string) ([]string, error) {
	cat, ok := c.find(category)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return slices.Clone(cat.Offerings), nil
}

// Category resolves a 1-based category number.
func (c *Catalog) Category(index int) (string, error) {
	if index < 1 || index > len(c.categories) {
		return "", fmt.Errorf("%w: category %d", ErrIndexOutOfRange, index)
	}
	return c.categories[index-1].Name, nil
}

// Offering resolves a 1-based offering number within category.
func (c *Catalog) Offering(category string, index int) (string, error) {
	cat, ok := c.find(category)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if index < 1 || index > len(cat.Offerings) {
		return "", fmt.Errorf("%w: %d not in 1..%d", ErrIndexOutOfRange, index, len(cat.Offerings))
	}
	return cat.Offerings[index-1], nil
}

// IndexOf returns the 1-based position of offering within category.
func (c *Catalog) IndexOf(category, offering string) (int, error) {
	cat, ok := c.find(category)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	i := slices.Index(cat.Offerings, offering)
	if i < 0 {
		return 0, fmt.Errorf("%w: %q in %q", ErrUnknownOffering, offering, category)
	}
	return i + 1, nil
}

// Contains reports whether (category, offering) is in the catalog.
func (c *Catalog) Contains(category, offering string) bool {
	_, err := c.IndexOf(category, offering)
	return err == nil
}

func (c *Catalog) find(name string) (Category, bool) {
	for _, cat := range c.categories {
		if cat.Name == name {
			return cat, true
		}
	}
	return Category{}, false
}
