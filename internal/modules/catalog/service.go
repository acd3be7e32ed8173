// README: Catalog service answers read-only lookups over an immutable restaurant list.
package catalog

import (
	"errors"
	"strings"
)

var ErrEmptyCatalog = errors.New("catalog has no restaurants")

// Catalog is shared by every session and never mutated after construction.
type Catalog struct {
	restaurants []Restaurant
	byName      map[string]int
}

func New(restaurants []Restaurant) (*Catalog, error) {
	if len(restaurants) == 0 {
		return nil, ErrEmptyCatalog
	}
	c := &Catalog{
		restaurants: make([]Restaurant, len(restaurants)),
		byName:      make(map[string]int, len(restaurants)),
	}
	copy(c.restaurants, restaurants)
	for i, r := range c.restaurants {
		key := strings.ToLower(r.Name)
		if _, dup := c.byName[key]; !dup {
			c.byName[key] = i
		}
	}
	return c, nil
}

// Default returns the catalog built from the seeded restaurant list.
func Default() *Catalog {
	c, _ := New(Seed())
	return c
}

// LookupByName resolves a restaurant by case-insensitive name.
func (c *Catalog) LookupByName(name string) (Restaurant, bool) {
	i, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Restaurant{}, false
	}
	return c.restaurants[i], true
}

// ListAll returns the restaurants in catalog order.
func (c *Catalog) ListAll() []Restaurant {
	out := make([]Restaurant, len(c.restaurants))
	copy(out, c.restaurants)
	return out
}

func (c *Catalog) Names() []string {
	out := make([]string, len(c.restaurants))
	for i, r := range c.restaurants {
		out[i] = r.Name
	}
	return out
}

func (c *Catalog) Search(f Filter) []Restaurant {
	var out []Restaurant
	for _, r := range c.restaurants {
		if f.matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// Cuisines returns distinct cuisines in first-seen order.
func (c *Catalog) Cuisines() []string {
	return distinct(c.restaurants, func(r Restaurant) string { return r.Cuisine })
}

// Locations returns distinct locations in first-seen order.
func (c *Catalog) Locations() []string {
	return distinct(c.restaurants, func(r Restaurant) string { return r.Location })
}

func distinct(rs []Restaurant, key func(Restaurant) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rs {
		k := key(r)
		if seen[strings.ToLower(k)] {
			continue
		}
		seen[strings.ToLower(k)] = true
		out = append(out, k)
	}
	return out
}
