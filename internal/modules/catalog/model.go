// README: Restaurant model owned by the catalog.
package catalog

import "strings"

type Restaurant struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Cuisine        string   `json:"cuisine"`
	Location       string   `json:"location"`
	PriceRange     string   `json:"price_range"`
	Rating         float64  `json:"rating"`
	Capacity       int      `json:"capacity"`
	AvailableTimes []string `json:"available_times"`
	Features       []string `json:"features"`
}

// Offers reports whether hhmm is one of the restaurant's bookable slots.
func (r Restaurant) Offers(hhmm string) bool {
	for _, t := range r.AvailableTimes {
		if t == hhmm {
			return true
		}
	}
	return false
}

// Filter narrows Search results; empty fields match everything.
type Filter struct {
	Cuisine    string
	Location   string
	PriceRange string
}

func (f Filter) Empty() bool {
	return f.Cuisine == "" && f.Location == "" && f.PriceRange == ""
}

func (f Filter) matches(r Restaurant) bool {
	if f.Cuisine != "" && !strings.EqualFold(f.Cuisine, r.Cuisine) {
		return false
	}
	if f.Location != "" && !strings.EqualFold(f.Location, r.Location) {
		return false
	}
	if f.PriceRange != "" && f.PriceRange != r.PriceRange {
		return false
	}
	return true
}
