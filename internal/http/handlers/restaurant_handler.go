package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodiespot/internal/modules/catalog"
)

type Restaurants interface {
	Search(f catalog.Filter) []catalog.Restaurant
}

type RestaurantHandler struct {
	catalog Restaurants
}

func NewRestaurantHandler(cat Restaurants) *RestaurantHandler {
	return &RestaurantHandler{catalog: cat}
}

// List handles GET /api/restaurants?cuisine=&location=&price=.
func (h *RestaurantHandler) List(c *gin.Context) {
	found := h.catalog.Search(catalog.Filter{
		Cuisine:    c.Query("cuisine"),
		Location:   c.Query("location"),
		PriceRange: c.Query("price"),
	})
	if found == nil {
		found = []catalog.Restaurant{}
	}
	writeJSON(c, http.StatusOK, map[string]any{"restaurants": found, "count": len(found)})
}
