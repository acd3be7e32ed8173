package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodiespot/internal/modules/booking"
	"foodiespot/internal/types"
)

type Bookings interface {
	Get(ctx context.Context, id types.ID) (*booking.Booking, error)
}

type BookingHandler struct {
	bookings Bookings
}

func NewBookingHandler(b Bookings) *BookingHandler {
	return &BookingHandler{bookings: b}
}

// Get handles GET /api/bookings/:id.
func (h *BookingHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid booking id")
		return
	}
	b, err := h.bookings.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, b)
}
