// README: Dialogue turn result and the collaborators the orchestrator depends on.
package dialogue

import (
	"context"

	"foodiespot/internal/modules/booking"
	"foodiespot/internal/modules/catalog"
	"foodiespot/internal/modules/extract"
	"foodiespot/internal/modules/intent"
	"foodiespot/internal/modules/session"
	"foodiespot/internal/types"
)

// Reply is what one turn returns to the transport.
type Reply struct {
	Response string        `json:"response"`
	Intent   intent.Intent `json:"intent"`
	Data     *ReplyData    `json:"data"`
}

type ReplyData struct {
	BookingID string `json:"booking_id"`
}

type Sessions interface {
	WithSession(ctx context.Context, id string, fn func(*session.Session) error) error
}

type Extractor interface {
	Extract(text string, mode extract.Mode) types.BookingSlots
}

type Engine interface {
	AttemptCommit(ctx context.Context, slots types.BookingSlots) (booking.CommitResult, error)
}

type Catalog interface {
	ListAll() []catalog.Restaurant
	Search(f catalog.Filter) []catalog.Restaurant
	Cuisines() []string
	Locations() []string
}
