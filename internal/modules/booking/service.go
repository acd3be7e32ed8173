// README: Booking engine validates complete slots against the catalog and registers bookings.
package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"foodiespot/internal/modules/catalog"
	"foodiespot/internal/types"
)

var (
	ErrNotFound    = errors.New("booking not found")
	ErrDuplicateID = errors.New("booking id already exists")
	ErrIDExhausted = errors.New("could not allocate a unique booking id")
)

const (
	idLength        = 8
	maxIDAttempts   = 5
	suggestionLimit = 5
)

type Catalog interface {
	LookupByName(name string) (catalog.Restaurant, bool)
	ListAll() []catalog.Restaurant
}

// Registry stores confirmed bookings keyed by id.
type Registry interface {
	Create(ctx context.Context, b *Booking) error
	Get(ctx context.Context, id types.ID) (*Booking, error)
	Exists(ctx context.Context, id types.ID) (bool, error)
}

type Service struct {
	catalog  Catalog
	registry Registry
	logger   *zap.Logger
	now      func() time.Time
	newID    func() types.ID
}

func NewService(cat Catalog, registry Registry, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalog:  cat,
		registry: registry,
		logger:   logger,
		now:      time.Now,
		newID:    newBookingID,
	}
}

// AttemptCommit validates in order: completeness, restaurant, time slot, capacity.
// The first failure is returned as a user-facing rejection; error is reserved
// for registry failures.
func (s *Service) AttemptCommit(ctx context.Context, slots types.BookingSlots) (CommitResult, error) {
	if missing := slots.Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, f := range missing {
			names[i] = string(f)
		}
		return CommitResult{
			Outcome: OutcomeIncomplete,
			Message: "I still need: " + strings.Join(names, ", "),
		}, nil
	}

	r, ok := s.catalog.LookupByName(slots.Restaurant)
	if !ok {
		return CommitResult{
			Outcome: OutcomeUnknownRestaurant,
			Message: fmt.Sprintf("Restaurant '%s' not found. Available restaurants include: %s",
				slots.Restaurant, strings.Join(s.suggestions(), ", ")),
		}, nil
	}

	if !r.Offers(slots.Time) {
		return CommitResult{
			Outcome: OutcomeTimeUnavailable,
			Message: fmt.Sprintf("Sorry, %s doesn't have a table available at %s. Available times: %s",
				r.Name, slots.Time, strings.Join(r.AvailableTimes, ", ")),
		}, nil
	}

	if slots.PartySize > r.Capacity {
		return CommitResult{
			Outcome: OutcomeOverCapacity,
			Message: fmt.Sprintf("Sorry, %s can accommodate up to %d people. Your party size of %d is too large.",
				r.Name, r.Capacity, slots.PartySize),
		}, nil
	}

	b := &Booking{
		RestaurantName: r.Name,
		Date:           slots.Date,
		Time:           slots.Time,
		PartySize:      slots.PartySize,
		Status:         StatusConfirmed,
		CreatedAt:      s.now(),
	}
	if err := s.register(ctx, b); err != nil {
		return CommitResult{}, err
	}
	s.logger.Info("booking confirmed",
		zap.String("booking_id", b.ID.String()),
		zap.String("restaurant", b.RestaurantName),
		zap.Int("party_size", b.PartySize),
	)
	return CommitResult{
		Outcome: OutcomeConfirmed,
		Message: confirmationMessage(b, r),
		Booking: b,
	}, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Booking, error) {
	return s.registry.Get(ctx, id)
}

// register allocates an id that is unused in the registry and stores the booking.
func (s *Service) register(ctx context.Context, b *Booking) error {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := s.newID()
		taken, err := s.registry.Exists(ctx, id)
		if err != nil {
			return fmt.Errorf("check booking id: %w", err)
		}
		if taken {
			continue
		}
		b.ID = id
		err = s.registry.Create(ctx, b)
		if errors.Is(err, ErrDuplicateID) {
			continue
		}
		if err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		return nil
	}
	return ErrIDExhausted
}

func (s *Service) suggestions() []string {
	all := s.catalog.ListAll()
	if len(all) > suggestionLimit {
		all = all[:suggestionLimit]
	}
	names := make([]string, len(all))
	for i, r := range all {
		names[i] = r.Name
	}
	return names
}

func confirmationMessage(b *Booking, r catalog.Restaurant) string {
	return fmt.Sprintf(`🎉 Booking Confirmed! 🎉

Restaurant: %s
Date: %s
Time: %s
Party Size: %d people
Booking ID: %s

Location: %s
Your table is reserved! If you need to make changes, just let me know.`,
		r.Name, b.Date, b.Time, b.PartySize, b.ID, r.Location)
}

// newBookingID returns an 8-character upper-case hex token.
func newBookingID() types.ID {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return types.ID(strings.ToUpper(raw[:idLength]))
}
