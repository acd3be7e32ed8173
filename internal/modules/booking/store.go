// README: Booking registries: in-memory map and PostgreSQL.
package booking

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"foodiespot/internal/types"
)

type MemoryStore struct {
	mu       sync.RWMutex
	bookings map[types.ID]Booking
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{bookings: make(map[types.ID]Booking)}
}

func (s *MemoryStore) Create(ctx context.Context, b *Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[b.ID]; ok {
		return ErrDuplicateID
	}
	s.bookings[b.ID] = *b
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id types.ID) (*Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (s *MemoryStore) Exists(ctx context.Context, id types.ID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.bookings[id]
	return ok, nil
}

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, b *Booking) error {
	tag, err := s.db.Exec(ctx, `
		INSERT INTO bookings (
			id, restaurant_name, booking_date, booking_time, party_size, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING`,
		string(b.ID),
		b.RestaurantName,
		b.Date,
		b.Time,
		b.PartySize,
		string(b.Status),
		b.CreatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDuplicateID
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id types.ID) (*Booking, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, restaurant_name, booking_date, booking_time, party_size, status, created_at
		FROM bookings
		WHERE id = $1`, string(id),
	)
	var b Booking
	err := row.Scan(&b.ID, &b.RestaurantName, &b.Date, &b.Time, &b.PartySize, &b.Status, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *PostgresStore) Exists(ctx context.Context, id types.ID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`, string(id)).Scan(&exists)
	return exists, err
}
