// README: Catalog sources: the seeded restaurant list and an optional PostgreSQL loader.
package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed returns the built-in restaurant list.
func Seed() []Restaurant {
	return []Restaurant{
		{ID: 1, Name: "The Golden Spoon", Cuisine: "Italian", Location: "Downtown", PriceRange: "$$", Rating: 4.2, Capacity: 50,
			AvailableTimes: []string{"12:00", "13:00", "14:00", "18:00", "19:00", "20:00"},
			Features:       []string{"Outdoor seating", "Vegan options", "Wine bar"}},
		{ID: 2, Name: "Sunset Bistro", Cuisine: "French", Location: "Midtown", PriceRange: "$$$", Rating: 4.5, Capacity: 40,
			AvailableTimes: []string{"11:30", "12:30", "18:30", "19:30", "20:30"},
			Features:       []string{"Romantic ambiance", "Prix fixe menu", "Sommelier"}},
		{ID: 3, Name: "Spice Garden", Cuisine: "Indian", Location: "Uptown", PriceRange: "$", Rating: 4.1, Capacity: 60,
			AvailableTimes: []string{"12:00", "13:00", "17:30", "18:30", "19:30", "20:00"},
			Features:       []string{"Buffet available", "Halal options", "Spice levels"}},
		{ID: 4, Name: "Ocean View", Cuisine: "Seafood", Location: "Waterfront", PriceRange: "$$$$", Rating: 4.7, Capacity: 35,
			AvailableTimes: []string{"17:00", "18:00", "19:00", "20:00"},
			Features:       []string{"Ocean view", "Fresh catch", "Raw bar"}},
		{ID: 5, Name: "Taco Libre", Cuisine: "Mexican", Location: "Downtown", PriceRange: "$", Rating: 3.9, Capacity: 80,
			AvailableTimes: []string{"11:00", "12:00", "13:00", "17:00", "18:00", "19:00", "20:00", "21:00"},
			Features:       []string{"Happy hour", "Live music", "Margaritas"}},
		{ID: 6, Name: "Zen Garden", Cuisine: "Japanese", Location: "Business District", PriceRange: "$$$", Rating: 4.4, Capacity: 30,
			AvailableTimes: []string{"12:00", "13:00", "18:00", "19:00", "20:00"},
			Features:       []string{"Sushi bar", "Sake selection", "Private rooms"}},
		{ID: 7, Name: "Mediterranean Breeze", Cuisine: "Mediterranean", Location: "Old Town", PriceRange: "$$", Rating: 4.0, Capacity: 45,
			AvailableTimes: []string{"12:00", "13:00", "14:00", "18:00", "19:00", "20:00"},
			Features:       []string{"Patio dining", "Mezze plates", "Greek wines"}},
		{ID: 8, Name: "The Steakhouse", Cuisine: "American", Location: "Financial District", PriceRange: "$$$$", Rating: 4.6, Capacity: 55,
			AvailableTimes: []string{"17:30", "18:30", "19:30", "20:30"},
			Features:       []string{"Dry aged beef", "Cigar lounge", "Whiskey bar"}},
		{ID: 9, Name: "Noodle Express", Cuisine: "Chinese", Location: "Chinatown", PriceRange: "$", Rating: 3.8, Capacity: 25,
			AvailableTimes: []string{"11:00", "12:00", "13:00", "17:00", "18:00", "19:00", "20:00"},
			Features:       []string{"Hand pulled noodles", "Quick service", "Vegetarian options"}},
		{ID: 10, Name: "Farm Table", Cuisine: "American", Location: "Suburbs", PriceRange: "$$", Rating: 4.3, Capacity: 65,
			AvailableTimes: []string{"11:00", "12:00", "13:00", "17:00", "18:00", "19:00", "20:00"},
			Features:       []string{"Farm to table", "Seasonal menu", "Family friendly"}},
	}
}

// LoadFromPostgres reads the restaurants table in id order.
func LoadFromPostgres(ctx context.Context, db *pgxpool.Pool) ([]Restaurant, error) {
	rows, err := db.Query(ctx, `
		SELECT id, name, cuisine, location, price_range, rating, capacity, available_times, features
		FROM restaurants
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query restaurants: %w", err)
	}
	defer rows.Close()

	var out []Restaurant
	for rows.Next() {
		var r Restaurant
		if err := rows.Scan(
			&r.ID, &r.Name, &r.Cuisine, &r.Location, &r.PriceRange,
			&r.Rating, &r.Capacity, &r.AvailableTimes, &r.Features,
		); err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SeedPostgres inserts the built-in restaurants when the table is empty.
func SeedPostgres(ctx context.Context, db *pgxpool.Pool) error {
	var n int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM restaurants`).Scan(&n); err != nil {
		return fmt.Errorf("count restaurants: %w", err)
	}
	if n > 0 {
		return nil
	}
	for _, r := range Seed() {
		_, err := db.Exec(ctx, `
			INSERT INTO restaurants (id, name, cuisine, location, price_range, rating, capacity, available_times, features)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			r.ID, r.Name, r.Cuisine, r.Location, r.PriceRange, r.Rating, r.Capacity, r.AvailableTimes, r.Features,
		)
		if err != nil {
			return fmt.Errorf("insert restaurant %q: %w", r.Name, err)
		}
	}
	return nil
}
