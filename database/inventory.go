package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"
)

// ─── Models ──────────────────────────────────────────────────────────────────

type Hotel struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	PricePerNight float64       `json:"price_per_night"`
	StarRating    sql.NullInt64 `json:"star_rating"`
	Location      string        `json:"location"`
}

type Car struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	CarType     string  `json:"car_type"`
	PricePerDay float64 `json:"price_per_day"`
	Capacity    int     `json:"capacity"`
}

type Tour struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	DurationHours int     `json:"duration_hours"`
}

type Activity struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

type VisaRule struct {
	Nationality string   `json:"nationality"`
	Required    bool     `json:"required"`
	VisaType    string   `json:"visa_type"`
	Price       float64  `json:"price"`
	Documents   []string `json:"documents"`
}

// InventorySnapshot is the read-only set of rows a single plan request
// operates on. It is fetched fresh per request and never cached.
type InventorySnapshot struct {
	Hotels     []Hotel
	Cars       []Car
	Tours      []Tour
	Activities []Activity
	VisaRules  []VisaRule
	Settings   map[string]json.RawMessage
}

// ─── Reads ────────────────────────────────────────────────────────────────────

func ListHotels(ctx context.Context) ([]Hotel, error) {
	rows, err := DB.QueryContext(ctx, `
		SELECT id, name, COALESCE(description, ''), price_per_night, star_rating, COALESCE(location, '')
		FROM hotels ORDER BY price_per_night`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hotels []Hotel
	for rows.Next() {
		var h Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Description, &h.PricePerNight, &h.StarRating, &h.Location); err != nil {
			return nil, err
		}
		hotels = append(hotels, h)
	}
	return hotels, rows.Err()
}

func ListCars(ctx context.Context) ([]Car, error) {
	rows, err := DB.QueryContext(ctx, `
		SELECT id, name, car_type, price_per_day, capacity
		FROM cars ORDER BY price_per_day`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cars []Car
	for rows.Next() {
		var c Car
		if err := rows.Scan(&c.ID, &c.Name, &c.CarType, &c.PricePerDay, &c.Capacity); err != nil {
			return nil, err
		}
		cars = append(cars, c)
	}
	return cars, rows.Err()
}

func ListTours(ctx context.Context) ([]Tour, error) {
	rows, err := DB.QueryContext(ctx, `
		SELECT id, title, COALESCE(description, ''), price, duration_hours
		FROM tours ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tours []Tour
	for rows.Next() {
		var t Tour
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Price, &t.DurationHours); err != nil {
			return nil, err
		}
		tours = append(tours, t)
	}
	return tours, rows.Err()
}

func ListActivities(ctx context.Context) ([]Activity, error) {
	rows, err := DB.QueryContext(ctx, `
		SELECT id, title, COALESCE(description, ''), price, COALESCE(category, '')
		FROM activities ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.Price, &a.Category); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func ListVisaRules(ctx context.Context) ([]VisaRule, error) {
	rows, err := DB.QueryContext(ctx, `
		SELECT nationality, required, COALESCE(visa_type, ''), price, documents
		FROM visa_rules`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []VisaRule
	for rows.Next() {
		var r VisaRule
		if err := rows.Scan(&r.Nationality, &r.Required, &r.VisaType, &r.Price, pq.Array(&r.Documents)); err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

func ListSettings(ctx context.Context) (map[string]json.RawMessage, error) {
	rows, err := DB.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]json.RawMessage)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = json.RawMessage(value)
	}
	return settings, rows.Err()
}

// FetchInventory fans out the six independent read-only queries
// concurrently and fails the whole snapshot on the first error.
func FetchInventory(ctx context.Context) (*InventorySnapshot, error) {
	inv := &InventorySnapshot{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		inv.Hotels, err = ListHotels(gctx)
		return
	})
	g.Go(func() (err error) {
		inv.Cars, err = ListCars(gctx)
		return
	})
	g.Go(func() (err error) {
		inv.Tours, err = ListTours(gctx)
		return
	})
	g.Go(func() (err error) {
		inv.Activities, err = ListActivities(gctx)
		return
	})
	g.Go(func() (err error) {
		inv.VisaRules, err = ListVisaRules(gctx)
		return
	})
	g.Go(func() (err error) {
		inv.Settings, err = ListSettings(gctx)
		return
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return inv, nil
}
