package database

import (
	"time"

	"github.com/google/uuid"
)

// ─── Models ──────────────────────────────────────────────────────────────────

type Trip struct {
	ID          string    `json:"id"`
	VisitorID   string    `json:"visitor_id"`
	RequestJSON string    `json:"request_json"`
	PlanJSON    string    `json:"plan_json"`
	SummaryJSON string    `json:"summary_json"`
	VisaStatus  string    `json:"visa_status"`
	Total       float64   `json:"total"`
	PDFData     []byte    `json:"pdf_data,omitempty"` // stored in DB, no filesystem needed
	CreatedAt   time.Time `json:"created_at"`
}

type TripItem struct {
	ID          string  `json:"id"`
	TripID      string  `json:"trip_id"`
	Day         int     `json:"day"`
	ItemType    string  `json:"item_type"`
	RefID       string  `json:"ref_id,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	StartTime   string  `json:"start_time,omitempty"`
	EndTime     string  `json:"end_time,omitempty"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Optional    bool    `json:"optional"`
	Included    bool    `json:"included"`
	SortOrder   int     `json:"sort_order"`
	MetaJSON    string  `json:"meta_json,omitempty"`
}

// ─── Writes ───────────────────────────────────────────────────────────────────

const insertItemSQL = `
	INSERT INTO trip_items
		(id, trip_id, day, item_type, ref_id, title, description,
		 start_time, end_time, price, quantity, optional, included, sort_order, meta_json)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

// SaveTripWithItems writes the trip root and all of its line items in a
// single transaction, so a trip can never exist without its items.
func SaveTripWithItems(trip *Trip, items []TripItem) error {
	tx, err := DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO trips (id, visitor_id, request_json, plan_json, summary_json, visa_status, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		trip.ID, trip.VisitorID, trip.RequestJSON, trip.PlanJSON, trip.SummaryJSON, trip.VisaStatus, trip.Total)
	if err != nil {
		return err
	}

	for _, it := range items {
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.TripID = trip.ID
		if _, err := tx.Exec(insertItemSQL,
			it.ID, it.TripID, it.Day, it.ItemType, it.RefID, it.Title, it.Description,
			it.StartTime, it.EndTime, it.Price, it.Quantity, it.Optional, it.Included,
			it.SortOrder, it.MetaJSON); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ReplaceTripItems swaps the item set of an existing trip atomically,
// used by the recalculate action.
func ReplaceTripItems(tripID string, items []TripItem, total float64) error {
	tx, err := DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM trip_items WHERE trip_id = $1`, tripID); err != nil {
		return err
	}

	for _, it := range items {
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.TripID = tripID
		if _, err := tx.Exec(insertItemSQL,
			it.ID, it.TripID, it.Day, it.ItemType, it.RefID, it.Title, it.Description,
			it.StartTime, it.EndTime, it.Price, it.Quantity, it.Optional, it.Included,
			it.SortOrder, it.MetaJSON); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`UPDATE trips SET total = $1 WHERE id = $2`, total, tripID); err != nil {
		return err
	}

	return tx.Commit()
}

func UpdateTripPDF(id string, pdfData []byte) error {
	_, err := DB.Exec(`UPDATE trips SET pdf_data = $1 WHERE id = $2`, pdfData, id)
	return err
}

// ─── Reads ────────────────────────────────────────────────────────────────────

func GetTrip(id string) (*Trip, error) {
	t := &Trip{}
	err := DB.QueryRow(`
		SELECT id, visitor_id, request_json, plan_json, COALESCE(summary_json, ''),
		       COALESCE(visa_status, ''), total, pdf_data, created_at
		FROM trips WHERE id = $1`, id).
		Scan(&t.ID, &t.VisitorID, &t.RequestJSON, &t.PlanJSON, &t.SummaryJSON,
			&t.VisaStatus, &t.Total, &t.PDFData, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func GetTripItems(tripID string) ([]TripItem, error) {
	rows, err := DB.Query(`
		SELECT id, trip_id, day, item_type, COALESCE(ref_id, ''), title,
		       COALESCE(description, ''), COALESCE(start_time, ''), COALESCE(end_time, ''),
		       price, quantity, optional, included, sort_order, COALESCE(meta_json, '')
		FROM trip_items WHERE trip_id = $1
		ORDER BY day, sort_order`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []TripItem
	for rows.Next() {
		var it TripItem
		if err := rows.Scan(&it.ID, &it.TripID, &it.Day, &it.ItemType, &it.RefID, &it.Title,
			&it.Description, &it.StartTime, &it.EndTime, &it.Price, &it.Quantity,
			&it.Optional, &it.Included, &it.SortOrder, &it.MetaJSON); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
