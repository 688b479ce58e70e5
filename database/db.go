package database

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
)

var DB *sql.DB

// ─── Init ─────────────────────────────────────────────────────────────────────

func InitDB(dsn string) {
	var err error
	DB, err = sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("❌ Failed to open database: %v", err)
	}

	// Connection pool settings suitable for a small hosted PostgreSQL
	DB.SetMaxOpenConns(10)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(5 * time.Minute)

	// Retry connection up to 10 times (hosted DB may take a moment to be ready)
	for i := 0; i < 10; i++ {
		if err = DB.Ping(); err == nil {
			break
		}
		log.Printf("⏳ Waiting for database... attempt %d/10: %v", i+1, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatalf("❌ Failed to connect to database after retries: %v", err)
	}

	migrate()
	seedInventoryIfEmpty()
	log.Println("✅ Database connected and migrated")
}

// ─── Migrations ───────────────────────────────────────────────────────────────

func migrate() {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS hotels (
			id              TEXT PRIMARY KEY,
			name            TEXT NOT NULL,
			description     TEXT,
			price_per_night NUMERIC(12,2) NOT NULL,
			star_rating     INTEGER,
			location        TEXT,
			created_at      TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS cars (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			car_type      TEXT NOT NULL,
			price_per_day NUMERIC(12,2) NOT NULL,
			capacity      INTEGER DEFAULT 4
		)`,

		`CREATE TABLE IF NOT EXISTS tours (
			id             TEXT PRIMARY KEY,
			title          TEXT NOT NULL,
			description    TEXT,
			price          NUMERIC(12,2) NOT NULL,
			duration_hours INTEGER DEFAULT 4
		)`,

		`CREATE TABLE IF NOT EXISTS activities (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT,
			price       NUMERIC(12,2) NOT NULL,
			category    TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS visa_rules (
			nationality TEXT PRIMARY KEY,
			required    BOOLEAN NOT NULL,
			visa_type   TEXT,
			price       NUMERIC(12,2) DEFAULT 0,
			documents   TEXT[]
		)`,

		`CREATE TABLE IF NOT EXISTS settings (
			key   TEXT PRIMARY KEY,
			value JSONB NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS trips (
			id           TEXT PRIMARY KEY,
			visitor_id   TEXT NOT NULL,
			request_json TEXT NOT NULL,
			plan_json    TEXT NOT NULL,
			summary_json TEXT,
			visa_status  TEXT,
			total        NUMERIC(12,2) DEFAULT 0,
			pdf_data     BYTEA,
			created_at   TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS trip_items (
			id          TEXT PRIMARY KEY,
			trip_id     TEXT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
			day         INTEGER NOT NULL,
			item_type   TEXT NOT NULL,
			ref_id      TEXT,
			title       TEXT NOT NULL,
			description TEXT,
			start_time  TEXT,
			end_time    TEXT,
			price       NUMERIC(12,2) DEFAULT 0,
			quantity    INTEGER DEFAULT 1,
			optional    BOOLEAN DEFAULT FALSE,
			included    BOOLEAN DEFAULT TRUE,
			sort_order  INTEGER DEFAULT 0,
			meta_json   TEXT
		)`,

		`CREATE INDEX IF NOT EXISTS idx_trip_items_trip_id
			ON trip_items(trip_id)`,

		`CREATE INDEX IF NOT EXISTS idx_trips_visitor_id
			ON trips(visitor_id)`,

		`CREATE INDEX IF NOT EXISTS idx_trips_created_at
			ON trips(created_at DESC)`,
	}

	for _, m := range migrations {
		if _, err := DB.Exec(m); err != nil {
			log.Fatalf("❌ Migration failed: %v\nSQL: %s", err, m)
		}
	}
}
