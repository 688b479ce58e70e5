package database

import (
	"log"

	"github.com/lib/pq"
)

// seedInventoryIfEmpty loads a small Dubai inventory and the default
// planner settings on a fresh database so local development works
// without an admin import. Existing rows are never touched.
func seedInventoryIfEmpty() {
	var count int
	if err := DB.QueryRow(`SELECT COUNT(*) FROM hotels`).Scan(&count); err != nil {
		log.Printf("⚠️  Seed check failed: %v", err)
		return
	}
	if count > 0 {
		seedSettings()
		return
	}

	type hotelSeed struct {
		id, name, desc string
		price          float64
		stars          int
		location       string
	}
	hotels := []hotelSeed{
		{"htl-rove", "Rove Downtown", "Casual modern hotel steps from Dubai Mall and Burj Khalifa", 320, 3, "Downtown Dubai"},
		{"htl-ibis", "ibis One Central", "Budget stay next to the World Trade Centre metro", 210, 3, "Trade Centre"},
		{"htl-hilton", "Hilton Dubai Creek", "Riverside classic with skyline views over the creek", 450, 4, "Deira"},
		{"htl-taj", "Taj Dubai", "Elegant rooms facing Burj Khalifa, renowned Indian dining", 690, 5, "Business Bay"},
		{"htl-atlantis", "Atlantis The Palm", "Iconic resort with waterpark and private beach", 1850, 5, "Palm Jumeirah"},
		{"htl-address", "Address Beach Resort", "Luxury twin-tower resort on JBR beach", 1400, 5, "Jumeirah Beach Residence"},
	}
	for _, h := range hotels {
		if _, err := DB.Exec(`
			INSERT INTO hotels (id, name, description, price_per_night, star_rating, location)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			h.id, h.name, h.desc, h.price, h.stars, h.location); err != nil {
			log.Printf("⚠️  Hotel seed failed: %v", err)
		}
	}

	cars := [][]interface{}{
		{"car-sedan", "Toyota Camry", "sedan", 180.0, 4},
		{"car-suv", "Nissan Patrol", "suv", 320.0, 6},
		{"car-van", "Toyota Hiace", "van", 420.0, 11},
		{"car-lux", "Mercedes S-Class with chauffeur", "private luxury", 950.0, 3},
	}
	for _, c := range cars {
		if _, err := DB.Exec(`
			INSERT INTO cars (id, name, car_type, price_per_day, capacity)
			VALUES ($1, $2, $3, $4, $5)`, c...); err != nil {
			log.Printf("⚠️  Car seed failed: %v", err)
		}
	}

	tours := [][]interface{}{
		{"tour-desert", "Desert Safari with BBQ Dinner", "Dune bashing, camel rides, live shows and dinner at a Bedouin camp", 250.0, 6},
		{"tour-city", "Old & New Dubai City Tour", "Al Fahidi district, abra crossing, spice souk and Burj Khalifa photo stop", 180.0, 5},
		{"tour-abudhabi", "Abu Dhabi Day Trip", "Sheikh Zayed Grand Mosque, Qasr Al Watan and the Corniche", 330.0, 9},
		{"tour-dhow", "Marina Dhow Dinner Cruise", "Evening cruise with buffet dinner along Dubai Marina", 220.0, 3},
	}
	for _, t := range tours {
		if _, err := DB.Exec(`
			INSERT INTO tours (id, title, description, price, duration_hours)
			VALUES ($1, $2, $3, $4, $5)`, t...); err != nil {
			log.Printf("⚠️  Tour seed failed: %v", err)
		}
	}

	activities := [][]interface{}{
		{"act-burj", "Burj Khalifa At The Top", "Levels 124/125 observation deck at sunset", 180.0, "landmark"},
		{"act-frame", "Dubai Frame", "Sky deck views over old and new Dubai", 55.0, "landmark"},
		{"act-aquaventure", "Aquaventure Waterpark", "Full-day slides and beach access at Atlantis", 320.0, "family"},
		{"act-skydive", "Skydive Dubai Tandem Jump", "Tandem skydive over Palm Jumeirah", 2200.0, "thrill"},
		{"act-spa", "Talise Ottoman Spa", "Couples hammam and spa ritual", 800.0, "romantic"},
		{"act-mall", "Dubai Mall & Fountain Show", "Shopping, aquarium walk-through and the evening fountains", 0.0, "free"},
		{"act-miracle", "Miracle Garden", "World's largest natural flower garden", 95.0, "family"},
		{"act-helicopter", "Helicopter Tour of the Palm", "17-minute premium aerial tour", 750.0, "premium"},
	}
	for _, a := range activities {
		if _, err := DB.Exec(`
			INSERT INTO activities (id, title, description, price, category)
			VALUES ($1, $2, $3, $4, $5)`, a...); err != nil {
			log.Printf("⚠️  Activity seed failed: %v", err)
		}
	}

	type visaSeed struct {
		nationality string
		required    bool
		visaType    string
		price       float64
		documents   []string
	}
	visas := []visaSeed{
		{"IN", true, "30-day tourist visa", 350, []string{"Passport copy (6 months validity)", "Passport photo", "Return ticket"}},
		{"PK", true, "30-day tourist visa", 380, []string{"Passport copy (6 months validity)", "Passport photo", "Return ticket", "Bank statement"}},
		{"NG", true, "30-day tourist visa", 420, []string{"Passport copy (6 months validity)", "Passport photo", "Return ticket", "Hotel booking"}},
		{"US", false, "visa on arrival", 0, nil},
		{"GB", false, "visa on arrival", 0, nil},
		{"DE", false, "visa on arrival", 0, nil},
		{"SA", false, "GCC resident entry", 0, nil},
	}
	for _, v := range visas {
		if _, err := DB.Exec(`
			INSERT INTO visa_rules (nationality, required, visa_type, price, documents)
			VALUES ($1, $2, $3, $4, $5)`,
			v.nationality, v.required, v.visaType, v.price, pq.Array(v.documents)); err != nil {
			log.Printf("⚠️  Visa rule seed failed: %v", err)
		}
	}

	seedSettings()
	log.Println("✅ Seeded sample Dubai inventory")
}

// seedSettings inserts the planner settings the composer requires if an
// admin has not configured them yet.
func seedSettings() {
	defaults := map[string]string{
		"budget_star_map":        `{"low": 3, "medium": 4, "luxury": 5}`,
		"max_activities_per_day": `2`,
		"transport_rules":        `{"suv_at": 3, "van_at": 6}`,
		"upsell_rules":           `{"min": 2, "max": 3}`,
	}
	for key, value := range defaults {
		if _, err := DB.Exec(`
			INSERT INTO settings (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO NOTHING`, key, value); err != nil {
			log.Printf("⚠️  Setting seed failed for %s: %v", key, err)
		}
	}
}
