package services

import (
	"bytes"
	"encoding/json"
	"testing"
)

// scenarioPlan mirrors a typical generation: one hotel for three nights,
// a sedan for three days, two days of one activity each and a required
// visa for two travelers.
func scenarioPlan() *TripPlan {
	return &TripPlan{
		Hotel:     &PlanHotel{ID: "htl-hilton", Name: "Hilton Dubai Creek", Nights: 3, PricePerNight: 500},
		Transport: &PlanTransport{Type: "sedan", PricePerDay: 200, Days: 3},
		Days: []PlanDay{
			{Day: 1, Title: "Arrival", Items: []PlanItem{
				{Type: "activity", RefID: "act-mall", Title: "Dubai Mall & Fountain Show", StartTime: "18:00", EndTime: "21:00"},
			}},
			{Day: 2, Title: "City", Items: []PlanItem{
				{Type: "tour", RefID: "tour-city", Title: "Old & New Dubai City Tour", StartTime: "09:00", EndTime: "14:00", Price: 180},
			}},
		},
		Visa:    &PlanVisa{Required: true, Type: "30-day tourist visa", Price: 150, Documents: []string{"Passport copy", "Photo"}},
		Summary: &PlanSummary{HotelTotal: 1500, TransportTotal: 600, ActivitiesTotal: 180, VisaTotal: 300, GrandTotal: 2580},
	}
}

func scenarioRequest() TripRequest {
	return TripRequest{
		ArrivalDate:   "2025-07-01",
		DepartureDate: "2025-07-04",
		Adults:        2,
		Children:      0,
		Nationality:   "IN",
		BudgetTier:    "medium",
		TravelStyle:   "couple",
	}
}

func TestFlattenScenario(t *testing.T) {
	items := FlattenToItems(scenarioPlan(), scenarioRequest())

	if len(items) != 5 {
		t.Fatalf("expected 5 items (hotel, transport, 2 daily, visa), got %d", len(items))
	}

	hotel := items[0]
	if hotel.ItemType != "hotel" || hotel.Day != 1 || hotel.Price != 1500 || hotel.Quantity != 3 || hotel.SortOrder != 0 {
		t.Errorf("unexpected hotel item: %+v", hotel)
	}
	if !hotel.Included || hotel.Optional {
		t.Errorf("hotel must be included and not optional: %+v", hotel)
	}

	transport := items[1]
	if transport.ItemType != "car" || transport.Price != 600 || transport.Quantity != 3 || transport.SortOrder != 1 {
		t.Errorf("unexpected transport item: %+v", transport)
	}

	var visa *countedItem
	activities := 0
	for i := range items {
		switch items[i].ItemType {
		case "visa":
			visa = &countedItem{items[i].Day, items[i].Price, items[i].Quantity, items[i].Description}
		case "activity", "tour":
			activities++
		}
	}
	if activities != 2 {
		t.Errorf("expected 2 daily items, got %d", activities)
	}
	if visa == nil {
		t.Fatal("expected a visa item")
	}
	if visa.day != 0 || visa.price != 150 || visa.quantity != 2 {
		t.Errorf("unexpected visa item: %+v", visa)
	}
	if visa.description != "Passport copy, Photo" {
		t.Errorf("visa description should join documents, got %q", visa.description)
	}
}

type countedItem struct {
	day         int
	price       float64
	quantity    int
	description string
}

func TestFlattenIsPure(t *testing.T) {
	plan := scenarioPlan()
	req := scenarioRequest()

	first, err := json.Marshal(FlattenToItems(plan, req))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	second, err := json.Marshal(FlattenToItems(plan, req))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("flattening the same plan twice must yield byte-identical output")
	}
}

func TestFlattenItemCountFormula(t *testing.T) {
	plan := scenarioPlan()
	plan.Upsells = []PlanUpsell{
		{RefID: "act-spa", Title: "Couples spa", Price: 800, Reason: "romantic"},
		{RefID: "act-helicopter", Title: "Helicopter tour", Price: 750, Reason: "premium"},
	}

	dayItems := 0
	for _, d := range plan.Days {
		dayItems += len(d.Items)
	}
	want := 1 + 1 + dayItems + 1 + len(plan.Upsells)

	items := FlattenToItems(plan, scenarioRequest())
	if len(items) != want {
		t.Errorf("expected %d items, got %d", want, len(items))
	}
}

func TestFlattenSortOrderBands(t *testing.T) {
	plan := scenarioPlan()
	plan.Upsells = []PlanUpsell{{Title: "Spa day", Price: 800}}
	items := FlattenToItems(plan, scenarioRequest())

	for _, it := range items {
		switch it.ItemType {
		case "hotel":
			if it.SortOrder != 0 {
				t.Errorf("hotel sort order = %d, want 0", it.SortOrder)
			}
		case "car":
			if it.SortOrder != 1 {
				t.Errorf("transport sort order = %d, want 1", it.SortOrder)
			}
		case "upsell":
			if it.SortOrder != 100 {
				t.Errorf("upsell sort order = %d, want 100", it.SortOrder)
			}
			if !it.Optional || it.Included {
				t.Errorf("upsell must be optional and not included: %+v", it)
			}
		case "activity", "tour", "transfer":
			if it.SortOrder < 10 || it.SortOrder >= 100 {
				t.Errorf("daily item sort order %d outside (10, 100) band", it.SortOrder)
			}
		}
	}
}

func TestFlattenOptionalSectionsOmitted(t *testing.T) {
	plan := &TripPlan{
		Hotel:   &PlanHotel{ID: "h", Name: "H", Nights: 2, PricePerNight: 300},
		Days:    []PlanDay{},
		Summary: &PlanSummary{GrandTotal: 600},
	}

	items := FlattenToItems(plan, scenarioRequest())
	if len(items) != 1 {
		t.Fatalf("expected only the hotel item, got %d", len(items))
	}
	if items[0].ItemType != "hotel" {
		t.Errorf("expected hotel item, got %q", items[0].ItemType)
	}
}

func TestFlattenVisaNotRequiredOmitted(t *testing.T) {
	plan := scenarioPlan()
	plan.Visa = &PlanVisa{Required: false}

	for _, it := range FlattenToItems(plan, scenarioRequest()) {
		if it.ItemType == "visa" {
			t.Error("a non-required visa must not produce an item")
		}
	}
}

func TestFlattenTypeMapping(t *testing.T) {
	plan := &TripPlan{
		Hotel: &PlanHotel{ID: "h", Name: "H", Nights: 1, PricePerNight: 100},
		Days: []PlanDay{{Day: 1, Items: []PlanItem{
			{Type: "tour", Title: "Tour"},
			{Type: "transfer", Title: "Transfer"},
			{Type: "meal", Title: "Lunch"},
			{Type: "free_time", Title: "Beach"},
		}}},
		Summary: &PlanSummary{},
	}

	items := FlattenToItems(plan, scenarioRequest())
	wantTypes := map[string]string{"Tour": "tour", "Transfer": "transfer", "Lunch": "activity", "Beach": "activity"}
	for _, it := range items {
		if it.ItemType == "hotel" {
			continue
		}
		if want := wantTypes[it.Title]; it.ItemType != want {
			t.Errorf("item %q mapped to %q, want %q", it.Title, it.ItemType, want)
		}
		if it.Price != 0 {
			t.Errorf("absent price should default to 0, got %v", it.Price)
		}
	}
}

func TestItemsTotalSkipsUpsells(t *testing.T) {
	plan := scenarioPlan()
	plan.Upsells = []PlanUpsell{{Title: "Spa day", Price: 800}}

	items := FlattenToItems(plan, scenarioRequest())
	// 1500 hotel + 600 transport + 0 + 180 tour + 150×2 visa; upsell excluded.
	if got := ItemsTotal(items); got != 2580 {
		t.Errorf("ItemsTotal = %v, want 2580", got)
	}
}

func TestItemsTotalCountsVisaPerTraveler(t *testing.T) {
	req := scenarioRequest()
	req.Adults = 3
	req.Children = 1

	items := FlattenToItems(scenarioPlan(), req)
	// 1500 hotel + 600 transport + 0 + 180 tour + 150×4 visa.
	if got := ItemsTotal(items); got != 2880 {
		t.Errorf("ItemsTotal = %v, want 2880; visa fee must scale with traveler count", got)
	}
}
