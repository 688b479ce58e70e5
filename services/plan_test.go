package services

import (
	"strings"
	"testing"
)

const validPlanJSON = `{
  "hotel": {"id": "htl-taj", "name": "Taj Dubai", "nights": 3, "price_per_night": 500},
  "transport": {"type": "sedan", "price_per_day": 200, "days": 3},
  "days": [
    {"day": 1, "title": "Arrival", "items": [
      {"type": "transfer", "title": "Airport pickup", "start_time": "14:00", "end_time": "15:00", "price": 0}
    ]}
  ],
  "visa": {"required": true, "type": "30-day tourist visa", "price": 150, "documents": ["Passport copy"]},
  "upsells": [{"title": "Spa day", "price": 800, "reason": "romantic"}],
  "summary": {"hotel_total": 1500, "transport_total": 600, "activities_total": 0, "visa_total": 300, "grand_total": 2400}
}`

func TestParseTripPlan(t *testing.T) {
	t.Run("raw JSON", func(t *testing.T) {
		plan, err := ParseTripPlan(validPlanJSON)
		if err != nil {
			t.Fatalf("ParseTripPlan returned error: %v", err)
		}
		if plan.Hotel.Name != "Taj Dubai" || plan.Hotel.Nights != 3 {
			t.Errorf("unexpected hotel: %+v", plan.Hotel)
		}
	})

	t.Run("json tagged fence", func(t *testing.T) {
		text := "Here is your itinerary:\n```json\n" + validPlanJSON + "\n```\nEnjoy your trip!"
		plan, err := ParseTripPlan(text)
		if err != nil {
			t.Fatalf("ParseTripPlan returned error: %v", err)
		}
		if plan.Transport == nil || plan.Transport.Type != "sedan" {
			t.Errorf("unexpected transport: %+v", plan.Transport)
		}
	})

	t.Run("untagged fence", func(t *testing.T) {
		text := "```\n" + validPlanJSON + "\n```"
		if _, err := ParseTripPlan(text); err != nil {
			t.Fatalf("ParseTripPlan returned error: %v", err)
		}
	})

	t.Run("not json fails hard", func(t *testing.T) {
		_, err := ParseTripPlan("not json")
		if err == nil {
			t.Fatal("expected parse error for non-JSON text")
		}
		if !strings.Contains(err.Error(), "failed to parse trip plan") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("fenced garbage fails hard", func(t *testing.T) {
		if _, err := ParseTripPlan("```json\nsorry, I cannot do that\n```"); err == nil {
			t.Fatal("expected parse error for fenced non-JSON text")
		}
	})

	t.Run("missing hotel section rejected", func(t *testing.T) {
		_, err := ParseTripPlan(`{"days": [], "summary": {"grand_total": 0}}`)
		if err == nil || !strings.Contains(err.Error(), `"hotel"`) {
			t.Errorf("expected missing-hotel error, got %v", err)
		}
	})

	t.Run("missing days section rejected", func(t *testing.T) {
		_, err := ParseTripPlan(`{"hotel": {"id": "h", "name": "H", "nights": 1, "price_per_night": 100}, "summary": {"grand_total": 100}}`)
		if err == nil || !strings.Contains(err.Error(), `"days"`) {
			t.Errorf("expected missing-days error, got %v", err)
		}
	})

	t.Run("missing summary section rejected", func(t *testing.T) {
		_, err := ParseTripPlan(`{"hotel": {"id": "h", "name": "H", "nights": 1, "price_per_night": 100}, "days": []}`)
		if err == nil || !strings.Contains(err.Error(), `"summary"`) {
			t.Errorf("expected missing-summary error, got %v", err)
		}
	})

	t.Run("empty days array is valid", func(t *testing.T) {
		plan, err := ParseTripPlan(`{"hotel": {"id": "h", "name": "H", "nights": 1, "price_per_night": 100}, "days": [], "summary": {"grand_total": 100}}`)
		if err != nil {
			t.Fatalf("ParseTripPlan returned error: %v", err)
		}
		if len(plan.Days) != 0 {
			t.Errorf("expected no days, got %d", len(plan.Days))
		}
	})
}
