package handlers

import (
	"strings"
	"testing"

	"tripsmith/services"
)

func validInput() services.TripRequest {
	return services.TripRequest{
		ArrivalDate:   "2025-07-01",
		DepartureDate: "2025-07-04",
		Adults:        2,
		Children:      0,
		Nationality:   "IN",
		BudgetTier:    "medium",
		TravelStyle:   "couple",
	}
}

func TestValidateInput(t *testing.T) {
	t.Run("valid input passes", func(t *testing.T) {
		if msg, ok := validateInput(validInput()); !ok {
			t.Errorf("expected valid input to pass, got %q", msg)
		}
	})

	t.Run("same day trip is allowed", func(t *testing.T) {
		req := validInput()
		req.DepartureDate = req.ArrivalDate
		if msg, ok := validateInput(req); !ok {
			t.Errorf("same-day trip must be allowed, got %q", msg)
		}
	})

	tests := []struct {
		name   string
		mutate func(*services.TripRequest)
		want   string
	}{
		{"departure before arrival", func(r *services.TripRequest) { r.DepartureDate = "2025-06-30" }, "Departure date"},
		{"bad arrival date", func(r *services.TripRequest) { r.ArrivalDate = "July 1st" }, "arrival date"},
		{"bad departure date", func(r *services.TripRequest) { r.DepartureDate = "04/07/2025" }, "departure date"},
		{"zero adults", func(r *services.TripRequest) { r.Adults = 0 }, "adult"},
		{"negative children", func(r *services.TripRequest) { r.Children = -1 }, "Children"},
		{"missing nationality", func(r *services.TripRequest) { r.Nationality = "" }, "Nationality"},
		{"unknown budget tier", func(r *services.TripRequest) { r.BudgetTier = "premium" }, "Budget tier"},
		{"unknown travel style", func(r *services.TripRequest) { r.TravelStyle = "solo" }, "Travel style"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validInput()
			tt.mutate(&req)
			msg, ok := validateInput(req)
			if ok {
				t.Fatalf("expected %s to be rejected", tt.name)
			}
			if !strings.Contains(msg, tt.want) {
				t.Errorf("message %q does not mention %q", msg, tt.want)
			}
		})
	}
}

func TestDecodeStoredPlan(t *testing.T) {
	t.Run("valid plan", func(t *testing.T) {
		plan, err := decodeStoredPlan(`{"hotel": {"id": "h", "name": "H", "nights": 2, "price_per_night": 300}, "days": [], "summary": {"grand_total": 600}}`)
		if err != nil {
			t.Fatalf("decodeStoredPlan returned error: %v", err)
		}
		if plan.Hotel == nil || plan.Hotel.Nights != 2 {
			t.Errorf("unexpected hotel: %+v", plan.Hotel)
		}
	})

	t.Run("corrupt row is an error, not a zero plan", func(t *testing.T) {
		if _, err := decodeStoredPlan(`{"hotel": truncated`); err == nil {
			t.Error("expected error for corrupt stored plan JSON")
		}
	})
}

func TestPlanVisaDocs(t *testing.T) {
	docs := []string{"Passport copy", "Photo"}

	t.Run("required visa surfaces documents", func(t *testing.T) {
		plan := &services.TripPlan{Visa: &services.PlanVisa{Required: true, Documents: docs}}
		if got := planVisaDocs(plan); len(got) != 2 {
			t.Errorf("expected 2 documents, got %v", got)
		}
	})

	t.Run("non-required visa yields no documents", func(t *testing.T) {
		plan := &services.TripPlan{Visa: &services.PlanVisa{Required: false, Documents: docs}}
		if got := planVisaDocs(plan); got != nil {
			t.Errorf("expected no documents for a non-required visa, got %v", got)
		}
	})

	t.Run("absent visa section yields no documents", func(t *testing.T) {
		if got := planVisaDocs(&services.TripPlan{}); got != nil {
			t.Errorf("expected no documents without a visa section, got %v", got)
		}
	})
}
