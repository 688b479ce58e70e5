package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ─── Plan types ───────────────────────────────────────────────────────────────
//
// TripPlan is the semi-structured itinerary parsed from the generator's
// text response. It is untrusted input: ParseTripPlan is the only way in.

type TripPlan struct {
	Hotel     *PlanHotel     `json:"hotel"`
	Transport *PlanTransport `json:"transport"`
	Days      []PlanDay      `json:"days"`
	Visa      *PlanVisa      `json:"visa"`
	Upsells   []PlanUpsell   `json:"upsells"`
	Summary   *PlanSummary   `json:"summary"`
}

type PlanHotel struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Nights        int     `json:"nights"`
	PricePerNight float64 `json:"price_per_night"`
}

type PlanTransport struct {
	Type        string  `json:"type"`
	PricePerDay float64 `json:"price_per_day"`
	Days        int     `json:"days"`
}

type PlanDay struct {
	Day   int        `json:"day"`
	Title string     `json:"title"`
	Items []PlanItem `json:"items"`
}

// PlanItem type tags: transfer, activity, tour, meal, free_time.
type PlanItem struct {
	Type        string  `json:"type"`
	RefID       string  `json:"ref_id,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	StartTime   string  `json:"start_time,omitempty"`
	EndTime     string  `json:"end_time,omitempty"`
	Price       float64 `json:"price"`
}

type PlanVisa struct {
	Required  bool     `json:"required"`
	Type      string   `json:"type"`
	Price     float64  `json:"price"`
	Documents []string `json:"documents"`
}

type PlanUpsell struct {
	RefID  string  `json:"ref_id,omitempty"`
	Title  string  `json:"title"`
	Price  float64 `json:"price"`
	Reason string  `json:"reason,omitempty"`
}

type PlanSummary struct {
	HotelTotal      float64 `json:"hotel_total"`
	TransportTotal  float64 `json:"transport_total"`
	ActivitiesTotal float64 `json:"activities_total"`
	VisaTotal       float64 `json:"visa_total"`
	GrandTotal      float64 `json:"grand_total"`
}

// ─── Parsing ──────────────────────────────────────────────────────────────────

// fencedBlockRe matches a fenced code block, optionally tagged json.
var fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)```")

// ParseTripPlan parses the generator's text response into a TripPlan.
// Content inside a markdown code fence is preferred; without a fence the
// raw text is parsed directly. Any JSON failure, or a plan missing one of
// the required top-level sections, fails the whole operation.
func ParseTripPlan(text string) (*TripPlan, error) {
	candidate := strings.TrimSpace(text)
	if m := fencedBlockRe.FindStringSubmatch(candidate); m != nil {
		candidate = strings.TrimSpace(m[1])
	}

	var plan TripPlan
	if err := json.Unmarshal([]byte(candidate), &plan); err != nil {
		return nil, fmt.Errorf("failed to parse trip plan: %w", err)
	}

	if plan.Hotel == nil {
		return nil, fmt.Errorf("trip plan missing required section %q", "hotel")
	}
	if plan.Days == nil {
		return nil, fmt.Errorf("trip plan missing required section %q", "days")
	}
	if plan.Summary == nil {
		return nil, fmt.Errorf("trip plan missing required section %q", "summary")
	}

	return &plan, nil
}
