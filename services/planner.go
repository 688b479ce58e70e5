package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"tripsmith/database"
)

// ─── Request ──────────────────────────────────────────────────────────────────

type TripRequest struct {
	ArrivalDate     string `json:"arrivalDate"`
	DepartureDate   string `json:"departureDate"`
	Adults          int    `json:"adults"`
	Children        int    `json:"children"`
	Nationality     string `json:"nationality"`
	BudgetTier      string `json:"budgetTier"`
	TravelStyle     string `json:"travelStyle"`
	SpecialOccasion string `json:"specialOccasion,omitempty"`
	HotelPreference int    `json:"hotelPreference,omitempty"`
	Modifications   string `json:"modifications,omitempty"`
}

func (r TripRequest) Travelers() int {
	return r.Adults + r.Children
}

// VisaStatus is a three-valued outcome: an unmatched nationality is
// "unknown" and needs manual follow-up, never "not required".
type VisaStatus string

const (
	VisaRequired    VisaStatus = "required"
	VisaNotRequired VisaStatus = "not_required"
	VisaUnknown     VisaStatus = "unknown"
)

// ─── Derived fields ───────────────────────────────────────────────────────────

// Derived holds the fields computed from a request and an inventory
// snapshot before any generation happens. They feed both the prompt and
// post-processing.
type Derived struct {
	Days        int
	Travelers   int
	Transport   string
	TargetStars int
	Hotels      []database.Hotel
	VisaStatus  VisaStatus
	VisaRule    *database.VisaRule
}

// TripDays is the inclusive day count between arrival and departure.
// A same-day trip is 1. A departure before arrival yields a zero or
// negative count and is passed through uncorrected; the HTTP boundary
// rejects that input before it reaches the composer.
func TripDays(arrival, departure time.Time) int {
	return int(math.Ceil(departure.Sub(arrival).Hours()/24)) + 1
}

// TransportTier picks the transport class from the traveler count, with
// the luxury budget tier overriding headcount entirely.
func TransportTier(travelers int, budgetTier string, rules TransportRules) string {
	if budgetTier == "luxury" {
		return "private luxury"
	}
	switch {
	case travelers >= rules.VanAt:
		return "van"
	case travelers >= rules.SUVAt:
		return "suv"
	default:
		return "sedan"
	}
}

// FilterHotelsByStars keeps hotels within one star of the target rating.
// A hotel row with no star rating counts as 4.
func FilterHotelsByStars(hotels []database.Hotel, target int) []database.Hotel {
	var out []database.Hotel
	for _, h := range hotels {
		stars := 4
		if h.StarRating.Valid {
			stars = int(h.StarRating.Int64)
		}
		if stars >= target-1 && stars <= target+1 {
			out = append(out, h)
		}
	}
	return out
}

// ResolveVisa matches the nationality against the visa rules by exact
// uppercased code.
func ResolveVisa(rules []database.VisaRule, nationality string) (VisaStatus, *database.VisaRule) {
	code := strings.ToUpper(strings.TrimSpace(nationality))
	for i := range rules {
		if strings.ToUpper(rules[i].Nationality) == code {
			if rules[i].Required {
				return VisaRequired, &rules[i]
			}
			return VisaNotRequired, &rules[i]
		}
	}
	return VisaUnknown, nil
}

// Derive computes the trip parameters used in the prompt and in
// post-processing. It does not validate date ordering.
func Derive(req TripRequest, inv *database.InventorySnapshot, cfg *PlannerConfig) (Derived, error) {
	arrival, err := time.Parse("2006-01-02", req.ArrivalDate)
	if err != nil {
		return Derived{}, fmt.Errorf("invalid arrival date %q", req.ArrivalDate)
	}
	departure, err := time.Parse("2006-01-02", req.DepartureDate)
	if err != nil {
		return Derived{}, fmt.Errorf("invalid departure date %q", req.DepartureDate)
	}

	target := cfg.BudgetStars[req.BudgetTier]
	if req.HotelPreference > 0 {
		target = req.HotelPreference
	}

	status, rule := ResolveVisa(inv.VisaRules, req.Nationality)

	return Derived{
		Days:        TripDays(arrival, departure),
		Travelers:   req.Travelers(),
		Transport:   TransportTier(req.Travelers(), req.BudgetTier, cfg.Transport),
		TargetStars: target,
		Hotels:      FilterHotelsByStars(inv.Hotels, target),
		VisaStatus:  status,
		VisaRule:    rule,
	}, nil
}

// ─── Composition ──────────────────────────────────────────────────────────────

type ComposeInput struct {
	Request   TripRequest
	Action    string // "generate" or "modify"
	Inventory *database.InventorySnapshot
	Config    *PlannerConfig
}

// ComposeTrip derives the trip parameters, builds the prompt, makes one
// generation call and parses the reply. The composer is stateless; it
// holds nothing across calls and is either terminal-with-plan or
// terminal-with-error.
func ComposeTrip(ctx context.Context, ai *AIClient, in ComposeInput) (*TripPlan, Derived, error) {
	derived, err := Derive(in.Request, in.Inventory, in.Config)
	if err != nil {
		return nil, Derived{}, err
	}

	prompt := BuildPrompt(in.Request, derived, in.Inventory, in.Config, in.Action)

	text, err := ai.Complete(ctx, prompt)
	if err != nil {
		return nil, derived, err
	}

	plan, err := ParseTripPlan(text)
	if err != nil {
		// Raw text is logged for diagnosis but never returned to the caller.
		log.Printf("❌ Unparseable trip plan response: %.2000s", text)
		return nil, derived, err
	}

	return plan, derived, nil
}
