package services

import (
	"fmt"
	"strings"

	"tripsmith/database"
)

// truncate shortens inventory descriptions so the prompt stays compact.
// It cuts on runes so a multi-byte character at the boundary cannot
// leave invalid UTF-8 in the prompt.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

// BuildPrompt assembles the single natural-language prompt sent to the
// generator: the filtered inventory, the trip parameters, a fixed set of
// itinerary-construction rules and a strict JSON output contract.
func BuildPrompt(req TripRequest, d Derived, inv *database.InventorySnapshot, cfg *PlannerConfig, action string) string {
	var sb strings.Builder

	sb.WriteString("[INST] You are a Dubai travel planner. Build a complete day-by-day itinerary using ONLY the inventory listed below.\n\n")

	instruction := fmt.Sprintf(
		"Plan a %d-day Dubai trip for %d adult(s) and %d child(ren), arriving %s and departing %s. Budget tier: %s (~%d-star hotels). Travel style: %s.",
		d.Days, req.Adults, req.Children, req.ArrivalDate, req.DepartureDate, req.BudgetTier, d.TargetStars, req.TravelStyle)
	if action == "modify" && req.Modifications != "" {
		instruction = req.Modifications
	}
	sb.WriteString("Request: " + instruction + "\n")
	if req.SpecialOccasion != "" {
		sb.WriteString("Special occasion: " + req.SpecialOccasion + "\n")
	}
	sb.WriteString(fmt.Sprintf("Transport class: %s. Visa status for %s: %s.\n\n",
		d.Transport, strings.ToUpper(req.Nationality), d.VisaStatus))

	sb.WriteString("## Hotels (per night, AED)\n")
	for _, h := range d.Hotels {
		stars := int64(4)
		if h.StarRating.Valid {
			stars = h.StarRating.Int64
		}
		sb.WriteString(fmt.Sprintf("- %s | %s | %d★ | %.0f AED | %s | %s\n",
			h.ID, h.Name, stars, h.PricePerNight, h.Location, truncate(h.Description, 100)))
	}

	sb.WriteString("\n## Cars (per day, AED)\n")
	for _, c := range inv.Cars {
		sb.WriteString(fmt.Sprintf("- %s | %s | %s | %.0f AED | seats %d\n",
			c.ID, c.Name, c.CarType, c.PricePerDay, c.Capacity))
	}

	sb.WriteString("\n## Tours (per person, AED)\n")
	for _, t := range inv.Tours {
		sb.WriteString(fmt.Sprintf("- %s | %s | %.0f AED | %dh | %s\n",
			t.ID, t.Title, t.Price, t.DurationHours, truncate(t.Description, 100)))
	}

	sb.WriteString("\n## Activities (per person, AED)\n")
	for _, a := range inv.Activities {
		sb.WriteString(fmt.Sprintf("- %s | %s | %.0f AED | %s | %s\n",
			a.ID, a.Title, a.Price, a.Category, truncate(a.Description, 100)))
	}

	if d.VisaStatus == VisaRequired && d.VisaRule != nil {
		sb.WriteString(fmt.Sprintf("\n## Visa\nRequired: %s, %.0f AED per traveler. Documents: %s\n",
			d.VisaRule.VisaType, d.VisaRule.Price, strings.Join(d.VisaRule.Documents, ", ")))
	}

	sb.WriteString(fmt.Sprintf(`
## Rules
- Day 1 is arrival day: airport transfer, hotel check-in, at most one light evening activity.
- The last day is packing and the departure airport transfer only.
- Middle days have at most %d major activities with time gaps between them.
- Airport transfers appear on both the arrival and the departure day.
- Exactly one hotel for the whole stay, chosen from the hotel list.
- Transport must match the traveler count; use the "%s" class.
- Suggest %d-%d optional upsells matched to the "%s" travel style.
- All prices in AED. Activity times between 09:00 and 21:00.
- family trips favor family activities, couples favor romantic experiences, adventure favors thrill activities, luxury favors premium experiences.

Respond with a single JSON object inside a `+"```json"+` code block, shaped exactly like:
`, cfg.MaxActivitiesPerDay, d.Transport, cfg.Upsells.Min, cfg.Upsells.Max, req.TravelStyle))

	sb.WriteString("```json" + `
{
  "hotel": {"id": "", "name": "", "nights": 0, "price_per_night": 0},
  "transport": {"type": "", "price_per_day": 0, "days": 0},
  "days": [{"day": 1, "title": "", "items": [{"type": "transfer|activity|tour|meal|free_time", "ref_id": "", "title": "", "description": "", "start_time": "09:00", "end_time": "11:00", "price": 0}]}],
  "visa": {"required": false, "type": "", "price": 0, "documents": []},
  "upsells": [{"ref_id": "", "title": "", "price": 0, "reason": ""}],
  "summary": {"hotel_total": 0, "transport_total": 0, "activities_total": 0, "visa_total": 0, "grand_total": 0}
}
` + "```" + `
[/INST]`)

	return sb.String()
}
