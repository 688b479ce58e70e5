package services

import (
	"encoding/json"
	"fmt"
)

// PlannerConfig is the typed view of the settings table. It is loaded
// once per request; a missing or incomplete budget→star mapping fails
// fast instead of silently defaulting.
type PlannerConfig struct {
	BudgetStars         map[string]int
	MaxActivitiesPerDay int
	Transport           TransportRules
	Upsells             UpsellRules
}

type TransportRules struct {
	SUVAt int `json:"suv_at"`
	VanAt int `json:"van_at"`
}

type UpsellRules struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

var budgetTiers = []string{"low", "medium", "luxury"}

func LoadPlannerConfig(settings map[string]json.RawMessage) (*PlannerConfig, error) {
	raw, ok := settings["budget_star_map"]
	if !ok {
		return nil, fmt.Errorf("planner setting %q is not configured", "budget_star_map")
	}

	cfg := &PlannerConfig{
		MaxActivitiesPerDay: 2,
		Transport:           TransportRules{SUVAt: 3, VanAt: 6},
		Upsells:             UpsellRules{Min: 2, Max: 3},
	}

	if err := json.Unmarshal(raw, &cfg.BudgetStars); err != nil {
		return nil, fmt.Errorf("invalid budget_star_map setting: %w", err)
	}
	for _, tier := range budgetTiers {
		if _, ok := cfg.BudgetStars[tier]; !ok {
			return nil, fmt.Errorf("budget_star_map is missing tier %q", tier)
		}
	}

	if raw, ok := settings["max_activities_per_day"]; ok {
		if err := json.Unmarshal(raw, &cfg.MaxActivitiesPerDay); err != nil {
			return nil, fmt.Errorf("invalid max_activities_per_day setting: %w", err)
		}
	}
	if raw, ok := settings["transport_rules"]; ok {
		if err := json.Unmarshal(raw, &cfg.Transport); err != nil {
			return nil, fmt.Errorf("invalid transport_rules setting: %w", err)
		}
	}
	if raw, ok := settings["upsell_rules"]; ok {
		if err := json.Unmarshal(raw, &cfg.Upsells); err != nil {
			return nil, fmt.Errorf("invalid upsell_rules setting: %w", err)
		}
	}

	return cfg, nil
}
