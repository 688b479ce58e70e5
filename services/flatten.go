package services

import (
	"fmt"
	"strings"

	"tripsmith/database"
)

// Sort-order bands: hotel and transport always sort first, daily items
// start at 10 + index within their day, upsells always sort last.
const (
	sortHotel     = 0
	sortTransport = 1
	sortVisa      = 2
	sortDailyBase = 10
	sortUpsell    = 100
)

// FlattenToItems decomposes a parsed plan into persistable line items.
// It is a pure function: no external calls, no identifiers, and it never
// fails on a well-formed plan — absent optional sections (transport,
// visa, upsells) simply omit the corresponding items. It does not
// reconcile the plan's summary subtotals against the items it produces.
func FlattenToItems(plan *TripPlan, req TripRequest) []database.TripItem {
	var items []database.TripItem

	if plan.Hotel != nil {
		items = append(items, database.TripItem{
			Day:         1,
			ItemType:    "hotel",
			RefID:       plan.Hotel.ID,
			Title:       plan.Hotel.Name,
			Description: fmt.Sprintf("%d nights × %.0f AED/night", plan.Hotel.Nights, plan.Hotel.PricePerNight),
			Price:       plan.Hotel.PricePerNight * float64(plan.Hotel.Nights),
			Quantity:    plan.Hotel.Nights,
			Included:    true,
			SortOrder:   sortHotel,
		})
	}

	if plan.Transport != nil {
		items = append(items, database.TripItem{
			Day:         1,
			ItemType:    "car",
			Title:       plan.Transport.Type,
			Description: fmt.Sprintf("%d days × %.0f AED/day", plan.Transport.Days, plan.Transport.PricePerDay),
			Price:       plan.Transport.PricePerDay * float64(plan.Transport.Days),
			Quantity:    plan.Transport.Days,
			Included:    true,
			SortOrder:   sortTransport,
		})
	}

	for _, day := range plan.Days {
		for i, it := range day.Items {
			itemType := "activity"
			switch it.Type {
			case "tour":
				itemType = "tour"
			case "transfer":
				itemType = "transfer"
			}
			items = append(items, database.TripItem{
				Day:         day.Day,
				ItemType:    itemType,
				RefID:       it.RefID,
				Title:       it.Title,
				Description: it.Description,
				StartTime:   it.StartTime,
				EndTime:     it.EndTime,
				Price:       it.Price,
				Quantity:    1,
				Included:    true,
				SortOrder:   sortDailyBase + i,
			})
		}
	}

	if plan.Visa != nil && plan.Visa.Required {
		items = append(items, database.TripItem{
			Day:         0,
			ItemType:    "visa",
			Title:       plan.Visa.Type,
			Description: strings.Join(plan.Visa.Documents, ", "),
			Price:       plan.Visa.Price,
			Quantity:    req.Travelers(),
			Included:    true,
			SortOrder:   sortVisa,
		})
	}

	for _, up := range plan.Upsells {
		items = append(items, database.TripItem{
			Day:         0,
			ItemType:    "upsell",
			RefID:       up.RefID,
			Title:       up.Title,
			Description: up.Reason,
			Price:       up.Price,
			Quantity:    1,
			Optional:    true,
			Included:    false,
			SortOrder:   sortUpsell,
		})
	}

	return items
}

// ItemsTotal sums the included line items; optional upsells do not count
// toward the trip total. Hotel and transport items carry an already
// extended price, but the visa fee is per traveler and must be
// multiplied by its quantity.
func ItemsTotal(items []database.TripItem) float64 {
	var total float64
	for _, it := range items {
		if !it.Included {
			continue
		}
		if it.ItemType == "visa" {
			total += it.Price * float64(it.Quantity)
			continue
		}
		total += it.Price
	}
	return total
}
