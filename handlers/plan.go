package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
	"tripsmith/database"
	"tripsmith/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PlanRequest struct {
	Action    string               `json:"action" binding:"required,oneof=generate modify recalculate"`
	TripID    string               `json:"tripId"`
	VisitorID string               `json:"visitorId" binding:"required"`
	Input     services.TripRequest `json:"input"`
}

type PlanResponse struct {
	Success       bool               `json:"success"`
	TripID        string             `json:"tripId"`
	Plan          *services.TripPlan `json:"plan"`
	VisaStatus    string             `json:"visaStatus"`
	VisaRequired  bool               `json:"visaRequired"`
	VisaDocuments []string           `json:"visaDocuments"`
}

func planError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

var (
	validBudgetTiers = map[string]bool{"low": true, "medium": true, "luxury": true}
	validStyles      = map[string]bool{"family": true, "couple": true, "adventure": true, "relax": true, "luxury": true}
)

// validateInput checks the traveler input at the HTTP boundary. The
// composer itself passes a bad day count through uncorrected, so bad
// date ordering must be stopped here.
func validateInput(req services.TripRequest) (string, bool) {
	arrival, err := time.Parse("2006-01-02", req.ArrivalDate)
	if err != nil {
		return "Invalid arrival date format. Use YYYY-MM-DD", false
	}
	departure, err := time.Parse("2006-01-02", req.DepartureDate)
	if err != nil {
		return "Invalid departure date format. Use YYYY-MM-DD", false
	}
	if departure.Before(arrival) {
		return "Departure date must not be before arrival date", false
	}
	if req.Adults < 1 {
		return "At least one adult traveler is required", false
	}
	if req.Children < 0 {
		return "Children count must not be negative", false
	}
	if req.Nationality == "" {
		return "Nationality is required", false
	}
	if !validBudgetTiers[req.BudgetTier] {
		return "Budget tier must be one of: low, medium, luxury", false
	}
	if !validStyles[req.TravelStyle] {
		return "Travel style must be one of: family, couple, adventure, relax, luxury", false
	}
	return "", true
}

func PlanHandler(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		planError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	switch req.Action {
	case "generate":
		handleGenerate(c, req)
	case "modify":
		handleModify(c, req)
	case "recalculate":
		handleRecalculate(c, req)
	}
}

func handleGenerate(c *gin.Context, req PlanRequest) {
	if msg, ok := validateInput(req.Input); !ok {
		planError(c, http.StatusBadRequest, msg)
		return
	}
	composeAndSave(c, req.VisitorID, req.Input, "generate")
}

func handleModify(c *gin.Context, req PlanRequest) {
	if req.TripID == "" {
		planError(c, http.StatusBadRequest, "tripId is required for modify")
		return
	}
	if req.Input.Modifications == "" {
		planError(c, http.StatusBadRequest, "Modification instructions are required for modify")
		return
	}

	trip, err := database.GetTrip(req.TripID)
	if err != nil {
		planError(c, http.StatusNotFound, "Trip not found")
		return
	}

	var stored services.TripRequest
	if err := json.Unmarshal([]byte(trip.RequestJSON), &stored); err != nil {
		planError(c, http.StatusInternalServerError, "Failed to load stored trip request")
		return
	}
	stored.Modifications = req.Input.Modifications

	// A modification produces a new trip version; the original stays.
	composeAndSave(c, trip.VisitorID, stored, "modify")
}

func composeAndSave(c *gin.Context, visitorID string, input services.TripRequest, action string) {
	ai := services.GetAIClient()
	if !ai.Configured() {
		planError(c, http.StatusInternalServerError, "AI service is not configured")
		return
	}

	ctx := c.Request.Context()

	inv, err := database.FetchInventory(ctx)
	if err != nil {
		log.Printf("❌ Inventory fetch failed: %v", err)
		planError(c, http.StatusInternalServerError, "Failed to load inventory")
		return
	}

	cfg, err := services.LoadPlannerConfig(inv.Settings)
	if err != nil {
		log.Printf("❌ Planner configuration invalid: %v", err)
		planError(c, http.StatusInternalServerError, "Planner configuration is invalid: "+err.Error())
		return
	}

	plan, derived, err := services.ComposeTrip(ctx, ai, services.ComposeInput{
		Request:   input,
		Action:    action,
		Inventory: inv,
		Config:    cfg,
	})
	if err != nil {
		log.Printf("❌ Trip composition failed: %v", err)
		planError(c, http.StatusBadGateway, err.Error())
		return
	}

	items := services.FlattenToItems(plan, input)
	total := services.ItemsTotal(items)

	requestJSON, _ := json.Marshal(input)
	planJSON, _ := json.Marshal(plan)
	summaryJSON, _ := json.Marshal(plan.Summary)

	trip := &database.Trip{
		ID:          uuid.New().String(),
		VisitorID:   visitorID,
		RequestJSON: string(requestJSON),
		PlanJSON:    string(planJSON),
		SummaryJSON: string(summaryJSON),
		VisaStatus:  string(derived.VisaStatus),
		Total:       total,
	}

	if err := database.SaveTripWithItems(trip, items); err != nil {
		log.Printf("❌ Failed to save trip: %v", err)
		planError(c, http.StatusInternalServerError, "Failed to save trip")
		return
	}

	log.Printf("✅ Trip %s composed: %d items, %.0f AED total", trip.ID, len(items), total)

	var docs []string
	if derived.VisaStatus == services.VisaRequired && derived.VisaRule != nil {
		docs = derived.VisaRule.Documents
	}

	c.JSON(http.StatusOK, PlanResponse{
		Success:       true,
		TripID:        trip.ID,
		Plan:          plan,
		VisaStatus:    string(derived.VisaStatus),
		VisaRequired:  derived.VisaStatus == services.VisaRequired,
		VisaDocuments: docs,
	})
}

// handleRecalculate re-flattens the stored plan into fresh line items
// without another generation call.
func handleRecalculate(c *gin.Context, req PlanRequest) {
	if req.TripID == "" {
		planError(c, http.StatusBadRequest, "tripId is required for recalculate")
		return
	}

	trip, err := database.GetTrip(req.TripID)
	if err != nil {
		planError(c, http.StatusNotFound, "Trip not found")
		return
	}

	plan, err := decodeStoredPlan(trip.PlanJSON)
	if err != nil {
		planError(c, http.StatusInternalServerError, "Failed to load stored trip plan")
		return
	}
	var stored services.TripRequest
	if err := json.Unmarshal([]byte(trip.RequestJSON), &stored); err != nil {
		planError(c, http.StatusInternalServerError, "Failed to load stored trip request")
		return
	}

	items := services.FlattenToItems(plan, stored)
	total := services.ItemsTotal(items)

	if err := database.ReplaceTripItems(trip.ID, items, total); err != nil {
		log.Printf("❌ Failed to replace trip items: %v", err)
		planError(c, http.StatusInternalServerError, "Failed to recalculate trip")
		return
	}

	log.Printf("✅ Trip %s recalculated: %d items, %.0f AED total", trip.ID, len(items), total)

	c.JSON(http.StatusOK, PlanResponse{
		Success:       true,
		TripID:        trip.ID,
		Plan:          plan,
		VisaStatus:    trip.VisaStatus,
		VisaRequired:  trip.VisaStatus == string(services.VisaRequired),
		VisaDocuments: planVisaDocs(plan),
	})
}

// decodeStoredPlan rehydrates a trip's stored plan JSON; stored plans
// were validated at composition time, so a decode failure means the row
// is corrupt and must not be served as a zero-value plan.
func decodeStoredPlan(raw string) (*services.TripPlan, error) {
	var plan services.TripPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// planVisaDocs returns the document list only when the plan's visa is
// actually required, matching the generate path.
func planVisaDocs(plan *services.TripPlan) []string {
	if plan.Visa != nil && plan.Visa.Required {
		return plan.Visa.Documents
	}
	return nil
}
