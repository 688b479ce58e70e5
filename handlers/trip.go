package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
	"tripsmith/database"
	"tripsmith/services"

	"github.com/gin-gonic/gin"
)

func GetTripHandler(c *gin.Context) {
	id := c.Param("id")

	trip, err := database.GetTrip(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Trip not found"})
		return
	}

	items, err := database.GetTripItems(id)
	if err != nil {
		log.Printf("❌ Failed to load trip items for %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load trip items"})
		return
	}

	plan, err := decodeStoredPlan(trip.PlanJSON)
	if err != nil {
		log.Printf("❌ Corrupt stored plan for trip %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load stored trip plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"tripId":     trip.ID,
		"visitorId":  trip.VisitorID,
		"visaStatus": trip.VisaStatus,
		"total":      trip.Total,
		"createdAt":  trip.CreatedAt,
		"plan":       plan,
		"items":      items,
	})
}

// DownloadHandler serves the itinerary PDF, rendering and caching it on
// the trip row the first time it is requested.
func DownloadHandler(c *gin.Context) {
	id := c.Param("id")

	trip, err := database.GetTrip(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Trip not found"})
		return
	}

	pdfData := trip.PDFData
	if len(pdfData) == 0 {
		items, err := database.GetTripItems(id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load trip items"})
			return
		}

		var req services.TripRequest
		if err := json.Unmarshal([]byte(trip.RequestJSON), &req); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load stored trip request"})
			return
		}

		pdfData, err = services.GeneratePDFBytes(services.PDFData{
			TripID:      trip.ID,
			Request:     req,
			Items:       items,
			VisaStatus:  trip.VisaStatus,
			Total:       trip.Total,
			GeneratedAt: time.Now().UTC(),
		})
		if err != nil {
			log.Printf("❌ PDF generation failed for trip %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to generate PDF"})
			return
		}

		if err := database.UpdateTripPDF(id, pdfData); err != nil {
			// Serving still works; only the cache write failed.
			log.Printf("⚠️  Failed to cache PDF for trip %s: %v", id, err)
		}
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=tripsmith-itinerary.pdf")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdfData)
}

func HealthHandler(c *gin.Context) {
	db := database.DB
	dbStatus := "ok"
	if db == nil {
		dbStatus = "not initialized"
	} else if err := db.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "TripSmith API",
		"database": dbStatus,
	})
}
