package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"tripsmith/database"
)

type PDFData struct {
	TripID      string
	Request     TripRequest
	Items       []database.TripItem
	VisaStatus  string
	Total       float64
	GeneratedAt time.Time
}

// GeneratePDFBytes renders the itinerary as a PDF and returns raw bytes
// (no filesystem — stored in PostgreSQL alongside the trip).
func GeneratePDFBytes(data PDFData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "TripSmith", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67) // gold
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Dubai Trip Itinerary", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	// ── Section Helper ───────────────────────────────────────
	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}

	// ── Trip Overview ─────────────────────────────────────────
	sectionHeader("Trip Overview")
	row("Arrival", fmtDateReadable(data.Request.ArrivalDate))
	row("Departure", fmtDateReadable(data.Request.DepartureDate))
	row("Travelers", fmt.Sprintf("%d adult(s), %d child(ren)", data.Request.Adults, data.Request.Children))
	row("Budget tier", data.Request.BudgetTier)
	row("Travel style", data.Request.TravelStyle)
	row("Visa status", data.VisaStatus)
	row("Generated", data.GeneratedAt.Format("02 Jan 2006, 15:04 UTC"))
	pdf.Ln(4)

	// ── Stay & Transport ──────────────────────────────────────
	sectionHeader("Stay & Transport")
	for _, it := range data.Items {
		if it.ItemType == "hotel" || it.ItemType == "car" {
			row(it.Title, fmt.Sprintf("%s — %.0f AED", it.Description, it.Price))
		}
	}
	if st, rule := visaLine(data.Items); st {
		row("Visa", rule)
	}
	pdf.Ln(4)

	// ── Day by Day ────────────────────────────────────────────
	sectionHeader("Day by Day")
	currentDay := -1
	for _, it := range data.Items {
		if it.Day < 1 || it.ItemType == "hotel" || it.ItemType == "car" {
			continue
		}
		if it.Day != currentDay {
			currentDay = it.Day
			pdf.SetFont("Helvetica", "B", 10)
			pdf.SetTextColor(13, 24, 37)
			pdf.CellFormat(170, 7, fmt.Sprintf("Day %d", currentDay), "", 1, "L", false, 0, "")
		}
		window := it.StartTime
		if it.EndTime != "" {
			window = it.StartTime + "-" + it.EndTime
		}
		line := it.Title
		if it.Price > 0 {
			line = fmt.Sprintf("%s (%.0f AED)", it.Title, it.Price)
		}
		row(window, line)
	}
	pdf.Ln(4)

	// ── Optional Upsells ──────────────────────────────────────
	upsells := false
	for _, it := range data.Items {
		if it.ItemType == "upsell" {
			if !upsells {
				sectionHeader("Optional Add-ons")
				upsells = true
			}
			row(it.Title, fmt.Sprintf("%.0f AED — %s", it.Price, it.Description))
		}
	}
	if upsells {
		pdf.Ln(4)
	}

	// ── Cost Summary ──────────────────────────────────────────
	sectionHeader("Cost Summary")
	pdf.SetFillColor(212, 168, 67)
	pdf.SetTextColor(13, 24, 37)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(55, 9, "TOTAL", "", 0, "L", true, 0, "")
	pdf.CellFormat(115, 9, fmt.Sprintf("%.0f AED", data.Total), "", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)

	// ── Footer ────────────────────────────────────────────────
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8,
		"Generated by TripSmith · Not a booking confirmation · Prices subject to change",
		"", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func visaLine(items []database.TripItem) (bool, string) {
	for _, it := range items {
		if it.ItemType == "visa" {
			return true, fmt.Sprintf("%s — %.0f AED × %d traveler(s)", it.Title, it.Price, it.Quantity)
		}
	}
	return false, ""
}

func fmtDateReadable(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02 Jan 2006 (Mon)")
}
