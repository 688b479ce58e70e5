package services

import (
	"bytes"
	"testing"
	"time"
)

func TestGeneratePDFBytes(t *testing.T) {
	plan := scenarioPlan()
	plan.Upsells = []PlanUpsell{{Title: "Couples spa", Price: 800, Reason: "romantic"}}
	req := scenarioRequest()
	items := FlattenToItems(plan, req)

	pdfBytes, err := GeneratePDFBytes(PDFData{
		TripID:      "trip-1",
		Request:     req,
		Items:       items,
		VisaStatus:  "required",
		Total:       ItemsTotal(items),
		GeneratedAt: time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("GeneratePDFBytes returned error: %v", err)
	}

	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Error("output does not start with a PDF header")
	}
	if len(pdfBytes) < 1000 {
		t.Errorf("suspiciously small PDF: %d bytes", len(pdfBytes))
	}
}

func TestGeneratePDFBytesEmptyItems(t *testing.T) {
	pdfBytes, err := GeneratePDFBytes(PDFData{
		Request:     scenarioRequest(),
		VisaStatus:  "unknown",
		GeneratedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("GeneratePDFBytes returned error: %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Error("output does not start with a PDF header")
	}
}
