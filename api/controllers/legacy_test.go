package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/cognitiondigest/digest-backend/internal/reports"
)

func TestLegacyGetReportUnknown(t *testing.T) {
	handler := LegacyGetReport(reports.NewLegacyStore(), nil)

	req := withReportID(httptest.NewRequest(http.MethodGet, "/api/report/abc", nil), "abc")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var resp legacyGetResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "abc" {
		t.Fatalf("unexpected id %q", resp.ID)
	}
	if resp.Report != nil {
		t.Fatal("report must be null for unknown ids")
	}
	if resp.Message == "" {
		t.Fatal("message must be present")
	}
}

func TestLegacyUpsertThenGet(t *testing.T) {
	store := reports.NewLegacyStore()
	upsert := LegacyUpsertReport(store, nil)
	get := LegacyGetReport(store, nil)

	body := `{"title":"Weekly digest","createdAt":"2025-01-05T10:15:00Z"}`
	req := withReportID(httptest.NewRequest(http.MethodPost, "/api/report/abc", bytes.NewBufferString(body)), "abc")
	rec := httptest.NewRecorder()
	upsert.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	var upserted legacyUpsertResponse
	if err := json.NewDecoder(rec.Body).Decode(&upserted); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if upserted.ID != "abc" || !upserted.OK {
		t.Fatalf("unexpected upsert response %+v", upserted)
	}

	req = withReportID(httptest.NewRequest(http.MethodGet, "/api/report/abc", nil), "abc")
	rec = httptest.NewRecorder()
	get.ServeHTTP(rec, req)

	var fetched legacyGetResponse
	if err := json.NewDecoder(rec.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if fetched.Report == nil || fetched.Report.Title != "Weekly digest" {
		t.Fatalf("stored record not returned: %+v", fetched.Report)
	}
	if fetched.Report.ID != "abc" {
		t.Fatalf("record id missing: %+v", fetched.Report)
	}
	if fetched.Report.CreatedAt != "2025-01-05T10:15:00Z" {
		t.Fatalf("createdAt not preserved: %q", fetched.Report.CreatedAt)
	}
}

func TestLegacyUpsertOmittedTitlePreservesStored(t *testing.T) {
	store := reports.NewLegacyStore()
	handler := LegacyUpsertReport(store, nil)

	first := `{"title":"My Report","createdAt":"2025-01-05T10:15:00Z"}`
	req := withReportID(httptest.NewRequest(http.MethodPost, "/api/report/abc", bytes.NewBufferString(first)), "abc")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	second := `{"createdAt":"2025-02-01T09:00:00Z"}`
	req = withReportID(httptest.NewRequest(http.MethodPost, "/api/report/abc", bytes.NewBufferString(second)), "abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	report, ok := store.Get("abc")
	if !ok {
		t.Fatal("record not stored")
	}
	if report.Title != "My Report" {
		t.Fatalf("title clobbered by partial upsert: got %q, want %q", report.Title, "My Report")
	}
	if report.CreatedAt != "2025-02-01T09:00:00Z" {
		t.Fatalf("createdAt not updated: %q", report.CreatedAt)
	}

	third := `{"title":"Renamed"}`
	req = withReportID(httptest.NewRequest(http.MethodPost, "/api/report/abc", bytes.NewBufferString(third)), "abc")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	report, _ = store.Get("abc")
	if report.CreatedAt != "2025-02-01T09:00:00Z" {
		t.Fatalf("createdAt reset by partial upsert: %q", report.CreatedAt)
	}
	if report.Title != "Renamed" {
		t.Fatalf("title not updated: %q", report.Title)
	}
}

func TestLegacyUpsertRejectsUnknownKey(t *testing.T) {
	handler := LegacyUpsertReport(reports.NewLegacyStore(), nil)

	body := `{"title":"x","status":"completed"}`
	req := withReportID(httptest.NewRequest(http.MethodPost, "/api/report/abc", bytes.NewBufferString(body)), "abc")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestLegacyUpsertRejectsBadCreatedAt(t *testing.T) {
	handler := LegacyUpsertReport(reports.NewLegacyStore(), nil)

	for _, createdAt := range []string{"2025-01-05", "05/01/2025 10:15", "2025-01-05T10:15:00"} {
		body, _ := json.Marshal(map[string]string{"createdAt": createdAt})
		req := withReportID(httptest.NewRequest(http.MethodPost, "/api/report/abc", bytes.NewBuffer(body)), "abc")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("createdAt %q: expected 400 got %d", createdAt, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "createdAt") {
			t.Fatalf("createdAt %q: message not surfaced: %s", createdAt, rec.Body.String())
		}
	}
}

func TestLegacyUpsertAcceptsFractionalSeconds(t *testing.T) {
	handler := LegacyUpsertReport(reports.NewLegacyStore(), nil)

	body := `{"createdAt":"2025-01-05T10:15:00.123Z"}`
	req := withReportID(httptest.NewRequest(http.MethodPost, "/api/report/abc", bytes.NewBufferString(body)), "abc")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestLegacyUpsertEmptyBodyDefaultsCreatedAt(t *testing.T) {
	store := reports.NewLegacyStore()
	handler := LegacyUpsertReport(store, nil)

	req := withReportID(httptest.NewRequest(http.MethodPost, "/api/report/abc", nil), "abc")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	report, ok := store.Get("abc")
	if !ok {
		t.Fatal("record not stored")
	}
	if !regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`).MatchString(report.CreatedAt) {
		t.Fatalf("default createdAt has unexpected shape: %q", report.CreatedAt)
	}
}
