package main

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"
	"testing"
)

// TestGetHealthMetrics_LazyBootstrap verifies that the first read for a user
// with no history computes a snapshot from the profile and persists it, so the
// second read returns the same row.
func TestGetHealthMetrics_LazyBootstrap(t *testing.T) {
	h, mem, _ := newTestHandler(t)
	u := seedTestUser(t, mem)
	router := newTestRouter(h)

	path := "/api/user/" + strconv.Itoa(u.ID) + "/health-metrics"

	w := doJSON(router, "GET", path, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var first healthMetric
	if err := json.Unmarshal(w.Body.Bytes(), &first); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if first.Weight != 78 {
		t.Errorf("weight = %v, want 78 from profile", first.Weight)
	}
	wantBMI := 78 / (1.78 * 1.78)
	if math.Abs(first.BMI-wantBMI) > 1e-9 {
		t.Errorf("bmi = %v, want %v", first.BMI, wantBMI)
	}
	// BMR 1737.5, TDEE ×1.55 = 2693.125, minus 500 → 2193.
	if first.DailyCalories != 2193 {
		t.Errorf("dailyCalories = %d, want 2193", first.DailyCalories)
	}

	// The bootstrap snapshot was persisted, not just rendered.
	if _, err := mem.GetLastHealthMetric(context.Background(), u.ID); err != nil {
		t.Fatalf("bootstrap snapshot not persisted: %v", err)
	}

	w = doJSON(router, "GET", path, "")
	var second healthMetric
	json.Unmarshal(w.Body.Bytes(), &second)
	if second.ID != first.ID {
		t.Errorf("second read id = %d, want %d (same persisted row)", second.ID, first.ID)
	}

	history, _ := mem.GetHealthMetricHistory(context.Background(), u.ID)
	if len(history) != 1 {
		t.Errorf("history length = %d, want 1 (bootstrap runs once)", len(history))
	}
}

func TestGetHealthMetricHistory(t *testing.T) {
	h, mem, _ := newTestHandler(t)
	u := seedTestUser(t, mem)
	router := newTestRouter(h)

	path := "/api/user/" + strconv.Itoa(u.ID) + "/health-metrics/history"

	// Empty history serializes as [], never null.
	w := doJSON(router, "GET", path, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("empty history body = %s, want []", got)
	}

	for _, weight := range []float64{78, 77.2} {
		if _, err := mem.CreateHealthMetric(context.Background(), u.ID, weight, computeBMI(weight, u.Height), 2200); err != nil {
			t.Fatalf("CreateHealthMetric: %v", err)
		}
	}

	w = doJSON(router, "GET", path, "")
	var history []healthMetric
	if err := json.Unmarshal(w.Body.Bytes(), &history); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[0].Weight != 78 || history[1].Weight != 77.2 {
		t.Errorf("history weights = %v, %v, want oldest first", history[0].Weight, history[1].Weight)
	}
}

func TestHealthMetrics_UnknownUser(t *testing.T) {
	h, _, _ := newTestHandler(t)
	router := newTestRouter(h)

	for _, path := range []string{"/api/user/42/health-metrics", "/api/user/42/health-metrics/history"} {
		if w := doJSON(router, "GET", path, ""); w.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", path, w.Code)
		}
	}
}
