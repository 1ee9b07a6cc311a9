package services

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/foxxcyber/breakfast-club/internal/models"
)

func newFeedServer(t *testing.T, status int, body string) (*httptest.Server, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != planPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestFeedService_Live(t *testing.T) {
	var query map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{
			"mon":  r.URL.Query().Get("mon"),
			"tue":  r.URL.Query().Get("tue"),
			"live": r.URL.Query().Get("live"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"monday_items": {" Milk ": 7.5, "bread": 25},
			"tuesday_items": {"milk": "9", "four": 0.75, "eggs": "n/a"},
			"totals": {"Pak'nSave": 100.5, "Countdown": "110", "New World": 105},
			"cheapest": "Pak'nSave"
		}`))
	}))
	defer srv.Close()

	feed := NewFeedService(srv.URL+"/", true, 2*time.Second, 0)
	data := feed.FetchPlanInputs(context.Background(), models.Attendance{Monday: 25, Tuesday: 30})

	if data.Mode != models.SourceModeLive {
		t.Fatalf("expected live mode, got %s", data.Mode)
	}
	if query["mon"] != "25" || query["tue"] != "30" || query["live"] != "true" {
		t.Errorf("unexpected query %v", query)
	}
	if math.Abs(data.Ingredients["milk"]-16.5) > 1e-9 {
		t.Errorf("expected merged milk 16.5, got %v", data.Ingredients["milk"])
	}
	if data.Ingredients["flour"] != 0.75 {
		t.Errorf("expected flour from typo key, got %v", data.Ingredients)
	}
	if data.Ingredients["eggs"] != 0 {
		t.Errorf("non-numeric quantity should read as 0, got %v", data.Ingredients["eggs"])
	}
	if data.VendorTotals["Pak'nSave"] != 100.5 || data.VendorTotals["Countdown"] != 110 {
		t.Errorf("unexpected totals %v", data.VendorTotals)
	}
	if data.Cheapest != "Pak'nSave" {
		t.Errorf("unexpected cheapest %q", data.Cheapest)
	}
}

func TestFeedService_FallsBack(t *testing.T) {
	att := models.Attendance{Monday: 10, Tuesday: 10}

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`},
		{"not found", http.StatusNotFound, ``},
		{"unexpected shape", http.StatusOK, `{"totals":{"paknsave":10}}`},
		{"null items", http.StatusOK, `{"monday_items":null,"tuesday_items":null}`},
		{"invalid json", http.StatusOK, `{"monday_items":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, calls := newFeedServer(t, tt.status, tt.body)
			feed := NewFeedService(srv.URL, true, 2*time.Second, 0)

			data := feed.FetchPlanInputs(context.Background(), att)
			if data.Mode != models.SourceModeFallback {
				t.Fatalf("expected fallback, got %s", data.Mode)
			}
			if *calls != 1 {
				t.Errorf("expected one request, got %d", *calls)
			}
			if len(data.Products) != len(fallbackProducts) {
				t.Errorf("expected fallback products, got %d", len(data.Products))
			}
		})
	}
}

func TestFeedService_EmptyItemsIsLive(t *testing.T) {
	srv, _ := newFeedServer(t, http.StatusOK, `{"monday_items":{},"totals":{}}`)
	feed := NewFeedService(srv.URL, true, 2*time.Second, 0)

	if data := feed.FetchPlanInputs(context.Background(), models.Attendance{}); data.Mode != models.SourceModeLive {
		t.Errorf("an empty items object is still the expected shape, got %s", data.Mode)
	}
}

func TestFeedService_Disabled(t *testing.T) {
	srv, calls := newFeedServer(t, http.StatusOK, `{"monday_items":{}}`)
	feed := NewFeedService(srv.URL, false, 2*time.Second, 0)

	data := feed.FetchPlanInputs(context.Background(), models.Attendance{Monday: 5})
	if data.Mode != models.SourceModeFallback {
		t.Errorf("expected fallback when live feed is disabled, got %s", data.Mode)
	}
	if *calls != 0 {
		t.Errorf("disabled feed should not make requests, got %d", *calls)
	}
}

func TestFeedService_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	feed := NewFeedService(url, true, time.Second, 0)
	if data := feed.FetchPlanInputs(context.Background(), models.Attendance{}); data.Mode != models.SourceModeFallback {
		t.Errorf("expected fallback, got %s", data.Mode)
	}
}

func TestFeedService_CancelledContext(t *testing.T) {
	srv, _ := newFeedServer(t, http.StatusOK, `{"monday_items":{}}`)
	feed := NewFeedService(srv.URL, true, 2*time.Second, 60)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if data := feed.FetchPlanInputs(ctx, models.Attendance{}); data.Mode != models.SourceModeFallback {
		t.Errorf("expected fallback for cancelled request, got %s", data.Mode)
	}
}

func TestFallbackData(t *testing.T) {
	t.Run("scaled by attendance", func(t *testing.T) {
		data := FallbackData(models.Attendance{Monday: 25, Tuesday: 30})
		if data.Mode != models.SourceModeFallback {
			t.Fatalf("unexpected mode %s", data.Mode)
		}

		wantQty := []int{6, 11, 7, 2, 3, 3}
		for i, p := range data.Products {
			if p.Qty != wantQty[i] {
				t.Errorf("%s: qty %d, want %d", p.Name, p.Qty, wantQty[i])
			}
		}
		if math.Abs(data.VendorTotals["paknsave"]-117.9) > 1e-9 {
			t.Errorf("paknsave total = %v, want 117.9", data.VendorTotals["paknsave"])
		}
	})

	t.Run("minimum one of each product", func(t *testing.T) {
		data := FallbackData(models.Attendance{})
		for _, p := range data.Products {
			if p.Qty != 1 {
				t.Errorf("%s: qty %d, want 1", p.Name, p.Qty)
			}
		}
		want := map[string]float64{"paknsave": 27.1, "countdown": 29.4, "newworld": 28.7}
		for vendor, total := range want {
			if math.Abs(data.VendorTotals[vendor]-total) > 1e-9 {
				t.Errorf("%s total = %v, want %v", vendor, data.VendorTotals[vendor], total)
			}
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		a := FallbackData(models.Attendance{Monday: 13, Tuesday: 8})
		b := FallbackData(models.Attendance{Monday: 13, Tuesday: 8})
		for k, v := range a.VendorTotals {
			if b.VendorTotals[k] != v {
				t.Errorf("%s differs: %v vs %v", k, v, b.VendorTotals[k])
			}
		}
	})
}
