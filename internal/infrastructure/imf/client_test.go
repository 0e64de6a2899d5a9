package imf

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"NewsCurator/internal/config"
)

const catalogJSON = `{
	"indicators": {
		"NGDP_RPCH": {"label": "Real GDP growth", "unit": "Annual percent change", "dataset": "WEO"},
		"PCPIPCH": {"label": "Inflation rate, average consumer prices", "unit": "Annual percent change", "dataset": "WEO"}
	}
}`

const gdpJSON = `{
	"values": {
		"NGDP_RPCH": {
			"VEN": {"2022": 7.5, "2023": 8.1, "2024": "n/a"}
		}
	}
}`

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(config.MacroConfig{
		BaseURL: server.URL,
		Country: "VEN",
		Metrics: []config.MetricConfig{
			{Code: "NGDP_RPCH", Label: "GDP growth (config)"},
			{Code: "PCPIPCH", Label: "Inflation (config)"},
		},
	}, nil)
	client.now = func() time.Time {
		return time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	}
	return client
}

func TestFetchShapesIndicators(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var periods string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/indicators":
			w.Write([]byte(catalogJSON))
		case strings.HasPrefix(r.URL.Path, "/NGDP_RPCH/VEN"):
			mu.Lock()
			periods = r.URL.Query().Get("periods")
			mu.Unlock()
			w.Write([]byte(gdpJSON))
		default:
			http.NotFound(w, r)
		}
	}))

	doc, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if doc.Country != "VEN" || doc.Source != "IMF DataMapper API" {
		t.Fatalf("unexpected document header: %+v", doc)
	}
	if doc.AsOf != "2026-08-30T12:00:00Z" {
		t.Fatalf("unexpected asOf: %q", doc.AsOf)
	}

	// One metric resolved, one 404ed and was skipped.
	if len(doc.Metrics) != 1 {
		t.Fatalf("expected 1 metric, got %d", len(doc.Metrics))
	}

	gdp := doc.Metrics[0]
	if gdp.Code != "NGDP_RPCH" || gdp.Label != "Real GDP growth" {
		t.Fatalf("catalog label should override config label: %+v", gdp)
	}
	if gdp.Unit != "Annual percent change" || gdp.Dataset != "WEO" {
		t.Fatalf("catalog metadata missing: %+v", gdp)
	}
	if len(gdp.Series) != 2 {
		t.Fatalf("non-numeric values should be dropped: %+v", gdp.Series)
	}
	if gdp.Latest == nil || gdp.Latest.Year != 2023 || gdp.Delta == nil {
		t.Fatalf("summary not derived: %+v", gdp)
	}

	mu.Lock()
	defer mu.Unlock()
	if !strings.HasPrefix(periods, "2011,") || !strings.HasSuffix(periods, ",2031") {
		t.Fatalf("period window should span 15 back and 5 forward: %q", periods)
	}
}

func TestFetchFailsWithoutCatalog(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	if _, err := client.Fetch(context.Background()); err == nil {
		t.Fatal("catalog failure should abort the fetch")
	}
}

func TestFetchMissingCountryYieldsEmptySeries(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/indicators" {
			w.Write([]byte(catalogJSON))
			return
		}
		w.Write([]byte(`{"values": {}}`))
	}))

	doc, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(doc.Metrics) != 2 {
		t.Fatalf("expected 2 metrics, got %d", len(doc.Metrics))
	}
	for _, metric := range doc.Metrics {
		if len(metric.Series) != 0 || metric.Latest != nil {
			t.Fatalf("missing data should yield an empty indicator: %+v", metric)
		}
	}
}
