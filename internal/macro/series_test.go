package macro

import (
	"math"
	"testing"

	"NewsCurator/internal/domain"
)

func TestBuildIndicatorDelta(t *testing.T) {
	t.Parallel()

	raw := map[string]any{"2022": "7.5", "2023": "8.1"}
	indicator := BuildIndicator("NGDP_RPCH", "Real GDP growth", "percent", "IMF", raw)

	if len(indicator.Series) != 2 {
		t.Fatalf("expected 2 points, got %d", len(indicator.Series))
	}
	if indicator.Latest == nil || indicator.Latest.Year != 2023 || indicator.Latest.Value != 8.1 {
		t.Fatalf("unexpected latest point: %+v", indicator.Latest)
	}
	if indicator.Prior == nil || indicator.Prior.Year != 2022 {
		t.Fatalf("unexpected prior point: %+v", indicator.Prior)
	}
	if indicator.Delta == nil || math.Abs(*indicator.Delta-0.6) > 1e-9 {
		t.Fatalf("unexpected delta: %v", indicator.Delta)
	}
}

func TestBuildIndicatorDropsNonFinite(t *testing.T) {
	t.Parallel()

	raw := map[string]any{"2022": "n/a", "2023": "5", "not-a-year": "4"}
	indicator := BuildIndicator("PCPIPCH", "Inflation", "percent", "IMF", raw)

	if len(indicator.Series) != 1 || indicator.Series[0].Year != 2023 {
		t.Fatalf("unexpected series: %+v", indicator.Series)
	}
	if indicator.Latest != nil || indicator.Prior != nil || indicator.Delta != nil {
		t.Fatal("single-point series should yield an all-null summary")
	}
}

func TestNormalizeSeriesSortsAndCoerces(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"2024": 3,
		"2021": "12.5",
		"2023": float64(9),
		"2022": math.NaN(),
	}

	series := NormalizeSeries(raw)
	if len(series) != 3 {
		t.Fatalf("expected 3 points, got %d: %+v", len(series), series)
	}
	for i := 1; i < len(series); i++ {
		if series[i].Year <= series[i-1].Year {
			t.Fatalf("series not sorted by year: %+v", series)
		}
	}
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value float64
		unit  string
		want  string
	}{
		{233.1, "percent", "233%"},
		{-233.1, "percent", "-233%"},
		{12.34, "percent", "12.3%"},
		{8.126, "percent", "8.13%"},
		{8.126, "bolivars per dollar", "8.13"},
		{math.NaN(), "percent", "—"},
	}
	for _, tc := range cases {
		if got := FormatValue(tc.value, tc.unit); got != tc.want {
			t.Fatalf("FormatValue(%v, %q) = %q, want %q", tc.value, tc.unit, got, tc.want)
		}
	}
}

func TestFormatDelta(t *testing.T) {
	t.Parallel()

	if got := FormatDelta(nil, "percent"); got != "—" {
		t.Fatalf("nil delta should render the placeholder, got %q", got)
	}

	up := 0.6
	if got := FormatDelta(&up, "percent"); got != "+0.60%" {
		t.Fatalf("unexpected positive delta: %q", got)
	}

	down := -1.25
	if got := FormatDelta(&down, "percent"); got != "-1.25%" {
		t.Fatalf("unexpected negative delta: %q", got)
	}
}

func TestTrendPointsGeometry(t *testing.T) {
	t.Parallel()

	series := []domain.SeriesPoint{
		{Year: 2021, Value: 1},
		{Year: 2022, Value: 3},
		{Year: 2023, Value: 2},
	}

	points := TrendPoints(series)
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	if points[0].X != 2 || points[len(points)-1].X != 88 {
		t.Fatalf("x range should span the padded box: %+v", points)
	}
	if points[1].Y != 2 {
		t.Fatalf("max value should sit at the top padding: %+v", points[1])
	}
	if points[0].Y != 20 {
		t.Fatalf("min value should sit at the bottom padding: %+v", points[0])
	}
}

func TestTrendPointsFlatSeries(t *testing.T) {
	t.Parallel()

	series := []domain.SeriesPoint{
		{Year: 2022, Value: 5},
		{Year: 2023, Value: 5},
	}

	for _, point := range TrendPoints(series) {
		if point.Y != 11 {
			t.Fatalf("flat series should be vertically centered: %+v", point)
		}
	}
}

func TestTrendPointsTruncatesLongSeries(t *testing.T) {
	t.Parallel()

	series := make([]domain.SeriesPoint, 0, 15)
	for year := 2010; year < 2025; year++ {
		series = append(series, domain.SeriesPoint{Year: year, Value: float64(year - 2010)})
	}

	points := TrendPoints(series)
	if len(points) != 10 {
		t.Fatalf("expected the last 10 points, got %d", len(points))
	}

	if TrendPoints(series[:1]) != nil {
		t.Fatal("a single point has no trend")
	}
}
