// Package macro normalizes raw indicator series and derives the
// latest/prior/delta summary and compact trend points used by the
// dashboard tiles.
package macro

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"NewsCurator/internal/domain"
)

// Trend line box dimensions, shared with the dashboard sparkline.
const (
	trendWidth   = 90.0
	trendHeight  = 22.0
	trendPadding = 2.0
	trendMaxLen  = 10
)

// NormalizeSeries converts a raw year-label to value mapping into an
// ordered series. Pairs whose year or value does not convert to a
// finite number are dropped, never stored.
func NormalizeSeries(raw map[string]any) []domain.SeriesPoint {
	series := make([]domain.SeriesPoint, 0, len(raw))
	for label, value := range raw {
		year, err := strconv.Atoi(strings.TrimSpace(label))
		if err != nil {
			continue
		}
		number, ok := toFinite(value)
		if !ok {
			continue
		}
		series = append(series, domain.SeriesPoint{Year: year, Value: number})
	}
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Year < series[j].Year
	})
	return series
}

// ComputeDelta derives the latest and prior points and their
// difference. Fewer than two points yields an all-null summary.
func ComputeDelta(series []domain.SeriesPoint) (latest, prior *domain.SeriesPoint, delta *float64) {
	if len(series) < 2 {
		return nil, nil, nil
	}
	last := series[len(series)-1]
	previous := series[len(series)-2]
	diff := last.Value - previous.Value
	return &last, &previous, &diff
}

// BuildIndicator normalizes raw values into a complete indicator.
func BuildIndicator(code, label, unit, dataset string, raw map[string]any) domain.MacroIndicator {
	series := NormalizeSeries(raw)
	latest, prior, delta := ComputeDelta(series)
	return domain.MacroIndicator{
		Code:    code,
		Label:   label,
		Unit:    unit,
		Dataset: dataset,
		Series:  series,
		Latest:  latest,
		Prior:   prior,
		Delta:   delta,
	}
}

// FormatValue renders a display value: 0 decimals at magnitude >= 100,
// 1 at >= 10, else 2, with a percent sign when the unit calls for one.
func FormatValue(value float64, unit string) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "—"
	}
	abs := math.Abs(value)
	decimals := 2
	switch {
	case abs >= 100:
		decimals = 0
	case abs >= 10:
		decimals = 1
	}
	rendered := strconv.FormatFloat(value, 'f', decimals, 64)
	if isPercentUnit(unit) {
		return rendered + "%"
	}
	return rendered
}

// FormatDelta renders a signed year-over-year delta, or a placeholder
// when no delta exists.
func FormatDelta(delta *float64, unit string) string {
	if delta == nil {
		return "—"
	}
	rendered := FormatValue(*delta, unit)
	if *delta >= 0 {
		return "+" + rendered
	}
	return rendered
}

func isPercentUnit(unit string) bool {
	normalized := strings.ToLower(unit)
	return strings.Contains(normalized, "percent") || strings.Contains(normalized, "%")
}

// TrendPoints reduces the last points of a series to coordinates inside
// a fixed small box for a compact trend line. A flat series is centered
// vertically instead of dividing by zero.
func TrendPoints(series []domain.SeriesPoint) []domain.TrendPoint {
	if len(series) < 2 {
		return nil
	}
	last := series
	if len(last) > trendMaxLen {
		last = last[len(last)-trendMaxLen:]
	}

	min := last[0].Value
	max := last[0].Value
	for _, point := range last[1:] {
		min = math.Min(min, point.Value)
		max = math.Max(max, point.Value)
	}

	innerWidth := trendWidth - 2*trendPadding
	innerHeight := trendHeight - 2*trendPadding
	points := make([]domain.TrendPoint, len(last))
	for i, point := range last {
		x := trendPadding + float64(i)*innerWidth/float64(len(last)-1)
		y := trendHeight / 2
		if max != min {
			y = trendPadding + innerHeight*(1-(point.Value-min)/(max-min))
		}
		points[i] = domain.TrendPoint{X: x, Y: y}
	}
	return points
}

// toFinite coerces the JSON value shapes seen in upstream feeds.
func toFinite(value any) (float64, bool) {
	var number float64
	switch v := value.(type) {
	case float64:
		number = v
	case float32:
		number = float64(v)
	case int:
		number = float64(v)
	case int64:
		number = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		number = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		number = parsed
	default:
		return 0, false
	}
	if math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, false
	}
	return number, true
}
