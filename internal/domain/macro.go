package domain

// SeriesPoint is one (year, value) observation of an indicator.
type SeriesPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// MacroIndicator is a normalized indicator time series with its
// derived latest/prior points and year-over-year delta.
type MacroIndicator struct {
	Code    string        `json:"code"`
	Label   string        `json:"label"`
	Unit    string        `json:"unit"`
	Dataset string        `json:"dataset,omitempty"`
	Series  []SeriesPoint `json:"series"`
	Latest  *SeriesPoint  `json:"latest"`
	Prior   *SeriesPoint  `json:"prior"`
	Delta   *float64      `json:"delta"`
}

// MacroDocument is the macro snapshot attached to the dashboard.
type MacroDocument struct {
	Source  string           `json:"source,omitempty"`
	Country string           `json:"country,omitempty"`
	AsOf    string           `json:"asOf,omitempty"`
	Metrics []MacroIndicator `json:"metrics"`
}

// TrendPoint is one coordinate of a compact trend line.
type TrendPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CurationRun summarizes one pipeline invocation for audit storage.
type CurationRun struct {
	ID       string
	Selector Language
	Sectors  int
	Items    int
	Rejected []RejectionRecord
}
