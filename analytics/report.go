package analytics

// Options sizes the charting windows of a Report.
type Options struct {
	CumulativeWindow int `json:"cumulativeWindow" yaml:"cumulative_window"`
	DailyWindow      int `json:"dailyWindow" yaml:"daily_window"`
}

// DefaultOptions returns the 20-trade cumulative and 10-day daily windows.
func DefaultOptions() Options {
	return Options{
		CumulativeWindow: DefaultCumulativeWindow,
		DailyWindow:      DefaultDailyWindow,
	}
}

// Report is everything a dashboard needs for one filter selection.
type Report struct {
	Filter      Filter            `json:"filter"`
	Metrics     Metrics           `json:"metrics"`
	Streaks     Streaks           `json:"streaks"`
	Score       Score             `json:"score"`
	Radar       Radar             `json:"radar"`
	MaxDrawdown float64           `json:"maxDrawdown"`
	Cumulative  []CumulativePoint `json:"cumulative"`
	Daily       []DailyPoint      `json:"daily"`
	Drawdown    []DrawdownPoint   `json:"drawdown"`
	Intraday    []ScatterPoint    `json:"intraday"`
	Calendar    []DayCell         `json:"calendar"`
	BySymbol    []Group           `json:"bySymbol"`
	ByDirection []Group           `json:"byDirection"`
	ByStrategy  []Group           `json:"byStrategy"`
}

// Analyze filters trades once and feeds the view to every component.
func Analyze(trades []Trade, f Filter, opts Options) Report {
	view := ApplyFilters(trades, f)
	m := ComputeMetrics(view)
	dd := DrawdownSeries(view)

	return Report{
		Filter:      f,
		Metrics:     m,
		Streaks:     AnalyzeStreaks(view),
		Score:       CompositeScore(m),
		Radar:       RadarBreakdown(m),
		MaxDrawdown: MaxDrawdown(dd),
		Cumulative:  CumulativeSeries(view, opts.CumulativeWindow),
		Daily:       DailySeries(view, opts.DailyWindow),
		Drawdown:    dd,
		Intraday:    IntradayScatter(view),
		Calendar:    BuildCalendar(view).Days(),
		BySymbol:    BySymbol(view),
		ByDirection: ByDirection(view),
		ByStrategy:  ByStrategy(view),
	}
}
