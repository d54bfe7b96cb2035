package journal

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/rustyeddy/tradejournal/analytics"
)

// ReportDoc is what the Org report template renders.
type ReportDoc struct {
	Title    string
	Created  time.Time
	Currency string
	analytics.Report
}

var reportOrgFuncs = template.FuncMap{
	"orAll": func(s string) string {
		if s == "" {
			return analytics.All
		}
		return s
	},
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
}

var reportOrg = template.Must(template.New("report").Funcs(reportOrgFuncs).Parse(ReportOrgTemplate))

// WriteReportOrg renders doc as an Org-mode performance summary.
func WriteReportOrg(w io.Writer, doc ReportDoc) error {
	return reportOrg.Execute(w, doc)
}

const ReportOrgTemplate = `* PERFORMANCE: {{if .Title}}{{.Title}}{{else}}Trade Journal{{end}}
:PROPERTIES:
:ACCOUNT:     {{orAll .Filter.AccountID}}
:SYMBOL:      {{orAll .Filter.Symbol}}
:DIRECTION:   {{orAll .Filter.Direction}}
:OUTCOME:     {{orAll .Filter.Outcome}}
:RANGE:       {{orAll .Filter.DateRange}}
:CURRENCY:    {{if .Currency}}{{.Currency}}{{else}}(native){{end}}
:TRADES:      {{.Metrics.TotalTrades}}
:WINS:        {{.Metrics.Wins}}
:LOSSES:      {{.Metrics.Losses}}
:BREAKEVEN:   {{.Metrics.Breakeven}}
:WIN_RATE:    {{printf "%.1f" .Metrics.WinRate}}
:NET_PL:      {{printf "%.2f" .Metrics.TotalPL}}
:PROFIT_FAC:  {{if ne .Metrics.ProfitFactor 0.0}}{{printf "%.2f" .Metrics.ProfitFactor}}{{else}}(profit-factor?){{end}}
:MAX_DD:      {{printf "%.2f" .MaxDrawdown}}
:SCORE:       {{.Score.Composite}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Performance Summary
- Net P/L:          *{{printf "%.2f" .Metrics.TotalPL}}*
- Avg P/L:          *{{printf "%.2f" .Metrics.AvgPL}}*
- Avg Win:          *{{printf "%.2f" .Metrics.AvgWin}}*
- Avg Loss:         *{{printf "%.2f" .Metrics.AvgLoss}}*
- Win Rate:         *{{printf "%.1f" .Metrics.WinRate}}%*
- Profit Factor:    *{{if ne .Metrics.ProfitFactor 0.0}}{{printf "%.2f" .Metrics.ProfitFactor}}{{else}}(profit-factor?){{end}}*
- Max Drawdown:     *{{printf "%.2f" .MaxDrawdown}}*
- Max Win Streak:   *{{.Streaks.MaxWinStreak}}*
- Max Loss Streak:  *{{.Streaks.MaxLossStreak}}*

** Score
| Axis          | Value |
|---------------+-------|
| Win Rate      | {{printf "%.1f" .Radar.WinRate}} |
| Profit        | {{printf "%.1f" .Radar.Profit}} |
| Consistency   | {{printf "%.1f" .Radar.Consistency}} |
| Recovery      | {{printf "%.1f" .Radar.Recovery}} |
| Avg Win/Loss  | {{printf "%.1f" .Radar.AvgWinLoss}} |
| Composite     | {{.Score.Composite}} |

** Trade Distribution
| Outcome   | Count |
|-----------+-------|
| Wins      | {{.Metrics.Wins}} |
| Losses    | {{.Metrics.Losses}} |
| Breakeven | {{.Metrics.Breakeven}} |
| Other     | {{.Metrics.Other}} |
| Total     | {{.Metrics.TotalTrades}} |

{{- if .BySymbol }}

** By Symbol
| Symbol | Trades | Win % | Net P/L |
|--------+--------+-------+---------|
{{- range .BySymbol }}
| {{.Key}} | {{.Metrics.TotalTrades}} | {{printf "%.1f" .Metrics.WinRate}} | {{printf "%.2f" .Metrics.TotalPL}} |
{{- end }}
{{- end }}

{{- if .Daily }}

** Daily Net P/L
| Date | Trades | Net P/L |
|------+--------+---------|
{{- range .Daily }}
| {{.Date}} | {{.Count}} | {{printf "%.2f" .NetPL}} |
{{- end }}
{{- end }}
`

// PrintReport writes a plain-text summary of r.
func PrintReport(w io.Writer, r analytics.Report) {
	m := r.Metrics

	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Performance Report")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Account:       %s\n", orAll(r.Filter.AccountID))
	fmt.Fprintf(w, "Symbol:        %s\n", orAll(r.Filter.Symbol))
	fmt.Fprintf(w, "Direction:     %s\n", orAll(r.Filter.Direction))
	fmt.Fprintf(w, "Outcome:       %s\n", orAll(r.Filter.Outcome))
	fmt.Fprintf(w, "Range:         %s\n", orAll(r.Filter.DateRange))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Trades:        %d\n", m.TotalTrades)
	fmt.Fprintf(w, "Wins:          %d\n", m.Wins)
	fmt.Fprintf(w, "Losses:        %d\n", m.Losses)
	fmt.Fprintf(w, "Breakeven:     %d\n", m.Breakeven)
	fmt.Fprintf(w, "Win Rate:      %.1f%%\n", m.WinRate)
	fmt.Fprintf(w, "Max Win Run:   %d\n", r.Streaks.MaxWinStreak)
	fmt.Fprintf(w, "Max Loss Run:  %d\n", r.Streaks.MaxLossStreak)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Profit and Loss")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Net P/L:       %.2f\n", m.TotalPL)
	fmt.Fprintf(w, "Avg P/L:       %.2f\n", m.AvgPL)
	fmt.Fprintf(w, "Avg Win:       %.2f\n", m.AvgWin)
	fmt.Fprintf(w, "Avg Loss:      %.2f\n", m.AvgLoss)

	if m.ProfitFactor > 0 {
		fmt.Fprintf(w, "Profit Factor: %.2f\n", m.ProfitFactor)
	}
	if r.MaxDrawdown < 0 {
		fmt.Fprintf(w, "Max Drawdown:  %.2f\n", r.MaxDrawdown)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Score:         %d / 100\n", r.Score.Composite)

	if len(r.ByDirection) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "By Direction")
		fmt.Fprintln(w, "--------------------------------------------------")
		for _, g := range r.ByDirection {
			fmt.Fprintf(w, "%-6s %4d trades  %5.1f%%  %10.2f\n", g.Key, g.Metrics.TotalTrades, g.Metrics.WinRate, g.Metrics.TotalPL)
		}
	}

	fmt.Fprintln(w)
}

func orAll(s string) string {
	if s == "" {
		return analytics.All
	}
	return s
}
