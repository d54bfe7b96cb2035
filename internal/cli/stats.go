package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/journal"
)

// loadView opens the journal and returns the trades passing ff, newest first.
func (rc *RootConfig) loadView(cmd *cobra.Command, ff *filterFlags) ([]analytics.Trade, analytics.Filter, error) {
	f, err := ff.filter(rc)
	if err != nil {
		return nil, analytics.Filter{}, err
	}

	j, err := rc.openStore()
	if err != nil {
		return nil, analytics.Filter{}, err
	}
	defer j.Close()

	rates, err := rc.Config.Analytics.RateTable()
	if err != nil {
		return nil, analytics.Filter{}, err
	}
	trades, err := journal.LoadTradesIn(cmd.Context(), j, rates, ff.currency)
	if err != nil {
		return nil, analytics.Filter{}, err
	}
	rc.Log.Debug("trades loaded", "count", len(trades))
	return trades, f, nil
}

func newStatsCmd(rc *RootConfig) *cobra.Command {
	var (
		ff     filterFlags
		format string
		title  string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show performance statistics",
		Long: `Compute performance statistics for the trades matching the filters.

Examples:
  tradejournal stats
  tradejournal stats --account ibkr-1 --range 30d
  tradejournal stats --format org --title "March review" >> review.org`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			trades, f, err := rc.loadView(cmd, &ff)
			if err != nil {
				return err
			}
			report := analytics.Analyze(trades, f, rc.Config.Analytics.Options())

			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "text":
				journal.PrintReport(out, report)
				return nil
			case "org":
				return journal.WriteReportOrg(out, journal.ReportDoc{
					Title:    title,
					Created:  time.Now(),
					Currency: ff.currency,
					Report:   report,
				})
			case "json":
				return writeJSON(out, report)
			default:
				return fmt.Errorf("unknown --format %q: want text, org or json", format)
			}
		},
	}

	ff.bind(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text|org|json")
	cmd.Flags().StringVar(&title, "title", "", "heading for org output")
	return cmd
}

func newCalendarCmd(rc *RootConfig) *cobra.Command {
	var (
		ff    filterFlags
		month string
	)

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show the daily P&L calendar for a month",
		Long: `Show one line per trading day of a month plus the month summary.

Example:
  tradejournal calendar --month 2024-05`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := time.Now()
			if month != "" {
				var err error
				m, err = time.Parse("2006-01", month)
				if err != nil {
					return fmt.Errorf("invalid --month %q: want YYYY-MM", month)
				}
			}

			trades, f, err := rc.loadView(cmd, &ff)
			if err != nil {
				return err
			}
			// the month grid ignores --range; other filters still apply
			f.DateRange = analytics.All
			view := analytics.ApplyFilters(trades, f)

			printCalendar(cmd.OutOrStdout(), m, analytics.BuildCalendar(view), analytics.MonthSummary(view, m.Year(), m.Month()))
			return nil
		},
	}

	ff.bind(cmd)
	cmd.Flags().StringVarP(&month, "month", "m", "", "month YYYY-MM (default current)")
	return cmd
}

func printCalendar(w io.Writer, month time.Time, cal analytics.Calendar, ms analytics.MonthStats) {
	fmt.Fprintf(w, "%s\n", month.Format("January 2006"))
	fmt.Fprintln(w, "--------------------------------------------------")

	prefix := month.Format("2006-01-")
	for _, d := range cal.Days() {
		if !strings.HasPrefix(d.Date, prefix) {
			continue
		}
		marks := ""
		if d.HasWin {
			marks += "W"
		}
		if d.HasLoss {
			marks += "L"
		}
		fmt.Fprintf(w, "%s  %3d trades  %-2s %10.2f\n", d.Date, d.Count, marks, d.TotalPL)
	}

	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Trades: %d  Wins: %d  Losses: %d  Closed: %d\n", ms.Count, ms.Wins, ms.Losses, ms.Closed)
	fmt.Fprintf(w, "Net P/L: %.2f  Win Rate: %.1f%%\n", ms.TotalPL, ms.WinRate)
}

func newSeriesCmd(rc *RootConfig) *cobra.Command {
	var (
		ff     filterFlags
		kind   string
		window int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "series",
		Short: "Print a chart series",
		Long: `Print one of the chart series for the filtered trades.

Kinds:
  cumulative - running P&L over the most recent trades
  daily      - net P&L per day over the most recent days
  drawdown   - running P&L against its peak
  intraday   - entry hour against P&L

Example:
  tradejournal series --kind daily --window 30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			trades, f, err := rc.loadView(cmd, &ff)
			if err != nil {
				return err
			}
			view := analytics.ApplyFilters(trades, f)
			opts := rc.Config.Analytics.Options()

			out := cmd.OutOrStdout()
			var series any
			switch strings.ToLower(kind) {
			case "cumulative":
				n := opts.CumulativeWindow
				if cmd.Flags().Changed("window") {
					n = window
				}
				pts := analytics.CumulativeSeries(view, n)
				series = pts
				if !asJSON {
					for _, p := range pts {
						fmt.Fprintf(out, "%4d  %-10s  %-8s %10.2f\n", p.Index, p.Date, p.Symbol, p.CumulativePL)
					}
				}
			case "daily":
				n := opts.DailyWindow
				if cmd.Flags().Changed("window") {
					n = window
				}
				pts := analytics.DailySeries(view, n)
				series = pts
				if !asJSON {
					for _, p := range pts {
						fmt.Fprintf(out, "%s  %3d  %10.2f\n", p.Date, p.Count, p.NetPL)
					}
				}
			case "drawdown":
				pts := analytics.DrawdownSeries(view)
				series = pts
				if !asJSON {
					for _, p := range pts {
						fmt.Fprintf(out, "%s  %10.2f  %10.2f  %10.2f\n", p.Date, p.CumulativePL, p.Peak, p.Drawdown)
					}
					fmt.Fprintf(out, "max drawdown %.2f\n", analytics.MaxDrawdown(pts))
				}
			case "intraday":
				pts := analytics.IntradayScatter(view)
				series = pts
				if !asJSON {
					for _, p := range pts {
						fmt.Fprintf(out, "%02d:00  %10.2f\n", p.Hour, p.PL)
					}
				}
			default:
				return fmt.Errorf("unknown --kind %q: want cumulative, daily, drawdown or intraday", kind)
			}

			if asJSON {
				return writeJSON(out, series)
			}
			return nil
		},
	}

	ff.bind(cmd)
	cmd.Flags().StringVarP(&kind, "kind", "k", "cumulative", "cumulative|daily|drawdown|intraday")
	cmd.Flags().IntVarP(&window, "window", "w", 0, "number of trades or days (0 = all, default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
