package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/rustyeddy/tradejournal/analytics"
)

// ErrUnknownFormat is returned when a CSV header has no recognizable date or
// P&L column.
var ErrUnknownFormat = errors.New("unrecognized csv format")

// columnAliases maps each raw trade key to the header spellings broker
// exports use for it. Headers are compared after lowercasing and dropping
// everything but letters and digits.
var columnAliases = map[string][]string{
	"id":          {"id", "tradeid", "ticket", "orderid", "positionid"},
	"account_id":  {"account", "accountid", "accountnumber"},
	"strategy_id": {"strategy", "strategyid", "setup", "playbook"},
	"date":        {"date", "tradedate", "closedate", "closetime", "exitdate", "datetime", "time", "soldtimestamp"},
	"symbol":      {"symbol", "ticker", "instrument", "contract", "market"},
	"direction":   {"direction", "side", "action", "type", "buysell"},
	"status":      {"status", "state"},
	"outcome":     {"outcome", "result", "winloss"},
	"profit_loss": {"pnl", "pl", "profitloss", "profit", "netpnl", "netpl", "realizedpl", "realizedpnl", "gainloss", "netprofit"},
	"entry_time":  {"entrytime", "opentime", "boughttimestamp", "timeopened"},
	"notes":       {"notes", "comment", "comments"},
}

// Format is the column layout detected from a CSV header.
type Format struct {
	// Columns maps raw trade keys to column indexes.
	Columns map[string]int
}

func headerKey(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DetectFormat matches header cells against the known aliases. The first
// column matching a key wins. A date and a P&L column are required.
func DetectFormat(header []string) (Format, error) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		k := headerKey(h)
		if _, dup := byName[k]; !dup {
			byName[k] = i
		}
	}

	f := Format{Columns: make(map[string]int)}
	for key, aliases := range columnAliases {
		best := -1
		for _, a := range aliases {
			if i, ok := byName[a]; ok && (best < 0 || i < best) {
				best = i
			}
		}
		if best >= 0 {
			f.Columns[key] = best
		}
	}

	_, hasDate := f.Columns["date"]
	_, hasPL := f.Columns["profit_loss"]
	if !hasDate || !hasPL {
		return Format{}, fmt.Errorf("%w: need a date and a P&L column, got %v", ErrUnknownFormat, header)
	}
	return f, nil
}

// ImportCSV reads a broker export and returns one raw trade per data row.
// Values are kept as strings. Two gaps are filled in: a missing status
// becomes "Closed", since exports only list finished trades, and a missing
// outcome is taken from the sign of the P&L. A leading byte order mark
// selects UTF-8 or UTF-16; without one the input is read as UTF-8.
func ImportCSV(r io.Reader) ([]analytics.RawTrade, error) {
	cr := csv.NewReader(transform.NewReader(r, xunicode.BOMOverride(xunicode.UTF8.NewDecoder())))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrUnknownFormat)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	format, err := DetectFormat(header)
	if err != nil {
		return nil, err
	}

	var out []analytics.RawTrade
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if blank(row) {
			continue
		}

		raw := analytics.RawTrade{}
		for key, col := range format.Columns {
			if col < len(row) {
				if v := strings.TrimSpace(row[col]); v != "" {
					raw[key] = v
				}
			}
		}
		if _, ok := raw["status"]; !ok {
			raw["status"] = "Closed"
		}
		if _, ok := raw["outcome"]; !ok {
			if o := outcomeFromPL(raw["profit_loss"]); o != "" {
				raw["outcome"] = string(o)
			}
		}
		out = append(out, raw)
	}
	return out, nil
}

func outcomeFromPL(v any) analytics.Outcome {
	p := analytics.ParsePL(v)
	switch {
	case p == nil:
		return analytics.OutcomeNone
	case *p > 0:
		return analytics.Win
	case *p < 0:
		return analytics.Loss
	}
	return analytics.Breakeven
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

var exportHeader = []string{"id", "date", "account_id", "strategy_id", "symbol", "direction", "status", "outcome", "profit_loss", "entry_time"}

// WriteCSV exports canonical trades. A trade without P&L gets an empty cell.
func WriteCSV(w io.Writer, trades []analytics.Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, t := range trades {
		plCell := ""
		if t.HasPL() {
			plCell = formatPL(t.PL())
		}
		if err := cw.Write([]string{
			t.ID,
			t.Date,
			t.AccountID,
			t.StrategyID,
			t.Symbol,
			string(t.Direction),
			t.Status,
			string(t.Outcome),
			plCell,
			t.EntryTime,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatPL(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
