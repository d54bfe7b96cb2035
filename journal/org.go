package journal

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/tradejournal/analytics"
)

// FormatTradeOrg renders a trade as an Org-mode block suitable for pasting into a journal.
// Structured facts go in a PROPERTIES drawer; Thesis/Execution/Review are left for notes.
func FormatTradeOrg(t analytics.Trade) string {
	symbol := t.Symbol
	if symbol == "" {
		symbol = "(no symbol)"
	}
	heading := fmt.Sprintf("** Trade: %s (%s)", symbol, shortID(t.ID))

	pl := "(none)"
	if t.HasPL() {
		pl = fmt.Sprintf("%.2f", t.PL())
	}

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":TRADE_ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":DATE: %s\n", t.Date))
	b.WriteString(fmt.Sprintf(":SYMBOL: %s\n", t.Symbol))
	b.WriteString(fmt.Sprintf(":DIRECTION: %s\n", t.Direction))
	b.WriteString(fmt.Sprintf(":STATUS: %s\n", t.Status))
	b.WriteString(fmt.Sprintf(":OUTCOME: %s\n", t.Outcome))
	b.WriteString(fmt.Sprintf(":PROFIT_LOSS: %s\n", pl))
	if t.AccountID != "" {
		b.WriteString(fmt.Sprintf(":ACCOUNT: %s\n", t.AccountID))
	}
	if t.StrategyID != "" {
		b.WriteString(fmt.Sprintf(":STRATEGY: %s\n", t.StrategyID))
	}
	if t.EntryTime != "" {
		b.WriteString(fmt.Sprintf(":ENTRY_TIME: %s\n", t.EntryTime))
	}
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Thesis\n- \n\n")
	b.WriteString("*** Execution\n- \n\n")
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []analytics.Trade) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
