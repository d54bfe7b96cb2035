package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/analytics"
)

// filterFlags are the selection flags shared by the reporting commands.
type filterFlags struct {
	account   string
	symbol    string
	direction string
	outcome   string
	dateRange string
	currency  string
}

func (ff *filterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&ff.account, "account", "a", analytics.All, "account id or all")
	cmd.Flags().StringVarP(&ff.symbol, "symbol", "s", analytics.All, "symbol or all")
	cmd.Flags().StringVar(&ff.direction, "direction", analytics.All, "Long, Short or all")
	cmd.Flags().StringVar(&ff.outcome, "outcome", analytics.All, "Win, Loss, Breakeven or all")
	cmd.Flags().StringVarP(&ff.dateRange, "range", "r", "", "all or <N>d (default from config)")
	cmd.Flags().StringVar(&ff.currency, "currency", "", "convert P&L into this currency")
}

func (ff *filterFlags) filter(rc *RootConfig) (analytics.Filter, error) {
	f := analytics.Filter{
		AccountID: ff.account,
		Symbol:    ff.symbol,
		Direction: ff.direction,
		Outcome:   ff.outcome,
		DateRange: ff.dateRange,
		Now:       time.Now(),
	}
	if f.DateRange == "" {
		f.DateRange = rc.Config.Analytics.DefaultRange
	}
	if err := f.Validate(); err != nil {
		return analytics.Filter{}, err
	}
	return f, nil
}
