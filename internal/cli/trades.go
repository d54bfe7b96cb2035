package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/journal"
)

func newImportCmd(rc *RootConfig) *cobra.Command {
	var (
		accountID string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "import <file.csv|file.json>",
		Short: "Import trades from a broker CSV export or a JSON file",
		Long: `Import closed trades from a CSV export or a JSON file.

CSV: the header row is matched against common broker spellings (Date,
Symbol, Side, P&L, ...). A date and a P&L column are required.

JSON (.json files): an array of trade objects or a single object, such as
the output of "tradejournal trades --format json". The whole file is
rejected when it is not valid JSON of that shape.

Example:
  tradejournal import --account ibkr-1 trades.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := readImport(args[0])
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			for i := range recs {
				if recs[i].AccountID == "" {
					recs[i].AccountID = accountID
				}
			}
			rc.Log.Info("import parsed", "file", args[0], "rows", len(recs))

			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "%d trades would be imported from %s\n", len(recs), args[0])
				return nil
			}

			j, err := rc.openStore()
			if err != nil {
				return err
			}
			defer j.Close()

			ids, err := j.AddTrades(cmd.Context(), recs)
			if err != nil {
				return fmt.Errorf("store trades: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d trades from %s\n", len(ids), args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&accountID, "account", "a", "", "account id for rows without one")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse only, do not store")
	return cmd
}

// readImport parses path as JSON when it has a .json extension and as a
// broker CSV otherwise.
func readImport(path string) ([]journal.Record, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		raws, err := analytics.DecodeRaw(data)
		if err != nil {
			return nil, err
		}
		trades := analytics.Normalize(raws)
		recs := make([]journal.Record, 0, len(trades))
		for _, t := range trades {
			recs = append(recs, journal.RecordFromTrade(t))
		}
		return recs, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raws, err := journal.ImportCSV(f)
	if err != nil {
		return nil, err
	}
	recs := make([]journal.Record, 0, len(raws))
	for _, raw := range raws {
		recs = append(recs, journal.RecordFromRaw(raw))
	}
	return recs, nil
}

func newAddCmd(rc *RootConfig) *cobra.Command {
	var (
		rec journal.Record
		pl  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a single trade",
		Long: `Record a single trade.

Example:
  tradejournal add --symbol ES --direction long --outcome win --pl 250 --entry-time 09:35`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rec.Date == "" {
				rec.Date = time.Now().Format("2006-01-02")
			}
			if _, ok := analytics.ParseDate(rec.Date); !ok {
				return fmt.Errorf("invalid --date %q", rec.Date)
			}
			if rec.Direction != "" {
				switch d := analytics.NormalizeDirection(rec.Direction); d {
				case analytics.Long, analytics.Short:
					rec.Direction = string(d)
				default:
					return fmt.Errorf("invalid --direction %q: want long or short", rec.Direction)
				}
			}
			if pl != "" {
				rec.ProfitLoss = analytics.ParsePL(pl)
				if rec.ProfitLoss == nil {
					return fmt.Errorf("invalid --pl %q", pl)
				}
			}
			if rec.Outcome == "" && rec.ProfitLoss != nil {
				switch {
				case *rec.ProfitLoss > 0:
					rec.Outcome = string(analytics.Win)
				case *rec.ProfitLoss < 0:
					rec.Outcome = string(analytics.Loss)
				default:
					rec.Outcome = string(analytics.Breakeven)
				}
			} else if rec.Outcome != "" {
				rec.Outcome = string(analytics.NormalizeOutcome(rec.Outcome))
			}

			j, err := rc.openStore()
			if err != nil {
				return err
			}
			defer j.Close()

			tradeID, err := j.AddTrade(cmd.Context(), rec)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Added trade %s\n", tradeID)
			return nil
		},
	}

	cmd.Flags().StringVar(&rec.TradeID, "id", "", "trade id (generated when empty)")
	cmd.Flags().StringVar(&rec.Date, "date", "", "trade date YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&rec.Symbol, "symbol", "s", "", "symbol")
	cmd.Flags().StringVar(&rec.Direction, "direction", "", "long or short")
	cmd.Flags().StringVar(&rec.Status, "status", "Closed", "trade status")
	cmd.Flags().StringVar(&rec.Outcome, "outcome", "", "win, loss or breakeven (default from P&L sign)")
	cmd.Flags().StringVar(&pl, "pl", "", "profit or loss, e.g. 125.50 or (40)")
	cmd.Flags().StringVarP(&rec.AccountID, "account", "a", "", "account id")
	cmd.Flags().StringVar(&rec.StrategyID, "strategy", "", "strategy id")
	cmd.Flags().StringVar(&rec.EntryTime, "entry-time", "", "entry time HH:MM")
	cmd.Flags().StringVar(&rec.Notes, "notes", "", "free-form notes")
	return cmd
}

func newTradesCmd(rc *RootConfig) *cobra.Command {
	var (
		ff     filterFlags
		format string
	)

	cmd := &cobra.Command{
		Use:   "trades",
		Short: "List journal trades, newest first",
		Long: `List journal trades matching the filters, newest first.

Examples:
  tradejournal trades --symbol ES --range 30d
  tradejournal trades --format csv > export.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			trades, f, err := rc.loadView(cmd, &ff)
			if err != nil {
				return err
			}
			view := analytics.ApplyFilters(trades, f)

			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "org":
				fmt.Fprintln(out, journal.FormatTradesOrg(view))
				return nil
			case "csv":
				return journal.WriteCSV(out, view)
			case "json":
				return writeJSON(out, view)
			default:
				return fmt.Errorf("unknown --format %q: want org, csv or json", format)
			}
		},
	}

	ff.bind(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "org", "output format: org|csv|json")
	return cmd
}

func newDeleteCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <trade-id>",
		Short: "Delete a trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := rc.openStore()
			if err != nil {
				return err
			}
			defer j.Close()

			if err := j.DeleteTrade(cmd.Context(), args[0]); err != nil {
				if errors.Is(err, journal.ErrNotFound) {
					return fmt.Errorf("no trade with id %s", args[0])
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted trade %s\n", args[0])
			return nil
		},
	}
}

func newAccountCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage trading accounts",
		Long: `Manage trading accounts. An account's currency is used when reports
are converted with --currency.

Subcommands:
  add   - Add an account
  list  - List accounts`,
	}

	var acct journal.Account
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if acct.Name == "" {
				return fmt.Errorf("--name is required")
			}

			j, err := rc.openStore()
			if err != nil {
				return err
			}
			defer j.Close()

			accountID, err := j.AddAccount(cmd.Context(), acct)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Added account %s (%s)\n", acct.Name, accountID)
			return nil
		},
	}
	addCmd.Flags().StringVar(&acct.AccountID, "id", "", "account id (generated when empty)")
	addCmd.Flags().StringVar(&acct.Name, "name", "", "display name")
	addCmd.Flags().StringVar(&acct.Currency, "currency", "USD", "account currency")
	addCmd.Flags().StringVar(&acct.Broker, "broker", "", "broker name")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := rc.openStore()
			if err != nil {
				return err
			}
			defer j.Close()

			accts, err := j.ListAccounts(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, a := range accts {
				fmt.Fprintf(out, "%-28s %-20s %-4s %s\n", a.AccountID, a.Name, a.Currency, a.Broker)
			}
			return nil
		},
	}

	cmd.AddCommand(addCmd, listCmd)
	return cmd
}
