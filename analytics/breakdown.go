package analytics

import "sort"

// Group is the metric summary of the trades sharing one key.
type Group struct {
	Key     string  `json:"key"`
	Metrics Metrics `json:"metrics"`
}

// BreakdownBy partitions trades by key and computes Metrics per partition.
// Trades for which key reports false are left out. Groups come back sorted
// by key.
func BreakdownBy(trades []Trade, key func(Trade) (string, bool)) []Group {
	parts := make(map[string][]Trade)
	for _, t := range trades {
		k, ok := key(t)
		if !ok {
			continue
		}
		parts[k] = append(parts[k], t)
	}

	keys := make([]string, 0, len(parts))
	for k := range parts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Group, 0, len(keys))
	for _, k := range keys {
		out = append(out, Group{Key: k, Metrics: ComputeMetrics(parts[k])})
	}
	return out
}

// BySymbol groups trades that have a symbol.
func BySymbol(trades []Trade) []Group {
	return BreakdownBy(trades, func(t Trade) (string, bool) {
		return t.Symbol, t.Symbol != ""
	})
}

// ByDirection groups Long and Short trades; other directions are skipped.
func ByDirection(trades []Trade) []Group {
	return BreakdownBy(trades, func(t Trade) (string, bool) {
		return string(t.Direction), t.Direction == Long || t.Direction == Short
	})
}

// ByStrategy groups trades that reference a strategy.
func ByStrategy(trades []Trade) []Group {
	return BreakdownBy(trades, func(t Trade) (string, bool) {
		return t.StrategyID, t.StrategyID != ""
	})
}
