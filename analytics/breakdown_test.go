package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBreakdowns(t *testing.T) {
	t.Parallel()

	trades := sampleTrades()

	dirs := ByDirection(trades)
	if assert.Len(t, dirs, 2) {
		assert.Equal(t, "Long", dirs[0].Key)
		assert.Equal(t, 2, dirs[0].Metrics.TotalTrades)
		assert.Equal(t, "Short", dirs[1].Key)
		assert.Equal(t, 2, dirs[1].Metrics.TotalTrades)
	}

	syms := BySymbol(trades)
	if assert.Len(t, syms, 3) {
		assert.Equal(t, []string{"CL", "ES", "NQ"}, []string{syms[0].Key, syms[1].Key, syms[2].Key})
		assert.Equal(t, 3, syms[1].Metrics.TotalTrades)
	}

	assert.Empty(t, ByStrategy(trades))
}
