package id

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewIsMonotonic(t *testing.T) {
	t.Parallel()

	prev := New()
	for i := 0; i < 100; i++ {
		next := New()
		assert.True(t, next > prev, "ids must sort in creation order")
		prev = next
	}
}

func TestAtUsesTimestamp(t *testing.T) {
	t.Parallel()

	old := At(time.Date(2019, 1, 2, 0, 0, 0, 0, time.UTC))
	now := New()

	assert.True(t, Valid(old))
	assert.True(t, old < now)
}

func TestValid(t *testing.T) {
	t.Parallel()

	assert.True(t, Valid(New()))
	assert.False(t, Valid(""))
	assert.False(t, Valid("T1"))
}
