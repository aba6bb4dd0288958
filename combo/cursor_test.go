package combo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCursorDebugReflectsState(t *testing.T) {
	c := NewCursor()
	assert.Contains(t, c.Debug(), "fresh")

	c.path = []int{1, 2}
	assert.Contains(t, c.Debug(), "suspended")

	c.exhausted = true
	assert.Contains(t, c.Debug(), "done")
}

func TestCursorDeadlineExpiry(t *testing.T) {
	c := NewCursor()
	c.SetDeadline(time.Now().Add(-time.Second), 0)
	assert.True(t, c.budgetExceeded())
}

func TestCursorNoLimitsNeverExceedsBudget(t *testing.T) {
	c := NewCursor()
	c.outputIndex = 1_000_000
	assert.False(t, c.budgetExceeded())
}
