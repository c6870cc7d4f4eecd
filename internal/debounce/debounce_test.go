package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- HAPPY PATH TESTS ---

func TestTrigger_CoalescesBurst(t *testing.T) {
	d := New(30 * time.Millisecond)
	var calls, last atomic.Int32

	for i := 1; i <= 5; i++ {
		n := int32(i)
		d.Trigger(func() {
			calls.Add(1)
			last.Store(n)
		})
	}
	assert.True(t, d.Pending())

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int32(5), last.Load())
	assert.False(t, d.Pending())
}

// --- ERROR PATH TESTS ---

func TestStop_CancelsAndIgnoresLaterTriggers(t *testing.T) {
	d := New(20 * time.Millisecond)
	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Stop()
	d.Trigger(func() { calls.Add(1) })

	assert.False(t, d.Pending())
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}
