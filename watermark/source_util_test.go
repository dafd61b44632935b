package watermark

import (
	"testing"
	"time"

	"github.com/TomaszGaweda/hazelcast-jet/errs"
	"github.com/stretchr/testify/assert"
)

func drain(trav *traverser) []any {
	var out []any
	for {
		v, ok := trav.Next()
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}

func newMonotonicUtil(t *testing.T, now int64, partitions int, idleTimeout time.Duration) *SourceUtil[int64] {
	params := NewGenerationParams[int64](func(item int64) int64 { return item }, NewMonotonicEventTimePolicyFn()).
		WithIdleTimeout(idleTimeout)
	u := New(params, func(item int64, ts int64) any { return item })
	assert.NoError(t, u.IncreasePartitionCount(now, partitions))
	return u
}

func TestSourceUtil_StrictlyNonDecreasingWatermarks(t *testing.T) {
	u := newMonotonicUtil(t, 0, 1, 0)
	var last int64 = MinTimestamp
	for i, ts := range []int64{10, 10, 20, 15, 30} {
		items := drain(u.HandleEvent(0, &ts, 0))
		for _, item := range items {
			if wm, ok := item.(Watermark); ok {
				assert.GreaterOrEqual(t, wm.Timestamp, last, "watermark went backwards at step %d", i)
				last = wm.Timestamp
			}
		}
	}
}

func TestSourceUtil_PartitionGrowthDoesNotSkipNewPartitions(t *testing.T) {
	u := newMonotonicUtil(t, 0, 1, 100)
	ts := int64(10)
	drain(u.HandleEvent(0, &ts, 0))

	assert.NoError(t, u.IncreasePartitionCount(50, 2))
	assert.Equal(t, 2, u.PartitionCount())

	// Partition 1's markIdleAt is 50+100=150, so at now=60 it must still
	// count as active and hold the coalesced watermark back to MinTimestamp.
	items := drain(u.HandleNoEvent(60))
	for _, item := range items {
		if wm, ok := item.(Watermark); ok {
			t.Fatalf("expected no watermark while newly added partition 1 has not reported yet, got %d", wm.Timestamp)
		}
	}
}

func TestSourceUtil_IdleSentinelEmittedAtMostOnce(t *testing.T) {
	u := newMonotonicUtil(t, 0, 1, 100)

	// markIdleAt for the only partition is 0+100=100, so it only crosses
	// into idle once `now` reaches that deadline.
	items := drain(u.HandleNoEvent(100))
	assert.Equal(t, []any{IdleMessage}, items)

	// Still idle: must not emit a second IdleMessage.
	items = drain(u.HandleNoEvent(150))
	assert.Empty(t, items)

	// A fresh event on the same partition clears idle and resumes emission.
	ts := int64(10)
	items = drain(u.HandleEvent(160, &ts, 0))
	assert.Contains(t, items, Watermark{Timestamp: 10})
}

func TestSourceUtil_SnapshotRoundTrip(t *testing.T) {
	u := newMonotonicUtil(t, 0, 2, 0)
	ts0 := int64(10)
	ts1 := int64(20)
	drain(u.HandleEvent(0, &ts0, 0))
	drain(u.HandleEvent(0, &ts1, 1))

	saved0 := u.GetWatermark(0)
	saved1 := u.GetWatermark(1)
	assert.Equal(t, int64(10), saved0)
	assert.Equal(t, int64(20), saved1)

	restored := newMonotonicUtil(t, 0, 2, 0)
	restored.RestoreWatermark(0, saved0)
	restored.RestoreWatermark(1, saved1)
	assert.Equal(t, saved0, restored.GetWatermark(0))
	assert.Equal(t, saved1, restored.GetWatermark(1))
}

func TestSourceUtil_HandleEventPanicsWhenTraverserNotDrained(t *testing.T) {
	u := newMonotonicUtil(t, 0, 1, 0)
	ts := int64(10)
	u.HandleEvent(0, &ts, 0) // returned traverser left undrained

	assert.Panics(t, func() {
		u.HandleEvent(0, &ts, 0)
	})
}

func TestSourceUtil_IncreasePartitionCountRejectsShrink(t *testing.T) {
	u := newMonotonicUtil(t, 0, 2, 0)
	err := u.IncreasePartitionCount(0, 1)
	assert.Error(t, err)
	assert.IsType(t, &errs.InvalidArgumentError{}, err)
}

func TestSourceUtil_BasicAdvanceTwoPartitions(t *testing.T) {
	// spec.md §8 "Basic advance": 2 partitions, idle detection disabled,
	// AlwaysEmit over a monotonic (highest event timestamp seen) policy.
	// Partition 1 has not reported yet when the first event on partition 0
	// arrives, so the coalesced minimum is still MinTimestamp and nothing
	// is emitted until partition 1 reports too.
	u := newMonotonicUtil(t, 0, 2, 0)

	ts0 := int64(10)
	firstItems := drain(u.HandleEvent(0, &ts0, 0))
	assert.Equal(t, []any{ts0}, firstItems, "no watermark yet: partition 1 has not reported")

	ts1 := int64(20)
	secondItems := drain(u.HandleEvent(0, &ts1, 1))
	assert.Equal(t, []any{Watermark{Timestamp: 10}, ts1}, secondItems)
}

func TestSourceUtil_SuppressSmallAdvances(t *testing.T) {
	params := NewGenerationParams[int64](func(item int64) int64 { return item }, NewMonotonicEventTimePolicyFn()).
		WithEmissionPolicy(NewSuppressSmallAdvances(10))
	u := New(params, func(item int64, ts int64) any { return item })
	assert.NoError(t, u.IncreasePartitionCount(0, 1))

	// First candidate always clears an emission policy comparing against
	// the sentinel lastEmitted value, establishing a baseline of 5.
	ts := int64(5)
	items := drain(u.HandleEvent(0, &ts, 0))
	assert.Contains(t, items, Watermark{Timestamp: 5})

	// An advance of only 7 (5 -> 12) is below the minStep of 10: suppressed.
	ts = 12
	items = drain(u.HandleEvent(0, &ts, 0))
	for _, item := range items {
		_, isWm := item.(Watermark)
		assert.False(t, isWm, "advance of 7 should be suppressed by a minStep of 10")
	}

	// An advance of 15 (5 -> 20) clears the minStep: emitted.
	ts = 20
	items = drain(u.HandleEvent(0, &ts, 0))
	assert.Contains(t, items, Watermark{Timestamp: 20})
}
