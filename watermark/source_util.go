package watermark

import (
	"time"

	"github.com/TomaszGaweda/hazelcast-jet/errs"
	"github.com/TomaszGaweda/hazelcast-jet/log"
)

// WrapFn wraps an emitted item together with its extracted timestamp, so
// the caller can (for example) store the item's per-partition offset
// after the item has actually been emitted.
type WrapFn[T any] func(item T, timestamp int64) any

// traverser is a single reusable, appendable output slot, mirroring the
// Java source's AppendableTraverser: HandleEvent appends at most a
// Watermark/IdleMessage followed by a wrapped item, and the caller must
// drain it (via Next) before the next HandleEvent call.
type traverser struct {
	items [2]any
	len   int
	pos   int
}

func (t *traverser) reset() {
	t.len = 0
	t.pos = 0
}

func (t *traverser) append(item any) {
	t.items[t.len] = item
	t.len++
}

func (t *traverser) isEmpty() bool {
	return t.pos >= t.len
}

// Next returns the next item in the traverser, or (nil, false) once it is
// drained.
func (t *traverser) Next() (any, bool) {
	if t.pos >= t.len {
		return nil, false
	}
	v := t.items[t.pos]
	t.pos++
	return v, true
}

// SourceUtil coalesces per-partition watermarks for one source processor
// instance into a single monotone stream with idle-partition handling
// (spec.md §4.3). It is single-threaded, allocation-light on the hot
// path, and owned exclusively by the processor instance that creates it
// (spec.md §5) — no locks, no atomics.
type SourceUtil[T any] struct {
	idleTimeoutNanos int64
	timestampFn      TimestampFn[T]
	newPolicyFn      NewPolicyFn
	emissionPolicy   EmissionPolicy
	wrapFn           WrapFn[T]
	logger           log.Logger

	policies      []Policy
	watermarks    []int64
	markIdleAt    []int64
	lastEmittedWm int64
	allAreIdle    bool

	trav traverser
}

// New builds a SourceUtil with zero partitions; call IncreasePartitionCount
// to set the initial count (spec.md §4.3).
func New[T any](params *GenerationParams[T], wrapFn WrapFn[T]) *SourceUtil[T] {
	return &SourceUtil[T]{
		idleTimeoutNanos: int64(params.idleTimeout),
		timestampFn:      params.timestampFn,
		newPolicyFn:      params.newPolicyFn,
		emissionPolicy:   params.emissionPolicy,
		wrapFn:           wrapFn,
		lastEmittedWm:    MinTimestamp,
		logger:           log.Global().Named("watermark-source-util"),
	}
}

// HandleEvent is the hot-path entry point: it (possibly) reports the
// event to its partition's policy, computes and (possibly) emits a
// coalesced watermark or idle sentinel, and (if item is non-nil) appends
// the wrapped item. It returns a traverser with at most two items, in the
// order watermark-or-idle first, then the wrapped item (spec.md §4.3
// step 4). partitionIdx is ignored when item is nil.
//
// It takes an explicit `now` for deterministic testing under a fake
// clock (spec.md §5, §9.4); HandleEventNow is the real-clock convenience
// wrapper.
func (u *SourceUtil[T]) HandleEvent(now int64, item *T, partitionIdx int) *traverser {
	if !u.trav.isEmpty() {
		panic(errs.NewContractViolation(
			"the traverser returned previously has not been drained: consume all items before calling HandleEvent again"))
	}
	u.trav.reset()

	var ts int64
	if item != nil {
		ts = u.timestampFn(*item)
		u.policies[partitionIdx].ReportEvent(ts)
		u.markIdleAt[partitionIdx] = now + u.idleTimeoutNanos
		u.allAreIdle = false
	}

	if out, ok := u.computeCandidate(now); ok {
		u.trav.append(out)
		if wm, isWm := out.(Watermark); isWm {
			u.logger.Debugf("emitting watermark %d", wm.Timestamp)
		} else {
			u.logger.Debug("emitting idle message")
		}
	}
	if item != nil {
		u.trav.append(u.wrapFn(*item, ts))
	}
	return &u.trav
}

// HandleEventNow is HandleEvent with now read from the system monotonic
// clock.
func (u *SourceUtil[T]) HandleEventNow(item T, partitionIdx int) *traverser {
	return u.HandleEvent(monotonicNanos(), &item, partitionIdx)
}

// HandleNoEvent is handleEvent(now, none, -1): call it when a poll
// produced no records, so idle partitions can still be discovered.
func (u *SourceUtil[T]) HandleNoEvent(now int64) *traverser {
	return u.HandleEvent(now, nil, -1)
}

// HandleNoEventNow is HandleNoEvent with now read from the system
// monotonic clock.
func (u *SourceUtil[T]) HandleNoEventNow() *traverser {
	return u.HandleNoEvent(monotonicNanos())
}

// computeCandidate implements spec.md §4.3 steps 2–3: fold the minimum
// watermark over all active (non-idle) partitions and decide whether to
// emit a Watermark, an IdleMessage, or nothing.
func (u *SourceUtil[T]) computeCandidate(now int64) (any, bool) {
	min := int64(MaxTimestamp)
	for i := range u.watermarks {
		if u.idleTimeoutNanos > 0 && u.markIdleAt[i] <= now {
			continue
		}
		u.watermarks[i] = u.policies[i].CurrentWatermark()
		if u.watermarks[i] < min {
			min = u.watermarks[i]
		}
	}

	if min == MaxTimestamp {
		if u.allAreIdle {
			return nil, false
		}
		u.allAreIdle = true
		return IdleMessage, true
	}

	if !u.emissionPolicy.ShouldEmit(min, u.lastEmittedWm) {
		return nil, false
	}
	u.allAreIdle = false
	u.lastEmittedWm = min
	return Watermark{Timestamp: min}, true
}

// IncreasePartitionCount grows the partition arrays to newCount. New
// partitions start active (their idle deadline is now+idleTimeout, not
// already expired) so a just-discovered partition can never be skipped
// over before it has had a chance to report an event (spec.md §4.3).
func (u *SourceUtil[T]) IncreasePartitionCount(now int64, newCount int) error {
	oldCount := len(u.policies)
	if newCount < oldCount {
		return errs.NewInvalidArgument(
			"partition count must increase: old count=%d, new count=%d", oldCount, newCount)
	}
	for i := oldCount; i < newCount; i++ {
		u.policies = append(u.policies, u.newPolicyFn())
		u.watermarks = append(u.watermarks, MinTimestamp)
		u.markIdleAt = append(u.markIdleAt, now+u.idleTimeoutNanos)
	}
	return nil
}

// IncreasePartitionCountNow is IncreasePartitionCount with now read from
// the system monotonic clock.
func (u *SourceUtil[T]) IncreasePartitionCountNow(newCount int) error {
	return u.IncreasePartitionCount(monotonicNanos(), newCount)
}

// PartitionCount returns the current number of tracked partitions.
func (u *SourceUtil[T]) PartitionCount() int {
	return len(u.policies)
}

// GetWatermark returns the value to save to a state snapshot for
// partitionIdx (spec.md §4.3, state-snapshot contract).
func (u *SourceUtil[T]) GetWatermark(partitionIdx int) int64 {
	return u.watermarks[partitionIdx]
}

// RestoreWatermark restores a watermark value read from a state snapshot.
// Snapshot keys are broadcast at restore time (BroadcastKey); the
// processor instance is expected to call this only for partitions it now
// owns and ignore the rest.
func (u *SourceUtil[T]) RestoreWatermark(partitionIdx int, wm int64) {
	u.watermarks[partitionIdx] = wm
}

// monotonicBase anchors monotonicNanos; time.Since uses the monotonic
// clock reading carried by a time.Time from time.Now.
var monotonicBase = time.Now()

func monotonicNanos() int64 {
	return int64(time.Since(monotonicBase))
}
