// Package watermark implements the source-side watermark primitives:
// per-partition policies, the emission policy contract, and
// WatermarkSourceUtil, which coalesces them into a single monotone,
// idle-aware stream for one processor instance (spec.md §4.1–§4.3).
package watermark

import "math/bits"

// MinTimestamp is the initial watermark value for a partition that has not
// yet reported an event (spec.md §3, "initial MIN").
const MinTimestamp = -1 << (bits.UintSize - 1)

// MaxTimestamp is used internally as the neutral element when folding a
// minimum over all active partitions.
const MaxTimestamp = 1<<(bits.UintSize-1) - 1

// Policy tracks event-time progress for one logical partition. Concrete
// strategies (e.g. bounded out-of-orderness / "limiting lag") are supplied
// by the caller; this package assumes nothing beyond non-decreasing
// CurrentWatermark return values (spec.md §4.1).
type Policy interface {
	// ReportEvent informs the policy of a just-observed event timestamp.
	ReportEvent(eventTimestamp int64)
	// CurrentWatermark returns this partition's current watermark
	// estimate. Must be non-decreasing across successive calls.
	CurrentWatermark() int64
}

// NewPolicyFn constructs one Policy per partition. Each partition gets its
// own instance so per-partition state (e.g. accumulated lag) never leaks
// across partitions.
type NewPolicyFn func() Policy

// EmissionPolicy decides whether a newly computed candidate watermark is
// worth releasing downstream (spec.md §4.2). Implementations must return
// true whenever candidate > lastEmitted infinitely often, or monotone
// progress stalls.
type EmissionPolicy interface {
	ShouldEmit(candidate, lastEmitted int64) bool
}

// limitingLagPolicy estimates the watermark as "highest timestamp seen
// minus a fixed allowed lag", the policy referenced by name in spec.md
// §4.1 ("e.g., limiting lag").
type limitingLagPolicy struct {
	lagMillis int64
	top       int64
}

// NewLimitingLagPolicyFn returns a NewPolicyFn producing fresh
// limiting-lag policies, one per partition, each tolerating up to
// lagMillis of out-of-orderness.
func NewLimitingLagPolicyFn(lagMillis int64) NewPolicyFn {
	return func() Policy {
		return &limitingLagPolicy{lagMillis: lagMillis, top: MinTimestamp}
	}
}

func (p *limitingLagPolicy) ReportEvent(eventTimestamp int64) {
	if eventTimestamp > p.top {
		p.top = eventTimestamp
	}
}

func (p *limitingLagPolicy) CurrentWatermark() int64 {
	if p.top == MinTimestamp {
		return MinTimestamp
	}
	wm := p.top - p.lagMillis
	if wm < MinTimestamp {
		return MinTimestamp
	}
	return wm
}

// monotonicEventTimePolicy treats every observed event timestamp as
// already in order: the watermark is simply the highest timestamp seen.
// Used by the "Basic advance" scenario in spec.md §8.
type monotonicEventTimePolicy struct {
	top int64
}

// NewMonotonicEventTimePolicyFn returns a NewPolicyFn producing fresh
// monotonic (zero-lag) policies.
func NewMonotonicEventTimePolicyFn() NewPolicyFn {
	return func() Policy {
		return &monotonicEventTimePolicy{top: MinTimestamp}
	}
}

func (p *monotonicEventTimePolicy) ReportEvent(eventTimestamp int64) {
	if eventTimestamp > p.top {
		p.top = eventTimestamp
	}
}

func (p *monotonicEventTimePolicy) CurrentWatermark() int64 {
	return p.top
}

// alwaysEmit never suppresses a strictly increasing candidate.
type alwaysEmit struct{}

// AlwaysEmit returns an EmissionPolicy that emits every candidate that is
// strictly greater than the last emitted value.
func AlwaysEmit() EmissionPolicy { return alwaysEmit{} }

func (alwaysEmit) ShouldEmit(candidate, lastEmitted int64) bool {
	return candidate > lastEmitted
}

// suppressSmallAdvances only emits once the candidate has advanced past
// lastEmitted by at least minStep, trading timeliness for fewer downstream
// watermark items.
type suppressSmallAdvances struct {
	minStep int64
}

// NewSuppressSmallAdvances returns an EmissionPolicy that suppresses a
// candidate unless it advances the watermark by at least minStep.
func NewSuppressSmallAdvances(minStep int64) EmissionPolicy {
	return suppressSmallAdvances{minStep: minStep}
}

func (s suppressSmallAdvances) ShouldEmit(candidate, lastEmitted int64) bool {
	return candidate >= lastEmitted+s.minStep
}
