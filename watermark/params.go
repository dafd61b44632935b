package watermark

import "time"

// TimestampFn extracts an event-time timestamp (epoch millis) from an item.
type TimestampFn[T any] func(item T) int64

// GenerationParams bundles everything a WatermarkSourceUtil needs to turn
// a stream of per-partition events into a coalesced watermark stream
// (spec.md §3, WatermarkGenerationParams).
type GenerationParams[T any] struct {
	timestampFn    TimestampFn[T]
	newPolicyFn    NewPolicyFn
	emissionPolicy EmissionPolicy
	idleTimeout    time.Duration
}

// NewGenerationParams builds GenerationParams with the given timestamp
// extractor and policy factory; chain With* calls to override the
// defaults (AlwaysEmit emission policy, no idle timeout), mirroring the
// teacher's Options-builder idiom (log.Options, stream.EnvironmentOptions).
func NewGenerationParams[T any](timestampFn TimestampFn[T], newPolicyFn NewPolicyFn) *GenerationParams[T] {
	return &GenerationParams[T]{
		timestampFn:    timestampFn,
		newPolicyFn:    newPolicyFn,
		emissionPolicy: AlwaysEmit(),
		idleTimeout:    0,
	}
}

// WithEmissionPolicy overrides the default AlwaysEmit policy.
func (p *GenerationParams[T]) WithEmissionPolicy(policy EmissionPolicy) *GenerationParams[T] {
	p.emissionPolicy = policy
	return p
}

// WithIdleTimeout sets the duration of no events after which a partition
// is considered idle. Zero (the default) disables idle detection: a
// partition with no events simply holds the watermark back forever.
func (p *GenerationParams[T]) WithIdleTimeout(timeout time.Duration) *GenerationParams[T] {
	p.idleTimeout = timeout
	return p
}
