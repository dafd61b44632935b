package watermark

// Watermark is the wire item meaning "no further events with timestamp <
// Timestamp are expected on this stream" (spec.md GLOSSARY).
type Watermark struct {
	Timestamp int64
}

// idleMessageType is a distinguished sentinel type; IdleMessage is its one
// value. Downstream coalescers (external to this core, spec.md §5) treat
// the emitting ordinal as excluded from the min-watermark computation
// until a subsequent non-idle Watermark resumes it.
type idleMessageType struct{}

// IdleMessage is the sentinel emitted when every partition owned by this
// source instance is idle (or there are none).
var IdleMessage = idleMessageType{}

// BroadcastKey wraps an external partition key for state-snapshot
// purposes. External partitions don't align with engine partitions, so
// snapshot entries are broadcast at restore time: every processor
// instance observes every key and keeps only the partitions it now owns
// (spec.md §4.3, §9.1 "Broadcast-key snapshot semantics").
type BroadcastKey struct {
	Key any
}

// Broadcast wraps key as a BroadcastKey.
func Broadcast(key any) BroadcastKey {
	return BroadcastKey{Key: key}
}
