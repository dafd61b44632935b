package transform

import "github.com/TomaszGaweda/hazelcast-jet/dag"

// Source is a transform with no upstream: a processor-supplier plus
// watermark-generation params (spec.md §3). WatermarkParams is an opaque
// value — concrete generation parameters live in package watermark and
// are threaded through untouched, since this package must not depend on
// any particular event type T.
type Source struct {
	Header
	ProcessorMetaSupplier dag.ProcessorMetaSupplier
	WatermarkParams       any
}

// NewSource builds a Source transform. watermarkParams is typically a
// *watermark.GenerationParams[T]; it is carried opaquely and handed to
// the execution runtime, which alone knows T.
func NewSource(name string, metaSupplier dag.ProcessorMetaSupplier, watermarkParams any) *Source {
	return &Source{
		Header:                NewHeader(name, nil),
		ProcessorMetaSupplier: metaSupplier,
		WatermarkParams:       watermarkParams,
	}
}

// AddToDag materializes the single source vertex (spec.md §4.4).
func (s *Source) AddToDag(ctx Context) error {
	name := ctx.VertexName(s.Name(), "")
	_, err := ctx.AddVertex(s, name, s.ProcessorMetaSupplier)
	return err
}
