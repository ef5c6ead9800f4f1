// Package registry holds the table of type converters consulted by the
// encoder and the decoder.
//
// A converter is described by a Descriptor: a tag naming it on the wire, a
// recognizer used while encoding, and the encode/decode pair that maps a
// value to a plain payload and back.
//
// # Precedence
//
// Recognizers are tried most-recently-registered first. A converter for a
// narrow type registered after a general one (for example a specific error
// type after the generic error converter) takes precedence over it.
//
// # Lifecycle
//
// Registries are append-only. Register converters at startup, before any
// encode or decode traffic; reads are safe for concurrent use.
//
//	reg := registry.New()
//	reg.MustRegister(registry.TypeOf("Point",
//	    func(p *Point, _ registry.EncodeOptions) (any, error) { ... },
//	    func(data any) (*Point, error) { ... },
//	))
//
// Both ends of a round trip must register the same tags.
package registry
