// Package graphwire serializes Go object graphs, cycles and shared references
// included, into a JSON-friendly tree and back.
//
// Every composite value gets an integer id the first time it is seen. Later
// occurrences become back-references, so the decoded graph has the same
// shape as the original: a value reachable along two paths is one value
// after decoding, and a self-referencing value refers to itself again.
//
//	{"id": 1, "tag": "object", "data": {"self": {"ref": 1}}}
//
// Values that are not plain data (errors, dates, patterns, your own types)
// travel through converters registered under a tag.
//
// # Architecture Overview
//
//	graphwire/           Root package with the default registry and helpers
//	├── transcoder/      Encoder and Decoder
//	├── registry/        Tag to converter mapping
//	├── converters/      Built-in Error, Date, RegExp and GoRegexp converters
//	├── wire/            Node and Ref types, ordered Object, JSON and structpb codecs
//	├── refs/            Identity table and decode slots
//	├── pattern/         Regular expressions with flags and a match cursor
//	├── config/          YAML and environment configuration
//	├── observability/   Logger construction
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
//	data := graphwire.NewObject()
//	data.Set("self", data)
//
//	b, err := graphwire.Marshal(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := graphwire.Unmarshal(b)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Custom Types
//
//	graphwire.MustRegisterType(registry.Self("Person", decodePerson))
//
// Converters registered later take precedence when more than one recognizes
// a value. Encoding a registered type and decoding on a side that lacks the
// converter fails with an unknown_tag error.
package graphwire
