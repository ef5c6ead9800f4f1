package transcoder

// DefaultMaxDepth bounds nesting for both directions.
const DefaultMaxDepth = 10000

type encodeConfig struct {
	maxDepth int
	stack    bool
}

func defaultEncodeConfig() encodeConfig {
	return encodeConfig{maxDepth: DefaultMaxDepth, stack: true}
}

// EncodeOption configures an Encoder.
type EncodeOption func(*encodeConfig)

// WithStack controls whether converters include stack trace text in their
// payloads. Defaults to true.
func WithStack(enabled bool) EncodeOption {
	return func(c *encodeConfig) { c.stack = enabled }
}

// WithMaxDepth sets the nesting limit for encoding. Values < 1 are ignored.
func WithMaxDepth(n int) EncodeOption {
	return func(c *encodeConfig) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

type decodeConfig struct {
	maxDepth  int
	plainMaps bool
}

func defaultDecodeConfig() decodeConfig {
	return decodeConfig{maxDepth: DefaultMaxDepth}
}

// DecodeOption configures a Decoder.
type DecodeOption func(*decodeConfig)

// WithPlainMaps decodes object nodes into map[string]any instead of
// *wire.Object. Property order is lost.
func WithPlainMaps(enabled bool) DecodeOption {
	return func(c *decodeConfig) { c.plainMaps = enabled }
}

// WithDecodeMaxDepth sets the nesting limit for decoding. Values < 1 are ignored.
func WithDecodeMaxDepth(n int) DecodeOption {
	return func(c *decodeConfig) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}
