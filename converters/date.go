package converters

import (
	"time"

	"github.com/pkg/errors"

	"github.com/wippyai/graphwire/registry"
)

// DateDescriptor converts time.Time to Unix milliseconds. Decoded times are
// in UTC; sub-millisecond precision and the location are not kept.
func DateDescriptor() registry.Descriptor {
	return registry.TypeOf(TagDate,
		func(t time.Time, _ registry.EncodeOptions) (any, error) {
			return t.UnixMilli(), nil
		},
		func(data any) (time.Time, error) {
			ms, ok := toInt64(data)
			if !ok {
				return time.Time{}, errors.Errorf("%s: payload must be integral milliseconds, got %v", TagDate, data)
			}
			return time.UnixMilli(ms).UTC(), nil
		},
	)
}
