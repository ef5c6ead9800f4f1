package converters

import (
	"regexp"

	"github.com/pkg/errors"

	"github.com/wippyai/graphwire/pattern"
	"github.com/wippyai/graphwire/registry"
	"github.com/wippyai/graphwire/wire"
)

// RegExpDescriptor converts *pattern.Pattern, cursor included.
func RegExpDescriptor() registry.Descriptor {
	return registry.TypeOf(TagRegExp,
		func(p *pattern.Pattern, _ registry.EncodeOptions) (any, error) {
			return wire.ObjectOf(
				"source", p.Source(),
				"flags", p.Flags(),
				"lastIndex", p.LastIndex(),
			), nil
		},
		decodePattern,
	)
}

func decodePattern(data any) (*pattern.Pattern, error) {
	obj, err := properties(TagRegExp, data)
	if err != nil {
		return nil, err
	}
	source, err := stringField(TagRegExp, obj, "source")
	if err != nil {
		return nil, err
	}
	flags, err := stringField(TagRegExp, obj, "flags")
	if err != nil {
		return nil, err
	}

	p, err := pattern.Compile(source, flags)
	if err != nil {
		return nil, errors.Wrap(err, TagRegExp)
	}
	if v, ok := obj.Get("lastIndex"); ok {
		idx, ok := toInt64(v)
		if !ok {
			return nil, errors.Errorf("%s: lastIndex must be an integer, got %v", TagRegExp, v)
		}
		p.SetLastIndex(int(idx))
	}
	return p, nil
}

// GoRegexpDescriptor converts *regexp.Regexp by its source text.
func GoRegexpDescriptor() registry.Descriptor {
	return registry.TypeOf(TagGoRegexp,
		func(re *regexp.Regexp, _ registry.EncodeOptions) (any, error) {
			return wire.ObjectOf("source", re.String()), nil
		},
		func(data any) (*regexp.Regexp, error) {
			obj, err := properties(TagGoRegexp, data)
			if err != nil {
				return nil, err
			}
			source, err := stringField(TagGoRegexp, obj, "source")
			if err != nil {
				return nil, err
			}
			re, err := regexp.Compile(source)
			if err != nil {
				return nil, errors.Wrap(err, TagGoRegexp)
			}
			return re, nil
		},
	)
}
