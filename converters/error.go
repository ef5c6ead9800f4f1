package converters

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"

	"github.com/wippyai/graphwire/registry"
	"github.com/wippyai/graphwire/wire"
)

// Error is the decoded form of any encoded error.
// Cause holds a single wrapped error; Causes holds the members of a joined
// error such as one built by errors.Join.
type Error struct {
	Name       string
	Message    string
	StackTrace string
	Cause      error
	Causes     []error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether any member of Causes matches target.
func (e *Error) Is(target error) bool {
	for _, c := range e.Causes {
		if errors.Is(c, target) {
			return true
		}
	}
	return false
}

// Stack returns the stack trace text carried over from the encoded error.
func (e *Error) Stack() string { return e.StackTrace }

// ErrorName returns Name, so a re-encoded Error keeps its original name.
func (e *Error) ErrorName() string { return e.Name }

type stackTracer interface {
	StackTrace() errors.StackTrace
}

type stacker interface {
	Stack() string
}

type namer interface {
	ErrorName() string
}

type multiUnwrapper interface {
	Unwrap() []error
}

// ErrorDescriptor converts any error value.
func ErrorDescriptor() registry.Descriptor {
	return registry.TypeOf[error](TagError, encodeError, func(data any) (error, error) {
		e, err := decodeError(data)
		if err != nil {
			return nil, err
		}
		return e, nil
	})
}

func encodeError(err error, opts registry.EncodeOptions) (any, error) {
	payload := wire.ObjectOf(
		"name", errorName(err),
		"message", err.Error(),
	)
	if opts.Stack {
		if st := stackText(err); st != "" {
			payload.Set("stack", st)
		}
	}
	cause, causes := causesOf(err)
	if cause != nil {
		payload.Set("cause", cause)
	}
	if len(causes) > 0 {
		items := make([]any, len(causes))
		for i, c := range causes {
			items[i] = c
		}
		payload.Set("causes", items)
	}
	return payload, nil
}

func causesOf(err error) (error, []error) {
	if e, ok := err.(*Error); ok {
		return e.Cause, e.Causes
	}
	if m, ok := err.(multiUnwrapper); ok {
		var out []error
		for _, c := range m.Unwrap() {
			if c != nil {
				out = append(out, c)
			}
		}
		return nil, out
	}
	return errors.Unwrap(err), nil
}

func errorName(err error) string {
	if n, ok := err.(namer); ok {
		return n.ErrorName()
	}
	return reflect.TypeOf(err).String()
}

func stackText(err error) string {
	switch t := err.(type) {
	case stacker:
		return t.Stack()
	case stackTracer:
		return fmt.Sprintf("%s%+v", err.Error(), t.StackTrace())
	}
	return ""
}

func decodeError(data any) (*Error, error) {
	obj, err := properties(TagError, data)
	if err != nil {
		return nil, err
	}

	out := &Error{}
	if out.Name, err = stringField(TagError, obj, "name"); err != nil {
		return nil, err
	}
	if out.Message, err = stringField(TagError, obj, "message"); err != nil {
		return nil, err
	}
	if obj.Has("stack") {
		if out.StackTrace, err = stringField(TagError, obj, "stack"); err != nil {
			return nil, err
		}
	}
	if cause, ok := obj.Get("cause"); ok && cause != nil {
		c, ok := cause.(error)
		if !ok {
			return nil, errors.Errorf("%s: cause must decode to an error, got %T", TagError, cause)
		}
		out.Cause = c
	}
	if v, ok := obj.Get("causes"); ok && v != nil {
		items, ok := v.([]any)
		if !ok {
			return nil, errors.Errorf("%s: causes must be a list, got %T", TagError, v)
		}
		for i, item := range items {
			c, ok := item.(error)
			if !ok {
				return nil, errors.Errorf("%s: causes[%d] must decode to an error, got %T", TagError, i, item)
			}
			out.Causes = append(out.Causes, c)
		}
	}
	return out, nil
}
