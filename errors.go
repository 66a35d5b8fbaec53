package flatten

import (
	"fmt"
)

// ParseError is returned for malformed transform arguments, path data or numeric shape attributes.
type ParseError struct {
	Func  string // transform function, if any
	Attr  string // attribute, if any
	Value string // offending raw text
	Err   error
}

func (e *ParseError) Error() string {
	msg := ""
	if e.Func != "" {
		msg = fmt.Sprintf("invalid %s arguments: %q", e.Func, e.Value)
	} else if e.Attr != "" {
		msg = fmt.Sprintf("invalid %s attribute: %q", e.Attr, e.Value)
	} else {
		msg = fmt.Sprintf("invalid transform: %q", e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnsupportedTransformError is returned for transform functions other than translate, rotate and scale.
type UnsupportedTransformError struct {
	Func string
}

func (e *UnsupportedTransformError) Error() string {
	return fmt.Sprintf("unsupported transform function: %s", e.Func)
}

// UnsupportedElementError is returned by FlattenElement for elements whose geometry cannot be flattened. Flatten reports it as a warning and leaves the element as is.
type UnsupportedElementError struct {
	Tag string
}

func (e *UnsupportedElementError) Error() string {
	return fmt.Sprintf("unsupported element: %s", e.Tag)
}
