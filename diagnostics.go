package flatten

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tdewolff/flatten/svg"
)

// Severity is the severity of a Diagnostic.
type Severity int

// Severity values.
const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Diagnostic is a message about one element.
type Diagnostic struct {
	Severity Severity
	Tag      string
	ID       string
	Msg      string
	Err      error
}

func (d Diagnostic) String() string {
	sb := strings.Builder{}
	sb.WriteString(d.Severity.String())
	sb.WriteString(": <")
	sb.WriteString(d.Tag)
	if d.ID != "" {
		fmt.Fprintf(&sb, " id=%q", d.ID)
	}
	sb.WriteString(">: ")
	sb.WriteString(d.Msg)
	if d.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(d.Err.Error())
	}
	return sb.String()
}

// Diagnostics collects the messages of a Flatten call in document order.
type Diagnostics []Diagnostic

func (ds *Diagnostics) add(sev Severity, n *svg.Node, msg string, err error) {
	d := Diagnostic{
		Severity: sev,
		Tag:      n.Tag,
		ID:       n.ID(),
		Msg:      msg,
		Err:      err,
	}
	*ds = append(*ds, d)

	attrs := []any{slog.String("tag", d.Tag)}
	if d.ID != "" {
		attrs = append(attrs, slog.String("id", d.ID))
	}
	if err != nil {
		attrs = append(attrs, slog.Any("err", err))
	}
	if sev == Error {
		Logger().Error(msg, attrs...)
	} else {
		Logger().Warn(msg, attrs...)
	}
}

func (ds *Diagnostics) warn(n *svg.Node, msg string) {
	ds.add(Warning, n, msg, nil)
}

func (ds *Diagnostics) fail(n *svg.Node, err error) {
	ds.add(Error, n, "cannot flatten element", err)
}

// Warnings returns the diagnostics of severity Warning.
func (ds Diagnostics) Warnings() Diagnostics {
	return ds.filter(Warning)
}

// Errors returns the diagnostics of severity Error.
func (ds Diagnostics) Errors() Diagnostics {
	return ds.filter(Error)
}

func (ds Diagnostics) filter(sev Severity) Diagnostics {
	r := Diagnostics{}
	for _, d := range ds {
		if d.Severity == sev {
			r = append(r, d)
		}
	}
	return r
}

// Err joins the errors of all diagnostics of severity Error, or returns nil.
func (ds Diagnostics) Err() error {
	errs := []error{}
	for _, d := range ds {
		if d.Severity == Error {
			errs = append(errs, fmt.Errorf("<%s>: %w", d.Tag, d.Err))
		}
	}
	return errors.Join(errs...)
}
