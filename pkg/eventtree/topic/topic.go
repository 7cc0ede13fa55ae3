// Package topic formats namespaced event names and node paths.
//
// Names are segments joined by a delimiter, "/" by default:
//
//	widget/click
//	panel/toolbar/save
//
// The delimiter lives in a Namespace value. Components that format names are
// given a Namespace explicitly; Default returns one built from the
// process-wide default delimiter, which SetDefaultDelimiter changes for every
// Namespace created afterwards. Treat that call as startup configuration.
package topic

import (
	"errors"
	"strings"
	"sync/atomic"
)

// DefaultDelimiter is the delimiter used until SetDefaultDelimiter is called.
const DefaultDelimiter = "/"

// ErrEmptyDelimiter indicates an empty delimiter was supplied.
var ErrEmptyDelimiter = errors.New("delimiter cannot be empty")

var defaultDelimiter atomic.Pointer[string]

func init() {
	d := DefaultDelimiter
	defaultDelimiter.Store(&d)
}

// SetDefaultDelimiter replaces the process-wide default delimiter.
// Namespaces already created keep the delimiter they were built with.
//
// Panics if d is empty.
func SetDefaultDelimiter(d string) {
	if err := Validate(d); err != nil {
		panic("topic: " + err.Error())
	}
	defaultDelimiter.Store(&d)
}

// CurrentDelimiter returns the process-wide default delimiter.
func CurrentDelimiter() string {
	return *defaultDelimiter.Load()
}

// Validate returns ErrEmptyDelimiter if d cannot be used as a delimiter.
func Validate(d string) error {
	if d == "" {
		return ErrEmptyDelimiter
	}
	return nil
}

// Namespace joins and splits names with a fixed delimiter.
// The zero value uses DefaultDelimiter.
type Namespace struct {
	delim string
}

// New returns a Namespace using delimiter d.
//
// Panics if d is empty.
func New(d string) Namespace {
	if err := Validate(d); err != nil {
		panic("topic: " + err.Error())
	}
	return Namespace{delim: d}
}

// Default returns a Namespace using the current process-wide delimiter.
func Default() Namespace {
	return Namespace{delim: CurrentDelimiter()}
}

// Delimiter returns the separator between segments.
func (n Namespace) Delimiter() string {
	if n.delim == "" {
		return DefaultDelimiter
	}
	return n.delim
}

// Join joins non-empty parts with the delimiter.
//
// Example: Join("widget", "click") -> "widget/click"
func (n Namespace) Join(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, n.Delimiter())
}

// Split returns the segments of name. An empty name has no segments.
func (n Namespace) Split(name string) []string {
	if name == "" {
		return nil
	}
	return strings.Split(name, n.Delimiter())
}

// Parent returns name without its last segment, or "" if it has only one.
//
// Example: Parent("panel/toolbar/save") -> "panel/toolbar"
func (n Namespace) Parent(name string) string {
	idx := strings.LastIndex(name, n.Delimiter())
	if idx < 0 {
		return ""
	}
	return name[:idx]
}

// Base returns the last segment of name.
func (n Namespace) Base(name string) string {
	d := n.Delimiter()
	idx := strings.LastIndex(name, d)
	if idx < 0 {
		return name
	}
	return name[idx+len(d):]
}

// HasPrefix reports whether name equals prefix or starts with prefix
// followed by the delimiter. Partial segments never match.
func (n Namespace) HasPrefix(name, prefix string) bool {
	if prefix == "" || name == prefix {
		return true
	}
	return strings.HasPrefix(name, prefix+n.Delimiter())
}
