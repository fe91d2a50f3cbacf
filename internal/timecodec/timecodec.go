// Package timecodec converts between local wall-clock instants and the
// backend's UTC-naive wire timestamps.
package timecodec

import (
	"fmt"
	"time"
)

// WireLayout is the backend timestamp format: UTC, whole seconds, no zone
// suffix.
const WireLayout = "2006-01-02T15:04:05"

const (
	displayLayout = "January 2, 2006 15:04"
	notSet        = "Not set"
)

// Codec encodes and decodes wire timestamps. The location it renders local
// times in is injected so tests can pin a fixed offset instead of depending
// on the host timezone.
type Codec struct {
	loc *time.Location
}

// New returns a codec rendering local times in loc. A nil loc means the
// system's local timezone.
func New(loc *time.Location) *Codec {
	if loc == nil {
		loc = time.Local
	}
	return &Codec{loc: loc}
}

// Location returns the codec's local timezone.
func (c *Codec) Location() *time.Location {
	return c.loc
}

// Encode converts an absolute instant to the wire format. Sub-second
// precision is truncated, not rounded.
func (c *Codec) Encode(t time.Time) string {
	return t.Truncate(time.Second).UTC().Format(WireLayout)
}

// Decode reinterprets a UTC-naive wire string as UTC and returns the
// equivalent instant expressed in the codec's location. Strings carrying
// zone information are a caller contract violation and fail to parse.
func (c *Codec) Decode(s string) (time.Time, error) {
	t, err := time.ParseInLocation(WireLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse wire timestamp %q: %w", s, err)
	}
	return t.In(c.loc), nil
}

// EncodeOptional encodes a possibly-absent instant.
func (c *Codec) EncodeOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := c.Encode(*t)
	return &s
}

// DecodeOptional decodes a possibly-absent wire string.
func (c *Codec) DecodeOptional(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := c.Decode(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDisplay renders an instant as a long-form local date and time, or
// the "Not set" sentinel when absent.
func (c *Codec) FormatDisplay(t *time.Time) string {
	if t == nil {
		return notSet
	}
	return t.In(c.loc).Format(displayLayout)
}

// FormatWire renders a wire string for display. Empty or malformed input
// falls back to the sentinel.
func (c *Codec) FormatWire(s string) string {
	if s == "" {
		return notSet
	}
	t, err := c.Decode(s)
	if err != nil {
		return notSet
	}
	return c.FormatDisplay(&t)
}
