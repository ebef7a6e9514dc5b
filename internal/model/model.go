// Package model defines the console's records and the forms used to create
// and edit them.
package model

import (
	"time"
)

// TimestampLayout is the creation-time format stored on every record:
// UTC with millisecond precision, e.g. 2024-05-01T09:30:00.000Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// DateLayout and TimeLayout are the visit date and time formats.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Entity is implemented by every stored record.
type Entity interface {
	GetID() string
	GetCreatedAt() string
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// set returns the patched value when present.
func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
