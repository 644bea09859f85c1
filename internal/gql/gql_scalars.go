package gql

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateOnlyLayout = "2006-01-02"

// DateTime is the DateTime scalar. It serializes as RFC 3339 and accepts
// either RFC 3339 or a bare calendar date on input.
type DateTime struct {
	time.Time
}

func (DateTime) ImplementsGraphQLType(name string) bool {
	return name == "DateTime"
}

func (d *DateTime) UnmarshalGraphQL(input interface{}) error {
	switch v := input.(type) {
	case string:
		t, err := parseDateTime(v)
		if err != nil {
			return err
		}
		d.Time = t
		return nil
	case time.Time:
		d.Time = v
		return nil
	default:
		return fmt.Errorf("wrong type for DateTime: %T", input)
	}
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.UTC().Format(time.RFC3339))
}

func parseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateOnlyLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid DateTime %q: expected RFC 3339 or YYYY-MM-DD", s)
	}
	return t, nil
}

func newDateTime(t time.Time) DateTime {
	return DateTime{Time: t}
}

func optionalDateTime(t *time.Time) *DateTime {
	if t == nil {
		return nil
	}
	d := newDateTime(*t)
	return &d
}

func (d *DateTime) timePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
