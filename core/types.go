package core

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	DateFormat      = "2006-01-02"
	TimeOfDayFormat = "15:04"
)

// Date is a calendar date with a fixed "YYYY-MM-DD" wire format.
type Date struct{ time.Time }

func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return Date{}, errors.Wrapf(err, "parsing date %q", s)
	}
	return Date{t}, nil
}

func (d Date) String() string { return d.Format(DateFormat) }

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	dd, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = dd
	return nil
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

func (d *Date) Scan(v interface{}) error {
	switch x := v.(type) {
	case time.Time:
		*d = NewDate(x)
		return nil
	case []byte:
		dd, err := ParseDate(string(x))
		if err != nil {
			return err
		}
		*d = dd
		return nil
	case string:
		dd, err := ParseDate(x)
		if err != nil {
			return err
		}
		*d = dd
		return nil
	case nil:
		d.Time = time.Time{}
		return nil
	default:
		return errors.Errorf("date: unsupported Scan type %T", v)
	}
}

// TimeOfDay is a wall-clock time with a fixed "HH:MM" wire format;
// the date and zone parts are discarded.
type TimeOfDay struct{ time.Time }

func NewTimeOfDay(t time.Time) TimeOfDay {
	return TimeOfDay{time.Date(0, 1, 1, t.Hour(), t.Minute(), 0, 0, time.UTC)}
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if len(s) == len("15:04:05") { // tolerate DB "HH:MM:SS"
		s = s[:len(TimeOfDayFormat)]
	}
	t, err := time.Parse(TimeOfDayFormat, s)
	if err != nil {
		return TimeOfDay{}, errors.Wrapf(err, "parsing time %q", s)
	}
	return TimeOfDay{t}, nil
}

func (t TimeOfDay) String() string { return t.Format(TimeOfDayFormat) }

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	tt, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = tt
	return nil
}

func (t TimeOfDay) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Format("15:04:05"), nil
}

func (t *TimeOfDay) Scan(v interface{}) error {
	switch x := v.(type) {
	case time.Time:
		*t = NewTimeOfDay(x)
		return nil
	case []byte:
		tt, err := ParseTimeOfDay(string(x))
		if err != nil {
			return err
		}
		*t = tt
		return nil
	case string:
		tt, err := ParseTimeOfDay(x)
		if err != nil {
			return err
		}
		*t = tt
		return nil
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return errors.Errorf("timeofday: unsupported Scan type %T", v)
	}
}
