package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// TimeOfDay is minutes since midnight.
type TimeOfDay int

// ParseTimeOfDay accepts "HH:MM" and "HH:MM:SS". Seconds are dropped.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}

	var fields [3]int
	for i, p := range parts {
		if len(p) != 2 {
			return 0, fmt.Errorf("invalid time of day %q", s)
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid time of day %q", s)
		}
		fields[i] = n
	}
	if fields[0] > 23 || fields[1] > 59 || fields[2] > 59 {
		return 0, fmt.Errorf("time of day %q out of range", s)
	}
	return TimeOfDay(fields[0]*60 + fields[1]), nil
}

func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TimeOfDay) Minutes() int {
	return int(t)
}

func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	if t < 0 || t >= minutesPerDay {
		return nil, fmt.Errorf("time of day %d out of range", int(t))
	}
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(b []byte) error {
	v, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// TimeWindow is a [Start, End) range on a single day.
type TimeWindow struct {
	Date  string    `json:"date"`
	Start TimeOfDay `json:"start_time"`
	End   TimeOfDay `json:"end_time"`
}

// NewTimeWindow validates the date (YYYY-MM-DD), both times and End > Start.
func NewTimeWindow(date, start, end string) (TimeWindow, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return TimeWindow{}, fmt.Errorf("invalid date %q", date)
	}
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return TimeWindow{}, err
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return TimeWindow{}, err
	}
	if e <= s {
		return TimeWindow{}, fmt.Errorf("end %s is not after start %s", e, s)
	}
	return TimeWindow{Date: date, Start: s, End: e}, nil
}

// Duration in minutes.
func (w TimeWindow) Duration() int {
	return int(w.End - w.Start)
}

func (w TimeWindow) String() string {
	return w.Start.String() + " - " + w.End.String()
}
