package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	regionalDate = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})(?:[ T,]+(\d{1,2}):(\d{2})(?::(\d{2}))?)?$`)
	localISODate = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})(?:[ T](\d{1,2}):(\d{2})(?::(\d{2})(?:\.\d+)?)?)?$`)
	leadingISO   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
)

var genericLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	time.RFC1123Z,
	time.RFC1123,
	time.ANSIC,
}

// ParseDate accepts the date dialects found in the upstream schema. Zone-less
// strings are built in loc so that a date-only value never shifts a day.
// Numbers are read as Unix milliseconds.
func ParseDate(raw any, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	switch v := raw.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v.In(loc), true
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return v.In(loc), true
	case string:
		return parseDateString(v, loc)
	case []byte:
		return parseDateString(string(v), loc)
	}
	if ms, ok := Float(raw); ok && ms > 0 {
		return time.UnixMilli(int64(ms)).In(loc), true
	}
	return time.Time{}, false
}

// DatePtr is ParseDate for optional fields.
func DatePtr(raw any, loc *time.Location) *time.Time {
	t, ok := ParseDate(raw, loc)
	if !ok {
		return nil
	}
	return &t
}

func parseDateString(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if m := regionalDate.FindStringSubmatch(s); m != nil {
		if t, ok := buildLocal(m[3], m[2], m[1], m[4], m[5], m[6], loc); ok {
			return t, true
		}
	}
	if m := localISODate.FindStringSubmatch(s); m != nil {
		if t, ok := buildLocal(m[1], m[2], m[3], m[4], m[5], m[6], loc); ok {
			return t, true
		}
	}
	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(loc), true
		}
	}
	if m := leadingISO.FindStringSubmatch(s); m != nil {
		if t, ok := buildLocal(m[1], m[2], m[3], "", "", "", loc); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func buildLocal(year, month, day, hour, minute, second string, loc *time.Location) (time.Time, bool) {
	y, _ := strconv.Atoi(year)
	mo, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	h, _ := strconv.Atoi(hour)
	mi, _ := strconv.Atoi(minute)
	se, _ := strconv.Atoi(second)
	if mo < 1 || mo > 12 || d < 1 || h > 23 || mi > 59 || se > 59 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(mo), d, h, mi, se, 0, loc)
	if t.Day() != d || int(t.Month()) != mo {
		return time.Time{}, false
	}
	return t, true
}
