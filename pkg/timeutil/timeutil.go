package timeutil

import (
	"time"
)

// Fallback is shown whenever a stored timestamp is absent or unreadable.
const Fallback = "Nenurodyta"

const displayLayout = "2006-01-02 15:04"

// Normalize converts the timestamp shapes found across stored documents into a
// single display string. Accepted inputs: time.Time (value or pointer), a raw
// timestamp map carrying whole epoch seconds, bare epoch-second numbers, an
// already formatted string, or nothing at all. Non-empty strings that do not
// parse are treated as already formatted and returned verbatim; every other
// unreadable value becomes Fallback. It never panics.
func Normalize(v interface{}) string {
	if t, ok := AsTime(v); ok {
		return t.Local().Format(displayLayout)
	}
	if s, ok := v.(string); ok {
		return normalizeString(s)
	}
	return Fallback
}

// AsTime converts the same stored shapes Normalize accepts into a concrete
// time. The second return is false when the value carries no usable time.
func AsTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed, true
		}
		for _, layout := range []string{displayLayout, "2006-01-02"} {
			if parsed, err := time.ParseInLocation(layout, t, time.Local); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	case int:
		return fromSecondsTime(int64(t))
	case int64:
		return fromSecondsTime(t)
	case float64:
		return fromSecondsTime(int64(t))
	case map[string]interface{}:
		if secs, ok := t["seconds"]; ok {
			return AsTime(secs)
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

func normalizeString(s string) string {
	if s == "" {
		return Fallback
	}
	// Assume the caller stored an already formatted value.
	return s
}

func fromSecondsTime(secs int64) (time.Time, bool) {
	if secs <= 0 {
		return time.Time{}, false
	}
	return time.Unix(secs, 0), true
}
