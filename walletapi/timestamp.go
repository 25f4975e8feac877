package walletapi

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Timestamp decodes the zone-less date-times the wallet API emits. Values the
// API sends in a shape we do not recognise decode as the zero time rather
// than failing the whole payload.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func ParseTimestamp(s string) (Timestamp, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Timestamp{t}, true
		}
	}
	return Timestamp{}, false
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = Timestamp{}
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*t = Timestamp{}
			return nil
		}
		*t, _ = ParseTimestamp(s)
	case '[':
		// [year, month, day, hour, minute, second, nanos]
		var parts []int
		if err := json.Unmarshal(b, &parts); err != nil || len(parts) < 3 {
			*t = Timestamp{}
			return nil
		}
		for len(parts) < 7 {
			parts = append(parts, 0)
		}
		*t = Timestamp{time.Date(parts[0], time.Month(parts[1]), parts[2], parts[3], parts[4], parts[5], parts[6], time.Local)}
	default:
		var ms int64
		if err := json.Unmarshal(b, &ms); err != nil {
			*t = Timestamp{}
			return nil
		}
		*t = Timestamp{time.UnixMilli(ms)}
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format("2006-01-02T15:04:05"))
}

// Display formats the timestamp for tables, "N/A" when unknown.
func (t Timestamp) Display() string {
	if t.IsZero() {
		return NotAvailable
	}
	return t.Format("02 Jan 2006, 15:04")
}

// DateOnly formats the date part, "N/A" when unknown.
func (t Timestamp) DateOnly() string {
	if t.IsZero() {
		return NotAvailable
	}
	return t.Format("02 Jan 2006")
}
