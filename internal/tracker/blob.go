package tracker

import (
	"encoding/json"
	"strings"
	"time"
)

// legacyDateLayout is the en-US date format older state files store the
// rollover marker in.
const legacyDateLayout = "1/2/2006"

type blob struct {
	ExercisesOwed   int          `json:"exercisesOwed"`
	Log             []blobEntry  `json:"log"`
	LastCheckedDate *string      `json:"lastCheckedDate"`
	NextUpQueue     []QueueEntry `json:"nextUpQueue"`
}

type blobEntry struct {
	Timestamp  string `json:"timestamp"`
	ExerciseID string `json:"id"`
	Title      string `json:"title"`
	Note       string `json:"note"`
}

// EncodeState renders s in the interchange format.
func EncodeState(s *State) ([]byte, error) {
	b := blob{
		ExercisesOwed:   s.Ledger.Owed,
		Log:             make([]blobEntry, 0, len(s.Log)),
		LastCheckedDate: s.Ledger.LastCheckedDate,
		NextUpQueue:     append([]QueueEntry{}, s.Queue...),
	}
	for _, e := range s.Log {
		b.Log = append(b.Log, blobEntry{
			Timestamp:  FormatTimestamp(e.Timestamp),
			ExerciseID: e.ExerciseID,
			Title:      e.Title,
			Note:       e.Note,
		})
	}
	return json.MarshalIndent(b, "", "  ")
}

// DecodeState reads the interchange format. Every field defaults on its own
// when it is missing or malformed, log entries with unreadable timestamps are
// dropped, and data that is not a JSON object yields NewState.
func DecodeState(data []byte) *State {
	st := NewState()
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return st
	}
	if raw, ok := fields["exercisesOwed"]; ok {
		var owed *int
		if err := json.Unmarshal(raw, &owed); err == nil && owed != nil {
			st.Ledger.Owed = *owed
		}
	}
	if raw, ok := fields["log"]; ok {
		var entries []blobEntry
		if err := json.Unmarshal(raw, &entries); err == nil {
			for _, e := range entries {
				ts, err := ParseTimestamp(e.Timestamp)
				if err != nil {
					continue
				}
				st.Log = append(st.Log, LogEntry{Timestamp: ts, ExerciseID: e.ExerciseID, Title: e.Title, Note: e.Note})
			}
		}
	}
	if raw, ok := fields["lastCheckedDate"]; ok {
		var d *string
		if err := json.Unmarshal(raw, &d); err == nil && d != nil {
			norm := NormalizeDate(*d)
			st.Ledger.LastCheckedDate = &norm
		}
	}
	if raw, ok := fields["nextUpQueue"]; ok {
		var q []QueueEntry
		if err := json.Unmarshal(raw, &q); err == nil {
			st.Queue = q
		}
	}
	st.Normalize()
	return st
}

// NormalizeDate converts a legacy M/D/YYYY marker to YYYY-MM-DD. Other values
// are returned trimmed.
func NormalizeDate(d string) string {
	d = strings.TrimSpace(d)
	if t, err := time.Parse(legacyDateLayout, d); err == nil {
		return t.Format(DateLayout)
	}
	return d
}

// FormatTimestamp renders t as a UTC ISO-8601 instant with milliseconds.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// ParseTimestamp reads an RFC 3339 instant with or without fractional seconds.
func ParseTimestamp(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
