package scan

import (
	"encoding/json"
	"strings"
	"time"
)

// messageType is the only frame type the device feed emits for badge and
// face scans; everything else on the socket is chatter and gets dropped.
const messageType = "client_message"

// Event is the canonical form of a device scan frame. The raw wire shape
// is normalized at parse time so the rest of the pipeline never sees the
// device quirks.
type Event struct {
	EmployeeNo string    `json:"employeeNo"`
	OccurredAt time.Time `json:"occurredAt"`
	Received   time.Time `json:"received"`
}

// Date returns the attendance date for the event.
func (e Event) Date() string {
	return e.OccurredAt.Format("2006-01-02")
}

type envelope struct {
	Type    string   `json:"type"`
	Payload *payload `json:"payload"`
}

// payload can arrive double-wrapped: some firmware versions nest the real
// fields one level deeper under payload.payload.
type payload struct {
	EmployeeNo string   `json:"employeeNo"`
	Datetime   string   `json:"datetime"`
	DateTime   string   `json:"dateTime"`
	Timestamp  string   `json:"timestamp"`
	Payload    *payload `json:"payload"`
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parse decodes a device frame into a canonical Event. It returns a
// KindParse error for frames that are not JSON or do not carry the scan
// message type; callers are expected to drop those with a log line only.
//
// The timestamp is taken with priority datetime > dateTime >
// payload.timestamp, falling back to now when none parses. Note the
// timestamp field lives on the outer payload even when the rest of the
// fields are double-wrapped.
func Parse(data []byte, now func() time.Time) (Event, error) {
	if now == nil {
		now = time.Now
	}

	var msg envelope
	if err := json.Unmarshal(data, &msg); err != nil {
		return Event{}, E(KindParse, err)
	}
	if msg.Type != messageType {
		return Event{}, Errorf(KindParse, "unrecognized frame type %q", msg.Type)
	}
	if msg.Payload == nil {
		return Event{}, Errorf(KindParse, "frame has no payload")
	}

	raw := msg.Payload
	if raw.Payload != nil {
		raw = raw.Payload
	}

	received := now()
	occurred := received
	for _, s := range []string{raw.Datetime, raw.DateTime, msg.Payload.Timestamp} {
		if s == "" {
			continue
		}
		if t, ok := parseTime(s); ok {
			occurred = t
			break
		}
	}

	return Event{
		EmployeeNo: strings.TrimSpace(raw.EmployeeNo),
		OccurredAt: occurred,
		Received:   received,
	}, nil
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
