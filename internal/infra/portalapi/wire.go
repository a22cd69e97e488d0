package portalapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"newspulse/internal/observability/logging"
)

// flexString accepts a JSON string or number.
// The backend serializes news IDs either way depending on the endpoint.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number: %w", err)
	}
	*f = flexString(n.String())
	return nil
}

// localLayouts are tried for timestamps without a zone offset.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// parseTime reads RFC 3339 or an offset-less local date time in loc.
// An empty string yields nil.
func parseTime(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return &t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return &t, nil
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		t := time.UnixMilli(ms).In(loc)
		return &t, nil
	}
	return nil, fmt.Errorf("unrecognized timestamp %q", s)
}

// optionalTime parses s like parseTime but logs and returns nil for values
// it cannot read.
func (c *Client) optionalTime(ctx context.Context, op, field, s string) *time.Time {
	t, err := parseTime(s, c.location)
	if err != nil {
		logging.FromContext(ctx).Warn("ignoring unreadable timestamp",
			slog.String("operation", op),
			slog.String("field", field),
			slog.Any("error", err))
		return nil
	}
	return t
}

// timeString accepts a JSON string or an epoch-millis number.
type timeString string

func (t *timeString) UnmarshalJSON(data []byte) error {
	var f flexString
	if err := f.UnmarshalJSON(data); err != nil {
		return err
	}
	*t = timeString(f)
	return nil
}
