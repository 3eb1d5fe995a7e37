package models

import (
	"fmt"
	"strings"
	"time"
)

// legacyTimeLayout is the naive ISO 8601 form written by earlier
// deployments: no timezone offset, UTC implied. time.Parse accepts
// fractional seconds without them appearing in the layout.
const legacyTimeLayout = "2006-01-02T15:04:05"

// flexTime decodes a timestamp in either RFC 3339 or the legacy naive
// form. It is only a decoding shim; fields marshal as plain time.Time,
// so rewritten documents carry RFC 3339 timestamps.
type flexTime time.Time

func (t *flexTime) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		return nil
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		parsed, err = time.Parse(legacyTimeLayout, raw)
	}
	if err != nil {
		return fmt.Errorf("cannot parse timestamp %q", raw)
	}

	*t = flexTime(parsed.UTC())
	return nil
}
