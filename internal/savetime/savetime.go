// Package savetime decodes timestamps from saved games. Older saves store
// epoch milliseconds, newer ones RFC 3339 strings.
package savetime

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Decode parses raw as either a JSON number of epoch milliseconds or an
// RFC 3339 string. Empty input and null decode to the zero time.
func Decode(raw json.RawMessage) (time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, nil
	}
	if raw[0] == '"' {
		var t time.Time
		if err := json.Unmarshal(raw, &t); err != nil {
			return time.Time{}, err
		}
		return t, nil
	}
	ms, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("savetime: bad timestamp %s", raw)
	}
	return time.UnixMilli(int64(ms)).UTC(), nil
}

// IsNull reports whether raw is missing or a JSON null.
func IsNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
