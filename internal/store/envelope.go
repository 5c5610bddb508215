package store

import (
	"encoding/json"
	"reflect"
	"time"
)

// envelope is the JSON wrapper persisted per key. Timestamp is a pointer
// so a decoded entry that never carried one (hand-inserted or written by
// an older tool) is distinguishable from one written at the epoch; such
// entries are served without any expiry check.
type envelope struct {
	Timestamp *int64 `json:"timestamp,omitempty"`
	Data      any    `json:"data,omitempty"`
	Timeout   int64  `json:"timeout,omitempty"`
}

// encodeEnvelope serializes value into an envelope stamped at now.
// A zero timeout is omitted from the wire format entirely.
func encodeEnvelope(now time.Time, value any, timeout time.Duration) (string, error) {
	ts := now.UnixMilli()
	env := envelope{
		Timestamp: &ts,
		Data:      value,
		Timeout:   timeout.Milliseconds(),
	}

	raw, err := json.Marshal(env)
	if err != nil {
		return "", validationErrorf("value is not serializable: %v", err)
	}
	return string(raw), nil
}

// decodeEnvelope parses a raw entry. The boolean is false when the entry
// is empty, malformed, or decodes to nothing; callers treat that as the
// key being absent rather than as an error.
func decodeEnvelope(raw string) (*envelope, bool) {
	if raw == "" {
		return nil, false
	}

	var env *envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, false
	}
	if env == nil {
		return nil, false
	}
	return env, true
}

// validateValue rejects values that cannot survive a JSON round-trip.
// Funcs and channels would fail at marshal time anyway; checking up front
// guarantees nothing is written before validation completes.
func validateValue(value any) error {
	if value == nil {
		return validationErrorf("value is required")
	}
	switch reflect.TypeOf(value).Kind() {
	case reflect.Func, reflect.Chan:
		return validationErrorf("value of type %T is not serializable", value)
	}
	return nil
}

func validateKey(key string) error {
	if key == "" {
		return validationErrorf("key is required")
	}
	return nil
}
