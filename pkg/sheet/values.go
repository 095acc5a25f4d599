package sheet

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Normalize converts v into one of the canonical cell types.
// Integer kinds become int64, float kinds float64, times are stored in UTC.
func Normalize(v any) (any, error) {
	switch val := v.(type) {
	case nil, string, bool, int64, float64:
		return val, nil
	case int:
		return int64(val), nil
	case int8:
		return int64(val), nil
	case int16:
		return int64(val), nil
	case int32:
		return int64(val), nil
	case uint8:
		return int64(val), nil
	case uint16:
		return int64(val), nil
	case uint32:
		return int64(val), nil
	case float32:
		return float64(val), nil
	case time.Time:
		return val.UTC(), nil
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n, nil
		}
		if f, err := val.Float64(); err == nil {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
}

// NormalizeRow applies Normalize to every value.
func NormalizeRow(values []any) ([]any, error) {
	out := make([]any, len(values))
	for i, v := range values {
		n, err := Normalize(v)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i+1, err)
		}
		out[i] = n
	}
	return out, nil
}

// Int reports the integer value of a numeric cell. Non-numeric cells,
// including numeric-looking strings, return false. Floats are truncated
// toward zero; NaN, infinities, and floats outside the int64 range return false.
func Int(v any) (int64, bool) {
	switch val := v.(type) {
	case int64:
		return val, true
	case int:
		return int64(val), true
	case float64:
		return floatInt(val)
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n, true
		}
		if f, err := val.Float64(); err == nil {
			return floatInt(f)
		}
	}
	return 0, false
}

func floatInt(f float64) (int64, bool) {
	if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// Text renders a cell as a string. Nil cells render as "".
func Text(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// Time reports the time held by a cell. RFC 3339 strings are parsed.
func Time(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, true
	case string:
		if t, err := time.Parse(time.RFC3339Nano, val); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsEmpty reports whether a cell holds no value: nil or the empty string.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

type encodedCell struct {
	Kind  string          `json:"k"`
	Value json.RawMessage `json:"v,omitempty"`
}

const (
	kindNil    = "n"
	kindString = "s"
	kindInt    = "i"
	kindFloat  = "f"
	kindBool   = "b"
	kindTime   = "t"
)

// MarshalRow encodes a row as a JSON array of kind-tagged cells so that
// integers and timestamps survive a round trip through a text column.
func MarshalRow(values []any) ([]byte, error) {
	cells := make([]encodedCell, len(values))
	for i, v := range values {
		n, err := Normalize(v)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i+1, err)
		}

		var kind string
		var payload any
		switch val := n.(type) {
		case nil:
			cells[i] = encodedCell{Kind: kindNil}
			continue
		case string:
			kind, payload = kindString, val
		case int64:
			kind, payload = kindInt, val
		case float64:
			kind, payload = kindFloat, val
		case bool:
			kind, payload = kindBool, val
		case time.Time:
			kind, payload = kindTime, val.Format(time.RFC3339Nano)
		}

		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i+1, err)
		}
		cells[i] = encodedCell{Kind: kind, Value: raw}
	}
	return json.Marshal(cells)
}

// UnmarshalRow decodes a row produced by MarshalRow.
func UnmarshalRow(data []byte) ([]any, error) {
	var cells []encodedCell
	if err := json.Unmarshal(data, &cells); err != nil {
		return nil, fmt.Errorf("decode row: %w", err)
	}

	values := make([]any, len(cells))
	for i, c := range cells {
		v, err := decodeCell(c)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i+1, err)
		}
		values[i] = v
	}
	return values, nil
}

func decodeCell(c encodedCell) (any, error) {
	switch c.Kind {
	case kindNil:
		return nil, nil
	case kindString:
		var s string
		err := json.Unmarshal(c.Value, &s)
		return s, err
	case kindInt:
		var n int64
		err := json.Unmarshal(c.Value, &n)
		return n, err
	case kindFloat:
		var f float64
		err := json.Unmarshal(c.Value, &f)
		return f, err
	case kindBool:
		var b bool
		err := json.Unmarshal(c.Value, &b)
		return b, err
	case kindTime:
		var s string
		if err := json.Unmarshal(c.Value, &s); err != nil {
			return nil, err
		}
		return time.Parse(time.RFC3339Nano, s)
	}
	return nil, fmt.Errorf("%w: kind %q", ErrUnsupportedValue, c.Kind)
}
