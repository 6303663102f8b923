package masterdata

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// fields is a decoded JSON object with lookups over alternative key spellings.
// Keys may be dotted paths into nested objects ("legal.gstin").
type fields map[string]json.RawMessage

func decodeFields(raw json.RawMessage) (fields, error) {
	var f fields
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	return f, nil
}

func (f fields) lookup(path string) (json.RawMessage, bool) {
	cur := f
	parts := strings.Split(path, ".")
	for i, p := range parts {
		raw, ok := cur[p]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return raw, true
		}
		next, err := decodeFields(raw)
		if err != nil || next == nil {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

// scalarText returns the text of a JSON string or number.
func scalarText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		s = strings.TrimSpace(s)
		return s, s != ""
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", false
		}
		return n.String(), true
	default:
		return "", false
	}
}

// str returns the first non-empty string or number under keys.
func (f fields) str(keys ...string) string {
	for _, k := range keys {
		if raw, ok := f.lookup(k); ok {
			if s, ok := scalarText(raw); ok {
				return s
			}
		}
	}
	return ""
}

// dec returns the first value under keys that parses as a decimal.
func (f fields) dec(keys ...string) (decimal.Decimal, bool) {
	for _, k := range keys {
		raw, ok := f.lookup(k)
		if !ok {
			continue
		}
		s, ok := scalarText(raw)
		if !ok {
			continue
		}
		d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSuffix(s, "%"), ",", ""))
		if err == nil {
			return d, true
		}
	}
	return decimal.Zero, false
}

// list returns the array under key as objects, skipping non-object entries.
func (f fields) list(key string) []fields {
	raw, ok := f.lookup(key)
	if !ok {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]fields, 0, len(items))
	for _, item := range items {
		if obj, err := decodeFields(item); err == nil && obj != nil {
			out = append(out, obj)
		}
	}
	return out
}
