// Package masterdata reads branches, customers and catalog items from the
// records API and maps its loosely shaped JSON onto the canonical domain types.
// All field-name guessing happens here, once, at ingestion.
package masterdata

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UnwrapEnvelope returns the payload of a records API response, which is either
// the bare value or an object of the form {"data": value, ...}.
func UnwrapEnvelope(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty response body")
	}
	if trimmed[0] != '{' {
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("invalid JSON response")
		}
		return json.RawMessage(trimmed), nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	if data, ok := obj["data"]; ok {
		return data, nil
	}
	return json.RawMessage(trimmed), nil
}

// UnwrapList is UnwrapEnvelope for list endpoints. A single object is treated as
// a one-element list and null as an empty one.
func UnwrapList(body []byte) ([]json.RawMessage, error) {
	payload, err := UnwrapEnvelope(body)
	if err != nil {
		return nil, err
	}
	payload = bytes.TrimSpace(payload)
	switch {
	case len(payload) == 0 || bytes.Equal(payload, []byte("null")):
		return nil, nil
	case payload[0] == '[':
		var items []json.RawMessage
		if err := json.Unmarshal(payload, &items); err != nil {
			return nil, fmt.Errorf("unmarshaling list: %w", err)
		}
		return items, nil
	case payload[0] == '{':
		// Some list endpoints nest the rows one level deeper.
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(payload, &obj); err != nil {
			return nil, fmt.Errorf("unmarshaling list: %w", err)
		}
		for _, key := range []string{"items", "results", "rows"} {
			if inner, ok := obj[key]; ok && len(bytes.TrimSpace(inner)) > 0 && bytes.TrimSpace(inner)[0] == '[' {
				var items []json.RawMessage
				if err := json.Unmarshal(inner, &items); err != nil {
					return nil, fmt.Errorf("unmarshaling list: %w", err)
				}
				return items, nil
			}
		}
		return []json.RawMessage{payload}, nil
	default:
		return nil, fmt.Errorf("unexpected list payload")
	}
}
