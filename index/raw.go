package index

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RawResult is one match as reported by an external index backend before
// normalization. Backends disagree on field names and types, so decoding is
// deliberately permissive: identifiers may arrive as numbers or numeric
// strings under several keys, and scores may be reported as distances.
// Absent fields are tracked so callers can apply their own defaults.
type RawResult struct {
	Number       int
	HasNumber    bool
	Score        float64
	HasScore     bool
	Relevance    float64
	HasRelevance bool
	Fallback     bool
}

// UnmarshalJSON decodes one backend match, coercing heterogeneous shapes.
func (r *RawResult) UnmarshalJSON(data []byte) error {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	for _, key := range []string{"id", "verse_id", "verseId", "number"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		number, ok := coerceInt(raw)
		if !ok {
			continue
		}
		r.Number = number
		r.HasNumber = true
		break
	}

	for _, key := range []string{"score", "distance", "similarity"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var score float64
		if err := json.Unmarshal(raw, &score); err == nil {
			r.Score = score
			r.HasScore = true
			break
		}
	}

	if raw, ok := fields["relevance"]; ok {
		var relevance float64
		if err := json.Unmarshal(raw, &relevance); err == nil {
			r.Relevance = relevance
			r.HasRelevance = true
		}
	}

	for _, key := range []string{"is_random", "isRandom", "is_fallback", "isFallback"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var flag bool
		if err := json.Unmarshal(raw, &flag); err == nil && flag {
			r.Fallback = true
		}
	}

	return nil
}

// coerceInt accepts a JSON number or a numeric string.
func coerceInt(raw json.RawMessage) (int, bool) {
	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		return int(number), true
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		parsed, err := strconv.Atoi(strings.TrimSpace(text))
		if err == nil {
			return parsed, true
		}
	}

	return 0, false
}

// backendError is the structured error shape some backends print instead of
// a result array.
type backendError struct {
	Error string `json:"error"`
}

// ExtractPayload recovers the JSON result array from raw backend output.
// Backends often pollute stdout with progress and log lines, so this scans
// for the outermost array. A structured `{"error": ...}` object is surfaced
// as an error instead.
func ExtractPayload(output []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(output)

	// Structured error object takes precedence when it is the whole output.
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var backendErr backendError
		if err := json.Unmarshal(trimmed, &backendErr); err == nil && backendErr.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, backendErr.Error)
		}
	}

	start := bytes.IndexByte(trimmed, '[')
	end := bytes.LastIndexByte(trimmed, ']')
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: no result array in output", ErrBadPayload)
	}

	payload := trimmed[start : end+1]
	if !json.Valid(payload) {
		return nil, fmt.Errorf("%w: malformed result array", ErrBadPayload)
	}

	return json.RawMessage(payload), nil
}

// DecodeResults extracts and decodes backend output into raw matches.
func DecodeResults(output []byte) ([]RawResult, error) {
	payload, err := ExtractPayload(output)
	if err != nil {
		return nil, err
	}

	var results []RawResult
	if err := json.Unmarshal(payload, &results); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	return results, nil
}
