package generation

import (
	"encoding/json"
	"fmt"
	"strings"
)

type FailureReason string

const (
	ReasonNoArray     FailureReason = "no_array"
	ReasonInvalidJSON FailureReason = "invalid_json"
)

// ParseFailure describes a reply that held no decodable JSON array.
type ParseFailure struct {
	Reason FailureReason
	Err    error
}

func (f *ParseFailure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %v", f.Reason, f.Err)
	}
	return string(f.Reason)
}

// Parse decodes the span from the first '[' to the last ']' of raw as a
// JSON array of T. Prose or code fences around the array are ignored.
// Whatever lies between the brackets must be one valid array.
func Parse[T any](raw string) ([]T, *ParseFailure) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end < start {
		return nil, &ParseFailure{Reason: ReasonNoArray}
	}

	var items []T
	if err := json.Unmarshal([]byte(raw[start:end+1]), &items); err != nil {
		return nil, &ParseFailure{Reason: ReasonInvalidJSON, Err: err}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
