package comment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"bookshelf/internal/httpx"
)

const (
	maxExtraFields   = 20
	maxExtraKeyLen   = 64
	maxExtraValueLen = 2000
)

// reserved names the fields a client cannot set through Extra.
var reserved = map[string]bool{
	"_id":       true,
	"bookId":    true,
	"text":      true,
	"userName":  true,
	"userEmail": true,
	"createdAt": true,
}

func isReserved(key string) bool {
	return reserved[key]
}

// extraFields collects the top-level fields of body that are not part of the
// comment itself. Only strings, numbers, booleans and null are kept; anything
// else is reported as a validation detail.
func extraFields(body []byte) (map[string]any, []httpx.ErrorDetail, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, nil, err
	}

	var (
		extra   map[string]any
		details []httpx.ErrorDetail
	)
	for key, raw := range fields {
		if isReserved(key) {
			continue
		}
		if msg := checkExtraKey(key); msg != "" {
			details = append(details, httpx.ErrorDetail{Field: key, Message: msg})
			continue
		}
		v, ok := scalar(raw)
		if !ok {
			details = append(details, httpx.ErrorDetail{Field: key, Message: key + " must be a string, number, boolean or null"})
			continue
		}
		if s, isString := v.(string); isString && len(s) > maxExtraValueLen {
			details = append(details, httpx.ErrorDetail{Field: key, Message: fmt.Sprintf("%s must be at most %d characters", key, maxExtraValueLen)})
			continue
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[key] = v
	}
	if len(extra) > maxExtraFields {
		details = append(details, httpx.ErrorDetail{Message: fmt.Sprintf("at most %d additional fields are allowed", maxExtraFields)})
	}
	return extra, details, nil
}

func checkExtraKey(key string) string {
	switch {
	case key == "":
		return "field names must not be empty"
	case len(key) > maxExtraKeyLen:
		return fmt.Sprintf("field names must be at most %d characters", maxExtraKeyLen)
	case strings.HasPrefix(key, "$") || strings.Contains(key, "."):
		return key + " must not start with $ or contain a dot"
	}
	return ""
}

// scalar decodes raw when it holds a JSON scalar. Integral numbers stay
// integers.
func scalar(raw json.RawMessage) (any, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	switch t := v.(type) {
	case nil, string, bool:
		return t, true
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
		f, err := t.Float64()
		return f, err == nil
	}
	return nil, false
}

// stripReserved drops keys that would shadow the named fields in a store.
func stripReserved(extra map[string]any) map[string]any {
	if len(extra) == 0 {
		return nil
	}
	out := make(map[string]any, len(extra))
	for k, v := range extra {
		if !isReserved(k) {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
