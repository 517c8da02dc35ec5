package spotlight

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Validation is either Valid or Invalid
type Validation interface{ validation() }

// Valid carries the decoded record
type Valid struct{ Record Record }

// Invalid says why the text was rejected
type Invalid struct{ Reason string }

func (Valid) validation()   {}
func (Invalid) validation() {}

// Validate decodes upstream text as a record of the given shape
// surrounding whitespace and one Markdown code fence are tolerated
// fields must be JSON strings; empty strings are accepted
func Validate(text string, shape Shape) Validation {
	body := stripFence(strings.TrimSpace(text))
	if body == "" {
		return Invalid{Reason: "empty payload"}
	}

	dec := json.NewDecoder(strings.NewReader(body))
	var obj map[string]json.RawMessage
	if err := dec.Decode(&obj); err != nil {
		return Invalid{Reason: "not a JSON object: " + err.Error()}
	}
	if obj == nil {
		return Invalid{Reason: "not a JSON object"}
	}
	if dec.More() {
		return Invalid{Reason: "trailing data after JSON object"}
	}

	var rec Record
	var err error
	if rec.Quote, err = stringField(obj, "quote", true); err != nil {
		return Invalid{Reason: err.Error()}
	}
	if rec.Handle, err = stringField(obj, "handle", true); err != nil {
		return Invalid{Reason: err.Error()}
	}
	if rec.Creator, err = stringField(obj, "creator", shape == ThreeField); err != nil {
		return Invalid{Reason: err.Error()}
	}
	return Valid{Record: rec}
}

func stringField(obj map[string]json.RawMessage, key string, required bool) (string, error) {
	raw, ok := obj[key]
	if !ok {
		if required {
			return "", fmt.Errorf("missing %q", key)
		}
		return "", nil
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", fmt.Errorf("%q is not a string", key)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%q is not a string", key)
	}
	return s, nil
}

// stripFence removes one ```lang ... ``` wrapper if the whole text is fenced
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	inner := s[3 : len(s)-3]
	nl := strings.IndexByte(inner, '\n')
	if nl < 0 {
		return strings.TrimSpace(inner)
	}
	// the info string (json, JSON, ...) sits on the opening line
	if info := strings.TrimSpace(inner[:nl]); !strings.ContainsAny(info, "{[\"") {
		inner = inner[nl+1:]
	}
	return strings.TrimSpace(inner)
}
