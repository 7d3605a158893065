package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Extraction reports where a structured reply was found.
type Extraction int

const (
	Invalid Extraction = iota
	FencedValid
	RawValid
)

func (e Extraction) String() string {
	switch e {
	case FencedValid:
		return "fenced_valid"
	case RawValid:
		return "raw_valid"
	default:
		return "invalid"
	}
}

// fenced matches the first ``` block, optionally tagged json.
var fenced = regexp.MustCompile("(?s)```(?:json)?(.*?)```")

// FencedBlock returns the trimmed body of the first fenced code block in
// reply.
func FencedBlock(reply string) (string, bool) {
	m := fenced.FindStringSubmatch(reply)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// DecodeJSON extracts a JSON value from a model reply into v. A fenced block is
// preferred; without one the whole reply is parsed. The payload must be exactly
// one JSON value.
func DecodeJSON(reply string, v any) (Extraction, error) {
	payload, ok := FencedBlock(reply)
	kind := FencedValid
	if !ok {
		payload = strings.TrimSpace(reply)
		kind = RawValid
	}
	if err := strictUnmarshal(payload, v); err != nil {
		return Invalid, err
	}
	return kind, nil
}

func strictUnmarshal(payload string, v any) error {
	if payload == "" {
		return errors.New("no JSON payload")
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(payload)))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode JSON: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("decode JSON: trailing data after value")
	}
	return nil
}
