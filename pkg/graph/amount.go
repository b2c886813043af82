package graph

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

var amountReplacer = strings.NewReplacer(
	"$", "",
	"€", "",
	"£", "",
	",", "",
	"_", "",
	" ", "",
)

// ParseAmount converts a reported amount of unknown shape into a float.
//
// nil, booleans and anything unparseable yield 0. Numbers are returned as-is,
// including negative ones; clamping happens when amounts are accumulated.
// Strings may carry a currency symbol and thousands separators ("$1,500").
func ParseAmount(v any) float64 {
	var f float64
	switch val := v.(type) {
	case nil, bool:
		return 0
	case json.Number:
		return ParseAmount(string(val))
	case string:
		s := amountReplacer.Replace(strings.TrimSpace(val))
		if s == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		parsed, err := cast.ToFloat64E(val)
		if err != nil {
			return 0
		}
		f = parsed
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ParseRawAmount decodes a raw JSON value and runs it through ParseAmount.
// Absent, null or malformed values yield 0.
func ParseRawAmount(raw json.RawMessage) float64 {
	if len(bytes.TrimSpace(raw)) == 0 {
		return 0
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0
	}
	return ParseAmount(v)
}

func clampAmount(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
