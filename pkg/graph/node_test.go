package graph

import (
	"encoding/json"
	"math"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"Nil", nil, 0},
		{"Int", 1500, 1500},
		{"Int64", int64(42), 42},
		{"Float", 12.5, 12.5},
		{"NegativeFloat", -300.0, -300},
		{"JSONNumber", json.Number("2500.75"), 2500.75},
		{"PlainString", "1000", 1000},
		{"CurrencyString", "$1,500", 1500},
		{"PaddedString", "  $ 20,000.00 ", 20000},
		{"EuroString", "€3.000", 3},
		{"EmptyString", "", 0},
		{"WhitespaceString", "   ", 0},
		{"Garbage", "n/a", 0},
		{"OnlySymbol", "$", 0},
		{"NaNString", "NaN", 0},
		{"InfString", "Inf", 0},
		{"Bool", true, 0},
		{"Map", map[string]any{"a": 1}, 0},
		{"Slice", []any{1, 2}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseAmount(tc.in)
			if got != tc.want {
				t.Fatalf("ParseAmount(%#v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseRawAmount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"Absent", "", 0},
		{"Null", "null", 0},
		{"Number", "1500", 1500},
		{"BigNumber", "123456789.5", 123456789.5},
		{"String", `"$1,500.25"`, 1500.25},
		{"Object", `{"value": 3}`, 0},
		{"Broken", `"unterminated`, 0},
		{"Bool", "false", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseRawAmount(json.RawMessage(tc.in))
			if got != tc.want {
				t.Fatalf("ParseRawAmount(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestShortLabel(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"Short", "Acme", 28, "Acme"},
		{"ExactlyMax", "abcdefghij", 10, "abcdefghij"},
		{"OneOver", "abcdefghijk", 10, "abcdefghi…"},
		{"DefaultBound", "The Extremely Long Name Of A Trade Association", 0, "The Extremely Long Name Of …"},
		{"Multibyte", "Société Générale Lobbying", 8, "Société…"},
		{"MaxOne", "Acme", 1, "…"},
		{"Empty", "", 5, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ShortLabel(tc.in, tc.max)
			if got != tc.want {
				t.Fatalf("ShortLabel(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
			}
		})
	}
}

func TestNodeID(t *testing.T) {
	if NodeID(CategoryClient, " Acme ") != NodeID(CategoryClient, "Acme") {
		t.Fatal("expected ids to ignore surrounding whitespace")
	}
	if NodeID(CategoryClient, "Acme") == NodeID(CategoryRegistrant, "Acme") {
		t.Fatal("expected ids to differ across categories")
	}
	if got := NodeID(CategoryLobbyist, "Jane Doe"); got != "lobbyist:Jane Doe" {
		t.Fatalf("unexpected id %q", got)
	}
}

func TestEdgeWeight(t *testing.T) {
	if w := EdgeWeight(1, 0); w != 1 {
		t.Fatalf("expected floor weight 1, got %v", w)
	}
	if w := EdgeWeight(0, 0); w != 1 {
		t.Fatalf("expected floor weight 1 for zero count, got %v", w)
	}
	if w := EdgeWeight(1, -500); w != 1 {
		t.Fatalf("expected negative amount to be ignored, got %v", w)
	}

	prev := 0.0
	for count := 1; count <= 50; count++ {
		for _, amount := range []float64{0, 1, 9, 99, 1000, 25000, 1e6, 1e9} {
			w := EdgeWeight(count, amount)
			if w < 1 || math.IsNaN(w) {
				t.Fatalf("EdgeWeight(%d, %v) = %v, want >= 1", count, amount, w)
			}
			if amount == 0 && w < prev {
				t.Fatalf("weight decreased with count: %v < %v", w, prev)
			}
			if amount == 0 {
				prev = w
			}
			if bigger := EdgeWeight(count, amount*10+1); bigger < w {
				t.Fatalf("weight decreased with amount at count %d: %v < %v", count, bigger, w)
			}
			if more := EdgeWeight(count+1, amount); more < w {
				t.Fatalf("weight decreased with count at amount %v: %v < %v", amount, more, w)
			}
		}
	}
}
