package camelot

import (
	"fmt"
	"testing"
)

func TestParseRoundTripsAllCodes(t *testing.T) {
	for n := 1; n <= 12; n++ {
		for _, ring := range []Ring{RingMinor, RingMajor} {
			code := fmt.Sprintf("%d%s", n, ring)
			t.Run(code, func(t *testing.T) {
				got, ok := Parse(code)
				if !ok {
					t.Fatalf("Parse(%q) failed", code)
				}
				if got.String() != code {
					t.Errorf("round trip = %q, want %q", got.String(), code)
				}
			})
		}
	}
}

func TestParseKeyFormats(t *testing.T) {
	tc := []struct {
		name string
		in   string
		want string
	}{
		{name: "full minor", in: "A minor", want: "8A"},
		{name: "full major", in: "C major", want: "8B"},
		{name: "abbreviation minor", in: "Am", want: "8A"},
		{name: "abbreviation major", in: "Cmaj", want: "8B"},
		{name: "catalog minor", in: "A min", want: "8A"},
		{name: "catalog major", in: "C maj", want: "8B"},
		{name: "lowercase code", in: "12b", want: "12B"},
		{name: "bare note defaults major", in: "C", want: "8B"},
		{name: "flat note", in: "Eb", want: "5B"},
		{name: "spelled sharp", in: "CSharp", want: "3B"},
		{name: "spelled flat", in: "BFlat", want: "6B"},
		{name: "enharmonic sharp", in: "G# min", want: "1A"},
		{name: "enharmonic flat", in: "Ab minor", want: "1A"},
		{name: "f sharp minor", in: "F#m", want: "11A"},
		{name: "mixed case code", in: "8a", want: "8A"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.in)
			if !ok {
				t.Fatalf("Parse(%q) failed", tt.in)
			}
			if got.String() != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.in, got.String(), tt.want)
			}
		})
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tc := []string{"", "   ", "13A", "0B", "H minor", "8C", "remix", "1", "A minor pentatonic"}

	for _, in := range tc {
		t.Run(in, func(t *testing.T) {
			if _, ok := Parse(in); ok {
				t.Errorf("Parse(%q) succeeded, want failure", in)
			}
		})
	}
}

func TestCompatibility(t *testing.T) {
	pos := func(n int, r Ring) *Position { return &Position{Number: n, Ring: r} }

	tc := []struct {
		name string
		a, b *Position
		want float64
	}{
		{name: "identical", a: pos(8, RingMinor), b: pos(8, RingMinor), want: 1.0},
		{name: "adjacent up", a: pos(8, RingMinor), b: pos(9, RingMinor), want: 0.8},
		{name: "adjacent down", a: pos(8, RingMinor), b: pos(7, RingMinor), want: 0.8},
		{name: "wraparound 12 to 1", a: pos(12, RingMajor), b: pos(1, RingMajor), want: 0.8},
		{name: "wraparound 1 to 12", a: pos(1, RingMinor), b: pos(12, RingMinor), want: 0.8},
		{name: "parallel key", a: pos(8, RingMinor), b: pos(8, RingMajor), want: 0.8},
		{name: "two away", a: pos(8, RingMinor), b: pos(10, RingMinor), want: 0.5},
		{name: "two away wraparound", a: pos(1, RingMajor), b: pos(11, RingMajor), want: 0.5},
		{name: "three away", a: pos(8, RingMinor), b: pos(11, RingMinor), want: 0.0},
		{name: "cross ring adjacent", a: pos(8, RingMinor), b: pos(9, RingMajor), want: 0.0},
		{name: "nil first", a: nil, b: pos(8, RingMinor), want: 0.0},
		{name: "nil second", a: pos(8, RingMinor), b: nil, want: 0.0},
		{name: "both nil", a: nil, b: nil, want: 0.0},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compatibility(tt.a, tt.b); got != tt.want {
				t.Errorf("Compatibility = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompatibilityIdentityForAllPositions(t *testing.T) {
	for n := 1; n <= 12; n++ {
		for _, ring := range []Ring{RingMinor, RingMajor} {
			p := Position{Number: n, Ring: ring}
			if got := Compatibility(&p, &p); got != 1.0 {
				t.Errorf("Compatibility(%s, %s) = %v, want 1.0", p, p, got)
			}
		}
	}
}
