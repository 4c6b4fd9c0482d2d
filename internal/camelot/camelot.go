// package camelot models the Camelot wheel, the 24-position notation DJs
// use to judge harmonic mixing compatibility between musical keys.
//
// Positions are numbered 1-12 on two rings: "A" (minor) and "B" (major).
// Neighboring numbers on the same ring, and the same number on the opposite
// ring, mix cleanly.
package camelot

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Ring identifies the minor ("A") or major ("B") ring of the wheel.
type Ring string

const (
	RingMinor Ring = "A"
	RingMajor Ring = "B"
)

// Position is an immutable wheel coordinate: (1..12, A|B).
type Position struct {
	Number int
	Ring   Ring
}

// String renders the canonical Camelot code, e.g. "8A".
func (p Position) String() string {
	return fmt.Sprintf("%d%s", p.Number, p.Ring)
}

// minorPositions maps a normalized note name to its number on the A ring.
var minorPositions = map[string]int{
	"ab": 1, "g#": 1,
	"eb": 2, "d#": 2,
	"bb": 3, "a#": 3,
	"f": 4,
	"c": 5,
	"g": 6,
	"d": 7,
	"a": 8,
	"e": 9,
	"b": 10,
	"f#": 11, "gb": 11,
	"db": 12, "c#": 12,
}

// majorPositions maps a normalized note name to its number on the B ring.
var majorPositions = map[string]int{
	"b": 1,
	"f#": 2, "gb": 2,
	"db": 3, "c#": 3,
	"ab": 4, "g#": 4,
	"eb": 5, "d#": 5,
	"bb": 6, "a#": 6,
	"f": 7,
	"c": 8,
	"g": 9,
	"d": 10,
	"a": 11,
	"e": 12,
}

var (
	codeRegex = regexp.MustCompile(`^(\d{1,2})\s*([ab])$`)
	noteRegex = regexp.MustCompile(`^([a-g])(#|b)?\s*(minor|major|min|maj|m)?$`)
)

// Parse converts a heterogeneous key string into a wheel position. Accepted
// forms include "A minor", "Cmaj", "A min", "8A", "Eb", "CSharp", "BFlat"
// and enharmonic spellings; bare note names default to major. Returns
// ok=false for empty or unrecognized input.
func Parse(keyStr string) (Position, bool) {
	s := strings.ToLower(strings.TrimSpace(keyStr))
	if s == "" {
		return Position{}, false
	}

	if m := codeRegex.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > 12 {
			return Position{}, false
		}
		return Position{Number: n, Ring: Ring(strings.ToUpper(m[2]))}, true
	}

	// spelled-out accidentals: "csharp" -> "c#", "bflat" -> "bb"
	s = strings.ReplaceAll(s, "sharp", "#")
	s = strings.ReplaceAll(s, "flat", "b")
	s = strings.TrimSpace(strings.Join(strings.Fields(s), " "))

	m := noteRegex.FindStringSubmatch(strings.ReplaceAll(s, " ", ""))
	if m == nil {
		return Position{}, false
	}

	note := m[1] + m[2]
	mode := m[3]

	minor := mode == "minor" || mode == "min" || mode == "m"
	if minor {
		if n, ok := minorPositions[note]; ok {
			return Position{Number: n, Ring: RingMinor}, true
		}
		return Position{}, false
	}
	if n, ok := majorPositions[note]; ok {
		return Position{Number: n, Ring: RingMajor}, true
	}
	return Position{}, false
}

// ringDistance is the circular distance between two wheel numbers, so 12
// and 1 are neighbors.
func ringDistance(a, b int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	if 12-d < d {
		d = 12 - d
	}
	return d
}

// Compatibility scores how harmonically compatible two wheel positions are
// for mixing: 1.0 identical, 0.8 adjacent on the same ring or the parallel
// key on the opposite ring, 0.5 two steps on the same ring, 0.0 otherwise.
// A nil position scores 0.0.
func Compatibility(a, b *Position) float64 {
	if a == nil || b == nil {
		return 0.0
	}
	if *a == *b {
		return 1.0
	}

	if a.Ring == b.Ring {
		switch ringDistance(a.Number, b.Number) {
		case 1:
			return 0.8
		case 2:
			return 0.5
		}
		return 0.0
	}

	if a.Number == b.Number {
		return 0.8
	}
	return 0.0
}
