// package normalizer turns raw track titles and artist strings into
// comparable forms and computes fuzzy similarity between them.
//
// Generic mix labels ("Original Mix", "Radio Edit") are stripped; named
// remixes ("Maceo Plex Remix") are preserved and detected.
package normalizer

import (
	"regexp"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// RemixType classifies a detected named remix.
type RemixType string

const (
	RemixTypeRemix   RemixType = "remix"
	RemixTypeEdit    RemixType = "edit"
	RemixTypeBootleg RemixType = "bootleg"
)

// NormalizedTrack is the immutable normalized form of a (title, artist)
// pair, created once per sync attempt.
type NormalizedTrack struct {
	Title         string
	Artist        string
	RawTitle      string
	RawArtist     string
	RemixArtist   string
	RemixType     RemixType
	HasNamedRemix bool
}

// genericSuffixes are mix labels that add no identity to a track. They are
// stripped when trailing in parentheses, brackets, or after a dash.
// "Instrumental", "Acoustic", "Live", "VIP", "Dub Mix" and "A Cappella" are
// deliberately absent: those change which recording the title names.
var genericSuffixes = []string{
	"original mix",
	"original version",
	"extended mix",
	"extended version",
	"radio edit",
	"radio mix",
	"club mix",
	"album version",
	"single version",
	"main mix",
	"short edit",
	"long edit",
	"original",
	"extended",
}

// genericMixWords are leading words of generic labels; a parenthetical
// "<word> Remix/Mix/..." with one of these is not a named remix.
var genericMixWords = map[string]bool{
	"original":     true,
	"extended":     true,
	"radio":        true,
	"club":         true,
	"album":        true,
	"single":       true,
	"main":         true,
	"short":        true,
	"long":         true,
	"dub":          true,
	"vip":          true,
	"instrumental": true,
	"acoustic":     true,
	"live":         true,
}

var (
	suffixParenRegex *regexp.Regexp
	suffixDashRegex  *regexp.Regexp

	featRegex    = regexp.MustCompile(`(?i)\b(?:featuring|feat\.|feat|ft\.|ft|with)\s+`)
	splitRegex   = regexp.MustCompile(`(?i)\s*(?:,|&|\band\b|\bx\b|\bfeaturing\b|\bfeat\b\.?|\bft\b\.?|\bwith\b)\s*`)
	spacesRegex  = regexp.MustCompile(`\s+`)
	remixParen   = regexp.MustCompile(`(?i)[(\[]\s*([^()\[\]]+?)\s+(remix|edit|bootleg|rework|flip|mix)\s*[)\]]`)
	remixTrailer = regexp.MustCompile(`(?i)-\s*([^-(\[]+?)\s+(remix|edit|bootleg)\s*$`)
)

func init() {
	alt := strings.Join(genericSuffixes, "|")
	suffixParenRegex = regexp.MustCompile(`(?i)\s*[(\[]\s*(?:` + alt + `)\s*[)\]]\s*$`)
	suffixDashRegex = regexp.MustCompile(`(?i)\s*-\s*(?:` + alt + `)\s*$`)
}

// CollapseSpaces trims and collapses runs of whitespace to single spaces.
func CollapseSpaces(s string) string {
	return strings.TrimSpace(spacesRegex.ReplaceAllString(s, " "))
}

// NormalizeTitle strips trailing generic mix/edit suffixes from a title
// while preserving named remixes and arbitrary other parenthetical content.
func NormalizeTitle(title string) string {
	out := title
	for {
		next := suffixParenRegex.ReplaceAllString(out, "")
		next = suffixDashRegex.ReplaceAllString(next, "")
		if next == out {
			break
		}
		out = next
	}
	return CollapseSpaces(out)
}

// NormalizeArtist canonicalizes featuring variants to "feat." and collapses
// whitespace.
func NormalizeArtist(artist string) string {
	return CollapseSpaces(featRegex.ReplaceAllString(artist, "feat. "))
}

// SplitArtists splits a combined artist string into individual artists.
// Always returns at least one element.
func SplitArtists(artist string) []string {
	parts := splitRegex.Split(artist, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = CollapseSpaces(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{CollapseSpaces(artist)}
	}
	return out
}

// PrimaryArtist returns the first artist of a combined artist string.
func PrimaryArtist(artist string) string {
	return SplitArtists(artist)[0]
}

// FuzzyScore computes a case-insensitive, whitespace-trimmed similarity
// ratio in [0, 1]. Identical normalized strings score exactly 1.0.
func FuzzyScore(a, b string) float64 {
	na := strings.ToLower(strings.TrimSpace(a))
	nb := strings.ToLower(strings.TrimSpace(b))
	if na == nb {
		return 1.0
	}
	return strutil.Similarity(na, nb, metrics.NewLevenshtein())
}

// ArtistMatchScore scores how well two artist strings refer to the same
// act. Exact multi-artist strings take a fast path; otherwise the best
// pairwise similarity between individual artists wins.
func ArtistMatchScore(a, b string) float64 {
	full := FuzzyScore(NormalizeArtist(a), NormalizeArtist(b))
	if full >= 0.95 {
		return full
	}

	best := full
	for _, ai := range SplitArtists(NormalizeArtist(a)) {
		for _, bi := range SplitArtists(NormalizeArtist(b)) {
			if s := FuzzyScore(ai, bi); s > best {
				best = s
			}
		}
	}
	return best
}

// NormalizeTrack builds the normalized form of a (title, artist) pair,
// detecting an embedded named remix in the raw title.
func NormalizeTrack(title, artist string) NormalizedTrack {
	nt := NormalizedTrack{
		Title:     NormalizeTitle(title),
		Artist:    NormalizeArtist(artist),
		RawTitle:  title,
		RawArtist: artist,
	}

	if m := remixParen.FindStringSubmatch(title); m != nil {
		name := CollapseSpaces(m[1])
		if !genericMixWords[strings.ToLower(name)] {
			nt.RemixArtist = name
			nt.RemixType = remixTypeFor(m[2])
			nt.HasNamedRemix = true
			return nt
		}
	}

	if m := remixTrailer.FindStringSubmatch(title); m != nil {
		name := CollapseSpaces(m[1])
		if name != "" && !genericMixWords[strings.ToLower(name)] {
			nt.RemixArtist = name
			nt.RemixType = remixTypeFor(m[2])
			nt.HasNamedRemix = true
		}
	}

	return nt
}

func remixTypeFor(keyword string) RemixType {
	switch strings.ToLower(keyword) {
	case "edit":
		return RemixTypeEdit
	case "bootleg":
		return RemixTypeBootleg
	default:
		// remix, rework, flip and bare mix all classify as remixes
		return RemixTypeRemix
	}
}
