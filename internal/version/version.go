// package version decides whether a candidate track's display title names a
// version the requester does not want (sped up, karaoke, live, ...).
//
// Detection is restricted to parenthetical/bracketed segments and trailing
// "- tag" segments so that titles like "Alive" or "Demon Days" never
// false-positive on the bare words.
package version

import (
	"regexp"
	"strings"

	"github.com/spinsync/spinsync/internal/intent"
)

// rejectTags maps each unwanted-version marker to its tag family. An intent
// tag in the same family exempts the marker from rejection.
var rejectTags = map[string]string{
	"sped up":           "sped up",
	"slowed and reverb": "slowed",
	"slowed + reverb":   "slowed",
	"slowed":            "slowed",
	"karaoke":           "karaoke",
	"demo":              "demo",
	"cover":             "cover",
	"live":              "live",
	"nightcore":         "nightcore",
	"8d audio":          "8d audio",
	"8d":                "8d audio",
	"tribute":           "tribute",
}

// intentFamilies maps intent vocabulary tags onto the same families.
var intentFamilies = map[string]string{
	"sped up":           "sped up",
	"slowed":            "slowed",
	"slowed and reverb": "slowed",
	"slowed + reverb":   "slowed",
	"karaoke":           "karaoke",
	"demo":              "demo",
	"live":              "live",
	"nightcore":         "nightcore",
	"8d audio":          "8d audio",
}

var (
	tagRegexes   map[string]*regexp.Regexp
	segmentRegex = regexp.MustCompile(`\(([^)]*)\)|\[([^\]]*)\]`)
)

func init() {
	tagRegexes = make(map[string]*regexp.Regexp, len(rejectTags))
	for tag := range rejectTags {
		escaped := strings.ReplaceAll(regexp.QuoteMeta(tag), `\ `, `\s+`)
		tagRegexes[tag] = regexp.MustCompile(`(?i)\b` + escaped + `\b`)
	}
}

// segments extracts the title regions version markers may legitimately
// appear in: parenthetical/bracketed content and a trailing dash segment.
func segments(title string) []string {
	var segs []string
	for _, m := range segmentRegex.FindAllStringSubmatch(title, -1) {
		if m[1] != "" {
			segs = append(segs, m[1])
		}
		if m[2] != "" {
			segs = append(segs, m[2])
		}
	}
	if idx := strings.LastIndex(title, " - "); idx >= 0 {
		segs = append(segs, title[idx+3:])
	}
	return segs
}

// IsUnwanted reports whether the display title names a version the
// requester did not ask for. A nil ictx means no explicit intent: every
// detected version marker rejects the candidate.
func IsUnwanted(displayTitle string, ictx *intent.Context) bool {
	if strings.TrimSpace(displayTitle) == "" {
		return false
	}

	segs := segments(displayTitle)
	if len(segs) == 0 {
		return false
	}

	allowed := map[string]bool{}
	if ictx != nil {
		for _, tag := range ictx.VersionTags() {
			if fam, ok := intentFamilies[strings.ToLower(tag)]; ok {
				allowed[fam] = true
			}
		}
	}

	for _, seg := range segs {
		for tag, family := range rejectTags {
			if !tagRegexes[tag].MatchString(seg) {
				continue
			}
			if allowed[family] {
				continue
			}
			return true
		}
	}
	return false
}
