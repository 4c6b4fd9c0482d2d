// package intent infers which track versions a requester will accept from
// the free-text query they typed.
//
// A query like "strobe sped up" means the original mix is the wrong answer;
// "strobe maceo plex remix" means only that remix will do. The parsed
// Context is immutable and travels with the request through sync.
package intent

import (
	"regexp"
	"sort"
	"strings"
)

// versionTags is the fixed vocabulary of non-original version markers.
// Multi-word tags precede their prefixes so both are recorded when present.
var versionTags = []string{
	"slowed and reverb",
	"slowed + reverb",
	"sped up",
	"slowed",
	"acoustic",
	"live",
	"instrumental",
	"karaoke",
	"nightcore",
	"8d audio",
	"demo",
	"vip",
}

var (
	tagRegexes       map[string]*regexp.Regexp
	remixPhraseRegex = regexp.MustCompile(`(?i)([\w'.&]+(?:\s+[\w'.&]+){0,1}?)\s+(remix|edit|bootleg)\b`)
	remixWordRegex   = regexp.MustCompile(`(?i)\b(remix|edit|bootleg)\b`)
)

// remixStopwords are capture prefixes that do not name a remixer.
var remixStopwords = map[string]bool{
	"the": true, "a": true, "an": true, "original": true, "extended": true,
	"official": true, "full": true, "new": true, "best": true,
}

func init() {
	tagRegexes = make(map[string]*regexp.Regexp, len(versionTags))
	for _, tag := range versionTags {
		escaped := strings.ReplaceAll(regexp.QuoteMeta(tag), `\ `, `\s+`)
		tagRegexes[tag] = regexp.MustCompile(`(?i)\b` + escaped + `\b`)
	}
}

// Context captures what the requester actually asked for. The zero value is
// not valid; use Parse. Fields are unexported so a constructed Context
// cannot be mutated by downstream components.
type Context struct {
	rawQuery            string
	wantsOriginal       bool
	wantsRemix          bool
	explicitRemixArtist string
	versionTags         []string
}

// Default returns the intent for an empty or absent query: the requester
// wants the original version.
func Default() Context {
	return Context{wantsOriginal: true}
}

// RawQuery returns the query the context was parsed from.
func (c Context) RawQuery() string { return c.rawQuery }

// WantsOriginal reports whether the requester expects the original version.
func (c Context) WantsOriginal() bool { return c.wantsOriginal }

// WantsRemix reports whether the requester asked for a remix, edit, or bootleg.
func (c Context) WantsRemix() bool { return c.wantsRemix }

// ExplicitRemixArtist returns the remixer named in the query, if any.
func (c Context) ExplicitRemixArtist() string { return c.explicitRemixArtist }

// VersionTags returns the requested version tags in order of first
// appearance. The returned slice is a copy.
func (c Context) VersionTags() []string {
	out := make([]string, len(c.versionTags))
	copy(out, c.versionTags)
	return out
}

// HasTag reports whether the requester explicitly asked for the given tag.
func (c Context) HasTag(tag string) bool {
	for _, t := range c.versionTags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

type tagHit struct {
	tag string
	pos int
}

// Parse builds a Context from the requester's original free-text query.
func Parse(rawQuery string) Context {
	query := strings.TrimSpace(rawQuery)
	if query == "" {
		return Default()
	}

	ctx := Context{rawQuery: rawQuery, wantsOriginal: true}

	var hits []tagHit
	for _, tag := range versionTags {
		for _, loc := range tagRegexes[tag].FindAllStringIndex(query, -1) {
			hits = append(hits, tagHit{tag: tag, pos: loc[0]})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
	for _, h := range hits {
		ctx.versionTags = append(ctx.versionTags, h.tag)
		ctx.wantsOriginal = false
	}

	if remixWordRegex.MatchString(query) {
		ctx.wantsRemix = true
		ctx.wantsOriginal = false
		if m := remixPhraseRegex.FindStringSubmatch(query); m != nil {
			name := strings.TrimSpace(m[1])
			if name != "" && !remixStopwords[strings.ToLower(name)] {
				ctx.explicitRemixArtist = name
			}
		}
	}

	return ctx
}
