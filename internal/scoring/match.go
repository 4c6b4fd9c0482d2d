// package scoring ranks candidate tracks: picking the single best catalog
// match for a request, and scoring recommendation candidates against an
// event's musical profile.
package scoring

import (
	"math"
	"regexp"
	"strings"

	"github.com/spinsync/spinsync/internal/models"
	"github.com/spinsync/spinsync/internal/normalizer"
)

const (
	// titleWeight/artistWeight blend the two fuzzy scores everywhere a
	// combined match confidence is computed.
	titleWeight  = 0.6
	artistWeight = 0.4

	// NowPlayingThreshold is the combined score a live-playback match must
	// clear to be accepted.
	NowPlayingThreshold = 0.8
)

// MatchOptions tunes best-match selection.
type MatchOptions struct {
	MinScore       float64
	MinArtistScore float64
	PreferOriginal bool
}

// DefaultMatchOptions returns the thresholds used by metadata enrichment.
func DefaultMatchOptions() MatchOptions {
	return MatchOptions{MinScore: 0.4, MinArtistScore: 0.35, PreferOriginal: true}
}

var remixTitleRegex = regexp.MustCompile(`(?i)[(\[-].*\b(remix|bootleg|rework|flip|vip)\b`)

// isOriginalMixName classifies a structured mix name as an original or
// extended mix.
func isOriginalMixName(mixName string) bool {
	m := strings.ToLower(mixName)
	return strings.Contains(m, "original") || strings.Contains(m, "extended")
}

// CombinedScore blends title and artist fuzzy similarity 0.6/0.4.
func CombinedScore(titleScore, artistScore float64) float64 {
	return titleWeight*titleScore + artistWeight*artistScore
}

// FindBestMatch picks the best candidate for (title, artist) from raw
// search results, or nil if nothing clears opts.MinScore. The returned
// score is the raw combined value; version-preference adjustments are
// deliberately unclamped, so it can sit slightly outside [0, 1].
func FindBestMatch(results []models.RawResult, title, artist string, opts MatchOptions) (*models.RawResult, float64) {
	if len(results) == 0 {
		return nil, 0
	}

	modalBPM, haveMode := modalRoundedBPM(results)

	var best *models.RawResult
	bestScore := math.Inf(-1)

	for i := range results {
		cand := &results[i]

		artistScore := normalizer.ArtistMatchScore(artist, cand.Artist)
		if artistScore < opts.MinArtistScore {
			// a strong title match must never override a wrong artist
			continue
		}
		titleScore := normalizer.FuzzyScore(normalizer.NormalizeTitle(title), normalizer.NormalizeTitle(cand.Title))

		score := CombinedScore(titleScore, artistScore)

		if opts.PreferOriginal {
			switch {
			case cand.MixName != nil && isOriginalMixName(*cand.MixName):
				score += 0.1
			case cand.MixName == nil && remixTitleRegex.MatchString(cand.Title):
				score -= 0.1
			}
		}

		if haveMode && cand.BPM != nil && math.Round(*cand.BPM) == modalBPM {
			score += 0.01
		}

		if score > bestScore {
			bestScore = score
			best = cand
		}
	}

	if best == nil || bestScore < opts.MinScore {
		return nil, 0
	}
	return best, bestScore
}

// modalRoundedBPM returns the most frequent rounded BPM across candidates.
func modalRoundedBPM(results []models.RawResult) (float64, bool) {
	counts := make(map[float64]int)
	for i := range results {
		if results[i].BPM != nil {
			counts[math.Round(*results[i].BPM)]++
		}
	}

	var mode float64
	bestCount := 0
	for bpm, count := range counts {
		if count > bestCount || (count == bestCount && bpm < mode) {
			mode = bpm
			bestCount = count
		}
	}
	return mode, bestCount > 0
}

// MatchNowPlaying selects the accepted request best matching an incoming
// (title, artist) pair from live playback, or nil below the 0.8 threshold.
func MatchNowPlaying(title, artist string, requests []models.Request) *models.Request {
	var best *models.Request
	bestScore := 0.0

	for i := range requests {
		req := &requests[i]
		score := CombinedScore(
			normalizer.FuzzyScore(normalizer.NormalizeTitle(title), normalizer.NormalizeTitle(req.Title)),
			normalizer.ArtistMatchScore(artist, req.Artist),
		)
		if score > bestScore {
			bestScore = score
			best = req
		}
	}

	if best == nil || bestScore < NowPlayingThreshold {
		return nil
	}
	return best
}
