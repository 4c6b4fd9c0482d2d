package scoring

import (
	"math"
	"sort"
	"strings"

	"github.com/spinsync/spinsync/internal/camelot"
	"github.com/spinsync/spinsync/internal/models"
	"github.com/spinsync/spinsync/internal/shared"
)

const (
	bpmWeight   = 0.40
	keyWeight   = 0.40
	genreWeight = 0.20

	// BPM scoring shape: within bpmExactWindow of the target tempo is a
	// perfect score, beyond bpmZeroWindow scores nothing, linear between.
	bpmExactWindow = 2.0
	bpmZeroWindow  = 20.0

	// halfTimePenalty discounts half-/double-time matches: valid for
	// mixing, but weaker than an exact tempo match.
	halfTimePenalty = 0.7

	maxDominant = 3
)

// BuildEventProfile aggregates the musical character of an event's tracks:
// average and range of known BPMs, and the top-3 keys and genres by
// occurrence (ties broken by first appearance).
func BuildEventProfile(tracks []models.TrackProfile) models.EventProfile {
	profile := models.EventProfile{TrackCount: len(tracks)}

	var bpmSum float64
	var bpmCount int
	for _, t := range tracks {
		if t.BPM == nil {
			continue
		}
		bpm := *t.BPM
		bpmSum += bpm
		bpmCount++
		if profile.BPMLow == 0 || bpm < profile.BPMLow {
			profile.BPMLow = bpm
		}
		if bpm > profile.BPMHigh {
			profile.BPMHigh = bpm
		}
	}
	if bpmCount > 0 {
		profile.AvgBPM = bpmSum / float64(bpmCount)
	}

	keys := make([]string, 0, len(tracks))
	genres := make([]string, 0, len(tracks))
	for _, t := range tracks {
		if t.Key != nil && *t.Key != "" {
			keys = append(keys, *t.Key)
		}
		if t.Genre != nil && *t.Genre != "" {
			genres = append(genres, *t.Genre)
		}
	}
	profile.DominantKeys = topByFrequency(keys, maxDominant)
	profile.DominantGenres = topByFrequency(genres, maxDominant)

	return profile
}

// topByFrequency returns the n most frequent values, preserving first-seen
// order among equal counts. Comparison is case-insensitive; the first-seen
// spelling wins.
func topByFrequency(values []string, n int) []string {
	type entry struct {
		value string
		count int
		seen  int
	}

	index := make(map[string]*entry)
	var entries []*entry
	for i, v := range values {
		k := strings.ToLower(v)
		if e, ok := index[k]; ok {
			e.count++
			continue
		}
		e := &entry{value: v, count: 1, seen: i}
		index[k] = e
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].seen < entries[j].seen
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.value
	}
	return out
}

// ScoreBPM scores a candidate tempo against the event average. Half- and
// double-time are considered: whichever of the three targets is closest
// sets the base score, discounted when the alternative tempo won.
func ScoreBPM(candidateBPM, avgBPM float64) float64 {
	if candidateBPM <= 0 || avgBPM <= 0 {
		return 0.5
	}

	direct := math.Abs(candidateBPM - avgBPM)
	half := math.Abs(candidateBPM - avgBPM*0.5)
	double := math.Abs(candidateBPM - avgBPM*2.0)

	diff := direct
	alt := false
	if half < diff {
		diff = half
		alt = true
	}
	if double < diff {
		diff = double
		alt = true
	}

	var base float64
	switch {
	case diff <= bpmExactWindow:
		base = 1.0
	case diff >= bpmZeroWindow:
		base = 0.0
	default:
		base = 1.0 - (diff-bpmExactWindow)/(bpmZeroWindow-bpmExactWindow)
	}

	if alt {
		base *= halfTimePenalty
	}
	return base
}

// ScoreKey scores a candidate key against the event's dominant keys: the
// best Camelot compatibility wins. Missing or unparseable input is neutral.
func ScoreKey(candidateKey *string, dominantKeys []string) float64 {
	if candidateKey == nil || len(dominantKeys) == 0 {
		return 0.5
	}
	cand, ok := camelot.Parse(*candidateKey)
	if !ok {
		return 0.5
	}

	best := 0.0
	for _, k := range dominantKeys {
		dom, ok := camelot.Parse(k)
		if !ok {
			continue
		}
		if s := camelot.Compatibility(&cand, &dom); s > best {
			best = s
		}
	}
	return best
}

// ScoreGenre scores a candidate genre against the event's dominant genres:
// exact match beats substring match beats family match beats declared
// cross-family affinity.
func ScoreGenre(candidateGenre *string, dominantGenres []string) float64 {
	if candidateGenre == nil || *candidateGenre == "" || len(dominantGenres) == 0 {
		return 0.25
	}
	cand := strings.ToLower(strings.TrimSpace(*candidateGenre))

	best := 0.0
	for _, g := range dominantGenres {
		dom := strings.ToLower(strings.TrimSpace(g))
		score := 0.0
		switch {
		case cand == dom:
			score = 1.0
		case strings.Contains(cand, dom) || strings.Contains(dom, cand):
			score = 0.5
		default:
			famC, famD := genreFamily(cand), genreFamily(dom)
			if famC != "" && famC == famD {
				score = 0.4
			} else if famC != "" && famD != "" {
				score = affinity(famC, famD)
			}
		}
		if score > best {
			best = score
		}
	}
	return best
}

// ScoreCandidate scores one candidate against the event profile. BPM and
// key carry most of the weight; genre weight is redistributed onto them
// when the event has no genre signal at all.
func ScoreCandidate(candidate models.TrackProfile, profile models.EventProfile) models.ScoredTrack {
	wBPM, wKey, wGenre := bpmWeight, keyWeight, genreWeight
	if len(profile.DominantGenres) == 0 {
		wBPM, wKey, wGenre = 0.5, 0.5, 0.0
	}

	candidateBPM := 0.0
	if candidate.BPM != nil {
		candidateBPM = *candidate.BPM
	}

	bpmScore := shared.Round4(ScoreBPM(candidateBPM, profile.AvgBPM))
	keyScore := shared.Round4(ScoreKey(candidate.Key, profile.DominantKeys))
	genreScore := shared.Round4(ScoreGenre(candidate.Genre, profile.DominantGenres))

	return models.ScoredTrack{
		Profile:    candidate,
		Score:      shared.Round4(wBPM*bpmScore + wKey*keyScore + wGenre*genreScore),
		BPMScore:   bpmScore,
		KeyScore:   keyScore,
		GenreScore: genreScore,
	}
}

// RankCandidates scores every candidate against the profile and returns the
// top maxResults by total score.
func RankCandidates(candidates []models.TrackProfile, profile models.EventProfile, maxResults int) []models.ScoredTrack {
	scored := make([]models.ScoredTrack, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, ScoreCandidate(c, profile))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if maxResults > 0 && len(scored) > maxResults {
		scored = scored[:maxResults]
	}
	return scored
}
