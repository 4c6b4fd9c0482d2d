// package formatter renders sync and recommendation results for the CLI and
// exports recommendations to CSV.
package formatter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spinsync/spinsync/internal/models"
	"github.com/spinsync/spinsync/internal/recommend"
	"github.com/spinsync/spinsync/internal/sync"
	"github.com/spinsync/spinsync/internal/ui"
)

// FormatSyncResults renders one request's per-service outcomes.
func FormatSyncResults(request models.Request, result models.MultiSyncResult) string {
	var b strings.Builder

	b.WriteString(ui.Title(fmt.Sprintf("%s - %s", request.Artist, request.Title)))
	b.WriteString("\n")

	if len(result.Results) == 0 {
		b.WriteString(ui.Warn("no connected services attempted this request"))
		b.WriteString("\n")
		return b.String()
	}

	for _, r := range result.Results {
		b.WriteString(fmt.Sprintf("  %-10s %s", r.Service, ui.Status(r.Status)))
		if r.Match != nil {
			b.WriteString(fmt.Sprintf("  %s - %s (%.2f)", r.Match.Artist, r.Match.Title, r.Match.Confidence))
		}
		if r.Error != "" {
			b.WriteString("  " + ui.Err(r.Error))
		}
		b.WriteString("\n")
	}

	if result.AllNotFound() {
		b.WriteString(ui.Warn("not found on any service"))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatBatchSummaries renders per-service tallies after a batch sync.
func FormatBatchSummaries(summaries []sync.BatchSummary) string {
	var b strings.Builder

	b.WriteString(ui.Title("Batch sync"))
	b.WriteString("\n")
	for _, s := range summaries {
		b.WriteString(fmt.Sprintf("  %-10s added %d, matched %d, not found %d, errors %d, skipped %d\n",
			s.Service, s.Added, s.Matched, s.NotFound, s.Errors, s.Skipped))
	}
	return b.String()
}

// FormatRecommendations renders the event profile and ranked suggestions.
func FormatRecommendations(result recommend.Result) string {
	var b strings.Builder

	b.WriteString(ui.Title("Event profile"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  tracks: %d", result.Profile.TrackCount))
	if result.Profile.AvgBPM > 0 {
		b.WriteString(fmt.Sprintf(", avg %.0f bpm (%.0f-%.0f)", result.Profile.AvgBPM, result.Profile.BPMLow, result.Profile.BPMHigh))
	}
	b.WriteString("\n")
	if len(result.Profile.DominantKeys) > 0 {
		b.WriteString(fmt.Sprintf("  keys: %s\n", strings.Join(result.Profile.DominantKeys, ", ")))
	}
	if len(result.Profile.DominantGenres) > 0 {
		b.WriteString(fmt.Sprintf("  genres: %s\n", strings.Join(result.Profile.DominantGenres, ", ")))
	}
	if result.EnrichedCount > 0 {
		b.WriteString(ui.Help(fmt.Sprintf("  enriched %d request(s) with catalog metadata", result.EnrichedCount)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(ui.Title("Suggestions"))
	b.WriteString("\n")
	if len(result.Suggestions) == 0 {
		b.WriteString(ui.Warn("no suggestions found"))
		b.WriteString("\n")
		return b.String()
	}

	for i, s := range result.Suggestions {
		b.WriteString(fmt.Sprintf("%3d. %s - %s", i+1, s.Profile.Artist, s.Profile.Title))
		var tags []string
		if s.Profile.BPM != nil {
			tags = append(tags, fmt.Sprintf("%.0f bpm", *s.Profile.BPM))
		}
		if s.Profile.Key != nil {
			tags = append(tags, *s.Profile.Key)
		}
		if s.Profile.Genre != nil {
			tags = append(tags, *s.Profile.Genre)
		}
		if len(tags) > 0 {
			b.WriteString(" (" + strings.Join(tags, ", ") + ")")
		}
		b.WriteString(fmt.Sprintf("  %s\n", ui.Help(fmt.Sprintf("score %.4f [%s]", s.Score, s.Profile.Source))))
	}

	if len(result.ServicesUsed) > 0 {
		b.WriteString(ui.Help(fmt.Sprintf("searched %d candidate(s) across %s",
			result.TotalCandidatesSearched, strings.Join(result.ServicesUsed, ", "))))
		b.WriteString("\n")
	}
	return b.String()
}

// WriteRecommendationsCSV exports ranked suggestions as CSV with one row per
// suggestion: rank, title, artist, bpm, key, genre, source, scores.
func WriteRecommendationsCSV(w io.Writer, result recommend.Result) error {
	writer := csv.NewWriter(w)

	headers := []string{"Rank", "Title", "Artist", "BPM", "Key", "Genre", "Source", "Score", "BPMScore", "KeyScore", "GenreScore"}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, s := range result.Suggestions {
		bpm := ""
		if s.Profile.BPM != nil {
			bpm = strconv.FormatFloat(*s.Profile.BPM, 'f', -1, 64)
		}
		key := ""
		if s.Profile.Key != nil {
			key = *s.Profile.Key
		}
		genre := ""
		if s.Profile.Genre != nil {
			genre = *s.Profile.Genre
		}

		record := []string{
			strconv.Itoa(i + 1),
			s.Profile.Title,
			s.Profile.Artist,
			bpm,
			key,
			genre,
			s.Profile.Source,
			formatScore(s.Score),
			formatScore(s.BPMScore),
			formatScore(s.KeyScore),
			formatScore(s.GenreScore),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("CSV writer error: %w", err)
	}
	return nil
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}
