package formatter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/spinsync/spinsync/internal/models"
	"github.com/spinsync/spinsync/internal/recommend"
	"github.com/spinsync/spinsync/internal/sync"
	sstesting "github.com/spinsync/spinsync/internal/testing"
)

func fptr(f float64) *float64 { return &f }
func sptr(s string) *string   { return &s }

var testRequest = models.Request{Title: "Strobe", Artist: "Deadmau5"}

func TestFormatSyncResults(t *testing.T) {
	result := models.MultiSyncResult{Results: []models.SyncResult{
		{
			Service: "spinlist",
			Status:  models.StatusAdded,
			Match:   &models.TrackMatch{Title: "Strobe", Artist: "Deadmau5", Confidence: 0.93},
		},
		{Service: "wavebeat", Status: models.StatusError, Error: "External API timeout"},
	}}

	out := FormatSyncResults(testRequest, result)

	for _, want := range []string{"Deadmau5 - Strobe", "spinlist", "added", "0.93", "wavebeat", "External API timeout"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatSyncResultsEmpty(t *testing.T) {
	out := FormatSyncResults(testRequest, models.MultiSyncResult{})
	if !strings.Contains(out, "no connected services") {
		t.Errorf("empty fan-out not reported:\n%s", out)
	}
}

func TestFormatSyncResultsAllNotFound(t *testing.T) {
	result := models.MultiSyncResult{Results: []models.SyncResult{
		{Service: "spinlist", Status: models.StatusNotFound},
	}}

	out := FormatSyncResults(testRequest, result)
	if !strings.Contains(out, "not found on any service") {
		t.Errorf("all-not-found not reported:\n%s", out)
	}
}

func TestFormatBatchSummaries(t *testing.T) {
	out := FormatBatchSummaries([]sync.BatchSummary{
		{Service: "spinlist", Added: 3, NotFound: 1, Skipped: 2},
	})

	for _, want := range []string{"spinlist", "added 3", "not found 1", "skipped 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func sampleRecommendations() recommend.Result {
	return recommend.Result{
		Profile: models.EventProfile{
			AvgBPM:         128,
			BPMLow:         124,
			BPMHigh:        132,
			DominantKeys:   []string{"8A"},
			DominantGenres: []string{"Progressive House"},
			TrackCount:     5,
		},
		Suggestions: []models.ScoredTrack{
			{
				Profile: models.TrackProfile{
					Title: "Opus", Artist: "Eric Prydz", TrackID: "t1", Source: "spinlist",
					BPM: fptr(127), Key: sptr("8A"), Genre: sptr("Progressive House"),
				},
				Score: 0.98, BPMScore: 1, KeyScore: 1, GenreScore: 0.9,
			},
		},
		EnrichedCount:           2,
		TotalCandidatesSearched: 40,
		ServicesUsed:            []string{"spinlist", "wavebeat"},
	}
}

func TestFormatRecommendations(t *testing.T) {
	out := FormatRecommendations(sampleRecommendations())

	for _, want := range []string{"avg 128 bpm", "8A", "Progressive House", "Eric Prydz - Opus", "127 bpm", "enriched 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteRecommendationsCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRecommendationsCSV(&buf, sampleRecommendations()); err != nil {
		t.Fatalf("WriteRecommendationsCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want header + 1 row", len(records))
	}

	row := records[1]
	if row[0] != "1" || row[1] != "Opus" || row[2] != "Eric Prydz" {
		t.Errorf("unexpected row: %v", row)
	}
	if row[3] != "127" || row[4] != "8A" || row[5] != "Progressive House" {
		t.Errorf("metadata columns wrong: %v", row)
	}
	if row[7] != "0.9800" {
		t.Errorf("score column = %q, want 0.9800", row[7])
	}
}

func TestWriteRecommendationsCSVWriteError(t *testing.T) {
	if err := WriteRecommendationsCSV(&sstesting.FWriter{}, sampleRecommendations()); err == nil {
		t.Fatal("expected error from failing writer")
	}
}
