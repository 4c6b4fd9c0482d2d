package scoring

import (
	"testing"

	"github.com/spinsync/spinsync/internal/models"
)

func fptr(f float64) *float64 { return &f }
func sptr(s string) *string   { return &s }

func TestFindBestMatchPicksClosest(t *testing.T) {
	results := []models.RawResult{
		{ID: "1", Title: "Strobe (Maceo Plex Remix)", Artist: "Deadmau5"},
		{ID: "2", Title: "Strobe", Artist: "Deadmau5"},
		{ID: "3", Title: "Some Chords", Artist: "Deadmau5"},
	}

	best, score := FindBestMatch(results, "Strobe", "Deadmau5", DefaultMatchOptions())
	if best == nil {
		t.Fatal("FindBestMatch returned nil")
	}
	if best.ID != "2" {
		t.Errorf("best.ID = %s, want 2", best.ID)
	}
	if score < 0.9 {
		t.Errorf("score = %v, want >= 0.9", score)
	}
}

func TestFindBestMatchRejectsWrongArtist(t *testing.T) {
	// a perfect title never overrides an artist below the floor
	results := []models.RawResult{
		{ID: "1", Title: "Strobe", Artist: "Some Tribute Orchestra"},
	}

	if best, _ := FindBestMatch(results, "Strobe", "Deadmau5", DefaultMatchOptions()); best != nil {
		t.Errorf("FindBestMatch = %v, want nil for wrong artist", best.ID)
	}
}

func TestFindBestMatchBelowThreshold(t *testing.T) {
	results := []models.RawResult{
		{ID: "1", Title: "Completely Different Song", Artist: "Deadmau5 Tribute Band"},
	}

	if best, _ := FindBestMatch(results, "Strobe", "Deadmau5", DefaultMatchOptions()); best != nil {
		t.Errorf("FindBestMatch = %v, want nil below MinScore", best.ID)
	}
}

func TestFindBestMatchEmptyResults(t *testing.T) {
	if best, _ := FindBestMatch(nil, "Strobe", "Deadmau5", DefaultMatchOptions()); best != nil {
		t.Error("FindBestMatch on empty input returned a candidate")
	}
}

func TestFindBestMatchPrefersOriginalMixName(t *testing.T) {
	results := []models.RawResult{
		{ID: "remix", Title: "Strobe", Artist: "Deadmau5", MixName: sptr("Club Tools Remix")},
		{ID: "orig", Title: "Strobe", Artist: "Deadmau5", MixName: sptr("Original Mix")},
	}

	best, _ := FindBestMatch(results, "Strobe", "Deadmau5", DefaultMatchOptions())
	if best == nil || best.ID != "orig" {
		t.Fatalf("FindBestMatch = %v, want orig", best)
	}
}

func TestFindBestMatchPenalizesRemixTitle(t *testing.T) {
	// no structured mix name: fall back to the bare-title remix pattern
	results := []models.RawResult{
		{ID: "remix", Title: "Strobe (Maceo Plex Remix)", Artist: "Deadmau5"},
		{ID: "plain", Title: "Strobe", Artist: "Deadmau5"},
	}

	best, _ := FindBestMatch(results, "Strobe", "Deadmau5", DefaultMatchOptions())
	if best == nil || best.ID != "plain" {
		t.Fatalf("FindBestMatch = %v, want plain", best)
	}
}

func TestFindBestMatchBPMConsensus(t *testing.T) {
	// two identically-titled candidates; the one at the modal BPM wins
	results := []models.RawResult{
		{ID: "outlier", Title: "Strobe", Artist: "Deadmau5", BPM: fptr(90)},
		{ID: "consensus", Title: "Strobe", Artist: "Deadmau5", BPM: fptr(128)},
		{ID: "other1", Title: "Strobe (Live)", Artist: "Deadmau5", BPM: fptr(128)},
		{ID: "other2", Title: "Strobe (Sped Up)", Artist: "Deadmau5", BPM: fptr(128.4)},
	}

	best, _ := FindBestMatch(results, "Strobe", "Deadmau5", DefaultMatchOptions())
	if best == nil || best.ID != "consensus" {
		t.Fatalf("FindBestMatch = %v, want consensus", best)
	}
}

func TestFindBestMatchUnclampedPreference(t *testing.T) {
	// perfect title + artist + original mix bonus pushes past 1.0;
	// the adjustment is intentionally unclamped
	results := []models.RawResult{
		{ID: "1", Title: "Strobe", Artist: "Deadmau5", MixName: sptr("Original Mix")},
	}

	_, score := FindBestMatch(results, "Strobe", "Deadmau5", DefaultMatchOptions())
	if score <= 1.0 {
		t.Errorf("score = %v, want > 1.0 from unclamped bonus", score)
	}
}

func TestMatchNowPlaying(t *testing.T) {
	requests := []models.Request{
		{ID: "r1", Title: "Strobe", Artist: "Deadmau5"},
		{ID: "r2", Title: "One More Time", Artist: "Daft Punk"},
	}

	t.Run("matches accepted request", func(t *testing.T) {
		got := MatchNowPlaying("Strobe (Original Mix)", "Deadmau5", requests)
		if got == nil || got.ID != "r1" {
			t.Fatalf("MatchNowPlaying = %v, want r1", got)
		}
	})

	t.Run("below threshold returns nil", func(t *testing.T) {
		if got := MatchNowPlaying("Windowlicker", "Aphex Twin", requests); got != nil {
			t.Errorf("MatchNowPlaying = %v, want nil", got.ID)
		}
	})

	t.Run("empty pool returns nil", func(t *testing.T) {
		if got := MatchNowPlaying("Strobe", "Deadmau5", nil); got != nil {
			t.Error("MatchNowPlaying on empty pool returned a request")
		}
	})
}
