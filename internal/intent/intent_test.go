package intent

import "testing"

func TestParseDefault(t *testing.T) {
	tc := []struct {
		name  string
		query string
	}{
		{name: "empty", query: ""},
		{name: "whitespace", query: "   "},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.query)
			if !got.WantsOriginal() {
				t.Error("WantsOriginal = false, want true")
			}
			if got.WantsRemix() {
				t.Error("WantsRemix = true, want false")
			}
			if len(got.VersionTags()) != 0 {
				t.Errorf("VersionTags = %v, want empty", got.VersionTags())
			}
		})
	}
}

func TestParsePlainQuery(t *testing.T) {
	got := Parse("strobe deadmau5")
	if !got.WantsOriginal() {
		t.Error("WantsOriginal = false, want true")
	}
	if got.WantsRemix() || len(got.VersionTags()) != 0 {
		t.Errorf("plain query parsed as versioned: %+v", got)
	}
	if got.RawQuery() != "strobe deadmau5" {
		t.Errorf("RawQuery = %q", got.RawQuery())
	}
}

func TestParseVersionTags(t *testing.T) {
	tc := []struct {
		name      string
		query     string
		wantTags  []string
		wantRemix bool
	}{
		{name: "sped up", query: "strobe sped up", wantTags: []string{"sped up"}},
		{name: "parenthesized tag", query: "strobe (sped up)", wantTags: []string{"sped up"}},
		{name: "slowed and reverb records both", query: "night drive slowed and reverb", wantTags: []string{"slowed and reverb", "slowed"}},
		{name: "live", query: "one more time live", wantTags: []string{"live"}},
		{name: "nightcore", query: "nightcore faded", wantTags: []string{"nightcore"}},
		{name: "8d audio", query: "blinding lights 8d audio", wantTags: []string{"8d audio"}},
		{name: "multiple tags keep order", query: "creep acoustic live", wantTags: []string{"acoustic", "live"}},
		{name: "repeated tag recorded per occurrence", query: "sped up strobe (sped up)", wantTags: []string{"sped up", "sped up"}},
		{name: "alive is not live", query: "alive krewella", wantTags: nil},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.query)
			tags := got.VersionTags()
			if len(tags) != len(tt.wantTags) {
				t.Fatalf("VersionTags = %v, want %v", tags, tt.wantTags)
			}
			for i := range tags {
				if tags[i] != tt.wantTags[i] {
					t.Errorf("VersionTags[%d] = %q, want %q", i, tags[i], tt.wantTags[i])
				}
			}
			if len(tt.wantTags) > 0 && got.WantsOriginal() {
				t.Error("WantsOriginal = true with version tags present")
			}
			if len(tt.wantTags) == 0 && !got.WantsOriginal() {
				t.Error("WantsOriginal = false with no version markers")
			}
		})
	}
}

func TestParseRemixIntent(t *testing.T) {
	t.Run("bare remix word", func(t *testing.T) {
		got := Parse("strobe remix")
		if !got.WantsRemix() {
			t.Fatal("WantsRemix = false, want true")
		}
		if got.WantsOriginal() {
			t.Error("WantsOriginal = true, want false")
		}
	})

	t.Run("named remix captures artist", func(t *testing.T) {
		got := Parse("strobe maceo plex remix")
		if !got.WantsRemix() {
			t.Fatal("WantsRemix = false, want true")
		}
		if got.ExplicitRemixArtist() != "maceo plex" {
			t.Errorf("ExplicitRemixArtist = %q, want %q", got.ExplicitRemixArtist(), "maceo plex")
		}
	})

	t.Run("bootleg counts as remix intent", func(t *testing.T) {
		got := Parse("gypsy woman solomun bootleg")
		if !got.WantsRemix() {
			t.Fatal("WantsRemix = false, want true")
		}
	})

	t.Run("edit counts as remix intent", func(t *testing.T) {
		if got := Parse("touch it loud luxury edit"); !got.WantsRemix() {
			t.Fatal("WantsRemix = false, want true")
		}
	})
}

func TestHasTag(t *testing.T) {
	got := Parse("strobe sped up")
	if !got.HasTag("sped up") {
		t.Error("HasTag(sped up) = false, want true")
	}
	if !got.HasTag("Sped Up") {
		t.Error("HasTag is case sensitive, want insensitive")
	}
	if got.HasTag("slowed") {
		t.Error("HasTag(slowed) = true, want false")
	}
}

func TestContextImmutability(t *testing.T) {
	got := Parse("strobe sped up slowed")
	tags := got.VersionTags()
	tags[0] = "mutated"

	if got.VersionTags()[0] != "sped up" {
		t.Error("VersionTags exposed internal slice; context was mutated")
	}
}
