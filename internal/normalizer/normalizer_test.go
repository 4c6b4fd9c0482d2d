package normalizer

import "testing"

func TestNormalizeTitle(t *testing.T) {
	tc := []struct {
		name  string
		title string
		want  string
	}{
		{name: "original mix stripped", title: "Strobe (Original Mix)", want: "Strobe"},
		{name: "extended mix stripped", title: "Opus [Extended Mix]", want: "Opus"},
		{name: "radio edit stripped", title: "Greyhound (Radio Edit)", want: "Greyhound"},
		{name: "dash suffix stripped", title: "Animals - Extended", want: "Animals"},
		{name: "named remix preserved", title: "Strobe (Maceo Plex Remix)", want: "Strobe (Maceo Plex Remix)"},
		{name: "instrumental preserved", title: "Faded (Instrumental)", want: "Faded (Instrumental)"},
		{name: "acoustic preserved", title: "Crazy (Acoustic)", want: "Crazy (Acoustic)"},
		{name: "dub mix preserved", title: "Jupiter (Dub Mix)", want: "Jupiter (Dub Mix)"},
		{name: "remaster year preserved", title: "One More Time (2011 Remaster)", want: "One More Time (2011 Remaster)"},
		{name: "stacked suffixes stripped", title: "Satisfaction (Radio Edit) (Original Mix)", want: "Satisfaction"},
		{name: "whitespace collapsed", title: "  One   More  Time ", want: "One More Time"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTitle(tt.title); got != tt.want {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestNormalizeArtist(t *testing.T) {
	tc := []struct {
		name   string
		artist string
		want   string
	}{
		{name: "featuring canonicalized", artist: "Calvin Harris featuring Rihanna", want: "Calvin Harris feat. Rihanna"},
		{name: "ft dot canonicalized", artist: "Duke Dumont ft. Jax Jones", want: "Duke Dumont feat. Jax Jones"},
		{name: "bare ft canonicalized", artist: "Duke Dumont ft Jax Jones", want: "Duke Dumont feat. Jax Jones"},
		{name: "with canonicalized", artist: "Diplo with Sia", want: "Diplo feat. Sia"},
		{name: "no change", artist: "Daft Punk", want: "Daft Punk"},
		{name: "whitespace collapsed", artist: " Fred  again.. ", want: "Fred again.."},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeArtist(tt.artist); got != tt.want {
				t.Errorf("NormalizeArtist(%q) = %q, want %q", tt.artist, got, tt.want)
			}
		})
	}
}

func TestSplitArtists(t *testing.T) {
	tc := []struct {
		name   string
		artist string
		want   []string
	}{
		{name: "comma", artist: "Dom Dolla, Nelly Furtado", want: []string{"Dom Dolla", "Nelly Furtado"}},
		{name: "ampersand", artist: "Bicep & Clark", want: []string{"Bicep", "Clark"}},
		{name: "and word", artist: "Above and Beyond", want: []string{"Above", "Beyond"}},
		{name: "collab x", artist: "Skrillex x Fred again..", want: []string{"Skrillex", "Fred again.."}},
		{name: "feat", artist: "Calvin Harris feat. Rihanna", want: []string{"Calvin Harris", "Rihanna"}},
		{name: "single artist", artist: "Charlotte de Witte", want: []string{"Charlotte de Witte"}},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitArtists(tt.artist)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitArtists(%q) = %v, want %v", tt.artist, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SplitArtists(%q)[%d] = %q, want %q", tt.artist, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPrimaryArtist(t *testing.T) {
	if got := PrimaryArtist("Dom Dolla, Nelly Furtado"); got != "Dom Dolla" {
		t.Errorf("PrimaryArtist = %q, want Dom Dolla", got)
	}
}

func TestFuzzyScore(t *testing.T) {
	tc := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "identical", a: "Strobe", b: "Strobe", want: 1.0},
		{name: "case insensitive", a: "STROBE", b: "strobe", want: 1.0},
		{name: "whitespace trimmed", a: " Strobe ", b: "Strobe", want: 1.0},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := FuzzyScore(tt.a, tt.b); got != tt.want {
				t.Errorf("FuzzyScore(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}

	t.Run("similar strings score high", func(t *testing.T) {
		if got := FuzzyScore("Strobe", "Strobé"); got < 0.7 || got >= 1.0 {
			t.Errorf("FuzzyScore = %v, want in [0.7, 1.0)", got)
		}
	})

	t.Run("unrelated strings score low", func(t *testing.T) {
		if got := FuzzyScore("Strobe", "Windowlicker"); got > 0.5 {
			t.Errorf("FuzzyScore = %v, want <= 0.5", got)
		}
	})
}

func TestArtistMatchScore(t *testing.T) {
	t.Run("exact multi artist fast path", func(t *testing.T) {
		if got := ArtistMatchScore("Dom Dolla, Nelly Furtado", "Dom Dolla, Nelly Furtado"); got != 1.0 {
			t.Errorf("ArtistMatchScore = %v, want 1.0", got)
		}
	})

	t.Run("individual artist match", func(t *testing.T) {
		if got := ArtistMatchScore("Dom Dolla, Nelly Furtado", "Dom Dolla"); got != 1.0 {
			t.Errorf("ArtistMatchScore = %v, want 1.0", got)
		}
	})

	t.Run("feat variants match", func(t *testing.T) {
		if got := ArtistMatchScore("Calvin Harris feat. Rihanna", "Calvin Harris featuring Rihanna"); got != 1.0 {
			t.Errorf("ArtistMatchScore = %v, want 1.0", got)
		}
	})

	t.Run("different artists score low", func(t *testing.T) {
		if got := ArtistMatchScore("Deadmau5", "Taylor Swift"); got > 0.5 {
			t.Errorf("ArtistMatchScore = %v, want <= 0.5", got)
		}
	})
}

func TestNormalizeTrack(t *testing.T) {
	tc := []struct {
		name        string
		title       string
		artist      string
		wantTitle   string
		wantRemix   bool
		wantArtist  string
		wantVariant RemixType
	}{
		{
			name:      "plain track",
			title:     "Strobe",
			artist:    "Deadmau5",
			wantTitle: "Strobe",
		},
		{
			name:      "generic mix is not a named remix",
			title:     "Strobe (Original Mix)",
			artist:    "Deadmau5",
			wantTitle: "Strobe",
		},
		{
			name:        "paren remix",
			title:       "Strobe (Maceo Plex Remix)",
			artist:      "Deadmau5",
			wantTitle:   "Strobe (Maceo Plex Remix)",
			wantRemix:   true,
			wantArtist:  "Maceo Plex",
			wantVariant: RemixTypeRemix,
		},
		{
			name:        "dash edit",
			title:       "Touch It - Loud Luxury Edit",
			artist:      "Busta Rhymes",
			wantTitle:   "Touch It - Loud Luxury Edit",
			wantRemix:   true,
			wantArtist:  "Loud Luxury",
			wantVariant: RemixTypeEdit,
		},
		{
			name:        "bracket bootleg",
			title:       "Gypsy Woman [Solomun Bootleg]",
			artist:      "Crystal Waters",
			wantTitle:   "Gypsy Woman [Solomun Bootleg]",
			wantRemix:   true,
			wantArtist:  "Solomun",
			wantVariant: RemixTypeBootleg,
		},
		{
			name:        "rework classifies as remix",
			title:       "Blue Monday (Hot Since 82 Rework)",
			artist:      "New Order",
			wantTitle:   "Blue Monday (Hot Since 82 Rework)",
			wantRemix:   true,
			wantArtist:  "Hot Since 82",
			wantVariant: RemixTypeRemix,
		},
		{
			name:      "dub mix not a named remix",
			title:     "Jupiter (Dub Mix)",
			artist:    "Solee",
			wantTitle: "Jupiter (Dub Mix)",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTrack(tt.title, tt.artist)
			if got.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", got.Title, tt.wantTitle)
			}
			if got.RawTitle != tt.title || got.RawArtist != tt.artist {
				t.Errorf("raw fields not preserved: %q / %q", got.RawTitle, got.RawArtist)
			}
			if got.HasNamedRemix != tt.wantRemix {
				t.Fatalf("HasNamedRemix = %v, want %v", got.HasNamedRemix, tt.wantRemix)
			}
			if tt.wantRemix {
				if got.RemixArtist != tt.wantArtist {
					t.Errorf("RemixArtist = %q, want %q", got.RemixArtist, tt.wantArtist)
				}
				if got.RemixType != tt.wantVariant {
					t.Errorf("RemixType = %q, want %q", got.RemixType, tt.wantVariant)
				}
			}
		})
	}
}
