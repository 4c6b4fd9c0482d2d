package version

import (
	"testing"

	"github.com/spinsync/spinsync/internal/intent"
)

func TestIsUnwantedBareTitles(t *testing.T) {
	// bare titles never reject, even when they contain marker words
	tc := []string{"Alive", "Demon Days", "Discovered", "Live Your Life", "Cover Me", ""}

	for _, title := range tc {
		t.Run(title, func(t *testing.T) {
			if IsUnwanted(title, nil) {
				t.Errorf("IsUnwanted(%q) = true, want false", title)
			}
		})
	}
}

func TestIsUnwantedMarkedTitles(t *testing.T) {
	tc := []struct {
		name  string
		title string
		want  bool
	}{
		{name: "sped up paren", title: "Strobe (Sped Up)", want: true},
		{name: "slowed bracket", title: "Night Drive [Slowed]", want: true},
		{name: "slowed and reverb", title: "Night Drive (Slowed And Reverb)", want: true},
		{name: "karaoke", title: "Halo (Karaoke Version)", want: true},
		{name: "demo", title: "Creep (Demo)", want: true},
		{name: "cover", title: "Hurt (Cover)", want: true},
		{name: "live trailing dash", title: "One More Time - Live at Coachella", want: true},
		{name: "live paren", title: "One More Time (Live)", want: true},
		{name: "nightcore", title: "Faded (Nightcore)", want: true},
		{name: "8d audio", title: "Blinding Lights (8D Audio)", want: true},
		{name: "tribute", title: "Wonderwall (Tribute to Oasis)", want: true},
		{name: "named remix is fine", title: "Strobe (Maceo Plex Remix)", want: false},
		{name: "remaster is fine", title: "One More Time (2011 Remaster)", want: false},
		{name: "plain dash segment is fine", title: "Touch It - Loud Luxury Edit", want: false},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUnwanted(tt.title, nil); got != tt.want {
				t.Errorf("IsUnwanted(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}

func TestIsUnwantedWithIntent(t *testing.T) {
	t.Run("requested tag exempts", func(t *testing.T) {
		ictx := intent.Parse("strobe sped up")
		if IsUnwanted("Strobe (Sped Up)", &ictx) {
			t.Error("IsUnwanted = true for explicitly requested version")
		}
	})

	t.Run("family match exempts", func(t *testing.T) {
		// asking for "slowed" also accepts "slowed and reverb"
		ictx := intent.Parse("night drive slowed")
		if IsUnwanted("Night Drive (Slowed And Reverb)", &ictx) {
			t.Error("IsUnwanted = true for same-family requested version")
		}
	})

	t.Run("other tags still reject", func(t *testing.T) {
		ictx := intent.Parse("strobe sped up")
		if !IsUnwanted("Strobe (Karaoke Version)", &ictx) {
			t.Error("IsUnwanted = false, want true for unrequested karaoke version")
		}
	})

	t.Run("intent without tags rejects everything", func(t *testing.T) {
		ictx := intent.Parse("strobe")
		if !IsUnwanted("Strobe (Sped Up)", &ictx) {
			t.Error("IsUnwanted = false, want true with no requested tags")
		}
	})
}
