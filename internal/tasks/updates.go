package tasks

import (
	"fmt"

	"github.com/spinsync/spinsync/internal/models"
	"github.com/spinsync/spinsync/internal/services"
)

// ProgressUpdate represents a progress event during a watch loop.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Poll phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Poll phase enumeration
type Phase int

const (
	Idle Phase = iota
	Playing
	Played
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Played:
		return "played"
	default:
		return ""
	}
}

func idleUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   Idle,
		Message: "Nothing playing...",
	}
}

func playingUpdate(track *services.PlayingTrack) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Playing,
		Message: fmt.Sprintf("Now playing: %s - %s", track.Artist, track.Title),
		Data:    track,
	}
}

func playedUpdate(request *models.Request) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Played,
		Message: fmt.Sprintf("Marked played: %s - %s", request.Artist, request.Title),
		Data:    request,
	}
}
