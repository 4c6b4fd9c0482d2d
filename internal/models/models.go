// package models defines the domain values shared across the sync and
// recommendation engine.
//
// Values here are treated as immutable once constructed: components derive
// new values instead of mutating another component's output.
package models

import (
	"time"

	"golang.org/x/oauth2"
)

// SyncStatus is the outcome of one adapter's attempt for one request.
type SyncStatus string

const (
	StatusMatched  SyncStatus = "matched"
	StatusNotFound SyncStatus = "not_found"
	StatusAdded    SyncStatus = "added"
	StatusError    SyncStatus = "error"
)

// RawResult is a single search hit from an external catalog, the minimum
// surface the catalog capability contract guarantees plus optional metadata.
type RawResult struct {
	ID              string
	Title           string
	Artist          string
	BPM             *float64
	Key             *string
	Genre           *string
	MixName         *string
	DurationSeconds int
	URL             string
	CoverURL        string
}

// TrackProfile is a track's musical metadata as used by the recommendation
// scorer. BPM, Key and Genre are nil when unknown.
type TrackProfile struct {
	Title           string
	Artist          string
	BPM             *float64
	Key             *string
	Genre           *string
	Source          string
	TrackID         string
	URL             string
	CoverURL        string
	DurationSeconds int
}

// EventProfile aggregates the musical character of an event's tracks.
// AvgBPM, BPMLow and BPMHigh are 0 when no track carried a tempo.
type EventProfile struct {
	AvgBPM         float64
	BPMLow         float64
	BPMHigh        float64
	DominantKeys   []string
	DominantGenres []string
	TrackCount     int
}

// TrackMatch is the result of a successful catalog search.
type TrackMatch struct {
	Service         string
	TrackID         string
	Title           string
	Artist          string
	Confidence      float64
	URL             string
	DurationSeconds int
}

// SyncResult is the outcome of one adapter's attempt for one request.
// Error carries a sanitized message and is non-empty iff Status is
// StatusError; it never contains tokens, URLs, or headers.
type SyncResult struct {
	Service    string
	Status     SyncStatus
	Match      *TrackMatch
	PlaylistID string
	Error      string
}

// MultiSyncResult is the ordered list of per-service results for one
// request, one entry per adapter that attempted it.
type MultiSyncResult struct {
	Results []SyncResult
}

// AnyAdded reports whether at least one adapter added the track to a playlist.
func (m MultiSyncResult) AnyAdded() bool {
	for _, r := range m.Results {
		if r.Status == StatusAdded {
			return true
		}
	}
	return false
}

// AllNotFound reports whether every adapter that attempted the request came up empty.
func (m MultiSyncResult) AllNotFound() bool {
	if len(m.Results) == 0 {
		return false
	}
	for _, r := range m.Results {
		if r.Status != StatusNotFound {
			return false
		}
	}
	return true
}

// ScoredTrack pairs a candidate with its recommendation scores.
// Each score is in [0, 1], rounded to 4 decimals.
type ScoredTrack struct {
	Profile    TrackProfile
	Score      float64
	BPMScore   float64
	KeyScore   float64
	GenreScore float64
}

// RequestStatus tracks a song request through its lifecycle.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestPlayed   RequestStatus = "played"
	RequestRejected RequestStatus = "rejected"
)

// Request is a DJ song request accepted into an event.
//
// LegacyStatus and LegacyTrackID mirror the designated legacy service's sync
// result as flat fields for consumers that predate per-service sync state.
type Request struct {
	ID            string
	EventID       string
	Title         string
	Artist        string
	RawQuery      string
	Status        RequestStatus
	BPM           *float64
	Key           *string
	Genre         *string
	LegacyStatus  SyncStatus
	LegacyTrackID string
	CreatedAt     time.Time
}

// HasFullMetadata reports whether the request already carries stored BPM,
// key and genre, letting enrichment skip external lookups entirely.
func (r Request) HasFullMetadata() bool {
	return r.BPM != nil && r.Key != nil && r.Genre != nil
}

// Event is the owning event for a set of requests. DisabledServices lists
// services the organizer opted out of syncing to.
type Event struct {
	ID               string
	Name             string
	DisabledServices []string
}

// SyncEnabled reports whether the event allows syncing to the named service.
func (e Event) SyncEnabled(service string) bool {
	for _, s := range e.DisabledServices {
		if s == service {
			return false
		}
	}
	return true
}

// User owns events and holds per-service OAuth tokens. A service counts as
// connected when a currently valid token is stored for it.
type User struct {
	ID     string
	Tokens map[string]*oauth2.Token
}

// Connected reports whether the user holds a valid token for the service.
func (u User) Connected(service string) bool {
	tok, ok := u.Tokens[service]
	return ok && tok.Valid()
}
