package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/spinsync/spinsync/internal/models"
)

// SyncStateRepository persists the per-service outcome of each request's
// sync attempts. One row per (request, service); retries overwrite.
type SyncStateRepository struct {
	db *sql.DB
}

// NewSyncStateRepository creates a new SyncStateRepository with the given database connection
func NewSyncStateRepository(db *sql.DB) *SyncStateRepository {
	return &SyncStateRepository{db: db}
}

// Save upserts one service's result for a request.
func (r *SyncStateRepository) Save(requestID string, result models.SyncResult) error {
	var trackID string
	var confidence float64
	if result.Match != nil {
		trackID = result.Match.TrackID
		confidence = result.Match.Confidence
	}

	query := `
		INSERT INTO request_sync_state (request_id, service, status, track_id, playlist_id, confidence, error, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (request_id, service) DO UPDATE SET
			status = excluded.status,
			track_id = excluded.track_id,
			playlist_id = excluded.playlist_id,
			confidence = excluded.confidence,
			error = excluded.error,
			updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query,
		requestID,
		result.Service,
		string(result.Status),
		trackID,
		result.PlaylistID,
		confidence,
		result.Error,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert sync state: %w", err)
	}

	return nil
}

// Status returns the stored status for one (request, service) pair, or ""
// when the pair was never attempted.
func (r *SyncStateRepository) Status(requestID, service string) (models.SyncStatus, error) {
	var status string
	err := r.db.QueryRow(
		`SELECT status FROM request_sync_state WHERE request_id = ? AND service = ?`,
		requestID, service,
	).Scan(&status)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query sync state: %w", err)
	}
	return models.SyncStatus(status), nil
}

// ListForRequest returns a request's per-service results ordered by service
// name so output is stable across runs.
func (r *SyncStateRepository) ListForRequest(requestID string) ([]models.SyncResult, error) {
	query := `
		SELECT service, status, track_id, playlist_id, confidence, error
		FROM request_sync_state
		WHERE request_id = ?
		ORDER BY service ASC
	`

	rows, err := r.db.Query(query, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync state: %w", err)
	}
	defer rows.Close()

	var results []models.SyncResult
	for rows.Next() {
		var (
			result     models.SyncResult
			status     string
			trackID    string
			confidence float64
		)
		if err := rows.Scan(&result.Service, &status, &trackID, &result.PlaylistID, &confidence, &result.Error); err != nil {
			return nil, fmt.Errorf("failed to scan sync state: %w", err)
		}
		result.Status = models.SyncStatus(status)
		if trackID != "" {
			result.Match = &models.TrackMatch{Service: result.Service, TrackID: trackID, Confidence: confidence}
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return results, nil
}
