package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/spinsync/spinsync/internal/models"
	"github.com/spinsync/spinsync/internal/shared"
)

// RequestRepository persists song requests and their legacy sync mirror.
type RequestRepository struct {
	db *sql.DB
}

// NewRequestRepository creates a new RequestRepository with the given database connection
func NewRequestRepository(db *sql.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// Create inserts a new request, generating its ID when absent.
func (r *RequestRepository) Create(request *models.Request) error {
	if request.ID == "" {
		request.ID = shared.GenerateID()
	}
	if request.Status == "" {
		request.Status = models.RequestPending
	}
	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO requests (id, event_id, title, artist, raw_query, status, bpm, key, genre, legacy_status, legacy_track_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		request.ID,
		request.EventID,
		request.Title,
		request.Artist,
		request.RawQuery,
		request.Status,
		request.BPM,
		request.Key,
		request.Genre,
		string(request.LegacyStatus),
		request.LegacyTrackID,
		request.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert request: %w", err)
	}

	return nil
}

// Get retrieves a request by ID.
func (r *RequestRepository) Get(id string) (*models.Request, error) {
	query := `
		SELECT id, event_id, title, artist, raw_query, status, bpm, key, genre, legacy_status, legacy_track_id, created_at
		FROM requests
		WHERE id = ?
	`

	request, err := scanRequest(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("request not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan request: %w", err)
	}
	return request, nil
}

// ListForEvent retrieves an event's requests, optionally filtered to the
// given statuses, oldest first.
func (r *RequestRepository) ListForEvent(eventID string, statuses ...models.RequestStatus) ([]*models.Request, error) {
	query := `
		SELECT id, event_id, title, artist, raw_query, status, bpm, key, genre, legacy_status, legacy_track_id, created_at
		FROM requests
		WHERE event_id = ?
	`
	args := []any{eventID}

	if len(statuses) > 0 {
		query += " AND status IN (?"
		args = append(args, string(statuses[0]))
		for _, s := range statuses[1:] {
			query += ", ?"
			args = append(args, string(s))
		}
		query += ")"
	}

	query += " ORDER BY created_at ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.Request
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return requests, nil
}

// ListPlayable retrieves the accepted and played requests for an event, the
// set both sync and recommendation operate on.
func (r *RequestRepository) ListPlayable(eventID string) ([]*models.Request, error) {
	return r.ListForEvent(eventID, models.RequestAccepted, models.RequestPlayed)
}

// UpdateStatus moves a request through its lifecycle.
func (r *RequestRepository) UpdateStatus(id string, status models.RequestStatus) error {
	result, err := r.db.Exec(`UPDATE requests SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update request status: %w", err)
	}
	return requireRow(result, id)
}

// UpdateTrackMetadata stores enriched BPM, key and genre. Nil values leave
// the stored column untouched so enrichment never erases known metadata.
func (r *RequestRepository) UpdateTrackMetadata(id string, bpm *float64, key, genre *string) error {
	query := `
		UPDATE requests
		SET bpm = COALESCE(?, bpm), key = COALESCE(?, key), genre = COALESCE(?, genre)
		WHERE id = ?
	`

	result, err := r.db.Exec(query, bpm, key, genre, id)
	if err != nil {
		return fmt.Errorf("failed to update request metadata: %w", err)
	}
	return requireRow(result, id)
}

// UpdateLegacyResult mirrors the designated legacy service's outcome into
// the request's flat fields.
func (r *RequestRepository) UpdateLegacyResult(id string, status models.SyncStatus, trackID string) error {
	query := `
		UPDATE requests
		SET legacy_status = ?, legacy_track_id = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query, string(status), trackID, id)
	if err != nil {
		return fmt.Errorf("failed to update legacy result: %w", err)
	}
	return requireRow(result, id)
}

// requireRow converts a zero-row update into a not-found error.
func requireRow(result sql.Result, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("request not found: %s", id)
	}
	return nil
}

// rowScanner abstracts sql.Row and sql.Rows for the shared scan path.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*models.Request, error) {
	var (
		request      models.Request
		bpm          sql.NullFloat64
		key          sql.NullString
		genre        sql.NullString
		legacyStatus string
	)

	err := row.Scan(
		&request.ID,
		&request.EventID,
		&request.Title,
		&request.Artist,
		&request.RawQuery,
		&request.Status,
		&bpm,
		&key,
		&genre,
		&legacyStatus,
		&request.LegacyTrackID,
		&request.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if bpm.Valid {
		request.BPM = &bpm.Float64
	}
	if key.Valid {
		request.Key = &key.String
	}
	if genre.Valid {
		request.Genre = &genre.String
	}
	request.LegacyStatus = models.SyncStatus(legacyStatus)

	return &request, nil
}
