package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"github.com/spinsync/spinsync/internal/models"
)

// TokenRepository persists per-service OAuth tokens. Tokens are stored as
// JSON; one row per (user, service).
type TokenRepository struct {
	db *sql.DB
}

// NewTokenRepository creates a new TokenRepository with the given database connection
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// SaveToken upserts a user's token for one service.
func (r *TokenRepository) SaveToken(userID, service string, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	query := `
		INSERT INTO user_tokens (user_id, service, token, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, service) DO UPDATE SET
			token = excluded.token,
			updated_at = excluded.updated_at
	`

	if _, err := r.db.Exec(query, userID, service, string(data), time.Now()); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// Token returns a user's stored token for one service, or nil when the
// service was never connected.
func (r *TokenRepository) Token(userID, service string) (*oauth2.Token, error) {
	var data string
	err := r.db.QueryRow(
		`SELECT token FROM user_tokens WHERE user_id = ? AND service = ?`,
		userID, service,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query token: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal([]byte(data), &token); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	return &token, nil
}

// LoadUser assembles a user with all stored service tokens.
func (r *TokenRepository) LoadUser(userID string) (models.User, error) {
	user := models.User{ID: userID, Tokens: map[string]*oauth2.Token{}}

	rows, err := r.db.Query(`SELECT service, token FROM user_tokens WHERE user_id = ?`, userID)
	if err != nil {
		return user, fmt.Errorf("failed to query tokens: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var service, data string
		if err := rows.Scan(&service, &data); err != nil {
			return user, fmt.Errorf("failed to scan token: %w", err)
		}
		var token oauth2.Token
		if err := json.Unmarshal([]byte(data), &token); err != nil {
			return user, fmt.Errorf("failed to decode token: %w", err)
		}
		user.Tokens[service] = &token
	}

	if err := rows.Err(); err != nil {
		return user, fmt.Errorf("row iteration error: %w", err)
	}
	return user, nil
}
