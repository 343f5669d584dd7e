package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/google/uuid"
)

// GetSessionByID retrieves a session by its ID
func GetSessionByID(ctx context.Context, db sqlscan.Querier, sessionID string) (*SessionRecord, error) {
	query := `SELECT id, city, category, json(liked_names) as liked_names, created_at, updated_at FROM sessions WHERE id = ?`
	var s SessionRecord
	err := sqlscan.Get(ctx, db, &s, query, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, err
	}
	return &s, nil
}

// GetLatestSession retrieves the most recently updated session
func GetLatestSession(ctx context.Context, db sqlscan.Querier) (*SessionRecord, error) {
	query := `SELECT id, city, category, json(liked_names) as liked_names, created_at, updated_at FROM sessions ORDER BY updated_at DESC LIMIT 1`
	var s SessionRecord
	err := sqlscan.Get(ctx, db, &s, query)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // No sessions exist
		}
		return nil, err
	}
	return &s, nil
}

// ListSessions retrieves all sessions ordered by most recent activity
func ListSessions(ctx context.Context, db sqlscan.Querier) ([]SessionRecord, error) {
	query := `SELECT id, city, category, json(liked_names) as liked_names, created_at, updated_at FROM sessions ORDER BY updated_at DESC`
	var sessions []SessionRecord
	if err := sqlscan.Select(ctx, db, &sessions, query); err != nil {
		return nil, err
	}
	return sessions, nil
}

// CreateSession creates a new session in the database
func CreateSession(ctx context.Context, db Execer, session *SessionRecord) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.LikedNames == nil {
		session.LikedNames = JSONStringArray{}
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	if session.UpdatedAt.IsZero() {
		session.UpdatedAt = time.Now()
	}

	query := `INSERT INTO sessions (id, city, category, liked_names, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query, session.ID, session.City, session.Category, session.LikedNames, session.CreatedAt, session.UpdatedAt)
	return err
}

// UpdateSessionLikes replaces the session's stored liked-name snapshot
func UpdateSessionLikes(ctx context.Context, db Execer, sessionID string, likedNames []string) error {
	query := `UPDATE sessions SET liked_names = ?, updated_at = ? WHERE id = ?`
	_, err := db.ExecContext(ctx, query, JSONStringArray(likedNames), time.Now(), sessionID)
	return err
}

// TouchSession bumps the session's updated_at timestamp
func TouchSession(ctx context.Context, db Execer, sessionID string) error {
	query := `UPDATE sessions SET updated_at = ? WHERE id = ?`
	_, err := db.ExecContext(ctx, query, time.Now(), sessionID)
	return err
}

// GetTurnsBySessionID retrieves a session's transcript in conversation order
func GetTurnsBySessionID(ctx context.Context, db sqlscan.Querier, sessionID string) ([]TurnRecord, error) {
	query := `SELECT id, session_id, seq, sender, text, original_query, shown_count, total_count, created_at FROM turns WHERE session_id = ? ORDER BY seq`
	var turns []TurnRecord
	if err := sqlscan.Select(ctx, db, &turns, query, sessionID); err != nil {
		return nil, err
	}
	return turns, nil
}

// AppendTurn creates a new transcript line
func AppendTurn(ctx context.Context, db Execer, turn *TurnRecord) error {
	if turn.ID == "" {
		turn.ID = uuid.New().String()
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now()
	}

	query := `INSERT INTO turns (id, session_id, seq, sender, text, original_query, shown_count, total_count, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query, turn.ID, turn.SessionID, turn.Seq, turn.Sender, turn.Text, turn.OriginalQuery, turn.ShownCount, turn.TotalCount, turn.CreatedAt)
	return err
}

// UpdateTurnCounts refreshes a stored turn's pagination counters after a
// "show more" merge
func UpdateTurnCounts(ctx context.Context, db Execer, turnID string, shownCount, totalCount int) error {
	query := `UPDATE turns SET shown_count = ?, total_count = ? WHERE id = ?`
	_, err := db.ExecContext(ctx, query, shownCount, totalCount, turnID)
	return err
}

// CreateReaction appends a like/dislike toggle to the audit trail
func CreateReaction(ctx context.Context, db Execer, reaction *ReactionRecord) error {
	if reaction.ID == "" {
		reaction.ID = uuid.New().String()
	}
	if reaction.CreatedAt.IsZero() {
		reaction.CreatedAt = time.Now()
	}

	query := `INSERT INTO reactions (id, session_id, venue_name, liked, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query, reaction.ID, reaction.SessionID, reaction.VenueName, reaction.Liked, reaction.CreatedAt)
	return err
}

// GetReactionsBySessionID retrieves a session's reaction history in order
func GetReactionsBySessionID(ctx context.Context, db sqlscan.Querier, sessionID string) ([]ReactionRecord, error) {
	query := `SELECT id, session_id, venue_name, liked, created_at FROM reactions WHERE session_id = ? ORDER BY created_at`
	var reactions []ReactionRecord
	if err := sqlscan.Select(ctx, db, &reactions, query, sessionID); err != nil {
		return nil, err
	}
	return reactions, nil
}
