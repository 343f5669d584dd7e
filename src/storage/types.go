package storage

import "time"

// SessionRecord is one stored conversation, keyed by the (city, category)
// pair it was scoped to. LikedNames mirrors the session's liked set at the
// time of the last update.
type SessionRecord struct {
	ID         string          `json:"id" db:"id"`
	City       string          `json:"city" db:"city"`
	Category   string          `json:"category" db:"category"`
	LikedNames JSONStringArray `json:"liked_names" db:"liked_names"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
}

// TurnRecord is one transcript line. Suggestion payloads are intentionally
// not stored; only the text and the pagination counters survive a session.
type TurnRecord struct {
	ID            string    `json:"id" db:"id"`
	SessionID     string    `json:"session_id" db:"session_id"`
	Seq           int       `json:"seq" db:"seq"`
	Sender        string    `json:"sender" db:"sender"`
	Text          string    `json:"text" db:"text"`
	OriginalQuery string    `json:"original_query,omitempty" db:"original_query"`
	ShownCount    int       `json:"shown_count" db:"shown_count"`
	TotalCount    int       `json:"total_count" db:"total_count"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// ReactionRecord is one like/dislike toggle, kept as an append-only audit
// trail.
type ReactionRecord struct {
	ID        string    `json:"id" db:"id"`
	SessionID string    `json:"session_id" db:"session_id"`
	VenueName string    `json:"venue_name" db:"venue_name"`
	Liked     bool      `json:"liked" db:"liked"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
