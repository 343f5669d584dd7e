package chat

import "context"

// Sender identifies who authored a turn.
type Sender string

const (
	SenderUser   Sender = "user"
	SenderSystem Sender = "system"
)

// Suggestion is a single venue recommendation attached to a system turn.
// Name is the venue's identity key within a session; the service has no
// separate id field.
type Suggestion struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Address     string  `json:"address,omitempty"`
	Reviews     string  `json:"reviews,omitempty"`
	Website     string  `json:"website,omitempty"`
	Category    string  `json:"category,omitempty"`
	Relevance   float64 `json:"relevance,omitempty"`
	Likes       int     `json:"likes"`
	Liked       bool    `json:"liked,omitempty"`
}

// Turn is one entry in the ordered conversation log. Sender, Text and
// OriginalQuery are immutable after creation; Suggestions, ShownCount,
// TotalCount and HasMore are mutated in place by pagination and reactions.
type Turn struct {
	Sender        Sender       `json:"sender"`
	Text          string       `json:"text"`
	Suggestions   []Suggestion `json:"suggestions,omitempty"`
	ShownCount    int          `json:"shown_count,omitempty"`
	TotalCount    int          `json:"total_count,omitempty"`
	HasMore       bool         `json:"has_more,omitempty"`
	OriginalQuery string       `json:"original_query,omitempty"`
}

// Expandable reports whether the turn can serve a "show more" request.
func (t *Turn) Expandable() bool {
	return t.Sender == SenderSystem && len(t.Suggestions) > 0 && t.HasMore
}

// Remaining returns how many results the service still holds for this turn.
func (t *Turn) Remaining() int {
	if t.TotalCount <= t.ShownCount {
		return 0
	}
	return t.TotalCount - t.ShownCount
}

// SuggestRequest is the payload for an initial suggestion query.
type SuggestRequest struct {
	City     string   `json:"city"`
	Category string   `json:"category"`
	Query    string   `json:"query"`
	Liked    []string `json:"liked"`
}

// PageRequest is the payload for a paginated continuation of an earlier query.
type PageRequest struct {
	City     string `json:"city"`
	Category string `json:"category"`
	Query    string `json:"query"`
	Offset   int    `json:"offset"`
	Limit    int    `json:"limit"`
}

// ReactionRequest is the payload for a like or dislike toggle.
type ReactionRequest struct {
	City     string `json:"city"`
	Category string `json:"category"`
	Name     string `json:"name"`
}

// SuggestResponse is the service's answer to Suggest and ShowMore. Exactly one
// of Suggestions, Response or Error is meaningful: ranked venues with the full
// result count, a plain conversational reply, or a service-reported error.
type SuggestResponse struct {
	Suggestions  []Suggestion `json:"suggestions"`
	TotalResults int          `json:"total_results"`
	Response     string       `json:"response,omitempty"`
	Error        string       `json:"error,omitempty"`
}

// SuggestionService is the remote dependency a session talks to. Suggest and
// ShowMore return ranked venues; Like and Dislike persist reaction toggles.
type SuggestionService interface {
	Suggest(ctx context.Context, req *SuggestRequest) (*SuggestResponse, error)
	ShowMore(ctx context.Context, req *PageRequest) (*SuggestResponse, error)
	Like(ctx context.Context, req *ReactionRequest) error
	Dislike(ctx context.Context, req *ReactionRequest) error
}
