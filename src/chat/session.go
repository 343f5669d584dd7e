package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// DefaultPageSize is how many extra results a "show more" request asks for.
const DefaultPageSize = 2

// Phase is the session's fetch state. At most one suggestion fetch may be in
// flight; reactions are never gated by the phase.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFetchingSuggestions
	PhaseFetchingMore
)

// Common error variables
var (
	// ErrEmptyQuery indicates a blank query was submitted
	ErrEmptyQuery = errors.New("query text is required")

	// ErrRequestPending indicates a suggestion fetch is already in flight
	ErrRequestPending = errors.New("a request is already pending")

	// ErrTurnNotFound indicates the turn index does not exist
	ErrTurnNotFound = errors.New("turn not found")

	// ErrNotExpandable indicates the turn has no further results to show
	ErrNotExpandable = errors.New("turn has no more results")

	// ErrNoVenue indicates a reaction was issued without a venue name
	ErrNoVenue = errors.New("venue name is required")
)

// Canned system-turn texts. The apology texts deliberately do not expose the
// underlying failure; details go to the logger.
const (
	noMatchesText   = "I couldn't find anything matching your query. Try asking differently."
	queryFailedText = "Sorry, there was an error processing your request. Please try again."
	moreFailedText  = "Sorry, couldn't load more results. Please try again."
)

// SessionConfig configures a new Session.
type SessionConfig struct {
	// City and Category scope every request for the session's lifetime.
	City     string
	Category string

	// Service is the remote suggestion/reaction dependency.
	Service SuggestionService

	// PageSize is the "show more" slice size. Defaults to DefaultPageSize.
	PageSize int

	Logger *slog.Logger
}

// Session is the authoritative in-memory record of one location-discovery
// conversation: the ordered turn log, the liked-venue set and the fetch phase.
// Methods are safe for concurrent use; the phase gate serializes suggestion
// fetches while reactions may interleave with them.
type Session struct {
	city     string
	category string
	svc      SuggestionService
	pageSize int
	logger   *slog.Logger

	mu    sync.Mutex
	phase Phase
	turns []*Turn
	liked map[string]bool
}

// NewSession creates a session scoped to (city, category) and seeds the log
// with a greeting turn.
func NewSession(cfg SessionConfig) *Session {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "chat_session", "city", cfg.City, "category", cfg.Category)

	s := &Session{
		city:     cfg.City,
		category: cfg.Category,
		svc:      cfg.Service,
		pageSize: cfg.PageSize,
		logger:   logger,
		liked:    make(map[string]bool),
	}
	s.turns = []*Turn{s.greeting()}
	return s
}

func (s *Session) greeting() *Turn {
	return &Turn{
		Sender: SenderSystem,
		Text:   fmt.Sprintf("You can now start asking about %s in %s.", s.category, titleCase(s.city)),
	}
}

// City returns the session's immutable city.
func (s *Session) City() string { return s.city }

// Category returns the session's immutable category.
func (s *Session) Category() string { return s.category }

// Phase returns the current fetch phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Turns returns a snapshot of the conversation log. Mutating the snapshot does
// not affect the session.
func (s *Session) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Turn, len(s.turns))
	for i, t := range s.turns {
		out[i] = *t
		if t.Suggestions != nil {
			out[i].Suggestions = append([]Suggestion(nil), t.Suggestions...)
		}
	}
	return out
}

// Liked returns the names currently liked, sorted ascending. This is the
// exact order sent to the service on every query.
func (s *Session) Liked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.likedNamesLocked()
}

// IsLiked reports whether the venue is currently liked in this session.
func (s *Session) IsLiked(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.liked[name]
}

// Clear resets the session to its initial state: a fresh greeting turn and an
// empty liked set.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = []*Turn{s.greeting()}
	s.liked = make(map[string]bool)
}

// SubmitQuery appends the user's query to the log, asks the service for
// suggestions and appends the outcome as a system turn. The user turn is never
// rolled back: a transport failure or service-reported error becomes a visible
// system turn instead of an error return. Rejected with ErrRequestPending,
// leaving the log untouched, while another fetch is in flight.
func (s *Session) SubmitQuery(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return ErrEmptyQuery
	}

	s.mu.Lock()
	if s.phase != PhaseIdle {
		s.mu.Unlock()
		return ErrRequestPending
	}
	s.phase = PhaseFetchingSuggestions
	s.turns = append(s.turns, &Turn{Sender: SenderUser, Text: query})
	liked := s.likedNamesLocked()
	s.mu.Unlock()

	resp, err := s.svc.Suggest(ctx, &SuggestRequest{
		City:     s.city,
		Category: s.category,
		Query:    query,
		Liked:    liked,
	})

	s.mu.Lock()
	defer func() {
		s.phase = PhaseIdle
		s.mu.Unlock()
	}()

	if err != nil {
		s.logger.Warn("suggestion request failed", "query", query, "error", err)
		s.turns = append(s.turns, &Turn{Sender: SenderSystem, Text: queryFailedText})
		return nil
	}

	s.turns = append(s.turns, s.resultTurnLocked(query, resp))
	return nil
}

// resultTurnLocked builds the system turn for a suggest response. Callers must
// hold the session lock.
func (s *Session) resultTurnLocked(query string, resp *SuggestResponse) *Turn {
	switch {
	case resp.Error != "":
		return &Turn{Sender: SenderSystem, Text: "Error: " + resp.Error}

	case len(resp.Suggestions) > 0:
		shown := len(resp.Suggestions)
		total := resp.TotalResults
		if total < shown {
			total = shown
		}
		sgs := append([]Suggestion(nil), resp.Suggestions...)
		s.annotateLikedLocked(sgs)
		return &Turn{
			Sender:        SenderSystem,
			Text:          fmt.Sprintf("Here are some %s in %s:", s.category, s.city),
			Suggestions:   sgs,
			ShownCount:    shown,
			TotalCount:    total,
			HasMore:       shown < total,
			OriginalQuery: query,
		}

	case resp.Response != "":
		return &Turn{Sender: SenderSystem, Text: resp.Response}

	default:
		return &Turn{Sender: SenderSystem, Text: noMatchesText}
	}
}

// Expand asks the service for the next slice of results for the turn at
// turnIndex and merges it into that turn in place. Precondition violations
// return sentinel errors without issuing a request or touching any state. A
// failed continuation appends a separate apology turn and leaves the expanded
// turn's pagination counters exactly as they were.
func (s *Session) Expand(ctx context.Context, turnIndex int) error {
	s.mu.Lock()
	if turnIndex < 0 || turnIndex >= len(s.turns) {
		s.mu.Unlock()
		return ErrTurnNotFound
	}
	turn := s.turns[turnIndex]
	if !turn.Expandable() {
		s.mu.Unlock()
		return ErrNotExpandable
	}
	if s.phase != PhaseIdle {
		s.mu.Unlock()
		return ErrRequestPending
	}
	s.phase = PhaseFetchingMore
	req := &PageRequest{
		City:     s.city,
		Category: s.category,
		Query:    turn.OriginalQuery,
		Offset:   turn.ShownCount,
		Limit:    s.pageSize,
	}
	s.mu.Unlock()

	resp, err := s.svc.ShowMore(ctx, req)

	s.mu.Lock()
	defer func() {
		s.phase = PhaseIdle
		s.mu.Unlock()
	}()

	if err != nil {
		s.logger.Warn("show more request failed", "query", req.Query, "offset", req.Offset, "error", err)
		s.turns = append(s.turns, &Turn{Sender: SenderSystem, Text: moreFailedText})
		return nil
	}
	if resp.Error != "" {
		s.turns = append(s.turns, &Turn{Sender: SenderSystem, Text: "Error: " + resp.Error})
		return nil
	}

	if len(resp.Suggestions) == 0 {
		// The service ran dry earlier than its last reported total. Trust the
		// empty page over the stale count.
		turn.HasMore = false
		turn.TotalCount = turn.ShownCount
		return nil
	}

	sgs := append([]Suggestion(nil), resp.Suggestions...)
	s.annotateLikedLocked(sgs)
	turn.Suggestions = append(turn.Suggestions, sgs...)
	turn.ShownCount += len(sgs)
	if resp.TotalResults > 0 {
		turn.TotalCount = resp.TotalResults
	}
	if turn.TotalCount < turn.ShownCount {
		turn.TotalCount = turn.ShownCount
	}
	turn.HasMore = turn.ShownCount < turn.TotalCount
	return nil
}

// SetLiked toggles a venue's liked status. Policy: optimistic, no rollback.
// The local update applies first, then the toggle is persisted remotely; a
// persistence failure is logged and returned but never undoes the local
// update. Liking bumps every same-named suggestion's likes counter by one per
// call; disliking flips the status without decrementing the counter.
func (s *Session) SetLiked(ctx context.Context, name string, liked bool) error {
	if name == "" {
		return ErrNoVenue
	}

	s.mu.Lock()
	if liked {
		s.liked[name] = true
	} else {
		delete(s.liked, name)
	}
	for _, t := range s.turns {
		for i := range t.Suggestions {
			if t.Suggestions[i].Name != name {
				continue
			}
			t.Suggestions[i].Liked = liked
			if liked {
				t.Suggestions[i].Likes++
			}
		}
	}
	s.mu.Unlock()

	req := &ReactionRequest{City: s.city, Category: s.category, Name: name}
	var err error
	if liked {
		err = s.svc.Like(ctx, req)
	} else {
		err = s.svc.Dislike(ctx, req)
	}
	if err != nil {
		s.logger.Warn("failed to persist reaction", "venue", name, "liked", liked, "error", err)
		return err
	}
	return nil
}

// annotateLikedLocked re-derives each suggestion's liked flag from the liked
// set, the single source of truth. Callers must hold the session lock.
func (s *Session) annotateLikedLocked(sgs []Suggestion) {
	for i := range sgs {
		sgs[i].Liked = s.liked[sgs[i].Name]
	}
}

func (s *Session) likedNamesLocked() []string {
	names := make([]string, 0, len(s.liked))
	for name, ok := range s.liked {
		if ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
