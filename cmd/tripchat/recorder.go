package main

import (
	"context"
	"log/slog"

	"github.com/klwong/tripchat/src/chat"
	"github.com/klwong/tripchat/src/storage"
)

// transcriptRecorder mirrors a live session into the transcript store.
// Recording failures are logged and otherwise ignored; the conversation must
// not stall because the disk did. A nil recorder is a no-op.
type transcriptRecorder struct {
	store     *storage.DB
	sessionID string
	turnIDs   []string
	logger    *slog.Logger
}

func newTranscriptRecorder(ctx context.Context, store *storage.DB, session *chat.Session, logger *slog.Logger) (*transcriptRecorder, error) {
	record := &storage.SessionRecord{
		City:     session.City(),
		Category: session.Category(),
	}
	if err := storage.CreateSession(ctx, store.DB(), record); err != nil {
		return nil, err
	}

	return &transcriptRecorder{
		store:     store,
		sessionID: record.ID,
		logger:    logger.With("component", "transcript_recorder", "session_id", record.ID),
	}, nil
}

// sync appends any turns not yet stored.
func (r *transcriptRecorder) sync(ctx context.Context, turns []chat.Turn) {
	if r == nil {
		return
	}

	for i := len(r.turnIDs); i < len(turns); i++ {
		record := &storage.TurnRecord{
			SessionID:     r.sessionID,
			Seq:           i,
			Sender:        string(turns[i].Sender),
			Text:          turns[i].Text,
			OriginalQuery: turns[i].OriginalQuery,
			ShownCount:    turns[i].ShownCount,
			TotalCount:    turns[i].TotalCount,
		}
		if err := storage.AppendTurn(ctx, r.store.DB(), record); err != nil {
			r.logger.Warn("failed to record turn", "seq", i, "error", err)
			return
		}
		r.turnIDs = append(r.turnIDs, record.ID)
	}

	if err := storage.TouchSession(ctx, r.store.DB(), r.sessionID); err != nil {
		r.logger.Warn("failed to touch session", "error", err)
	}
}

// refreshCounts re-stores a turn's pagination counters after an in-place
// "show more" merge.
func (r *transcriptRecorder) refreshCounts(ctx context.Context, turnIndex int, turn chat.Turn) {
	if r == nil || turnIndex < 0 || turnIndex >= len(r.turnIDs) {
		return
	}

	err := storage.UpdateTurnCounts(ctx, r.store.DB(), r.turnIDs[turnIndex], turn.ShownCount, turn.TotalCount)
	if err != nil {
		r.logger.Warn("failed to update turn counts", "seq", turnIndex, "error", err)
	}
}

// recordReaction appends a reaction to the audit trail and refreshes the
// session's liked-name snapshot.
func (r *transcriptRecorder) recordReaction(ctx context.Context, name string, liked bool, likedNames []string) {
	if r == nil {
		return
	}

	reaction := &storage.ReactionRecord{
		SessionID: r.sessionID,
		VenueName: name,
		Liked:     liked,
	}
	if err := storage.CreateReaction(ctx, r.store.DB(), reaction); err != nil {
		r.logger.Warn("failed to record reaction", "venue", name, "error", err)
	}

	if err := storage.UpdateSessionLikes(ctx, r.store.DB(), r.sessionID, likedNames); err != nil {
		r.logger.Warn("failed to update session likes", "error", err)
	}
}
