package main

import (
	"context"
	"fmt"

	"github.com/klwong/tripchat/src/app"
	"github.com/klwong/tripchat/src/chat"
	"github.com/klwong/tripchat/src/storage"
	"github.com/klwong/tripchat/src/theme"
)

// HistoryCmd lists stored sessions or replays a transcript
type HistoryCmd struct {
	ID        string `arg:"" optional:"" help:"Session ID to replay (omit to list sessions)"`
	Reactions bool   `help:"Include the reaction audit trail when replaying"`
}

func (h *HistoryCmd) Run(cli *CLI) error {
	ctx := context.Background()

	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	logger := createCLILogger(cli.LogLevel)

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer application.Close()

	if h.ID == "" {
		return h.listSessions(ctx, application)
	}
	return h.replaySession(ctx, application)
}

func (h *HistoryCmd) listSessions(ctx context.Context, application *app.App) error {
	sessions, err := storage.ListSessions(ctx, application.Store.DB())
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Println("No stored sessions.")
		return nil
	}

	for _, s := range sessions {
		line := fmt.Sprintf("%s  %s/%s  %s", s.ID, s.City, s.Category, s.UpdatedAt.Format("2006-01-02 15:04"))
		if len(s.LikedNames) > 0 {
			line += theme.MutedStyle.Render(fmt.Sprintf("  (%d liked)", len(s.LikedNames)))
		}
		fmt.Println(line)
	}
	return nil
}

func (h *HistoryCmd) replaySession(ctx context.Context, application *app.App) error {
	session, err := storage.GetSessionByID(ctx, application.Store.DB(), h.ID)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return fmt.Errorf("no session with ID %s", h.ID)
	}

	fmt.Println(theme.MutedStyle.Render(fmt.Sprintf("%s in %s, started %s",
		session.Category, session.City, session.CreatedAt.Format("2006-01-02 15:04"))))
	fmt.Println()

	turns, err := storage.GetTurnsBySessionID(ctx, application.Store.DB(), h.ID)
	if err != nil {
		return fmt.Errorf("failed to load transcript: %w", err)
	}

	for _, t := range turns {
		switch chat.Sender(t.Sender) {
		case chat.SenderUser:
			fmt.Println(theme.UserStyle.Render("You: " + t.Text))
		default:
			fmt.Println(theme.SystemStyle.Render(t.Text))
			if t.ShownCount > 0 {
				fmt.Println(theme.MutedStyle.Render(
					fmt.Sprintf("(showed %d of %d results)", t.ShownCount, t.TotalCount)))
			}
		}
	}

	if len(session.LikedNames) > 0 {
		fmt.Println()
		fmt.Println("Liked venues:")
		for _, name := range session.LikedNames {
			fmt.Println(theme.LikedStyle.Render("♥ ") + name)
		}
	}

	if h.Reactions {
		reactions, err := storage.GetReactionsBySessionID(ctx, application.Store.DB(), h.ID)
		if err != nil {
			return fmt.Errorf("failed to load reactions: %w", err)
		}
		if len(reactions) > 0 {
			fmt.Println()
			fmt.Println("Reactions:")
			for _, r := range reactions {
				verb := "disliked"
				if r.Liked {
					verb = "liked"
				}
				fmt.Printf("  %s %s %q\n", r.CreatedAt.Format("15:04:05"), verb, r.VenueName)
			}
		}
	}
	return nil
}
