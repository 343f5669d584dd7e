package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/klwong/tripchat/src/app"
	"github.com/klwong/tripchat/src/chat"
	"github.com/klwong/tripchat/src/config"
	"github.com/klwong/tripchat/src/theme"
	"github.com/klwong/tripchat/src/webpreview"
)

// ChatCmd starts an interactive conversation session
type ChatCmd struct {
	City     string `arg:"" optional:"" help:"City to explore (defaults to configuration)"`
	Category string `arg:"" optional:"" help:"Venue category: attractions, hotels or restaurants"`
	PageSize int    `help:"Extra results fetched per /more"`
	NoSave   bool   `help:"Do not record the transcript"`
}

const chatHelp = `Commands:
  /more [n]        show more results for the latest (or n-th) result turn
  /like NAME       like a venue
  /dislike NAME    remove a like
  /web N [FORMAT]  preview the N-th suggestion's website (text, markdown, html)
  /likes           list liked venues
  /history         reprint the conversation
  /clear           reset the conversation
  /help            show this help
  /quit            exit`

func (c *ChatCmd) Run(cli *CLI) error {
	ctx := context.Background()

	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	// Logs go to a file so they don't interleave with the conversation
	logger := createChatLogger(cli.LogLevel)

	city := cfg.Chat.DefaultCity
	if c.City != "" {
		city = c.City
	}
	category := cfg.Chat.DefaultCategory
	if c.Category != "" {
		category = c.Category
	}
	if !validCategory(category) {
		return fmt.Errorf("unknown category %q (expected one of: %s)", category, strings.Join(config.KnownCategories, ", "))
	}
	pageSize := cfg.Chat.PageSize
	if c.PageSize > 0 {
		pageSize = c.PageSize
	}

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer application.Close()

	session := chat.NewSession(chat.SessionConfig{
		City:     city,
		Category: category,
		Service:  application.Places,
		PageSize: pageSize,
		Logger:   logger,
	})

	var recorder *transcriptRecorder
	if !c.NoSave {
		recorder, err = newTranscriptRecorder(ctx, application.Store, session, logger)
		if err != nil {
			logger.Warn("transcript recording disabled", "error", err)
			fmt.Println(theme.MutedStyle.Render("(transcript recording unavailable)"))
		}
	}

	previewer := webpreview.NewFetcher(0)

	rendered := 0
	rendered = flushTurns(ctx, session, recorder, rendered)
	fmt.Println(theme.MutedStyle.Render("Type /help for commands."))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(theme.UserStyle.Render("> "))
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			quit := c.handleCommand(ctx, line, session, recorder, previewer, &rendered)
			if quit {
				return nil
			}
			continue
		}

		if err := session.SubmitQuery(ctx, line); err != nil {
			switch {
			case errors.Is(err, chat.ErrEmptyQuery):
				// Blank lines are skipped above; trimmed-to-empty lands here.
			case errors.Is(err, chat.ErrRequestPending):
				fmt.Println(theme.MutedStyle.Render("Still fetching, hold on."))
			default:
				fmt.Println(theme.MutedStyle.Render("Error: " + err.Error()))
			}
			continue
		}
		rendered = flushTurns(ctx, session, recorder, rendered)
	}
}

// handleCommand dispatches a slash command. Returns true when the REPL should
// exit.
func (c *ChatCmd) handleCommand(ctx context.Context, line string, session *chat.Session, recorder *transcriptRecorder, previewer *webpreview.Fetcher, rendered *int) bool {
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "/quit", "/exit", "/q":
		return true

	case "/help":
		fmt.Println(chatHelp)

	case "/more":
		c.runMore(ctx, args, session, recorder, rendered)

	case "/like", "/dislike":
		name := strings.TrimSpace(strings.TrimPrefix(line, cmd))
		c.runReaction(ctx, name, cmd == "/like", session, recorder)

	case "/web":
		c.runWebPreview(ctx, args, session, previewer)

	case "/likes":
		liked := session.Liked()
		if len(liked) == 0 {
			fmt.Println(theme.MutedStyle.Render("No liked venues yet."))
			break
		}
		for _, name := range liked {
			fmt.Println(theme.LikedStyle.Render("♥ ") + name)
		}

	case "/history":
		for _, t := range session.Turns() {
			fmt.Println(renderTurn(t))
			fmt.Println()
		}

	case "/clear":
		session.Clear()
		*rendered = 0
		*rendered = flushTurns(ctx, session, recorder, *rendered)

	default:
		fmt.Println(theme.MutedStyle.Render("Unknown command. Type /help for commands."))
	}
	return false
}

func (c *ChatCmd) runMore(ctx context.Context, args []string, session *chat.Session, recorder *transcriptRecorder, rendered *int) {
	turns := session.Turns()

	idx := -1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Println(theme.MutedStyle.Render("Usage: /more [turn number]"))
			return
		}
		idx = n
	} else {
		for i := len(turns) - 1; i >= 0; i-- {
			if turns[i].Expandable() {
				idx = i
				break
			}
		}
		if idx < 0 {
			fmt.Println(theme.MutedStyle.Render("Nothing to expand."))
			return
		}
	}

	prevShown := 0
	if idx >= 0 && idx < len(turns) {
		prevShown = turns[idx].ShownCount
	}

	if err := session.Expand(ctx, idx); err != nil {
		switch {
		case errors.Is(err, chat.ErrTurnNotFound), errors.Is(err, chat.ErrNotExpandable):
			fmt.Println(theme.MutedStyle.Render("Nothing to expand."))
		case errors.Is(err, chat.ErrRequestPending):
			fmt.Println(theme.MutedStyle.Render("Still fetching, hold on."))
		default:
			fmt.Println(theme.MutedStyle.Render("Error: " + err.Error()))
		}
		return
	}

	turns = session.Turns()
	turn := turns[idx]

	// A successful merge mutates the turn in place; render only the new tail.
	for i := prevShown; i < len(turn.Suggestions); i++ {
		fmt.Println(renderSuggestion(i+1, turn.Suggestions[i]))
		fmt.Println()
	}
	if turn.Expandable() {
		fmt.Println(theme.MutedStyle.Render(
			fmt.Sprintf("%d more result(s) available. Type /more to see them.", turn.Remaining())))
	} else if len(turn.Suggestions) == prevShown && len(turns) == *rendered {
		fmt.Println(theme.MutedStyle.Render("That's everything."))
	}
	recorder.refreshCounts(ctx, idx, turn)

	// Failure paths append an apology turn instead of merging.
	*rendered = flushTurns(ctx, session, recorder, *rendered)
}

func (c *ChatCmd) runReaction(ctx context.Context, name string, liked bool, session *chat.Session, recorder *transcriptRecorder) {
	if err := session.SetLiked(ctx, name, liked); err != nil {
		if errors.Is(err, chat.ErrNoVenue) {
			if liked {
				fmt.Println(theme.MutedStyle.Render("Usage: /like VENUE NAME"))
			} else {
				fmt.Println(theme.MutedStyle.Render("Usage: /dislike VENUE NAME"))
			}
			return
		}
		// The local toggle already applied; only the remote write failed.
		fmt.Println(theme.MutedStyle.Render("Saved locally, but the service couldn't be reached."))
	}

	if liked {
		fmt.Println(theme.LikedStyle.Render("♥ ") + fmt.Sprintf("Liked %q.", name))
	} else {
		fmt.Printf("Removed like for %q.\n", name)
	}
	recorder.recordReaction(ctx, name, liked, session.Liked())
}

func (c *ChatCmd) runWebPreview(ctx context.Context, args []string, session *chat.Session, previewer *webpreview.Fetcher) {
	if len(args) == 0 {
		fmt.Println(theme.MutedStyle.Render("Usage: /web N [text|markdown|html]"))
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		fmt.Println(theme.MutedStyle.Render("Usage: /web N [text|markdown|html]"))
		return
	}
	format := webpreview.FormatText
	if len(args) > 1 {
		format = args[1]
	}

	turns := session.Turns()
	var latest *chat.Turn
	for i := len(turns) - 1; i >= 0; i-- {
		if len(turns[i].Suggestions) > 0 {
			latest = &turns[i]
			break
		}
	}
	if latest == nil || n > len(latest.Suggestions) {
		fmt.Println(theme.MutedStyle.Render("No such suggestion."))
		return
	}

	sg := latest.Suggestions[n-1]
	if sg.Website == "" {
		fmt.Printf("%q has no website listed.\n", sg.Name)
		return
	}

	fmt.Println(theme.MutedStyle.Render("Fetching " + sg.Website + " ..."))
	preview, err := previewer.Fetch(ctx, sg.Website, format)
	if err != nil {
		fmt.Println(theme.MutedStyle.Render("Couldn't fetch the website: " + err.Error()))
		return
	}
	fmt.Println(preview.Content)
}

// flushTurns prints every turn not yet shown and mirrors the log into the
// transcript store. Returns the new rendered count.
func flushTurns(ctx context.Context, session *chat.Session, recorder *transcriptRecorder, rendered int) int {
	turns := session.Turns()
	for i := rendered; i < len(turns); i++ {
		fmt.Println(renderTurn(turns[i]))
		fmt.Println()
	}
	recorder.sync(ctx, turns)
	return len(turns)
}
