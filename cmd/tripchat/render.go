package main

import (
	"fmt"
	"strings"

	"github.com/klwong/tripchat/src/chat"
	"github.com/klwong/tripchat/src/theme"
)

// renderTurn renders one conversation turn for the terminal. System turns with
// suggestions get a numbered venue list and a "show more" hint.
func renderTurn(t chat.Turn) string {
	var b strings.Builder

	switch t.Sender {
	case chat.SenderUser:
		b.WriteString(theme.UserStyle.Render("You: " + t.Text))
	default:
		b.WriteString(theme.SystemStyle.Render(t.Text))
	}

	for i, sg := range t.Suggestions {
		b.WriteString("\n\n")
		b.WriteString(renderSuggestion(i+1, sg))
	}

	if t.Expandable() {
		b.WriteString("\n\n")
		b.WriteString(theme.MutedStyle.Render(
			fmt.Sprintf("%d more result(s) available. Type /more to see them.", t.Remaining())))
	}

	return b.String()
}

func renderSuggestion(n int, sg chat.Suggestion) string {
	var b strings.Builder

	b.WriteString(theme.VenueNameStyle.Render(fmt.Sprintf("%d. %s", n, sg.Name)))
	if sg.Liked {
		b.WriteString(" " + theme.LikedStyle.Render("♥"))
	}
	if sg.Likes > 0 {
		b.WriteString(" " + theme.MutedStyle.Render(fmt.Sprintf("(%d likes)", sg.Likes)))
	}

	if sg.Description != "" {
		b.WriteString("\n   " + theme.SystemStyle.Render(sg.Description))
	}
	if sg.Address != "" {
		b.WriteString("\n   " + theme.MutedStyle.Render("Address: "+sg.Address))
	}
	if sg.Reviews != "" {
		b.WriteString("\n   " + theme.MutedStyle.Render("Reviews: "+sg.Reviews))
	}
	if sg.Website != "" {
		b.WriteString("\n   " + theme.MutedStyle.Render("Website: "+sg.Website))
	}
	if sg.Relevance > 0 {
		b.WriteString("\n   " + theme.MutedStyle.Render(fmt.Sprintf("Relevance: %.2f", sg.Relevance)))
	}

	return b.String()
}
