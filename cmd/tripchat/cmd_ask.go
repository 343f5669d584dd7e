package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/klwong/tripchat/src/app"
	"github.com/klwong/tripchat/src/chat"
	"github.com/klwong/tripchat/src/config"
)

// AskCmd runs a single query and prints the suggestions
type AskCmd struct {
	Query    []string `arg:"" help:"Query text"`
	City     string   `short:"c" help:"City to ask about (defaults to configuration)"`
	Category string   `short:"k" help:"Venue category: attractions, hotels or restaurants"`
}

func (a *AskCmd) Run(cli *CLI) error {
	ctx := context.Background()

	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	logger := createCLILogger(cli.LogLevel)

	city := cfg.Chat.DefaultCity
	if a.City != "" {
		city = a.City
	}
	category := cfg.Chat.DefaultCategory
	if a.Category != "" {
		category = a.Category
	}
	if !validCategory(category) {
		return fmt.Errorf("unknown category %q (expected one of: %s)", category, strings.Join(config.KnownCategories, ", "))
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
		PageSize: cfg.Chat.PageSize,
		Logger:   logger,
	})

	query := strings.Join(a.Query, " ")
	if err := session.SubmitQuery(ctx, query); err != nil {
		return err
	}

	// Skip the greeting and the echoed query; print the answer only.
	turns := session.Turns()
	for _, t := range turns[2:] {
		fmt.Println(renderTurn(t))
	}
	return nil
}
