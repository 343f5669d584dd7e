package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/klwong/tripchat/src/config"
)

// CLI represents the main CLI structure
type CLI struct {
	BaseURL  string `env:"TRIPCHAT_BASE_URL" help:"Suggestion service base URL"`
	LogLevel string `default:"warn" help:"Log level"`

	// Chat is the default command - interactive conversation
	Chat    ChatCmd    `cmd:"" default:"1" help:"Start an interactive session (default)"`
	Ask     AskCmd     `cmd:"" help:"Run a single query and print the suggestions"`
	History HistoryCmd `cmd:"" help:"List stored sessions or replay a transcript"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("tripchat"),
		kong.Description("Conversational venue discovery for Malaysian cities"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	err := ctx.Run(&cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads the layered configuration and applies CLI flag overrides
func loadConfig(cli *CLI) (*config.Config, error) {
	loader := config.NewLoader(config.GetConfigPaths())
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if cli.BaseURL != "" {
		cfg.API.BaseURL = cli.BaseURL
	}
	if cli.LogLevel != "" {
		cfg.Observability.Logging.Level = cli.LogLevel
	}

	return cfg, nil
}

func validCategory(category string) bool {
	for _, c := range config.KnownCategories {
		if c == category {
			return true
		}
	}
	return false
}
