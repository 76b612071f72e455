package cli

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

type Error struct {
	Code    int
	Message string
}

func Run(ctx context.Context, argv []string) *Error {
	// Missing .env is fine; flags and real env vars still apply
	_ = godotenv.Load()

	cmd := &cli.Command{
		Name:  "brieflet",
		Usage: "Meeting preparation copilot: ingest materials, generate briefs, answer questions",
		Commands: []*cli.Command{
			newCommand(),
			ingestCommand(),
			briefCommand(),
			askCommand(),
			listCommand(),
			showCommand(),
			historyCommand(),
		},
	}

	if err := cmd.Run(ctx, argv); err != nil {
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}

	return nil
}
