package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/chzyer/readline"
	"github.com/m-mizutani/goerr/v2"
	"github.com/t-okano/brieflet/pkg/model"
	"github.com/t-okano/brieflet/pkg/usecase/ask"
	"github.com/t-okano/brieflet/pkg/vector"
	"github.com/urfave/cli/v3"
)

func askCommand() *cli.Command {
	var (
		cfg       config
		meetingID string
		question  string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "meeting-id",
			Aliases:     []string{"m"},
			Usage:       "Meeting ID to ask about",
			Sources:     cli.EnvVars("BRIEFLET_MEETING_ID"),
			Destination: &meetingID,
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "question",
			Aliases:     []string{"q"},
			Usage:       "One-shot question; omit for an interactive session",
			Destination: &question,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "ask",
		Usage: "Ask questions grounded in a meeting's materials",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, err := cfg.setup(ctx)
			if err != nil {
				return err
			}

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}
			storage, err := cfg.newStorage(ctx)
			if err != nil {
				return err
			}
			ai, _, err := cfg.newGenAI(ctx)
			if err != nil {
				return err
			}

			recallEngine := cfg.newRecall(repo, storage, ai, vector.NewIndex())
			uc := ask.New(recallEngine, ai)
			id := model.MeetingID(meetingID)

			if question != "" {
				return askOnce(ctx, c, uc, id, question)
			}

			rl, err := readline.New("? ")
			if err != nil {
				return goerr.Wrap(err, "failed to start interactive session")
			}
			defer rl.Close()

			fmt.Fprintf(c.Root().Writer, "Interactive session started. Type 'exit' to quit.\n")
			for {
				line, err := rl.Readline()
				if err == readline.ErrInterrupt || err == io.EOF {
					break
				}
				if err != nil {
					return goerr.Wrap(err, "failed to read input")
				}

				line = strings.TrimSpace(line)
				if line == "exit" {
					break
				}
				if line == "" {
					continue
				}

				if err := askOnce(ctx, c, uc, id, line); err != nil {
					fmt.Fprintf(c.Root().Writer, "Error: %s\n", err.Error())
				}
			}

			return nil
		},
	}
}

func askOnce(ctx context.Context, c *cli.Command, uc *ask.UseCase, id model.MeetingID, question string) error {
	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	sp.Suffix = " Thinking..."
	sp.Start()
	turn, err := uc.Ask(ctx, id, question)
	sp.Stop()
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Root().Writer, "%s\n", turn.Answer)
	if len(turn.Citations) > 0 {
		fmt.Fprintf(c.Root().Writer, "\nSources: %s\n", strings.Join(turn.Citations, ", "))
	}
	return nil
}
