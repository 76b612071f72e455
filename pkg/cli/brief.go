package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/m-mizutani/goerr/v2"
	"github.com/t-okano/brieflet/pkg/model"
	"github.com/t-okano/brieflet/pkg/usecase/brief"
	"github.com/t-okano/brieflet/pkg/vector"
	"github.com/urfave/cli/v3"
)

func briefCommand() *cli.Command {
	var (
		cfg       config
		meetingID string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "meeting-id",
			Aliases:     []string{"m"},
			Usage:       "Meeting ID to generate a brief for",
			Sources:     cli.EnvVars("BRIEFLET_MEETING_ID"),
			Destination: &meetingID,
			Required:    true,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "brief",
		Usage: "Generate a structured brief from a meeting's materials",
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
			ai, label, err := cfg.newGenAI(ctx)
			if err != nil {
				return err
			}

			recallEngine := cfg.newRecall(repo, storage, ai, vector.NewIndex())
			uc := brief.New(repo, recallEngine, ai, brief.WithProvider(label))

			sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			sp.Suffix = " Generating brief..."
			sp.Start()
			result, err := uc.Generate(ctx, model.MeetingID(meetingID))
			sp.Stop()

			if err != nil && result == nil {
				return goerr.Wrap(err, "failed to generate brief")
			}

			data, merr := json.MarshalIndent(result, "", "  ")
			if merr != nil {
				return goerr.Wrap(merr, "failed to marshal brief")
			}
			fmt.Fprintf(c.Root().Writer, "%s\n", string(data))

			if err != nil {
				// Generated but not recorded; show it and still fail
				if errors.Is(err, model.ErrPersistence) {
					fmt.Fprintf(c.Root().Writer, "\nWarning: brief was generated but could not be saved\n")
				}
				return err
			}

			fmt.Fprintf(c.Root().Writer, "\nBrief saved: %s\n", result.ID)
			return nil
		},
	}
}
