package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/t-okano/brieflet/pkg/model"
	"github.com/urfave/cli/v3"
)

func historyCommand() *cli.Command {
	var (
		cfg       config
		meetingID string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "meeting-id",
			Aliases:     []string{"m"},
			Usage:       "Meeting ID to show brief history for",
			Sources:     cli.EnvVars("BRIEFLET_MEETING_ID"),
			Destination: &meetingID,
			Required:    true,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "history",
		Usage: "List a meeting's brief versions, newest first",
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

			briefs, err := repo.ListBriefs(ctx, model.MeetingID(meetingID))
			if err != nil {
				return goerr.Wrap(err, "failed to list briefs")
			}
			if len(briefs) == 0 {
				fmt.Fprintf(c.Root().Writer, "No briefs\n")
				return nil
			}
			for _, b := range briefs {
				fmt.Fprintf(c.Root().Writer, "%s  %s  %-7s  %s\n",
					b.ID, b.CreatedAt.Format("2006-01-02 15:04"), b.Provider, b.MeetingTitle)
			}
			return nil
		},
	}
}
