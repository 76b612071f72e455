package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/t-okano/brieflet/pkg/model"
	"github.com/urfave/cli/v3"
)

func listCommand() *cli.Command {
	var (
		cfg       config
		meetingID string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "meeting-id",
			Aliases:     []string{"m"},
			Usage:       "List materials of this meeting instead of meetings",
			Sources:     cli.EnvVars("BRIEFLET_MEETING_ID"),
			Destination: &meetingID,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "list",
		Usage: "List meetings, or a meeting's materials",
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

			if meetingID != "" {
				materials, err := repo.ListMaterials(ctx, model.MeetingID(meetingID))
				if err != nil {
					return goerr.Wrap(err, "failed to list materials")
				}
				if len(materials) == 0 {
					fmt.Fprintf(c.Root().Writer, "No materials\n")
					return nil
				}
				for _, m := range materials {
					fmt.Fprintf(c.Root().Writer, "%s  %-8s  %6d chars  %s\n",
						m.ID, m.Origin, m.CharCount, m.Name)
				}
				return nil
			}

			meetings, err := repo.ListMeetings(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to list meetings")
			}
			if len(meetings) == 0 {
				fmt.Fprintf(c.Root().Writer, "No meetings\n")
				return nil
			}
			for _, m := range meetings {
				fmt.Fprintf(c.Root().Writer, "%s  %s  %s\n",
					m.ID, m.CreatedAt.Format("2006-01-02 15:04"), m.Title)
			}
			return nil
		},
	}
}
