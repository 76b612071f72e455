package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/t-okano/brieflet/pkg/model"
	"github.com/urfave/cli/v3"
)

func newCommand() *cli.Command {
	var (
		cfg       config
		title     string
		date      string
		attendees string
		tags      string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "title",
			Aliases:     []string{"t"},
			Usage:       "Meeting title",
			Required:    true,
			Destination: &title,
		},
		&cli.StringFlag{
			Name:        "date",
			Usage:       "Meeting date (YYYY-MM-DD)",
			Destination: &date,
		},
		&cli.StringFlag{
			Name:        "attendees",
			Usage:       "Comma-separated attendee names",
			Destination: &attendees,
		},
		&cli.StringFlag{
			Name:        "tags",
			Usage:       "Comma-separated tags",
			Destination: &tags,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "new",
		Usage: "Create a new meeting",
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

			meeting := &model.Meeting{
				ID:        model.NewMeetingID(),
				Title:     title,
				Date:      date,
				Attendees: attendees,
				Tags:      tags,
				CreatedAt: time.Now(),
			}

			if err := repo.PutMeeting(ctx, meeting); err != nil {
				return goerr.Wrap(err, "failed to create meeting")
			}

			fmt.Fprintf(c.Root().Writer, "Meeting created: %s\n", meeting.ID)
			return nil
		},
	}
}
