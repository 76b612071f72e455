package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/t-okano/brieflet/pkg/model"
	"github.com/urfave/cli/v3"
)

func showCommand() *cli.Command {
	var (
		cfg     config
		briefID string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "brief-id",
			Usage:       "Brief ID to show",
			Destination: &briefID,
			Required:    true,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "show",
		Usage: "Show a saved brief",
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

			brief, err := repo.GetBrief(ctx, model.BriefID(briefID))
			if err != nil {
				return goerr.Wrap(err, "failed to get brief")
			}

			data, err := json.MarshalIndent(brief, "", "  ")
			if err != nil {
				return goerr.Wrap(err, "failed to marshal brief")
			}
			fmt.Fprintf(c.Root().Writer, "%s\n", string(data))
			return nil
		},
	}
}
