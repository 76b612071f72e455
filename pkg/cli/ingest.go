package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/t-okano/brieflet/pkg/adapter"
	"github.com/t-okano/brieflet/pkg/model"
	"github.com/t-okano/brieflet/pkg/usecase/ingest"
	"github.com/t-okano/brieflet/pkg/vector"
	"github.com/urfave/cli/v3"
)

func ingestCommand() *cli.Command {
	var (
		cfg       config
		meetingID string
		paste     bool
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "meeting-id",
			Aliases:     []string{"m"},
			Usage:       "Meeting ID to ingest materials into",
			Sources:     cli.EnvVars("BRIEFLET_MEETING_ID"),
			Destination: &meetingID,
			Required:    true,
		},
		&cli.BoolFlag{
			Name:        "paste",
			Usage:       "Read pasted notes from stdin instead of files",
			Destination: &paste,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:      "ingest",
		Usage:     "Ingest documents or pasted notes into a meeting",
		ArgsUsage: "<file>...",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, err := cfg.setup(ctx)
			if err != nil {
				return err
			}

			var items []ingest.Input
			if paste {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return goerr.Wrap(err, "failed to read stdin")
				}
				items = append(items, ingest.Input{
					Name:   "pasted-notes",
					Format: "paste",
					Origin: model.OriginPaste,
					Data:   data,
				})
			} else {
				if c.Args().Len() == 0 {
					return goerr.New("at least one file argument is required (or use --paste)")
				}
				for _, path := range c.Args().Slice() {
					data, err := os.ReadFile(path)
					if err != nil {
						return goerr.Wrap(err, "failed to read input file", goerr.Value("path", path))
					}
					items = append(items, ingest.Input{
						Name:   path,
						Format: adapter.DetectFormat(path),
						Origin: model.OriginUpload,
						Data:   data,
					})
				}
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

			maxLen, overlap := cfg.chunkParams()
			uc := ingest.New(repo, storage, ai, adapter.NewTextExtractor(), vector.NewIndex(),
				ingest.WithChunkParams(maxLen, overlap))

			result, err := uc.Ingest(ctx, model.MeetingID(meetingID), items)
			if err != nil {
				return goerr.Wrap(err, "failed to ingest materials")
			}

			for _, m := range result.Materials {
				fmt.Fprintf(c.Root().Writer, "Ingested: %s (%s, %d chars)\n", m.ID, m.Name, m.CharCount)
			}
			for _, f := range result.Failed {
				fmt.Fprintf(c.Root().Writer, "Failed: %s: %s\n", f.Name, f.Reason)
			}
			if len(result.Failed) > 0 {
				return goerr.New("some materials failed to ingest",
					goerr.V("failed", len(result.Failed)))
			}
			return nil
		},
	}
}
