package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"framekey/internal/records"
)

func newRecordsCommand(ctx *commandContext) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "records",
		Short: "List accepted videos and their fingerprints",
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := loadRecords(ctx)
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			if len(recs) == 0 {
				fmt.Fprintln(stdout, "No records")
				return nil
			}

			if plain || !stdoutIsTerminal() {
				for _, rec := range recs {
					fmt.Fprintln(stdout, rec.String())
				}
				return nil
			}

			rows := make([][]string, 0, len(recs))
			for _, rec := range recs {
				rows = append(rows, []string{rec.Filename, rec.Fingerprint})
			}
			fmt.Fprintln(stdout, renderTable([]string{"Filename", "Fingerprint"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print raw filename|fingerprint lines")
	return cmd
}

// loadRecords goes through the daemon when it is up so reads observe
// its lock, and reads the record file directly otherwise.
func loadRecords(ctx *commandContext) ([]records.Record, error) {
	if client, err := ctx.dialClient(); err == nil {
		defer client.Close()
		resp, err := client.Records()
		if err != nil {
			return nil, err
		}
		recs := make([]records.Record, 0, len(resp.Records))
		for _, rec := range resp.Records {
			recs = append(recs, records.Record{Filename: rec.Filename, Fingerprint: rec.Fingerprint})
		}
		return recs, nil
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	return records.NewStore(cfg.Paths.RecordFile).Load()
}

func stdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
