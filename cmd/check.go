package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sbridger/reckon/internal/app"
	"github.com/sbridger/reckon/internal/ingest"
)

type checkFlags struct {
	Quiet bool
}

type checkRunner struct {
	app   *app.App
	flags *checkFlags
	args  []string
}

func NewCheckCmd(application *app.App) *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Validate a transaction file without applying it",
		Long: `Parse every row of a CSV transaction stream and report the rows that
	would be skipped, without running the ledger.

	Examples:
	# Validate a file
	reckon check transactions.csv

	# Validate from stdin
	cat transactions.csv | reckon check`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &checkRunner{
				app:   application,
				flags: flags,
				args:  args,
			}
			return runner.Run()
		},
	}

	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Only report the final counts")

	return cmd
}

func (r *checkRunner) Run() error {
	in, closeIn, err := openInput(r.args)
	if err != nil {
		return err
	}
	defer closeIn()

	reader := ingest.NewReader(in)
	warn := pterm.Warning.WithWriter(os.Stderr)

	rows, bad := 0, 0
	for {
		_, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		var re *ingest.RowError
		if errors.As(err, &re) {
			rows++
			bad++
			r.app.Log.Warn("row rejected",
				zap.String("stage", "parse"),
				zap.Int("line", re.Line),
				zap.Error(re.Err),
			)
			if !r.flags.Quiet {
				warn.Println(capitalize(re.Error()))
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		rows++
	}

	if bad > 0 {
		return fmt.Errorf("%d of %d rows failed to parse", bad, rows)
	}

	pterm.Success.Printf("✓ %d rows, all parseable\n", rows)
	return nil
}
