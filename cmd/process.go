package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/sbridger/reckon/internal/app"
	"github.com/sbridger/reckon/internal/ingest"
	"github.com/sbridger/reckon/internal/ledger"
	"github.com/sbridger/reckon/internal/report"
	"github.com/sbridger/reckon/internal/session"
	"github.com/sbridger/reckon/internal/ui/views"
	"github.com/sbridger/reckon/internal/utils"
)

type processFlags struct {
	Output string
	Places int32
	Pretty bool
	Quiet  bool
	Strict bool
}

type processRunner struct {
	app   *app.App
	flags *processFlags
	args  []string
}

func NewProcessCmd(application *app.App) *cobra.Command {
	flags := &processFlags{}

	cmd := &cobra.Command{
		Use:   "process [file]",
		Short: "Replay a transaction file into account balances",
		Long: `Replay a CSV transaction stream and report the final balance of every
	account it touches.

	Events are applied in input order. Rows that cannot be parsed and events
	the ledger rejects are skipped, surfaced as warnings, and counted; they
	never abort the run.

	Examples:
	# Read transactions.csv, write the report to stdout
	reckon process transactions.csv

	# Read from stdin, write the report to a file
	cat transactions.csv | reckon process -o report.csv

	# Human-readable tables instead of CSV
	reckon process transactions.csv --pretty

	# Fail the pipeline when anything was rejected
	reckon process transactions.csv --strict -o report.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &processRunner{
				app:   application,
				flags: flags,
				args:  args,
			}
			return runner.Run()
		},
	}

	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().Int32Var(&flags.Places, "places", application.Config.Output.Places, "Decimal places in the report; negative keeps exact precision")
	cmd.Flags().BoolVar(&flags.Pretty, "pretty", application.Config.Output.Pretty, "Render tables instead of CSV")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", application.Config.Logging.Quiet, "Suppress per-row rejection warnings")
	cmd.Flags().BoolVar(&flags.Strict, "strict", false, "Exit non-zero if any row was rejected")

	return cmd
}

func (r *processRunner) Run() error {
	in, closeIn, err := openInput(r.args)
	if err != nil {
		return err
	}
	defer closeIn()

	opts := []session.Option{session.WithLogger(r.app.Log)}
	if !r.flags.Quiet {
		// Warnings go to stderr so a report on stdout stays clean.
		warn := pterm.Warning.WithWriter(os.Stderr)
		opts = append(opts, session.WithWarnFunc(func(err error) {
			warn.Println(capitalize(err.Error()))
		}))
	}

	sess := session.New(opts...)
	stats, err := sess.Run(ingest.NewReader(in))
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	if err := r.report(sess); err != nil {
		return err
	}

	if r.flags.Pretty {
		views.RenderRunSummary(views.RunSummaryItem{
			Rows:           stats.Rows,
			Applied:        stats.Applied,
			ParseRejected:  stats.ParseRejected,
			EngineRejected: stats.EngineRejected,
			Reasons:        stats.Reasons,
			Accounts:       sess.Accounts.Len(),
		})
	}

	if r.flags.Strict && stats.Rejected() > 0 {
		return fmt.Errorf("%d of %d rows rejected", stats.Rejected(), stats.Rows)
	}

	return nil
}

// report writes the CSV report and, in pretty mode, renders the balance
// table. Pretty mode without --output replaces the CSV entirely.
func (r *processRunner) report(sess *session.Session) error {
	if r.flags.Output != "" {
		path, err := expandPath(r.flags.Output)
		if err != nil {
			return err
		}

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer f.Close()

		if err := report.WriteCSV(f, sess.Accounts, r.flags.Places); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	} else if !r.flags.Pretty {
		if err := report.WriteCSV(os.Stdout, sess.Accounts, r.flags.Places); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	if r.flags.Pretty {
		view := views.NewAccountListView()
		return view.Render(r.accountItems(sess.Accounts))
	}

	return nil
}

func (r *processRunner) accountItems(accounts *ledger.AccountStore[decimal.Decimal]) []views.AccountListItem {
	items := make([]views.AccountListItem, 0, accounts.Len())
	for _, id := range accounts.IDs() {
		acct, _ := accounts.Get(id)
		items = append(items, views.AccountListItem{
			Client:    strconv.FormatUint(uint64(id), 10),
			Available: utils.FormatAmount(acct.Available, r.flags.Places),
			Held:      utils.FormatAmount(acct.Held, r.flags.Places),
			Total:     utils.FormatAmount(acct.Total(), r.flags.Places),
			Locked:    acct.Locked,
		})
	}
	return items
}

// openInput opens the file named in args, or stdin when no name or "-"
// is given.
func openInput(args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return os.Stdin, func() {}, nil
	}

	path, err := expandPath(args[0])
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input file: %w", err)
	}

	return f, func() { f.Close() }, nil
}
