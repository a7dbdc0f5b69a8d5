package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"

	"lumincoin/internal/cli"
	"lumincoin/internal/core"
	"lumincoin/internal/i18n"
	"lumincoin/internal/services"
)

var errNotSignedIn = errors.New("not signed in, run 'lumincoin login'")

// setup loads the configuration and builds the runtime for a command.
func setup(cmd *cobra.Command) (*cli.Runtime, error) {
	cli.LoadEnvFile()

	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := cli.LoadAndValidateConfig(path)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	logger, err := cli.SetupLogger(level, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return cli.NewRuntime(cfg, logger)
}

// run wraps a command body with runtime setup and teardown.
func run(body func(ctx context.Context, cmd *cobra.Command, rt *cli.Runtime, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return body(ctx, cmd, rt, args)
	}
}

// resultErr turns a failed service result into an error.
func resultErr[T any](res services.Result[T]) error {
	if res.OK() {
		return nil
	}
	if res.Redirect == "/login" {
		return fmt.Errorf("%s: %w", res.Err, errNotSignedIn)
	}
	return errors.New(res.Err)
}

// recorder stands in for the router when a command drives a page
// controller: it remembers where the controller navigated and what it
// alerted.
type recorder struct {
	target string
	alerts []string
}

func (r *recorder) Navigate(_ context.Context, target string) error {
	r.target = target
	return nil
}

func (r *recorder) Alert(msg string) {
	r.alerts = append(r.alerts, msg)
}

func (r *recorder) err() error {
	if len(r.alerts) == 0 {
		return nil
	}
	return errors.New(strings.Join(r.alerts, "; "))
}

func writeTable(w io.Writer, header []string, rows [][]string) error {
	return markdown.NewMarkdown(w).
		Table(markdown.TableSet{Header: header, Rows: rows}).
		Build()
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("period", "p", string(core.PeriodToday), "Period: today, week, month, year, all or interval")
	cmd.Flags().String("from", "", "Interval start (DD.MM.YYYY)")
	cmd.Flags().String("to", "", "Interval end (DD.MM.YYYY)")
}

func readFilter(cmd *cobra.Command, rt *cli.Runtime) (core.Filter, error) {
	p, _ := cmd.Flags().GetString("period")
	period, err := core.ParsePeriod(p)
	if err != nil {
		return core.Filter{}, err
	}
	f := core.Filter{Period: period}
	f.DateFrom, _ = cmd.Flags().GetString("from")
	f.DateTo, _ = cmd.Flags().GetString("to")
	if period == core.PeriodInterval && !f.HasInterval() {
		return core.Filter{}, errors.New(rt.Messages.T(i18n.MsgIntervalRequired))
	}
	return f, nil
}

func describeFilter(f core.Filter) string {
	if f.Period == core.PeriodInterval {
		return fmt.Sprintf("%s - %s", f.DateFrom, f.DateTo)
	}
	return string(f.Period)
}

// isoDate accepts YYYY-MM-DD or DD.MM.YYYY; empty means today.
func isoDate(s string, now time.Time) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now.Format(core.ISODateLayout), nil
	}
	if _, err := core.ParseISODate(s); err == nil {
		return s, nil
	}
	return core.DisplayToISO(s)
}
