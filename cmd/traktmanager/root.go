package main

import (
	"context"
	"fmt"
	"io"

	"github.com/amaumene/traktmanager/internal/app"
	"github.com/amaumene/traktmanager/internal/config"
	"github.com/amaumene/traktmanager/internal/models"
	"github.com/amaumene/traktmanager/internal/scheduler"
	"github.com/amaumene/traktmanager/internal/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// appLoader builds the application for one command run
type appLoader func(out app.Output) (*app.App, func(), error)

func loadApp(out app.Output) (*app.App, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return app.Initialize(cfg, out)
}

// globalOptions are the flags shared by every command
type globalOptions struct {
	jsonOut   string
	schedule  string
	authorize bool
}

type cli struct {
	load appLoader
	opts globalOptions
}

func newRootCommand(load appLoader) *cobra.Command {
	c := &cli{load: load}

	root := &cobra.Command{
		Use:           "traktmanager",
		Short:         "Browse your Trakt calendar, watchlist and lists",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&c.opts.jsonOut, "json-out", "", `also write results as JSON to this file ("-" for JSON on stdout only)`)
	flags.StringVar(&c.opts.schedule, "schedule", "", "re-run the command on this cron schedule until interrupted")
	flags.BoolVar(&c.opts.authorize, "authorize", true, "run device authorization when no access token is configured")

	root.AddCommand(
		c.authCommand(),
		c.calendarCommand(),
		c.watchlistCommand(),
		c.listsCommand(),
	)
	return root
}

// execute builds the application, runs job once or on the configured
// schedule, and writes the metrics textfile afterwards
func (c *cli) execute(cmd *cobra.Command, name string, needsToken bool, job func(ctx context.Context, a *app.App) error) error {
	a, cleanup, err := c.load(app.Output{
		Stdout:   cmd.OutOrStdout(),
		Fs:       afero.NewOsFs(),
		JSONPath: c.opts.jsonOut,
	})
	if err != nil {
		return err
	}
	defer cleanup()

	runID := uuid.NewString()
	a.Logger.AddHook(utils.NewFieldHook(logrus.Fields{"run_id": runID}))
	a.Logger.WithField("command", name).Debug("Starting traktmanager")

	defer func() {
		if a.Config.MetricsFile == "" {
			return
		}
		if err := a.Metrics.WriteTextfile(a.Config.MetricsFile); err != nil {
			a.Logger.WithError(err).Warn("Failed to write metrics file")
		}
	}()

	ctx := cmd.Context()
	if needsToken {
		if err := c.ensureToken(ctx, cmd.ErrOrStderr(), a); err != nil {
			return err
		}
	}

	if c.opts.schedule == "" {
		return job(ctx, a)
	}
	return scheduler.NewScheduler(a.Logger).Run(ctx, name, c.opts.schedule, func(ctx context.Context) error {
		return job(ctx, a)
	})
}

// ensureToken runs the device flow when no access token is available and authorization is allowed
func (c *cli) ensureToken(ctx context.Context, prompt io.Writer, a *app.App) error {
	if _, ok := a.Tokens.GetToken(); ok {
		return nil
	}
	if !c.opts.authorize {
		return fmt.Errorf("no access token configured; set TRAKT_ACCESS_TOKEN or run with --authorize")
	}
	if !a.Config.HasDeviceCredentials() {
		return fmt.Errorf("no access token configured and TRAKT_CLIENT_SECRET is missing for device authorization")
	}

	a.Logger.Info("Trakt authentication required")
	_, err := a.DeviceAuth.Authorize(ctx, func(code models.DeviceCode) {
		printDeviceCode(prompt, code)
	})
	if err != nil {
		return fmt.Errorf("failed to authenticate with Trakt: %w", err)
	}
	return nil
}

func printDeviceCode(w io.Writer, code models.DeviceCode) {
	fmt.Fprintf(w, "\nGo to %s and enter code: %s\n", code.VerificationURL, code.UserCode)
	fmt.Fprintf(w, "The code expires in %s.\n\n", code.ExpiresIn)
}
