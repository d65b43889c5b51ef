package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/myhealthapp/fitlog/internal/api"
	"github.com/myhealthapp/fitlog/internal/config"
	"github.com/myhealthapp/fitlog/internal/db"
	"github.com/myhealthapp/fitlog/internal/logger"
	"github.com/myhealthapp/fitlog/internal/route"
	"github.com/myhealthapp/fitlog/internal/session"
	"github.com/myhealthapp/fitlog/internal/tui"
)

// app is the wiring shared by every command: configuration, the session
// store and the API client built on top of it.
type app struct {
	cfg     *config.Config
	store   *session.Store
	client  *api.Client
	closers []io.Closer

	startRoute string
	baseURL    string
	ephemeral  bool
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{})
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fitlog",
		Short: "Log and review fitness activities",
		Long: `fitlog is a terminal client for the MyHealthApp activity backend.
Without a subcommand it opens the interactive TUI; the subcommands do the
same work non-interactively.`,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
		RunE:               a.runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&a.baseURL, "base-url", "", "Backend base URL (overrides FITLOG_API_BASE_URL)")
	rootCmd.PersistentFlags().BoolVar(&a.ephemeral, "ephemeral", false, "Keep the session in memory only")
	rootCmd.Flags().StringVar(&a.startRoute, "route", "/", "Screen to open first, e.g. /activities/new")

	rootCmd.AddCommand(NewRegisterCommand(a))
	rootCmd.AddCommand(NewLoginCommand(a))
	rootCmd.AddCommand(NewLogoutCommand(a))
	rootCmd.AddCommand(NewShowCommand(a))
	rootCmd.AddCommand(NewAddCommand(a))
	rootCmd.AddCommand(NewEditCommand(a))
	rootCmd.AddCommand(NewStatusCommand(a))
	rootCmd.AddCommand(NewDeleteCommand(a))
	rootCmd.AddCommand(NewSessionCommand(a))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup reads configuration and opens the session store. A client that is
// already wired is kept as is.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.client != nil {
		return nil
	}

	cfg, err := config.Parse()
	if err != nil {
		return err
	}
	if a.baseURL != "" {
		cfg.APIBaseURL = config.NormalizeBaseURL(a.baseURL)
	}
	a.cfg = cfg

	// the TUI owns the terminal
	logFile, err := logger.Configure(cfg, logger.Options{Console: cmd != cmd.Root()})
	if err != nil {
		return err
	}
	a.closers = append(a.closers, logFile)

	if cfg.APIBaseURL == "" {
		log.Warn().Msg("FITLOG_API_BASE_URL is not set; every request will fail")
	}

	var kv session.KV
	if a.ephemeral {
		kv = session.NewMemoryKV()
	} else {
		conn, err := db.Open(cfg.SessionDBPath())
		if err != nil {
			return err
		}
		a.closers = append(a.closers, conn)
		kv = db.NewKV(conn)
	}

	a.store = session.NewStore(kv)
	a.client = api.NewClient(cfg.APIBaseURL, a.store)

	log.Debug().
		Str("base_url", cfg.APIBaseURL).
		Str("data_dir", cfg.DataDir).
		Bool("ephemeral", a.ephemeral).
		Msg("fitlog configured")
	return nil
}

func (a *app) teardown(*cobra.Command, []string) error {
	var errs []error
	// database first, the log file last
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	start := route.Parse(a.startRoute)
	log.Info().Str("route", start.String()).Msg("Starting TUI")

	err := tui.ShowTUI(tui.Options{
		Context: cmd.Context(),
		Backend: a.client,
		Session: a.store,
		Start:   start,
	})
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
