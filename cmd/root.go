// Package cmd implements the vimail command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bassamadnan/vimail/config"
	"github.com/bassamadnan/vimail/tui"
)

var (
	cfgFile  string
	verbose  bool
	remember bool
	cfg      *config.Config
	logger   *slog.Logger
	logFile  io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "vimail",
	Short: "Terminal mail dashboard",
	Long: `vimail shows the messages of one mail folder in a full-screen terminal
dashboard: a list of messages on the left and the selected message's
sender, recipients, subject and body on the right.

Keys: j/k move, m picks a folder, enter opens it, q quits.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		level, _ := cfg.LogLevel()
		if verbose {
			level = slog.LevelDebug
		}
		// The dashboard owns the terminal, so logs go to a file.
		w, err := openLogFile(cfg.Log.File)
		if err != nil {
			return err
		}
		logFile = w
		logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: level,
		}))
		slog.SetDefault(logger)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.vimail/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.Flags().BoolVar(&remember, "remember", false, "store a prompted IMAP password in the system keyring")
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0660)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// ExecuteContext runs the root command with the given context,
// enabling graceful shutdown when the context is cancelled. Errors are
// printed to stderr once the terminal is back to normal.
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if logFile != nil {
		if err != nil {
			logger.Error("exiting", "error", err)
		}
		_ = logFile.Close()
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func runDashboard(ctx context.Context) error {
	src, closeSource, err := openSource(ctx)
	if err != nil {
		return err
	}
	defer closeSource()

	term, err := tui.OpenTerminal()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer term.Release()

	d := tui.NewDashboard(term, src, tui.Options{
		Folder:          cfg.UI.InitialFolder,
		PickerQuitExits: cfg.UI.PickerQuitExits,
		Logger:          logger,
	})
	return d.Run(ctx)
}
