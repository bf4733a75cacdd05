// Package cli holds the frontpage command line.
package cli

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fragmede/frontpage/internal/config"
	"github.com/fragmede/frontpage/internal/logging"
	"github.com/fragmede/frontpage/internal/poller"
	"github.com/fragmede/frontpage/internal/ui"
)

// options are the flags shared by every command.
type options struct {
	configPath string
	verbose    bool
	cfg        config.Config
}

func (o *options) logLevel() string {
	if o.verbose {
		return "debug"
	}
	return o.cfg.LogLevel
}

// stderrLogger logs to the command's error stream. Only the TUI needs the
// log file.
func (o *options) stderrLogger(w io.Writer) (*logrus.Logger, error) {
	return logging.New(w, o.logLevel())
}

// NewRootCmd returns the frontpage command tree.
func NewRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:   "frontpage",
		Short: "Read the Hacker News front page in the terminal",
		Long: `frontpage shows the Hacker News front page and lets you read the
comment thread of any story. Comments are fetched once per story and cached.

Example usage:
  frontpage                    # Open the reader
  frontpage front              # Print the front page
  frontpage story 8863         # Print the comments of a story`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(o.configPath)
			if err != nil {
				return err
			}
			o.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), o)
		},
	}

	root.PersistentFlags().StringVar(&o.configPath, "config", "", "config file (default is <config dir>/frontpage/config.hcl)")
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newFrontCmd(o), newStoryCmd(o))
	return root
}

// Execute runs the command tree.
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

func runTUI(ctx context.Context, o *options) error {
	log, logFile, err := logging.Open(o.cfg.LogPath, o.logLevel())
	if err != nil {
		return err
	}
	defer logFile.Close()

	rt, err := setup(o.cfg, log, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	rt.startQueue(ctx)

	bridge := ui.NewBridge(rt.store)
	defer bridge.Stop()

	app := ui.NewApp(rt.store, log)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	bridge.Start(p)

	pl := poller.New(rt.store, o.cfg.RefreshInterval, o.cfg.RequestTimeout, log)
	pl.Start()
	defer pl.Stop()

	log.WithField("source", o.cfg.Source).Info("reader started")
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
