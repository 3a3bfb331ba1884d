package commands

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/timeportal/core"
	"github.com/jask/timeportal/internal/config"
	"github.com/jask/timeportal/internal/logging"
	"github.com/jask/timeportal/internal/tui"
)

// env is what every command needs once flags are parsed.
type env struct {
	configPath string
	logFile    string
	logLevel   string

	cfg config.Config
	log *zap.Logger
}

func Execute() error {
	root := NewRootCommand()
	err := root.Execute()
	if err != nil {
		pterm.Error.WithWriter(root.ErrOrStderr()).Println(err.Error())
		if hints := errors.GetAllHints(err); len(hints) > 0 {
			for _, h := range hints {
				pterm.Info.WithWriter(root.ErrOrStderr()).Println(h)
			}
		}
	}
	return err
}

func NewRootCommand() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:           "timeportal",
		Short:         "Book a journey through time",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(cmd, cmd.Parent() != nil)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if e.log != nil {
				_ = e.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.OutOrStdout(), e)
		},
	}

	root.PersistentFlags().StringVar(&e.configPath, "config", "", "config file (default $TIMEPORTAL_CONFIG or the user config dir)")
	root.PersistentFlags().StringVar(&e.logFile, "log-file", "", "write logs to this file")
	root.PersistentFlags().StringVar(&e.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(bookCmd(e), configCmd(e), locationsCmd(e))
	return root
}

// setup loads configuration and builds the logger. Non-interactive commands
// without a log file log to stderr.
func (e *env) setup(cmd *cobra.Command, console bool) error {
	var (
		cfg config.Config
		err error
	)
	if e.configPath != "" {
		cfg, err = config.LoadFile(e.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if e.logFile != "" {
		cfg.Log.Path = e.logFile
	}
	if e.logLevel != "" {
		cfg.Log.Level = e.logLevel
	}
	e.cfg = cfg

	if cfg.Log.Path == "" && console {
		e.log, err = logging.Console(cfg.Log.Level)
	} else {
		e.log, err = logging.New(cfg.Log.Path, cfg.Log.Level)
	}
	if err != nil {
		return err
	}
	e.log.Debug("config loaded", zap.String("command", cmd.CommandPath()))
	return nil
}

func (e *env) newWizard(delay bool) *core.Wizard {
	opts := core.WizardOptions{
		Locations:     e.cfg.Locations,
		Bounds:        e.cfg.Bounds(),
		RequireFields: e.cfg.Wizard.RequireFields,
		Logger:        e.log,
	}
	if delay {
		opts.TransitionDelay = e.cfg.TransitionDelay()
	}
	return core.NewWizard(opts)
}

func runTUI(out io.Writer, e *env) error {
	model := tui.New(tui.Options{
		Wizard:        e.newWizard(true),
		Keys:          core.ApplyActionKeybindings(core.DefaultKeyBindings(), e.cfg.Keys),
		ReferenceYear: e.cfg.Wizard.ReferenceYear,
		Logger:        e.log,
	})
	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	if err != nil {
		return errors.Wrap(err, "run tui")
	}
	m, ok := final.(tui.Model)
	if !ok {
		return nil
	}
	for _, b := range m.Confirmed() {
		pterm.Success.WithWriter(out).Println(b.Summary())
		pterm.Fprintln(out, pterm.Gray(fmt.Sprintf("  booking %s", b.ID)))
	}
	return nil
}
