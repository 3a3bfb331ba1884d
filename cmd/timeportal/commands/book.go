package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/timeportal/core"
)

type bookOptions struct {
	name      string
	email     string
	year      int
	location  string
	travelers int
	purpose   string
	json      bool
}

func bookCmd(e *env) *cobra.Command {
	o := &bookOptions{}
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a journey without the interactive wizard",
		Example: `  timeportal book --name Ada --email ada@example.com --year 1850 --location tokyo
  timeportal book --name Ada --location "new yrok" --travelers 3 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := e.newWizard(false)
			if err := o.apply(cmd, w, e.log); err != nil {
				return err
			}
			b, err := drive(w)
			if err != nil {
				return err
			}
			return o.print(cmd.OutOrStdout(), b)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.name, "name", "", "traveler name")
	f.StringVar(&o.email, "email", "", "traveler email")
	f.IntVar(&o.year, "year", 0, "destination year (default from config)")
	f.StringVar(&o.location, "location", "", "destination id or name, typos tolerated")
	f.IntVar(&o.travelers, "travelers", 0, "number of travelers (default from config)")
	f.StringVar(&o.purpose, "purpose", "", "purpose of travel")
	f.BoolVar(&o.json, "json", false, "print the booking as JSON")
	return cmd
}

// apply copies the given flags into the wizard draft.
func (o *bookOptions) apply(cmd *cobra.Command, w *core.Wizard, log *zap.Logger) error {
	f := cmd.Flags()
	w.SetField(core.FieldName, o.name)
	w.SetField(core.FieldEmail, o.email)
	w.SetField(core.FieldPurpose, o.purpose)
	if f.Changed("year") {
		w.SetField(core.FieldYear, o.year)
		if got := w.Draft().Year; got != o.year {
			log.Warn("year clamped", zap.Int("requested", o.year), zap.Int("year", got))
		}
	}
	if f.Changed("travelers") {
		w.SetField(core.FieldTravelers, o.travelers)
		if got := w.Draft().Travelers; got != o.travelers {
			log.Warn("travelers clamped", zap.Int("requested", o.travelers), zap.Int("travelers", got))
		}
	}
	if f.Changed("location") {
		loc, ok := core.Locations(w.Locations()).Resolve(o.location)
		if !ok {
			return errors.WithHint(
				errors.Newf("unknown destination %q", o.location),
				"run `timeportal locations` to see every destination",
			)
		}
		w.SelectLocation(loc.ID)
	}
	return nil
}

// drive walks w through every step with immediate transitions and returns
// the confirmed booking. w must have no transition delay.
func drive(w *core.Wizard) (core.Booking, error) {
	var (
		booking   core.Booking
		confirmed bool
	)
	w.OnConfirmed(func(b core.Booking) {
		booking = b
		confirmed = true
	})
	for i := 0; i < w.StepCount() && !confirmed; i++ {
		cmd := w.RequestAdvance()
		if cmd == nil {
			return core.Booking{}, errors.Newf("wizard did not advance from step %d", w.Step())
		}
		switch msg := cmd().(type) {
		case core.StatusMsg:
			if msg.IsErr {
				return core.Booking{}, errors.WithHint(
					errors.Newf("%s: %s", w.CurrentStep().Title, msg.Text),
					"pass the missing values as flags",
				)
			}
		case core.TransitionDoneMsg:
			w.Update(msg)
		}
	}
	if !confirmed {
		return core.Booking{}, errors.New("booking was not confirmed")
	}
	return booking, nil
}

func (o *bookOptions) print(out io.Writer, b core.Booking) error {
	if o.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(b), "encode booking")
	}
	pterm.Success.WithWriter(out).Println(b.Summary())
	pterm.Fprintln(out, fmt.Sprintf("  %s %s", pterm.Gray("booking:  "), b.ID))
	pterm.Fprintln(out, fmt.Sprintf("  %s %s", pterm.Gray("travelers:"), pterm.LightCyan(b.Draft.Travelers)))
	if b.Draft.Name != "" {
		pterm.Fprintln(out, fmt.Sprintf("  %s %s", pterm.Gray("traveler: "), b.Draft.Name))
	}
	return nil
}
