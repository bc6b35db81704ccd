package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/milo/internal/cli"
	"github.com/theirongolddev/milo/internal/model"
	"github.com/theirongolddev/milo/internal/pace"
	"github.com/theirongolddev/milo/internal/settings"
)

var (
	flagSetLimit     string
	flagSetAccent    string
	flagSetStart     string
	flagSetInitialKm string
	flagSetTheme     string
	flagSetLanguage  string
	flagResetYes     bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show allowance settings",
	RunE:  runSettings,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change one or more settings",
	RunE:  runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	RunE:  runSettingsReset,
}

func init() {
	f := settingsSetCmd.Flags()
	f.StringVar(&flagSetLimit, "limit", "", "Yearly kilometer allowance")
	f.StringVar(&flagSetAccent, "accent", "", "Accent color, #RRGGBB")
	f.StringVar(&flagSetStart, "start", "", "Allowance period start, YYYY-MM-DD")
	f.StringVar(&flagSetInitialKm, "initial-km", "", "Odometer value at the period start")
	f.StringVar(&flagSetTheme, "theme", "", "Theme: dark, light, or auto")
	f.StringVar(&flagSetLanguage, "language", "", "Language: es or en")

	settingsResetCmd.Flags().BoolVarP(&flagResetYes, "yes", "y", false, "Skip the confirmation prompt")

	settingsCmd.AddCommand(settingsSetCmd, settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettings(_ *cobra.Command, _ []string) error {
	return withApp(func(a *app) error {
		printSettings(a.settings.Current())
		return nil
	})
}

func printSettings(s model.Settings) {
	end := pace.PeriodEnd(s)
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Settings",
		Headers: []string{"Setting", "Value"},
		Rows: [][]cli.Cell{
			cli.Row("Yearly limit", cli.FormatKm(float64(s.YearlyLimit))),
			cli.Row("Daily target", cli.FormatRate(pace.DailyTarget(s.YearlyLimit))),
			cli.Row("Period", cli.FormatDate(s.StartDate)+" to "+cli.FormatDate(end)),
			cli.Row("Initial odometer", cli.FormatKm(float64(s.InitialKilometers))),
			cli.Row("Accent", cli.Accent(s.AccentColor)),
			cli.Row("Theme", s.Theme),
			cli.Row("Language", s.Language),
		},
	}))
	fmt.Println()
}

func settingsPatch(cmd *cobra.Command) (settings.Patch, error) {
	var p settings.Patch
	flags := cmd.Flags()

	if flags.Changed("limit") {
		v, err := parseKm(flagSetLimit)
		if err != nil {
			return p, err
		}
		p.YearlyLimit = &v
	}
	if flags.Changed("initial-km") {
		v, err := parseKm(flagSetInitialKm)
		if err != nil {
			return p, err
		}
		p.InitialKilometers = &v
	}
	if flags.Changed("start") {
		d, err := parseDate(flagSetStart)
		if err != nil {
			return p, err
		}
		p.StartDate = &d
	}
	if flags.Changed("accent") {
		v := strings.ToUpper(strings.TrimSpace(flagSetAccent))
		p.AccentColor = &v
	}
	if flags.Changed("theme") {
		v := strings.ToLower(strings.TrimSpace(flagSetTheme))
		p.Theme = &v
	}
	if flags.Changed("language") {
		v := strings.ToLower(strings.TrimSpace(flagSetLanguage))
		p.Language = &v
	}

	if p == (settings.Patch{}) {
		return p, errors.New("nothing to change: see `milo settings set --help`")
	}
	return p, nil
}

func runSettingsSet(cmd *cobra.Command, _ []string) error {
	p, err := settingsPatch(cmd)
	if err != nil {
		return err
	}

	return withApp(func(a *app) error {
		s, err := a.settings.Update(p)
		if err != nil {
			return fmt.Errorf("updating settings: %w", err)
		}
		printSettings(s)
		return nil
	})
}

func runSettingsReset(_ *cobra.Command, _ []string) error {
	return withApp(func(a *app) error {
		if !flagResetYes {
			ok, err := confirm("Reset all settings?", "The period start moves to today and the limit returns to "+
				cli.FormatKm(model.DefaultYearlyLimit)+". Readings are kept.")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("  Cancelled.")
				return nil
			}
		}

		s, err := a.settings.Reset()
		if err != nil {
			return fmt.Errorf("resetting settings: %w", err)
		}
		printSettings(s)
		return nil
	})
}
