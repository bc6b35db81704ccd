package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/milo/internal/cli"
	"github.com/theirongolddev/milo/internal/pace"
)

var (
	flagSetupStart     string
	flagSetupInitialKm string
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Set the allowance period start and initial odometer",
	Long:  "Interactive setup. Pass --start (and optionally --initial-km) to skip the form.",
	RunE:  runSetup,
}

func init() {
	setupCmd.Flags().StringVar(&flagSetupStart, "start", "", "Period start, YYYY-MM-DD")
	setupCmd.Flags().StringVar(&flagSetupInitialKm, "initial-km", "", "Odometer value at the period start")
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	return withApp(func(a *app) error {
		cur := a.settings.Current()
		startIn := cli.FormatDate(cur.StartDate)
		kmIn := strconv.Itoa(cur.InitialKilometers)

		if cmd.Flags().Changed("start") {
			startIn = flagSetupStart
			if cmd.Flags().Changed("initial-km") {
				kmIn = flagSetupInitialKm
			} else {
				kmIn = ""
			}
		} else {
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewNote().
						Title("Welcome to milo").
						Description("Your allowance runs for one year from the start date."),
					huh.NewInput().
						Title("Period start").
						Description("YYYY-MM-DD").
						Value(&startIn).
						Validate(func(s string) error {
							_, err := parseDate(s)
							return err
						}),
					huh.NewInput().
						Title("Odometer at the start (km)").
						Description("Leave empty if unknown").
						Value(&kmIn).
						Validate(func(s string) error {
							if s == "" {
								return nil
							}
							_, err := parseKm(s)
							return err
						}),
				),
			)
			if err := form.Run(); err != nil {
				return err
			}
		}

		start, err := parseDate(startIn)
		if err != nil {
			return err
		}
		var initial *int
		if kmIn != "" {
			km, err := parseKm(kmIn)
			if err != nil {
				return err
			}
			initial = &km
		}

		if err := a.settings.Setup(start, initial); err != nil {
			return fmt.Errorf("saving setup: %w", err)
		}

		s := a.settings.Current()
		fmt.Println()
		fmt.Printf("  Period %s to %s, starting at %s.\n",
			cli.Accent(cli.FormatDate(s.StartDate)),
			cli.Accent(cli.FormatDate(pace.PeriodEnd(s))),
			cli.FormatKm(float64(s.InitialKilometers)))
		fmt.Println("  Run `milo setup` anytime to reconfigure.")
		fmt.Println()
		return nil
	})
}
