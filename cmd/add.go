package cmd

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/milo/internal/cli"
	"github.com/theirongolddev/milo/internal/model"
)

var (
	flagAddNote string
	flagAddDate string
	flagAddYes  bool
)

var addCmd = &cobra.Command{
	Use:   "add <km>",
	Short: "Record an odometer reading",
	Long:  "Record the total odometer value, in kilometers, shown on the vehicle today or on --date.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVar(&flagAddNote, "note", "", "Optional note")
	addCmd.Flags().StringVar(&flagAddDate, "date", "", "Reading date, YYYY-MM-DD (default now)")
	addCmd.Flags().BoolVarP(&flagAddYes, "yes", "y", false, "Skip confirmation prompts")
	rootCmd.AddCommand(addCmd)
}

// kmPattern matches a plain count or one grouped in thousands with "," or ".".
var kmPattern = regexp.MustCompile(`^(\d+|\d{1,3}([.,]\d{3})+)$`)

// parseKm reads a non-negative whole kilometer value. Separators are only
// accepted between groups of three digits; decimals are rejected.
func parseKm(s string) (int, error) {
	s = strings.TrimSpace(s)
	if !kmPattern.MatchString(s) {
		return 0, fmt.Errorf("invalid kilometers %q", s)
	}
	km, err := strconv.Atoi(strings.NewReplacer(",", "", ".", "").Replace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid kilometers %q", s)
	}
	return km, nil
}

func confirm(title, description string) (bool, error) {
	ok := false
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}

func runAdd(_ *cobra.Command, args []string) error {
	km, err := parseKm(args[0])
	if err != nil {
		return err
	}

	return withApp(func(a *app) error {
		date := a.now()
		if flagAddDate != "" {
			if date, err = parseDate(flagAddDate); err != nil {
				return err
			}
		}

		latest := a.store.LatestReading(date)
		if km < latest && !flagAddYes {
			ok, err := confirm(
				"Reading is lower than the latest one",
				fmt.Sprintf("%s is below the latest recorded %s. Save it anyway?",
					cli.FormatKm(float64(km)), cli.FormatKm(float64(latest))),
			)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("  Cancelled.")
				return nil
			}
		}

		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generating id: %w", err)
		}

		entry := model.MileageEntry{
			ID:              id.String(),
			Date:            date,
			TotalKilometers: km,
			Note:            strings.TrimSpace(flagAddNote),
		}
		if err := a.store.AddEntry(entry); err != nil {
			return fmt.Errorf("saving reading: %w", err)
		}

		fmt.Printf("  Recorded %s on %s  %s\n",
			cli.Accent(cli.FormatKm(float64(km))), cli.FormatDate(date), cli.Dim(entry.ID))
		return nil
	})
}
