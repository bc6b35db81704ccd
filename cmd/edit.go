package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/milo/internal/cli"
	"github.com/theirongolddev/milo/internal/model"
	"github.com/theirongolddev/milo/internal/store"
)

var (
	flagEditKm   string
	flagEditDate string
	flagEditNote string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a recorded reading",
	Long:  "Change the kilometers, date, or note of a reading. A new date in another year moves the reading to that year.",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	editCmd.Flags().StringVar(&flagEditKm, "km", "", "New odometer value")
	editCmd.Flags().StringVar(&flagEditDate, "date", "", "New date, YYYY-MM-DD")
	editCmd.Flags().StringVar(&flagEditNote, "note", "", "New note (empty clears it)")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	id := args[0]
	flags := cmd.Flags()

	var patch model.EntryPatch
	if flags.Changed("km") {
		km, err := parseKm(flagEditKm)
		if err != nil {
			return err
		}
		patch.TotalKilometers = &km
	}
	if flags.Changed("date") {
		d, err := parseDate(flagEditDate)
		if err != nil {
			return err
		}
		patch.Date = &d
	}
	if flags.Changed("note") {
		note := strings.TrimSpace(flagEditNote)
		patch.Note = &note
	}
	if patch == (model.EntryPatch{}) {
		return errors.New("nothing to change: pass --km, --date, or --note")
	}

	return withApp(func(a *app) error {
		err := a.store.UpdateEntry(id, patch)
		if errors.Is(err, store.ErrEntryNotFound) {
			return fmt.Errorf("no reading with id %s", id)
		}
		if err != nil {
			return fmt.Errorf("updating reading: %w", err)
		}

		e, _ := a.store.Entry(id)
		fmt.Printf("  Updated %s: %s on %s\n",
			cli.Dim(id), cli.Accent(cli.FormatKm(float64(e.TotalKilometers))), cli.FormatDate(e.Date))
		return nil
	})
}
