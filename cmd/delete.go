package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/milo/internal/cli"
)

var flagDeleteYes bool

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a recorded reading",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&flagDeleteYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(_ *cobra.Command, args []string) error {
	id := args[0]

	return withApp(func(a *app) error {
		e, ok := a.store.Entry(id)
		if !ok {
			fmt.Printf("  No reading with id %s.\n", id)
			return nil
		}

		if !flagDeleteYes {
			ok, err := confirm("Delete this reading?",
				fmt.Sprintf("%s on %s", cli.FormatKm(float64(e.TotalKilometers)), cli.FormatDate(e.Date)))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("  Cancelled.")
				return nil
			}
		}

		removed, err := a.store.DeleteEntry(id)
		if err != nil {
			return fmt.Errorf("deleting reading: %w", err)
		}
		if removed {
			fmt.Printf("  Deleted %s\n", cli.Dim(id))
		}
		return nil
	})
}
