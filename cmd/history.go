package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/milo/internal/cli"
	"github.com/theirongolddev/milo/internal/model"
	"github.com/theirongolddev/milo/internal/pace"
)

var flagHistoryYear int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List readings, newest first, with a pace chart",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryYear, "year", 0, "Calendar year to list (default current)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	return withApp(func(a *app) error {
		now := a.now()
		year := flagHistoryYear
		if year == 0 {
			year = now.Year()
		}

		data := a.store.LoadData()
		var bucket *model.YearlyData
		years := make([]int, 0, len(data))
		for i := range data {
			years = append(years, data[i].Year)
			if data[i].Year == year {
				bucket = &data[i]
			}
		}
		sort.Ints(years)

		fmt.Println()
		fmt.Println(cli.RenderTitle(fmt.Sprintf("Readings %d", year)))
		fmt.Println()

		if bucket == nil || len(bucket.Entries) == 0 {
			fmt.Printf("  No readings for %d.", year)
			if len(years) > 0 {
				fmt.Printf(" Years with data: %v", years)
			}
			fmt.Println()
			fmt.Println()
			return nil
		}

		fmt.Print(cli.RenderTable(historyTable(bucket.Entries, now)))
		fmt.Println()

		s := a.settings.Current()
		var all []model.MileageEntry
		for _, yd := range data {
			all = append(all, yd.Entries...)
		}
		printPaceChart(pace.Series(all, s, now, a.cfg.History.ChartPoints))
		return nil
	})
}

// historyTable lists entries newest first. The delta column is the distance
// driven since the previous reading by date.
func historyTable(entries []model.MileageEntry, now time.Time) cli.Table {
	sorted := make([]model.MileageEntry, len(entries))
	copy(sorted, entries)
	model.SortByDate(sorted)

	rows := make([][]cli.Cell, 0, len(sorted))
	for i := len(sorted) - 1; i >= 0; i-- {
		e := sorted[i]
		delta := ""
		if i > 0 {
			delta = cli.FormatSignedKm(float64(e.TotalKilometers - sorted[i-1].TotalKilometers))
		}
		rows = append(rows, cli.Row(
			cli.FormatDate(e.Date),
			cli.FormatKm(float64(e.TotalKilometers)),
			delta,
			cli.FormatAge(e.Date, now),
			e.Note,
			e.ID,
		))
	}

	return cli.Table{
		Headers: []string{"Date", "Odometer", "Delta", "Age", "Note", "ID"},
		Rows:    rows,
	}
}

func printPaceChart(points []model.SeriesPoint) {
	if len(points) == 0 {
		fmt.Println(cli.Dim("  The allowance period has not started yet."))
		fmt.Println()
		return
	}

	actual := make([]float64, len(points))
	target := make([]float64, len(points))
	var ceiling float64
	for i, p := range points {
		actual[i] = float64(p.Actual)
		target[i] = float64(p.Target)
		ceiling = max(ceiling, actual[i], target[i])
	}

	last := points[len(points)-1]
	fmt.Printf("  %s %s  %s\n", cli.Label("Actual"), cli.Accent(cli.RenderSparkline(actual, ceiling)), cli.FormatKm(float64(last.Actual)))
	fmt.Printf("  %s %s  %s\n", cli.Label("Target"), cli.Dim(cli.RenderSparkline(target, ceiling)), cli.FormatKm(float64(last.Target)))
	fmt.Printf("  %s\n\n", cli.Dim(fmt.Sprintf("%s to %s", cli.FormatDate(points[0].At), cli.FormatDate(last.At))))
}
