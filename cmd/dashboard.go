package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/milo/internal/cli"
	"github.com/theirongolddev/milo/internal/model"
	"github.com/theirongolddev/milo/internal/pace"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show this year's allowance metrics",
	RunE:  runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(_ *cobra.Command, _ []string) error {
	return withApp(func(a *app) error {
		now := a.now()
		s := a.settings.Current()
		yd := pace.CurrentYearData(a.store.LoadData(), now)
		m := pace.Compute(yd, s, now)

		fmt.Println()
		fmt.Println(cli.RenderTitle(fmt.Sprintf("Mileage %d", now.Year())))
		fmt.Printf("  %s %s to %s  %s\n",
			cli.Label("Period"),
			cli.FormatDate(m.PeriodStart),
			cli.FormatDate(m.PeriodEnd),
			cli.Dim(fmt.Sprintf("(%s left)", cli.FormatDays(m.RemainingDays))),
		)
		fmt.Println()

		if _, ok := a.store.LoadLegacyConfig(); !ok {
			fmt.Println(cli.Dim("  Period start not configured yet. Run `milo setup`."))
			fmt.Println()
		}

		if m.EntryCount == 0 {
			fmt.Printf("  No readings for %d. Add one with `milo add <km>`.\n\n", now.Year())
			return nil
		}

		totalTier := pace.TierForValue(float64(m.TotalKilometers), pace.KindTotal, s.YearlyLimit)
		fmt.Println("  " + cli.RenderProgress("Allowance used", m.PercentOfLimit/100, totalTier, 36))
		fmt.Println()

		fmt.Print(cli.RenderTable(metricsTable(m, s)))
		fmt.Println()
		return nil
	})
}

func metricsTable(m model.Metrics, s model.Settings) cli.Table {
	limit := s.YearlyLimit
	tier := func(v float64, kind pace.MetricKind) pace.Tier {
		return pace.TierForValue(v, kind, limit)
	}

	return cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]cli.Cell{
			{{Text: "Total driven"}, {Text: cli.FormatKm(float64(m.TotalKilometers)), Tier: tier(float64(m.TotalKilometers), pace.KindTotal)}},
			cli.Row("Yearly limit", cli.FormatKm(float64(limit))),
			cli.Row("Used", cli.FormatPercent(m.PercentOfLimit)),
			cli.Row("Target today", cli.FormatKm(m.Target)),
			{{Text: "Versus target"}, {Text: cli.FormatSignedKm(m.Variance), Tier: tier(m.Variance, pace.KindVariance)}},
			{{Text: "Remaining"}, {Text: cli.FormatKm(float64(m.RemainingKilometers)), Tier: tier(float64(m.RemainingKilometers), pace.KindRemaining)}},
			cli.Row("Days left", cli.FormatDays(m.RemainingDays)),
			cli.Row("Daily target", cli.FormatRate(m.DailyTarget)),
			{{Text: "Daily average"}, {Text: cli.FormatRate(m.DailyAverage), Tier: pace.TierForDailyAverage(m.DailyAverage, m.DaysPassedRatio, limit)}},
			cli.Row("Required daily", cli.FormatRate(m.RequiredDailyAverage)),
			{{Text: "Projected total"}, {Text: cli.FormatKm(m.ProjectedTotal), Tier: tier(m.ProjectedTotal, pace.KindProjected)}},
			cli.Row("Latest odometer", cli.FormatKm(float64(m.LatestReading))),
			cli.Row("Readings", formatNumber(int64(m.EntryCount))),
		},
	}
}
