package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/milo/internal/cli"
	"github.com/theirongolddev/milo/internal/pace"
)

var (
	flagBandLimit int
	flagBandRatio float64
)

var bandCmd = &cobra.Command{
	Use:   "band <kind> <value>",
	Short: "Show the color tier of a metric value",
	Long: `Show the tier a value falls in. Kinds: variance, total, projected,
remaining, and daily (a daily average in km/day, judged against how far
into the period --ratio is).`,
	Args: cobra.ExactArgs(2),
	RunE: runBand,
}

func init() {
	bandCmd.Flags().IntVar(&flagBandLimit, "limit", 0, "Yearly limit (default from settings)")
	bandCmd.Flags().Float64Var(&flagBandRatio, "ratio", -1, "Fraction of the period elapsed, for daily (default today's)")
	rootCmd.AddCommand(bandCmd)
}

func runBand(_ *cobra.Command, args []string) error {
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid value %q", args[1])
	}

	return withApp(func(a *app) error {
		s := a.settings.Current()
		limit := s.YearlyLimit
		if flagBandLimit > 0 {
			limit = flagBandLimit
		}

		var tier pace.Tier
		if strings.EqualFold(args[0], "daily") {
			ratio := flagBandRatio
			if ratio < 0 {
				ratio = max(0, pace.DaysPassedRatio(s, a.now()))
			}
			tier = pace.TierForDailyAverage(value, ratio, limit)
		} else {
			kind, err := pace.ParseMetricKind(args[0])
			if err != nil {
				return err
			}
			tier = pace.TierForValue(value, kind, limit)
		}

		fmt.Printf("  %s %s  %s\n", args[1], cli.Colored(tier.String(), tier),
			cli.Dim(fmt.Sprintf("(limit %s)", cli.FormatKm(float64(limit)))))
		return nil
	})
}
