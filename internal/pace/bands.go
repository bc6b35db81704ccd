package pace

import (
	"fmt"
	"strings"
)

// Tier is a severity band used to colour a metric.
type Tier int

// Tiers from best to worst. TierUnrated is for values that carry no
// signal, such as a daily average with no data yet.
const (
	TierUnrated Tier = iota
	TierExcellent
	TierGood
	TierNeutral
	TierWarning
	TierDanger
)

var tierNames = [...]string{"unrated", "excellent", "good", "neutral", "warning", "danger"}

func (t Tier) String() string {
	if t < 0 || int(t) >= len(tierNames) {
		return "unknown"
	}
	return tierNames[t]
}

// MetricKind selects the threshold ladder used by TierForValue.
type MetricKind string

// Metric kinds with their own ladders.
const (
	KindVariance  MetricKind = "variance"
	KindTotal     MetricKind = "total"
	KindProjected MetricKind = "projected"
	KindRemaining MetricKind = "remaining"
)

// ParseMetricKind resolves a kind name, case-insensitively.
func ParseMetricKind(s string) (MetricKind, error) {
	switch k := MetricKind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindVariance, KindTotal, KindProjected, KindRemaining:
		return k, nil
	}
	return "", fmt.Errorf("unknown metric kind %q (want variance, total, projected or remaining)", s)
}

// TierForValue bands a metric value. Variance uses absolute km offsets;
// the other kinds are measured against the yearly limit.
func TierForValue(value float64, kind MetricKind, yearlyLimit int) Tier {
	limit := float64(yearlyLimit)

	switch kind {
	case KindVariance:
		// Negative: under pace, room to spare.
		switch {
		case value < -100:
			return TierExcellent
		case value < 0:
			return TierGood
		case value < 50:
			return TierNeutral
		case value < 100:
			return TierWarning
		default:
			return TierDanger
		}

	case KindTotal:
		pct := value / limit * 100
		switch {
		case pct < 70:
			return TierExcellent
		case pct < 85:
			return TierGood
		case pct < 95:
			return TierNeutral
		case pct < 100:
			return TierWarning
		default:
			return TierDanger
		}

	case KindProjected:
		switch {
		case value < limit*0.9:
			return TierExcellent
		case value < limit*0.95:
			return TierGood
		case value < limit:
			return TierNeutral
		case value < limit*1.05:
			return TierWarning
		default:
			return TierDanger
		}

	case KindRemaining:
		pct := value / limit * 100
		switch {
		case pct > 40:
			return TierExcellent
		case pct > 25:
			return TierGood
		case pct > 15:
			return TierNeutral
		case pct > 5:
			return TierWarning
		default:
			return TierDanger
		}
	}

	return TierUnrated
}

// TierForDailyAverage bands a daily average against the flat daily target,
// raised by up to 10% early in the period. A zero average is unrated: no
// data is not good news.
func TierForDailyAverage(avg, daysPassedRatio float64, yearlyLimit int) Tier {
	if avg == 0 {
		return TierUnrated
	}

	adjusted := DailyTarget(yearlyLimit) * (1 + (1-daysPassedRatio)*0.1)
	ratio := avg / adjusted

	switch {
	case ratio < 0.85:
		return TierExcellent
	case ratio < 0.95:
		return TierGood
	case ratio < 1.05:
		return TierNeutral
	case ratio < 1.15:
		return TierWarning
	default:
		return TierDanger
	}
}
