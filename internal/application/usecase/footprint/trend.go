package footprint

import "github.com/carbon-tracker/backend/internal/domain/entity"

const (
	// TrendWindow is the number of most recent entries the trend looks at.
	TrendWindow = 30
	trendHalf   = TrendWindow / 2
)

// Trend compares the first and second positional halves of the 30 most recent
// entries. Each half is divided by the fixed half size, not by its actual
// length, so the result is an approximation whenever fewer than 30 entries exist.
func (s Snapshot) Trend() entity.Trend {
	recent := s.RecentEntries(TrendWindow)

	var first, second []*entity.Entry
	if len(recent) > trendHalf {
		first, second = recent[:trendHalf], recent[trendHalf:]
	} else {
		first = recent
	}

	firstAvg := entity.SumCO2e(first) / trendHalf
	secondAvg := entity.SumCO2e(second) / trendHalf

	return entity.Trend{
		FirstHalfAverage:  firstAvg,
		SecondHalfAverage: secondAvg,
		Delta:             secondAvg - firstAvg,
		SampleSize:        len(recent),
		Approximate:       len(recent) < TrendWindow,
	}
}
