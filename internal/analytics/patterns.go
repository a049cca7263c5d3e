package analytics

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"cafe_backoffice/internal/models"
)

// TrendWindowDays is the size of the recent and early windows compared by the sales trend.
const TrendWindowDays = 7

// DefaultPeakHours is how many busiest hours reports show.
const DefaultPeakHours = 3

// IsWeekend reports whether t falls on the local weekend (Friday or Saturday).
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Friday || wd == time.Saturday
}

// AnalyzePatterns measures weekly seasonality of a daily sales series.
func AnalyzePatterns(series []models.DailySales) models.SalesPatterns {
	p := models.SalesPatterns{Weekdays: []models.WeekdayAverage{}}
	if len(series) == 0 {
		return p
	}

	byWeekday := make(map[time.Weekday]stats.Float64Data)
	var weekend, weekday stats.Float64Data
	for _, s := range series {
		wd := s.Date.Weekday()
		byWeekday[wd] = append(byWeekday[wd], s.Sales)
		if IsWeekend(s.Date) {
			weekend = append(weekend, s.Sales)
		} else {
			weekday = append(weekday, s.Sales)
		}
	}

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		values, ok := byWeekday[wd]
		if !ok {
			continue
		}
		avg, _ := stats.Mean(values)
		p.Weekdays = append(p.Weekdays, models.WeekdayAverage{Weekday: wd, Average: avg, Days: len(values)})
	}
	for i := range p.Weekdays {
		w := p.Weekdays[i]
		if p.BestDay == nil || w.Average > p.BestDay.Average {
			p.BestDay = &w
		}
		if p.WorstDay == nil || w.Average < p.WorstDay.Average {
			p.WorstDay = &w
		}
	}

	if len(weekend) > 0 {
		p.WeekendAvg, _ = stats.Mean(weekend)
	}
	if len(weekday) > 0 {
		p.WeekdayAvg, _ = stats.Mean(weekday)
	}
	if p.WeekdayAvg > 0 {
		p.WeekendBoost = (p.WeekendAvg - p.WeekdayAvg) / p.WeekdayAvg * 100
	}

	if len(series) >= 2*TrendWindowDays {
		values := salesValues(series)
		early, _ := stats.Mean(values[:TrendWindowDays])
		recent, _ := stats.Mean(values[len(values)-TrendWindowDays:])
		if early > 0 {
			p.TrendPercent = (recent - early) / early * 100
			p.TrendMeasured = true
		}
	}
	return p
}

// PeakHours counts orders per hour of day and returns the top busiest hours,
// ties broken by the earlier hour.
func PeakHours(orders []models.Order, top int) []models.HourCount {
	var counts [24]int
	for _, o := range orders {
		if o.CreatedAt.IsZero() {
			continue
		}
		counts[o.CreatedAt.Hour()]++
	}
	hours := []models.HourCount{}
	for h, c := range counts {
		if c > 0 {
			hours = append(hours, models.HourCount{Hour: h, Orders: c})
		}
	}
	sort.SliceStable(hours, func(i, j int) bool { return hours[i].Orders > hours[j].Orders })
	if top > 0 && len(hours) > top {
		hours = hours[:top]
	}
	return hours
}
