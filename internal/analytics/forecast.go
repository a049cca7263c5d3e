package analytics

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"cafe_backoffice/internal/models"
)

const (
	// MinForecastHistory is the fewest daily points forecasting and anomaly detection accept.
	MinForecastHistory = 7
	// MaxForecastHistory caps the trailing window the regression is fitted on.
	MaxForecastHistory = 30
	// MaxForecastHorizon is the furthest day projected.
	MaxForecastHorizon = 7
	// AnomalyZThreshold flags days whose |z| exceeds it.
	AnomalyZThreshold = 2.0

	confidenceZ   = 1.96
	trendStrength = 0.05
)

// Notices attached to results computed on too short a history.
const (
	NoticeInsufficientForecast  = "بيانات غير كافية للتنبؤ: نحتاج 7 أيام مبيعات على الأقل"
	NoticeInsufficientAnomalies = "بيانات غير كافية لكشف الشذوذ: نحتاج 7 أيام مبيعات على الأقل"
)

// DailySalesSeries collapses inflow into one point per day with positive sales, oldest first.
func DailySalesSeries(inflow []models.InflowFact) []models.DailySales {
	byDay := make(map[string]*models.DailySales)
	for _, in := range inflow {
		k := models.DayKey(in.Date)
		d, ok := byDay[k]
		if !ok {
			d = &models.DailySales{Date: models.StartOfDay(in.Date)}
			byDay[k] = d
		}
		d.Sales += in.NetSales
	}
	series := make([]models.DailySales, 0, len(byDay))
	for _, d := range byDay {
		if d.Sales > 0 {
			series = append(series, *d)
		}
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series
}

func salesValues(series []models.DailySales) stats.Float64Data {
	data := make(stats.Float64Data, len(series))
	for i, s := range series {
		data[i] = s.Sales
	}
	return data
}

// Forecast fits an ordinary least squares line over the trailing history and
// projects horizon days ahead with a 95% band. Day i of the history has x = i+1.
// A horizon outside 1..MaxForecastHorizon is treated as MaxForecastHorizon.
func Forecast(series []models.DailySales, horizon int) models.Forecast {
	if horizon <= 0 || horizon > MaxForecastHorizon {
		horizon = MaxForecastHorizon
	}
	if len(series) < MinForecastHistory {
		return models.Forecast{
			Insufficient: true,
			Notice:       NoticeInsufficientForecast,
			HistoryDays:  len(series),
			Points:       []models.ForecastPoint{},
		}
	}
	if len(series) > MaxForecastHistory {
		series = series[len(series)-MaxForecastHistory:]
	}

	ys := salesValues(series)
	n := len(ys)
	xs := make(stats.Float64Data, n)
	for i := range xs {
		xs[i] = float64(i + 1)
	}
	meanX, _ := stats.Mean(xs)
	meanY, _ := stats.Mean(ys)

	var sxy, sxx float64
	for i := range ys {
		sxy += (xs[i] - meanX) * (ys[i] - meanY)
		sxx += (xs[i] - meanX) * (xs[i] - meanX)
	}
	slope := sxy / sxx
	intercept := meanY - slope*meanX

	var ssRes, ssTot float64
	for i := range ys {
		fit := slope*xs[i] + intercept
		ssRes += (ys[i] - fit) * (ys[i] - fit)
		ssTot += (ys[i] - meanY) * (ys[i] - meanY)
	}
	r2 := 1.0
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}

	sd, _ := stats.StandardDeviationSample(ys)
	margin := confidenceZ * sd

	last := series[n-1].Date
	points := make([]models.ForecastPoint, 0, horizon)
	for i := 1; i <= horizon; i++ {
		predicted := math.Max(0, slope*float64(n+i)+intercept)
		points = append(points, models.ForecastPoint{
			DaysAhead: i,
			Date:      last.AddDate(0, 0, i),
			Predicted: predicted,
			Lower:     math.Max(0, predicted-margin),
			Upper:     predicted + margin,
		})
	}

	return models.Forecast{
		HistoryDays: n,
		Slope:       slope,
		Intercept:   intercept,
		RSquared:    r2,
		StdDev:      sd,
		Trend:       trendLabel(slope, meanY),
		Points:      points,
	}
}

func trendLabel(slope, mean float64) string {
	switch {
	case slope > mean*trendStrength:
		return models.TrendStrongGrowth
	case slope > 0:
		return models.TrendGrowth
	case slope < -mean*trendStrength:
		return models.TrendStrongDecline
	case slope < 0:
		return models.TrendDecline
	}
	return models.TrendStable
}

// DetectAnomalies flags days whose sales z-score, against the mean and population
// standard deviation of the whole history, exceeds AnomalyZThreshold in magnitude.
// The largest deviations come first.
func DetectAnomalies(series []models.DailySales) models.AnomalyReport {
	if len(series) < MinForecastHistory {
		return models.AnomalyReport{
			Insufficient: true,
			Notice:       NoticeInsufficientAnomalies,
			Anomalies:    []models.Anomaly{},
		}
	}
	ys := salesValues(series)
	mean, _ := stats.Mean(ys)
	sd, _ := stats.StandardDeviationPopulation(ys)
	report := models.AnomalyReport{Mean: mean, StdDev: sd, Anomalies: []models.Anomaly{}}
	if sd == 0 {
		return report
	}

	for _, s := range series {
		z := (s.Sales - mean) / sd
		if math.Abs(z) <= AnomalyZThreshold {
			continue
		}
		dir := models.AnomalySpike
		if z < 0 {
			dir = models.AnomalyDrop
		}
		report.Anomalies = append(report.Anomalies, models.Anomaly{
			Date:      s.Date,
			Sales:     s.Sales,
			ZScore:    z,
			Direction: dir,
		})
	}
	sort.SliceStable(report.Anomalies, func(i, j int) bool {
		ai, aj := math.Abs(report.Anomalies[i].ZScore), math.Abs(report.Anomalies[j].ZScore)
		if ai != aj {
			return ai > aj
		}
		return report.Anomalies[i].Date.Before(report.Anomalies[j].Date)
	})
	return report
}
