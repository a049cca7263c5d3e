package analytics

import (
	"math"
	"testing"
	"time"

	"cafe_backoffice/internal/models"
)

func series(values ...float64) []models.DailySales {
	out := make([]models.DailySales, len(values))
	for i, v := range values {
		out[i] = models.DailySales{Date: day(i+1, 0), Sales: v}
	}
	return out
}

func TestForecast_PerfectLine(t *testing.T) {
	values := make([]float64, 10)
	for i := range values {
		values[i] = 1000 + 50*float64(i+1)
	}
	f := Forecast(series(values...), 3)

	if f.Insufficient {
		t.Fatalf("Forecast expected a result, got notice %q", f.Notice)
	}
	if len(f.Points) != 3 {
		t.Fatalf("Forecast expected 3 points, got %d", len(f.Points))
	}
	if math.Abs(f.Points[0].Predicted-1550) > 1e-6 {
		t.Fatalf("Forecast day 11 expected 1550, got %v", f.Points[0].Predicted)
	}
	if math.Abs(f.RSquared-1) > 1e-9 {
		t.Fatalf("Forecast R² expected 1, got %v", f.RSquared)
	}
	if models.DayKey(f.Points[0].Date) != "2025-03-11" {
		t.Fatalf("Forecast first date expected 2025-03-11, got %s", models.DayKey(f.Points[0].Date))
	}
	if f.Trend != models.TrendGrowth {
		t.Fatalf("Forecast trend expected %s, got %s", models.TrendGrowth, f.Trend)
	}
	for _, p := range f.Points {
		if p.Lower > p.Predicted || p.Upper < p.Predicted || p.Lower < 0 {
			t.Fatalf("Forecast band invalid: %+v", p)
		}
	}
}

func TestForecast_HorizonAndHistory(t *testing.T) {
	values := make([]float64, 40)
	for i := range values {
		values[i] = 5000
	}
	cases := []struct {
		horizon  int
		expected int
	}{
		{0, MaxForecastHorizon},
		{-3, MaxForecastHorizon},
		{1, 1},
		{7, 7},
		{12, MaxForecastHorizon},
	}
	for _, tc := range cases {
		f := Forecast(series(values...), tc.horizon)
		if len(f.Points) != tc.expected {
			t.Fatalf("Forecast(horizon=%d) expected %d points, got %d", tc.horizon, tc.expected, len(f.Points))
		}
		if f.HistoryDays != MaxForecastHistory {
			t.Fatalf("Forecast history expected %d days, got %d", MaxForecastHistory, f.HistoryDays)
		}
		if f.Trend != models.TrendStable || f.RSquared != 1 {
			t.Fatalf("Forecast flat series expected stable with R² 1, got %s %v", f.Trend, f.RSquared)
		}
	}
}

func TestForecast_ClampsAtZero(t *testing.T) {
	f := Forecast(series(7000, 6000, 5000, 4000, 3000, 2000, 1000), 7)
	for _, p := range f.Points {
		if p.Predicted < 0 || p.Lower < 0 {
			t.Fatalf("Forecast expected non-negative projection, got %+v", p)
		}
	}
	if f.Trend != models.TrendStrongDecline {
		t.Fatalf("Forecast trend expected %s, got %s", models.TrendStrongDecline, f.Trend)
	}
}

func TestForecast_InsufficientHistory(t *testing.T) {
	f := Forecast(series(1, 2, 3, 4, 5, 6), 3)
	if !f.Insufficient || f.Notice == "" || len(f.Points) != 0 {
		t.Fatalf("Forecast with 6 points expected insufficient notice, got %+v", f)
	}
	a := DetectAnomalies(series(1, 2, 3))
	if !a.Insufficient || a.Notice == "" || len(a.Anomalies) != 0 {
		t.Fatalf("DetectAnomalies with 3 points expected insufficient notice, got %+v", a)
	}
}

func TestDetectAnomalies_SingleSpike(t *testing.T) {
	values := []float64{1000, 1000, 1000, 1000, 1000, 5000, 1000, 1000, 1000, 1000, 1000}
	a := DetectAnomalies(series(values...))
	if len(a.Anomalies) != 1 {
		t.Fatalf("DetectAnomalies expected 1 anomaly, got %d", len(a.Anomalies))
	}
	got := a.Anomalies[0]
	if models.DayKey(got.Date) != "2025-03-06" || got.Direction != models.AnomalySpike || got.ZScore <= AnomalyZThreshold {
		t.Fatalf("DetectAnomalies unexpected anomaly %+v", got)
	}
}

func TestDetectAnomalies_FlatSeries(t *testing.T) {
	a := DetectAnomalies(series(10, 10, 10, 10, 10, 10, 10, 10))
	if a.StdDev != 0 || len(a.Anomalies) != 0 {
		t.Fatalf("DetectAnomalies flat series expected no anomalies, got %+v", a)
	}
}

func TestDailySalesSeries_SkipsEmptyDays(t *testing.T) {
	inflow := []models.InflowFact{
		{Date: day(2, 0), NetSales: 300},
		{Date: day(1, 0), NetSales: 100},
		{Date: day(1, 0), NetSales: 50},
		{Date: day(3, 0), NetSales: 0},
	}
	s := DailySalesSeries(inflow)
	if len(s) != 2 || s[0].Sales != 150 || s[1].Sales != 300 {
		t.Fatalf("DailySalesSeries unexpected %+v", s)
	}
}

func TestAnalyzePatterns(t *testing.T) {
	// 2025-03-01 is a Saturday.
	values := make([]float64, 14)
	for i := range values {
		d := day(i+1, 0)
		values[i] = 100
		if d.Weekday() == time.Friday || d.Weekday() == time.Saturday {
			values[i] = 150
		}
	}
	p := AnalyzePatterns(series(values...))

	if len(p.Weekdays) != 7 {
		t.Fatalf("AnalyzePatterns expected 7 weekdays, got %d", len(p.Weekdays))
	}
	if math.Abs(p.WeekendBoost-50) > 1e-9 {
		t.Fatalf("AnalyzePatterns weekend boost expected 50, got %v", p.WeekendBoost)
	}
	if p.BestDay == nil || p.BestDay.Weekday != time.Friday {
		t.Fatalf("AnalyzePatterns best day expected Friday, got %+v", p.BestDay)
	}
	if p.WorstDay == nil || p.WorstDay.Weekday != time.Sunday {
		t.Fatalf("AnalyzePatterns worst day expected Sunday, got %+v", p.WorstDay)
	}
	if !p.TrendMeasured || math.Abs(p.TrendPercent) > 1e-9 {
		t.Fatalf("AnalyzePatterns trend expected 0, got %v (measured=%v)", p.TrendPercent, p.TrendMeasured)
	}
}

func TestPeakHours(t *testing.T) {
	orders := []models.Order{
		{CreatedAt: day(1, 9)}, {CreatedAt: day(1, 21)}, {CreatedAt: day(2, 21)},
		{CreatedAt: day(2, 13)}, {CreatedAt: day(3, 13)}, {CreatedAt: day(3, 21)}, {CreatedAt: day(4, 0)},
	}
	hours := PeakHours(orders, 3)
	expected := []models.HourCount{{Hour: 21, Orders: 3}, {Hour: 13, Orders: 2}, {Hour: 0, Orders: 1}}
	if len(hours) != len(expected) {
		t.Fatalf("PeakHours expected %d hours, got %+v", len(expected), hours)
	}
	for i := range expected {
		if hours[i] != expected[i] {
			t.Fatalf("PeakHours[%d] expected %+v, got %+v", i, expected[i], hours[i])
		}
	}
}
