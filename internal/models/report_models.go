package models

import "time"

// SummaryItem is one row of a ranked group-by summary.
type SummaryItem struct {
	Key        string  `json:"key"`
	Amount     float64 `json:"amount"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// EmployeeSummary is the payroll total of one employee with a per-type breakdown.
type EmployeeSummary struct {
	EmployeeName string                  `json:"employee_name"`
	Role         string                  `json:"role,omitempty"`
	Total        float64                 `json:"total"`
	ByType       map[PayrollType]float64 `json:"by_type"`
	Entries      int                     `json:"entries"`
}

// DailyTrendItem compares one day's sales against its outflow.
type DailyTrendItem struct {
	Date     string  `json:"date"` // YYYY-MM-DD
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
}

// Aggregations are the keyed summaries consumed by reporting views.
type Aggregations struct {
	ByCategory    []SummaryItem     `json:"by_category"`
	BySubcategory []SummaryItem     `json:"by_subcategory"`
	ByVendor      []SummaryItem     `json:"by_vendor"`
	ByPayer       []SummaryItem     `json:"by_payer"`
	ByEmployee    []EmployeeSummary `json:"by_employee"`
	Daily         []DailyTrendItem  `json:"daily"`
}

// AnalyticsResult is everything computed for one period.
type AnalyticsResult struct {
	Period       Period       `json:"period"`
	Facts        FactSet      `json:"facts"`
	KPIs         KPISet       `json:"kpis"`
	Alerts       []Alert      `json:"alerts"`
	Aggregations Aggregations `json:"aggregations"`
}

// DailySales is one point of the sales history used for forecasting.
type DailySales struct {
	Date  time.Time `json:"date"`
	Sales float64   `json:"sales"`
}

// ForecastPoint is one projected day.
type ForecastPoint struct {
	DaysAhead int       `json:"days_ahead"`
	Date      time.Time `json:"date"`
	Predicted float64   `json:"predicted"`
	Lower     float64   `json:"lower"`
	Upper     float64   `json:"upper"`
}

// Trend labels derived from the regression slope.
const (
	TrendStrongGrowth  = "strong_growth"
	TrendGrowth        = "growth"
	TrendStable        = "stable"
	TrendDecline       = "decline"
	TrendStrongDecline = "strong_decline"
)

// Forecast is a linear-trend projection of daily sales.
type Forecast struct {
	Insufficient bool            `json:"insufficient"`
	Notice       string          `json:"notice,omitempty"`
	HistoryDays  int             `json:"history_days"`
	Slope        float64         `json:"slope"`
	Intercept    float64         `json:"intercept"`
	RSquared     float64         `json:"r_squared"`
	StdDev       float64         `json:"std_dev"`
	Trend        string          `json:"trend,omitempty"`
	Points       []ForecastPoint `json:"points"`
}

// Anomaly directions.
const (
	AnomalySpike = "spike"
	AnomalyDrop  = "drop"
)

// Anomaly is a day whose sales deviate more than the z-score threshold.
type Anomaly struct {
	Date      time.Time `json:"date"`
	Sales     float64   `json:"sales"`
	ZScore    float64   `json:"z_score"`
	Direction string    `json:"direction"`
}

// AnomalyReport is the outcome of anomaly detection.
type AnomalyReport struct {
	Insufficient bool      `json:"insufficient"`
	Notice       string    `json:"notice,omitempty"`
	Mean         float64   `json:"mean"`
	StdDev       float64   `json:"std_dev"`
	Anomalies    []Anomaly `json:"anomalies"`
}

// WeekdayAverage is the mean daily sales for one weekday.
type WeekdayAverage struct {
	Weekday time.Weekday `json:"weekday"`
	Average float64      `json:"average"`
	Days    int          `json:"days"`
}

// SalesPatterns describes weekly seasonality of the sales history.
type SalesPatterns struct {
	Weekdays      []WeekdayAverage `json:"weekdays"`
	BestDay       *WeekdayAverage  `json:"best_day,omitempty"`
	WorstDay      *WeekdayAverage  `json:"worst_day,omitempty"`
	WeekendAvg    float64          `json:"weekend_avg"`
	WeekdayAvg    float64          `json:"weekday_avg"`
	WeekendBoost  float64          `json:"weekend_boost"`
	TrendPercent  float64          `json:"trend_percent"`
	TrendMeasured bool             `json:"trend_measured"`
}

// HourCount is the number of orders created in one hour of the day.
type HourCount struct {
	Hour   int `json:"hour"`
	Orders int `json:"orders"`
}

// ReportMode selects which sections a report contains.
type ReportMode string

const (
	ReportFull            ReportMode = "full"
	ReportForecast        ReportMode = "forecast"
	ReportAnomalies       ReportMode = "anomalies"
	ReportRecommendations ReportMode = "recommendations"
)

// RatioLimits are the expense and payroll ratio ceilings, in percent of revenue,
// the engine alerted with. Zero values mean the engine defaults.
type RatioLimits struct {
	MaxExpenseRatio float64 `json:"max_expense_ratio"`
	MaxPayrollRatio float64 `json:"max_payroll_ratio"`
}

// ReportInput is everything the report renderer needs. TopSpend ranks
// categories without payroll.
type ReportInput struct {
	GeneratedAt  time.Time     `json:"generated_at"`
	Period       Period        `json:"period"`
	KPIs         KPISet        `json:"kpis"`
	Limits       RatioLimits   `json:"limits"`
	Alerts       []Alert       `json:"alerts"`
	Aggregations Aggregations  `json:"aggregations"`
	TopSpend     []SummaryItem `json:"top_spend"`
	Patterns     SalesPatterns `json:"patterns"`
	PeakHours    []HourCount   `json:"peak_hours"`
	Forecast     Forecast      `json:"forecast"`
	Anomalies    AnomalyReport `json:"anomalies"`
}

// ReportRequestParams holds common parameters for requesting analytics and reports.
type ReportRequestParams struct {
	StartDate      string `form:"start_date"` // YYYY-MM-DD
	EndDate        string `form:"end_date"`   // YYYY-MM-DD
	Mode           string `form:"mode"`
	ExcludePayroll bool   `form:"exclude_payroll"`
}
