package analytics

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cafe_backoffice/internal/models"
)

// ErrUnknownReportMode is returned by ParseReportMode for unsupported modes.
var ErrUnknownReportMode = errors.New("unknown report mode")

// reportCategoryLimit is how many expense categories the full report lists.
const reportCategoryLimit = 5

var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "الأحد",
	time.Monday:    "الإثنين",
	time.Tuesday:   "الثلاثاء",
	time.Wednesday: "الأربعاء",
	time.Thursday:  "الخميس",
	time.Friday:    "الجمعة",
	time.Saturday:  "السبت",
}

var alertTags = map[models.AlertType]string{
	models.AlertDanger:  "[خطر]",
	models.AlertWarning: "[تحذير]",
	models.AlertInfo:    "[معلومة]",
}

var trendNames = map[string]string{
	models.TrendStrongGrowth:  "نمو قوي",
	models.TrendGrowth:        "نمو طفيف",
	models.TrendStable:        "مستقر",
	models.TrendDecline:       "انخفاض طفيف",
	models.TrendStrongDecline: "انخفاض",
}

// ParseReportMode validates a mode name. Blank means full.
func ParseReportMode(s string) (models.ReportMode, error) {
	switch mode := models.ReportMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "":
		return models.ReportFull, nil
	case models.ReportFull, models.ReportForecast, models.ReportAnomalies, models.ReportRecommendations:
		return mode, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownReportMode, s)
}

// RenderReport renders a markdown report. Output depends only on the input;
// an unrecognised mode renders the full report.
func RenderReport(in models.ReportInput, mode models.ReportMode) string {
	var b strings.Builder
	writeHeader(&b, in)
	switch mode {
	case models.ReportForecast:
		writeForecast(&b, in.Forecast)
	case models.ReportAnomalies:
		writeAnomalies(&b, in.Anomalies)
	case models.ReportRecommendations:
		writeRecommendations(&b, in)
	default:
		writeSummary(&b, in.KPIs)
		writeAlerts(&b, in.Alerts)
		writeCategories(&b, in.TopSpend)
		writePatterns(&b, in.Patterns)
		writePeakHours(&b, in.PeakHours)
		writeForecast(&b, in.Forecast)
		writeAnomalies(&b, in.Anomalies)
		writeRecommendations(&b, in)
	}
	return b.String()
}

func writeHeader(b *strings.Builder, in models.ReportInput) {
	b.WriteString("# تقرير الأداء المالي\n\n")
	fmt.Fprintf(b, "> الفترة: %s إلى %s\n", in.Period.From.Format(models.DateLayout), in.Period.To.Format(models.DateLayout))
	fmt.Fprintf(b, "> تاريخ الإنشاء: %s\n", in.GeneratedAt.Format("2006-01-02 15:04"))
}

func writeSummary(b *strings.Builder, k models.KPISet) {
	b.WriteString("\n## ملخص المؤشرات\n\n")
	b.WriteString("| المؤشر | القيمة |\n|---|---|\n")
	rows := [][2]string{
		{"الإيرادات", formatMoney(k.Revenue)},
		{"المصروفات التشغيلية", formatMoney(k.Expenses)},
		{"الرواتب", formatMoney(k.Payroll)},
		{"الهدر", formatMoney(k.Waste)},
		{"إجمالي الصرف", formatMoney(k.TotalOutflow)},
		{"صافي الربح", formatMoney(k.NetProfit)},
		{"نسبة المصروفات", formatPercent(k.ExpenseRatio)},
		{"نسبة الرواتب", formatPercent(k.PayrollRatio)},
		{"نسبة الهدر", formatPercent(k.WasteRatio)},
		{"معدل الصرف اليومي", formatMoney(k.BurnRate)},
		{"عدد الطلبات", fmt.Sprintf("%d", k.OrdersCount)},
		{"متوسط قيمة الطلب", formatMoney(k.AvgOrderValue)},
	}
	if k.BurnRate > 0 {
		rows = append(rows, [2]string{"أيام التغطية", fmt.Sprintf("%.1f", k.Runway)})
	}
	for _, r := range rows {
		fmt.Fprintf(b, "| %s | %s |\n", r[0], r[1])
	}
	if k.CashSplitEstimated {
		fmt.Fprintf(b, "\n> المبيعات النقدية %s والبطاقات %s (تقدير)\n", formatMoney(k.CashSales), formatMoney(k.CardSales))
	}
}

func writeAlerts(b *strings.Builder, alerts []models.Alert) {
	b.WriteString("\n## التنبيهات\n\n")
	if len(alerts) == 0 {
		b.WriteString("- لا توجد تنبيهات\n")
		return
	}
	for _, a := range alerts {
		fmt.Fprintf(b, "- %s %s\n", alertTags[a.Type], a.Message)
	}
}

func writeCategories(b *strings.Builder, cats []models.SummaryItem) {
	b.WriteString("\n## أعلى بنود الصرف\n\n")
	if len(cats) == 0 {
		b.WriteString("- لا توجد مصروفات\n")
		return
	}
	b.WriteString("| البند | المبلغ | النسبة | العدد |\n|---|---|---|---|\n")
	for i, c := range cats {
		if i == reportCategoryLimit {
			break
		}
		fmt.Fprintf(b, "| %s | %s | %s | %d |\n", c.Key, formatMoney(c.Amount), formatPercent(c.Percentage), c.Count)
	}
}

func writePatterns(b *strings.Builder, p models.SalesPatterns) {
	b.WriteString("\n## أنماط المبيعات\n\n")
	if len(p.Weekdays) == 0 {
		b.WriteString("- لا توجد مبيعات كافية\n")
		return
	}
	b.WriteString("| اليوم | متوسط المبيعات | عدد الأيام |\n|---|---|---|\n")
	for _, w := range p.Weekdays {
		fmt.Fprintf(b, "| %s | %s | %d |\n", weekdayNames[w.Weekday], formatMoney(w.Average), w.Days)
	}
	b.WriteString("\n")
	if p.BestDay != nil {
		fmt.Fprintf(b, "- أفضل يوم: %s (%s)\n", weekdayNames[p.BestDay.Weekday], formatMoney(p.BestDay.Average))
	}
	if p.WorstDay != nil {
		fmt.Fprintf(b, "- أضعف يوم: %s (%s)\n", weekdayNames[p.WorstDay.Weekday], formatMoney(p.WorstDay.Average))
	}
	fmt.Fprintf(b, "- نهاية الأسبوع مقابل باقي الأيام: %s مقابل %s (%s)\n",
		formatMoney(p.WeekendAvg), formatMoney(p.WeekdayAvg), formatPercent(p.WeekendBoost))
	if p.TrendMeasured {
		fmt.Fprintf(b, "- تغير آخر 7 أيام عن أول 7 أيام: %s\n", formatPercent(p.TrendPercent))
	}
}

func writePeakHours(b *strings.Builder, hours []models.HourCount) {
	b.WriteString("\n## أوقات الذروة\n\n")
	if len(hours) == 0 {
		b.WriteString("- لا توجد طلبات\n")
		return
	}
	for _, h := range hours {
		fmt.Fprintf(b, "- %s: %d طلب\n", clock12(h.Hour), h.Orders)
	}
}

func writeForecast(b *strings.Builder, f models.Forecast) {
	b.WriteString("\n## توقعات المبيعات\n\n")
	if f.Insufficient {
		fmt.Fprintf(b, "> %s\n", f.Notice)
		return
	}
	fmt.Fprintf(b, "> الاتجاه: %s، دقة النموذج R² = %.2f على %d يوم\n\n", trendNames[f.Trend], f.RSquared, f.HistoryDays)
	b.WriteString("| التاريخ | المتوقع | الحد الأدنى | الحد الأعلى |\n|---|---|---|---|\n")
	for _, p := range f.Points {
		fmt.Fprintf(b, "| %s | %s | %s | %s |\n",
			p.Date.Format(models.DateLayout), formatMoney(p.Predicted), formatMoney(p.Lower), formatMoney(p.Upper))
	}
}

func writeAnomalies(b *strings.Builder, a models.AnomalyReport) {
	b.WriteString("\n## كشف الشذوذ\n\n")
	if a.Insufficient {
		fmt.Fprintf(b, "> %s\n", a.Notice)
		return
	}
	if len(a.Anomalies) == 0 {
		b.WriteString("- لا توجد أيام شاذة\n")
		return
	}
	for _, x := range a.Anomalies {
		label := "ارتفاع غير معتاد"
		if x.Direction == models.AnomalyDrop {
			label = "انخفاض غير معتاد"
		}
		fmt.Fprintf(b, "- %s: %s بمبيعات %s (z = %.2f)\n", x.Date.Format(models.DateLayout), label, formatMoney(x.Sales), x.ZScore)
	}
}

func writeRecommendations(b *strings.Builder, in models.ReportInput) {
	b.WriteString("\n## التوصيات\n\n")
	for _, r := range Recommendations(in) {
		fmt.Fprintf(b, "- %s\n", r)
	}
}

// clock12 renders an hour of day on the 12-hour clock: 0 -> "12 صباحاً", 13 -> "1 مساءً".
func clock12(hour int) string {
	suffix := "صباحاً"
	if hour >= 12 {
		suffix = "مساءً"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d %s", h, suffix)
}
