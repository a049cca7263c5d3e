package analytics

import (
	"fmt"
	"math"

	"cafe_backoffice/internal/models"
)

// Recommendation thresholds, in percent.
const (
	lowMarginPercent       = 30
	highMarginPercent      = 50
	weekendBoostHigh       = 20
	weekendBoostLow        = -10
	salesTrendSignificance = 10
)

// FallbackRecommendation is returned when no rule fires.
const FallbackRecommendation = "استمر في جمع البيانات للحصول على توصيات أكثر دقة"

// Recommendations turns the computed figures into short advice lines, in rule order.
func Recommendations(in models.ReportInput) []string {
	limits := ratioLimits(in.Limits)
	k := in.KPIs
	recs := []string{}

	if k.Revenue > 0 {
		margin := k.NetProfit / k.Revenue * 100
		switch {
		case margin < lowMarginPercent:
			recs = append(recs, fmt.Sprintf("هامش الربح منخفض (%.0f%%): راجع تكاليف التشغيل", margin))
		case margin > highMarginPercent:
			recs = append(recs, fmt.Sprintf("هامش ربح ممتاز (%.0f%%): فكر في إعادة الاستثمار", margin))
		}
	}

	if len(in.PeakHours) > 0 {
		peak := in.PeakHours[0]
		recs = append(recs, fmt.Sprintf("أكثر الأوقات ازدحاماً %s (%d طلب): عزز عدد العاملين في هذه الساعة", clock12(peak.Hour), peak.Orders))
	}

	if k.ExpenseRatio > limits.MaxExpenseRatio {
		recs = append(recs, fmt.Sprintf("المصروفات تستهلك %s من الإيرادات: راجع أكبر بنود الصرف", formatPercent(k.ExpenseRatio)))
	}

	switch boost := in.Patterns.WeekendBoost; {
	case boost > weekendBoostHigh:
		recs = append(recs, fmt.Sprintf("مبيعات نهاية الأسبوع أعلى بـ %.0f%%: زد المخزون والموظفين يومي الجمعة والسبت", boost))
	case boost < weekendBoostLow:
		recs = append(recs, "نهاية الأسبوع أضعف: جرب عروضاً خاصة لجذب الزبائن")
	}

	if k.PayrollRatio > limits.MaxPayrollRatio {
		recs = append(recs, fmt.Sprintf("الرواتب تمثل %s من الإيرادات: راجع جدول المناوبات", formatPercent(k.PayrollRatio)))
	}

	if in.Patterns.TrendMeasured {
		switch t := in.Patterns.TrendPercent; {
		case t > salesTrendSignificance:
			recs = append(recs, fmt.Sprintf("المبيعات في تصاعد بنسبة %.0f%%: حافظ على الزخم", t))
		case t < -salesTrendSignificance:
			recs = append(recs, fmt.Sprintf("المبيعات تراجعت بنسبة %.0f%%: راجع الجودة والخدمة", math.Abs(t)))
		}
	}

	if len(recs) == 0 {
		recs = append(recs, FallbackRecommendation)
	}
	return recs
}

// ratioLimits fills unset limits from DefaultAlertThresholds.
func ratioLimits(l models.RatioLimits) models.RatioLimits {
	def := DefaultAlertThresholds()
	if l.MaxExpenseRatio <= 0 {
		l.MaxExpenseRatio = def.MaxExpenseRatio
	}
	if l.MaxPayrollRatio <= 0 {
		l.MaxPayrollRatio = def.MaxPayrollRatio
	}
	return l
}
