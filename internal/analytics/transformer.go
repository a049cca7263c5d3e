package analytics

import (
	"sort"
	"strings"
	"time"

	"cafe_backoffice/internal/models"
)

// DefaultCashShare is the share of daily sales booked as cash. The register
// export has no payment-method breakdown, so the split is an estimate and
// KPISet.CashSplitEstimated is always set.
const DefaultCashShare = 0.70

// PaymentMethodCash is the payment method of every outflow; expenses are paid from the till.
const PaymentMethodCash = "cash"

// Transformer maps raw records into the four fact collections.
type Transformer struct {
	classifier *Classifier
	cashShare  float64
	clock      func() time.Time
}

// NewTransformer builds a transformer. A cashShare outside [0,1] falls back to DefaultCashShare.
func NewTransformer(classifier *Classifier, cashShare float64, clock func() time.Time) *Transformer {
	if classifier == nil {
		classifier = DefaultClassifier()
	}
	if cashShare < 0 || cashShare > 1 {
		cashShare = DefaultCashShare
	}
	if clock == nil {
		clock = time.Now
	}
	return &Transformer{classifier: classifier, cashShare: cashShare, clock: clock}
}

// Transform builds facts for the inclusive window. All four collections respect
// the window: payroll and waste derive from in-window outflow, and roster salaries
// are booked on the month of min(now, period.To).
func (t *Transformer) Transform(records models.RecordSet, period models.Period) models.FactSet {
	outflow := t.buildOutflow(records.Expenses, period)
	return models.FactSet{
		Inflow:  t.buildInflow(records.Receipts, records.Orders, period),
		Outflow: outflow,
		Payroll: t.buildPayroll(records.Staff, outflow, period),
		Waste:   buildWaste(outflow),
	}
}

type receiptDay struct {
	date     time.Time
	sales    float64
	shifts   int
	maxShift int
}

type orderDay struct {
	date      time.Time
	total     float64
	discounts float64
	count     int
}

func (t *Transformer) buildInflow(receipts []models.DailyReceipt, orders []models.Order, period models.Period) []models.InflowFact {
	byReceipt := make(map[string]*receiptDay)
	for _, r := range receipts {
		k := models.DayKey(r.Date)
		d, ok := byReceipt[k]
		if !ok {
			d = &receiptDay{date: models.StartOfDay(r.Date)}
			byReceipt[k] = d
		}
		d.sales += r.TotalSales
		d.shifts++
		if r.ShiftNumber > d.maxShift {
			d.maxShift = r.ShiftNumber
		}
	}

	byOrders := make(map[string]*orderDay)
	for _, o := range orders {
		k := models.DayKey(o.CreatedAt)
		d, ok := byOrders[k]
		if !ok {
			d = &orderDay{date: models.StartOfDay(o.CreatedAt)}
			byOrders[k] = d
		}
		d.total += o.TotalAmount
		d.discounts += o.Discount
		d.count++
	}

	keys := make([]string, 0, len(byReceipt)+len(byOrders))
	for k := range byReceipt {
		keys = append(keys, k)
	}
	for k := range byOrders {
		if _, dup := byReceipt[k]; !dup {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	inflow := make([]models.InflowFact, 0, len(keys))
	for _, k := range keys {
		od := byOrders[k]
		var fact models.InflowFact
		if rd, ok := byReceipt[k]; ok {
			fact = models.InflowFact{
				Date:        rd.date,
				ShiftNumber: rd.maxShift,
				ShiftCount:  rd.shifts,
				NetSales:    rd.sales,
				Source:      models.InflowFromReceipt,
			}
			if od != nil {
				fact.Discounts = od.discounts
				fact.OrdersCount = od.count
			}
		} else {
			fact = models.InflowFact{
				Date:        od.date,
				NetSales:    od.total,
				Discounts:   od.discounts,
				OrdersCount: od.count,
				Source:      models.InflowFromOrders,
			}
		}
		if !period.Contains(fact.Date) {
			continue
		}
		fact.GrossSales = fact.NetSales + fact.Discounts + fact.Refunds
		fact.CashSales = fact.NetSales * t.cashShare
		fact.CardSales = fact.NetSales - fact.CashSales
		inflow = append(inflow, fact)
	}
	return inflow
}

func (t *Transformer) buildOutflow(expenses []models.Expense, period models.Period) []models.OutflowFact {
	outflow := make([]models.OutflowFact, 0, len(expenses))
	for _, e := range expenses {
		if !period.Contains(e.Date) {
			continue
		}
		cl := t.classifier.Classify(e.Description, e.Category)
		outflow = append(outflow, models.OutflowFact{
			Date:          e.Date,
			Type:          t.classifier.OutflowType(e.Description, cl),
			Category:      cl.Category,
			Subcategory:   cl.Subcategory,
			Vendor:        t.classifier.ExtractVendor(e.Description),
			Payer:         t.classifier.ExtractPayer(e.Description),
			Amount:        e.Amount,
			PaymentMethod: PaymentMethodCash,
			HasReceipt:    e.ReceiptNumber != nil && strings.TrimSpace(*e.ReceiptNumber) != "",
			Description:   e.Description,
		})
	}
	sort.SliceStable(outflow, func(i, j int) bool {
		return outflow[i].Date.Before(outflow[j].Date)
	})
	return outflow
}

func (t *Transformer) buildPayroll(staff []models.StaffMember, outflow []models.OutflowFact, period models.Period) []models.PayrollFact {
	ref := t.clock()
	if ref.After(period.To) {
		ref = period.To
	}
	if ref.Before(period.From) {
		ref = period.From
	}
	rosterMonth := models.StartOfMonth(ref)

	roles := make(map[string]string, len(staff))
	payroll := make([]models.PayrollFact, 0, len(staff))
	for _, s := range staff {
		roles[fold(s.Name)] = s.Role
		if !s.IsActive || s.Salary <= 0 {
			continue
		}
		payroll = append(payroll, models.PayrollFact{
			PayMonth:     rosterMonth,
			EmployeeName: s.Name,
			Role:         s.Role,
			Type:         models.PayrollSalary,
			Amount:       s.Salary,
			Source:       models.PayrollFromRoster,
		})
	}

	for _, o := range outflow {
		if o.Type != models.OutflowPayroll {
			continue
		}
		name := models.Unspecified
		if o.Payer != nil {
			name = *o.Payer
		}
		payroll = append(payroll, models.PayrollFact{
			PayMonth:     models.StartOfMonth(o.Date),
			EmployeeName: name,
			Role:         roles[fold(name)],
			Type:         t.classifier.PayrollType(o.Description),
			Amount:       o.Amount,
			Note:         o.Description,
			Source:       models.PayrollFromExpense,
		})
	}

	sort.SliceStable(payroll, func(i, j int) bool {
		if !payroll[i].PayMonth.Equal(payroll[j].PayMonth) {
			return payroll[i].PayMonth.Before(payroll[j].PayMonth)
		}
		return payroll[i].EmployeeName < payroll[j].EmployeeName
	})
	return payroll
}

func buildWaste(outflow []models.OutflowFact) []models.WasteFact {
	waste := []models.WasteFact{}
	for _, o := range outflow {
		if o.Type != models.OutflowWaste {
			continue
		}
		waste = append(waste, models.WasteFact{
			Timestamp:      o.Date,
			Item:           o.Subcategory,
			Quantity:       models.UnknownQuantity,
			EstimatedValue: o.Amount,
			Note:           o.Description,
		})
	}
	return waste
}
