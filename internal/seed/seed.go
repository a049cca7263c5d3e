// Package seed generates a plausible month of café bookkeeping for demos and tests.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jaswdr/faker"

	"cafe_backoffice/internal/models"
)

// Options controls the generated data. The same Options always produce the same records.
type Options struct {
	Days int
	Seed int64
	End  time.Time
}

type expenseTemplate struct {
	category    string
	description string
	min, max    int // thousands of IQD
	chance      int // percent per day
}

var dailyExpenses = []expenseTemplate{
	{"مواد", "شراء حليب من شركة المراعي", 15, 40, 70},
	{"مواد", "شراء قهوة من شركة الريم", 40, 120, 35},
	{"مواد", "خبز وكيك من مخبز الأمل", 10, 30, 40},
	{"مواد", "ثلج", 3, 8, 60},
	{"مستلزمات", "اكواب ورقية ومناديل", 10, 25, 20},
	{"نثريات", "منظفات", 5, 15, 15},
	{"خدمات", "اشتراك مولدة", 50, 90, 4},
	{"مواد", "حليب تالف", 5, 15, 8},
	{"نقل", "بنزين توصيل", 5, 12, 15},
}

var staffRoles = []string{"Barista", "Waiter", "Cashier", "Cleaner"}

var orderHours = []int{8, 9, 10, 12, 13, 14, 16, 17, 18, 19, 19, 20, 20, 20, 21, 21, 22, 23}

// Generate builds staff, orders, daily receipts and expenses for Days days ending on End.
// About one day in ten has no receipt so the order fallback gets exercised.
func Generate(opts Options) models.RecordSet {
	if opts.Days <= 0 {
		opts.Days = 30
	}
	fake := faker.NewWithSeed(rand.NewSource(opts.Seed))
	end := models.StartOfDay(opts.End)
	start := end.AddDate(0, 0, -(opts.Days - 1))

	var rs models.RecordSet
	for i, role := range staffRoles {
		rs.Staff = append(rs.Staff, models.StaffMember{
			ID:       int64(i + 1),
			Name:     fake.Person().FirstName(),
			Role:     role,
			Salary:   float64(fake.IntBetween(35, 70) * 10000),
			IsActive: i < len(staffRoles)-1 || fake.Boolean().BoolWithChance(50),
		})
	}

	var orderID, expenseID int64
	for d := 0; d < opts.Days; d++ {
		day := start.AddDate(0, 0, d)

		count := fake.IntBetween(20, 60)
		if wd := day.Weekday(); wd == time.Friday || wd == time.Saturday {
			count = count * 13 / 10
		}
		var sales float64
		for n := 0; n < count; n++ {
			orderID++
			at := day.Add(time.Duration(fake.RandomIntElement(orderHours))*time.Hour +
				time.Duration(fake.IntBetween(0, 59))*time.Minute)
			total := float64(fake.IntBetween(3, 25) * 1000)
			var discount float64
			if fake.Boolean().BoolWithChance(10) {
				discount = 1000
				total -= discount
			}
			table := models.TakeawayLabel
			if fake.Boolean().BoolWithChance(70) {
				table = fmt.Sprintf("T%d", fake.IntBetween(1, 12))
			}
			rs.Orders = append(rs.Orders, models.Order{ID: orderID, CreatedAt: at, TotalAmount: total, Discount: discount, TableLabel: table})
			sales += total
		}

		var spent float64
		for _, tpl := range dailyExpenses {
			if !fake.Boolean().BoolWithChance(tpl.chance) {
				continue
			}
			expenseID++
			e := models.Expense{
				ID:          expenseID,
				Date:        day.Add(time.Duration(fake.IntBetween(8, 18)) * time.Hour),
				Category:    tpl.category,
				Amount:      float64(fake.IntBetween(tpl.min, tpl.max) * 1000),
				Description: tpl.description,
			}
			if fake.Boolean().BoolWithChance(50) {
				e.ReceiptNumber = receiptNumber(fake)
			}
			rs.Expenses = append(rs.Expenses, e)
			spent += e.Amount
		}
		if fake.Boolean().BoolWithChance(12) {
			member := rs.Staff[fake.IntBetween(0, len(rs.Staff)-1)]
			expenseID++
			rs.Expenses = append(rs.Expenses, models.Expense{
				ID:          expenseID,
				Date:        day.Add(15 * time.Hour),
				Category:    "رواتب",
				Amount:      float64(fake.IntBetween(2, 10) * 10000),
				Description: "سلفة بيد " + member.Name,
			})
		}
		if day.Day() == 28 {
			for _, member := range rs.Staff {
				if !member.IsActive {
					continue
				}
				expenseID++
				rs.Expenses = append(rs.Expenses, models.Expense{
					ID: expenseID, Date: day.Add(17 * time.Hour), Category: "رواتب", Amount: member.Salary,
					Description: "راتب " + member.Name,
				})
			}
		}
		if day.Day() == 1 {
			expenseID++
			rs.Expenses = append(rs.Expenses, models.Expense{
				ID: expenseID, Date: day.Add(10 * time.Hour), Category: "ايجار", Amount: 1500000,
				Description: "ايجار المحل دفعه " + rs.Staff[0].Name, ReceiptNumber: receiptNumber(fake),
			})
		}

		if fake.Boolean().BoolWithChance(90) {
			const opening = 100000
			expected := opening + sales*0.7 - spent
			closing := expected
			if fake.Boolean().BoolWithChance(20) {
				closing -= float64(fake.IntBetween(1, 5) * 1000)
			}
			rs.Receipts = append(rs.Receipts, models.DailyReceipt{
				ID:            int64(len(rs.Receipts) + 1),
				Date:          day,
				ShiftNumber:   1,
				OpeningCash:   opening,
				TotalSales:    sales,
				TotalExpenses: spent,
				ClosingCash:   closing,
				ExpectedCash:  expected,
				Discrepancy:   closing - expected,
				IsClosed:      true,
			})
		}
	}
	return rs
}

func receiptNumber(fake faker.Faker) *string {
	s := "R-" + fake.Numerify("#####")
	return &s
}
