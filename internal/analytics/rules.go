package analytics

import "cafe_backoffice/internal/models"

// Category names produced by the built-in rules.
const (
	CategoryPayroll     = "Payroll"
	CategoryWaste       = "Waste"
	CategoryRent        = "Rent"
	CategoryUtilities   = "Utilities"
	CategoryIngredients = "Ingredients"
	CategorySupplies    = "Supplies"
	CategoryCleaning    = "Cleaning"
	CategoryMaintenance = "Maintenance"
	CategoryTransport   = "Transport"
	CategoryMarketing   = "Marketing"
	CategoryFees        = "Fees"
	CategoryOther       = "Other"
	SubcategoryGeneral  = "General"
)

// CategoryRule maps any of its keywords to a category.
// An empty Subcategory means the matched keyword is used. With DetailFromLaterRules
// the keyword of the next matching rule is preferred, so "حليب تالف" becomes Waste/حليب.
type CategoryRule struct {
	Keywords             []string `mapstructure:"keywords" json:"keywords"`
	Category             string   `mapstructure:"category" json:"category"`
	Subcategory          string   `mapstructure:"subcategory" json:"subcategory,omitempty"`
	DetailFromLaterRules bool     `mapstructure:"detail_from_later_rules" json:"detail_from_later_rules,omitempty"`
}

// PayrollTypeRule is one rung of the payroll type ladder.
type PayrollTypeRule struct {
	Keywords []string           `mapstructure:"keywords" json:"keywords"`
	Type     models.PayrollType `mapstructure:"type" json:"type"`
}

// ClassifierRules is the data a Classifier is built from. Order matters in every list.
type ClassifierRules struct {
	Categories         []CategoryRule    `mapstructure:"categories" json:"categories"`
	PayerPatterns      []string          `mapstructure:"payer_patterns" json:"payer_patterns"`
	VendorKeywords     []string          `mapstructure:"vendor_keywords" json:"vendor_keywords"`
	PayrollMarkers     []string          `mapstructure:"payroll_markers" json:"payroll_markers"`
	WasteMarkers       []string          `mapstructure:"waste_markers" json:"waste_markers"`
	PayrollTypes       []PayrollTypeRule `mapstructure:"payroll_types" json:"payroll_types"`
	PayrollCategory    string            `mapstructure:"payroll_category" json:"payroll_category"`
	DefaultCategory    string            `mapstructure:"default_category" json:"default_category"`
	DefaultSubcategory string            `mapstructure:"default_subcategory" json:"default_subcategory"`
}

// DefaultRules returns the built-in rule set for Arabic bookkeeping entries.
// Each call returns a fresh copy.
func DefaultRules() ClassifierRules {
	return ClassifierRules{
		Categories: []CategoryRule{
			{Category: CategoryPayroll, Keywords: []string{"راتب", "رواتب", "سلفة", "سلف", "أجور", "اجور", "مكافأة", "مكافاة", "salary", "advance"}},
			{Category: CategoryWaste, DetailFromLaterRules: true, Keywords: []string{"تالف", "تلف", "هدر", "فاسد", "منتهي الصلاحية", "spoiled", "waste"}},
			{Category: CategoryRent, Subcategory: "إيجار", Keywords: []string{"ايجار", "إيجار", "rent"}},
			{Category: CategoryUtilities, Keywords: []string{"كهرباء", "مولدة", "مولد", "ماء", "انترنت", "إنترنت", "غاز"}},
			{Category: CategoryIngredients, Keywords: []string{"حليب", "قهوة", "شاي", "سكر", "حلويات", "خبز", "لحم", "دجاج", "خضار", "فواكه", "عصير", "ثلج", "كيك"}},
			{Category: CategorySupplies, Keywords: []string{"اكواب", "أكواب", "كاسات", "اكياس", "أكياس", "مناديل", "علب"}},
			{Category: CategoryCleaning, Keywords: []string{"منظفات", "تنظيف", "صابون"}},
			{Category: CategoryMaintenance, Keywords: []string{"صيانة", "تصليح", "قطع غيار"}},
			{Category: CategoryTransport, Keywords: []string{"بنزين", "نقل", "توصيل", "تكسي"}},
			{Category: CategoryMarketing, Keywords: []string{"اعلان", "إعلان", "تسويق", "طباعة"}},
			{Category: CategoryFees, Keywords: []string{"ضريبة", "رسوم", "بلدية"}},
		},
		PayerPatterns: []string{
			`(?:^|\s)بيد\s+(\S+)`,
			`(?:^|\s)استلم(?:ها|ه)\s+(\S+)`,
			`(?:^|\s)صرف(?:ها|ه)\s+(\S+)`,
			`(?:^|\s)دفع(?:ها|ه)\s+(\S+)`,
			`(?:^|\s)من قبل\s+(\S+)`,
			`(?:^|\s)عن طريق\s+(\S+)`,
			`(?i)received by\s+(\S+)`,
			`(?i)paid by\s+(\S+)`,
		},
		VendorKeywords: []string{"شركة", "مكتب", "محل", "أسواق", "اسواق", "سوبرماركت", "مخبز", "معمل", "مطبعة", "company"},
		PayrollMarkers: []string{"راتب", "رواتب", "سلفة", "سلف", "salary", "advance"},
		WasteMarkers:   []string{"تالف", "تلف", "هدر", "فاسد", "spoiled", "waste"},
		PayrollTypes: []PayrollTypeRule{
			{Type: models.PayrollAdvance, Keywords: []string{"سلفة", "سلف", "advance"}},
			{Type: models.PayrollBonus, Keywords: []string{"مكافأة", "مكافاة", "حافز", "bonus"}},
			{Type: models.PayrollDeduction, Keywords: []string{"خصم", "استقطاع", "deduction"}},
			{Type: models.PayrollOvertime, Keywords: []string{"إضافي", "اضافي", "overtime"}},
		},
		PayrollCategory:    CategoryPayroll,
		DefaultCategory:    CategoryOther,
		DefaultSubcategory: SubcategoryGeneral,
	}
}
