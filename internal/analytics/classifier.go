package analytics

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"cafe_backoffice/internal/models"
)

// ErrInvalidRules is returned when a rule set cannot be compiled.
var ErrInvalidRules = errors.New("invalid classifier rules")

// Classification is the category pair assigned to an expense.
type Classification struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
}

type keywordSet struct {
	raw      []string
	patterns []*regexp.Regexp
}

func newKeywordSet(keywords []string) keywordSet {
	ks := keywordSet{}
	for _, k := range keywords {
		if strings.TrimSpace(k) == "" {
			continue
		}
		ks.raw = append(ks.raw, strings.TrimSpace(k))
		ks.patterns = append(ks.patterns, wordPattern(fold(k)))
	}
	return ks
}

// match returns the first keyword (original spelling) found as a word in folded text.
func (ks keywordSet) match(text string) (string, bool) {
	for i, re := range ks.patterns {
		if re.MatchString(text) {
			return ks.raw[i], true
		}
	}
	return "", false
}

// A keyword matches a whole word, optionally carrying the Arabic conjunction,
// preposition and article prefixes (و، ف، ب، ل، ك، ال) or a plural or pronoun
// suffix. "ماء" does not match inside "أسماء", "مكتب" does not match "مكتبة".
const (
	wordEdgeStart    = `(?:^|[^\p{L}\p{M}\p{N}])`
	wordEdgeEnd      = `(?:$|[^\p{L}\p{M}\p{N}])`
	arabicProclitics = `(?:[وف])?(?:[بلك])?(?:ال|ل)?`
	wordSuffixes     = `(?:ات|ها|s|es)?`
)

func wordPattern(folded string) *regexp.Regexp {
	return regexp.MustCompile(wordEdgeStart + arabicProclitics + regexp.QuoteMeta(folded) + wordSuffixes + wordEdgeEnd)
}

type categoryMatcher struct {
	keywords        keywordSet
	category        string
	subcategory     string
	detailFromLater bool
}

type vendorMatcher struct {
	keyword string
	word    *regexp.Regexp
	widen   *regexp.Regexp
}

type payrollTypeMatcher struct {
	keywords keywordSet
	typ      models.PayrollType
}

// Classifier extracts structure from free-text expense descriptions.
// It is immutable after construction and safe for concurrent use.
type Classifier struct {
	categories         []categoryMatcher
	payers             []*regexp.Regexp
	vendors            []vendorMatcher
	payrollMarkers     keywordSet
	wasteMarkers       keywordSet
	payrollTypes       []payrollTypeMatcher
	payrollCategory    string
	defaultCategory    string
	defaultSubcategory string
}

// NewClassifier compiles a rule set.
func NewClassifier(rules ClassifierRules) (*Classifier, error) {
	c := &Classifier{
		payrollMarkers:     newKeywordSet(rules.PayrollMarkers),
		wasteMarkers:       newKeywordSet(rules.WasteMarkers),
		payrollCategory:    firstNonBlank(rules.PayrollCategory, CategoryPayroll),
		defaultCategory:    firstNonBlank(rules.DefaultCategory, CategoryOther),
		defaultSubcategory: firstNonBlank(rules.DefaultSubcategory, SubcategoryGeneral),
	}

	for i, r := range rules.Categories {
		ks := newKeywordSet(r.Keywords)
		if strings.TrimSpace(r.Category) == "" || len(ks.raw) == 0 {
			return nil, fmt.Errorf("%w: category rule %d needs a category and at least one keyword", ErrInvalidRules, i)
		}
		c.categories = append(c.categories, categoryMatcher{
			keywords:        ks,
			category:        strings.TrimSpace(r.Category),
			subcategory:     strings.TrimSpace(r.Subcategory),
			detailFromLater: r.DetailFromLaterRules,
		})
	}

	for i, p := range rules.PayerPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: payer pattern %d: %v", ErrInvalidRules, i, err)
		}
		if re.NumSubexp() < 1 {
			return nil, fmt.Errorf("%w: payer pattern %d has no capture group", ErrInvalidRules, i)
		}
		c.payers = append(c.payers, re)
	}

	for _, k := range rules.VendorKeywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		c.vendors = append(c.vendors, vendorMatcher{
			keyword: k,
			word:    wordPattern(fold(k)),
			widen:   regexp.MustCompile(`(?i)` + regexp.QuoteMeta(k) + `\s+\S+`),
		})
	}

	for i, r := range rules.PayrollTypes {
		if !validPayrollType(r.Type) {
			return nil, fmt.Errorf("%w: payroll type rule %d has unknown type %q", ErrInvalidRules, i, r.Type)
		}
		c.payrollTypes = append(c.payrollTypes, payrollTypeMatcher{keywords: newKeywordSet(r.Keywords), typ: r.Type})
	}
	return c, nil
}

// MustNewClassifier is like NewClassifier but panics on invalid rules.
func MustNewClassifier(rules ClassifierRules) *Classifier {
	c, err := NewClassifier(rules)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultClassifier is built from DefaultRules.
func DefaultClassifier() *Classifier {
	return MustNewClassifier(DefaultRules())
}

// Classify assigns a category by ordered first match over the description,
// then over the original category label. Without a hit the original label is kept.
func (c *Classifier) Classify(description, originalCategory string) Classification {
	if cl, ok := c.classifyText(fold(description)); ok {
		return cl
	}
	if cl, ok := c.classifyText(fold(originalCategory)); ok {
		return cl
	}
	return Classification{
		Category:    firstNonBlank(originalCategory, c.defaultCategory),
		Subcategory: c.defaultSubcategory,
	}
}

func (c *Classifier) classifyText(text string) (Classification, bool) {
	if text == "" {
		return Classification{}, false
	}
	for i, r := range c.categories {
		kw, ok := r.keywords.match(text)
		if !ok {
			continue
		}
		sub := r.subcategory
		if sub == "" {
			sub = kw
			if r.detailFromLater {
				for _, later := range c.categories[i+1:] {
					if detail, ok := later.keywords.match(text); ok {
						sub = detail
						break
					}
				}
			}
		}
		return Classification{Category: r.category, Subcategory: sub}, true
	}
	return Classification{}, false
}

// ExtractPayer returns the person who received or paid out the money, if named.
func (c *Classifier) ExtractPayer(description string) *string {
	if strings.TrimSpace(description) == "" {
		return nil
	}
	for _, re := range c.payers {
		m := re.FindStringSubmatch(description)
		if len(m) < 2 {
			continue
		}
		if name := cleanToken(m[1]); name != "" {
			return &name
		}
	}
	return nil
}

// ExtractVendor returns the vendor named in the description, widened to
// "keyword + next word" when possible.
func (c *Classifier) ExtractVendor(description string) *string {
	text := fold(description)
	if text == "" {
		return nil
	}
	for _, v := range c.vendors {
		if !v.word.MatchString(text) {
			continue
		}
		vendor := v.keyword
		if wide := strings.TrimSpace(v.widen.FindString(description)); wide != "" {
			vendor = strings.TrimRight(wide, ".,،؛:;-)\"'")
		}
		return &vendor
	}
	return nil
}

// PayrollType walks the payroll ladder; SALARY when nothing matches.
func (c *Classifier) PayrollType(description string) models.PayrollType {
	text := fold(description)
	if text == "" {
		return models.PayrollSalary
	}
	for _, r := range c.payrollTypes {
		if _, ok := r.keywords.match(text); ok {
			return r.typ
		}
	}
	return models.PayrollSalary
}

// OutflowType tags a classified expense. Payroll wording wins over waste wording.
func (c *Classifier) OutflowType(description string, cl Classification) models.OutflowType {
	text := fold(description)
	if cl.Category == c.payrollCategory {
		return models.OutflowPayroll
	}
	if _, ok := c.payrollMarkers.match(text); ok {
		return models.OutflowPayroll
	}
	if _, ok := c.wasteMarkers.match(text); ok {
		return models.OutflowWaste
	}
	return models.OutflowExpense
}

func validPayrollType(t models.PayrollType) bool {
	switch t {
	case models.PayrollSalary, models.PayrollAdvance, models.PayrollBonus, models.PayrollDeduction, models.PayrollOvertime:
		return true
	}
	return false
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func cleanToken(s string) string {
	return strings.Trim(s, " \t.,،؛:;-()\"'")
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
