package models

import (
	"encoding/json"
	"time"
)

// DateLayout is the calendar-day layout used in query parameters, keys and reports.
const DateLayout = "2006-01-02"

// Period is an inclusive calendar-day window [From, To].
type Period struct {
	From time.Time
	To   time.Time
}

// NewPeriod truncates both bounds to their calendar day.
func NewPeriod(from, to time.Time) Period {
	return Period{From: StartOfDay(from), To: StartOfDay(to)}
}

// Contains reports whether t falls on a day inside the window.
func (p Period) Contains(t time.Time) bool {
	k := DayKey(t)
	return k >= DayKey(p.From) && k <= DayKey(p.To)
}

// Days returns the number of calendar days covered, at least 1.
func (p Period) Days() int {
	d := int(StartOfDay(p.To).Sub(StartOfDay(p.From)).Hours()/24) + 1
	if d < 1 {
		return 1
	}
	return d
}

func (p Period) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		From string `json:"from"`
		To   string `json:"to"`
	}{DayKey(p.From), DayKey(p.To)})
}

// StartOfDay drops the clock part of t, keeping its location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfMonth returns the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// DayKey is the YYYY-MM-DD form of t in its own location.
func DayKey(t time.Time) string {
	return t.Format(DateLayout)
}

// RecordSet is a snapshot of raw records handed to the analytics engine.
type RecordSet struct {
	Orders   []Order        `json:"orders"`
	Receipts []DailyReceipt `json:"receipts"`
	Expenses []Expense      `json:"expenses"`
	Staff    []StaffMember  `json:"staff"`
}
