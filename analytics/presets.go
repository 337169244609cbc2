package analytics

import (
	"time"

	"dinein-dashboard/models"
)

// Date preset names accepted by DatePreset.
const (
	PresetToday      = "today"
	PresetYesterday  = "yesterday"
	PresetThisWeek   = "thisWeek"
	PresetLastWeek   = "lastWeek"
	PresetLast7Days  = "last7Days"
	PresetLast30Days = "last30Days"
	PresetThisMonth  = "thisMonth"
	PresetLastMonth  = "lastMonth"
)

// Presets lists every preset in display order.
var Presets = []string{
	PresetToday, PresetYesterday, PresetThisWeek, PresetLastWeek,
	PresetLast7Days, PresetLast30Days, PresetThisMonth, PresetLastMonth,
}

// DatePreset resolves a named range relative to today. Weeks start on
// Monday. Unknown names return false.
func DatePreset(name string, today time.Time) (models.DateRange, bool) {
	y, m, d := today.Date()
	today = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	sinceMonday := (int(today.Weekday()) + 6) % 7
	day := func(offset int) string { return today.AddDate(0, 0, offset).Format(dateLayout) }

	switch name {
	case PresetToday:
		return models.DateRange{Start: day(0), End: day(0)}, true
	case PresetYesterday:
		return models.DateRange{Start: day(-1), End: day(-1)}, true
	case PresetThisWeek:
		return models.DateRange{Start: day(-sinceMonday), End: day(0)}, true
	case PresetLastWeek:
		return models.DateRange{Start: day(-sinceMonday - 7), End: day(-sinceMonday - 1)}, true
	case PresetLast7Days:
		return models.DateRange{Start: day(-6), End: day(0)}, true
	case PresetLast30Days:
		return models.DateRange{Start: day(-29), End: day(0)}, true
	case PresetThisMonth:
		first := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
		return models.DateRange{Start: first.Format(dateLayout), End: day(0)}, true
	case PresetLastMonth:
		first := time.Date(y, m-1, 1, 0, 0, 0, 0, time.UTC)
		last := time.Date(y, m, 0, 0, 0, 0, 0, time.UTC)
		return models.DateRange{Start: first.Format(dateLayout), End: last.Format(dateLayout)}, true
	}
	return models.DateRange{}, false
}

// ClampRange narrows r to the data extent [first, last]. Empty bounds are
// left open.
func ClampRange(r models.DateRange, first, last string) models.DateRange {
	if first != "" && r.Start < first {
		r.Start = first
	}
	if last != "" && r.End > last {
		r.End = last
	}
	return r
}

// DateExtent returns the first and last date of the daily series under f:
// dated orders that survive the AYCE and category exclusions. The date range,
// day type and kitchen selection of f play no part.
func DateExtent(p *Prepared, f models.FilterState) (first, last string) {
	if p == nil {
		return "", ""
	}
	set := AggregateOrders(p.Lines, NewPredicate(p, f))
	for _, o := range set.Orders {
		if o.Date == "" {
			continue
		}
		if first == "" || o.Date < first {
			first = o.Date
		}
		if o.Date > last {
			last = o.Date
		}
	}
	return first, last
}

// ValidDate reports whether s is a YYYY-MM-DD calendar date. Range bounds
// compare as strings, so any other spelling would filter silently wrong.
func ValidDate(s string) bool {
	if len(s) != dateLen {
		return false
	}
	_, err := time.Parse(dateLayout, s)
	return err == nil
}
