package analytics

import (
	"sort"

	"dinein-dashboard/models"

	"github.com/samber/lo"
)

// Dimensions lists the selectable filter values of a prepared dataset and
// the date extent of its daily series.
func Dimensions(p *Prepared, daily models.DailyRollup) models.Dimensions {
	kitchens := lo.Uniq(lo.Map(p.Lines, func(l models.Line, _ int) string { return l.Kitchen }))
	categories := lo.Uniq(lo.FilterMap(p.Lines, func(l models.Line, _ int) (string, bool) {
		return l.Category, l.Category != ""
	}))
	types := lo.Uniq(lo.FilterMap(p.Lines, func(l models.Line, _ int) (string, bool) {
		return string(l.Kind), l.Kind == models.KindComboItem || l.Kind == models.KindComboAddon
	}))
	sort.Strings(kitchens)
	sort.Strings(categories)
	sort.Strings(types)

	d := models.Dimensions{Kitchens: kitchens, Categories: categories, ItemTypes: types}
	if n := len(daily.Days); n > 0 {
		d.DateMin = daily.Days[0].Date
		d.DateMax = daily.Days[n-1].Date
	}
	return d
}
