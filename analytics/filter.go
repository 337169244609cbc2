package analytics

import (
	"dinein-dashboard/models"

	"github.com/samber/lo"
)

type stringSet map[string]struct{}

// newSelection returns nil for an unrestricted selection.
func newSelection(sel []string) stringSet {
	if models.SelectsAll(sel) {
		return nil
	}
	return lo.SliceToMap(sel, func(s string) (string, struct{}) { return s, struct{}{} })
}

func (s stringSet) allows(v string) bool {
	if s == nil {
		return true
	}
	_, ok := s[v]
	return ok
}

// Predicate is the single inclusion rule shared by every rollup. Order-scoped
// decisions (AYCE visibility, category match) are resolved up front over all
// rows of each order, so no rollup ever sees a partial order.
type Predicate struct {
	state     models.FilterState
	itemLevel bool

	kitchens   stringSet
	categories stringSet
	itemTypes  stringSet
	kitchenSel []string // selected kitchens in selection order, nil when all

	excluded stringSet
}

// NewPredicate builds the predicate for one dataset snapshot and filter state.
func NewPredicate(p *Prepared, state models.FilterState) *Predicate {
	pred := &Predicate{
		state:      state,
		itemLevel:  p.ItemLevel(),
		kitchens:   newSelection(state.Kitchens),
		categories: newSelection(state.Categories),
		itemTypes:  newSelection(state.ItemTypes),
		excluded:   stringSet{},
	}
	if pred.kitchens != nil {
		pred.kitchenSel = lo.Uniq(lo.Filter(state.Kitchens, func(k string, _ int) bool { return k != models.AllValues }))
	}
	if !pred.itemLevel {
		return pred
	}

	ayce := stringSet{}
	matched := stringSet{}
	for _, l := range p.Lines {
		if l.AYCE {
			ayce[l.OrderID] = struct{}{}
		}
		if pred.categories.allows(l.Category) && (!state.HideAYCE || !l.AYCE) {
			matched[l.OrderID] = struct{}{}
		}
	}
	for _, l := range p.Lines {
		id := l.OrderID
		if _, ok := ayce[id]; ok && state.HideAYCE {
			pred.excluded[id] = struct{}{}
			continue
		}
		if _, ok := matched[id]; !ok && pred.categories != nil {
			pred.excluded[id] = struct{}{}
		}
	}
	return pred
}

// State returns the filter state the predicate was built from.
func (p *Predicate) State() models.FilterState { return p.state }

// OrderIncluded applies the order-scoped filters.
func (p *Predicate) OrderIncluded(orderID string) bool {
	_, out := p.excluded[orderID]
	return !out
}

// InWindow applies the date range and day type to a dated record.
func (p *Predicate) InWindow(date string, weekend bool) bool {
	if date == "" {
		return false
	}
	if r := p.state.DateRange; (r.Start != "" && date < r.Start) || (r.End != "" && date > r.End) {
		return false
	}
	switch p.state.DayType {
	case models.DayWeekend:
		return weekend
	case models.DayWeekday:
		return !weekend
	}
	return true
}

func (p *Predicate) KitchenSelected(kitchen string) bool { return p.kitchens.allows(kitchen) }

// SelectedKitchens returns the kitchen subset, or nil when every kitchen is selected.
func (p *Predicate) SelectedKitchens() []string { return p.kitchenSel }

// CategorySelected is row-level category matching. Order-level data has no
// item granularity, so the category filter never applies to it.
func (p *Predicate) CategorySelected(category string) bool {
	return !p.itemLevel || p.categories.allows(category)
}

func (p *Predicate) ItemTypeSelected(kind models.ItemKind) bool {
	return p.itemTypes.allows(string(kind))
}

// Line is the row predicate for order-scoped rollups: order survives,
// dated inside the window, kitchen selected.
func (p *Predicate) Line(l models.Line) bool {
	return p.OrderIncluded(l.OrderID) && p.InWindow(l.Date, l.Weekend) && p.KitchenSelected(l.Kitchen)
}

// ItemLine additionally requires the row's own category to be selected;
// item-level rollups tally only matching items of surviving orders.
func (p *Predicate) ItemLine(l models.Line) bool {
	return p.Line(l) && p.CategorySelected(l.Category)
}

// Order is the predicate for aggregated orders.
func (p *Predicate) Order(o models.Order) bool {
	return p.OrderIncluded(o.OrderID) && p.InWindow(o.Date, o.Weekend) && p.KitchenSelected(o.Kitchen)
}
