package analytics

import (
	"sort"

	"dinein-dashboard/models"
)

const topItems = 30

type statAcc struct {
	stats map[string]*models.ItemStat
	order []string
}

func newStatAcc() *statAcc { return &statAcc{stats: make(map[string]*models.ItemStat)} }

func (a *statAcc) add(name string, count int, price float64, ayce bool) {
	s, ok := a.stats[name]
	if !ok {
		s = &models.ItemStat{Name: name, Price: price, AYCE: ayce}
		a.stats[name] = s
		a.order = append(a.order, name)
	}
	s.Count += count
	s.Revenue += price * float64(count)
	if price > 0 {
		s.Price = price
	}
}

func (a *statAcc) top(n int, less func(x, y models.ItemStat) bool) []models.ItemStat {
	out := make([]models.ItemStat, 0, len(a.order))
	for _, name := range a.order {
		out = append(out, *a.stats[name])
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func byCount(x, y models.ItemStat) bool   { return x.Count > y.Count }
func byRevenue(x, y models.ItemStat) bool { return x.Revenue > y.Revenue }

func itemLabel(l models.Line) string {
	if l.ItemName == "" {
		return UnknownLabel
	}
	return l.ItemName
}

// Items builds the item, item-type and combo tables. The item-type filter
// applies here. Order-level data yields nil.
func Items(p *Prepared, pred *Predicate) *models.ItemAnalytics {
	if !p.ItemLevel() {
		return nil
	}
	items := newStatAcc()
	combos := newStatAcc()
	types := make(map[models.ItemKind]*models.TypeStat)
	var typeOrder []models.ItemKind

	for _, l := range p.Lines {
		if !pred.ItemLine(l) || !pred.ItemTypeSelected(l.Kind) {
			continue
		}
		items.add(itemLabel(l), l.Quantity, l.Price, l.AYCE)

		ts, ok := types[l.Kind]
		if !ok {
			ts = &models.TypeStat{Type: l.Kind}
			types[l.Kind] = ts
			typeOrder = append(typeOrder, l.Kind)
		}
		ts.Count += l.Quantity
		ts.Revenue += l.Price * float64(l.Quantity)

		// Combos are counted once per position via the COMBO_ITEM row.
		if l.Kind == models.KindComboItem && l.ComboName != UnknownLabel {
			combos.add(l.ComboName, l.PositionQuantity, l.ComboPrice, l.ComboAYCE)
		}
	}

	typeStats := make([]models.TypeStat, 0, len(typeOrder))
	for _, k := range typeOrder {
		typeStats = append(typeStats, *types[k])
	}
	sort.SliceStable(typeStats, func(i, j int) bool { return typeStats[i].Count > typeStats[j].Count })

	return &models.ItemAnalytics{
		ItemSales:    items.top(topItems, byCount),
		ItemRevenue:  items.top(topItems, byRevenue),
		ItemTypes:    typeStats,
		ComboSales:   combos.top(topItems, byCount),
		ComboRevenue: combos.top(topItems, byRevenue),
	}
}

// AYCESplit tallies item count and revenue of AYCE versus other items.
func AYCESplit(p *Prepared, pred *Predicate) []models.ShareStat {
	if !p.ItemLevel() {
		return nil
	}
	ayce := models.ShareStat{Name: "AYCE"}
	other := models.ShareStat{Name: "Non-AYCE"}
	for _, l := range p.Lines {
		if !pred.ItemLine(l) {
			continue
		}
		s := &other
		if l.AYCE {
			s = &ayce
		}
		s.Count += l.Quantity
		s.Revenue += l.Price * float64(l.Quantity)
	}
	return []models.ShareStat{ayce, other}
}
