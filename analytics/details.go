package analytics

import "dinein-dashboard/models"

// Round is one distinct item-creation timestamp within an order.
type Round struct {
	ItemCount  int
	TotalValue float64
}

// OrderDetail is the per-order item composition used by the category,
// table-size and rounds rollups.
type OrderDetail struct {
	OrderID  string
	Channel  models.Channel
	Mains    int
	Drinks   int
	Sides    int
	Desserts int
	Kids     int
	Total    int // COMBO_ITEM quantity

	Rounds     map[string]*Round
	RoundOrder []string
}

// RoundCount is the number of distinct rounds; an order with no timestamped
// items is a single round.
func (d *OrderDetail) RoundCount() int {
	if len(d.RoundOrder) == 0 {
		return 1
	}
	return len(d.RoundOrder)
}

// BuildOrderDetails folds the item lines accepted by pred into one detail
// per order, in first-seen order. Order-level data yields nil.
func BuildOrderDetails(p *Prepared, pred *Predicate) []*OrderDetail {
	if !p.ItemLevel() {
		return nil
	}
	byID := make(map[string]*OrderDetail)
	var out []*OrderDetail

	for _, l := range p.Lines {
		if !pred.ItemLine(l) {
			continue
		}
		d, ok := byID[l.OrderID]
		if !ok {
			d = &OrderDetail{OrderID: l.OrderID, Channel: l.Channel, Rounds: make(map[string]*Round)}
			byID[l.OrderID] = d
			out = append(out, d)
		}

		if l.Kind == models.KindComboItem {
			d.Total += l.Quantity
			switch GroupOf(categoryLabel(l)) {
			case GroupMains:
				d.Mains += l.Quantity
			case GroupDrinks:
				d.Drinks += l.Quantity
			case GroupSides:
				d.Sides += l.Quantity
			case GroupDesserts:
				d.Desserts += l.Quantity
			case GroupKids:
				d.Kids += l.Quantity
			}
		}

		if l.ItemCreatedAt != "" && (l.Kind == models.KindComboItem || l.Kind == models.KindComboAddon) {
			r, ok := d.Rounds[l.ItemCreatedAt]
			if !ok {
				r = &Round{}
				d.Rounds[l.ItemCreatedAt] = r
				d.RoundOrder = append(d.RoundOrder, l.ItemCreatedAt)
			}
			r.ItemCount += l.Quantity
			r.TotalValue += l.Price * float64(l.Quantity)
		}
	}
	return out
}

func categoryLabel(l models.Line) string {
	if l.Category == "" {
		return UnknownLabel
	}
	return l.Category
}
