package analytics

import "dinein-dashboard/models"

// AggregateOrders folds lines into one Order per id that survives the
// order-scoped filters. The first surviving line of an order fixes its
// order-level fields; later lines never overwrite them. Undated orders are
// kept and counted so order-count metrics still see them.
func AggregateOrders(lines []models.Line, pred *Predicate) models.OrderSet {
	set := models.OrderSet{ByID: make(map[string]int)}
	for _, l := range lines {
		if !pred.OrderIncluded(l.OrderID) {
			continue
		}
		if _, seen := set.ByID[l.OrderID]; seen {
			continue
		}
		set.ByID[l.OrderID] = len(set.Orders)
		set.Orders = append(set.Orders, models.Order{
			OrderID:          l.OrderID,
			Date:             l.Date,
			Weekend:          l.Weekend,
			Kitchen:          l.Kitchen,
			KitchenID:        l.KitchenID,
			LocationCategory: l.LocationCategory,
			Channel:          l.Channel,
			Bill:             l.Bill,
		})
		if !l.HasDate() {
			set.Undated++
		}
	}
	return set
}

// ChannelOrders counts aggregated orders per channel, undated ones included.
func ChannelOrders(set models.OrderSet) models.ChannelCounts {
	var c models.ChannelCounts
	for _, o := range set.Orders {
		if o.Channel == models.ChannelAPI {
			c.API++
		} else {
			c.Waiter++
		}
	}
	return c
}
