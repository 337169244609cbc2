package analytics

import (
	"sort"

	"dinein-dashboard/models"
)

type locationAcc struct {
	row      models.LocationCategoryAOV
	kitchens map[string]*models.LocationKitchenAOV
	order    []string
}

func addLocation(waiterOrders, apiOrders *int, waiterTotal, apiTotal *float64, o models.Order) {
	if o.Channel == models.ChannelAPI {
		*apiOrders++
		*apiTotal += o.Bill
		return
	}
	*waiterOrders++
	*waiterTotal += o.Bill
}

// LocationCategories groups filtered orders with a positive bill by location
// category, then by kitchen id, with per-channel AOV.
func LocationCategories(set models.OrderSet, pred *Predicate) []models.LocationCategoryAOV {
	cats := make(map[string]*locationAcc)
	var order []string

	for _, o := range set.Orders {
		if !pred.Order(o) || o.Bill <= 0 {
			continue
		}
		acc, ok := cats[o.LocationCategory]
		if !ok {
			acc = &locationAcc{
				row:      models.LocationCategoryAOV{Category: o.LocationCategory},
				kitchens: make(map[string]*models.LocationKitchenAOV),
			}
			cats[o.LocationCategory] = acc
			order = append(order, o.LocationCategory)
		}
		r := &acc.row
		addLocation(&r.WaiterOrders, &r.APIOrders, &r.WaiterTotal, &r.APITotal, o)

		k, ok := acc.kitchens[o.KitchenID]
		if !ok {
			k = &models.LocationKitchenAOV{ID: o.KitchenID, Name: o.Kitchen}
			acc.kitchens[o.KitchenID] = k
			acc.order = append(acc.order, o.KitchenID)
		}
		addLocation(&k.WaiterOrders, &k.APIOrders, &k.WaiterTotal, &k.APITotal, o)
	}

	out := make([]models.LocationCategoryAOV, 0, len(order))
	for _, name := range order {
		acc := cats[name]
		r := acc.row
		r.WaiterAOV = ratio(r.WaiterTotal, r.WaiterOrders)
		r.APIAOV = ratio(r.APITotal, r.APIOrders)
		r.TotalOrders = r.WaiterOrders + r.APIOrders
		r.Kitchens = make([]models.LocationKitchenAOV, 0, len(acc.order))
		for _, id := range acc.order {
			k := *acc.kitchens[id]
			k.WaiterAOV = ratio(k.WaiterTotal, k.WaiterOrders)
			k.APIAOV = ratio(k.APITotal, k.APIOrders)
			k.TotalOrders = k.WaiterOrders + k.APIOrders
			r.Kitchens = append(r.Kitchens, k)
		}
		sort.SliceStable(r.Kitchens, func(i, j int) bool { return r.Kitchens[i].TotalOrders > r.Kitchens[j].TotalOrders })
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalOrders > out[j].TotalOrders })
	return out
}
