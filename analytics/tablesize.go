package analytics

import "dinein-dashboard/models"

// MainsBinLabels are the reported mains buckets; 0-main orders are counted
// separately in OrdersWithoutMains.
var MainsBinLabels = []string{"1", "2", "3", "4", "5+"}

// MainsBin maps a mains count to 0..5, where 5 means five or more.
func MainsBin(mains int) int {
	if mains >= 5 {
		return 5
	}
	if mains < 0 {
		return 0
	}
	return mains
}

func tableSize(details []*OrderDetail, ch models.Channel, floor int) models.TableSizeEstimate {
	var total, n int
	for _, d := range details {
		if d.Channel != ch || d.Mains < floor {
			continue
		}
		total += d.Mains
		n++
	}
	return models.TableSizeEstimate{AvgMains: ratio(float64(total), n), OrderCount: n}
}

// TableSize estimates party size from mains per order. The 1+ estimate
// leaves out orders without mains; the 2+ estimate also leaves out
// single-main orders. minMains picks which one is reported as selected.
func TableSize(details []*OrderDetail, minMains int) *models.TableSizeRollup {
	if details == nil {
		return nil
	}
	if minMains != 2 {
		minMains = 1
	}
	var dist [2][6]int
	for _, d := range details {
		c := 0
		if d.Channel == models.ChannelAPI {
			c = 1
		}
		dist[c][MainsBin(d.Mains)]++
	}
	withMains := func(c int) int {
		return dist[c][1] + dist[c][2] + dist[c][3] + dist[c][4] + dist[c][5]
	}

	out := &models.TableSizeRollup{
		Waiter:             tableSize(details, models.ChannelWaiter, 1),
		API:                tableSize(details, models.ChannelAPI, 1),
		Waiter2Plus:        tableSize(details, models.ChannelWaiter, 2),
		API2Plus:           tableSize(details, models.ChannelAPI, 2),
		OrdersWithoutMains: models.ChannelCounts{Waiter: dist[0][0], API: dist[1][0]},
		SingleMainOrders:   models.ChannelCounts{Waiter: dist[0][1], API: dist[1][1]},
		MinMains:           minMains,
	}
	for i, label := range MainsBinLabels {
		w, a := dist[0][i+1], dist[1][i+1]
		out.Distribution = append(out.Distribution, models.MainsBin{
			Label:     label,
			Waiter:    w,
			API:       a,
			WaiterPct: percent(w, withMains(0)),
			APIPct:    percent(a, withMains(1)),
		})
	}
	if minMains == 2 {
		out.SelectedWaiter, out.SelectedAPI = out.Waiter2Plus, out.API2Plus
	} else {
		out.SelectedWaiter, out.SelectedAPI = out.Waiter, out.API
	}
	return out
}
