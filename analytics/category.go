package analytics

import (
	"sort"

	"dinein-dashboard/models"

	"github.com/samber/lo"
)

type categoryAcc struct {
	stats map[string]*models.CategoryStat
	order []string
}

func (a *categoryAcc) add(name, group string, l models.Line) {
	s, ok := a.stats[name]
	if !ok {
		s = &models.CategoryStat{Name: name, Group: group}
		a.stats[name] = s
		a.order = append(a.order, name)
	}
	revenue := l.Price * float64(l.Quantity)
	if l.Channel == models.ChannelAPI {
		s.APICount += l.Quantity
		s.APIRevenue += revenue
	} else {
		s.WaiterCount += l.Quantity
		s.WaiterRevenue += revenue
	}
}

func (a *categoryAcc) list() []models.CategoryStat {
	out := make([]models.CategoryStat, 0, len(a.order))
	for _, name := range a.order {
		s := *a.stats[name]
		s.Total = s.WaiterCount + s.APICount
		s.TotalRevenue = s.WaiterRevenue + s.APIRevenue
		s.APIPercent = percent(s.APICount, s.Total)
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out
}

// DistinctOrders counts distinct order ids per channel among the lines pred
// accepts. It is the denominator of every per-order average.
func DistinctOrders(lines []models.Line, pred *Predicate) models.ChannelCounts {
	waiter, api := stringSet{}, stringSet{}
	for _, l := range lines {
		if !pred.Line(l) {
			continue
		}
		if l.Channel == models.ChannelAPI {
			api[l.OrderID] = struct{}{}
		} else {
			waiter[l.OrderID] = struct{}{}
		}
	}
	return models.ChannelCounts{Waiter: len(waiter), API: len(api)}
}

// Categories builds the fine (category) and coarse (group) breakdowns and
// the per-order composition averages. Order-level data yields nil.
func Categories(p *Prepared, pred *Predicate, details []*OrderDetail) *models.CategoryBreakdown {
	if !p.ItemLevel() {
		return nil
	}
	cats := &categoryAcc{stats: make(map[string]*models.CategoryStat)}
	groups := &categoryAcc{stats: make(map[string]*models.CategoryStat)}
	for _, l := range p.Lines {
		if !pred.ItemLine(l) {
			continue
		}
		name := categoryLabel(l)
		group := GroupOf(name)
		cats.add(name, group, l)
		groups.add(group, group, l)
	}

	orders := DistinctOrders(p.Lines, pred)
	groupStats := groups.list()
	waiterItems := lo.SumBy(groupStats, func(g models.CategoryStat) int { return g.WaiterCount })
	apiItems := lo.SumBy(groupStats, func(g models.CategoryStat) int { return g.APICount })

	out := &models.CategoryBreakdown{
		Categories: cats.list(),
		Groups:     make([]models.GroupStat, 0, len(groupStats)),
		Orders:     orders,
	}
	for _, g := range groupStats {
		out.Groups = append(out.Groups, models.GroupStat{
			CategoryStat:      g,
			WaiterAvgPerOrder: ratio(float64(g.WaiterCount), orders.Waiter),
			APIAvgPerOrder:    ratio(float64(g.APICount), orders.API),
			TotalAvgPerOrder:  ratio(float64(g.Total), orders.Total()),
			WaiterPctOfTotal:  percent(g.WaiterCount, waiterItems),
			APIPctOfTotal:     percent(g.APICount, apiItems),
		})
	}
	out.WaiterPerOrder = perOrder(details, models.ChannelWaiter, orders.Waiter)
	out.APIPerOrder = perOrder(details, models.ChannelAPI, orders.API)
	return out
}

func perOrder(details []*OrderDetail, ch models.Channel, orderCount int) models.PerOrderMetrics {
	mine := lo.Filter(details, func(d *OrderDetail, _ int) bool { return d.Channel == ch })
	sum := func(f func(*OrderDetail) int) float64 {
		return ratio(float64(lo.SumBy(mine, f)), orderCount)
	}
	return models.PerOrderMetrics{
		OrderCount:  orderCount,
		AvgMains:    sum(func(d *OrderDetail) int { return d.Mains }),
		AvgDrinks:   sum(func(d *OrderDetail) int { return d.Drinks }),
		AvgSides:    sum(func(d *OrderDetail) int { return d.Sides }),
		AvgDesserts: sum(func(d *OrderDetail) int { return d.Desserts }),
		AvgKids:     sum(func(d *OrderDetail) int { return d.Kids }),
		AvgTotal:    sum(func(d *OrderDetail) int { return d.Total }),
	}
}
