package analytics

import (
	"sort"

	"dinein-dashboard/models"

	"github.com/samber/lo"
)

const topAddons = 10

// BasketBinLabels are the basket-size histogram buckets over items plus paid addons.
var BasketBinLabels = []string{"1-2", "3-4", "5-6", "7-8", "9-10", "11+"}

type basket struct {
	channel      models.Channel
	items        int
	addons       int
	paidAddons   int
	itemRevenue  float64
	addonRevenue float64
	bill         float64
}

func (b *basket) size() int { return b.items + b.paidAddons }

// BasketBin maps a basket size to its histogram bucket.
func BasketBin(size int) int {
	switch {
	case size <= 2:
		return 0
	case size <= 4:
		return 1
	case size <= 6:
		return 2
	case size <= 8:
		return 3
	case size <= 10:
		return 4
	}
	return 5
}

type addonAcc struct {
	stats map[string]*models.AddonStat
	order []string
}

func (a *addonAcc) add(name string, qty int, price float64) {
	s, ok := a.stats[name]
	if !ok {
		s = &models.AddonStat{Name: name}
		a.stats[name] = s
		a.order = append(a.order, name)
	}
	s.Count += qty
	s.Revenue += price * float64(qty)
	if !lo.Contains(s.Prices, price) {
		s.Prices = append(s.Prices, price)
	}
}

func (a *addonAcc) top() []models.AddonStat {
	out := make([]models.AddonStat, 0, len(a.order))
	for _, name := range a.order {
		s := *a.stats[name]
		s.AvgPrice = ratio(s.Revenue, s.Count)
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > topAddons {
		out = out[:topAddons]
	}
	return out
}

// Basket compares basket composition and paid-addon uptake between the
// channels. Free addons (price 0) never count as addons. For order-level
// data only order counts and order value are populated.
func Basket(p *Prepared, pred *Predicate) models.BasketRollup {
	byID := make(map[string]*basket)
	var orders []*basket
	addons := map[models.Channel]*addonAcc{
		models.ChannelWaiter: {stats: make(map[string]*models.AddonStat)},
		models.ChannelAPI:    {stats: make(map[string]*models.AddonStat)},
	}
	itemLevel := p.ItemLevel()

	for _, l := range p.Lines {
		if !pred.ItemLine(l) {
			continue
		}
		b, ok := byID[l.OrderID]
		if !ok {
			b = &basket{channel: l.Channel, bill: l.Bill}
			byID[l.OrderID] = b
			orders = append(orders, b)
		}
		if !itemLevel {
			continue
		}
		switch l.Kind {
		case models.KindComboItem:
			b.items += l.Quantity
			b.itemRevenue += l.Price * float64(l.Quantity)
		case models.KindComboAddon:
			b.addons += l.Quantity
			if l.Price > 0 {
				b.paidAddons += l.Quantity
				b.addonRevenue += l.Price * float64(l.Quantity)
				addons[l.Channel].add(itemLabel(l), l.Quantity, l.Price)
			}
		}
	}

	out := models.BasketRollup{
		Waiter:          basketMetrics(orders, models.ChannelWaiter),
		API:             basketMetrics(orders, models.ChannelAPI),
		Distribution:    make([]models.BasketBin, len(BasketBinLabels)),
		TopWaiterAddons: addons[models.ChannelWaiter].top(),
		TopAPIAddons:    addons[models.ChannelAPI].top(),
		HasAddonPricing: p.HasAddonPricing,
	}
	for i, label := range BasketBinLabels {
		out.Distribution[i].Label = label
	}
	for _, b := range orders {
		bin := &out.Distribution[BasketBin(b.size())]
		if b.channel == models.ChannelAPI {
			bin.API++
		} else {
			bin.Waiter++
		}
	}
	return out
}

func basketMetrics(all []*basket, ch models.Channel) models.BasketMetrics {
	orders := lo.Filter(all, func(b *basket, _ int) bool { return b.channel == ch })
	n := len(orders)
	if n == 0 {
		return models.BasketMetrics{}
	}
	withAddons := lo.Filter(orders, func(b *basket, _ int) bool { return b.paidAddons > 0 })
	items := lo.SumBy(orders, func(b *basket) int { return b.items })
	paid := lo.SumBy(orders, func(b *basket) int { return b.paidAddons })
	addonRevenue := lo.SumBy(orders, func(b *basket) float64 { return b.addonRevenue })

	return models.BasketMetrics{
		OrderCount:               n,
		AvgItems:                 ratio(float64(items), n),
		AvgPaidAddons:            ratio(float64(paid), n),
		AvgPaidAddonsWhenPresent: ratio(float64(paid), len(withAddons)),
		AddonAttachRate:          percent(len(withAddons), n),
		AvgItemRevenue:           ratio(lo.SumBy(orders, func(b *basket) float64 { return b.itemRevenue }), n),
		AvgAddonRevenue:          ratio(addonRevenue, n),
		AvgBasketSize:            ratio(float64(items+paid), n),
		AvgOrderValue:            ratio(lo.SumBy(orders, func(b *basket) float64 { return b.bill }), n),
		OrdersWithPaidAddons:     len(withAddons),
		TotalAddonRevenue:        addonRevenue,
	}
}
