package analytics

import (
	"math"
	"sort"

	"dinein-dashboard/models"

	"github.com/samber/lo"
)

const valueBinWidth = 50

// ValueBin returns the order-value histogram index: floor(bill/50) clamped to [0, 8].
func ValueBin(bill float64) int {
	// clamp before the int conversion; +Inf and NaN do not convert
	x := math.Floor(bill / valueBinWidth)
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x >= models.ValueBinCount-1 {
		return models.ValueBinCount - 1
	}
	return int(x)
}

// Median sorts a copy of values; the mean of the two middle elements is used
// for even counts. Empty input yields 0.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 != 0 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func addOrder(ct *models.ChannelTotals, bill float64) {
	ct.Bill += bill
	ct.Orders++
	ct.ValueBins[ValueBin(bill)]++
	ct.Values = append(ct.Values, bill)
}

// mergeTotals adds src into dst; bins are rebuilt from the retained values.
func mergeTotals(dst *models.ChannelTotals, src models.ChannelTotals) {
	dst.Bill += src.Bill
	dst.Orders += src.Orders
	dst.Values = append(dst.Values, src.Values...)
	for _, v := range src.Values {
		dst.ValueBins[ValueBin(v)]++
	}
}

type dayAcc struct {
	date     string
	weekend  bool
	split    models.Split
	kitchens map[string]*models.Split
}

// BuildDaily is the first aggregation pass: each dated order lands in its
// day bucket, the bucket's kitchen entry and the flat kitchen total.
func BuildDaily(set models.OrderSet) models.DailyRollup {
	days := make(map[string]*dayAcc)
	kitchens := make(map[string]*models.Split)

	for _, o := range set.Orders {
		if o.Date == "" {
			continue
		}
		day, ok := days[o.Date]
		if !ok {
			day = &dayAcc{date: o.Date, weekend: o.Weekend, kitchens: make(map[string]*models.Split)}
			days[o.Date] = day
		}
		dk, ok := day.kitchens[o.Kitchen]
		if !ok {
			dk = &models.Split{}
			day.kitchens[o.Kitchen] = dk
		}
		kt, ok := kitchens[o.Kitchen]
		if !ok {
			kt = &models.Split{}
			kitchens[o.Kitchen] = kt
		}
		addOrder(day.split.For(o.Channel), o.Bill)
		addOrder(dk.For(o.Channel), o.Bill)
		addOrder(kt.For(o.Channel), o.Bill)
	}

	out := models.DailyRollup{
		Days:     make([]models.DailyBucket, 0, len(days)),
		Kitchens: make(map[string]models.Split, len(kitchens)),
	}
	for _, d := range days {
		b := models.DailyBucket{
			Date:     d.date,
			Weekend:  d.weekend,
			Split:    d.split,
			Kitchens: make(map[string]models.Split, len(d.kitchens)),
		}
		for k, s := range d.kitchens {
			b.Kitchens[k] = *s
		}
		withAOV(&b)
		out.Days = append(out.Days, b)
	}
	sort.Slice(out.Days, func(i, j int) bool { return out.Days[i].Date < out.Days[j].Date })
	for k, s := range kitchens {
		out.Kitchens[k] = *s
	}
	return out
}

func withAOV(b *models.DailyBucket) {
	b.WaiterAOV = b.Waiter.AOV()
	b.APIAOV = b.API.AOV()
}

// FilterDaily applies the date window and day type to the series. With a
// kitchen subset active, each day is rebuilt by summing only the selected
// kitchens' nested entries, and its histograms are rebuilt from their order
// values.
func FilterDaily(r models.DailyRollup, pred *Predicate) []models.DailyBucket {
	selected := pred.SelectedKitchens()
	out := make([]models.DailyBucket, 0, len(r.Days))
	for _, d := range r.Days {
		if !pred.InWindow(d.Date, d.Weekend) {
			continue
		}
		if selected == nil {
			out = append(out, d)
			continue
		}
		f := models.DailyBucket{
			Date:     d.Date,
			Weekend:  d.Weekend,
			Kitchens: make(map[string]models.Split, len(selected)),
		}
		for _, k := range selected {
			ks, ok := d.Kitchens[k]
			if !ok {
				continue
			}
			f.Kitchens[k] = ks
			mergeTotals(&f.Waiter, ks.Waiter)
			mergeTotals(&f.API, ks.API)
		}
		withAOV(&f)
		out = append(out, f)
	}
	return out
}

// Summarize totals the filtered series per channel, with medians over the
// retained order values and the summed value histogram.
func Summarize(days []models.DailyBucket) models.Overview {
	var total models.Split
	for _, d := range days {
		for _, c := range []models.Channel{models.ChannelWaiter, models.ChannelAPI} {
			src, dst := d.Split.For(c), total.For(c)
			dst.Bill += src.Bill
			dst.Orders += src.Orders
			dst.Values = append(dst.Values, src.Values...)
			for i, n := range src.ValueBins {
				dst.ValueBins[i] += n
			}
		}
	}

	ov := models.Overview{
		Waiter:    channelSummary(total.Waiter),
		API:       channelSummary(total.API),
		ValueBins: make([]models.ValueBin, models.ValueBinCount),
	}
	for i, label := range models.ValueBinLabels {
		ov.ValueBins[i] = models.ValueBin{Label: label, Waiter: total.Waiter.ValueBins[i], API: total.API.ValueBins[i]}
	}
	ov.AdoptionRate = percent(total.API.Orders, total.Waiter.Orders+total.API.Orders)
	return ov
}

func channelSummary(ct models.ChannelTotals) models.ChannelSummary {
	return models.ChannelSummary{
		Orders: ct.Orders,
		Bill:   ct.Bill,
		AOV:    ct.AOV(),
		Median: Median(ct.Values),
	}
}

// KitchenAOVTable sums the nested kitchen entries of the filtered series into
// one row per selected kitchen, busiest first.
func KitchenAOVTable(days []models.DailyBucket, pred *Predicate) []models.KitchenAOV {
	acc := make(map[string]*models.Split)
	var order []string
	for _, d := range days {
		names := lo.Keys(d.Kitchens)
		sort.Strings(names)
		for _, k := range names {
			if !pred.KitchenSelected(k) {
				continue
			}
			s, ok := acc[k]
			if !ok {
				s = &models.Split{}
				acc[k] = s
				order = append(order, k)
			}
			ks := d.Kitchens[k]
			s.Waiter.Bill += ks.Waiter.Bill
			s.Waiter.Orders += ks.Waiter.Orders
			s.API.Bill += ks.API.Bill
			s.API.Orders += ks.API.Orders
		}
	}

	rows := make([]models.KitchenAOV, 0, len(order))
	for _, k := range order {
		if row, ok := kitchenRow(k, *acc[k]); ok {
			rows = append(rows, row)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].TotalOrders > rows[j].TotalOrders })
	return rows
}

// KitchenTotals lists the flat per-kitchen totals of the first pass, busiest
// first. Only the AYCE and category exclusions shape them; the date window,
// day type and kitchen selection do not, so undated orders are absent too.
func KitchenTotals(daily models.DailyRollup) []models.KitchenAOV {
	names := lo.Keys(daily.Kitchens)
	sort.Strings(names)
	rows := make([]models.KitchenAOV, 0, len(names))
	for _, k := range names {
		if row, ok := kitchenRow(k, daily.Kitchens[k]); ok {
			rows = append(rows, row)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].TotalOrders > rows[j].TotalOrders })
	return rows
}

func kitchenRow(name string, s models.Split) (models.KitchenAOV, bool) {
	total := s.Waiter.Orders + s.API.Orders
	if total == 0 {
		return models.KitchenAOV{}, false
	}
	return models.KitchenAOV{
		Name:         name,
		WaiterAOV:    s.Waiter.AOV(),
		APIAOV:       s.API.AOV(),
		WaiterOrders: s.Waiter.Orders,
		APIOrders:    s.API.Orders,
		TotalOrders:  total,
		AdoptionRate: percent(s.API.Orders, total),
	}, true
}

// percent returns part/whole*100, 0 when whole is 0.
func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// ratio returns num/den, 0 when den is 0.
func ratio(num float64, den int) float64 {
	if den == 0 {
		return 0
	}
	return num / float64(den)
}
