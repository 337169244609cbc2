package analytics

import (
	"context"
	"math"
	"testing"

	"dinein-dashboard/models"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueBin(t *testing.T) {
	tests := []struct {
		bill float64
		want int
	}{
		{0, 0},
		{49.99, 0},
		{50, 1},
		{399.99, 7},
		{400, 8},
		{449, 8},
		{10000, 8},
		{-20, 0},
		{math.Inf(1), 8},
		{math.Inf(-1), 0},
		{math.NaN(), 0},
		{ParseNumber("1e400"), 8},
	}
	for _, tt := range tests {
		if got := ValueBin(tt.bill); got != tt.want {
			t.Errorf("ValueBin(%v) = %d, want %d", tt.bill, got, tt.want)
		}
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		in   []float64
		want float64
	}{
		{nil, 0},
		{[]float64{10}, 10},
		{[]float64{20, 10}, 15},
		{[]float64{30, 10, 20}, 20},
	}
	for _, tt := range tests {
		if got := Median(tt.in); got != tt.want {
			t.Errorf("Median(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAOVWithoutOrders(t *testing.T) {
	var ct models.ChannelTotals
	aov := ct.AOV()
	assert.False(t, math.IsNaN(aov))
	assert.Zero(t, aov)

	ov := Summarize(nil)
	assert.Zero(t, ov.Waiter.AOV)
	assert.Zero(t, ov.AdoptionRate)
}

func TestSummarize(t *testing.T) {
	p := mixed()
	pred := NewPredicate(p, models.DefaultFilter())
	days := FilterDaily(BuildDaily(AggregateOrders(p.Lines, pred)), pred)
	ov := Summarize(days)

	assert.Equal(t, models.ChannelSummary{Orders: 3, Bill: 120, AOV: 40, Median: 35}, ov.Waiter)
	assert.Equal(t, models.ChannelSummary{Orders: 2, Bill: 225, AOV: 112.5, Median: 112.5}, ov.API)
	assert.Equal(t, 40.0, ov.AdoptionRate)
	require.Len(t, ov.ValueBins, models.ValueBinCount)
	assert.Equal(t, 2, ov.ValueBins[0].Waiter)
	assert.Equal(t, 1, ov.ValueBins[1].Waiter)
	assert.Equal(t, 1, ov.ValueBins[1].API)
	assert.Equal(t, 1, ov.ValueBins[2].API)
}

func TestBuildDailySkipsUndatedOrders(t *testing.T) {
	p := prepare(
		fixture{order: "A", date: "2024-01-06", kitchen: "Marina", total: "10"},
		fixture{order: "B", kitchen: "Marina", total: "20"},
	)
	pred := NewPredicate(p, models.DefaultFilter())
	set := AggregateOrders(p.Lines, pred)
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, 1, set.Undated)

	daily := BuildDaily(set)
	require.Len(t, daily.Days, 1)
	assert.Equal(t, 1, daily.Days[0].Waiter.Orders)
}

func TestDayTypeFilter(t *testing.T) {
	p := mixed()
	f := models.DefaultFilter()
	f.DayType = models.DayWeekend
	pred := NewPredicate(p, f)
	days := FilterDaily(BuildDaily(AggregateOrders(p.Lines, pred)), pred)
	require.Len(t, days, 1)
	assert.Equal(t, "2024-01-06", days[0].Date)
	assert.True(t, days[0].Weekend)
}

// The kitchen-filtered series is rebuilt from nested per-kitchen sums; it
// must agree with aggregating the selected kitchens' orders directly.
func TestKitchenFilteredDailyMatchesDirectAggregation(t *testing.T) {
	p := mixed()
	for _, kitchens := range [][]string{{"Marina"}, {"Downtown"}, {"Downtown", "Marina"}} {
		f := models.DefaultFilter()
		f.Kitchens = kitchens
		pred := NewPredicate(p, f)
		set := AggregateOrders(p.Lines, pred)
		days := FilterDaily(BuildDaily(set), pred)

		want := make(map[string]*models.Split)
		for _, o := range set.Orders {
			if !pred.Order(o) {
				continue
			}
			s, ok := want[o.Date]
			if !ok {
				s = &models.Split{}
				want[o.Date] = s
			}
			ct := s.For(o.Channel)
			ct.Bill += o.Bill
			ct.Orders++
		}

		for _, d := range days {
			w := want[d.Date]
			if w == nil {
				w = &models.Split{}
			}
			if d.Waiter.Bill != w.Waiter.Bill || d.Waiter.Orders != w.Waiter.Orders ||
				d.API.Bill != w.API.Bill || d.API.Orders != w.API.Orders {
				t.Errorf("kitchens %v day %s: got waiter %v/%d api %v/%d, want waiter %v/%d api %v/%d",
					kitchens, d.Date, d.Waiter.Bill, d.Waiter.Orders, d.API.Bill, d.API.Orders,
					w.Waiter.Bill, w.Waiter.Orders, w.API.Bill, w.API.Orders)
			}
			if d.WaiterAOV != w.Waiter.AOV() || d.APIAOV != w.API.AOV() {
				t.Errorf("kitchens %v day %s: AOV %v/%v, want %v/%v", kitchens, d.Date, d.WaiterAOV, d.APIAOV, w.Waiter.AOV(), w.API.AOV())
			}
			for k := range d.Kitchens {
				assert.Contains(t, kitchens, k)
			}
		}
	}
}

func TestKitchenAOVTable(t *testing.T) {
	p := mixed()
	pred := NewPredicate(p, models.DefaultFilter())
	days := FilterDaily(BuildDaily(AggregateOrders(p.Lines, pred)), pred)
	rows := KitchenAOVTable(days, pred)

	require.Len(t, rows, 2)
	assert.Equal(t, "Marina", rows[0].Name)
	assert.Equal(t, 3, rows[0].TotalOrders)
	assert.Equal(t, 42.5, rows[0].WaiterAOV)
	assert.Equal(t, 130.0, rows[0].APIAOV)
	assert.InDelta(t, 33.33, rows[0].AdoptionRate, 0.01)
	assert.Equal(t, "Downtown", rows[1].Name)
	assert.Equal(t, 50.0, rows[1].AdoptionRate)
}

func TestKitchenTotals(t *testing.T) {
	p := mixed()
	weekend := models.DefaultFilter()
	weekend.DayType = models.DayWeekend
	weekend.Kitchens = []string{"Downtown"}

	dash, err := Compute(context.Background(), p, weekend)
	require.NoError(t, err)
	assert.Empty(t, dash.Kitchens, "Downtown has no weekend orders")

	require.Len(t, dash.KitchenTotals, 2)
	marina, downtown := dash.KitchenTotals[0], dash.KitchenTotals[1]
	assert.Equal(t, "Marina", marina.Name)
	assert.Equal(t, 3, marina.TotalOrders)
	assert.Equal(t, 42.5, marina.WaiterAOV)
	assert.Equal(t, 130.0, marina.APIAOV)
	assert.Equal(t, "Downtown", downtown.Name)
	assert.Equal(t, 2, downtown.TotalOrders)
	assert.InDelta(t, 50.0, downtown.AdoptionRate, 1e-9)

	hidden := models.DefaultFilter()
	hidden.HideAYCE = true
	pred := NewPredicate(p, hidden)
	totals := KitchenTotals(BuildDaily(AggregateOrders(p.Lines, pred)))
	require.Len(t, totals, 2)
	byName := lo.SliceToMap(totals, func(k models.KitchenAOV) (string, int) { return k.Name, k.TotalOrders })
	assert.Equal(t, map[string]int{"Marina": 2, "Downtown": 2}, byName, "AYCE order O2 leaves Marina")
}
