package analytics

import (
	"testing"

	"dinein-dashboard/models"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func orderIDs(set models.OrderSet) []string {
	return lo.Map(set.Orders, func(o models.Order, _ int) string { return o.OrderID })
}

func TestHideAYCEExcludesWholeOrder(t *testing.T) {
	p := mixed()
	f := models.DefaultFilter()
	f.HideAYCE = true
	pred := NewPredicate(p, f)

	assert.ElementsMatch(t, []string{"O1", "O3", "O4", "O5"}, orderIDs(AggregateOrders(p.Lines, pred)))

	// O2's latte is not AYCE but still goes with its order.
	items := Items(p, pred)
	latte, ok := lo.Find(items.ItemSales, func(s models.ItemStat) bool { return s.Name == "Latte" })
	assert.True(t, ok)
	assert.Equal(t, 1, latte.Count)

	for _, l := range p.Lines {
		if l.OrderID == "O2" {
			assert.False(t, pred.Line(l), "line %d of the AYCE order passed", l.Index)
		}
	}
	assert.Equal(t, 1, Basket(p, pred).API.OrderCount, "only O3 remains on the API side")
}

func TestCategoryFilterIsOrderScoped(t *testing.T) {
	p := mixed()
	f := models.DefaultFilter()
	f.Categories = []string{"Coffee"}
	pred := NewPredicate(p, f)

	assert.ElementsMatch(t, []string{"O1", "O2"}, orderIDs(AggregateOrders(p.Lines, pred)))

	var matched []string
	for _, l := range p.Lines {
		if pred.ItemLine(l) {
			matched = append(matched, l.OrderID+"/"+l.ItemName)
		}
	}
	assert.Equal(t, []string{"O1/Latte", "O2/Latte"}, matched)

	f.HideAYCE = true
	assert.Equal(t, []string{"O1"}, orderIDs(AggregateOrders(p.Lines, NewPredicate(p, f))))
}

func TestCategoryFilterIgnoredForOrderLevel(t *testing.T) {
	p := orderLevel(
		models.Row{"ORDER_ID": "A", "ORDER_CREATED_AT": "2024-01-06", "TOTAL_PARTED_BILL_AMOUNT": "10"},
		models.Row{"ORDER_ID": "B", "ORDER_CREATED_AT": "2024-01-07", "TOTAL_PARTED_BILL_AMOUNT": "20", "CATEGORY_NAME": "AYCE"},
	)
	f := models.DefaultFilter()
	f.Categories = []string{"Coffee"}
	f.HideAYCE = true
	set := AggregateOrders(p.Lines, NewPredicate(p, f))
	assert.Equal(t, 2, set.Len())
}

func TestInWindow(t *testing.T) {
	tests := []struct {
		name    string
		state   models.FilterState
		date    string
		weekend bool
		want    bool
	}{
		{"undated", models.FilterState{}, "", false, false},
		{"open range", models.FilterState{}, "2024-01-06", true, true},
		{"before start", models.FilterState{DateRange: models.DateRange{Start: "2024-01-07"}}, "2024-01-06", true, false},
		{"on end", models.FilterState{DateRange: models.DateRange{End: "2024-01-06"}}, "2024-01-06", true, true},
		{"after end", models.FilterState{DateRange: models.DateRange{End: "2024-01-05"}}, "2024-01-06", true, false},
		{"weekend only", models.FilterState{DayType: models.DayWeekend}, "2024-01-08", false, false},
		{"weekday only", models.FilterState{DayType: models.DayWeekday}, "2024-01-08", false, true},
		{"weekday only on saturday", models.FilterState{DayType: models.DayWeekday}, "2024-01-06", true, false},
	}
	p := &Prepared{Shape: models.ShapeItemLevel}
	for _, tt := range tests {
		if got := NewPredicate(p, tt.state).InWindow(tt.date, tt.weekend); got != tt.want {
			t.Errorf("%s: InWindow(%q) = %v, want %v", tt.name, tt.date, got, tt.want)
		}
	}
}

func TestSelectedKitchens(t *testing.T) {
	p := mixed()
	assert.Nil(t, NewPredicate(p, models.DefaultFilter()).SelectedKitchens())

	f := models.DefaultFilter()
	f.Kitchens = []string{"Marina", "Marina", "Downtown"}
	pred := NewPredicate(p, f)
	assert.Equal(t, []string{"Marina", "Downtown"}, pred.SelectedKitchens())
	assert.False(t, pred.KitchenSelected("Airport"))
}
