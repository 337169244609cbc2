package analytics

import (
	"testing"

	"dinein-dashboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectShape(t *testing.T) {
	tests := []struct {
		name string
		ds   *models.Dataset
		want models.Shape
	}{
		{"nil", nil, models.ShapeOrderLevel},
		{"empty", &models.Dataset{}, models.ShapeOrderLevel},
		{"order total", &models.Dataset{Rows: []models.Row{{"ORDER_TOTAL_LCY": ""}}}, models.ShapeItemLevel},
		{"final bill", &models.Dataset{Rows: []models.Row{{"O_PRICE_FINAL_BILL": "3"}}}, models.ShapeItemLevel},
		{"parted bill only", &models.Dataset{Rows: []models.Row{{"TOTAL_PARTED_BILL_AMOUNT": "3"}}}, models.ShapeOrderLevel},
		// only the first row decides
		{"marker on second row", &models.Dataset{Rows: []models.Row{{"ORDER_ID": "1"}, {"ORDER_TOTAL_LCY": "3"}}}, models.ShapeOrderLevel},
	}
	for _, tt := range tests {
		if got := DetectShape(tt.ds); got != tt.want {
			t.Errorf("%s: DetectShape = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestNormalizeDropsRowsWithoutOrderID(t *testing.T) {
	_, ok := Normalize(0, models.Row{"ORDER_ID": "  ", "ORDER_TOTAL_LCY": "10"})
	assert.False(t, ok)

	p := Prepare(&models.Dataset{Rows: []models.Row{
		{"ORDER_ID": "A", "ORDER_TOTAL_LCY": "10"},
		{"ORDER_TOTAL_LCY": "10"},
	}})
	assert.Len(t, p.Lines, 1)
	assert.Equal(t, 1, p.Dropped)
}

func TestNormalizeDefaults(t *testing.T) {
	l, ok := Normalize(3, models.Row{
		"ORDER_ID":         "A",
		"ORDER_CREATED_AT": "2024-01-06T10:15:00Z",
		"ITEM_ADDON_FLG":   "MODIFIER",
		"ITEM_QUANTITY":    "0",
	})
	require.True(t, ok)
	assert.Equal(t, 3, l.Index)
	assert.Equal(t, models.ChannelWaiter, l.Channel)
	assert.Equal(t, UnknownKitchen, l.Kitchen)
	assert.Equal(t, UnknownKitchen, l.KitchenID)
	assert.Equal(t, UncategorizedLocation, l.LocationCategory)
	assert.Equal(t, UnknownLabel, l.ComboName)
	assert.Equal(t, models.KindOther, l.Kind)
	assert.Equal(t, 1, l.Quantity)
	assert.Equal(t, 1, l.PositionQuantity)
	assert.Equal(t, "2024-01-06", l.Date)
	assert.True(t, l.Weekend)
}

func TestNormalizeFields(t *testing.T) {
	l, ok := Normalize(0, models.Row{
		"ORDER_ID":             "A",
		"ORDER_CREATED_AT":     "2024-01-08 09:00",
		"CREATED_BY_FULL_NAME": "DINE IN API",
		"DIM_KITCHEN_NAME":     "Marina",
		"FK_SKOS_KITCHEN_ID":   "k-1",
		"LOCATION_CATEGORY":    "MALL",
		"CATEGORY_NAME":        "AYCE Brunch",
		"ITEM_NAME":            "Pancakes",
		"POSITION_NAME_CLEAN":  "Brunch Set",
		"ITEM_ADDON_FLG":       "COMBO_ITEM",
		"ITEM_QUANTITY":        "2",
		"POSITION_QUANTITY":    "0",
		"I_MENU_PRICE_B_TAX":   "0",
		"COMBO_PRICE_NET":      "99",
	})
	require.True(t, ok)
	assert.Equal(t, models.ChannelAPI, l.Channel)
	assert.Equal(t, "Marina", l.Kitchen)
	assert.Equal(t, "k-1", l.KitchenID)
	assert.Equal(t, "MALL", l.LocationCategory)
	assert.Equal(t, "Pancakes", l.ItemName)
	assert.Equal(t, "Brunch Set", l.ComboName)
	assert.Equal(t, 2, l.Quantity)
	assert.Equal(t, 2, l.PositionQuantity, "zero position quantity falls back to item quantity")
	assert.Equal(t, 99.0, l.Price, "zero item price falls through to combo price")
	assert.False(t, l.Weekend)
	assert.True(t, l.AYCE)
	assert.True(t, l.ComboAYCE)
}

func TestAddonPrice(t *testing.T) {
	withColumn, _ := Normalize(0, models.Row{"ORDER_ID": "A", "ITEM_ADDON_FLG": "COMBO_ADDON", "I_MENU_PRICE_B_TAX": "4.5", "COMBO_PRICE_NET": "30"})
	assert.Equal(t, 4.5, withColumn.Price)

	without, _ := Normalize(0, models.Row{"ORDER_ID": "A", "ITEM_ADDON_FLG": "COMBO_ADDON", "COMBO_PRICE_NET": "30"})
	assert.Zero(t, without.Price, "addons never inherit the combo price")
}

func TestInvalidDateIsUndated(t *testing.T) {
	for _, in := range []string{"", "2024-13-01", "yesterday at noon", "2024-01"} {
		l, _ := Normalize(0, models.Row{"ORDER_ID": "A", "ORDER_CREATED_AT": in})
		if l.HasDate() {
			t.Errorf("Normalize(ORDER_CREATED_AT=%q) has date %q, want undated", in, l.Date)
		}
	}
}

func TestIsWeekend(t *testing.T) {
	tests := []struct {
		date string
		want bool
	}{
		{"2024-01-06", true},
		{"2024-01-07", true},
		{"2024-01-08", false},
		{"bogus", false},
	}
	for _, tt := range tests {
		if got := IsWeekend(tt.date); got != tt.want {
			t.Errorf("IsWeekend(%q) = %v, want %v", tt.date, got, tt.want)
		}
	}
}
