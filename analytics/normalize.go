package analytics

import (
	"strings"
	"time"

	"dinein-dashboard/models"
)

// DetectShape classifies a dataset from its first row. The result is assumed
// to hold for every row.
func DetectShape(ds *models.Dataset) models.Shape {
	if ds == nil || len(ds.Rows) == 0 {
		return models.ShapeOrderLevel
	}
	first := ds.Rows[0]
	for _, col := range itemLevelMarkers {
		if first.Has(col) {
			return models.ShapeItemLevel
		}
	}
	return models.ShapeOrderLevel
}

// HasAddonPricing reports whether the export carries the tax-inclusive
// per-item price column.
func HasAddonPricing(ds *models.Dataset) bool {
	return ds != nil && len(ds.Rows) > 0 && ds.Rows[0].Has(colItemPrice)
}

// HasItemTimestamps reports whether item-level rows carry the item creation
// timestamp that order rounds are derived from.
func HasItemTimestamps(ds *models.Dataset) bool {
	return ds != nil && len(ds.Rows) > 0 && ds.Rows[0].Has(colItemCreatedAt)
}

// Normalize extracts the canonical fields of one row. It returns false when
// the row has no order id.
func Normalize(index int, r models.Row) (models.Line, bool) {
	orderID := strings.TrimSpace(r[colOrderID])
	if orderID == "" {
		return models.Line{}, false
	}

	l := models.Line{
		Index:            index,
		OrderID:          orderID,
		Channel:          channelOf(r[colCreatedBy]),
		Kitchen:          kitchenChain.get(r),
		LocationCategory: strings.TrimSpace(r[colLocationCategory]),
		Category:         strings.TrimSpace(r[colCategory]),
		ItemName:         itemNameChain.get(r),
		ComboName:        comboNameChain.get(r),
		Kind:             kindOf(r[colItemKind]),
		ComboPrice:       ParseNumber(r[colComboPrice]),
		Quantity:         ParseQuantity(r[colItemQuantity]),
		Bill:             billOf(r),
		ItemCreatedAt:    strings.TrimSpace(r[colItemCreatedAt]),
	}
	if l.Kitchen == "" {
		l.Kitchen = UnknownKitchen
	}
	l.KitchenID = strings.TrimSpace(r[colKitchenID])
	if l.KitchenID == "" {
		l.KitchenID = l.Kitchen
	}
	if l.LocationCategory == "" {
		l.LocationCategory = UncategorizedLocation
	}
	if l.ComboName == "" {
		l.ComboName = UnknownLabel
	}
	l.PositionQuantity = parseIntOr(r[colPositionQuantity], l.Quantity)
	l.Price = priceOf(l.Kind, r)
	l.Date, l.Weekend = orderDate(r[colOrderCreatedAt])
	l.AYCE = strings.Contains(l.ItemName, ayceMarker) || strings.Contains(l.Category, ayceMarker)
	l.ComboAYCE = strings.Contains(l.ComboName, ayceMarker) || strings.Contains(l.Category, ayceMarker)
	return l, true
}

func channelOf(createdBy string) models.Channel {
	if strings.TrimSpace(createdBy) == apiCreator {
		return models.ChannelAPI
	}
	return models.ChannelWaiter
}

func kindOf(flag string) models.ItemKind {
	switch k := models.ItemKind(strings.TrimSpace(flag)); k {
	case models.KindComboItem, models.KindComboAddon:
		return k
	default:
		return models.KindOther
	}
}

// priceOf never lets an addon fall back to the parent position price: a
// missing addon price column means 0.
func priceOf(kind models.ItemKind, r models.Row) float64 {
	if kind == models.KindComboAddon {
		if !r.Has(colItemPrice) {
			return 0
		}
		return ParseNumber(r[colItemPrice])
	}
	return itemPriceChain.get(r)
}

// orderDate takes the first 10 characters of the creation timestamp and
// validates them as a calendar date.
func orderDate(createdAt string) (string, bool) {
	createdAt = strings.TrimSpace(createdAt)
	if len(createdAt) < dateLen {
		return "", false
	}
	date := createdAt[:dateLen]
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", false
	}
	return date, isWeekend(t)
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsWeekend reports whether a YYYY-MM-DD date falls on Saturday or Sunday.
func IsWeekend(date string) bool {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return false
	}
	return isWeekend(t)
}

// Prepared is a dataset normalized once; every recompute reuses it.
type Prepared struct {
	Name            string
	Shape           models.Shape
	HasAddonPricing bool
	// Rounds are only defined for item-level exports with this column.
	HasItemTimestamps bool
	Lines             []models.Line
	Dropped           int // rows without an order id
}

// ItemLevel reports whether item-granular rollups are possible.
func (p *Prepared) ItemLevel() bool { return p.Shape == models.ShapeItemLevel }

// Prepare detects the shape and normalizes every row of ds.
func Prepare(ds *models.Dataset) *Prepared {
	p := &Prepared{
		Shape:           DetectShape(ds),
		HasAddonPricing: HasAddonPricing(ds),
	}
	p.HasItemTimestamps = p.ItemLevel() && HasItemTimestamps(ds)
	if ds == nil {
		return p
	}
	p.Name = ds.Name
	p.Lines = make([]models.Line, 0, len(ds.Rows))
	for i, r := range ds.Rows {
		l, ok := Normalize(i, r)
		if !ok {
			p.Dropped++
			continue
		}
		p.Lines = append(p.Lines, l)
	}
	return p
}
