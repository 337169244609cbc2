package models

// Row is one decoded CSV record keyed by header name. A key is present only
// when the column exists in the file; its value may still be empty.
type Row map[string]string

// Has reports whether the column exists on this row.
func (r Row) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Dataset is a decoded CSV file: header order plus rows in file order.
type Dataset struct {
	Name    string
	Columns []string
	Rows    []Row
}

// Shape is the detected granularity of a dataset.
type Shape string

const (
	ShapeItemLevel  Shape = "item"
	ShapeOrderLevel Shape = "order"
)

// Channel is the ordering origin of an order.
type Channel string

const (
	ChannelWaiter Channel = "waiter"
	ChannelAPI    Channel = "api"
)

// ItemKind classifies an item-level row.
type ItemKind string

const (
	KindComboItem  ItemKind = "COMBO_ITEM"
	KindComboAddon ItemKind = "COMBO_ADDON"
	KindOther      ItemKind = "OTHER"
)

// Line holds the canonical fields extracted from one Row.
type Line struct {
	Index            int // position in the source dataset
	OrderID          string
	Date             string // YYYY-MM-DD, empty when missing or unparseable
	Weekend          bool
	Channel          Channel
	Kitchen          string
	KitchenID        string
	LocationCategory string
	Category         string // raw, may be empty
	ItemName         string // raw, may be empty
	ComboName        string
	Kind             ItemKind
	Price            float64
	ComboPrice       float64
	Quantity         int
	PositionQuantity int
	Bill             float64
	ItemCreatedAt    string
	AYCE             bool
	ComboAYCE        bool
}

// HasDate reports whether the line carries a usable order date.
func (l Line) HasDate() bool { return l.Date != "" }
