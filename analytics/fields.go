package analytics

import (
	"regexp"
	"strings"

	"dinein-dashboard/models"

	"github.com/shopspring/decimal"
)

// Source column names of the dine-in export.
const (
	colOrderID          = "ORDER_ID"
	colOrderCreatedAt   = "ORDER_CREATED_AT"
	colCreatedBy        = "CREATED_BY_FULL_NAME"
	colKitchenClean     = "KITCHEN_NAME_CLEAN"
	colDimKitchen       = "DIM_KITCHEN_NAME"
	colKitchenID        = "FK_SKOS_KITCHEN_ID"
	colLocationCategory = "LOCATION_CATEGORY"
	colCategory         = "CATEGORY_NAME"
	colItemNameClean    = "ITEM_NAME_CLEAN"
	colItemName         = "ITEM_NAME"
	colComboName        = "COMBO_NAME"
	colPositionName     = "POSITION_NAME_CLEAN"
	colItemKind         = "ITEM_ADDON_FLG"
	colItemQuantity     = "ITEM_QUANTITY"
	colPositionQuantity = "POSITION_QUANTITY"
	colItemPrice        = "I_MENU_PRICE_B_TAX"
	colComboPrice       = "COMBO_PRICE_NET"
	colOrderTotal       = "ORDER_TOTAL_LCY"
	colFinalBill        = "O_PRICE_FINAL_BILL"
	colWallet           = "WALLET_PAYMENT_AMOUNT"
	colPartedBill       = "TOTAL_PARTED_BILL_AMOUNT"
	colSubtotal         = "SUBTOTAL_USD"
	colTax              = "TAX_AMOUNT_USD"
	colItemCreatedAt    = "ITEM_CREATED_AT"
)

const (
	apiCreator = "DINE IN API"
	ayceMarker = "AYCE"

	UnknownKitchen        = "Unknown"
	UnknownLabel          = "Unknown"
	UncategorizedLocation = "UNCATEGORIZED"
	dateLayout            = "2006-01-02"
	dateLen               = len(dateLayout)
)

// textChain is an ordered list of columns; the first non-empty value wins.
type textChain []string

func (c textChain) get(r models.Row) string {
	for _, col := range c {
		if v := strings.TrimSpace(r[col]); v != "" {
			return v
		}
	}
	return ""
}

// numberChain is an ordered list of columns; the first non-zero number wins.
type numberChain []string

func (c numberChain) get(r models.Row) float64 {
	for _, col := range c {
		if v := ParseNumber(r[col]); v != 0 {
			return v
		}
	}
	return 0
}

// billSource is one entry of the bill priority table: it applies when the
// lead column exists and sums its parts.
type billSource struct {
	lead  string
	parts []string
}

var (
	kitchenChain   = textChain{colKitchenClean, colDimKitchen}
	itemNameChain  = textChain{colItemNameClean, colItemName}
	comboNameChain = textChain{colComboName, colPositionName, colItemNameClean}
	itemPriceChain = numberChain{colItemPrice, colComboPrice}

	billSources = []billSource{
		{lead: colOrderTotal, parts: []string{colOrderTotal}},
		{lead: colFinalBill, parts: []string{colFinalBill, colWallet}},
		{lead: colPartedBill, parts: []string{colPartedBill}},
		{lead: colSubtotal, parts: []string{colSubtotal, colTax}},
	}

	// Columns whose presence on the first row marks an item-level export.
	itemLevelMarkers = []string{colOrderTotal, colFinalBill}
)

func billOf(r models.Row) float64 {
	for _, src := range billSources {
		if !r.Has(src.lead) {
			continue
		}
		var total float64
		for _, col := range src.parts {
			total += ParseNumber(r[col])
		}
		return total
	}
	return 0
}

var (
	numberPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	intPrefix    = regexp.MustCompile(`^[+-]?\d+`)
)

// ParseNumber reads the leading decimal number of s. Anything unparseable is 0.
func ParseNumber(s string) float64 {
	m := numberPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

// ParseQuantity reads the leading integer of s; zero or unparseable yields 1.
func ParseQuantity(s string) int {
	return parseIntOr(s, 1)
}

func parseIntOr(s string, def int) int {
	m := intPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return def
	}
	d, err := decimal.NewFromString(m)
	if err != nil || d.IsZero() {
		return def
	}
	return int(d.IntPart())
}
