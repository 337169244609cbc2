package models

// ValueBinCount is the number of order-value histogram buckets (width 50, last is open).
const ValueBinCount = 9

// ValueBinLabels names the order-value buckets.
var ValueBinLabels = [ValueBinCount]string{"0-50", "50-100", "100-150", "150-200", "200-250", "250-300", "300-350", "350-400", "400+"}

// ChannelTotals is the per-channel accumulator shared by daily and kitchen rollups.
type ChannelTotals struct {
	Bill      float64            `json:"bill"`
	Orders    int                `json:"orders"`
	ValueBins [ValueBinCount]int `json:"valueBins"`
	Values    []float64          `json:"-"`
}

// AOV is Bill/Orders, 0 when there are no orders.
func (c ChannelTotals) AOV() float64 {
	if c.Orders == 0 {
		return 0
	}
	return c.Bill / float64(c.Orders)
}

// Split holds one accumulator per channel.
type Split struct {
	Waiter ChannelTotals `json:"waiter"`
	API    ChannelTotals `json:"api"`
}

// For returns the accumulator of the given channel.
func (s *Split) For(c Channel) *ChannelTotals {
	if c == ChannelAPI {
		return &s.API
	}
	return &s.Waiter
}

// DailyBucket aggregates all orders of one date, with a nested per-kitchen breakdown.
type DailyBucket struct {
	Date      string           `json:"date"`
	Weekend   bool             `json:"isWeekend"`
	Split                      // global per-channel totals of the day
	WaiterAOV float64          `json:"waiterAOV"`
	APIAOV    float64          `json:"apiAOV"`
	Kitchens  map[string]Split `json:"kitchens"`
}

// DailyRollup is the first aggregation pass: every date plus a flat per-kitchen total.
type DailyRollup struct {
	Days     []DailyBucket    `json:"days"`
	Kitchens map[string]Split `json:"kitchenTotals"`
}

type ChannelCounts struct {
	Waiter int `json:"waiter"`
	API    int `json:"api"`
}

// Total returns Waiter+API.
func (c ChannelCounts) Total() int { return c.Waiter + c.API }

type ChannelSummary struct {
	Orders int     `json:"orders"`
	Bill   float64 `json:"bill"`
	AOV    float64 `json:"aov"`
	Median float64 `json:"median"`
}

type ValueBin struct {
	Label  string `json:"label"`
	Waiter int    `json:"waiter"`
	API    int    `json:"api"`
}

// Overview summarizes the filtered daily series.
type Overview struct {
	Waiter       ChannelSummary `json:"waiter"`
	API          ChannelSummary `json:"api"`
	AdoptionRate float64        `json:"adoptionRate"` // API share of orders, percent
	ValueBins    []ValueBin     `json:"valueBins"`
}

type KitchenAOV struct {
	Name         string  `json:"name"`
	WaiterAOV    float64 `json:"waiterAOV"`
	APIAOV       float64 `json:"apiAOV"`
	WaiterOrders int     `json:"waiterOrders"`
	APIOrders    int     `json:"apiOrders"`
	TotalOrders  int     `json:"totalOrders"`
	AdoptionRate float64 `json:"adoptionRate"`
}

type LocationKitchenAOV struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	WaiterAOV    float64 `json:"waiterAOV"`
	APIAOV       float64 `json:"apiAOV"`
	WaiterOrders int     `json:"waiterOrderCount"`
	APIOrders    int     `json:"apiOrderCount"`
	TotalOrders  int     `json:"totalOrders"`
	WaiterTotal  float64 `json:"waiterTotalValue"`
	APITotal     float64 `json:"apiTotalValue"`
}

type LocationCategoryAOV struct {
	Category     string               `json:"category"`
	WaiterAOV    float64              `json:"waiterAOV"`
	APIAOV       float64              `json:"apiAOV"`
	WaiterOrders int                  `json:"waiterOrderCount"`
	APIOrders    int                  `json:"apiOrderCount"`
	TotalOrders  int                  `json:"totalOrders"`
	WaiterTotal  float64              `json:"waiterTotalValue"`
	APITotal     float64              `json:"apiTotalValue"`
	Kitchens     []LocationKitchenAOV `json:"kitchens"`
}

type ItemStat struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
	Price   float64 `json:"price"`
	AYCE    bool    `json:"isAYCE"`
}

type TypeStat struct {
	Type    ItemKind `json:"type"`
	Count   int      `json:"count"`
	Revenue float64  `json:"revenue"`
}

type ItemAnalytics struct {
	ItemSales    []ItemStat `json:"itemSales"`
	ItemRevenue  []ItemStat `json:"itemRevenue"`
	ItemTypes    []TypeStat `json:"itemTypeCount"`
	ComboSales   []ItemStat `json:"comboSales"`
	ComboRevenue []ItemStat `json:"comboRevenue"`
}

type ShareStat struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type CategoryStat struct {
	Name          string  `json:"name"`
	Group         string  `json:"group"`
	WaiterCount   int     `json:"waiterCount"`
	APICount      int     `json:"apiCount"`
	WaiterRevenue float64 `json:"waiterRevenue"`
	APIRevenue    float64 `json:"apiRevenue"`
	Total         int     `json:"total"`
	TotalRevenue  float64 `json:"totalRevenue"`
	APIPercent    float64 `json:"apiPercent"`
}

type GroupStat struct {
	CategoryStat
	WaiterAvgPerOrder float64 `json:"waiterAvgPerOrder"`
	APIAvgPerOrder    float64 `json:"apiAvgPerOrder"`
	TotalAvgPerOrder  float64 `json:"totalAvgPerOrder"`
	WaiterPctOfTotal  float64 `json:"waiterPctOfTotal"`
	APIPctOfTotal     float64 `json:"apiPctOfTotal"`
}

type PerOrderMetrics struct {
	OrderCount  int     `json:"orderCount"`
	AvgMains    float64 `json:"avgMains"`
	AvgDrinks   float64 `json:"avgDrinks"`
	AvgSides    float64 `json:"avgSides"`
	AvgDesserts float64 `json:"avgDesserts"`
	AvgKids     float64 `json:"avgKids"`
	AvgTotal    float64 `json:"avgTotal"`
}

type CategoryBreakdown struct {
	Categories     []CategoryStat  `json:"categories"`
	Groups         []GroupStat     `json:"groups"`
	Orders         ChannelCounts   `json:"orders"` // distinct-order denominator
	WaiterPerOrder PerOrderMetrics `json:"waiterPerOrder"`
	APIPerOrder    PerOrderMetrics `json:"apiPerOrder"`
}

type BasketMetrics struct {
	OrderCount               int     `json:"orderCount"`
	AvgItems                 float64 `json:"avgItems"`
	AvgPaidAddons            float64 `json:"avgAddons"`
	AvgPaidAddonsWhenPresent float64 `json:"avgAddonsWhenAdded"`
	AddonAttachRate          float64 `json:"addonRate"` // percent
	AvgItemRevenue           float64 `json:"avgItemRevenue"`
	AvgAddonRevenue          float64 `json:"avgAddonRevenue"`
	AvgBasketSize            float64 `json:"avgBasketSize"`
	AvgOrderValue            float64 `json:"avgOrderValue"`
	OrdersWithPaidAddons     int     `json:"ordersWithAddons"`
	TotalAddonRevenue        float64 `json:"totalAddonRevenue"`
}

type BasketBin struct {
	Label  string `json:"bin"`
	Waiter int    `json:"waiter"`
	API    int    `json:"api"`
}

type AddonStat struct {
	Name     string    `json:"name"`
	Count    int       `json:"count"`
	Revenue  float64   `json:"revenue"`
	AvgPrice float64   `json:"avgPrice"`
	Prices   []float64 `json:"prices"`
}

type BasketRollup struct {
	Waiter          BasketMetrics `json:"waiterMetrics"`
	API             BasketMetrics `json:"apiMetrics"`
	Distribution    []BasketBin   `json:"basketDistribution"`
	TopWaiterAddons []AddonStat   `json:"topWaiterAddons"`
	TopAPIAddons    []AddonStat   `json:"topApiAddons"`
	HasAddonPricing bool          `json:"hasAddonPricing"`
}

type MainsBin struct {
	Label     string  `json:"mains"`
	Waiter    int     `json:"waiter"`
	API       int     `json:"api"`
	WaiterPct float64 `json:"waiterPct"`
	APIPct    float64 `json:"apiPct"`
}

type TableSizeEstimate struct {
	AvgMains   float64 `json:"avgMains"`
	OrderCount int     `json:"orderCount"`
}

type TableSizeRollup struct {
	Distribution       []MainsBin        `json:"mainsDistData"` // buckets 1..5+, shares over orders with mains
	Waiter             TableSizeEstimate `json:"waiterTableSize"`
	API                TableSizeEstimate `json:"apiTableSize"`
	Waiter2Plus        TableSizeEstimate `json:"waiterTableSize2Plus"`
	API2Plus           TableSizeEstimate `json:"apiTableSize2Plus"`
	OrdersWithoutMains ChannelCounts     `json:"ordersWithoutMains"`
	SingleMainOrders   ChannelCounts     `json:"singleMainOrders"`
	MinMains           int               `json:"minMains"`
	SelectedWaiter     TableSizeEstimate `json:"selectedWaiter"` // estimate for the active minimum-mains mode
	SelectedAPI        TableSizeEstimate `json:"selectedApi"`
}

type RoundsBin struct {
	Label          string  `json:"rounds"`
	Waiter         int     `json:"waiter"`
	API            int     `json:"api"`
	WaiterPct      float64 `json:"waiterPct"`
	APIPct         float64 `json:"apiPct"`
	WaiterAvgValue float64 `json:"waiterAvgValue"`
	APIAvgValue    float64 `json:"apiAvgValue"`
}

type RoundsChannel struct {
	Orders        int     `json:"total"`
	AvgRounds     float64 `json:"avgRounds"`
	MultiRound    int     `json:"multiRound"`
	MultiRoundPct float64 `json:"multiRoundPct"`
	AvgRoundValue float64 `json:"avgRoundValue"`
	TotalRounds   int     `json:"totalRounds"` // rounds with nonzero value
}

type RoundsRollup struct {
	Distribution []RoundsBin   `json:"roundsDistData"`
	Waiter       RoundsChannel `json:"waiter"`
	API          RoundsChannel `json:"api"`
}

// Dimensions lists the selectable filter values of a dataset.
type Dimensions struct {
	Kitchens   []string `json:"kitchens"`
	Categories []string `json:"categories"`
	ItemTypes  []string `json:"itemTypes"`
	DateMin    string   `json:"dateMin"`
	DateMax    string   `json:"dateMax"`
}

// Dashboard is every rollup computed for one dataset snapshot and filter state.
// Item-level sections are nil for order-level data.
type Dashboard struct {
	Shape           Shape                 `json:"shape"`
	HasAddonPricing bool                  `json:"hasAddonPricing"`
	Filter          FilterState           `json:"filter"`
	Dimensions      Dimensions            `json:"dimensions"`
	TotalOrders     int                   `json:"totalOrders"`
	UndatedOrders   int                   `json:"undatedOrders"`
	ChannelOrders   ChannelCounts         `json:"channelOrders"` // includes undated orders
	Overview        Overview              `json:"overview"`
	Daily           []DailyBucket         `json:"daily"`
	Kitchens        []KitchenAOV          `json:"kitchens"`
	KitchenTotals   []KitchenAOV          `json:"kitchenTotals"` // every date, ignores window and kitchen selection
	Locations       []LocationCategoryAOV `json:"locationCategories"`
	Items           *ItemAnalytics        `json:"items,omitempty"`
	AYCE            []ShareStat           `json:"ayce"`
	Categories      *CategoryBreakdown    `json:"categories,omitempty"`
	Basket          BasketRollup          `json:"basket"`
	TableSize       *TableSizeRollup      `json:"tableSize,omitempty"`
	Rounds          *RoundsRollup         `json:"rounds,omitempty"`
}
