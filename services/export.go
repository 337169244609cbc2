package services

import (
	"fmt"
	"io"

	"dinein-dashboard/models"

	"github.com/xuri/excelize/v2"
)

// sheet is one worksheet of the export: a header row and data rows.
type sheet struct {
	name   string
	header []interface{}
	rows   [][]interface{}
}

// ExportWorkbook lays out every rollup of d as its own worksheet. Item-level
// sheets are left out for order-level data.
func ExportWorkbook(d *models.Dashboard) (*excelize.File, error) {
	sheets := []sheet{overviewSheet(d), dailySheet(d), kitchenSheet("Kitchens", d.Kitchens), kitchenSheet("Kitchen totals", d.KitchenTotals), locationSheet(d), basketSheet(d)}
	if d.Categories != nil {
		sheets = append(sheets, categorySheet(d.Categories), groupSheet(d.Categories))
	}
	if d.Items != nil {
		sheets = append(sheets, itemSheet(d.Items))
	}
	if d.TableSize != nil {
		sheets = append(sheets, tableSizeSheet(d.TableSize))
	}
	if d.Rounds != nil {
		sheets = append(sheets, roundsSheet(d.Rounds))
	}

	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", s.name, err)
		}
		if err := writeSheet(f, s, bold); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", s.name, err)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// WriteWorkbook streams the XLSX export of d to w.
func WriteWorkbook(w io.Writer, d *models.Dashboard) error {
	f, err := ExportWorkbook(d)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteTo(w)
	return err
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	if err := f.SetSheetRow(s.name, "A1", &s.header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(s.header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(s.name, "A1", last, headerStyle); err != nil {
		return err
	}
	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func overviewSheet(d *models.Dashboard) sheet {
	ov := d.Overview
	s := sheet{
		name:   "Overview",
		header: []interface{}{"Metric", "Waiter", "API"},
		rows: [][]interface{}{
			{"Orders", ov.Waiter.Orders, ov.API.Orders},
			{"Revenue", ov.Waiter.Bill, ov.API.Bill},
			{"AOV", ov.Waiter.AOV, ov.API.AOV},
			{"Median", ov.Waiter.Median, ov.API.Median},
			{"All orders incl. undated", d.ChannelOrders.Waiter, d.ChannelOrders.API},
			{"API adoption %", nil, ov.AdoptionRate},
		},
	}
	for _, b := range ov.ValueBins {
		s.rows = append(s.rows, []interface{}{"Orders " + b.Label, b.Waiter, b.API})
	}
	return s
}

func dailySheet(d *models.Dashboard) sheet {
	s := sheet{name: "Daily", header: []interface{}{"Date", "Weekend", "Waiter orders", "API orders", "Waiter revenue", "API revenue", "Waiter AOV", "API AOV"}}
	for _, day := range d.Daily {
		s.rows = append(s.rows, []interface{}{day.Date, day.Weekend, day.Waiter.Orders, day.API.Orders, day.Waiter.Bill, day.API.Bill, day.WaiterAOV, day.APIAOV})
	}
	return s
}

func kitchenSheet(name string, kitchens []models.KitchenAOV) sheet {
	s := sheet{name: name, header: []interface{}{"Kitchen", "Total orders", "Waiter orders", "API orders", "Waiter AOV", "API AOV", "API adoption %"}}
	for _, k := range kitchens {
		s.rows = append(s.rows, []interface{}{k.Name, k.TotalOrders, k.WaiterOrders, k.APIOrders, k.WaiterAOV, k.APIAOV, k.AdoptionRate})
	}
	return s
}

func locationSheet(d *models.Dashboard) sheet {
	s := sheet{name: "Locations", header: []interface{}{"Location category", "Kitchen", "Total orders", "Waiter orders", "API orders", "Waiter AOV", "API AOV"}}
	for _, c := range d.Locations {
		s.rows = append(s.rows, []interface{}{c.Category, "", c.TotalOrders, c.WaiterOrders, c.APIOrders, c.WaiterAOV, c.APIAOV})
		for _, k := range c.Kitchens {
			s.rows = append(s.rows, []interface{}{c.Category, k.Name, k.TotalOrders, k.WaiterOrders, k.APIOrders, k.WaiterAOV, k.APIAOV})
		}
	}
	return s
}

func basketSheet(d *models.Dashboard) sheet {
	w, a := d.Basket.Waiter, d.Basket.API
	s := sheet{
		name:   "Basket",
		header: []interface{}{"Metric", "Waiter", "API"},
		rows: [][]interface{}{
			{"Orders", w.OrderCount, a.OrderCount},
			{"Avg items", w.AvgItems, a.AvgItems},
			{"Avg paid addons", w.AvgPaidAddons, a.AvgPaidAddons},
			{"Avg paid addons when added", w.AvgPaidAddonsWhenPresent, a.AvgPaidAddonsWhenPresent},
			{"Addon attach rate %", w.AddonAttachRate, a.AddonAttachRate},
			{"Avg item revenue", w.AvgItemRevenue, a.AvgItemRevenue},
			{"Avg addon revenue", w.AvgAddonRevenue, a.AvgAddonRevenue},
			{"Avg basket size", w.AvgBasketSize, a.AvgBasketSize},
			{"AOV", w.AvgOrderValue, a.AvgOrderValue},
		},
	}
	for _, b := range d.Basket.Distribution {
		s.rows = append(s.rows, []interface{}{"Basket " + b.Label, b.Waiter, b.API})
	}
	for _, ad := range d.Basket.TopWaiterAddons {
		s.rows = append(s.rows, []interface{}{"Waiter addon " + ad.Name, ad.Count, ad.AvgPrice})
	}
	for _, ad := range d.Basket.TopAPIAddons {
		s.rows = append(s.rows, []interface{}{"API addon " + ad.Name, ad.Count, ad.AvgPrice})
	}
	return s
}

func categorySheet(c *models.CategoryBreakdown) sheet {
	s := sheet{name: "Categories", header: []interface{}{"Category", "Group", "Waiter count", "API count", "Waiter revenue", "API revenue", "API %"}}
	for _, cat := range c.Categories {
		s.rows = append(s.rows, []interface{}{cat.Name, cat.Group, cat.WaiterCount, cat.APICount, cat.WaiterRevenue, cat.APIRevenue, cat.APIPercent})
	}
	return s
}

func groupSheet(c *models.CategoryBreakdown) sheet {
	s := sheet{name: "Groups", header: []interface{}{"Group", "Waiter count", "API count", "Waiter per order", "API per order", "Waiter share %", "API share %"}}
	for _, g := range c.Groups {
		s.rows = append(s.rows, []interface{}{g.Name, g.WaiterCount, g.APICount, g.WaiterAvgPerOrder, g.APIAvgPerOrder, g.WaiterPctOfTotal, g.APIPctOfTotal})
	}
	return s
}

func itemSheet(it *models.ItemAnalytics) sheet {
	s := sheet{name: "Items", header: []interface{}{"Table", "Name", "Count", "Revenue", "Price", "AYCE"}}
	add := func(table string, stats []models.ItemStat) {
		for _, st := range stats {
			s.rows = append(s.rows, []interface{}{table, st.Name, st.Count, st.Revenue, st.Price, st.AYCE})
		}
	}
	add("Top sellers", it.ItemSales)
	add("Top revenue", it.ItemRevenue)
	add("Combos", it.ComboSales)
	return s
}

func tableSizeSheet(ts *models.TableSizeRollup) sheet {
	s := sheet{
		name:   "Table size",
		header: []interface{}{"Mains", "Waiter", "API", "Waiter %", "API %"},
	}
	for _, b := range ts.Distribution {
		s.rows = append(s.rows, []interface{}{b.Label, b.Waiter, b.API, b.WaiterPct, b.APIPct})
	}
	s.rows = append(s.rows,
		[]interface{}{"No mains", ts.OrdersWithoutMains.Waiter, ts.OrdersWithoutMains.API},
		[]interface{}{"Avg mains (1+)", ts.Waiter.AvgMains, ts.API.AvgMains},
		[]interface{}{"Avg mains (2+)", ts.Waiter2Plus.AvgMains, ts.API2Plus.AvgMains},
	)
	return s
}

func roundsSheet(r *models.RoundsRollup) sheet {
	s := sheet{
		name:   "Rounds",
		header: []interface{}{"Rounds", "Waiter", "API", "Waiter %", "API %", "Waiter avg value", "API avg value"},
	}
	for _, b := range r.Distribution {
		s.rows = append(s.rows, []interface{}{b.Label, b.Waiter, b.API, b.WaiterPct, b.APIPct, b.WaiterAvgValue, b.APIAvgValue})
	}
	s.rows = append(s.rows,
		[]interface{}{"Avg rounds", r.Waiter.AvgRounds, r.API.AvgRounds},
		[]interface{}{"Multi-round %", r.Waiter.MultiRoundPct, r.API.MultiRoundPct},
		[]interface{}{"Avg round value", r.Waiter.AvgRoundValue, r.API.AvgRoundValue},
	)
	return s
}
