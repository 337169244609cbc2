package services

import (
	"fmt"
	"strings"

	"dinein-dashboard/models"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Callback data prefixes of report card buttons.
const (
	CallbackDay     = "day:"
	CallbackAYCE    = "ayce:"
	CallbackMains   = "mains:"
	CallbackPreset  = "preset:"
	CallbackExport  = "export"
	CallbackRefresh = "refresh"
)

const reportTopKitchens = 5

// CardButton is one inline button (text + callback_data).
type CardButton struct {
	Text         string
	CallbackData string
}

// ReportCard is the text and inline keyboard of a dashboard summary.
type ReportCard struct {
	Text    string
	Buttons [][]CardButton
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func pct(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1) + "%"
}

func num(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Report renders a plain-text summary of a dashboard.
func Report(name string, d *models.Dashboard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 %s (%s-level)\n", name, d.Shape)
	if d.Dimensions.DateMin != "" {
		fmt.Fprintf(&b, "Data: %s .. %s\n", d.Dimensions.DateMin, d.Dimensions.DateMax)
	}
	fmt.Fprintf(&b, "Filter: %s\n\n", describeFilter(d.Filter))

	fmt.Fprintf(&b, "Orders: %d (waiter %d, api %d)", d.TotalOrders, d.ChannelOrders.Waiter, d.ChannelOrders.API)
	if d.UndatedOrders > 0 {
		fmt.Fprintf(&b, ", %d undated", d.UndatedOrders)
	}
	b.WriteString("\n")
	ov := d.Overview
	fmt.Fprintf(&b, "Waiter: %d orders, AOV %s, median %s\n", ov.Waiter.Orders, money(ov.Waiter.AOV), money(ov.Waiter.Median))
	fmt.Fprintf(&b, "API: %d orders, AOV %s, median %s\n", ov.API.Orders, money(ov.API.AOV), money(ov.API.Median))
	fmt.Fprintf(&b, "API adoption: %s\n", pct(ov.AdoptionRate))

	if len(d.Kitchens) > 0 {
		b.WriteString("\nTop kitchens:\n")
		for _, k := range lo.Slice(d.Kitchens, 0, reportTopKitchens) {
			fmt.Fprintf(&b, "• %s: %d orders, API %s, AOV %s / %s\n",
				k.Name, k.TotalOrders, pct(k.AdoptionRate), money(k.WaiterAOV), money(k.APIAOV))
		}
	}

	bk := d.Basket
	b.WriteString("\nBasket (waiter / api):\n")
	fmt.Fprintf(&b, "Items per order: %s / %s\n", num(bk.Waiter.AvgItems), num(bk.API.AvgItems))
	fmt.Fprintf(&b, "Paid addon rate: %s / %s\n", pct(bk.Waiter.AddonAttachRate), pct(bk.API.AddonAttachRate))
	fmt.Fprintf(&b, "Addons when added: %s / %s\n", num(bk.Waiter.AvgPaidAddonsWhenPresent), num(bk.API.AvgPaidAddonsWhenPresent))
	if !bk.HasAddonPricing {
		b.WriteString("(no addon price column; addon metrics are empty)\n")
	}

	if ts := d.TableSize; ts != nil {
		fmt.Fprintf(&b, "\nTable size (%d+ mains): waiter %s over %d, api %s over %d\n", ts.MinMains,
			num(ts.SelectedWaiter.AvgMains), ts.SelectedWaiter.OrderCount,
			num(ts.SelectedAPI.AvgMains), ts.SelectedAPI.OrderCount)
	}
	if r := d.Rounds; r != nil {
		fmt.Fprintf(&b, "Rounds: waiter %s (multi %s), api %s (multi %s)\n",
			num(r.Waiter.AvgRounds), pct(r.Waiter.MultiRoundPct),
			num(r.API.AvgRounds), pct(r.API.MultiRoundPct))
	}
	return b.String()
}

func describeFilter(f models.FilterState) string {
	parts := []string{string(f.DayType)}
	if f.DateRange.Start != "" || f.DateRange.End != "" {
		parts = append(parts, f.DateRange.Start+".."+f.DateRange.End)
	}
	if !models.SelectsAll(f.Kitchens) {
		parts = append(parts, "kitchens="+strings.Join(f.Kitchens, ","))
	}
	if !models.SelectsAll(f.Categories) {
		parts = append(parts, "categories="+strings.Join(f.Categories, ","))
	}
	if !models.SelectsAll(f.ItemTypes) {
		parts = append(parts, "types="+strings.Join(f.ItemTypes, ","))
	}
	if f.HideAYCE {
		parts = append(parts, "AYCE hidden")
	}
	return strings.Join(parts, ", ")
}

// BuildReportCard returns the summary text with quick-filter buttons. The
// active choice of each toggle is marked.
func BuildReportCard(name string, d *models.Dashboard) ReportCard {
	f := d.Filter
	mark := func(on bool, text string) string {
		if on {
			return "• " + text
		}
		return text
	}
	dayButton := func(dt models.DayType, text string) CardButton {
		return CardButton{Text: mark(f.DayType == dt, text), CallbackData: CallbackDay + string(dt)}
	}

	buttons := [][]CardButton{
		{
			dayButton(models.DayAll, "All days"),
			dayButton(models.DayWeekday, "Weekdays"),
			dayButton(models.DayWeekend, "Weekends"),
		},
		{
			{Text: mark(f.DateRange == models.DateRange{}, "All dates"), CallbackData: CallbackPreset + "all"},
			{Text: "Last 7 days", CallbackData: CallbackPreset + "last7Days"},
			{Text: "This month", CallbackData: CallbackPreset + "thisMonth"},
		},
	}
	if d.Shape == models.ShapeItemLevel {
		ayce := CardButton{Text: "Hide AYCE", CallbackData: CallbackAYCE + "hide"}
		if f.HideAYCE {
			ayce = CardButton{Text: "Show AYCE", CallbackData: CallbackAYCE + "show"}
		}
		buttons = append(buttons, []CardButton{
			ayce,
			{Text: mark(f.MinMains != 2, "1+ mains"), CallbackData: CallbackMains + "1"},
			{Text: mark(f.MinMains == 2, "2+ mains"), CallbackData: CallbackMains + "2"},
		})
	}
	buttons = append(buttons, []CardButton{
		{Text: "🔄 Refresh", CallbackData: CallbackRefresh},
		{Text: "📥 Excel", CallbackData: CallbackExport},
	})
	return ReportCard{Text: Report(name, d), Buttons: buttons}
}
