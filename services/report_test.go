package services

import (
	"context"
	"strings"
	"testing"

	"dinein-dashboard/analytics"
	"dinein-dashboard/models"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDashboard(t *testing.T, f models.FilterState) *models.Dashboard {
	t.Helper()
	d, err := analytics.Compute(context.Background(), analytics.Prepare(sampleDataset("jan.csv")), f)
	require.NoError(t, err)
	return d
}

func TestReport(t *testing.T) {
	text := Report("jan.csv", sampleDashboard(t, models.DefaultFilter()))
	for _, want := range []string{
		"jan.csv (item-level)",
		"Data: 2024-01-06 .. 2024-01-08",
		"Orders: 2 (waiter 1, api 1)",
		"Waiter: 1 orders, AOV 40.00, median 40.00",
		"API: 1 orders, AOV 60.00",
		"API adoption: 50.0%",
		"• Marina: 1 orders",
		"Table size (1+ mains)",
		"Rounds: waiter",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q:\n%s", want, text)
		}
	}
}

func TestDescribeFilter(t *testing.T) {
	f := models.DefaultFilter()
	assert.Equal(t, "all", describeFilter(f))

	f.DayType = models.DayWeekday
	f.DateRange = models.DateRange{Start: "2024-01-01", End: "2024-01-07"}
	f.Kitchens = []string{"Marina", "Downtown"}
	f.HideAYCE = true
	assert.Equal(t, "weekday, 2024-01-01..2024-01-07, kitchens=Marina,Downtown, AYCE hidden", describeFilter(f))
}

func TestBuildReportCard(t *testing.T) {
	f := models.DefaultFilter()
	f.DayType = models.DayWeekend
	f.MinMains = 2
	card := BuildReportCard("jan.csv", sampleDashboard(t, f))

	all := lo.Flatten(card.Buttons)
	byData := lo.SliceToMap(all, func(b CardButton) (string, string) { return b.CallbackData, b.Text })
	assert.Equal(t, "• Weekends", byData[CallbackDay+"weekend"])
	assert.Equal(t, "Weekdays", byData[CallbackDay+"weekday"])
	assert.Equal(t, "• 2+ mains", byData[CallbackMains+"2"])
	assert.Equal(t, "Hide AYCE", byData[CallbackAYCE+"hide"])
	assert.Contains(t, byData, CallbackExport)
	assert.NotEmpty(t, card.Text)
}

func TestBuildReportCardOrderLevel(t *testing.T) {
	ds := &models.Dataset{Name: "o.csv", Rows: []models.Row{{"ORDER_ID": "A", "TOTAL_PARTED_BILL_AMOUNT": "5"}}}
	d, err := analytics.Compute(context.Background(), analytics.Prepare(ds), models.DefaultFilter())
	require.NoError(t, err)

	card := BuildReportCard("o.csv", d)
	_, hasAYCE := lo.Find(lo.Flatten(card.Buttons), func(b CardButton) bool { return strings.HasPrefix(b.CallbackData, CallbackAYCE) })
	assert.False(t, hasAYCE)
}
