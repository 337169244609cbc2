package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dinein-dashboard/analytics"
	"dinein-dashboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset(name string) *models.Dataset {
	return &models.Dataset{Name: name, Rows: []models.Row{
		{"ORDER_ID": "A", "ORDER_CREATED_AT": "2024-01-06", "ORDER_TOTAL_LCY": "40", "KITCHEN_NAME_CLEAN": "Marina", "ITEM_ADDON_FLG": "COMBO_ITEM", "CATEGORY_NAME": "Mains", "ITEM_CREATED_AT": "t1"},
		{"ORDER_ID": "B", "ORDER_CREATED_AT": "2024-01-08", "ORDER_TOTAL_LCY": "60", "KITCHEN_NAME_CLEAN": "Downtown", "ITEM_ADDON_FLG": "COMBO_ITEM", "CREATED_BY_FULL_NAME": "DINE IN API"},
	}}
}

func TestSessionRequiresDataset(t *testing.T) {
	_, err := NewSession().Dashboard(context.Background())
	assert.ErrorIs(t, err, ErrNoDataset)
}

func TestSessionPublishesAndCaches(t *testing.T) {
	s := NewSession()
	s.Load(sampleDataset("jan.csv"))
	assert.Equal(t, "jan.csv", s.Name())

	calls := 0
	s.compute = func(ctx context.Context, p *analytics.Prepared, f models.FilterState) (*models.Dashboard, error) {
		calls++
		return analytics.Compute(ctx, p, f)
	}
	d1, err := s.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, d1.TotalOrders)

	d2, err := s.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Same(t, d1, d2)
	assert.Equal(t, 1, calls)

	s.UpdateFilter(func(f *models.FilterState) { f.Kitchens = []string{"Marina"} })
	d3, err := s.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, d3.Overview.Waiter.Orders+d3.Overview.API.Orders)
}

func TestSessionLoadSupersedesInFlight(t *testing.T) {
	s := NewSession()
	s.Load(sampleDataset("jan.csv"))

	cancelled := make(chan bool, 1)
	s.compute = func(ctx context.Context, p *analytics.Prepared, f models.FilterState) (*models.Dashboard, error) {
		s.Load(sampleDataset("feb.csv"))
		select {
		case <-ctx.Done():
			cancelled <- true
		case <-time.After(time.Second):
			cancelled <- false
		}
		return analytics.Compute(context.Background(), p, f)
	}

	_, err := s.Dashboard(context.Background())
	assert.ErrorIs(t, err, ErrSuperseded)
	assert.True(t, <-cancelled, "the old generation's computation was not cancelled")
	assert.Equal(t, "feb.csv", s.Name())

	s.compute = analytics.Compute
	d, err := s.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, d.TotalOrders)
}

func TestSessionLoadResetsRangeAndKitchens(t *testing.T) {
	s := NewSession()
	s.Load(sampleDataset("jan.csv"))
	s.UpdateFilter(func(f *models.FilterState) {
		f.DateRange = models.DateRange{Start: "2024-01-01", End: "2024-01-31"}
		f.Kitchens = []string{"Marina"}
		f.HideAYCE = true
		f.DayType = models.DayWeekend
	})

	s.Load(sampleDataset("feb.csv"))
	f := s.Filter()
	assert.Equal(t, models.DateRange{}, f.DateRange)
	assert.Equal(t, []string{models.AllValues}, f.Kitchens)
	assert.True(t, f.HideAYCE)
	assert.Equal(t, models.DayWeekend, f.DayType)

	s.Clear()
	assert.Empty(t, s.Name())
	assert.Equal(t, models.DefaultFilter(), s.Filter())
}

func TestSessionConcurrentFilterUpdates(t *testing.T) {
	s := NewSession()
	s.Load(sampleDataset("jan.csv"))

	updates := []func(*models.FilterState){
		func(f *models.FilterState) { f.DayType = models.DayWeekend },
		func(f *models.FilterState) { f.HideAYCE = true },
		func(f *models.FilterState) { f.MinMains = 2 },
		func(f *models.FilterState) { f.Kitchens = []string{"Marina"} },
		func(f *models.FilterState) { f.Categories = []string{"Mains"} },
		func(f *models.FilterState) { f.ItemTypes = []string{"COMBO_ITEM"} },
		func(f *models.FilterState) { f.DateRange.Start = "2024-01-01" },
		func(f *models.FilterState) { f.DateRange.End = "2024-01-31" },
	}
	start := make(chan struct{})
	var wg sync.WaitGroup
	for _, fn := range updates {
		wg.Add(1)
		go func(fn func(*models.FilterState)) {
			defer wg.Done()
			<-start
			_, _, _ = s.TryUpdateFilter(func(_ *analytics.Prepared, f *models.FilterState) (bool, error) {
				fn(f)
				return true, nil
			})
		}(fn)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, models.FilterState{
		DateRange:  models.DateRange{Start: "2024-01-01", End: "2024-01-31"},
		DayType:    models.DayWeekend,
		Kitchens:   []string{"Marina"},
		Categories: []string{"Mains"},
		HideAYCE:   true,
		ItemTypes:  []string{"COMBO_ITEM"},
		MinMains:   2,
	}, s.Filter())
}

func TestSessionTryUpdateFilterKeepsGeneration(t *testing.T) {
	s := NewSession()
	s.Load(sampleDataset("jan.csv"))
	d1, err := s.Dashboard(context.Background())
	require.NoError(t, err)

	_, changed, err := s.TryUpdateFilter(func(p *analytics.Prepared, f *models.FilterState) (bool, error) {
		assert.Equal(t, "jan.csv", p.Name)
		f.HideAYCE = true
		return false, errors.New("bad value")
	})
	assert.Error(t, err)
	assert.False(t, changed)
	assert.False(t, s.Filter().HideAYCE, "a failed update must not leak")

	_, changed, err = s.TryUpdateFilter(func(*analytics.Prepared, *models.FilterState) (bool, error) { return false, nil })
	require.NoError(t, err)
	assert.False(t, changed)

	d2, err := s.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Same(t, d1, d2, "unchanged filter keeps the published dashboard")
}
