package analytics

import (
	"context"

	"dinein-dashboard/models"

	"golang.org/x/sync/errgroup"
)

// Compute runs every rollup for one filter state. The prepared dataset is
// read-only; independent rollups run concurrently and each writes only its
// own field of the result. The only error is ctx cancellation, in which case
// no partial dashboard is returned.
func Compute(ctx context.Context, p *Prepared, f models.FilterState) (*models.Dashboard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pred := NewPredicate(p, f)
	set := AggregateOrders(p.Lines, pred)
	daily := BuildDaily(set)
	days := FilterDaily(daily, pred)

	dash := &models.Dashboard{
		Shape:           p.Shape,
		HasAddonPricing: p.HasAddonPricing,
		Filter:          f,
		Dimensions:      Dimensions(p, daily),
		TotalOrders:     set.Len(),
		UndatedOrders:   set.Undated,
		ChannelOrders:   ChannelOrders(set),
		Daily:           days,
		KitchenTotals:   KitchenTotals(daily),
	}

	details := BuildOrderDetails(p, pred)

	g, gctx := errgroup.WithContext(ctx)
	run := func(fn func()) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn()
			return nil
		})
	}
	run(func() { dash.Overview = Summarize(days) })
	run(func() { dash.Kitchens = KitchenAOVTable(days, pred) })
	run(func() { dash.Locations = LocationCategories(set, pred) })
	run(func() { dash.Items = Items(p, pred) })
	run(func() { dash.AYCE = AYCESplit(p, pred) })
	run(func() { dash.Categories = Categories(p, pred, details) })
	run(func() { dash.Basket = Basket(p, pred) })
	run(func() { dash.TableSize = TableSize(details, f.MinMains) })
	if p.HasItemTimestamps {
		run(func() { dash.Rounds = Rounds(details) })
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return dash, nil
}
