package analytics

import (
	"dinein-dashboard/models"

	"github.com/samber/lo"
)

// RoundsBinLabels are the round-count buckets.
var RoundsBinLabels = []string{"1", "2", "3", "4", "5+"}

// roundWeights estimate the mean of each bucket; 5+ counts as 5.5.
var roundWeights = [5]float64{1, 2, 3, 4, 5.5}

// RoundsBin maps a round count to bucket 0..4.
func RoundsBin(rounds int) int {
	if rounds >= 5 {
		return 4
	}
	if rounds < 1 {
		return 0
	}
	return rounds - 1
}

// AverageRounds is the weighted mean round count of a bucket distribution.
func AverageRounds(dist [5]int) float64 {
	var sum float64
	var n int
	for i, c := range dist {
		sum += roundWeights[i] * float64(c)
		n += c
	}
	return ratio(sum, n)
}

type roundsAcc struct {
	dist        [5]int
	bucketVals  [5][]float64
	roundValues []float64
}

// Rounds counts how often items were added to an order after it was
// opened. An order with no timestamped items is one round.
func Rounds(details []*OrderDetail) *models.RoundsRollup {
	if details == nil {
		return nil
	}
	acc := map[models.Channel]*roundsAcc{
		models.ChannelWaiter: {},
		models.ChannelAPI:    {},
	}
	for _, d := range details {
		a := acc[d.Channel]
		n := d.RoundCount()
		bin := RoundsBin(n)
		a.dist[bin]++

		var orderValue float64
		for _, ts := range d.RoundOrder {
			v := d.Rounds[ts].TotalValue
			orderValue += v
			if v > 0 {
				a.roundValues = append(a.roundValues, v)
			}
		}
		if orderValue > 0 {
			a.bucketVals[bin] = append(a.bucketVals[bin], orderValue/float64(n))
		}
	}

	w, api := acc[models.ChannelWaiter], acc[models.ChannelAPI]
	out := &models.RoundsRollup{
		Waiter: roundsChannel(w),
		API:    roundsChannel(api),
	}
	for i, label := range RoundsBinLabels {
		out.Distribution = append(out.Distribution, models.RoundsBin{
			Label:          label,
			Waiter:         w.dist[i],
			API:            api.dist[i],
			WaiterPct:      percent(w.dist[i], out.Waiter.Orders),
			APIPct:         percent(api.dist[i], out.API.Orders),
			WaiterAvgValue: mean(w.bucketVals[i]),
			APIAvgValue:    mean(api.bucketVals[i]),
		})
	}
	return out
}

func roundsChannel(a *roundsAcc) models.RoundsChannel {
	total := lo.Sum(a.dist[:])
	multi := total - a.dist[0]
	return models.RoundsChannel{
		Orders:        total,
		AvgRounds:     AverageRounds(a.dist),
		MultiRound:    multi,
		MultiRoundPct: percent(multi, total),
		AvgRoundValue: mean(a.roundValues),
		TotalRounds:   len(a.roundValues),
	}
}

func mean(values []float64) float64 {
	return ratio(lo.Sum(values), len(values))
}
