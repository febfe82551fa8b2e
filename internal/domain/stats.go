package domain

import "github.com/shopspring/decimal"

// MarketStats are the aggregates shown above the table for one record set.
type MarketStats struct {
	TotalMarketCap float64 `json:"total_market_cap"`
	TotalVolume24h float64 `json:"total_volume_24h"`
	AvgChange24h   float64 `json:"avg_change_24h"`
	Gainers        int     `json:"gainers"`
	Losers         int     `json:"losers"`
}

// ComputeStats aggregates a record set. Sums run through decimal so twenty
// market caps around 1e12 don't smear each other in float accumulation.
func ComputeStats(records []Coin) MarketStats {
	if len(records) == 0 {
		return MarketStats{}
	}

	totalCap := decimal.Zero
	totalVol := decimal.Zero
	totalChange := decimal.Zero
	stats := MarketStats{}

	for _, c := range records {
		totalCap = totalCap.Add(decimal.NewFromFloat(c.MarketCap))
		totalVol = totalVol.Add(decimal.NewFromFloat(c.Volume24h))
		totalChange = totalChange.Add(decimal.NewFromFloat(c.Change24h))

		switch {
		case c.Change24h > 0:
			stats.Gainers++
		case c.Change24h < 0:
			stats.Losers++
		}
	}

	avg := totalChange.Div(decimal.NewFromInt(int64(len(records))))

	stats.TotalMarketCap, _ = totalCap.Float64()
	stats.TotalVolume24h, _ = totalVol.Float64()
	stats.AvgChange24h, _ = avg.Round(4).Float64()

	return stats
}
