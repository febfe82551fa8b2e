// Package fallback holds the static dataset shown whenever live market data
// cannot be obtained. Figures are plausible but not live.
package fallback

import "github.com/coinwatchd/coinwatch/internal/domain"

var dataset = []domain.Coin{
	{ID: "bitcoin", Name: "Bitcoin", Symbol: "BTC", Price: 67240.12, Change24h: 1.84, Volume24h: 31250000000, MarketCap: 1326000000000},
	{ID: "ethereum", Name: "Ethereum", Symbol: "ETH", Price: 3512.45, Change24h: 2.31, Volume24h: 17840000000, MarketCap: 422300000000},
	{ID: "tether", Name: "Tether", Symbol: "USDT", Price: 1.0, Change24h: 0.01, Volume24h: 52100000000, MarketCap: 112500000000},
	{ID: "binancecoin", Name: "BNB", Symbol: "BNB", Price: 588.73, Change24h: -0.62, Volume24h: 1720000000, MarketCap: 86900000000},
	{ID: "solana", Name: "Solana", Symbol: "SOL", Price: 162.38, Change24h: 4.27, Volume24h: 3480000000, MarketCap: 75200000000},
	{ID: "ripple", Name: "XRP", Symbol: "XRP", Price: 0.5231, Change24h: -1.15, Volume24h: 1190000000, MarketCap: 29100000000},
	{ID: "usd-coin", Name: "USDC", Symbol: "USDC", Price: 0.9999, Change24h: -0.01, Volume24h: 6340000000, MarketCap: 33800000000},
	{ID: "cardano", Name: "Cardano", Symbol: "ADA", Price: 0.4412, Change24h: 0.93, Volume24h: 412000000, MarketCap: 15700000000},
	{ID: "dogecoin", Name: "Dogecoin", Symbol: "DOGE", Price: 0.1341, Change24h: 3.08, Volume24h: 982000000, MarketCap: 19400000000},
	{ID: "avalanche-2", Name: "Avalanche", Symbol: "AVAX", Price: 28.94, Change24h: -2.41, Volume24h: 324000000, MarketCap: 11400000000},
	{ID: "tron", Name: "TRON", Symbol: "TRX", Price: 0.1289, Change24h: 0.42, Volume24h: 351000000, MarketCap: 11200000000},
	{ID: "chainlink", Name: "Chainlink", Symbol: "LINK", Price: 14.52, Change24h: 1.67, Volume24h: 398000000, MarketCap: 8800000000},
	{ID: "polkadot", Name: "Polkadot", Symbol: "DOT", Price: 6.18, Change24h: -0.88, Volume24h: 176000000, MarketCap: 8600000000},
	{ID: "polygon-ecosystem-token", Name: "Polygon", Symbol: "POL", Price: 0.5624, Change24h: -1.92, Volume24h: 214000000, MarketCap: 5500000000},
	{ID: "litecoin", Name: "Litecoin", Symbol: "LTC", Price: 73.86, Change24h: 0.54, Volume24h: 389000000, MarketCap: 5500000000},
	{ID: "shiba-inu", Name: "Shiba Inu", Symbol: "SHIB", Price: 0.00001742, Change24h: 2.76, Volume24h: 421000000, MarketCap: 10300000000},
	{ID: "uniswap", Name: "Uniswap", Symbol: "UNI", Price: 9.87, Change24h: -0.34, Volume24h: 187000000, MarketCap: 5900000000},
	{ID: "stellar", Name: "Stellar", Symbol: "XLM", Price: 0.0982, Change24h: 0.21, Volume24h: 68000000, MarketCap: 2900000000},
	{ID: "monero", Name: "Monero", Symbol: "XMR", Price: 161.27, Change24h: 1.12, Volume24h: 74000000, MarketCap: 2970000000},
	{ID: "cosmos", Name: "Cosmos Hub", Symbol: "ATOM", Price: 6.94, Change24h: -1.48, Volume24h: 121000000, MarketCap: 2710000000},
}

// Coins returns a fresh copy of the dataset so callers can never mutate the
// shared table.
func Coins() []domain.Coin {
	out := make([]domain.Coin, len(dataset))
	copy(out, dataset)
	return out
}

// IDs returns the upstream identifiers of the assets in the dataset, in
// dataset order. These double as the default set the pricer requests.
func IDs() []string {
	ids := make([]string, len(dataset))
	for i, c := range dataset {
		ids[i] = c.ID
	}
	return ids
}
