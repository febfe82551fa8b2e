package domain

import "time"

// Coin is one tracked asset as shown on the dashboard. A Coin value is never
// mutated in place; a refresh cycle replaces the whole record set.
type Coin struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"current_price"`
	Change24h float64 `json:"price_change_percentage_24h"`
	Volume24h float64 `json:"total_volume"`
	MarketCap float64 `json:"market_cap"`
}

// Source tells where a snapshot's records came from.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// Snapshot is the complete current display state: the record set plus the
// metadata the dashboard needs to render it (refresh flag, advisory error).
type Snapshot struct {
	Records     []Coin    `json:"records"`
	LastUpdated time.Time `json:"last_updated,omitzero"`
	Refreshing  bool      `json:"refreshing"`
	LastError   string    `json:"last_error,omitempty"`
	Source      Source    `json:"source"`
}
