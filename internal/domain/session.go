package domain

import (
	"time"
)

// Turn roles as delivered by the voice provider's transcript webhooks.
const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

// Turn is a single message in a session transcript. Turns are immutable once
// recorded; their ordering is meaningful because later turns can override
// order fields set by earlier ones.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OrderRecord is the structured trading order reconstructed from a
// transcript. All fields stay empty until extraction (or, for MarketPrice,
// the market-data lookup) fills them in.
type OrderRecord struct {
	Exchange    string `json:"exchange,omitempty"`
	Symbol      string `json:"symbol,omitempty"`
	Quantity    string `json:"quantity,omitempty"`
	Price       string `json:"price,omitempty"`
	MarketPrice string `json:"marketPrice,omitempty"`
}

// HasInstrument reports whether both exchange and symbol are known, i.e. a
// market price can be looked up.
func (o OrderRecord) HasInstrument() bool {
	return o.Exchange != "" && o.Symbol != ""
}

// Session lifecycle statuses.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusError     = "error"
)

// Session is one voice trading conversation: the transcript received so far
// and the order record derived from it.
type Session struct {
	ID         string      `json:"id"`
	Status     string      `json:"status"`
	StreamURL  string      `json:"streamUrl,omitempty"`
	Transcript []Turn      `json:"transcript"`
	Order      OrderRecord `json:"orderData"`
	StartedAt  time.Time   `json:"startedAt"`
}
