package config

import "time"

const (
	// MaxSymbolList caps how many instruments a symbols query returns.
	// Exchange listings run to thousands of pairs; the voice flow only ever
	// offers a handful, so 50 keeps responses small.
	MaxSymbolList = 50

	// QuoteServiceTimeout bounds the call to the optional quote aggregator
	// before falling back to the exchange's own API.
	QuoteServiceTimeout = 5 * time.Second

	// ExchangeAPITimeout bounds direct calls to exchange public APIs.
	ExchangeAPITimeout = 10 * time.Second

	// PriceLookupTimeout bounds the lazy market-price fetch during a status
	// poll. On expiry the response simply omits the market price; it never
	// fails the poll.
	PriceLookupTimeout = 5 * time.Second

	// VoiceAPITimeout bounds calls to the voice session provider.
	VoiceAPITimeout = 15 * time.Second
)
