package extract

import (
	"regexp"
	"strings"

	"voicedesk/internal/domain"
)

// correctionCues mark a turn as a revision of something already said rather
// than forward progress. Classification is turn-local substring containment,
// no lookback.
var correctionCues = []string{"i meant", "not", "instead", "change"}

// symbolAlias maps a spoken commodity name to its canonical pair. The table
// is ordered with full names ahead of their abbreviations so "bitcoin"
// resolves before "btc" claims the prefix.
type symbolAlias struct {
	name   string
	symbol string
}

var symbolAliases = []symbolAlias{
	{"bitcoin", "BTC-USDT"},
	{"btc", "BTC-USDT"},
	{"ethereum", "ETH-USDT"},
	{"eth", "ETH-USDT"},
	{"solana", "SOL-USDT"},
	{"sol", "SOL-USDT"},
	{"ripple", "XRP-USDT"},
	{"xrp", "XRP-USDT"},
	{"binance coin", "BNB-USDT"},
	{"bnb", "BNB-USDT"},
	{"cardano", "ADA-USDT"},
	{"ada", "ADA-USDT"},
	{"dogecoin", "DOGE-USDT"},
	{"doge", "DOGE-USDT"},
}

// bareNumber and barePrice pull the first decimal number out of a correction
// turn once its topic gate has fired.
var (
	bareNumber = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
	barePrice  = regexp.MustCompile(`(\d+(?:,\d+)*(?:\.\d+)?)`)
)

// isCorrection classifies a lower-cased turn as a correction.
func isCorrection(content string) bool {
	for _, cue := range correctionCues {
		if strings.Contains(content, cue) {
			return true
		}
	}
	return false
}

// applyCorrection resolves a correction turn against the record. Each field
// is guarded by a topic gate: a correction that never mentions the field's
// trigger keyword must not clobber it, even when an exchange name or bare
// number co-occurs in the sentence.
func applyCorrection(content string, rec *domain.OrderRecord) {
	if strings.Contains(content, "exchange") {
		for _, ex := range exchanges {
			if strings.Contains(content, ex) {
				rec.Exchange = strings.ToUpper(ex)
				break
			}
		}
	}

	if strings.Contains(content, "symbol") ||
		strings.Contains(content, "bitcoin") ||
		strings.Contains(content, "ethereum") ||
		strings.Contains(content, "coin") {
		if symbol, ok := resolveAlias(content); ok {
			rec.Symbol = symbol
		}
	}

	if strings.Contains(content, "quantity") || strings.Contains(content, "amount") {
		if m := bareNumber.FindStringSubmatch(content); m != nil {
			rec.Quantity = m[1]
		}
	}

	if strings.Contains(content, "price") ||
		strings.Contains(content, "cost") ||
		strings.Contains(content, "dollars") {
		if m := barePrice.FindStringSubmatch(content); m != nil {
			rec.Price = strings.ReplaceAll(m[1], ",", "")
		}
	}
}

// resolveAlias picks the alias mentioned earliest in the turn. Position wins
// over table order so "I meant Ethereum, not Bitcoin" resolves to the asserted
// coin rather than whichever name happens to sit higher in the table; ties
// (a name and its own abbreviation share a prefix) fall back to table order.
func resolveAlias(content string) (string, bool) {
	best := -1
	symbol := ""
	for _, alias := range symbolAliases {
		idx := strings.Index(content, alias.name)
		if idx < 0 {
			continue
		}
		if best < 0 || idx < best {
			best = idx
			symbol = alias.symbol
		}
	}
	return symbol, best >= 0
}
