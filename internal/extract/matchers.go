package extract

import (
	"regexp"
	"strings"
)

// exchanges is the closed set of venues the desk supports. Forward
// extraction scans all of them without breaking, so when a turn names two
// exchanges the last one in this order wins.
var exchanges = []string{"okx", "bybit", "deribit", "binance"}

// symbolPatterns are tried in order, most specific first. The trailing
// generic pair pattern keeps its upper-case character classes even though
// input is lower-cased before matching; widening it to lower case would make
// every two-syllable word a symbol candidate ("want", "please") and break
// the conversation flow. Greedy-first-match ordering is kept as-is.
var symbolPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(btc[-/]?usdt)\b`),
	regexp.MustCompile(`\b(eth[-/]?usdt)\b`),
	regexp.MustCompile(`\b(sol[-/]?usdt)\b`),
	regexp.MustCompile(`\b(xrp[-/]?usdt)\b`),
	regexp.MustCompile(`\b(bnb[-/]?usdt)\b`),
	regexp.MustCompile(`\b(ada[-/]?usdt)\b`),
	regexp.MustCompile(`\b(doge[-/]?usdt)\b`),
	regexp.MustCompile(`\b([A-Z]{2,10}[-/]?[A-Z]{2,10})\b`),
}

// quantityPatterns end in a bare-number fallback, so quantity extraction can
// mis-fire on unrelated numbers (a price spoken without trigger words). An
// accepted tradeoff of the ordering, not a bug to fix here.
var quantityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:units?|coins?|tokens?)`),
	regexp.MustCompile(`buy\s*(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`sell\s*(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:btc|eth|sol|xrp|bnb|ada|doge)`),
	regexp.MustCompile(`quantity\s*(?:of|is|:)?\s*(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:units?|coins?|tokens?)?`),
}

// pricePatterns anchor on trigger words so a bare number is never taken as a
// price during forward extraction.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:at|for|price|cost|worth)\s*(?:of|is|:)?\s*(?:\$|usd)?\s*(\d+(?:,\d+)*(?:\.\d+)?)`),
	regexp.MustCompile(`(\d+(?:,\d+)*(?:\.\d+)?)\s*(?:dollars?|usd|\$)`),
	regexp.MustCompile(`price\s*(?:of|is|:)?\s*(?:\$|usd)?\s*(\d+(?:,\d+)*(?:\.\d+)?)`),
}

// matchExchange scans the closed exchange set against lower-cased turn
// content. Unlike the pattern cascades there is no early break; the last
// exchange found in set order wins.
func matchExchange(content string) (string, bool) {
	found := ""
	for _, ex := range exchanges {
		if strings.Contains(content, ex) {
			found = strings.ToUpper(ex)
		}
	}
	return found, found != ""
}

// matchSymbol returns the first match of the first symbol pattern that fires.
func matchSymbol(content string) (string, bool) {
	for _, re := range symbolPatterns {
		if m := re.FindStringSubmatch(content); m != nil {
			return strings.ToUpper(m[1]), true
		}
	}
	return "", false
}

// matchQuantity returns the captured number of the first quantity pattern
// that fires.
func matchQuantity(content string) (string, bool) {
	for _, re := range quantityPatterns {
		if m := re.FindStringSubmatch(content); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// matchPrice returns the captured number of the first price pattern that
// fires, with thousands-separator commas stripped.
func matchPrice(content string) (string, bool) {
	for _, re := range pricePatterns {
		if m := re.FindStringSubmatch(content); m != nil {
			return strings.ReplaceAll(m[1], ",", ""), true
		}
	}
	return "", false
}
