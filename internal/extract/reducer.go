// Package extract reconstructs a structured trading order from a
// conversational transcript. The whole package is pure text processing:
// no I/O, total over arbitrary input, deterministic for a given transcript.
package extract

import (
	"strings"

	"voicedesk/internal/domain"
)

// Reduce folds a transcript into an order record by full replay: every user
// turn is walked from the start against a record that begins empty, so the
// result is a pure function of transcript contents and ordering. Replaying
// the same transcript twice yields an identical record, and a later turn that
// successfully sets a field always supersedes an earlier value.
//
// Correction turns are resolved through the alias table and topic gates;
// all other user turns run the forward pattern cascades. Classification is
// exclusive: a correction turn is never also pattern-matched. Agent turns
// and turns nothing matches contribute nothing.
func Reduce(transcript []domain.Turn) domain.OrderRecord {
	var rec domain.OrderRecord

	for _, turn := range transcript {
		if turn.Role != domain.RoleUser {
			continue
		}
		content := strings.ToLower(turn.Content)

		if isCorrection(content) {
			applyCorrection(content, &rec)
			continue
		}

		if ex, ok := matchExchange(content); ok {
			rec.Exchange = ex
		}
		if symbol, ok := matchSymbol(content); ok {
			rec.Symbol = symbol
		}
		if qty, ok := matchQuantity(content); ok {
			rec.Quantity = qty
		}
		if price, ok := matchPrice(content); ok {
			rec.Price = price
		}
	}

	return rec
}
