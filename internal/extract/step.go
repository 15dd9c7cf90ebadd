package extract

import (
	"voicedesk/internal/domain"
)

// Conversation step labels, in the order the desk walks a caller through
// them.
const (
	StepSelectingExchange = "Selecting Exchange"
	StepChoosingSymbol    = "Choosing Symbol"
	StepOrderDetails      = "Setting Order Details"
	StepConfirmingOrder   = "Confirming Order"
)

// CurrentStep derives the conversation step from which order fields are
// populated, nothing else. Evaluated in fixed priority order and recomputed
// on every status read.
func CurrentStep(rec domain.OrderRecord) string {
	switch {
	case rec.Exchange == "":
		return StepSelectingExchange
	case rec.Symbol == "":
		return StepChoosingSymbol
	case rec.Quantity == "" || rec.Price == "":
		return StepOrderDetails
	default:
		return StepConfirmingOrder
	}
}
