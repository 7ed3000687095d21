package dto

import (
	"chalet/internal/domain/pricing"
	"chalet/internal/domain/selection"
	"chalet/internal/domain/shared/daterange"
)

type SelectionState struct {
	SessionID string `json:"session_id"`
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
	Nights    int    `json:"nights"`
	TotalCost int64  `json:"total_cost"`
	Currency  string `json:"currency"`
}

func MapSelection(s *selection.Session, resolver pricing.Resolver) SelectionState {
	out := SelectionState{Currency: resolver.Currency()}
	if s == nil {
		return out
	}
	out.SessionID = string(s.ID)
	out.From = formatDate(s.Selection.From)
	out.To = formatDate(s.Selection.To)
	out.Nights, out.TotalCost = stayTotals(s.Selection, resolver)
	return out
}

// ClickResult is the outcome of a day click. A rejected click carries the
// unchanged state and a message for the guest.
type ClickResult struct {
	Accepted bool           `json:"accepted"`
	Reason   string         `json:"reason,omitempty"`
	Date     string         `json:"date,omitempty"`
	Message  string         `json:"message,omitempty"`
	State    SelectionState `json:"state"`
}

// Remember keeps refused clicks out of the idempotency store.
func (r ClickResult) Remember() bool { return r.Accepted }

// stayTotals returns nights and cost of a selection, zero for an empty one.
func stayTotals(sel daterange.Selection, resolver pricing.Resolver) (int, int64) {
	if sel.IsEmpty() {
		return 0, 0
	}
	nights := daterange.NightsBetween(sel.From, sel.LastDay()) + 1
	return nights, resolver.TotalCost(sel.From, sel.To).Amount
}
