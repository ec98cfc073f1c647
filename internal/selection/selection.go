// Package selection prices a homeowner's transient package and add-on
// choices. Selections live in the consuming view, never in the proposal
// document, so everything here is a pure function over values.
package selection

import (
	"strings"

	"github.com/robmoran/proposalkit/internal/proposal/domain"
)

// Toggle returns a new set with the add-on ID added when absent and
// removed when present. The input set is never mutated.
func Toggle(selected map[string]struct{}, addOnID string) map[string]struct{} {
	out := make(map[string]struct{}, len(selected)+1)
	for id := range selected {
		out[id] = struct{}{}
	}
	if _, ok := out[addOnID]; ok {
		delete(out, addOnID)
	} else {
		out[addOnID] = struct{}{}
	}
	return out
}

// Total computes the running total for one chosen estimate plus chosen
// add-ons. Without a selected estimate the total is 0 regardless of
// add-ons: add-ons alone do not constitute a valid purchase.
func Total(estimate *domain.Estimate, addOns []domain.AddOn) float64 {
	if estimate == nil {
		return 0
	}
	total := estimate.Total
	for _, addOn := range addOns {
		total += addOn.Price
	}
	return total
}

// CanCheckout reports whether the selection is complete enough to
// authorize: a chosen estimate and a non-empty trimmed signature, both
// required independently.
func CanCheckout(estimate *domain.Estimate, signature string) bool {
	return estimate != nil && strings.TrimSpace(signature) != ""
}
