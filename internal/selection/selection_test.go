package selection

import (
	"testing"

	"github.com/robmoran/proposalkit/internal/proposal/domain"
)

func TestToggleAddsAndRemoves(t *testing.T) {
	selected := map[string]struct{}{}

	selected = Toggle(selected, "addon-1")
	if _, ok := selected["addon-1"]; !ok {
		t.Fatalf("expected addon-1 selected")
	}

	selected = Toggle(selected, "addon-1")
	if _, ok := selected["addon-1"]; ok {
		t.Fatalf("expected addon-1 deselected")
	}
}

func TestToggleDoesNotMutateInput(t *testing.T) {
	original := map[string]struct{}{"addon-1": {}}
	_ = Toggle(original, "addon-2")
	if len(original) != 1 {
		t.Fatalf("input set mutated")
	}
}

func TestTotalZeroWithoutEstimate(t *testing.T) {
	addOns := []domain.AddOn{{ID: "addon-1", Price: 1200}}
	if got := Total(nil, addOns); got != 0 {
		t.Fatalf("expected 0 without an estimate, got %v", got)
	}
}

func TestTotalSumsEstimateAndAddOns(t *testing.T) {
	estimate := &domain.Estimate{ID: "est-1", Total: 20552}
	addOns := []domain.AddOn{
		{ID: "addon-1", Price: 1200},
		{ID: "addon-2", Price: 1850},
	}
	if got := Total(estimate, addOns); got != 23602 {
		t.Fatalf("expected 23602, got %v", got)
	}
}

func TestCanCheckout(t *testing.T) {
	estimate := &domain.Estimate{ID: "est-1"}

	if CanCheckout(nil, "John Smith") {
		t.Fatalf("checkout must require an estimate")
	}
	if CanCheckout(estimate, "   ") {
		t.Fatalf("checkout must require a non-blank signature")
	}
	if !CanCheckout(estimate, "John Smith") {
		t.Fatalf("expected checkout allowed")
	}
}
