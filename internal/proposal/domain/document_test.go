package domain

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func fixtureDocument() Document {
	return Document{
		Estimates: []Estimate{
			{
				ID:    "est-1",
				Title: "Premium Option",
				LineItems: []LineItem{
					{Description: "Tear off", Quantity: ptr(2400), Unit: "sq ft", UnitPrice: ptr(1.50), Total: 3600},
					{Description: "Deck repair allowance", Total: 800},
				},
				Subtotal: 4400,
				Tax:      ptr(388),
				Total:    4788,
			},
			{
				ID:        "est-2",
				Title:     "Standard Option",
				LineItems: []LineItem{{Description: "Shingles", Quantity: ptr(26), UnitPrice: ptr(220), Total: 5720}},
				Subtotal:  5720,
				Total:     5720,
			},
		},
		AddOns: []AddOn{
			{ID: "addon-1", Name: "Gutter Guards", Price: 1200},
		},
	}
}

func TestUpdateLineItemQuantityRecomputes(t *testing.T) {
	doc := fixtureDocument()
	updated, err := doc.UpdateLineItem("est-1", 0, "quantity", 3000)
	if err != nil {
		t.Fatalf("update line item: %v", err)
	}

	est := updated.Estimates[0]
	if got := est.LineItems[0].Total; got != 4500 {
		t.Fatalf("expected item total 4500, got %v", got)
	}
	if est.Subtotal != 5300 {
		t.Fatalf("expected subtotal 5300, got %v", est.Subtotal)
	}
	if est.Total != 5688 {
		t.Fatalf("expected total 5688, got %v", est.Total)
	}
	if doc.Estimates[0].Subtotal != 4400 {
		t.Fatalf("original document mutated")
	}
}

func TestUpdateLineItemUnitPriceRecomputes(t *testing.T) {
	doc := fixtureDocument()
	updated, err := doc.UpdateLineItem("est-1", 0, "unitPrice", "2.00")
	if err != nil {
		t.Fatalf("update line item: %v", err)
	}
	if got := updated.Estimates[0].LineItems[0].Total; got != 4800 {
		t.Fatalf("expected item total 4800, got %v", got)
	}
}

func TestUpdateLineItemMissingSideTreatedAsZero(t *testing.T) {
	doc := fixtureDocument()
	// Item 1 has no quantity, so pricing it computes against 0.
	updated, err := doc.UpdateLineItem("est-1", 1, "unitPrice", 10)
	if err != nil {
		t.Fatalf("update line item: %v", err)
	}
	if got := updated.Estimates[0].LineItems[1].Total; got != 0 {
		t.Fatalf("expected item total 0, got %v", got)
	}
}

func TestUpdateLineItemClearingQuantityKeepsTotal(t *testing.T) {
	doc := fixtureDocument()
	updated, err := doc.UpdateLineItem("est-1", 0, "quantity", nil)
	if err != nil {
		t.Fatalf("update line item: %v", err)
	}
	item := updated.Estimates[0].LineItems[0]
	if item.Quantity != nil {
		t.Fatalf("expected quantity cleared")
	}
	if item.Total != 3600 {
		t.Fatalf("expected manual total preserved, got %v", item.Total)
	}
}

func TestUpdateLineItemNonNumericBecomesZero(t *testing.T) {
	doc := fixtureDocument()
	updated, err := doc.UpdateLineItem("est-1", 1, "total", "not a number")
	if err != nil {
		t.Fatalf("update line item: %v", err)
	}
	if got := updated.Estimates[0].LineItems[1].Total; got != 0 {
		t.Fatalf("expected coerced total 0, got %v", got)
	}
	if updated.Estimates[0].Subtotal != 3600 {
		t.Fatalf("expected subtotal 3600, got %v", updated.Estimates[0].Subtotal)
	}
}

func TestUpdateLineItemStaleReferencesNoOp(t *testing.T) {
	doc := fixtureDocument()

	updated, err := doc.UpdateLineItem("est-gone", 0, "total", 1)
	if err != nil {
		t.Fatalf("update line item: %v", err)
	}
	if updated.Estimates[0].LineItems[0].Total != 3600 {
		t.Fatalf("unknown estimate should be a no-op")
	}

	updated, err = doc.UpdateLineItem("est-1", 99, "total", 1)
	if err != nil {
		t.Fatalf("update line item: %v", err)
	}
	if updated.Estimates[0].Subtotal != 4400 {
		t.Fatalf("out-of-range index should be a no-op")
	}
}

func TestUpdateLineItemUnknownField(t *testing.T) {
	doc := fixtureDocument()
	if _, err := doc.UpdateLineItem("est-1", 0, "color", "red"); !errors.Is(err, ErrInvalidField) {
		t.Fatalf("expected ErrInvalidField, got %v", err)
	}
}

func TestUpdateEstimateFieldTax(t *testing.T) {
	doc := fixtureDocument()

	updated, err := doc.UpdateEstimateField("est-1", "tax", "500")
	if err != nil {
		t.Fatalf("update estimate: %v", err)
	}
	if updated.Estimates[0].Total != 4900 {
		t.Fatalf("expected total 4900, got %v", updated.Estimates[0].Total)
	}

	updated, err = doc.UpdateEstimateField("est-1", "tax", nil)
	if err != nil {
		t.Fatalf("update estimate: %v", err)
	}
	if updated.Estimates[0].Tax != nil {
		t.Fatalf("expected tax cleared")
	}
	if updated.Estimates[0].Total != 4400 {
		t.Fatalf("expected total to fall back to subtotal, got %v", updated.Estimates[0].Total)
	}
}

func TestUpdateEstimateFieldLineItemsFromJSONShape(t *testing.T) {
	doc := fixtureDocument()
	updated, err := doc.UpdateEstimateField("est-1", "lineItems", []map[string]any{
		{"description": "Full tear off", "quantity": 10, "unit": "sq", "unitPrice": 100, "total": 1000},
	})
	if err != nil {
		t.Fatalf("update estimate: %v", err)
	}

	want := []LineItem{
		{Description: "Full tear off", Quantity: ptr(10), Unit: "sq", UnitPrice: ptr(100), Total: 1000},
	}
	if diff := cmp.Diff(want, updated.Estimates[0].LineItems); diff != "" {
		t.Fatalf("line items mismatch (-want +got):\n%s", diff)
	}
	if updated.Estimates[0].Subtotal != 1000 {
		t.Fatalf("expected subtotal 1000, got %v", updated.Estimates[0].Subtotal)
	}
}

func TestUpdateEstimateFieldUnknownEstimateNoOp(t *testing.T) {
	doc := fixtureDocument()
	updated, err := doc.UpdateEstimateField("est-gone", "title", "Renamed")
	if err != nil {
		t.Fatalf("update estimate: %v", err)
	}
	if updated.Estimates[0].Title != "Premium Option" {
		t.Fatalf("unknown estimate should be a no-op")
	}
}

func TestUpdateEstimateFieldUnknownField(t *testing.T) {
	doc := fixtureDocument()
	if _, err := doc.UpdateEstimateField("est-1", "discount", 10); !errors.Is(err, ErrInvalidField) {
		t.Fatalf("expected ErrInvalidField, got %v", err)
	}
}

func TestAddLineItem(t *testing.T) {
	doc := fixtureDocument()
	updated, err := doc.AddLineItem("est-1")
	if err != nil {
		t.Fatalf("add line item: %v", err)
	}
	items := updated.Estimates[0].LineItems
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	appended := items[2]
	if appended.Quantity == nil || *appended.Quantity != 1 {
		t.Fatalf("expected default quantity 1")
	}
	if appended.Total != 0 {
		t.Fatalf("expected zero total on new item")
	}
	if updated.Estimates[0].Subtotal != 4400 {
		t.Fatalf("zero-value item should not change the subtotal")
	}
}

func TestRemoveLineItem(t *testing.T) {
	doc := fixtureDocument()
	updated, err := doc.RemoveLineItem("est-1", 1)
	if err != nil {
		t.Fatalf("remove line item: %v", err)
	}
	est := updated.Estimates[0]
	if len(est.LineItems) != 1 {
		t.Fatalf("expected 1 item, got %d", len(est.LineItems))
	}
	if est.Subtotal != 3600 {
		t.Fatalf("expected subtotal 3600, got %v", est.Subtotal)
	}
	if est.Total != 3988 {
		t.Fatalf("expected total 3988, got %v", est.Total)
	}

	updated, err = doc.RemoveLineItem("est-1", 99)
	if err != nil {
		t.Fatalf("remove line item: %v", err)
	}
	if len(updated.Estimates[0].LineItems) != 2 {
		t.Fatalf("out-of-range remove should be a no-op")
	}
}

func TestAddEstimate(t *testing.T) {
	doc := fixtureDocument()
	updated := doc.AddEstimate("est-3")
	if len(updated.Estimates) != 3 {
		t.Fatalf("expected 3 estimates, got %d", len(updated.Estimates))
	}
	added := updated.Estimates[2]
	if added.ID != "est-3" || added.Title != "New Option" {
		t.Fatalf("unexpected new estimate: %+v", added)
	}
	if len(added.LineItems) != 1 {
		t.Fatalf("expected one starter line item")
	}
	if len(doc.Estimates) != 2 {
		t.Fatalf("original document mutated")
	}
}

func TestRemoveEstimate(t *testing.T) {
	doc := fixtureDocument()
	updated := doc.RemoveEstimate("est-1")
	if len(updated.Estimates) != 1 || updated.Estimates[0].ID != "est-2" {
		t.Fatalf("expected est-1 removed")
	}

	updated = doc.RemoveEstimate("est-gone")
	if len(updated.Estimates) != 2 {
		t.Fatalf("unknown estimate remove should be a no-op")
	}
}

func TestReorderEstimates(t *testing.T) {
	doc := fixtureDocument()
	updated := doc.ReorderEstimates(0, 1)
	if updated.Estimates[0].ID != "est-2" || updated.Estimates[1].ID != "est-1" {
		t.Fatalf("expected order est-2, est-1")
	}
	if doc.Estimates[0].ID != "est-1" {
		t.Fatalf("original document mutated")
	}

	for _, move := range [][2]int{{-1, 0}, {0, 5}, {5, 0}, {1, 1}} {
		updated := doc.ReorderEstimates(move[0], move[1])
		if updated.Estimates[0].ID != "est-1" || updated.Estimates[1].ID != "est-2" {
			t.Fatalf("move %v should be a no-op", move)
		}
	}
}

func TestEstimateAndAddOnLookup(t *testing.T) {
	doc := fixtureDocument()
	if est := doc.Estimate("est-2"); est == nil || est.ID != "est-2" {
		t.Fatalf("expected est-2 found")
	}
	if est := doc.Estimate("est-gone"); est != nil {
		t.Fatalf("expected nil for unknown estimate")
	}
	if addOn := doc.AddOn("addon-1"); addOn == nil || addOn.Price != 1200 {
		t.Fatalf("expected addon-1 found")
	}
	if addOn := doc.AddOn("addon-gone"); addOn != nil {
		t.Fatalf("expected nil for unknown add-on")
	}
}
