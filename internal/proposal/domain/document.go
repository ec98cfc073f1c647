package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Mutations on a Document are pure: each returns a new value and leaves
// the receiver untouched. Operations referencing an estimate ID or line
// item index that no longer exists are silent no-ops, since stale
// references arise legitimately from racing UI events. Estimate-level
// derived totals are re-established inside every mutation that touches
// line items or tax, so a committed document is never internally stale.

// UpdateEstimateField replaces one field of the estimate with the given
// ID. An unknown estimate ID is a no-op. An unknown field name fails with
// ErrInvalidField, mirroring the loud treatment of bad paths.
func (d Document) UpdateEstimateField(estimateID, field string, value any) (Document, error) {
	idx := d.estimateIndex(estimateID)
	if idx < 0 {
		return d, nil
	}

	estimates := cloneEstimates(d.Estimates)
	est := &estimates[idx]

	switch field {
	case "title":
		est.Title = asString(value)
	case "description":
		est.Description = asString(value)
	case "notes":
		est.Notes = asString(value)
	case "tax":
		est.Tax = asOptionalNumber(value)
		est.Subtotal, est.Total = EstimateTotals(est.LineItems, est.Tax)
	case "lineItems":
		items, err := asLineItems(value)
		if err != nil {
			return d, err
		}
		est.LineItems = items
		est.Subtotal, est.Total = EstimateTotals(est.LineItems, est.Tax)
	default:
		return d, ErrInvalidField
	}

	d.Estimates = estimates
	return d, nil
}

// UpdateLineItem replaces one field of the line item at index within the
// named estimate. Quantity and unit price mutations recompute the item
// total using the other side's current value (0 when absent). Clearing
// either side to null reverts the item to manual-total mode without
// touching the stored total. Out-of-range indexes and unknown estimate
// IDs are no-ops.
func (d Document) UpdateLineItem(estimateID string, index int, field string, value any) (Document, error) {
	idx := d.estimateIndex(estimateID)
	if idx < 0 {
		return d, nil
	}
	items := d.Estimates[idx].LineItems
	if index < 0 || index >= len(items) {
		return d, nil
	}

	updated := make([]LineItem, len(items))
	copy(updated, items)
	item := &updated[index]

	switch field {
	case "description":
		item.Description = asString(value)
	case "unit":
		item.Unit = asString(value)
	case "notes":
		item.Notes = asString(value)
	case "total":
		item.Total = asNumber(value)
	case "quantity":
		item.Quantity = asOptionalNumber(value)
		if item.Quantity != nil {
			item.Total = *item.Quantity * orZero(item.UnitPrice)
		}
	case "unitPrice":
		item.UnitPrice = asOptionalNumber(value)
		if item.UnitPrice != nil {
			item.Total = orZero(item.Quantity) * *item.UnitPrice
		}
	default:
		return d, ErrInvalidField
	}

	return d.UpdateEstimateField(estimateID, "lineItems", updated)
}

// AddLineItem appends a zero-value line item (quantity 1, total 0) to the
// named estimate and refreshes its totals.
func (d Document) AddLineItem(estimateID string) (Document, error) {
	idx := d.estimateIndex(estimateID)
	if idx < 0 {
		return d, nil
	}
	qty := 1.0
	items := make([]LineItem, 0, len(d.Estimates[idx].LineItems)+1)
	items = append(items, d.Estimates[idx].LineItems...)
	items = append(items, LineItem{Quantity: &qty})
	return d.UpdateEstimateField(estimateID, "lineItems", items)
}

// RemoveLineItem removes the line item at index from the named estimate
// and refreshes its totals. Out-of-range indexes are no-ops.
func (d Document) RemoveLineItem(estimateID string, index int) (Document, error) {
	idx := d.estimateIndex(estimateID)
	if idx < 0 {
		return d, nil
	}
	items := d.Estimates[idx].LineItems
	if index < 0 || index >= len(items) {
		return d, nil
	}
	updated := make([]LineItem, 0, len(items)-1)
	updated = append(updated, items[:index]...)
	updated = append(updated, items[index+1:]...)
	return d.UpdateEstimateField(estimateID, "lineItems", updated)
}

// AddEstimate appends a new estimate carrying one zero-value line item and
// zero totals. The caller supplies the generated identifier.
func (d Document) AddEstimate(id string) Document {
	qty := 1.0
	estimates := cloneEstimates(d.Estimates)
	d.Estimates = append(estimates, Estimate{
		ID:        id,
		Title:     "New Option",
		LineItems: []LineItem{{Quantity: &qty}},
	})
	return d
}

// RemoveEstimate deletes the estimate with the given ID. Unknown IDs are
// no-ops. Whether the removed estimate was open in a consuming view is the
// caller's concern.
func (d Document) RemoveEstimate(id string) Document {
	idx := d.estimateIndex(id)
	if idx < 0 {
		return d
	}
	estimates := make([]Estimate, 0, len(d.Estimates)-1)
	estimates = append(estimates, d.Estimates[:idx]...)
	estimates = append(estimates, d.Estimates[idx+1:]...)
	d.Estimates = estimates
	return d
}

// ReorderEstimates moves the estimate at from to position to. Both indexes
// must be in bounds or the call is a no-op. Identifiers never change, only
// order.
func (d Document) ReorderEstimates(from, to int) Document {
	n := len(d.Estimates)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return d
	}
	estimates := cloneEstimates(d.Estimates)
	moved := estimates[from]
	estimates = append(estimates[:from], estimates[from+1:]...)
	rest := make([]Estimate, 0, n)
	rest = append(rest, estimates[:to]...)
	rest = append(rest, moved)
	rest = append(rest, estimates[to:]...)
	d.Estimates = rest
	return d
}

// Estimate returns the estimate with the given ID, or nil.
func (d Document) Estimate(id string) *Estimate {
	idx := d.estimateIndex(id)
	if idx < 0 {
		return nil
	}
	est := d.Estimates[idx]
	return &est
}

// AddOn returns the add-on with the given ID, or nil.
func (d Document) AddOn(id string) *AddOn {
	for _, addOn := range d.AddOns {
		if addOn.ID == id {
			a := addOn
			return &a
		}
	}
	return nil
}

func (d Document) estimateIndex(id string) int {
	for i, est := range d.Estimates {
		if est.ID == id {
			return i
		}
	}
	return -1
}

func cloneEstimates(estimates []Estimate) []Estimate {
	out := make([]Estimate, len(estimates))
	copy(out, estimates)
	return out
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// asNumber coerces loosely typed numeric input to a float64, defaulting to
// 0 for anything unparseable so derived totals stay well-defined.
func asNumber(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0
		}
		return parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func asOptionalNumber(value any) *float64 {
	if value == nil {
		return nil
	}
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return nil
	}
	n := asNumber(value)
	return &n
}

// asLineItems accepts either typed line items or their JSON shape.
func asLineItems(value any) ([]LineItem, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []LineItem:
		out := make([]LineItem, len(v))
		copy(out, v)
		return out, nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, ErrInvalidField
		}
		var items []LineItem
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, ErrInvalidField
		}
		return items, nil
	}
}
