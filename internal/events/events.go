package events

// Proposal event types recorded in the outbox.
const (
	EventProposalSeeded     = "proposal.seeded"
	EventFieldReplaced      = "proposal.field_replaced"
	EventEstimateUpdated    = "estimate.updated"
	EventEstimateAdded      = "estimate.added"
	EventEstimateRemoved    = "estimate.removed"
	EventEstimatesReordered = "estimate.reordered"
	EventLineItemUpdated    = "line_item.updated"
	EventLineItemAdded      = "line_item.added"
	EventLineItemRemoved    = "line_item.removed"
	EventSelectionSigned    = "selection.signed"
)

// FieldReplacedPayload captures the minimal data for a path-addressed edit.
type FieldReplacedPayload struct {
	ProposalID string `json:"proposal_id"`
	Path       string `json:"path"`
}

// EstimatePayload captures the minimal data for estimate-level events.
type EstimatePayload struct {
	ProposalID string `json:"proposal_id"`
	EstimateID string `json:"estimate_id,omitempty"`
	Field      string `json:"field,omitempty"`
	LineIndex  *int   `json:"line_index,omitempty"`
}

// ToMap converts a payload into an outbox-friendly map.
func (p EstimatePayload) ToMap() map[string]any {
	payload := map[string]any{
		"proposal_id": p.ProposalID,
	}
	if p.EstimateID != "" {
		payload["estimate_id"] = p.EstimateID
	}
	if p.Field != "" {
		payload["field"] = p.Field
	}
	if p.LineIndex != nil {
		payload["line_index"] = *p.LineIndex
	}
	return payload
}

// SelectionSignedPayload records an authorized selection. The signature
// itself is never stored here, only its presence.
type SelectionSignedPayload struct {
	ProposalID string   `json:"proposal_id"`
	EstimateID string   `json:"estimate_id"`
	AddOnIDs   []string `json:"add_on_ids,omitempty"`
	Total      float64  `json:"total"`
}

// ToMap converts a payload into an outbox-friendly map.
func (p SelectionSignedPayload) ToMap() map[string]any {
	payload := map[string]any{
		"proposal_id": p.ProposalID,
		"estimate_id": p.EstimateID,
		"total":       p.Total,
	}
	if len(p.AddOnIDs) > 0 {
		payload["add_on_ids"] = p.AddOnIDs
	}
	return payload
}
