package domain

import "context"

// Service is the single source of truth for proposal documents. Every
// mutation returns the committed proposal with derived totals already
// re-established.
type Service interface {
	List(ctx context.Context) ([]Proposal, error)
	Get(ctx context.Context, id string) (Proposal, error)
	ReplaceField(ctx context.Context, id, path string, value any) (Proposal, error)
	UpdateEstimateField(ctx context.Context, id, estimateID, field string, value any) (Proposal, error)
	UpdateLineItem(ctx context.Context, id, estimateID string, index int, field string, value any) (Proposal, error)
	AddLineItem(ctx context.Context, id, estimateID string) (Proposal, error)
	RemoveLineItem(ctx context.Context, id, estimateID string, index int) (Proposal, error)
	AddEstimate(ctx context.Context, id string) (Proposal, error)
	RemoveEstimate(ctx context.Context, id, estimateID string) (Proposal, error)
	ReorderEstimates(ctx context.Context, id string, from, to int) (Proposal, error)
	RecordAuthorization(ctx context.Context, id, estimateID string, addOnIDs []string, signature string, total float64) error
}
