package requestcontext

import "context"

type contextKey string

const (
	requestIDKey  contextKey = "request_id"
	actorRoleKey  contextKey = "actor_role"
	proposalIDKey contextKey = "proposal_id"
)

// Actor roles as seen by the proposal surface. Contractors edit the
// document; homeowners review and select.
const (
	RoleContractor = "contractor"
	RoleHomeowner  = "homeowner"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	value, _ := ctx.Value(requestIDKey).(string)
	return value
}

func WithActorRole(ctx context.Context, role string) context.Context {
	if role == "" {
		return ctx
	}
	return context.WithValue(ctx, actorRoleKey, role)
}

func ActorRoleFromContext(ctx context.Context) string {
	value, _ := ctx.Value(actorRoleKey).(string)
	return value
}

func WithProposalID(ctx context.Context, proposalID string) context.Context {
	if proposalID == "" {
		return ctx
	}
	return context.WithValue(ctx, proposalIDKey, proposalID)
}

func ProposalIDFromContext(ctx context.Context) string {
	value, _ := ctx.Value(proposalIDKey).(string)
	return value
}
