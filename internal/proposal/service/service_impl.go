package service

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/robmoran/proposalkit/internal/clock"
	"github.com/robmoran/proposalkit/internal/events"
	proposaldomain "github.com/robmoran/proposalkit/internal/proposal/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service owns proposal documents. Every mutation loads the current row,
// applies a pure document transformation, and commits the result with
// derived totals already re-established, so readers never observe a stale
// subtotal. Mutations that turn out to be no-ops (stale estimate IDs,
// out-of-range indexes) commit nothing and publish nothing.
type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock

	genID  *snowflake.Node
	outbox *events.Outbox
}

type ServiceParam struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Clock  clock.Clock
	GenID  *snowflake.Node
	Outbox *events.Outbox
}

func NewService(p ServiceParam) proposaldomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("proposal.service"),
		clock: p.Clock,

		genID:  p.GenID,
		outbox: p.Outbox,
	}
}

func (s *Service) List(ctx context.Context) ([]proposaldomain.Proposal, error) {
	var rows []proposaldomain.Proposal
	err := s.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) Get(ctx context.Context, id string) (proposaldomain.Proposal, error) {
	proposalID, err := parseID(id)
	if err != nil {
		return proposaldomain.Proposal{}, proposaldomain.ErrInvalidID
	}
	return s.load(ctx, s.db, proposalID)
}

func (s *Service) ReplaceField(ctx context.Context, id, path string, value any) (proposaldomain.Proposal, error) {
	return s.mutate(ctx, id,
		func(doc proposaldomain.Document) (proposaldomain.Document, error) {
			return doc.ReplaceField(path, value)
		},
		events.EventFieldReplaced,
		map[string]any{"path": path},
	)
}

func (s *Service) UpdateEstimateField(ctx context.Context, id, estimateID, field string, value any) (proposaldomain.Proposal, error) {
	return s.mutate(ctx, id,
		func(doc proposaldomain.Document) (proposaldomain.Document, error) {
			return doc.UpdateEstimateField(estimateID, field, value)
		},
		events.EventEstimateUpdated,
		events.EstimatePayload{EstimateID: estimateID, Field: field}.ToMap(),
	)
}

func (s *Service) UpdateLineItem(ctx context.Context, id, estimateID string, index int, field string, value any) (proposaldomain.Proposal, error) {
	return s.mutate(ctx, id,
		func(doc proposaldomain.Document) (proposaldomain.Document, error) {
			return doc.UpdateLineItem(estimateID, index, field, value)
		},
		events.EventLineItemUpdated,
		events.EstimatePayload{EstimateID: estimateID, Field: field, LineIndex: &index}.ToMap(),
	)
}

func (s *Service) AddLineItem(ctx context.Context, id, estimateID string) (proposaldomain.Proposal, error) {
	return s.mutate(ctx, id,
		func(doc proposaldomain.Document) (proposaldomain.Document, error) {
			return doc.AddLineItem(estimateID)
		},
		events.EventLineItemAdded,
		events.EstimatePayload{EstimateID: estimateID}.ToMap(),
	)
}

func (s *Service) RemoveLineItem(ctx context.Context, id, estimateID string, index int) (proposaldomain.Proposal, error) {
	return s.mutate(ctx, id,
		func(doc proposaldomain.Document) (proposaldomain.Document, error) {
			return doc.RemoveLineItem(estimateID, index)
		},
		events.EventLineItemRemoved,
		events.EstimatePayload{EstimateID: estimateID, LineIndex: &index}.ToMap(),
	)
}

func (s *Service) AddEstimate(ctx context.Context, id string) (proposaldomain.Proposal, error) {
	estimateID := s.genID.Generate().String()
	return s.mutate(ctx, id,
		func(doc proposaldomain.Document) (proposaldomain.Document, error) {
			return doc.AddEstimate(estimateID), nil
		},
		events.EventEstimateAdded,
		events.EstimatePayload{EstimateID: estimateID}.ToMap(),
	)
}

func (s *Service) RemoveEstimate(ctx context.Context, id, estimateID string) (proposaldomain.Proposal, error) {
	return s.mutate(ctx, id,
		func(doc proposaldomain.Document) (proposaldomain.Document, error) {
			return doc.RemoveEstimate(estimateID), nil
		},
		events.EventEstimateRemoved,
		events.EstimatePayload{EstimateID: estimateID}.ToMap(),
	)
}

func (s *Service) ReorderEstimates(ctx context.Context, id string, from, to int) (proposaldomain.Proposal, error) {
	return s.mutate(ctx, id,
		func(doc proposaldomain.Document) (proposaldomain.Document, error) {
			return doc.ReorderEstimates(from, to), nil
		},
		events.EventEstimatesReordered,
		map[string]any{"from": from, "to": to},
	)
}

// RecordAuthorization writes the selection.signed event. The selection is
// transient view state and is never written into the document itself.
func (s *Service) RecordAuthorization(ctx context.Context, id, estimateID string, addOnIDs []string, signature string, total float64) error {
	proposalID, err := parseID(id)
	if err != nil {
		return proposaldomain.ErrInvalidID
	}
	payload := events.SelectionSignedPayload{
		ProposalID: proposalID.String(),
		EstimateID: estimateID,
		AddOnIDs:   addOnIDs,
		Total:      total,
	}
	if err := s.outbox.Publish(ctx, events.Event{
		ProposalID: proposalID,
		Type:       events.EventSelectionSigned,
		Payload:    payload.ToMap(),
	}); err != nil {
		return err
	}
	s.log.Info("selection authorized",
		zap.String("proposal_id", proposalID.String()),
		zap.String("estimate_id", estimateID),
		zap.Float64("total", total),
	)
	return nil
}

func (s *Service) mutate(
	ctx context.Context,
	id string,
	apply func(proposaldomain.Document) (proposaldomain.Document, error),
	eventType string,
	payload map[string]any,
) (proposaldomain.Proposal, error) {
	proposalID, err := parseID(id)
	if err != nil {
		return proposaldomain.Proposal{}, proposaldomain.ErrInvalidID
	}

	var committed proposaldomain.Proposal
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := s.load(ctx, tx, proposalID)
		if err != nil {
			return err
		}

		doc := row.Document.Data()
		updated, err := apply(doc)
		if err != nil {
			return err
		}
		if reflect.DeepEqual(doc, updated) {
			committed = row
			return nil
		}

		row.Document = datatypes.NewJSONType(updated)
		row.UpdatedAt = s.clock.Now()
		if err := tx.Save(&row).Error; err != nil {
			return err
		}

		eventPayload := map[string]any{"proposal_id": proposalID.String()}
		for key, value := range payload {
			eventPayload[key] = value
		}
		if err := s.outbox.PublishTx(ctx, tx, events.Event{
			ProposalID: proposalID,
			Type:       eventType,
			Payload:    eventPayload,
		}); err != nil {
			return err
		}

		committed = row
		return nil
	})
	if err != nil {
		return proposaldomain.Proposal{}, err
	}
	return committed, nil
}

func (s *Service) load(ctx context.Context, db *gorm.DB, id snowflake.ID) (proposaldomain.Proposal, error) {
	var row proposaldomain.Proposal
	err := db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return proposaldomain.Proposal{}, proposaldomain.ErrProposalNotFound
		}
		return proposaldomain.Proposal{}, err
	}
	return row, nil
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
