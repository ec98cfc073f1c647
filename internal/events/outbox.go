package events

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/robmoran/proposalkit/internal/requestcontext"
	"go.uber.org/fx"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Event describes a proposal event to store in the outbox.
type Event struct {
	ProposalID snowflake.ID
	Type       string
	Payload    map[string]any
}

// ProposalEvent is the persisted outbox row.
type ProposalEvent struct {
	ID         snowflake.ID      `gorm:"primaryKey"`
	ProposalID snowflake.ID      `gorm:"not null;index"`
	Type       string            `gorm:"type:text;not null"`
	Payload    datatypes.JSONMap `gorm:"not null"`
	RequestID  string            `gorm:"type:text"`
	ActorRole  string            `gorm:"type:text"`
	CreatedAt  time.Time         `gorm:"not null"`
}

// TableName sets the database table name.
func (ProposalEvent) TableName() string { return "proposal_events" }

// Outbox inserts proposal events into the proposal_events table.
type Outbox struct {
	db    *gorm.DB
	genID *snowflake.Node
}

func NewOutbox(db *gorm.DB, genID *snowflake.Node) *Outbox {
	return &Outbox{db: db, genID: genID}
}

// Publish stores an event using the default database connection.
func (o *Outbox) Publish(ctx context.Context, event Event) error {
	return o.publish(ctx, o.db, event)
}

// PublishTx stores an event using an existing transaction.
func (o *Outbox) PublishTx(ctx context.Context, tx *gorm.DB, event Event) error {
	if tx == nil {
		return errors.New("missing_transaction")
	}
	return o.publish(ctx, tx, event)
}

func (o *Outbox) publish(ctx context.Context, db *gorm.DB, event Event) error {
	if o == nil || db == nil || o.genID == nil {
		return errors.New("outbox_unavailable")
	}
	if event.ProposalID == 0 {
		return errors.New("invalid_proposal_id")
	}
	name := strings.TrimSpace(event.Type)
	if name == "" {
		return errors.New("missing_event_type")
	}

	payload := datatypes.JSONMap{}
	for key, value := range event.Payload {
		if strings.TrimSpace(key) == "" {
			continue
		}
		payload[key] = value
	}

	row := ProposalEvent{
		ID:         o.genID.Generate(),
		ProposalID: event.ProposalID,
		Type:       name,
		Payload:    payload,
		RequestID:  requestcontext.RequestIDFromContext(ctx),
		ActorRole:  requestcontext.ActorRoleFromContext(ctx),
		CreatedAt:  time.Now().UTC(),
	}
	return db.WithContext(ctx).Create(&row).Error
}

var Module = fx.Module("events",
	fx.Provide(NewOutbox),
)
