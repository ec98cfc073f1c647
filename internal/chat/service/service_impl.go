package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	chatdomain "github.com/robmoran/proposalkit/internal/chat/domain"
	"github.com/robmoran/proposalkit/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock

	genID     *snowflake.Node
	responder chatdomain.Responder
}

type ServiceParam struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Clock     clock.Clock
	GenID     *snowflake.Node
	Responder chatdomain.Responder
}

func NewService(p ServiceParam) chatdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("chat.service"),
		clock: p.Clock,

		genID:     p.GenID,
		responder: p.Responder,
	}
}

// Send stores the user message, asks the responder for a reply, and stores
// that too. The user message is committed before the responder runs so a
// torn-down caller still leaves a consistent log.
func (s *Service) Send(ctx context.Context, proposalID, content string) (chatdomain.Message, error) {
	id, err := parseID(proposalID)
	if err != nil {
		return chatdomain.Message{}, chatdomain.ErrInvalidProposal
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return chatdomain.Message{}, chatdomain.ErrEmptyMessage
	}

	userMsg := chatdomain.Message{
		ID:         s.genID.Generate(),
		ProposalID: id,
		Role:       chatdomain.RoleUser,
		Content:    content,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&userMsg).Error; err != nil {
		return chatdomain.Message{}, err
	}

	reply, err := s.responder.Respond(ctx, content)
	if err != nil {
		return chatdomain.Message{}, err
	}

	assistantMsg := chatdomain.Message{
		ID:         s.genID.Generate(),
		ProposalID: id,
		Role:       chatdomain.RoleAssistant,
		Content:    reply,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&assistantMsg).Error; err != nil {
		return chatdomain.Message{}, err
	}
	return assistantMsg, nil
}

func (s *Service) History(ctx context.Context, proposalID string) ([]chatdomain.Message, error) {
	id, err := parseID(proposalID)
	if err != nil {
		return nil, chatdomain.ErrInvalidProposal
	}
	var messages []chatdomain.Message
	err = s.db.WithContext(ctx).
		Where("proposal_id = ?", id).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
