package chat

import (
	"github.com/robmoran/proposalkit/internal/chat/service"
	"go.uber.org/fx"
)

var Module = fx.Module("chat.service",
	fx.Provide(service.NewCannedResponder),
	fx.Provide(service.NewService),
)
