package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robmoran/proposalkit/internal/cache"
	chatdomain "github.com/robmoran/proposalkit/internal/chat/domain"
	"github.com/robmoran/proposalkit/internal/config"
	"github.com/robmoran/proposalkit/internal/logger"
	"github.com/robmoran/proposalkit/internal/observability/metrics"
	"github.com/robmoran/proposalkit/internal/observability/tracing"
	proposaldomain "github.com/robmoran/proposalkit/internal/proposal/domain"
	"github.com/robmoran/proposalkit/internal/requestcontext"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Server owns the HTTP surface of the proposal builder.
type Server struct {
	cfg         config.Config
	log         *zap.Logger
	proposalSvc proposaldomain.Service
	chatSvc     chatdomain.Service
	metrics     *metrics.HTTPMetrics

	docCache cache.Cache[string, proposaldomain.Proposal]
	cacheTTL time.Duration
}

type Params struct {
	fx.In

	Config      config.Config
	Log         *zap.Logger
	ProposalSvc proposaldomain.Service
	ChatSvc     chatdomain.Service
	Metrics     *metrics.HTTPMetrics `optional:"true"`
}

func NewServer(p Params) *Server {
	var docCache cache.Cache[string, proposaldomain.Proposal] = cache.NoopCache[string, proposaldomain.Proposal]{}
	if p.Config.DocumentCacheTTL > 0 {
		docCache = cache.NewTTLCache[string, proposaldomain.Proposal]()
	}
	return &Server{
		cfg:         p.Config,
		log:         p.Log.Named("server"),
		proposalSvc: p.ProposalSvc,
		chatSvc:     p.ChatSvc,
		metrics:     p.Metrics,
		docCache:    docCache,
		cacheTTL:    p.Config.DocumentCacheTTL,
	}
}

// Router builds the gin engine with middleware and all API routes.
func (s *Server) Router() *gin.Engine {
	if s.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(logger.MiddlewareConfig{SkipPaths: []string{"/healthz"}}))
	r.Use(tracing.GinMiddleware(s.cfg.ServiceName))
	if s.metrics != nil {
		r.Use(s.metrics.GinMiddleware())
	}

	r.GET("/healthz", s.Healthz)

	api := r.Group("/api/v1")
	api.Use(actorContext())
	{
		api.GET("/proposals", s.ListProposals)
		api.GET("/proposals/:id", s.GetProposal)
		api.PATCH("/proposals/:id/fields", s.ReplaceProposalField)

		api.POST("/proposals/:id/estimates", s.AddEstimate)
		api.POST("/proposals/:id/estimates/reorder", s.ReorderEstimates)
		api.PATCH("/proposals/:id/estimates/:estimateId", s.UpdateEstimateField)
		api.DELETE("/proposals/:id/estimates/:estimateId", s.RemoveEstimate)

		api.POST("/proposals/:id/estimates/:estimateId/line_items", s.AddLineItem)
		api.PATCH("/proposals/:id/estimates/:estimateId/line_items/:index", s.UpdateLineItem)
		api.DELETE("/proposals/:id/estimates/:estimateId/line_items/:index", s.RemoveLineItem)

		api.POST("/proposals/:id/selection/quote", s.QuoteSelection)
		api.POST("/proposals/:id/selection/authorize", s.AuthorizeSelection)

		api.POST("/proposals/:id/chat", s.PostChatMessage)
		api.GET("/proposals/:id/chat", s.GetChatHistory)
	}

	return r
}

// actorContext threads the acting role and addressed proposal into the
// request context so logs and outbox rows can attribute edits.
func actorContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if role := strings.TrimSpace(c.GetHeader("X-Actor-Role")); role != "" {
			ctx = requestcontext.WithActorRole(ctx, role)
		}
		if id := strings.TrimSpace(c.Param("id")); id != "" {
			ctx = requestcontext.WithProposalID(ctx, id)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Healthz reports process liveness.
func (s *Server) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

var Module = fx.Module("server",
	fx.Provide(NewServer),
	fx.Invoke(runHTTPServer),
)

func runHTTPServer(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				s.log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
