package main

import (
	"math/rand"

	"github.com/bwmarrin/snowflake"
	"github.com/robmoran/proposalkit/internal/chat"
	chatdomain "github.com/robmoran/proposalkit/internal/chat/domain"
	"github.com/robmoran/proposalkit/internal/chat/prune"
	"github.com/robmoran/proposalkit/internal/clock"
	"github.com/robmoran/proposalkit/internal/config"
	"github.com/robmoran/proposalkit/internal/events"
	"github.com/robmoran/proposalkit/internal/logger"
	"github.com/robmoran/proposalkit/internal/observability/metrics"
	"github.com/robmoran/proposalkit/internal/observability/tracing"
	"github.com/robmoran/proposalkit/internal/proposal"
	proposaldomain "github.com/robmoran/proposalkit/internal/proposal/domain"
	"github.com/robmoran/proposalkit/internal/seed"
	"github.com/robmoran/proposalkit/internal/server"
	"github.com/robmoran/proposalkit/pkg/db"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		clock.Module,
		db.Module,

		fx.Provide(newSnowflakeNode),
		fx.Provide(newTracingConfig),
		fx.Provide(newMeterProvider),
		fx.Provide(newHTTPMetrics),
		fx.Provide(newPruneConfig),
		fx.Invoke(tracing.NewProvider),

		events.Module,
		proposal.Module,
		chat.Module,
		prune.Module,
		server.Module,

		fx.Invoke(migrate),
		fx.Invoke(seedSampleData),
		fx.Invoke(logStartup),
	)
	app.Run()
}

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(rand.Int63n(1024))
}

func newTracingConfig(cfg config.Config) tracing.Config {
	return tracing.Config{
		Enabled:          cfg.TracingEnabled,
		ServiceName:      cfg.ServiceName,
		ServiceVersion:   cfg.ServiceVersion,
		Environment:      cfg.Environment,
		ExporterEndpoint: cfg.TracingExporterEndpoint,
		ExporterProtocol: cfg.TracingExporterProtocol,
		SamplingRatio:    cfg.TracingSamplingRatio,
	}
}

func newMeterProvider() metric.MeterProvider {
	return otel.GetMeterProvider()
}

func newHTTPMetrics(cfg config.Config, provider metric.MeterProvider) (*metrics.HTTPMetrics, error) {
	return metrics.NewHTTPMetrics(metrics.Config{ServiceName: cfg.ServiceName}, provider)
}

func newPruneConfig(cfg config.Config) prune.Config {
	return prune.Config{
		MaxAge:       cfg.ChatMessageMaxAge,
		PollInterval: cfg.ChatPruneInterval,
	}
}

func migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&proposaldomain.Proposal{},
		&events.ProposalEvent{},
		&chatdomain.Message{},
	)
}

func seedSampleData(cfg config.Config, gdb *gorm.DB, node *snowflake.Node) error {
	if !cfg.SeedSampleDocuments {
		return nil
	}
	return seed.EnsureSampleProposal(gdb, node)
}

func logStartup(cfg config.Config, log *zap.Logger) {
	log.Info("starting proposalkit",
		zap.String("version", version),
		zap.String("environment", cfg.Environment),
		zap.String("addr", cfg.HTTPAddr),
	)
}
