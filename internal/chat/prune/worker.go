package prune

import (
	"context"
	"errors"
	"time"

	chatdomain "github.com/robmoran/proposalkit/internal/chat/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Worker expires stale conversation messages. Chat history is transient
// session state, so anything older than MaxAge is deleted.
type Worker struct {
	db  *gorm.DB
	log *zap.Logger
	cfg Config
}

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Config Config `optional:"true"`
}

func NewWorker(p Params) *Worker {
	return &Worker{
		db:  p.DB,
		log: p.Log.Named("chat.prune"),
		cfg: p.Config.withDefaults(),
	}
}

func (w *Worker) RunForever(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if err := w.RunOnce(); err != nil {
			w.log.Warn("chat prune run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (w *Worker) RunOnce() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := w.pruneBatch(ctx)
	return err
}

func (w *Worker) pruneBatch(ctx context.Context) (int64, error) {
	if w.db == nil {
		return 0, errors.New("prune_worker_unavailable")
	}
	cutoff := time.Now().UTC().Add(-w.cfg.MaxAge)
	result := w.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&chatdomain.Message{})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		w.log.Info("pruned stale chat messages",
			zap.Int64("deleted", result.RowsAffected),
		)
	}
	return result.RowsAffected, nil
}
