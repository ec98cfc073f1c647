package prune

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	chatdomain "github.com/robmoran/proposalkit/internal/chat/domain"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupPruneDB(t *testing.T) (*gorm.DB, *snowflake.Node) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&chatdomain.Message{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	node, err := snowflake.NewNode(3)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return db, node
}

func insertMessage(t *testing.T, db *gorm.DB, node *snowflake.Node, age time.Duration) {
	t.Helper()
	msg := chatdomain.Message{
		ID:         node.Generate(),
		ProposalID: node.Generate(),
		Role:       chatdomain.RoleUser,
		Content:    "hello",
		CreatedAt:  time.Now().UTC().Add(-age),
	}
	if err := db.Create(&msg).Error; err != nil {
		t.Fatalf("insert message: %v", err)
	}
}

func TestPruneBatchDeletesOnlyStaleMessages(t *testing.T) {
	db, node := setupPruneDB(t)
	insertMessage(t, db, node, 13*time.Hour)
	insertMessage(t, db, node, time.Minute)

	w := &Worker{
		db:  db,
		log: zap.NewNop(),
		cfg: Config{MaxAge: 12 * time.Hour, PollInterval: time.Minute},
	}

	deleted, err := w.pruneBatch(context.Background())
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 deleted, got %d", deleted)
	}

	var remaining int64
	if err := db.Model(&chatdomain.Message{}).Count(&remaining).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if remaining != 1 {
		t.Fatalf("expected 1 remaining, got %d", remaining)
	}
}

func TestRunOnceWithDefaults(t *testing.T) {
	db, node := setupPruneDB(t)
	insertMessage(t, db, node, 24*time.Hour)

	w := NewWorker(Params{DB: db, Log: zap.NewNop()})
	if err := w.RunOnce(); err != nil {
		t.Fatalf("run once: %v", err)
	}

	var remaining int64
	if err := db.Model(&chatdomain.Message{}).Count(&remaining).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("expected all stale messages pruned, got %d", remaining)
	}
}
