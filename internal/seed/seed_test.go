package seed

import (
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/robmoran/proposalkit/internal/events"
	proposaldomain "github.com/robmoran/proposalkit/internal/proposal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedDB(t *testing.T) (*gorm.DB, *snowflake.Node) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&proposaldomain.Proposal{}, &events.ProposalEvent{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	node, err := snowflake.NewNode(5)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return db, node
}

func TestEnsureSampleProposalSeedsOnce(t *testing.T) {
	db, node := setupSeedDB(t)

	if err := EnsureSampleProposal(db, node); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := EnsureSampleProposal(db, node); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	var count int64
	if err := db.Model(&proposaldomain.Proposal{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one seeded proposal, got %d", count)
	}
}

func TestSampleDocumentTotalsAreConsistent(t *testing.T) {
	_, node := setupSeedDB(t)
	doc := sampleDocument(node)

	if len(doc.Estimates) != 2 {
		t.Fatalf("expected 2 estimates, got %d", len(doc.Estimates))
	}
	for _, est := range doc.Estimates {
		subtotal, total := proposaldomain.EstimateTotals(est.LineItems, est.Tax)
		if est.Subtotal != subtotal || est.Total != total {
			t.Fatalf("estimate %q carries stale totals: %v/%v vs %v/%v",
				est.Title, est.Subtotal, est.Total, subtotal, total)
		}
		if est.ID == "" {
			t.Fatalf("estimate %q missing id", est.Title)
		}
	}
	for _, addOn := range doc.AddOns {
		if addOn.ID == "" {
			t.Fatalf("add-on %q missing id", addOn.Name)
		}
	}
}
