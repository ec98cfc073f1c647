package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/robmoran/proposalkit/internal/clock"
	"github.com/robmoran/proposalkit/internal/events"
	proposaldomain "github.com/robmoran/proposalkit/internal/proposal/domain"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2025, 12, 19, 10, 0, 0, 0, time.UTC)

func setupService(t *testing.T) (*Service, *gorm.DB, *snowflake.Node) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&proposaldomain.Proposal{}, &events.ProposalEvent{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	svc := &Service{
		db:     db,
		log:    zap.NewNop(),
		clock:  clock.FixedClock{At: fixedNow},
		genID:  node,
		outbox: events.NewOutbox(db, node),
	}
	return svc, db, node
}

func insertProposal(t *testing.T, db *gorm.DB, node *snowflake.Node, doc proposaldomain.Document) proposaldomain.Proposal {
	t.Helper()
	row := proposaldomain.Proposal{
		ID:        node.Generate(),
		Document:  datatypes.NewJSONType(doc),
		CreatedAt: fixedNow.Add(-time.Hour),
		UpdatedAt: fixedNow.Add(-time.Hour),
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("insert proposal: %v", err)
	}
	return row
}

func testDocument() proposaldomain.Document {
	qty := 2400.0
	price := 1.50
	tax := 388.0
	return proposaldomain.Document{
		Estimates: []proposaldomain.Estimate{
			{
				ID:    "est-1",
				Title: "Premium Option",
				LineItems: []proposaldomain.LineItem{
					{Description: "Tear off", Quantity: &qty, Unit: "sq ft", UnitPrice: &price, Total: 3600},
					{Description: "Deck repair", Total: 800},
				},
				Subtotal: 4400,
				Tax:      &tax,
				Total:    4788,
			},
		},
		AddOns: []proposaldomain.AddOn{{ID: "addon-1", Name: "Gutter Guards", Price: 1200}},
	}
}

func countEvents(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&events.ProposalEvent{}).Count(&count).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	return count
}

func TestGetRejectsMalformedID(t *testing.T) {
	svc, _, _ := setupService(t)
	_, err := svc.Get(context.Background(), "not-a-snowflake")
	if !errors.Is(err, proposaldomain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestGetUnknownProposal(t *testing.T) {
	svc, _, node := setupService(t)
	_, err := svc.Get(context.Background(), node.Generate().String())
	if !errors.Is(err, proposaldomain.ErrProposalNotFound) {
		t.Fatalf("expected ErrProposalNotFound, got %v", err)
	}
}

func TestReplaceFieldCommitsAndPublishes(t *testing.T) {
	svc, db, node := setupService(t)
	row := insertProposal(t, db, node, testDocument())

	updated, err := svc.ReplaceField(context.Background(), row.ID.String(), "homeowner.name", "John & Sarah Smith")
	if err != nil {
		t.Fatalf("replace field: %v", err)
	}
	if got := updated.Document.Data().TitlePage.Homeowner.Name; got != "John & Sarah Smith" {
		t.Fatalf("expected homeowner name set, got %q", got)
	}
	if !updated.UpdatedAt.Equal(fixedNow) {
		t.Fatalf("expected UpdatedAt %v, got %v", fixedNow, updated.UpdatedAt)
	}

	reloaded, err := svc.Get(context.Background(), row.ID.String())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := reloaded.Document.Data().TitlePage.Homeowner.Name; got != "John & Sarah Smith" {
		t.Fatalf("expected committed change, got %q", got)
	}

	var event events.ProposalEvent
	if err := db.Where("type = ?", events.EventFieldReplaced).First(&event).Error; err != nil {
		t.Fatalf("load event: %v", err)
	}
	if event.ProposalID != row.ID {
		t.Fatalf("event recorded for wrong proposal")
	}
}

func TestReplaceFieldInvalidPath(t *testing.T) {
	svc, db, node := setupService(t)
	row := insertProposal(t, db, node, testDocument())

	_, err := svc.ReplaceField(context.Background(), row.ID.String(), "titlePage.bogus", "x")
	if !errors.Is(err, proposaldomain.ErrInvalidPath) {
		t.Fatalf("expected ErrInvalidPath, got %v", err)
	}
	if got := countEvents(t, db); got != 0 {
		t.Fatalf("failed mutation must not publish, got %d events", got)
	}
}

func TestStaleEstimateMutationCommitsNothing(t *testing.T) {
	svc, db, node := setupService(t)
	row := insertProposal(t, db, node, testDocument())

	updated, err := svc.UpdateEstimateField(context.Background(), row.ID.String(), "est-gone", "title", "Renamed")
	if err != nil {
		t.Fatalf("update estimate: %v", err)
	}
	if !updated.UpdatedAt.Equal(row.UpdatedAt) {
		t.Fatalf("no-op mutation must not touch UpdatedAt")
	}
	if got := countEvents(t, db); got != 0 {
		t.Fatalf("no-op mutation must not publish, got %d events", got)
	}
}

func TestUpdateLineItemRecomputesPersistedTotals(t *testing.T) {
	svc, db, node := setupService(t)
	row := insertProposal(t, db, node, testDocument())

	updated, err := svc.UpdateLineItem(context.Background(), row.ID.String(), "est-1", 0, "quantity", 3000)
	if err != nil {
		t.Fatalf("update line item: %v", err)
	}

	est := updated.Document.Data().Estimates[0]
	if est.LineItems[0].Total != 4500 {
		t.Fatalf("expected item total 4500, got %v", est.LineItems[0].Total)
	}
	if est.Subtotal != 5300 || est.Total != 5688 {
		t.Fatalf("expected subtotal 5300 / total 5688, got %v / %v", est.Subtotal, est.Total)
	}

	var event events.ProposalEvent
	if err := db.Where("type = ?", events.EventLineItemUpdated).First(&event).Error; err != nil {
		t.Fatalf("load event: %v", err)
	}
}

func TestAddEstimateGeneratesIdentifier(t *testing.T) {
	svc, db, node := setupService(t)
	row := insertProposal(t, db, node, testDocument())

	updated, err := svc.AddEstimate(context.Background(), row.ID.String())
	if err != nil {
		t.Fatalf("add estimate: %v", err)
	}

	estimates := updated.Document.Data().Estimates
	if len(estimates) != 2 {
		t.Fatalf("expected 2 estimates, got %d", len(estimates))
	}
	added := estimates[1]
	if added.ID == "" || added.ID == "est-1" {
		t.Fatalf("expected a fresh generated id, got %q", added.ID)
	}
	if added.Title != "New Option" {
		t.Fatalf("unexpected title %q", added.Title)
	}
}

func TestReorderEstimatesPersistsOrder(t *testing.T) {
	svc, db, node := setupService(t)
	doc := testDocument()
	doc = doc.AddEstimate("est-2")
	row := insertProposal(t, db, node, doc)

	updated, err := svc.ReorderEstimates(context.Background(), row.ID.String(), 1, 0)
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	estimates := updated.Document.Data().Estimates
	if estimates[0].ID != "est-2" || estimates[1].ID != "est-1" {
		t.Fatalf("expected order est-2, est-1")
	}
}

func TestRecordAuthorizationPublishesWithoutSignature(t *testing.T) {
	svc, db, node := setupService(t)
	row := insertProposal(t, db, node, testDocument())

	err := svc.RecordAuthorization(context.Background(), row.ID.String(), "est-1", []string{"addon-1"}, "John Smith", 5988)
	if err != nil {
		t.Fatalf("record authorization: %v", err)
	}

	var event events.ProposalEvent
	if err := db.Where("type = ?", events.EventSelectionSigned).First(&event).Error; err != nil {
		t.Fatalf("load event: %v", err)
	}
	if _, ok := event.Payload["signature"]; ok {
		t.Fatalf("signature must never be stored")
	}
	if event.Payload["estimate_id"] != "est-1" {
		t.Fatalf("unexpected payload: %v", event.Payload)
	}
}
