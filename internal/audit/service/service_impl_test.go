package service

import (
	"context"
	"testing"
	"time"

	"github.com/batidesk/batidesk/internal/audit/domain"
	"github.com/batidesk/batidesk/internal/audit/repository"
	"github.com/batidesk/batidesk/internal/auditcontext"
	"github.com/batidesk/batidesk/internal/clock"
	"github.com/batidesk/batidesk/internal/orgcontext"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, context.Context) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec(
		`CREATE TABLE IF NOT EXISTS audit_logs (
			id INTEGER PRIMARY KEY,
			org_id BIGINT,
			actor_type TEXT NOT NULL,
			actor_id TEXT,
			action TEXT NOT NULL,
			target_type TEXT NOT NULL,
			target_id TEXT,
			metadata TEXT NOT NULL DEFAULT '{}',
			ip_address TEXT,
			user_agent TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	).Error; err != nil {
		t.Fatalf("create audit_logs: %v", err)
	}

	node, err := snowflake.NewNode(4)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	svc := &Service{
		db:    db,
		log:   zap.NewNop(),
		genID: node,
		clock: clock.SystemClock{},
		repo:  repository.Provide(),
	}
	ctx := orgcontext.WithOrgID(context.Background(), 1)
	return svc, ctx
}

func TestRecordCapturesActorFromContext(t *testing.T) {
	svc, ctx := newTestService(t)

	ctx = auditcontext.WithActor(ctx, string(domain.ActorTypeUser), "42")
	ctx = auditcontext.WithIPAddress(ctx, "192.0.2.10")
	if err := svc.Record(ctx, domain.RecordRequest{
		Action:     "invoice.render",
		TargetType: "invoice",
		TargetID:   "77",
	}); err != nil {
		t.Fatalf("record: %v", err)
	}

	resp, err := svc.List(ctx, domain.ListRequest{Action: "invoice.render"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(resp.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(resp.Entries))
	}
	entry := resp.Entries[0]
	if entry.ActorType != "user" || entry.ActorID == nil || *entry.ActorID != "42" {
		t.Fatalf("expected user 42, got %s %v", entry.ActorType, entry.ActorID)
	}
	if entry.IPAddress == nil || *entry.IPAddress != "192.0.2.10" {
		t.Fatalf("expected ip recorded, got %v", entry.IPAddress)
	}
}

func TestRecordRejectsEmptyAction(t *testing.T) {
	svc, ctx := newTestService(t)

	if err := svc.Record(ctx, domain.RecordRequest{Action: "  "}); err != domain.ErrInvalidAction {
		t.Fatalf("expected invalid action, got %v", err)
	}
}

func TestListPaginatesWithCursor(t *testing.T) {
	svc, ctx := newTestService(t)

	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		orgID := snowflake.ID(1)
		entry := domain.AuditLog{
			ID:         snowflake.ID(100 + i),
			OrgID:      &orgID,
			ActorType:  "system",
			Action:     "client.create",
			TargetType: "client",
			Metadata:   map[string]interface{}{},
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		if err := svc.repo.Insert(ctx, svc.db, &entry); err != nil {
			t.Fatalf("insert entry: %v", err)
		}
	}

	first, err := svc.List(ctx, domain.ListRequest{PageSize: 3})
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(first.Entries) != 3 || first.NextPageToken == "" {
		t.Fatalf("expected full first page, got len=%d token=%q", len(first.Entries), first.NextPageToken)
	}
	if first.Entries[0].ID != 104 {
		t.Fatalf("expected newest first, got %d", first.Entries[0].ID)
	}

	rest, err := svc.List(ctx, domain.ListRequest{PageSize: 3, PageToken: first.NextPageToken})
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(rest.Entries) != 2 {
		t.Fatalf("expected 2 remaining entries, got %d", len(rest.Entries))
	}
	if rest.Entries[0].ID != 101 {
		t.Fatalf("expected continuation after cursor, got %d", rest.Entries[0].ID)
	}
}
