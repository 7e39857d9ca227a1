package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/batidesk/batidesk/internal/apikey/domain"
	"github.com/batidesk/batidesk/internal/apikey/repository"
	"github.com/batidesk/batidesk/internal/clock"
	"github.com/batidesk/batidesk/internal/orgcontext"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.APIKey{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}
	return &Service{
		db:    db,
		log:   zap.NewNop(),
		genID: node,
		clock: clock.FixedClock{At: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)},
		repo:  repository.Provide(),
	}
}

func orgCtx(orgID int64) context.Context {
	return orgcontext.WithOrgID(context.Background(), orgID)
}

func TestCreateReturnsSecretOnce(t *testing.T) {
	svc := setupService(t)

	resp, err := svc.Create(orgCtx(1), domain.CreateRequest{Name: "chantier-sync"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(resp.Secret, "bk_") {
		t.Fatalf("expected bk_ secret prefix, got %q", resp.Secret)
	}
	if resp.Key.KeyHash != domain.HashAPIKey(resp.Secret) {
		t.Fatalf("stored hash does not match returned secret")
	}
	if resp.Key.KeyHash == resp.Secret {
		t.Fatalf("raw secret must not be stored")
	}
	if !resp.Key.IsActive {
		t.Fatalf("new key should be active")
	}
}

func TestCreateRequiresName(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Create(orgCtx(1), domain.CreateRequest{Name: "   "})
	if !errors.Is(err, domain.ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestListIsOrgScoped(t *testing.T) {
	svc := setupService(t)

	if _, err := svc.Create(orgCtx(1), domain.CreateRequest{Name: "org1"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	keys, err := svc.List(orgCtx(2))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("expected no keys for other org, got %d", len(keys))
	}
}

func TestRevokeIsIdempotent(t *testing.T) {
	svc := setupService(t)
	ctx := orgCtx(1)

	resp, err := svc.Create(ctx, domain.CreateRequest{Name: "chantier-sync"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Revoke(ctx, resp.Key.KeyID); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if err := svc.Revoke(ctx, resp.Key.KeyID); err != nil {
		t.Fatalf("second revoke should be a no-op, got %v", err)
	}

	keys, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(keys) != 1 || keys[0].IsActive {
		t.Fatalf("expected one inactive key, got %+v", keys)
	}
}

func TestRevokeUnknownKey(t *testing.T) {
	svc := setupService(t)

	err := svc.Revoke(orgCtx(1), "key_missing")
	if !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}
