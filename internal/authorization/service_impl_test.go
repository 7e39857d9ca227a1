package authorization

import (
	"context"
	"errors"
	"testing"

	"github.com/batidesk/batidesk/internal/cache"
	organizationdomain "github.com/batidesk/batidesk/internal/organization/domain"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*ServiceImpl, *gorm.DB) {
	t.Helper()
	db := setupAuthzTestDB(t)
	return &ServiceImpl{
		db:    db,
		log:   zap.NewNop(),
		roles: cache.NewTTLCache[string, organizationdomain.Role](),
	}, db
}

func TestRoleOfAdmin(t *testing.T) {
	svc, db := newTestService(t)
	insertMember(t, db, 1, 10, "ADMIN")

	role, err := svc.RoleOf(context.Background(), 10, 1)
	if err != nil {
		t.Fatalf("expected role, got %v", err)
	}
	if role != organizationdomain.RoleAdmin {
		t.Fatalf("expected ADMIN, got %s", role)
	}
	if !svc.IsAdmin(context.Background(), 10, 1) {
		t.Fatalf("expected IsAdmin true")
	}
	if svc.IsClient(context.Background(), 10, 1) {
		t.Fatalf("expected IsClient false for admin")
	}
}

func TestRequireDeniesWrongRole(t *testing.T) {
	svc, db := newTestService(t)
	insertMember(t, db, 1, 11, "CLIENT")

	err := svc.Require(context.Background(), 11, 1, organizationdomain.RoleAdmin)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := svc.Require(context.Background(), 11, 1, organizationdomain.RoleAdmin, organizationdomain.RoleClient); err != nil {
		t.Fatalf("expected allow for client role, got %v", err)
	}
}

func TestRoleOfDeniesCrossOrg(t *testing.T) {
	svc, db := newTestService(t)
	insertMember(t, db, 1, 12, "ADMIN")

	_, err := svc.RoleOf(context.Background(), 12, 2)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestRoleOfPartner(t *testing.T) {
	svc, db := newTestService(t)
	insertMember(t, db, 1, 13, "PARTNER")

	if !svc.IsPartner(context.Background(), 13, 1) {
		t.Fatalf("expected IsPartner true")
	}
	if svc.IsAdmin(context.Background(), 13, 1) {
		t.Fatalf("expected IsAdmin false for partner")
	}
}

func TestRoleOfUsesCache(t *testing.T) {
	svc, db := newTestService(t)
	insertMember(t, db, 1, 14, "ADMIN")

	if _, err := svc.RoleOf(context.Background(), 14, 1); err != nil {
		t.Fatalf("first lookup: %v", err)
	}

	// Membership deletion is invisible until the cache entry expires.
	if err := db.Exec(`DELETE FROM organization_members WHERE user_id = 14`).Error; err != nil {
		t.Fatalf("delete member: %v", err)
	}
	if _, err := svc.RoleOf(context.Background(), 14, 1); err != nil {
		t.Fatalf("expected cached role, got %v", err)
	}
}

func setupAuthzTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec(
		`CREATE TABLE IF NOT EXISTS organization_members (
			id INTEGER PRIMARY KEY,
			org_id BIGINT NOT NULL,
			user_id BIGINT NOT NULL,
			role TEXT NOT NULL
		)`,
	).Error; err != nil {
		t.Fatalf("create organization_members: %v", err)
	}
	return db
}

func insertMember(t *testing.T, db *gorm.DB, orgID, userID int64, role string) {
	t.Helper()
	if err := db.Exec(
		`INSERT INTO organization_members (id, org_id, user_id, role)
		 VALUES (?, ?, ?, ?)`,
		userID,
		orgID,
		userID,
		role,
	).Error; err != nil {
		t.Fatalf("insert member: %v", err)
	}
}
