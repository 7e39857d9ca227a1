package service

import (
	"context"
	"errors"
	"testing"
	"time"

	clientrepository "github.com/batidesk/batidesk/internal/client/repository"
	"github.com/batidesk/batidesk/internal/orgcontext"
	"github.com/batidesk/batidesk/internal/project/domain"
	"github.com/batidesk/batidesk/internal/project/repository"
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
	if err := db.AutoMigrate(&domain.Project{}); err != nil {
		t.Fatalf("migrate projects: %v", err)
	}
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY,
			org_id BIGINT NOT NULL,
			full_name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT,
			company_name TEXT,
			tax_id TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS addresses (
			id INTEGER PRIMARY KEY,
			user_id BIGINT NOT NULL,
			address TEXT,
			city TEXT,
			postal_code TEXT
		)`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create table: %v", err)
		}
	}

	node, err := snowflake.NewNode(2)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	svc := &Service{
		db:         db,
		log:        zap.NewNop(),
		genID:      node,
		repo:       repository.Provide(),
		clientRepo: clientrepository.Provide(),
	}
	ctx := orgcontext.WithOrgID(context.Background(), 1)
	return svc, ctx
}

func insertClient(t *testing.T, db *gorm.DB, id int64, name string) {
	t.Helper()
	if err := db.Exec(
		`INSERT INTO users (id, org_id, full_name, email) VALUES (?, 1, ?, ?)`,
		id, name, name+"@example.fr",
	).Error; err != nil {
		t.Fatalf("insert client: %v", err)
	}
}

func TestCreateProjectDefaultsToPlanned(t *testing.T) {
	svc, ctx := newTestService(t)

	project, err := svc.Create(ctx, domain.CreateProjectRequest{Name: "Extension garage"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if project.Status != domain.StatusPlanned {
		t.Fatalf("expected PLANNED, got %s", project.Status)
	}
	if project.ClientID != nil {
		t.Fatalf("expected detached project, got client %v", project.ClientID)
	}
}

func TestCreateProjectValidatesClient(t *testing.T) {
	svc, ctx := newTestService(t)
	insertClient(t, svc.db, 42, "Louis Martin")

	clientID := "42"
	project, err := svc.Create(ctx, domain.CreateProjectRequest{
		Name:     "Rénovation toiture",
		ClientID: &clientID,
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if project.ClientID == nil || project.ClientID.Int64() != 42 {
		t.Fatalf("expected client 42, got %v", project.ClientID)
	}

	missing := "9999"
	if _, err := svc.Create(ctx, domain.CreateProjectRequest{
		Name:     "Chantier fantôme",
		ClientID: &missing,
	}); !errors.Is(err, domain.ErrInvalidClient) {
		t.Fatalf("expected invalid client, got %v", err)
	}
}

func TestCreateProjectRejectsBadInput(t *testing.T) {
	svc, ctx := newTestService(t)

	if _, err := svc.Create(ctx, domain.CreateProjectRequest{Name: "  "}); !errors.Is(err, domain.ErrInvalidName) {
		t.Fatalf("expected invalid name, got %v", err)
	}
	if _, err := svc.Create(ctx, domain.CreateProjectRequest{Name: "X", Status: "LAUNCHED"}); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected invalid status, got %v", err)
	}

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, -1, 0)
	if _, err := svc.Create(ctx, domain.CreateProjectRequest{
		Name:      "X",
		StartDate: &start,
		EndDate:   &end,
	}); !errors.Is(err, domain.ErrInvalidDates) {
		t.Fatalf("expected invalid dates, got %v", err)
	}
}

func TestUpdateProjectStatusTransition(t *testing.T) {
	svc, ctx := newTestService(t)

	project, err := svc.Create(ctx, domain.CreateProjectRequest{Name: "Maison neuve"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	status := "in_progress"
	updated, err := svc.Update(ctx, domain.UpdateProjectRequest{
		ID:     project.ID.String(),
		Status: &status,
	})
	if err != nil {
		t.Fatalf("update project: %v", err)
	}
	if updated.Status != domain.StatusInProgress {
		t.Fatalf("expected IN_PROGRESS, got %s", updated.Status)
	}
}

func TestDeleteProject(t *testing.T) {
	svc, ctx := newTestService(t)

	project, err := svc.Create(ctx, domain.CreateProjectRequest{Name: "Démolition"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if err := svc.Delete(ctx, project.ID.String()); err != nil {
		t.Fatalf("delete project: %v", err)
	}
	if _, err := svc.GetByID(ctx, project.ID.String()); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestListProjectsByStatus(t *testing.T) {
	svc, ctx := newTestService(t)

	for _, spec := range []struct {
		name   string
		status string
	}{
		{"A", "PLANNED"},
		{"B", "IN_PROGRESS"},
		{"C", "IN_PROGRESS"},
	} {
		if _, err := svc.Create(ctx, domain.CreateProjectRequest{Name: spec.name, Status: spec.status}); err != nil {
			t.Fatalf("create %s: %v", spec.name, err)
		}
	}

	resp, err := svc.List(ctx, domain.ListProjectRequest{Status: "IN_PROGRESS"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.TotalSize != 2 {
		t.Fatalf("expected 2 in-progress projects, got %d", resp.TotalSize)
	}
}
