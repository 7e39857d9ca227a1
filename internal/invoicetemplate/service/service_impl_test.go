package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/batidesk/batidesk/internal/invoicetemplate/domain"
	"github.com/batidesk/batidesk/internal/invoicetemplate/repository"
	"github.com/batidesk/batidesk/internal/orgcontext"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*Service, *snowflake.Node) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.InvoiceTemplate{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}
	svc := &Service{
		db:    db,
		log:   zap.NewNop(),
		genID: node,
		repo:  repository.Provide(),
	}
	return svc, node
}

func orgCtx(orgID int64) context.Context {
	return orgcontext.WithOrgID(context.Background(), orgID)
}

func mustCreate(t *testing.T, svc *Service, ctx context.Context, req domain.CreateRequest) *domain.Response {
	t.Helper()
	resp, err := svc.Create(ctx, req)
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	return resp
}

func TestCreateRejectsInvalidType(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Create(orgCtx(1), domain.CreateRequest{
		Name:            "Modèle devis",
		Type:            "contract",
		TemplateFileURL: "https://templates.batidesk.fr/devis.html",
	})
	if !errors.Is(err, domain.ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}

func TestCreateRequiresFileURL(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Create(orgCtx(1), domain.CreateRequest{Name: "Modèle", Type: "devis"})
	if !errors.Is(err, domain.ErrInvalidFileURL) {
		t.Fatalf("expected ErrInvalidFileURL, got %v", err)
	}
}

func TestCreateDefaultsTypeAndFileType(t *testing.T) {
	svc, _ := setupService(t)

	resp := mustCreate(t, svc, orgCtx(1), domain.CreateRequest{
		Name:            "Modèle standard",
		TemplateFileURL: "https://templates.batidesk.fr/standard.html",
	})
	if resp.Type != "all" {
		t.Fatalf("expected type all, got %q", resp.Type)
	}
	if resp.FileType != "html" {
		t.Fatalf("expected file_type html, got %q", resp.FileType)
	}
}

func TestCreateDefaultClearsPreviousDefault(t *testing.T) {
	svc, _ := setupService(t)
	ctx := orgCtx(1)

	first := mustCreate(t, svc, ctx, domain.CreateRequest{
		Name:            "Premier",
		Type:            "facture",
		TemplateFileURL: "https://templates.batidesk.fr/a.html",
		IsDefault:       true,
	})
	second := mustCreate(t, svc, ctx, domain.CreateRequest{
		Name:            "Second",
		Type:            "facture",
		TemplateFileURL: "https://templates.batidesk.fr/b.html",
		IsDefault:       true,
	})
	if !second.IsDefault {
		t.Fatalf("expected second template to be default")
	}

	got, err := svc.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("get first: %v", err)
	}
	if got.IsDefault {
		t.Fatalf("expected first template default flag cleared")
	}
}

func TestSetDefaultMovesFlag(t *testing.T) {
	svc, _ := setupService(t)
	ctx := orgCtx(1)

	first := mustCreate(t, svc, ctx, domain.CreateRequest{
		Name:            "Premier",
		TemplateFileURL: "https://templates.batidesk.fr/a.html",
		IsDefault:       true,
	})
	second := mustCreate(t, svc, ctx, domain.CreateRequest{
		Name:            "Second",
		TemplateFileURL: "https://templates.batidesk.fr/b.html",
	})

	resp, err := svc.SetDefault(ctx, second.ID)
	if err != nil {
		t.Fatalf("set default: %v", err)
	}
	if !resp.IsDefault {
		t.Fatalf("expected second template to become default")
	}

	got, err := svc.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("get first: %v", err)
	}
	if got.IsDefault {
		t.Fatalf("expected first template default flag cleared")
	}
}

func TestTemplatesAreOrgScoped(t *testing.T) {
	svc, _ := setupService(t)

	created := mustCreate(t, svc, orgCtx(1), domain.CreateRequest{
		Name:            "Modèle org 1",
		TemplateFileURL: "https://templates.batidesk.fr/a.html",
	})

	if _, err := svc.GetByID(orgCtx(2), created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound across orgs, got %v", err)
	}

	templates, err := svc.List(orgCtx(2), domain.ListRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(templates) != 0 {
		t.Fatalf("expected empty list for other org, got %d", len(templates))
	}
}

func TestDeleteUnknownTemplate(t *testing.T) {
	svc, node := setupService(t)

	err := svc.Delete(orgCtx(1), node.Generate().String())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateRejectsEmptyName(t *testing.T) {
	svc, _ := setupService(t)
	ctx := orgCtx(1)

	created := mustCreate(t, svc, ctx, domain.CreateRequest{
		Name:            "Modèle",
		TemplateFileURL: "https://templates.batidesk.fr/a.html",
	})

	empty := "   "
	_, err := svc.Update(ctx, domain.UpdateRequest{ID: created.ID, Name: &empty})
	if !errors.Is(err, domain.ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}
