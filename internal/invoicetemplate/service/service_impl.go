package service

import (
	"context"
	"strings"
	"time"

	"github.com/batidesk/batidesk/internal/invoicetemplate/domain"
	"github.com/batidesk/batidesk/internal/orgcontext"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("invoicetemplate.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidOrganization
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	templateType, err := normalizeType(req.Type)
	if err != nil {
		return nil, err
	}
	fileType, err := normalizeFileType(req.FileType)
	if err != nil {
		return nil, err
	}
	fileURL := strings.TrimSpace(req.TemplateFileURL)
	if fileURL == "" {
		return nil, domain.ErrInvalidFileURL
	}

	now := time.Now().UTC()
	tmpl := domain.InvoiceTemplate{
		ID:              s.genID.Generate(),
		OrgID:           orgID,
		Name:            name,
		Type:            templateType,
		FileType:        fileType,
		TemplateFileURL: &fileURL,
		IsDefault:       req.IsDefault,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tmpl.IsDefault {
			if err := s.repo.ClearDefault(ctx, tx, orgID); err != nil {
				return err
			}
		}
		return s.repo.Insert(ctx, tx, &tmpl)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("invoice template created",
		zap.String("template_id", tmpl.ID.String()),
		zap.String("type", tmpl.Type),
	)
	return toResponse(&tmpl), nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidOrganization
	}

	templates, err := s.repo.List(ctx, s.db, orgID, req)
	if err != nil {
		return nil, err
	}
	responses := make([]domain.Response, 0, len(templates))
	for i := range templates {
		responses = append(responses, *toResponse(&templates[i]))
	}
	return responses, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Response, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidOrganization
	}
	templateID, err := domain.ParseID(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	tmpl, err := s.repo.FindByID(ctx, s.db, orgID, templateID)
	if err != nil {
		return nil, err
	}
	if tmpl == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(tmpl), nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidOrganization
	}
	templateID, err := domain.ParseID(req.ID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	tmpl, err := s.repo.FindByID(ctx, s.db, orgID, templateID)
	if err != nil {
		return nil, err
	}
	if tmpl == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		tmpl.Name = name
	}
	if req.Type != nil {
		templateType, err := normalizeType(*req.Type)
		if err != nil {
			return nil, err
		}
		tmpl.Type = templateType
	}
	if req.FileType != nil {
		fileType, err := normalizeFileType(*req.FileType)
		if err != nil {
			return nil, err
		}
		tmpl.FileType = fileType
	}
	if req.TemplateFileURL != nil {
		fileURL := strings.TrimSpace(*req.TemplateFileURL)
		if fileURL == "" {
			return nil, domain.ErrInvalidFileURL
		}
		tmpl.TemplateFileURL = &fileURL
	}
	tmpl.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, tmpl); err != nil {
		return nil, err
	}
	return toResponse(tmpl), nil
}

func (s *Service) SetDefault(ctx context.Context, id string) (*domain.Response, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidOrganization
	}
	templateID, err := domain.ParseID(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	tmpl, err := s.repo.FindByID(ctx, s.db, orgID, templateID)
	if err != nil {
		return nil, err
	}
	if tmpl == nil {
		return nil, domain.ErrNotFound
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.ClearDefault(ctx, tx, orgID); err != nil {
			return err
		}
		tmpl.IsDefault = true
		tmpl.UpdatedAt = time.Now().UTC()
		return s.repo.Update(ctx, tx, tmpl)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(tmpl), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return domain.ErrInvalidOrganization
	}
	templateID, err := domain.ParseID(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	tmpl, err := s.repo.FindByID(ctx, s.db, orgID, templateID)
	if err != nil {
		return err
	}
	if tmpl == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, orgID, templateID)
}

func normalizeType(raw string) (string, error) {
	templateType := strings.ToLower(strings.TrimSpace(raw))
	switch templateType {
	case "", "all":
		return "all", nil
	case "devis", "facture":
		return templateType, nil
	default:
		return "", domain.ErrInvalidType
	}
}

func normalizeFileType(raw string) (domain.TemplateFileType, error) {
	fileType := strings.ToLower(strings.TrimSpace(raw))
	switch fileType {
	case "", "html":
		return domain.TemplateFileTypeHTML, nil
	case "pdf":
		return domain.TemplateFileTypePDF, nil
	default:
		return "", domain.ErrInvalidFileType
	}
}

func toResponse(tmpl *domain.InvoiceTemplate) *domain.Response {
	return &domain.Response{
		ID:              tmpl.ID.String(),
		OrgID:           tmpl.OrgID.String(),
		Name:            tmpl.Name,
		Type:            tmpl.Type,
		FileType:        string(tmpl.FileType),
		TemplateFileURL: tmpl.TemplateFileURL,
		IsDefault:       tmpl.IsDefault,
		CreatedAt:       tmpl.CreatedAt,
		UpdatedAt:       tmpl.UpdatedAt,
	}
}
