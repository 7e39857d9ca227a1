package service

import (
	"context"
	"strings"
	"time"

	clientdomain "github.com/batidesk/batidesk/internal/client/domain"
	"github.com/batidesk/batidesk/internal/orgcontext"
	"github.com/batidesk/batidesk/internal/project/domain"
	"github.com/batidesk/batidesk/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Repo       domain.Repository
	ClientRepo clientdomain.Repository
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	repo       domain.Repository
	clientRepo clientdomain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("project.service"),
		genID:      p.GenID,
		repo:       p.Repo,
		clientRepo: p.ClientRepo,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListProjectRequest) (domain.ListProjectResponse, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return domain.ListProjectResponse{}, domain.ErrInvalidOrganization
	}

	filter := domain.ListProjectFilter{
		Name:   strings.TrimSpace(req.Name),
		Offset: pagination.DecodeToken(req.PageToken),
		Limit:  pagination.Limit(req.PageSize),
	}
	if raw := strings.TrimSpace(req.Status); raw != "" {
		status, err := domain.ParseStatus(raw)
		if err != nil {
			return domain.ListProjectResponse{}, err
		}
		filter.Status = status
	}
	if raw := strings.TrimSpace(req.ClientID); raw != "" {
		clientID, err := domain.ParseID(raw)
		if err != nil {
			return domain.ListProjectResponse{}, domain.ErrInvalidClient
		}
		filter.ClientID = clientID
	}

	projects, total, err := s.repo.List(ctx, s.db, orgID, filter)
	if err != nil {
		return domain.ListProjectResponse{}, err
	}
	return domain.ListProjectResponse{
		PageInfo: pagination.PageInfo{
			NextPageToken: pagination.EncodeToken(filter.Offset, len(projects), total),
			TotalSize:     total,
		},
		Projects: projects,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidOrganization
	}
	projectID, err := domain.ParseID(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	project, err := s.repo.FindByID(ctx, s.db, orgID, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrProjectNotFound
	}
	return project, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateProjectRequest) (*domain.Project, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidOrganization
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, domain.ErrInvalidDates
	}

	clientID, err := s.resolveClient(ctx, orgID, req.ClientID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	project := domain.Project{
		ID:          s.genID.Generate(),
		OrgID:       orgID,
		ClientID:    clientID,
		Name:        name,
		Description: trimOptional(req.Description),
		Status:      status,
		Budget:      req.Budget,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, s.db, &project); err != nil {
		return nil, err
	}

	s.log.Info("project created",
		zap.String("project_id", project.ID.String()),
		zap.String("status", string(project.Status)),
	)
	return &project, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateProjectRequest) (*domain.Project, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidOrganization
	}
	projectID, err := domain.ParseID(req.ID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	project, err := s.repo.FindByID(ctx, s.db, orgID, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrProjectNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		project.Name = name
	}
	if req.Description != nil {
		project.Description = trimOptional(req.Description)
	}
	if req.Status != nil {
		status, err := domain.ParseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		project.Status = status
	}
	if req.ClientID != nil {
		clientID, err := s.resolveClient(ctx, orgID, req.ClientID)
		if err != nil {
			return nil, err
		}
		project.ClientID = clientID
	}
	if req.Budget != nil {
		project.Budget = req.Budget
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = req.EndDate
	}
	if project.StartDate != nil && project.EndDate != nil && project.EndDate.Before(*project.StartDate) {
		return nil, domain.ErrInvalidDates
	}
	project.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return domain.ErrInvalidOrganization
	}
	projectID, err := domain.ParseID(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	project, err := s.repo.FindByID(ctx, s.db, orgID, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return domain.ErrProjectNotFound
	}
	return s.repo.Delete(ctx, s.db, orgID, projectID)
}

// resolveClient checks the referenced client exists in the same
// organization. An empty reference detaches the project.
func (s *Service) resolveClient(ctx context.Context, orgID snowflake.ID, raw *string) (*snowflake.ID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	clientID, err := domain.ParseID(*raw)
	if err != nil {
		return nil, domain.ErrInvalidClient
	}
	client, err := s.clientRepo.FindByID(ctx, s.db, orgID, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrInvalidClient
	}
	return &clientID, nil
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
