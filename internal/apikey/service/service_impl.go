package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/batidesk/batidesk/internal/apikey/domain"
	"github.com/batidesk/batidesk/internal/clock"
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
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("apikey.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.CreateResponse, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidOrganization
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	secret, err := domain.NewSecret()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	id := s.genID.Generate()
	key := domain.APIKey{
		ID:        id,
		OrgID:     orgID,
		Name:      name,
		KeyID:     fmt.Sprintf("key_%s", id.String()),
		KeyHash:   domain.HashAPIKey(secret),
		IsActive:  true,
		ExpiresAt: req.ExpiresAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, &key); err != nil {
		return nil, err
	}

	s.log.Info("api key created",
		zap.String("key_id", key.KeyID),
		zap.String("org_id", orgID.String()),
	)
	return &domain.CreateResponse{Key: key, Secret: secret}, nil
}

func (s *Service) List(ctx context.Context) ([]domain.APIKey, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidOrganization
	}
	return s.repo.List(ctx, s.db, orgID)
}

func (s *Service) Revoke(ctx context.Context, keyID string) error {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return domain.ErrInvalidOrganization
	}

	key, err := s.repo.FindByKeyID(ctx, s.db, orgID, strings.TrimSpace(keyID))
	if err != nil {
		return err
	}
	if key == nil {
		return domain.ErrKeyNotFound
	}
	if !key.IsActive {
		return nil
	}

	key.IsActive = false
	key.UpdatedAt = s.clock.Now()
	return s.repo.Update(ctx, s.db, key)
}
