package service

import (
	"context"
	"strings"
	"time"

	authdomain "github.com/batidesk/batidesk/internal/auth/domain"
	"github.com/batidesk/batidesk/internal/client/domain"
	"github.com/batidesk/batidesk/internal/orgcontext"
	organizationdomain "github.com/batidesk/batidesk/internal/organization/domain"
	"github.com/batidesk/batidesk/pkg/db/pagination"
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
		log:   p.Log.Named("client.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListClientRequest) (domain.ListClientResponse, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return domain.ListClientResponse{}, domain.ErrInvalidOrganization
	}

	offset := pagination.DecodeToken(req.PageToken)
	limit := pagination.Limit(req.PageSize)

	clients, total, err := s.repo.List(ctx, s.db, orgID, domain.ListClientFilter{
		Name:   strings.TrimSpace(req.Name),
		Email:  strings.TrimSpace(req.Email),
		City:   strings.TrimSpace(req.City),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		return domain.ListClientResponse{}, err
	}

	return domain.ListClientResponse{
		PageInfo: pagination.PageInfo{
			NextPageToken: pagination.EncodeToken(offset, len(clients), total),
			TotalSize:     total,
		},
		Clients: clients,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidOrganization
	}
	clientID, err := domain.ParseID(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	client, err := s.repo.FindByID(ctx, s.db, orgID, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrClientNotFound
	}
	return client, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateClientRequest) (*domain.Client, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidOrganization
	}

	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, domain.ErrInvalidName
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}

	now := time.Now().UTC()
	user := authdomain.User{
		ID:          s.genID.Generate(),
		OrgID:       orgID,
		Provider:    "local",
		ExternalID:  email,
		FullName:    fullName,
		Email:       email,
		Phone:       trimOptional(req.Phone),
		CompanyName: trimOptional(req.CompanyName),
		TaxID:       trimOptional(req.TaxID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	member := organizationdomain.OrganizationMember{
		ID:        s.genID.Generate(),
		OrgID:     orgID,
		UserID:    user.ID,
		Role:      organizationdomain.RoleClient,
		CreatedAt: now,
	}
	address := buildAddress(s.genID.Generate(), user.ID, req.Address, req.City, req.PostalCode, now)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &user, address); err != nil {
			return err
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("client created",
		zap.String("client_id", user.ID.String()),
		zap.String("org_id", orgID.String()),
	)
	return s.repo.FindByID(ctx, s.db, orgID, user.ID)
}

func (s *Service) Update(ctx context.Context, req domain.UpdateClientRequest) (*domain.Client, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidOrganization
	}
	clientID, err := domain.ParseID(req.ID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	user, err := s.repo.FindUserByID(ctx, s.db, orgID, clientID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrClientNotFound
	}

	if req.FullName != nil {
		fullName := strings.TrimSpace(*req.FullName)
		if fullName == "" {
			return nil, domain.ErrInvalidName
		}
		user.FullName = fullName
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" || !strings.Contains(email, "@") {
			return nil, domain.ErrInvalidEmail
		}
		user.Email = email
	}
	if req.Phone != nil {
		user.Phone = trimOptional(req.Phone)
	}
	if req.CompanyName != nil {
		user.CompanyName = trimOptional(req.CompanyName)
	}
	if req.TaxID != nil {
		user.TaxID = trimOptional(req.TaxID)
	}

	now := time.Now().UTC()
	user.UpdatedAt = now

	address, err := s.repo.FindAddressByUserID(ctx, s.db, user.ID)
	if err != nil {
		return nil, err
	}
	if req.Address != nil || req.City != nil || req.PostalCode != nil {
		if address == nil {
			address = buildAddress(s.genID.Generate(), user.ID, req.Address, req.City, req.PostalCode, now)
		} else {
			if req.Address != nil {
				address.Address = trimOptional(req.Address)
			}
			if req.City != nil {
				address.City = trimOptional(req.City)
			}
			if req.PostalCode != nil {
				address.PostalCode = trimOptional(req.PostalCode)
			}
			address.UpdatedAt = now
		}
	} else {
		address = nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Update(ctx, tx, user, address)
	})
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, s.db, orgID, user.ID)
}

// buildAddress returns nil when every postal field is blank, so clients
// without an address never get an empty row.
func buildAddress(id, userID snowflake.ID, street, city, postalCode *string, now time.Time) *domain.Address {
	address := domain.Address{
		ID:         id,
		UserID:     userID,
		Address:    trimOptional(street),
		City:       trimOptional(city),
		PostalCode: trimOptional(postalCode),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if address.Address == nil && address.City == nil && address.PostalCode == nil {
		return nil
	}
	return &address
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
