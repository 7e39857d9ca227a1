package authorization

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/batidesk/batidesk/internal/cache"
	organizationdomain "github.com/batidesk/batidesk/internal/organization/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const roleCacheTTL = 30 * time.Second

type ServiceImpl struct {
	db    *gorm.DB
	log   *zap.Logger
	roles cache.Cache[string, organizationdomain.Role]
}

func NewService(db *gorm.DB, log *zap.Logger) Service {
	return &ServiceImpl{
		db:    db,
		log:   log.Named("authorization.service"),
		roles: cache.NewTTLCache[string, organizationdomain.Role](),
	}
}

func (s *ServiceImpl) RoleOf(ctx context.Context, userID, orgID snowflake.ID) (organizationdomain.Role, error) {
	if userID == 0 {
		return "", ErrInvalidActor
	}
	if orgID == 0 {
		return "", ErrInvalidOrganization
	}

	key := fmt.Sprintf("%d:%d", orgID, userID)
	if role, ok := s.roles.Get(key); ok {
		return role, nil
	}

	var member organizationdomain.OrganizationMember
	err := s.db.WithContext(ctx).
		Where("org_id = ? AND user_id = ?", orgID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrForbidden
		}
		return "", err
	}

	s.roles.Set(key, member.Role, roleCacheTTL)
	return member.Role, nil
}

// Require succeeds when the user's role is one of the given roles.
func (s *ServiceImpl) Require(ctx context.Context, userID, orgID snowflake.ID, roles ...organizationdomain.Role) error {
	role, err := s.RoleOf(ctx, userID, orgID)
	if err != nil {
		return err
	}
	for _, allowed := range roles {
		if role == allowed {
			return nil
		}
	}
	s.log.Debug("role check denied",
		zap.String("user_id", userID.String()),
		zap.String("org_id", orgID.String()),
		zap.String("role", string(role)),
	)
	return ErrForbidden
}

func (s *ServiceImpl) IsAdmin(ctx context.Context, userID, orgID snowflake.ID) bool {
	role, err := s.RoleOf(ctx, userID, orgID)
	return err == nil && role == organizationdomain.RoleAdmin
}

func (s *ServiceImpl) IsClient(ctx context.Context, userID, orgID snowflake.ID) bool {
	role, err := s.RoleOf(ctx, userID, orgID)
	return err == nil && role == organizationdomain.RoleClient
}

func (s *ServiceImpl) IsPartner(ctx context.Context, userID, orgID snowflake.ID) bool {
	role, err := s.RoleOf(ctx, userID, orgID)
	return err == nil && role == organizationdomain.RolePartner
}
