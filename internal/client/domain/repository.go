package domain

import (
	"context"

	authdomain "github.com/batidesk/batidesk/internal/auth/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListClientFilter struct {
	Name   string
	Email  string
	City   string
	Offset int
	Limit  int
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, user *authdomain.User, address *Address) error
	Update(ctx context.Context, db *gorm.DB, user *authdomain.User, address *Address) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*Client, error)
	FindUserByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*authdomain.User, error)
	FindAddressByUserID(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*Address, error)
	List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter ListClientFilter) ([]Client, int64, error)
}
