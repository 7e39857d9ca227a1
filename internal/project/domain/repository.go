package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListProjectFilter struct {
	Status   Status
	ClientID snowflake.ID
	Name     string
	Offset   int
	Limit    int
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, project *Project) error
	Update(ctx context.Context, db *gorm.DB, project *Project) error
	Delete(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*Project, error)
	List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter ListProjectFilter) ([]Project, int64, error)
	CountByStatus(ctx context.Context, db *gorm.DB, orgID snowflake.ID, status Status) (int64, error)
}
