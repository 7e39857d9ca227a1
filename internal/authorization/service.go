// Package authorization resolves member roles for request-level checks.
package authorization

import (
	"context"

	organizationdomain "github.com/batidesk/batidesk/internal/organization/domain"
	"github.com/bwmarrin/snowflake"
)

// Service answers role questions for a user inside an organization.
// Every handler check reduces to a role lookup on the membership table.
type Service interface {
	RoleOf(ctx context.Context, userID, orgID snowflake.ID) (organizationdomain.Role, error)
	Require(ctx context.Context, userID, orgID snowflake.ID, roles ...organizationdomain.Role) error
	IsAdmin(ctx context.Context, userID, orgID snowflake.ID) bool
	IsClient(ctx context.Context, userID, orgID snowflake.ID) bool
	IsPartner(ctx context.Context, userID, orgID snowflake.ID) bool
}
