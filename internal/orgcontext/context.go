// Package orgcontext propagates the resolved tenant identity through
// request contexts.
package orgcontext

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type contextKey string

const orgIDKey contextKey = "org_id"

func WithOrgID(ctx context.Context, orgID int64) context.Context {
	if orgID == 0 {
		return ctx
	}
	return context.WithValue(ctx, orgIDKey, orgID)
}

func OrgIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	value, ok := ctx.Value(orgIDKey).(int64)
	if !ok || value == 0 {
		return 0, false
	}
	return snowflake.ID(value), true
}
