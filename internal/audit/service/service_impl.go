package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/batidesk/batidesk/internal/audit/domain"
	"github.com/batidesk/batidesk/internal/auditcontext"
	"github.com/batidesk/batidesk/internal/clock"
	"github.com/batidesk/batidesk/internal/orgcontext"
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

func NewService(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("audit.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

// Record appends an entry. Failures are logged and swallowed so audit
// writes never break the calling operation.
func (s *Service) Record(ctx context.Context, req domain.RecordRequest) error {
	action := strings.TrimSpace(req.Action)
	if action == "" {
		return domain.ErrInvalidAction
	}

	entry := domain.AuditLog{
		ID:         s.genID.Generate(),
		ActorType:  string(domain.ActorTypeSystem),
		Action:     action,
		TargetType: strings.TrimSpace(req.TargetType),
		Metadata:   req.Metadata,
		CreatedAt:  s.clock.Now(),
	}
	if entry.Metadata == nil {
		entry.Metadata = map[string]interface{}{}
	}
	if orgID, ok := orgcontext.OrgIDFromContext(ctx); ok {
		entry.OrgID = &orgID
	}
	if actorType, actorID := auditcontext.ActorFromContext(ctx); actorType != "" {
		entry.ActorType = actorType
		if actorID != "" {
			entry.ActorID = &actorID
		}
	}
	if ip := auditcontext.IPAddressFromContext(ctx); ip != "" {
		entry.IPAddress = &ip
	}
	if ua := auditcontext.UserAgentFromContext(ctx); ua != "" {
		entry.UserAgent = &ua
	}
	if requestID := auditcontext.RequestIDFromContext(ctx); requestID != "" {
		entry.Metadata["request_id"] = requestID
	}
	if targetID := strings.TrimSpace(req.TargetID); targetID != "" {
		entry.TargetID = &targetID
	}

	if err := s.repo.Insert(ctx, s.db, &entry); err != nil {
		s.log.Warn("audit write failed",
			zap.String("action", action),
			zap.Error(err),
		)
	}
	return nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return domain.ListResponse{}, domain.ErrInvalidOrganization
	}

	filter := domain.ListFilter{
		OrgID:      orgID,
		Action:     strings.TrimSpace(req.Action),
		TargetType: strings.TrimSpace(req.TargetType),
		TargetID:   strings.TrimSpace(req.TargetID),
		ActorType:  strings.TrimSpace(req.ActorType),
		StartAt:    req.StartAt,
		EndAt:      req.EndAt,
		Cursor:     decodeCursor(req.PageToken),
		Limit:      pagination.Limit(req.PageSize),
	}

	entries, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return domain.ListResponse{}, err
	}

	resp := domain.ListResponse{Entries: entries}
	if len(entries) == filter.Limit && len(entries) > 0 {
		last := entries[len(entries)-1]
		resp.NextPageToken = encodeCursor(domain.AuditCursor{
			ID:        last.ID,
			CreatedAt: last.CreatedAt,
		})
	}
	return resp, nil
}

func encodeCursor(cursor domain.AuditCursor) string {
	raw := fmt.Sprintf("%d/%d", cursor.CreatedAt.UTC().UnixNano(), cursor.ID)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodeCursor(token string) *domain.AuditCursor {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil
	}
	var nanos, id int64
	if _, err := fmt.Sscanf(string(raw), "%d/%d", &nanos, &id); err != nil {
		return nil
	}
	return &domain.AuditCursor{
		ID:        snowflake.ID(id),
		CreatedAt: time.Unix(0, nanos).UTC(),
	}
}
