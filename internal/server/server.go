// Package server exposes the HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	apikeydomain "github.com/batidesk/batidesk/internal/apikey/domain"
	auditdomain "github.com/batidesk/batidesk/internal/audit/domain"
	"github.com/batidesk/batidesk/internal/auditcontext"
	"github.com/batidesk/batidesk/internal/authorization"
	clientdomain "github.com/batidesk/batidesk/internal/client/domain"
	"github.com/batidesk/batidesk/internal/config"
	dashboarddomain "github.com/batidesk/batidesk/internal/dashboard/domain"
	invoicedomain "github.com/batidesk/batidesk/internal/invoice/domain"
	templatedomain "github.com/batidesk/batidesk/internal/invoicetemplate/domain"
	"github.com/batidesk/batidesk/internal/observability/logger"
	"github.com/batidesk/batidesk/internal/observability/metrics"
	organizationdomain "github.com/batidesk/batidesk/internal/organization/domain"
	"github.com/batidesk/batidesk/internal/orgcontext"
	paymentdomain "github.com/batidesk/batidesk/internal/payment/domain"
	projectdomain "github.com/batidesk/batidesk/internal/project/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HeaderOrg carries the caller's organization on multi-tenant requests.
const HeaderOrg = "X-Org-Id"

// HeaderUser identifies the acting user for role checks and the audit
// trail.
const HeaderUser = "X-User-Id"

type Params struct {
	fx.In

	Config       config.Config
	DB           *gorm.DB
	Log          *zap.Logger
	InvoiceSvc   invoicedomain.Service
	TemplateSvc  templatedomain.Service
	ClientSvc    clientdomain.Service
	ProjectSvc   projectdomain.Service
	PaymentSvc   paymentdomain.Service
	DashboardSvc dashboarddomain.Service
	AuditSvc     auditdomain.Service
	APIKeySvc    apikeydomain.Service
	AuthzSvc     authorization.Service
	HTTPMetrics  *metrics.HTTPMetrics `optional:"true"`
}

type Server struct {
	cfg          config.Config
	db           *gorm.DB
	log          *zap.Logger
	invoiceSvc   invoicedomain.Service
	templateSvc  templatedomain.Service
	clientSvc    clientdomain.Service
	projectSvc   projectdomain.Service
	paymentSvc   paymentdomain.Service
	dashboardSvc dashboarddomain.Service
	auditSvc     auditdomain.Service
	apikeySvc    apikeydomain.Service
	authzSvc     authorization.Service
	httpMetrics  *metrics.HTTPMetrics
	limiter      *rateLimiter
}

func NewServer(p Params) *Server {
	return &Server{
		cfg:          p.Config,
		db:           p.DB,
		log:          p.Log.Named("server"),
		invoiceSvc:   p.InvoiceSvc,
		templateSvc:  p.TemplateSvc,
		clientSvc:    p.ClientSvc,
		projectSvc:   p.ProjectSvc,
		paymentSvc:   p.PaymentSvc,
		dashboardSvc: p.DashboardSvc,
		auditSvc:     p.AuditSvc,
		apikeySvc:    p.APIKeySvc,
		authzSvc:     p.AuthzSvc,
		httpMetrics:  p.HTTPMetrics,
		limiter:      newRateLimiter(120, time.Minute),
	}
}

// NewEngine builds the gin engine with shared middleware and routes.
func NewEngine(s *Server) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	engine.Use(metrics.GinMiddleware(s.httpMetrics))
	s.RegisterRoutes(engine)
	return engine
}

func (s *Server) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/healthz", s.Health)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")
	api.Use(s.RateLimited())
	api.Use(s.OrgResolver())
	{
		api.GET("/dashboard", s.Dashboard)

		api.GET("/clients", s.ListClients)
		api.POST("/clients", s.CreateClient)
		api.GET("/clients/:id", s.GetClientByID)
		api.PATCH("/clients/:id", s.UpdateClient)

		api.GET("/projects", s.ListProjects)
		api.POST("/projects", s.CreateProject)
		api.GET("/projects/:id", s.GetProjectByID)
		api.PATCH("/projects/:id", s.UpdateProject)
		api.DELETE("/projects/:id", s.DeleteProject)

		api.GET("/invoices", s.ListInvoices)
		api.POST("/invoices", s.CreateInvoice)
		api.GET("/invoices/:id", s.GetInvoiceByID)
		api.PATCH("/invoices/:id", s.UpdateInvoice)
		api.GET("/invoices/:id/document", s.RenderInvoiceDocument)
		api.GET("/invoices/:id/settlement", s.GetInvoiceSettlement)

		api.GET("/invoice-templates", s.ListInvoiceTemplates)
		api.POST("/invoice-templates", s.CreateInvoiceTemplate)
		api.GET("/invoice-templates/:id", s.GetInvoiceTemplateByID)
		api.PATCH("/invoice-templates/:id", s.UpdateInvoiceTemplate)
		api.POST("/invoice-templates/:id/default", s.SetDefaultInvoiceTemplate)
		api.DELETE("/invoice-templates/:id", s.DeleteInvoiceTemplate)

		api.GET("/payments", s.ListPayments)
		api.POST("/payments", s.RecordPayment)

		admin := api.Group("")
		admin.Use(s.RequireAdmin())
		{
			admin.GET("/audit-logs", s.ListAuditLogs)

			admin.GET("/api-keys", s.ListAPIKeys)
			admin.POST("/api-keys", s.CreateAPIKey)
			admin.DELETE("/api-keys/:id", s.RevokeAPIKey)
		}
	}
}

// OrgResolver resolves the tenant from the X-Org-Id header. Self-hosted
// deployments fall back to the default organization.
func (s *Server) OrgResolver() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := orgcontext.OrgIDFromContext(c.Request.Context()); ok {
			c.Next()
			return
		}

		header := strings.TrimSpace(c.GetHeader(HeaderOrg))
		var orgID int64
		if header != "" {
			parsed, err := strconv.ParseInt(header, 10, 64)
			if err != nil || parsed <= 0 {
				AbortWithError(c, ErrUnauthorized)
				return
			}
			orgID = parsed
		} else {
			if s.cfg.IsCloud() {
				AbortWithError(c, ErrUnauthorized)
				return
			}
			resolved, err := s.defaultOrgID(c.Request.Context())
			if err != nil {
				AbortWithError(c, err)
				return
			}
			if resolved == 0 {
				AbortWithError(c, ErrUnauthorized)
				return
			}
			orgID = resolved
		}

		ctx := orgcontext.WithOrgID(c.Request.Context(), orgID)
		if actor := strings.TrimSpace(c.GetHeader(HeaderUser)); actor != "" {
			ctx = auditcontext.WithActor(ctx, "user", actor)
		} else {
			ctx = auditcontext.WithActor(ctx, "system", "")
		}
		c.Set("org_id", orgID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAdmin guards admin-only routes. Callers identifying themselves
// with X-User-Id must hold the ADMIN role; anonymous callers are only
// allowed on self-hosted deployments.
func (s *Server) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader(HeaderUser))
		if header == "" {
			if s.cfg.IsCloud() {
				AbortWithError(c, ErrUnauthorized)
				return
			}
			c.Next()
			return
		}

		userID, err := snowflake.ParseString(header)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		orgID, ok := orgcontext.OrgIDFromContext(c.Request.Context())
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if err := s.authzSvc.Require(c.Request.Context(), userID, orgID, organizationdomain.RoleAdmin); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// RateLimited applies a per-client fixed-window rate limit.
func (s *Server) RateLimited() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(HeaderOrg))
		if key == "" {
			key = c.ClientIP()
		}
		if !s.limiter.Allow(key) {
			AbortWithError(c, ErrTooManyRequests)
			return
		}
		c.Next()
	}
}

func (s *Server) defaultOrgID(ctx context.Context) (int64, error) {
	var record struct {
		ID int64 `gorm:"column:id"`
	}
	err := s.db.WithContext(ctx).Raw(
		`SELECT id FROM organizations WHERE is_default = true LIMIT 1`,
	).Scan(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return record.ID, nil
}

// Health reports process liveness.
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RunHTTP starts the HTTP listener under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("http server shutting down")
			return srv.Shutdown(ctx)
		},
	})
}

// Module wires the HTTP server into the fx graph.
var Module = fx.Module("server",
	fx.Provide(NewServer, NewEngine),
	fx.Invoke(RunHTTP),
)
