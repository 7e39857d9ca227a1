// @title           Batidesk API
// @version         1.0
// @description     Batidesk construction project management API
// @contact.name    API Support
// @contact.email   support@batidesk.fr

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api
// @Schemes 	http https

package main

import (
	"context"

	"github.com/batidesk/batidesk/internal/apikey"
	"github.com/batidesk/batidesk/internal/audit"
	"github.com/batidesk/batidesk/internal/authorization"
	"github.com/batidesk/batidesk/internal/client"
	"github.com/batidesk/batidesk/internal/clock"
	"github.com/batidesk/batidesk/internal/config"
	"github.com/batidesk/batidesk/internal/dashboard"
	"github.com/batidesk/batidesk/internal/events"
	"github.com/batidesk/batidesk/internal/invoice"
	"github.com/batidesk/batidesk/internal/invoicetemplate"
	"github.com/batidesk/batidesk/internal/migration"
	"github.com/batidesk/batidesk/internal/observability"
	"github.com/batidesk/batidesk/internal/observability/logger"
	"github.com/batidesk/batidesk/internal/payment"
	"github.com/batidesk/batidesk/internal/project"
	"github.com/batidesk/batidesk/internal/seed"
	"github.com/batidesk/batidesk/internal/server"
	"github.com/batidesk/batidesk/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		events.Module,

		invoicetemplate.Module,
		invoice.Module,
		client.Module,
		project.Module,
		payment.Module,
		dashboard.Module,
		audit.Module,
		apikey.Module,
		authorization.Module,

		fx.Invoke(Bootstrap),
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

// Bootstrap applies schema migrations and seeds the default tenant
// before the HTTP server starts.
func Bootstrap(handle *gorm.DB, cfg config.Config, log *zap.Logger) error {
	if err := migration.Apply(context.Background(), handle, log); err != nil {
		return err
	}
	if cfg.IsCloud() {
		return nil
	}
	if cfg.Bootstrap.EnsureDefaultOrgAndAdmin {
		return seed.EnsureMainOrgAndAdmin(handle)
	}
	return seed.EnsureMainOrg(handle)
}
