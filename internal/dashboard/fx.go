package dashboard

import (
	"github.com/batidesk/batidesk/internal/dashboard/service"
	"go.uber.org/fx"
)

var Module = fx.Module("dashboard",
	fx.Provide(service.NewService),
)
