package audit

import (
	"github.com/batidesk/batidesk/internal/audit/repository"
	"github.com/batidesk/batidesk/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
