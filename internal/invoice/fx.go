package invoice

import (
	"github.com/batidesk/batidesk/internal/invoice/render"
	"github.com/batidesk/batidesk/internal/invoice/repository"
	"github.com/batidesk/batidesk/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(render.NewRenderer),
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
