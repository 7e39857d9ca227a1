package client

import (
	"github.com/batidesk/batidesk/internal/client/repository"
	"github.com/batidesk/batidesk/internal/client/service"
	"go.uber.org/fx"
)

var Module = fx.Module("client",
	fx.Provide(
		repository.Provide,
		service.NewService,
	),
)
