package project

import (
	"github.com/batidesk/batidesk/internal/project/repository"
	"github.com/batidesk/batidesk/internal/project/service"
	"go.uber.org/fx"
)

var Module = fx.Module("project",
	fx.Provide(
		repository.Provide,
		service.NewService,
	),
)
