package apikey

import (
	"github.com/batidesk/batidesk/internal/apikey/repository"
	"github.com/batidesk/batidesk/internal/apikey/service"
	"go.uber.org/fx"
)

var Module = fx.Module("apikey.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
