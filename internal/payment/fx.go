package payment

import (
	"github.com/batidesk/batidesk/internal/payment/repository"
	"github.com/batidesk/batidesk/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment",
	fx.Provide(
		repository.Provide,
		service.NewService,
	),
)
