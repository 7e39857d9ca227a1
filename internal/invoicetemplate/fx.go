package invoicetemplate

import (
	"github.com/batidesk/batidesk/internal/config"
	"github.com/batidesk/batidesk/internal/invoicetemplate/fetch"
	"github.com/batidesk/batidesk/internal/invoicetemplate/repository"
	"github.com/batidesk/batidesk/internal/invoicetemplate/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoicetemplate.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
	fx.Provide(func(cfg config.Config) fetch.Fetcher {
		return fetch.NewHTTPFetcher(cfg.TemplateFetchTimeout)
	}),
)
