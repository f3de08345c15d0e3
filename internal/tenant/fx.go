package tenant

import (
	"github.com/gesticasa/inmosuite/internal/tenant/repository"
	"github.com/gesticasa/inmosuite/internal/tenant/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tenant.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
