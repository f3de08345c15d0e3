package invite

import (
	"github.com/gesticasa/inmosuite/internal/invite/repository"
	"github.com/gesticasa/inmosuite/internal/invite/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invite.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
