package auth

import (
	"github.com/gesticasa/inmosuite/internal/auth/repository"
	"github.com/gesticasa/inmosuite/internal/auth/service"
	"github.com/gesticasa/inmosuite/internal/auth/session"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
	fx.Provide(session.NewManager),
)
