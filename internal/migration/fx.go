package migration

import (
	authdomain "github.com/gesticasa/inmosuite/internal/auth/domain"
	"github.com/gesticasa/inmosuite/internal/config"
	invitedomain "github.com/gesticasa/inmosuite/internal/invite/domain"
	tenantdomain "github.com/gesticasa/inmosuite/internal/tenant/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType != "postgres" {
			// Non-postgres deployments (local sqlite, mysql) get the
			// schema from the models directly.
			return conn.AutoMigrate(
				&tenantdomain.Tenant{},
				&tenantdomain.AgentAccount{},
				&authdomain.Session{},
				&invitedomain.AgentInvite{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
