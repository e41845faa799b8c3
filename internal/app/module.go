package app

import (
	"rdv-soins-core/internal/app/bootstrap"
	"rdv-soins-core/internal/app/config"
	"rdv-soins-core/internal/infrastructure/database"
	"rdv-soins-core/internal/infrastructure/logger"
	"rdv-soins-core/internal/modules/demandes"
	"rdv-soins-core/internal/modules/notifications"
	"rdv-soins-core/internal/modules/patients"
	"rdv-soins-core/internal/modules/planning"
	"rdv-soins-core/internal/modules/wizard"
	"rdv-soins-core/internal/shared/middleware"

	"go.uber.org/fx"
)

var AppModule = fx.Options(
	// Configuration (doit être fournie en premier)
	fx.Provide(config.NewConfig),
	fx.Provide(config.NewPostgresConfig),
	fx.Provide(config.NewRedisConfig),
	fx.Provide(config.NewMongoConfig),

	// Infrastructure
	database.Module,
	logger.Module,

	// Middlewares partagés (après infrastructure, avant modules métier)
	middleware.Module,

	// Router
	fx.Provide(NewRouter),

	// Modules métier
	demandes.Module,
	notifications.Module,
	patients.Module,
	planning.Module,
	wizard.Module,

	// Bootstrap
	fx.Provide(bootstrap.NewBootstrapSystem),

	// Application
	fx.Provide(NewApplication),

	// Lifecycle management
	fx.Invoke(bootstrap.RegisterBootstrapLifecycle),
	fx.Invoke((*Application).Start),
)
