package database

import (
	"go.uber.org/fx"

	"rdv-soins-core/internal/infrastructure/database/mongodb"
	"rdv-soins-core/internal/infrastructure/database/postgres"
	"rdv-soins-core/internal/infrastructure/database/redis"
)

var Module = fx.Options(

	// Modules database
	postgres.Module,
	redis.Module,
	mongodb.Module,
)
