package middleware

import (
	"go.uber.org/fx"

	"rdv-soins-core/internal/shared/middleware/core"
	"rdv-soins-core/internal/shared/middleware/security"
)

// Module regroupe tous les providers des middlewares
var Module = fx.Options(
	fx.Provide(core.RecoveryMiddleware),
	fx.Provide(security.CORSMiddleware),
)
