package wizard

import (
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"rdv-soins-core/internal/app/config"
	"rdv-soins-core/internal/infrastructure/database/redis"
	demandessvc "rdv-soins-core/internal/modules/demandes/services"
	"rdv-soins-core/internal/modules/wizard/controllers"
	"rdv-soins-core/internal/modules/wizard/services"
)

// Module regroupe le formulaire multi-étapes de demande de soins
var Module = fx.Options(
	fx.Provide(NewWizardSessionService),
	fx.Provide(controllers.NewWizardController),
	fx.Invoke(RegisterRoutes),
)

// NewWizardSessionService assemble le service avec le TTL métier configuré
func NewWizardSessionService(
	cfg *config.Config,
	rdb *goredis.Client,
	keys *redis.RedisKeyGenerator,
	demandes *demandessvc.DemandeService,
) *services.WizardSessionService {
	return services.NewWizardSessionService(rdb, keys, cfg.Cabinet.WizardSessionTTL(), demandes)
}

// RegisterRoutes enregistre les routes du module sur le router global
func RegisterRoutes(r *gin.Engine, controller *controllers.WizardController) {
	api := r.Group("/api/v1/wizard/sessions")
	{
		api.POST("", controller.Init)
		api.GET("/:id", controller.Get)
		api.PUT("/:id/soin", controller.SaveSoin)
		api.PUT("/:id/ordonnance", controller.SaveOrdonnance)
		api.PUT("/:id/disponibilites", controller.SaveDisponibilites)
		api.PUT("/:id/patient", controller.SavePatient)
		api.POST("/:id/soumission", controller.Submit)
		api.DELETE("/:id", controller.Reset)
	}
}
