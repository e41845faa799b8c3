package demandes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"rdv-soins-core/internal/modules/demandes/controllers"
	"rdv-soins-core/internal/modules/demandes/services"
)

// Module regroupe les providers du domaine demandes de rendez-vous
var Module = fx.Options(
	fx.Provide(services.NewDemandeService),
	fx.Provide(controllers.NewDemandeController),
	fx.Invoke(RegisterRoutes),
)

// RegisterRoutes enregistre les routes du module sur le router global
func RegisterRoutes(r *gin.Engine, controller *controllers.DemandeController) {
	api := r.Group("/api/v1/demandes")
	{
		api.GET("", controller.List)
		api.POST("", controller.Create)
		api.GET("/:id", controller.Get)
		api.PATCH("/:id/statut", controller.UpdateStatut)
		api.PATCH("/:id/planification", controller.Replanifier)
		api.DELETE("/:id", controller.Delete)
	}
}
