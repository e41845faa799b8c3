package planning

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"rdv-soins-core/internal/modules/planning/controllers"
	"rdv-soins-core/internal/modules/planning/services"
)

// Module regroupe la vue planning hebdomadaire.
// La replanification passe par le module demandes (PATCH planification).
var Module = fx.Options(
	fx.Provide(services.NewPlanningService),
	fx.Provide(controllers.NewPlanningController),
	fx.Invoke(RegisterRoutes),
)

// RegisterRoutes enregistre les routes du module sur le router global
func RegisterRoutes(r *gin.Engine, controller *controllers.PlanningController) {
	api := r.Group("/api/v1/planning")
	{
		api.GET("/semaine", controller.Semaine)
	}
}
