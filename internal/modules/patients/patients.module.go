package patients

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"rdv-soins-core/internal/modules/patients/controllers"
	"rdv-soins-core/internal/modules/patients/services"
)

// Module regroupe le moteur d'agrégation patients et son exposition HTTP
var Module = fx.Options(
	fx.Provide(services.NewPatientAggregationService),
	fx.Provide(services.NewRechercheService),
	fx.Provide(services.NewStatsService),
	fx.Provide(controllers.NewPatientController),
	fx.Invoke(RegisterRoutes),
)

// RegisterRoutes enregistre les routes du module sur le router global
func RegisterRoutes(r *gin.Engine, controller *controllers.PatientController) {
	api := r.Group("/api/v1/patients")
	{
		api.GET("", controller.List)
		api.GET("/stats", controller.Stats)
	}
}
