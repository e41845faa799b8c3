package notifications

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"rdv-soins-core/internal/modules/notifications/controllers"
	"rdv-soins-core/internal/modules/notifications/services"
)

// Module regroupe les providers du centre de notifications
var Module = fx.Options(
	fx.Provide(services.NewNotificationService),
	fx.Provide(controllers.NewNotificationController),
	fx.Invoke(RegisterRoutes),
)

// RegisterRoutes enregistre les routes du module sur le router global
func RegisterRoutes(r *gin.Engine, controller *controllers.NotificationController) {
	api := r.Group("/api/v1/notifications")
	{
		api.GET("", controller.List)
		api.PATCH("/lues", controller.MarkAllRead)
		api.PATCH("/:id/lue", controller.MarkRead)
	}
}
