package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rdv-soins-core/internal/modules/notifications/services"
)

type NotificationController struct {
	service *services.NotificationService
}

func NewNotificationController(service *services.NotificationService) *NotificationController {
	return &NotificationController{
		service: service,
	}
}

// List - GET /api/v1/notifications
// Retourne les notifications récentes et le compteur de non-lues
func (c *NotificationController) List(ctx *gin.Context) {
	limit, _ := strconv.ParseInt(ctx.DefaultQuery("limit", "50"), 10, 64)

	notifications, err := c.service.Lister(ctx.Request.Context(), limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Erreur récupération des notifications",
		})
		return
	}

	nonLues, err := c.service.CompterNonLues(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Erreur comptage des notifications non lues",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"notifications": notifications,
			"non_lues":      nonLues,
		},
	})
}

// MarkRead - PATCH /api/v1/notifications/:id/lue
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.service.MarquerLue(ctx.Request.Context(), id); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Notification non trouvée",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"id": id, "lue": true},
	})
}

// MarkAllRead - PATCH /api/v1/notifications/lues
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	count, err := c.service.MarquerToutesLues(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Erreur mise à jour des notifications",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"marquees": count},
	})
}
