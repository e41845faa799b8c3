package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	demandessvc "rdv-soins-core/internal/modules/demandes/services"
	"rdv-soins-core/internal/modules/planning/services"
)

type PlanningController struct {
	demandes *demandessvc.DemandeService
	planning *services.PlanningService
}

func NewPlanningController(
	demandes *demandessvc.DemandeService,
	planning *services.PlanningService,
) *PlanningController {
	return &PlanningController{
		demandes: demandes,
		planning: planning,
	}
}

// Semaine - GET /api/v1/planning/semaine?date=2026-09-01
// Sans paramètre date, la semaine courante est retournée
func (c *PlanningController) Semaine(ctx *gin.Context) {
	reference := time.Now()
	if param := ctx.Query("date"); param != "" {
		parsed, err := time.ParseInLocation("2006-01-02", param, time.Local)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Date invalide (format attendu: AAAA-MM-JJ)",
			})
			return
		}
		reference = parsed
	}

	demandes, err := c.demandes.List(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Erreur récupération des demandes",
		})
		return
	}

	semaine := c.planning.BuildSemaine(demandes, reference)

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    semaine,
	})
}
