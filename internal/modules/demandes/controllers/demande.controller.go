package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rdv-soins-core/internal/modules/demandes/dto"
	"rdv-soins-core/internal/modules/demandes/services"
)

type DemandeController struct {
	service *services.DemandeService
}

func NewDemandeController(service *services.DemandeService) *DemandeController {
	return &DemandeController{
		service: service,
	}
}

// List - GET /api/v1/demandes
func (c *DemandeController) List(ctx *gin.Context) {
	demandes, err := c.service.List(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Erreur récupération des demandes",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"demandes": demandes},
	})
}

// Get - GET /api/v1/demandes/:id
func (c *DemandeController) Get(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Identifiant de demande invalide",
		})
		return
	}

	demande, err := c.service.Get(ctx.Request.Context(), id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Demande non trouvée",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    demande,
	})
}

// Create - POST /api/v1/demandes
func (c *DemandeController) Create(ctx *gin.Context) {
	var req dto.CreateDemandeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Requête invalide",
			"details": map[string]interface{}{"validation": err.Error()},
		})
		return
	}

	demande, err := c.service.Create(ctx.Request.Context(), &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Erreur création de la demande",
		})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    demande,
	})
}

// UpdateStatut - PATCH /api/v1/demandes/:id/statut
func (c *DemandeController) UpdateStatut(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Identifiant de demande invalide",
		})
		return
	}

	var req dto.UpdateStatutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Requête invalide",
		})
		return
	}

	if !req.Statut.Valid() {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Statut inconnu",
			"details": map[string]interface{}{"statut": req.Statut},
		})
		return
	}

	demande, err := c.service.UpdateStatut(ctx.Request.Context(), id, req.Statut)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Erreur changement de statut",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    demande,
	})
}

// Replanifier - PATCH /api/v1/demandes/:id/planification
func (c *DemandeController) Replanifier(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Identifiant de demande invalide",
		})
		return
	}

	var req dto.ReplanifierRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Requête invalide",
		})
		return
	}

	demande, err := c.service.Replanifier(ctx.Request.Context(), id, req.DateRdv, req.HeureRdv)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Erreur replanification",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    demande,
	})
}

// Delete - DELETE /api/v1/demandes/:id
func (c *DemandeController) Delete(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Identifiant de demande invalide",
		})
		return
	}

	if err := c.service.Delete(ctx.Request.Context(), id); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Erreur suppression de la demande",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"id": id, "supprimee": true},
	})
}
