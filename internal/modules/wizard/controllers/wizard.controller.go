package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rdv-soins-core/internal/modules/wizard/dto"
	"rdv-soins-core/internal/modules/wizard/services"
)

type WizardController struct {
	service *services.WizardSessionService
}

func NewWizardController(service *services.WizardSessionService) *WizardController {
	return &WizardController{
		service: service,
	}
}

// Init - POST /api/v1/wizard/sessions
func (c *WizardController) Init(ctx *gin.Context) {
	session, err := c.service.Init(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Erreur création de session",
		})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    session,
	})
}

// Get - GET /api/v1/wizard/sessions/:id
func (c *WizardController) Get(ctx *gin.Context) {
	id, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	session, err := c.service.Get(ctx.Request.Context(), id)
	if err != nil {
		c.sessionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    session,
	})
}

// SaveSoin - PUT /api/v1/wizard/sessions/:id/soin
func (c *WizardController) SaveSoin(ctx *gin.Context) {
	id, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	var etape dto.EtapeSoin
	if err := ctx.ShouldBindJSON(&etape); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Requête invalide",
			"details": map[string]interface{}{"validation": err.Error()},
		})
		return
	}

	session, err := c.service.SaveSoin(ctx.Request.Context(), id, &etape)
	if err != nil {
		c.sessionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    session,
	})
}

// SaveOrdonnance - PUT /api/v1/wizard/sessions/:id/ordonnance
func (c *WizardController) SaveOrdonnance(ctx *gin.Context) {
	id, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	var etape dto.EtapeOrdonnance
	if err := ctx.ShouldBindJSON(&etape); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Requête invalide",
		})
		return
	}

	session, err := c.service.SaveOrdonnance(ctx.Request.Context(), id, &etape)
	if err != nil {
		c.sessionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    session,
	})
}

// SaveDisponibilites - PUT /api/v1/wizard/sessions/:id/disponibilites
func (c *WizardController) SaveDisponibilites(ctx *gin.Context) {
	id, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	var etape dto.EtapeDisponibilites
	if err := ctx.ShouldBindJSON(&etape); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Requête invalide",
		})
		return
	}

	session, err := c.service.SaveDisponibilites(ctx.Request.Context(), id, &etape)
	if err != nil {
		c.sessionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    session,
	})
}

// SavePatient - PUT /api/v1/wizard/sessions/:id/patient
func (c *WizardController) SavePatient(ctx *gin.Context) {
	id, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	var etape dto.EtapePatient
	if err := ctx.ShouldBindJSON(&etape); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Requête invalide",
			"details": map[string]interface{}{"validation": err.Error()},
		})
		return
	}

	session, err := c.service.SavePatient(ctx.Request.Context(), id, &etape)
	if err != nil {
		c.sessionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    session,
	})
}

// Submit - POST /api/v1/wizard/sessions/:id/soumission
func (c *WizardController) Submit(ctx *gin.Context) {
	id, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	demande, err := c.service.Submit(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrSessionIncomplete) {
			ctx.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error":   "Session incomplète : étapes obligatoires manquantes",
			})
			return
		}
		c.sessionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    demande,
	})
}

// Reset - DELETE /api/v1/wizard/sessions/:id
func (c *WizardController) Reset(ctx *gin.Context) {
	id, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	if err := c.service.Reset(ctx.Request.Context(), id); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Erreur réinitialisation de session",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"id": id, "reinitialisee": true},
	})
}

func (c *WizardController) sessionID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Identifiant de session invalide",
		})
		return uuid.Nil, false
	}
	return id, true
}

func (c *WizardController) sessionError(ctx *gin.Context, err error) {
	if errors.Is(err, services.ErrSessionNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Session non trouvée ou expirée",
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   "Erreur session wizard",
	})
}
