package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	demandessvc "rdv-soins-core/internal/modules/demandes/services"
	"rdv-soins-core/internal/modules/patients/dto"
	"rdv-soins-core/internal/modules/patients/services"
)

// PatientController expose l'annuaire patients dérivé des demandes.
// Le moteur lui-même reste pur : le controller récupère la liste courante
// des demandes puis enchaîne agrégation, recherche et tri.
type PatientController struct {
	demandes    *demandessvc.DemandeService
	aggregation *services.PatientAggregationService
	recherche   *services.RechercheService
	stats       *services.StatsService
}

func NewPatientController(
	demandes *demandessvc.DemandeService,
	aggregation *services.PatientAggregationService,
	recherche *services.RechercheService,
	stats *services.StatsService,
) *PatientController {
	return &PatientController{
		demandes:    demandes,
		aggregation: aggregation,
		recherche:   recherche,
		stats:       stats,
	}
}

// List - GET /api/v1/patients
// Query: recherche, urgences, actifs, nouveaux, rdv_aujourdhui,
// pathologies (séparées par des virgules), tri (nom|date|urgence), ordre (asc|desc)
func (c *PatientController) List(ctx *gin.Context) {
	demandes, err := c.demandes.List(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Erreur récupération des demandes",
		})
		return
	}

	now := time.Now()

	filtres := dto.FiltresPatients{
		Urgences:      boolQuery(ctx, "urgences"),
		Actifs:        boolQuery(ctx, "actifs"),
		Nouveaux:      boolQuery(ctx, "nouveaux"),
		RdvAujourdhui: boolQuery(ctx, "rdv_aujourdhui"),
	}
	if pathologies := ctx.Query("pathologies"); pathologies != "" {
		filtres.Pathologies = strings.Split(pathologies, ",")
	}

	critere := dto.CritereTri(ctx.DefaultQuery("tri", string(dto.TriNom)))
	ordre := dto.OrdreTri(ctx.DefaultQuery("ordre", string(dto.OrdreAscendant)))
	if !critere.Valid() || !ordre.Valid() {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Paramètres de tri invalides",
			"details": map[string]interface{}{"tri": critere, "ordre": ordre},
		})
		return
	}

	patients := c.aggregation.ExtractPatients(demandes, now)
	patients = c.recherche.SearchPatients(patients, ctx.Query("recherche"), filtres, now)
	patients = services.TrierPatients(patients, critere, ordre)

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"patients": patients,
			"total":    len(patients),
		},
	})
}

// Stats - GET /api/v1/patients/stats
func (c *PatientController) Stats(ctx *gin.Context) {
	demandes, err := c.demandes.List(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Erreur récupération des demandes",
		})
		return
	}

	now := time.Now()
	patients := c.aggregation.ExtractPatients(demandes, now)
	stats := c.stats.CalculateStats(patients, demandes, now)

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}

func boolQuery(ctx *gin.Context, name string) bool {
	value, err := strconv.ParseBool(ctx.DefaultQuery(name, "false"))
	return err == nil && value
}
