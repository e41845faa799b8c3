package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	demandesdto "rdv-soins-core/internal/modules/demandes/dto"
	"rdv-soins-core/internal/modules/patients/dto"
)

func TestCalculateStats_CollectionsVides(t *testing.T) {
	service := NewStatsService(configCabinetTest())

	stats := service.CalculateStats(nil, nil, maintenant)

	assert.Equal(t, 0, stats.TotalPatients)
	assert.Equal(t, 0, stats.PatientsActifs)
	assert.Equal(t, 0, stats.NouveauxPatients)
	assert.Zero(t, stats.AgeMoyen)
	assert.Zero(t, stats.SoinsParJour)
	assert.Zero(t, stats.TempsAttenteMoyenHeures)

	// Toutes les clés d'énumération présentes, même à zéro
	assert.Len(t, stats.ParStatut, 5)
	assert.Len(t, stats.ParUrgence, 4)
	assert.Equal(t, 0, stats.ParStatut[demandesdto.StatutEnAttente])
	assert.Equal(t, 0, stats.ParUrgence[demandesdto.UrgenceUrgente])
}

func TestCalculateStats_ComptagesPatients(t *testing.T) {
	service := NewStatsService(configCabinetTest())

	patients := []dto.PatientInfo{
		{
			Nom:             "Dubois",
			EstActif:        true,
			EstUrgent:       true,
			PremiereDemande: maintenant.AddDate(0, 0, -10),
			DateNaissance:   time.Date(1956, 8, 28, 0, 0, 0, 0, time.UTC), // 70 ans
		},
		{
			Nom:             "Martin",
			EstActif:        false,
			PremiereDemande: maintenant.AddDate(0, 0, -120),
			DateNaissance:   time.Date(1976, 8, 28, 0, 0, 0, 0, time.UTC), // 50 ans
		},
	}

	stats := service.CalculateStats(patients, nil, maintenant)

	assert.Equal(t, 2, stats.TotalPatients)
	assert.Equal(t, 1, stats.PatientsActifs)
	assert.Equal(t, 1, stats.PatientsUrgents)
	// Seul Dubois est dans la fenêtre de 30 jours
	assert.Equal(t, 1, stats.NouveauxPatients)
	assert.InDelta(t, 60.0, stats.AgeMoyen, 0.01)
}

func TestCalculateStats_FenetresTemporellesRdv(t *testing.T) {
	service := NewStatsService(configCabinetTest())

	// maintenant = vendredi 28 août 2026
	aujourdHui := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	memeSemaineLundi := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	memeMoisHorsSemaine := time.Date(2026, 8, 3, 10, 0, 0, 0, time.UTC)
	moisSuivant := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	demandes := []demandesdto.DemandeRdv{
		{ID: uuid.New(), Statut: demandesdto.StatutConfirmee, Urgence: demandesdto.UrgenceNormale, DateRdv: &aujourdHui, CreatedAt: maintenant.AddDate(0, 0, -1)},
		{ID: uuid.New(), Statut: demandesdto.StatutConfirmee, Urgence: demandesdto.UrgenceNormale, DateRdv: &memeSemaineLundi, CreatedAt: maintenant.AddDate(0, 0, -5)},
		{ID: uuid.New(), Statut: demandesdto.StatutTerminee, Urgence: demandesdto.UrgenceFaible, DateRdv: &memeMoisHorsSemaine, CreatedAt: maintenant.AddDate(0, 0, -30)},
		{ID: uuid.New(), Statut: demandesdto.StatutEnAttente, Urgence: demandesdto.UrgenceUrgente, DateRdv: &moisSuivant, CreatedAt: maintenant},
	}

	stats := service.CalculateStats(nil, demandes, maintenant)

	assert.Equal(t, 1, stats.RdvAujourdhui)
	assert.Equal(t, 2, stats.RdvCetteSemaine)
	assert.Equal(t, 3, stats.RdvCeMois)

	assert.Equal(t, 2, stats.ParStatut[demandesdto.StatutConfirmee])
	assert.Equal(t, 1, stats.ParStatut[demandesdto.StatutTerminee])
	assert.Equal(t, 1, stats.ParStatut[demandesdto.StatutEnAttente])
	assert.Equal(t, 0, stats.ParStatut[demandesdto.StatutAnnulee])
	assert.Equal(t, 1, stats.ParUrgence[demandesdto.UrgenceUrgente])
	assert.Equal(t, 2, stats.ParUrgence[demandesdto.UrgenceNormale])
}

func TestCalculateStats_TempsAttenteMoyen(t *testing.T) {
	service := NewStatsService(configCabinetTest())

	rdv1 := maintenant.AddDate(0, 0, 1)
	rdv2 := maintenant.AddDate(0, 0, 3)

	demandes := []demandesdto.DemandeRdv{
		// 48h entre création et rendez-vous
		{ID: uuid.New(), Statut: demandesdto.StatutConfirmee, Urgence: demandesdto.UrgenceNormale, DateRdv: &rdv1, CreatedAt: maintenant.AddDate(0, 0, -1)},
		// 96h
		{ID: uuid.New(), Statut: demandesdto.StatutConfirmee, Urgence: demandesdto.UrgenceNormale, DateRdv: &rdv2, CreatedAt: maintenant.AddDate(0, 0, -1)},
		// Sans rendez-vous : exclue de la moyenne
		{ID: uuid.New(), Statut: demandesdto.StatutEnAttente, Urgence: demandesdto.UrgenceNormale, CreatedAt: maintenant},
	}

	stats := service.CalculateStats(nil, demandes, maintenant)
	assert.InDelta(t, 72.0, stats.TempsAttenteMoyenHeures, 0.01)
}

func TestCalculateStats_SoinsParJour(t *testing.T) {
	service := NewStatsService(configCabinetTest())

	demandes := []demandesdto.DemandeRdv{
		{ID: uuid.New(), Statut: demandesdto.StatutTerminee, Urgence: demandesdto.UrgenceNormale, CreatedAt: maintenant.AddDate(0, 0, -10)},
		{ID: uuid.New(), Statut: demandesdto.StatutTerminee, Urgence: demandesdto.UrgenceNormale, CreatedAt: maintenant.AddDate(0, 0, -5)},
		{ID: uuid.New(), Statut: demandesdto.StatutEnAttente, Urgence: demandesdto.UrgenceNormale, CreatedAt: maintenant.AddDate(0, 0, -1)},
	}

	stats := service.CalculateStats(nil, demandes, maintenant)
	// 2 soins terminés sur 10 jours d'historique
	assert.InDelta(t, 0.2, stats.SoinsParJour, 0.001)
}

func TestAgeEnAnnees(t *testing.T) {
	tests := []struct {
		nom       string
		naissance time.Time
		attendu   float64
	}{
		{"anniversaire passé", time.Date(1950, 3, 1, 0, 0, 0, 0, time.UTC), 76},
		{"anniversaire à venir", time.Date(1950, 12, 1, 0, 0, 0, 0, time.UTC), 75},
		{"anniversaire aujourd'hui", time.Date(1950, 8, 28, 0, 0, 0, 0, time.UTC), 76},
		{"date zéro", time.Time{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.nom, func(t *testing.T) {
			require.Equal(t, tt.attendu, ageEnAnnees(tt.naissance, maintenant))
		})
	}
}
