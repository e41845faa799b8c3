package services

import (
	"time"

	"rdv-soins-core/internal/app/config"
	demandesdto "rdv-soins-core/internal/modules/demandes/dto"
	"rdv-soins-core/internal/modules/patients/dto"
)

// StatsService calcule les statistiques du cabinet.
// Réduction pure sur les deux collections, recalculée à chaque appel :
// le volume est faible et la justesse face à l'horloge prime.
type StatsService struct {
	fenetreNouveau time.Duration
}

// NewStatsService crée une nouvelle instance du service
func NewStatsService(cfg *config.Config) *StatsService {
	return &StatsService{
		fenetreNouveau: cfg.Cabinet.FenetreNouveau(),
	}
}

// CalculateStats réduit patients et demandes en compteurs et moyennes.
// Toutes les divisions sont gardées : collections vides donnent 0,
// jamais NaN ni Inf.
func (s *StatsService) CalculateStats(patients []dto.PatientInfo, demandes []demandesdto.DemandeRdv, now time.Time) dto.StatsCabinet {
	stats := dto.StatsCabinet{
		ParStatut: map[demandesdto.StatutDemande]int{
			demandesdto.StatutEnAttente: 0,
			demandesdto.StatutConfirmee: 0,
			demandesdto.StatutEnCours:   0,
			demandesdto.StatutTerminee:  0,
			demandesdto.StatutAnnulee:   0,
		},
		ParUrgence: map[demandesdto.UrgenceDemande]int{
			demandesdto.UrgenceFaible:  0,
			demandesdto.UrgenceNormale: 0,
			demandesdto.UrgenceElevee:  0,
			demandesdto.UrgenceUrgente: 0,
		},
	}

	stats.TotalPatients = len(patients)

	var sommeAges float64
	for _, patient := range patients {
		if patient.EstActif {
			stats.PatientsActifs++
		}
		if patient.EstUrgent {
			stats.PatientsUrgents++
		}
		if now.Sub(patient.PremiereDemande) <= s.fenetreNouveau {
			stats.NouveauxPatients++
		}
		sommeAges += ageEnAnnees(patient.DateNaissance, now)
	}

	if len(patients) > 0 {
		stats.AgeMoyen = sommeAges / float64(len(patients))
	}

	var premiereCreation time.Time
	var terminees int
	var sommeAttente float64
	var avecRdv int

	for _, demande := range demandes {
		stats.ParStatut[demande.Statut]++
		stats.ParUrgence[demande.Urgence]++

		if demande.DateRdv != nil {
			if memeJour(*demande.DateRdv, now) {
				stats.RdvAujourdhui++
			}
			if memeSemaine(*demande.DateRdv, now) {
				stats.RdvCetteSemaine++
			}
			if memeMois(*demande.DateRdv, now) {
				stats.RdvCeMois++
			}

			sommeAttente += demande.DateRdv.Sub(demande.CreatedAt).Hours()
			avecRdv++
		}

		if demande.Statut == demandesdto.StatutTerminee {
			terminees++
		}

		if premiereCreation.IsZero() || demande.CreatedAt.Before(premiereCreation) {
			premiereCreation = demande.CreatedAt
		}
	}

	if avecRdv > 0 {
		stats.TempsAttenteMoyenHeures = sommeAttente / float64(avecRdv)
	}

	if terminees > 0 && !premiereCreation.IsZero() {
		jours := now.Sub(premiereCreation).Hours() / 24
		if jours < 1 {
			jours = 1
		}
		stats.SoinsParJour = float64(terminees) / jours
	}

	return stats
}

func ageEnAnnees(naissance, now time.Time) float64 {
	if naissance.IsZero() || naissance.After(now) {
		return 0
	}
	annees := float64(now.Year() - naissance.Year())
	anniversaire := time.Date(now.Year(), naissance.Month(), naissance.Day(), 0, 0, 0, 0, now.Location())
	if now.Before(anniversaire) {
		annees--
	}
	if annees < 0 {
		return 0
	}
	return annees
}

func memeJour(a, b time.Time) bool {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	return ya == yb && ma == mb && da == db
}

// memeSemaine semaine ISO (lundi premier jour)
func memeSemaine(a, b time.Time) bool {
	ya, wa := a.ISOWeek()
	yb, wb := b.ISOWeek()
	return ya == yb && wa == wb
}

func memeMois(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
