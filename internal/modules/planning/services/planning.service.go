package services

import (
	"sort"
	"time"

	demandesdto "rdv-soins-core/internal/modules/demandes/dto"
	"rdv-soins-core/internal/modules/planning/dto"
)

// PlanningService projette la liste plate des demandes sur une grille
// hebdomadaire. Calcul pur : la grille est entièrement reconstruite à
// chaque appel à partir des demandes courantes.
type PlanningService struct{}

// NewPlanningService crée une nouvelle instance du service
func NewPlanningService() *PlanningService {
	return &PlanningService{}
}

// BuildSemaine construit la grille de la semaine contenant la date de
// référence. La semaine démarre le lundi; les sept jours sont toujours
// présents, même vides. Les demandes annulées n'apparaissent pas.
func (s *PlanningService) BuildSemaine(demandes []demandesdto.DemandeRdv, reference time.Time) dto.PlanningSemaine {
	debut := DebutSemaine(reference)
	fin := debut.AddDate(0, 0, 7)

	semaine := dto.PlanningSemaine{
		Debut: debut,
		Fin:   debut.AddDate(0, 0, 6),
		Jours: make([]dto.JourPlanning, 7),
	}
	for i := range semaine.Jours {
		semaine.Jours[i] = dto.JourPlanning{
			Date:     debut.AddDate(0, 0, i),
			Creneaux: []dto.CreneauPlanning{},
		}
	}

	for _, demande := range demandes {
		if demande.DateRdv == nil || demande.Statut == demandesdto.StatutAnnulee {
			continue
		}
		jour := jourLocal(*demande.DateRdv)
		if jour.Before(debut) || !jour.Before(fin) {
			continue
		}

		index := int(jour.Sub(debut).Hours() / 24)
		semaine.Jours[index].Creneaux = append(semaine.Jours[index].Creneaux, creneau(demande))
	}

	for i := range semaine.Jours {
		trierCreneaux(semaine.Jours[i].Creneaux)
	}

	return semaine
}

// DebutSemaine retourne le lundi 00:00 de la semaine contenant la date
func DebutSemaine(date time.Time) time.Time {
	jour := jourLocal(date)
	// time.Weekday compte dimanche = 0
	decalage := (int(jour.Weekday()) + 6) % 7
	return jour.AddDate(0, 0, -decalage)
}

func jourLocal(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

func creneau(demande demandesdto.DemandeRdv) dto.CreneauPlanning {
	c := dto.CreneauPlanning{
		DemandeID: demande.ID,
		TypeSoin:  demande.TypeSoin,
		Urgence:   demande.Urgence,
		Statut:    demande.Statut,
	}

	if demande.HeureRdv != nil {
		if *demande.HeureRdv == demandesdto.HeureJourneeEntiere {
			c.JourneeEntiere = true
		} else {
			c.Heure = demande.HeureRdv
		}
	}

	if demande.Patient != nil {
		c.PatientNom = demande.Patient.Nom
		c.PatientPrenom = demande.Patient.Prenom
		c.Telephone = demande.Patient.Telephone
	}

	return c
}

// trierCreneaux journée entière en tête, puis heures croissantes,
// les créneaux sans heure en fin de journée
func trierCreneaux(creneaux []dto.CreneauPlanning) {
	sort.SliceStable(creneaux, func(i, j int) bool {
		a, b := creneaux[i], creneaux[j]
		if a.JourneeEntiere != b.JourneeEntiere {
			return a.JourneeEntiere
		}
		switch {
		case a.Heure == nil && b.Heure == nil:
			return false
		case a.Heure == nil:
			return false
		case b.Heure == nil:
			return true
		}
		return *a.Heure < *b.Heure
	})
}
