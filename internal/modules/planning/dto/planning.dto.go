package dto

import (
	"time"

	"github.com/google/uuid"

	demandesdto "rdv-soins-core/internal/modules/demandes/dto"
)

// PlanningSemaine grille hebdomadaire du cabinet, du lundi au dimanche
type PlanningSemaine struct {
	Debut time.Time      `json:"debut"`
	Fin   time.Time      `json:"fin"`
	Jours []JourPlanning `json:"jours"`
}

// JourPlanning une journée du planning avec ses créneaux occupés
type JourPlanning struct {
	Date     time.Time         `json:"date"`
	Creneaux []CreneauPlanning `json:"creneaux"`
}

// CreneauPlanning un rendez-vous positionné dans la grille.
// JourneeEntiere est vrai quand la demande porte la sentinelle
// "toute la journée" plutôt qu'une heure précise.
type CreneauPlanning struct {
	DemandeID      uuid.UUID                  `json:"demande_id"`
	Heure          *string                    `json:"heure,omitempty"`
	JourneeEntiere bool                       `json:"journee_entiere"`
	TypeSoin       string                     `json:"type_soin"`
	Urgence        demandesdto.UrgenceDemande `json:"urgence"`
	Statut         demandesdto.StatutDemande  `json:"statut"`
	PatientNom     string                     `json:"patient_nom"`
	PatientPrenom  string                     `json:"patient_prenom"`
	Telephone      string                     `json:"telephone"`
}
