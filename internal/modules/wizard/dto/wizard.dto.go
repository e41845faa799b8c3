package dto

import (
	"time"

	"github.com/google/uuid"

	demandesdto "rdv-soins-core/internal/modules/demandes/dto"
)

// WizardSession état du formulaire multi-étapes de demande de soins.
// Cycle de vie explicite : Init → mutation par étape → Submit (crée la
// demande et efface) ou Reset (efface). Aucun état global ambiant :
// chaque opération reçoit l'identifiant de session.
type WizardSession struct {
	ID             uuid.UUID            `json:"id"`
	Soin           *EtapeSoin           `json:"soin,omitempty"`
	Ordonnance     *EtapeOrdonnance     `json:"ordonnance,omitempty"`
	Disponibilites *EtapeDisponibilites `json:"disponibilites,omitempty"`
	Patient        *EtapePatient        `json:"patient,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// Complete true quand toutes les étapes obligatoires sont renseignées.
// L'ordonnance est facultative : l'étape existe mais peut déclarer
// qu'aucune prescription n'est disponible.
func (s *WizardSession) Complete() bool {
	return s.Soin != nil && s.Disponibilites != nil && s.Patient != nil
}

// EtapeSoin étape 1 : type de soin demandé
type EtapeSoin struct {
	TypeSoin   string                     `json:"type_soin" binding:"required"`
	Precisions string                     `json:"precisions"`
	Materiel   *string                    `json:"materiel"`
	Urgence    demandesdto.UrgenceDemande `json:"urgence"`
	Lieu       *string                    `json:"lieu"`
}

// EtapeOrdonnance étape 2 : informations de prescription
type EtapeOrdonnance struct {
	Disponible       bool    `json:"disponible"`
	Medecin          *string `json:"medecin"`
	DatePrescription *string `json:"date_prescription"`
	Renouvelable     bool    `json:"renouvelable"`
}

// EtapeDisponibilites étape 3 : disponibilités du patient
type EtapeDisponibilites struct {
	DateSouhaitee  *time.Time `json:"date_souhaitee"`
	Creneau        *string    `json:"creneau"`
	JourneeEntiere bool       `json:"journee_entiere"`
}

// EtapePatient étape 4 : état civil du patient
type EtapePatient = demandesdto.CreatePatientRequest
