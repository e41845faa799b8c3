package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UrgenceDemande niveau d'urgence d'une demande de soins
type UrgenceDemande string

const (
	UrgenceFaible  UrgenceDemande = "FAIBLE"
	UrgenceNormale UrgenceDemande = "NORMALE"
	UrgenceElevee  UrgenceDemande = "ELEVEE"
	UrgenceUrgente UrgenceDemande = "URGENTE"
)

// Valid vérifie que la valeur appartient à l'énumération fermée
func (u UrgenceDemande) Valid() bool {
	switch u {
	case UrgenceFaible, UrgenceNormale, UrgenceElevee, UrgenceUrgente:
		return true
	}
	return false
}

// StatutDemande statut de traitement d'une demande
type StatutDemande string

const (
	StatutEnAttente StatutDemande = "EN_ATTENTE"
	StatutConfirmee StatutDemande = "CONFIRMEE"
	StatutEnCours   StatutDemande = "EN_COURS"
	StatutTerminee  StatutDemande = "TERMINEE"
	StatutAnnulee   StatutDemande = "ANNULEE"
)

// Valid vérifie que la valeur appartient à l'énumération fermée
func (s StatutDemande) Valid() bool {
	switch s {
	case StatutEnAttente, StatutConfirmee, StatutEnCours, StatutTerminee, StatutAnnulee:
		return true
	}
	return false
}

// EstCloturee true pour les statuts terminaux (TERMINEE, ANNULEE)
func (s StatutDemande) EstCloturee() bool {
	return s == StatutTerminee || s == StatutAnnulee
}

// HeureJourneeEntiere sentinelle "toute la journée" pour heure_rdv
const HeureJourneeEntiere = "journee_entiere"

// PatientSnapshot état civil du patient embarqué dans chaque demande.
// L'identifiant est stable d'une demande à l'autre pour un même patient,
// les champs démographiques peuvent dériver (correction d'adresse, etc.)
type PatientSnapshot struct {
	ID            uuid.UUID `json:"id"`
	Nom           string    `json:"nom"`
	Prenom        string    `json:"prenom"`
	Telephone     string    `json:"telephone"`
	Email         *string   `json:"email,omitempty"`
	Rue           string    `json:"rue"`
	Complement    *string   `json:"complement,omitempty"`
	CodePostal    string    `json:"code_postal"`
	Ville         string    `json:"ville"`
	DateNaissance time.Time `json:"date_naissance"`
	NumeroSecu    *string   `json:"numero_secu,omitempty"`
}

// AdresseComplete assemble rue, complément, code postal et ville
func (p *PatientSnapshot) AdresseComplete() string {
	parts := []string{}
	if p.Rue != "" {
		parts = append(parts, p.Rue)
	}
	if p.Complement != nil && *p.Complement != "" {
		parts = append(parts, *p.Complement)
	}
	cpVille := strings.TrimSpace(p.CodePostal + " " + p.Ville)
	if cpVille != "" {
		parts = append(parts, cpVille)
	}
	return strings.Join(parts, ", ")
}

// DemandeRdv demande de rendez-vous de soins
type DemandeRdv struct {
	ID          uuid.UUID        `json:"id"`
	Patient     *PatientSnapshot `json:"patient"`
	TypeSoin    string           `json:"type_soin"`
	Description string           `json:"description"` // payload structuré stocké en texte
	DateRdv     *time.Time       `json:"date_rdv,omitempty"`
	HeureRdv    *string          `json:"heure_rdv,omitempty"`
	Urgence     UrgenceDemande   `json:"urgence"`
	Statut      StatutDemande    `json:"statut"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// CreateDemandeRequest création directe d'une demande (hors wizard)
type CreateDemandeRequest struct {
	Patient     CreatePatientRequest `json:"patient" binding:"required"`
	TypeSoin    string               `json:"type_soin" binding:"required"`
	Description string               `json:"description"`
	DateRdv     *time.Time           `json:"date_rdv"`
	HeureRdv    *string              `json:"heure_rdv"`
	Urgence     UrgenceDemande       `json:"urgence"`
}

// CreatePatientRequest état civil saisi à la création d'une demande
type CreatePatientRequest struct {
	Nom           string    `json:"nom" binding:"required"`
	Prenom        string    `json:"prenom" binding:"required"`
	Telephone     string    `json:"telephone" binding:"required"`
	Email         *string   `json:"email"`
	Rue           string    `json:"rue"`
	Complement    *string   `json:"complement"`
	CodePostal    string    `json:"code_postal"`
	Ville         string    `json:"ville"`
	DateNaissance time.Time `json:"date_naissance" binding:"required"`
	NumeroSecu    *string   `json:"numero_secu"`
}

// UpdateStatutRequest changement de statut d'une demande
type UpdateStatutRequest struct {
	Statut StatutDemande `json:"statut" binding:"required"`
}

// ReplanifierRequest replanification depuis le planning hebdomadaire
type ReplanifierRequest struct {
	DateRdv  time.Time `json:"date_rdv" binding:"required"`
	HeureRdv *string   `json:"heure_rdv"`
}
