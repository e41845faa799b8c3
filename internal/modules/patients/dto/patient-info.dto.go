package dto

import (
	"time"

	"github.com/google/uuid"

	demandesdto "rdv-soins-core/internal/modules/demandes/dto"
)

// SoinRecu une ligne de l'historique de soins d'un patient,
// dérivée d'une demande de rendez-vous
type SoinRecu struct {
	Date        time.Time                  `json:"date"`
	Soin        string                     `json:"soin"`
	Statut      demandesdto.StatutDemande  `json:"statut"`
	Urgence     demandesdto.UrgenceDemande `json:"urgence"`
	Description *string                    `json:"description,omitempty"`
	Infirmiere  *string                    `json:"infirmiere,omitempty"`
}

// PatientInfo fiche patient agrégée, recalculée à chaque consultation.
// Jamais persistée : c'est une vue dérivée de la liste des demandes.
type PatientInfo struct {
	ID            uuid.UUID `json:"id"`
	Nom           string    `json:"nom"`
	Prenom        string    `json:"prenom"`
	Telephone     string    `json:"telephone"`
	Email         *string   `json:"email,omitempty"`
	Adresse       string    `json:"adresse"`
	DateNaissance time.Time `json:"date_naissance"`

	SoinsRecus []SoinRecu `json:"soins_recus"`

	NombreDemandes         int        `json:"nombre_demandes"`
	DerniereSoin           time.Time  `json:"derniere_soin"`
	ProchainRdv            *time.Time `json:"prochain_rdv,omitempty"`
	PremiereDemande        time.Time  `json:"premiere_demande"`
	EstUrgent              bool       `json:"est_urgent"`
	EstActif               bool       `json:"est_actif"`
	PathologiesRecurrentes []string   `json:"pathologies_recurrentes"`
}

// FiltresPatients prédicats activables indépendamment.
// Les catégories actives se combinent en ET; au sein de Pathologies,
// une seule correspondance suffit (OU).
type FiltresPatients struct {
	Urgences      bool     `json:"urgences"`
	Actifs        bool     `json:"actifs"`
	Nouveaux      bool     `json:"nouveaux"`
	RdvAujourdhui bool     `json:"rdv_aujourdhui"`
	Pathologies   []string `json:"pathologies"`
}

// Aucun true si aucun filtre n'est actif
func (f FiltresPatients) Aucun() bool {
	return !f.Urgences && !f.Actifs && !f.Nouveaux && !f.RdvAujourdhui && len(f.Pathologies) == 0
}

// StatsCabinet statistiques du cabinet, réduction pure des collections
type StatsCabinet struct {
	TotalPatients    int `json:"total_patients"`
	PatientsActifs   int `json:"patients_actifs"`
	NouveauxPatients int `json:"nouveaux_patients"`
	PatientsUrgents  int `json:"patients_urgents"`

	RdvAujourdhui   int `json:"rdv_aujourdhui"`
	RdvCetteSemaine int `json:"rdv_cette_semaine"`
	RdvCeMois       int `json:"rdv_ce_mois"`

	ParStatut  map[demandesdto.StatutDemande]int  `json:"par_statut"`
	ParUrgence map[demandesdto.UrgenceDemande]int `json:"par_urgence"`

	AgeMoyen                float64 `json:"age_moyen"`
	SoinsParJour            float64 `json:"soins_par_jour"`
	TempsAttenteMoyenHeures float64 `json:"temps_attente_moyen_heures"`
}

// CritereTri critère de tri de la liste patients
type CritereTri string

const (
	TriNom     CritereTri = "nom"
	TriDate    CritereTri = "date"
	TriUrgence CritereTri = "urgence"
)

// Valid vérifie que la valeur appartient à l'énumération fermée
func (c CritereTri) Valid() bool {
	switch c {
	case TriNom, TriDate, TriUrgence:
		return true
	}
	return false
}

// OrdreTri sens du tri
type OrdreTri string

const (
	OrdreAscendant  OrdreTri = "asc"
	OrdreDescendant OrdreTri = "desc"
)

// Valid vérifie que la valeur appartient à l'énumération fermée
func (o OrdreTri) Valid() bool {
	return o == OrdreAscendant || o == OrdreDescendant
}
