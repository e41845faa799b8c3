package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"rdv-soins-core/internal/app/config"
	demandesdto "rdv-soins-core/internal/modules/demandes/dto"
	"rdv-soins-core/internal/modules/patients/dto"
)

// PatientAggregationService transforme la liste plate des demandes en
// annuaire patients dédupliqué et enrichi. Calcul pur, en mémoire,
// sans effet de bord : deux appels sur les mêmes entrées produisent
// le même résultat.
type PatientAggregationService struct {
	fenetreActivite time.Duration
}

// NewPatientAggregationService crée une nouvelle instance du service
func NewPatientAggregationService(cfg *config.Config) *PatientAggregationService {
	return &PatientAggregationService{
		fenetreActivite: cfg.Cabinet.FenetreActivite(),
	}
}

// ExtractPatients regroupe les demandes par identifiant patient et calcule
// les attributs dérivés de chaque fiche. Une demande sans snapshot patient
// est écartée (loguée, jamais fatale) : un résultat partiel vaut toujours
// mieux qu'un tableau de bord vide.
func (s *PatientAggregationService) ExtractPatients(demandes []demandesdto.DemandeRdv, now time.Time) []dto.PatientInfo {
	groupes := map[uuid.UUID][]demandesdto.DemandeRdv{}
	ordre := []uuid.UUID{}
	ignorees := 0

	for _, demande := range demandes {
		if demande.Patient == nil {
			ignorees++
			continue
		}
		id := demande.Patient.ID
		if _, vu := groupes[id]; !vu {
			ordre = append(ordre, id)
		}
		groupes[id] = append(groupes[id], demande)
	}

	if ignorees > 0 {
		fmt.Printf("[PATIENTS] ⚠️ %d demande(s) sans snapshot patient ignorée(s)\n", ignorees)
	}

	patients := make([]dto.PatientInfo, 0, len(ordre))
	for _, id := range ordre {
		patients = append(patients, s.buildPatient(id, groupes[id], now))
	}

	return patients
}

// buildPatient construit la fiche d'un groupe de demandes partageant
// le même identifiant patient
func (s *PatientAggregationService) buildPatient(id uuid.UUID, groupe []demandesdto.DemandeRdv, now time.Time) dto.PatientInfo {
	// Snapshot démographique : celui de la demande la plus récemment mise à
	// jour fait foi, les champs peuvent avoir été corrigés entre deux demandes
	reference := groupe[0]
	for _, demande := range groupe[1:] {
		if demande.UpdatedAt.After(reference.UpdatedAt) {
			reference = demande
		}
	}
	snapshot := reference.Patient

	patient := dto.PatientInfo{
		ID:            id,
		Nom:           snapshot.Nom,
		Prenom:        snapshot.Prenom,
		Telephone:     snapshot.Telephone,
		Email:         snapshot.Email,
		Adresse:       snapshot.AdresseComplete(),
		DateNaissance: snapshot.DateNaissance,
	}

	occurrences := map[string]int{}
	var prochainRdv *time.Time

	for _, demande := range groupe {
		soin := dto.SoinRecu{
			Date:    dateSoin(demande),
			Soin:    demande.TypeSoin,
			Statut:  demande.Statut,
			Urgence: demande.Urgence,
		}

		// Parsing défensif du payload : null plutôt qu'une erreur
		description := demandesdto.ParseDescription(demande.Description)
		soin.Description = description.Resume()
		soin.Infirmiere = description.Infirmiere

		patient.SoinsRecus = append(patient.SoinsRecus, soin)

		occurrences[demande.TypeSoin]++

		if soin.Date.After(patient.DerniereSoin) {
			patient.DerniereSoin = soin.Date
		}

		if patient.PremiereDemande.IsZero() || demande.CreatedAt.Before(patient.PremiereDemande) {
			patient.PremiereDemande = demande.CreatedAt
		}

		if demande.DateRdv != nil && demande.DateRdv.After(now) {
			if prochainRdv == nil || demande.DateRdv.Before(*prochainRdv) {
				rdv := *demande.DateRdv
				prochainRdv = &rdv
			}
		}

		if demande.Urgence == demandesdto.UrgenceUrgente && !demande.Statut.EstCloturee() {
			patient.EstUrgent = true
		}
	}

	// Historique en ordre chronologique
	sort.SliceStable(patient.SoinsRecus, func(i, j int) bool {
		return patient.SoinsRecus[i].Date.Before(patient.SoinsRecus[j].Date)
	})

	patient.NombreDemandes = len(groupe)
	patient.ProchainRdv = prochainRdv
	patient.EstActif = now.Sub(patient.DerniereSoin) <= s.fenetreActivite

	patient.PathologiesRecurrentes = []string{}
	for soin, n := range occurrences {
		if n >= 2 {
			patient.PathologiesRecurrentes = append(patient.PathologiesRecurrentes, soin)
		}
	}
	sort.Strings(patient.PathologiesRecurrentes)

	return patient
}

// dateSoin date d'une ligne d'historique : date de rendez-vous si fixée,
// sinon date de création de la demande
func dateSoin(demande demandesdto.DemandeRdv) time.Time {
	if demande.DateRdv != nil {
		return *demande.DateRdv
	}
	return demande.CreatedAt
}
