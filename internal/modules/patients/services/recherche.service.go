package services

import (
	"strings"
	"time"

	"rdv-soins-core/internal/app/config"
	"rdv-soins-core/internal/modules/patients/dto"
	"rdv-soins-core/internal/shared/utils"
)

// RechercheService filtre l'annuaire patients en mémoire.
// Jamais de mutation des entrées : chaque appel retourne une nouvelle liste,
// l'appelant peut réinvoquer avec d'autres filtres sans réagréger.
type RechercheService struct {
	fenetreNouveau time.Duration
}

// NewRechercheService crée une nouvelle instance du service
func NewRechercheService(cfg *config.Config) *RechercheService {
	return &RechercheService{
		fenetreNouveau: cfg.Cabinet.FenetreNouveau(),
	}
}

// SearchPatients applique le terme de recherche puis les filtres actifs.
// Le terme et chaque catégorie de filtre se combinent en ET; au sein du
// filtre pathologies, une correspondance suffit (OU). Un terme vide ou
// blanc ne filtre rien.
func (s *RechercheService) SearchPatients(patients []dto.PatientInfo, searchTerm string, filtres dto.FiltresPatients, now time.Time) []dto.PatientInfo {
	terme := strings.ToLower(strings.TrimSpace(searchTerm))
	termeDigits := utils.NormaliserTelephone(terme)

	resultats := make([]dto.PatientInfo, 0, len(patients))
	for _, patient := range patients {
		if terme != "" && !correspondTerme(&patient, terme, termeDigits) {
			continue
		}
		if !s.correspondFiltres(&patient, filtres, now) {
			continue
		}
		resultats = append(resultats, patient)
	}

	return resultats
}

// correspondTerme teste le terme sur nom, prénom, téléphone (hors
// formatage), adresse et libellés de soins. Une seule correspondance suffit.
func correspondTerme(patient *dto.PatientInfo, terme, termeDigits string) bool {
	nom := strings.ToLower(patient.Nom)
	prenom := strings.ToLower(patient.Prenom)

	if strings.Contains(nom, terme) || strings.Contains(prenom, terme) {
		return true
	}
	if strings.Contains(nom+" "+prenom, terme) || strings.Contains(prenom+" "+nom, terme) {
		return true
	}

	if termeDigits != "" && strings.Contains(utils.NormaliserTelephone(patient.Telephone), termeDigits) {
		return true
	}

	if strings.Contains(strings.ToLower(patient.Adresse), terme) {
		return true
	}

	for _, soin := range patient.SoinsRecus {
		if strings.Contains(strings.ToLower(soin.Soin), terme) {
			return true
		}
	}
	for _, pathologie := range patient.PathologiesRecurrentes {
		if strings.Contains(strings.ToLower(pathologie), terme) {
			return true
		}
	}

	return false
}

// correspondFiltres conjonction de tous les filtres actifs
func (s *RechercheService) correspondFiltres(patient *dto.PatientInfo, filtres dto.FiltresPatients, now time.Time) bool {
	if filtres.Urgences && !patient.EstUrgent {
		return false
	}
	if filtres.Actifs && !patient.EstActif {
		return false
	}
	if filtres.Nouveaux && now.Sub(patient.PremiereDemande) > s.fenetreNouveau {
		return false
	}
	if filtres.RdvAujourdhui {
		if patient.ProchainRdv == nil || !memeJour(*patient.ProchainRdv, now) {
			return false
		}
	}
	if len(filtres.Pathologies) > 0 && !intersecte(patient.PathologiesRecurrentes, filtres.Pathologies) {
		return false
	}
	return true
}

func intersecte(a, b []string) bool {
	for _, va := range a {
		for _, vb := range b {
			if strings.EqualFold(va, vb) {
				return true
			}
		}
	}
	return false
}
