package services

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"rdv-soins-core/internal/modules/patients/dto"
)

// TrierPatients retourne une nouvelle liste triée selon le critère donné.
// La direction est une inversion uniforme du signe du comparateur :
// elle ne modifie jamais les règles de départage, seulement l'ordre global.
func TrierPatients(patients []dto.PatientInfo, critere dto.CritereTri, ordre dto.OrdreTri) []dto.PatientInfo {
	tries := make([]dto.PatientInfo, len(patients))
	copy(tries, patients)

	cmp := comparateur(critere)
	inverse := ordre == dto.OrdreDescendant

	sort.SliceStable(tries, func(i, j int) bool {
		c := cmp(&tries[i], &tries[j])
		if inverse {
			c = -c
		}
		return c < 0
	})

	return tries
}

func comparateur(critere dto.CritereTri) func(a, b *dto.PatientInfo) int {
	switch critere {
	case dto.TriDate:
		return comparerParDate
	case dto.TriUrgence:
		return comparerParUrgence
	default:
		// Collation française sur le nom
		collator := collate.New(language.French, collate.IgnoreCase)
		return func(a, b *dto.PatientInfo) int {
			return collator.CompareString(a.Nom, b.Nom)
		}
	}
}

// comparerParDate dernière activité; une date zéro se comporte comme
// l'époque et reste donc toujours du même côté quelle que soit la direction
func comparerParDate(a, b *dto.PatientInfo) int {
	switch {
	case a.DerniereSoin.Before(b.DerniereSoin):
		return -1
	case a.DerniereSoin.After(b.DerniereSoin):
		return 1
	}
	return 0
}

// comparerParUrgence urgents d'abord; départage sur prochain rendez-vous
// croissant, l'absence de rendez-vous valant +infini
func comparerParUrgence(a, b *dto.PatientInfo) int {
	if a.EstUrgent != b.EstUrgent {
		if a.EstUrgent {
			return -1
		}
		return 1
	}

	switch {
	case a.ProchainRdv == nil && b.ProchainRdv == nil:
		return 0
	case a.ProchainRdv == nil:
		return 1
	case b.ProchainRdv == nil:
		return -1
	case a.ProchainRdv.Before(*b.ProchainRdv):
		return -1
	case a.ProchainRdv.After(*b.ProchainRdv):
		return 1
	}
	return 0
}
