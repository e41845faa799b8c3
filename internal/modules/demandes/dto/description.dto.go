package dto

import (
	"encoding/json"
	"strings"
)

// DescriptionSoin forme parsée du payload description d'une demande.
// Le payload est stocké en texte; le parsing est défensif : en cas d'échec
// la variante brute est conservée et Structuree vaut false.
type DescriptionSoin struct {
	Structuree bool
	Brute      string

	Details        *DetailsSoin
	Ordonnance     *OrdonnanceInfo
	DatePreferee   *string
	CreneauPrefere *string
	Urgence        *string
	Lieu           *string
	Infirmiere     *string
}

// DetailsSoin précisions saisies à l'étape "type de soin" du wizard
type DetailsSoin struct {
	Categorie  string  `json:"categorie"`
	Precisions string  `json:"precisions"`
	Materiel   *string `json:"materiel,omitempty"`
}

// OrdonnanceInfo sous-dossier prescription éventuel
type OrdonnanceInfo struct {
	Medecin          string  `json:"medecin"`
	DatePrescription *string `json:"date_prescription,omitempty"`
	Renouvelable     bool    `json:"renouvelable"`
	Document         *string `json:"document,omitempty"`
}

// Forme sérialisée du payload en base
type descriptionPayload struct {
	Soin           *DetailsSoin    `json:"soin,omitempty"`
	Ordonnance     *OrdonnanceInfo `json:"ordonnance,omitempty"`
	DatePreferee   *string         `json:"date_preferee,omitempty"`
	CreneauPrefere *string         `json:"creneau_prefere,omitempty"`
	Urgence        *string         `json:"urgence,omitempty"`
	Lieu           *string         `json:"lieu,omitempty"`
	Infirmiere     *string         `json:"infirmiere,omitempty"`
}

// ParseDescription parse le payload description d'une demande.
// Ne retourne jamais d'erreur : un payload illisible est conservé brut.
func ParseDescription(raw string) DescriptionSoin {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DescriptionSoin{Structuree: false, Brute: raw}
	}

	var payload descriptionPayload
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return DescriptionSoin{Structuree: false, Brute: raw}
	}

	return DescriptionSoin{
		Structuree:     true,
		Brute:          raw,
		Details:        payload.Soin,
		Ordonnance:     payload.Ordonnance,
		DatePreferee:   payload.DatePreferee,
		CreneauPrefere: payload.CreneauPrefere,
		Urgence:        payload.Urgence,
		Lieu:           payload.Lieu,
		Infirmiere:     payload.Infirmiere,
	}
}

// Resume aplatit le payload en texte lisible pour l'affichage.
// Retourne nil quand le payload n'a pas pu être parsé ou ne contient rien.
func (d DescriptionSoin) Resume() *string {
	if !d.Structuree {
		return nil
	}

	parts := []string{}
	if d.Details != nil {
		if d.Details.Precisions != "" {
			parts = append(parts, d.Details.Precisions)
		} else if d.Details.Categorie != "" {
			parts = append(parts, d.Details.Categorie)
		}
		if d.Details.Materiel != nil && *d.Details.Materiel != "" {
			parts = append(parts, "matériel: "+*d.Details.Materiel)
		}
	}
	if d.Ordonnance != nil && d.Ordonnance.Medecin != "" {
		parts = append(parts, "ordonnance "+d.Ordonnance.Medecin)
	}
	if d.Lieu != nil && *d.Lieu != "" {
		parts = append(parts, *d.Lieu)
	}

	if len(parts) == 0 {
		return nil
	}

	resume := strings.Join(parts, " / ")
	return &resume
}

// NouvelleDescription sérialise un payload structuré pour stockage
func NouvelleDescription(d DescriptionSoin) (string, error) {
	payload := descriptionPayload{
		Soin:           d.Details,
		Ordonnance:     d.Ordonnance,
		DatePreferee:   d.DatePreferee,
		CreneauPrefere: d.CreneauPrefere,
		Urgence:        d.Urgence,
		Lieu:           d.Lieu,
		Infirmiere:     d.Infirmiere,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
