package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rdv-soins-core/internal/modules/patients/dto"
)

func patientTri(nom string, derniereSoin time.Time, estUrgent bool, prochainRdv *time.Time) dto.PatientInfo {
	return dto.PatientInfo{
		ID:           uuid.New(),
		Nom:          nom,
		DerniereSoin: derniereSoin,
		EstUrgent:    estUrgent,
		ProchainRdv:  prochainRdv,
	}
}

func noms(patients []dto.PatientInfo) []string {
	resultat := make([]string, len(patients))
	for i, p := range patients {
		resultat[i] = p.Nom
	}
	return resultat
}

func TestTrierPatients_ParNomCollationFrancaise(t *testing.T) {
	patients := []dto.PatientInfo{
		patientTri("Étienne", time.Time{}, false, nil),
		patientTri("dubois", time.Time{}, false, nil),
		patientTri("Martin", time.Time{}, false, nil),
		patientTri("Evrard", time.Time{}, false, nil),
	}

	tries := TrierPatients(patients, dto.TriNom, dto.OrdreAscendant)

	// Collation française : É trie avec E, la casse est ignorée
	assert.Equal(t, []string{"dubois", "Étienne", "Evrard", "Martin"}, noms(tries))
}

func TestTrierPatients_ParDate(t *testing.T) {
	patients := []dto.PatientInfo{
		patientTri("Recent", maintenant.AddDate(0, 0, -1), false, nil),
		patientTri("Ancien", maintenant.AddDate(0, 0, -60), false, nil),
		patientTri("Median", maintenant.AddDate(0, 0, -10), false, nil),
	}

	tries := TrierPatients(patients, dto.TriDate, dto.OrdreAscendant)
	assert.Equal(t, []string{"Ancien", "Median", "Recent"}, noms(tries))

	tries = TrierPatients(patients, dto.TriDate, dto.OrdreDescendant)
	assert.Equal(t, []string{"Recent", "Median", "Ancien"}, noms(tries))
}

func TestTrierPatients_DateZeroCommeEpoque(t *testing.T) {
	patients := []dto.PatientInfo{
		patientTri("AvecDate", maintenant.AddDate(0, 0, -5), false, nil),
		patientTri("SansDate", time.Time{}, false, nil),
	}

	tries := TrierPatients(patients, dto.TriDate, dto.OrdreAscendant)
	assert.Equal(t, []string{"SansDate", "AvecDate"}, noms(tries))

	tries = TrierPatients(patients, dto.TriDate, dto.OrdreDescendant)
	assert.Equal(t, []string{"AvecDate", "SansDate"}, noms(tries))
}

func TestTrierPatients_ParUrgence(t *testing.T) {
	demain := maintenant.AddDate(0, 0, 1)
	apresDemain := maintenant.AddDate(0, 0, 2)

	patients := []dto.PatientInfo{
		patientTri("CalmeSansRdv", maintenant, false, nil),
		patientTri("UrgentTard", maintenant, true, &apresDemain),
		patientTri("CalmeAvecRdv", maintenant, false, &demain),
		patientTri("UrgentTot", maintenant, true, &demain),
	}

	tries := TrierPatients(patients, dto.TriUrgence, dto.OrdreAscendant)

	// Urgents d'abord, départagés par prochain rendez-vous croissant;
	// l'absence de rendez-vous vaut +infini
	assert.Equal(t, []string{"UrgentTot", "UrgentTard", "CalmeAvecRdv", "CalmeSansRdv"}, noms(tries))
}

func TestTrierPatients_InversionUniformeDuSigne(t *testing.T) {
	demain := maintenant.AddDate(0, 0, 1)
	apresDemain := maintenant.AddDate(0, 0, 2)

	patients := []dto.PatientInfo{
		patientTri("UrgentTot", maintenant, true, &demain),
		patientTri("UrgentTard", maintenant, true, &apresDemain),
		patientTri("Calme", maintenant, false, &demain),
	}

	asc := TrierPatients(patients, dto.TriUrgence, dto.OrdreAscendant)
	desc := TrierPatients(patients, dto.TriUrgence, dto.OrdreDescendant)

	// La direction inverse l'ordre global sans reclasser personne :
	// desc est exactement le miroir de asc
	require.Len(t, desc, len(asc))
	for i := range asc {
		assert.Equal(t, asc[i].Nom, desc[len(desc)-1-i].Nom)
	}
}

func TestTrierPatients_StabiliteSurEgalite(t *testing.T) {
	meme := maintenant.AddDate(0, 0, -3)
	patients := []dto.PatientInfo{
		patientTri("Premier", meme, false, nil),
		patientTri("Deuxieme", meme, false, nil),
		patientTri("Troisieme", meme, false, nil),
	}

	tries := TrierPatients(patients, dto.TriDate, dto.OrdreAscendant)
	assert.Equal(t, []string{"Premier", "Deuxieme", "Troisieme"}, noms(tries))
}

func TestTrierPatients_EntreeNonMutee(t *testing.T) {
	patients := []dto.PatientInfo{
		patientTri("Zola", maintenant.AddDate(0, 0, -1), false, nil),
		patientTri("Aubert", maintenant.AddDate(0, 0, -2), false, nil),
	}

	TrierPatients(patients, dto.TriNom, dto.OrdreAscendant)

	// La liste d'origine garde son ordre
	assert.Equal(t, []string{"Zola", "Aubert"}, noms(patients))
}
