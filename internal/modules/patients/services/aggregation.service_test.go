package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rdv-soins-core/internal/app/config"
	demandesdto "rdv-soins-core/internal/modules/demandes/dto"
)

var maintenant = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

func configCabinetTest() *config.Config {
	return &config.Config{
		Cabinet: config.CabinetConfig{
			FenetreActiviteJours:    90,
			FenetreNouveauJours:     30,
			WizardSessionTTLMinutes: 60,
		},
	}
}

func snapshotTest(id uuid.UUID, nom, prenom string) *demandesdto.PatientSnapshot {
	return &demandesdto.PatientSnapshot{
		ID:            id,
		Nom:           nom,
		Prenom:        prenom,
		Telephone:     "06 12 34 56 78",
		Rue:           "12 rue des Lilas",
		CodePostal:    "69003",
		Ville:         "Lyon",
		DateNaissance: time.Date(1952, 4, 18, 0, 0, 0, 0, time.UTC),
	}
}

func demandeTest(patient *demandesdto.PatientSnapshot, typeSoin string, urgence demandesdto.UrgenceDemande, statut demandesdto.StatutDemande, createdAt time.Time, dateRdv *time.Time) demandesdto.DemandeRdv {
	return demandesdto.DemandeRdv{
		ID:        uuid.New(),
		Patient:   patient,
		TypeSoin:  typeSoin,
		Urgence:   urgence,
		Statut:    statut,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
		DateRdv:   dateRdv,
	}
}

func TestExtractPatients_ScenarioDubois(t *testing.T) {
	service := NewPatientAggregationService(configCabinetTest())

	dubois := snapshotTest(uuid.New(), "Dubois", "Marie")
	demain := maintenant.AddDate(0, 0, 1)
	ilYaDixJours := maintenant.AddDate(0, 0, -10)

	demandes := []demandesdto.DemandeRdv{
		demandeTest(dubois, "injection insuline", demandesdto.UrgenceUrgente, demandesdto.StatutConfirmee, maintenant.AddDate(0, 0, -2), &demain),
		demandeTest(dubois, "pansement", demandesdto.UrgenceNormale, demandesdto.StatutTerminee, maintenant.AddDate(0, 0, -12), &ilYaDixJours),
	}

	patients := service.ExtractPatients(demandes, maintenant)
	require.Len(t, patients, 1)

	p := patients[0]
	assert.Equal(t, "Dubois", p.Nom)
	assert.Equal(t, 2, p.NombreDemandes)
	assert.True(t, p.EstUrgent)
	assert.True(t, p.EstActif)
	require.NotNil(t, p.ProchainRdv)
	assert.Equal(t, demain, *p.ProchainRdv)
	// Dernière activité = date de rendez-vous maximale sur l'historique
	assert.Equal(t, demain, p.DerniereSoin)
	// Historique en ordre chronologique
	require.Len(t, p.SoinsRecus, 2)
	assert.Equal(t, "pansement", p.SoinsRecus[0].Soin)
	assert.Equal(t, "injection insuline", p.SoinsRecus[1].Soin)
}

func TestExtractPatients_Regroupement(t *testing.T) {
	service := NewPatientAggregationService(configCabinetTest())

	dubois := snapshotTest(uuid.New(), "Dubois", "Marie")
	martin := snapshotTest(uuid.New(), "Martin", "Paul")

	demandes := []demandesdto.DemandeRdv{
		demandeTest(dubois, "pansement", demandesdto.UrgenceNormale, demandesdto.StatutEnAttente, maintenant.AddDate(0, 0, -3), nil),
		demandeTest(martin, "prise de sang", demandesdto.UrgenceFaible, demandesdto.StatutConfirmee, maintenant.AddDate(0, 0, -2), nil),
		demandeTest(dubois, "pansement", demandesdto.UrgenceNormale, demandesdto.StatutTerminee, maintenant.AddDate(0, 0, -1), nil),
	}

	patients := service.ExtractPatients(demandes, maintenant)
	require.Len(t, patients, 2)

	// Ordre de première apparition conservé
	assert.Equal(t, "Dubois", patients[0].Nom)
	assert.Equal(t, "Martin", patients[1].Nom)

	// Invariant de comptage : la somme des demandes par patient égale
	// le nombre de demandes portant un snapshot
	total := 0
	for _, p := range patients {
		total += p.NombreDemandes
	}
	assert.Equal(t, len(demandes), total)
}

func TestExtractPatients_Idempotence(t *testing.T) {
	service := NewPatientAggregationService(configCabinetTest())

	dubois := snapshotTest(uuid.New(), "Dubois", "Marie")
	demandes := []demandesdto.DemandeRdv{
		demandeTest(dubois, "pansement", demandesdto.UrgenceNormale, demandesdto.StatutEnAttente, maintenant.AddDate(0, 0, -3), nil),
		demandeTest(dubois, "injection insuline", demandesdto.UrgenceElevee, demandesdto.StatutConfirmee, maintenant.AddDate(0, 0, -1), nil),
	}

	premier := service.ExtractPatients(demandes, maintenant)
	second := service.ExtractPatients(demandes, maintenant)
	assert.Equal(t, premier, second)
}

func TestExtractPatients_DemandeSansPatientIgnoree(t *testing.T) {
	service := NewPatientAggregationService(configCabinetTest())

	dubois := snapshotTest(uuid.New(), "Dubois", "Marie")
	demandes := []demandesdto.DemandeRdv{
		demandeTest(dubois, "pansement", demandesdto.UrgenceNormale, demandesdto.StatutEnAttente, maintenant.AddDate(0, 0, -1), nil),
		{ID: uuid.New(), TypeSoin: "prise de sang", Statut: demandesdto.StatutEnAttente, CreatedAt: maintenant},
	}

	patients := service.ExtractPatients(demandes, maintenant)
	require.Len(t, patients, 1)
	assert.Equal(t, 1, patients[0].NombreDemandes)
}

func TestExtractPatients_UrgenceClotureeNeMarquePas(t *testing.T) {
	service := NewPatientAggregationService(configCabinetTest())

	dubois := snapshotTest(uuid.New(), "Dubois", "Marie")
	demandes := []demandesdto.DemandeRdv{
		// URGENTE mais terminée : le patient n'est pas marqué urgent
		demandeTest(dubois, "injection insuline", demandesdto.UrgenceUrgente, demandesdto.StatutTerminee, maintenant.AddDate(0, 0, -5), nil),
		demandeTest(dubois, "pansement", demandesdto.UrgenceNormale, demandesdto.StatutEnAttente, maintenant.AddDate(0, 0, -1), nil),
	}

	patients := service.ExtractPatients(demandes, maintenant)
	require.Len(t, patients, 1)
	assert.False(t, patients[0].EstUrgent)

	// La même demande encore ouverte marque le patient
	demandes[0].Statut = demandesdto.StatutEnAttente
	patients = service.ExtractPatients(demandes, maintenant)
	assert.True(t, patients[0].EstUrgent)
}

func TestExtractPatients_FenetreActivite(t *testing.T) {
	service := NewPatientAggregationService(configCabinetTest())

	ancien := snapshotTest(uuid.New(), "Durand", "Jacques")
	recent := snapshotTest(uuid.New(), "Dubois", "Marie")

	demandes := []demandesdto.DemandeRdv{
		demandeTest(ancien, "pansement", demandesdto.UrgenceNormale, demandesdto.StatutTerminee, maintenant.AddDate(0, 0, -120), nil),
		demandeTest(recent, "pansement", demandesdto.UrgenceNormale, demandesdto.StatutTerminee, maintenant.AddDate(0, 0, -10), nil),
	}

	patients := service.ExtractPatients(demandes, maintenant)
	require.Len(t, patients, 2)
	assert.False(t, patients[0].EstActif)
	assert.True(t, patients[1].EstActif)
}

func TestExtractPatients_ProchainRdvStrictementFutur(t *testing.T) {
	service := NewPatientAggregationService(configCabinetTest())

	dubois := snapshotTest(uuid.New(), "Dubois", "Marie")
	passe := maintenant.AddDate(0, 0, -1)
	demandes := []demandesdto.DemandeRdv{
		demandeTest(dubois, "pansement", demandesdto.UrgenceNormale, demandesdto.StatutTerminee, maintenant.AddDate(0, 0, -5), &passe),
	}

	patients := service.ExtractPatients(demandes, maintenant)
	require.Len(t, patients, 1)
	assert.Nil(t, patients[0].ProchainRdv)
}

func TestExtractPatients_PathologiesRecurrentes(t *testing.T) {
	service := NewPatientAggregationService(configCabinetTest())

	dubois := snapshotTest(uuid.New(), "Dubois", "Marie")
	demandes := []demandesdto.DemandeRdv{
		demandeTest(dubois, "pansement", demandesdto.UrgenceNormale, demandesdto.StatutTerminee, maintenant.AddDate(0, 0, -9), nil),
		demandeTest(dubois, "pansement", demandesdto.UrgenceNormale, demandesdto.StatutTerminee, maintenant.AddDate(0, 0, -6), nil),
		demandeTest(dubois, "injection insuline", demandesdto.UrgenceNormale, demandesdto.StatutTerminee, maintenant.AddDate(0, 0, -3), nil),
	}

	patients := service.ExtractPatients(demandes, maintenant)
	require.Len(t, patients, 1)
	// Un seul soin répété au moins deux fois
	assert.Equal(t, []string{"pansement"}, patients[0].PathologiesRecurrentes)
}

func TestExtractPatients_SnapshotLePlusRecent(t *testing.T) {
	service := NewPatientAggregationService(configCabinetTest())

	id := uuid.New()
	ancien := snapshotTest(id, "Dubois", "Marie")
	corrige := snapshotTest(id, "Dubois-Laurent", "Marie")
	corrige.Ville = "Villeurbanne"

	ancienne := demandeTest(ancien, "pansement", demandesdto.UrgenceNormale, demandesdto.StatutTerminee, maintenant.AddDate(0, 0, -20), nil)
	recente := demandeTest(corrige, "pansement", demandesdto.UrgenceNormale, demandesdto.StatutEnAttente, maintenant.AddDate(0, 0, -1), nil)

	patients := service.ExtractPatients([]demandesdto.DemandeRdv{ancienne, recente}, maintenant)
	require.Len(t, patients, 1)
	assert.Equal(t, "Dubois-Laurent", patients[0].Nom)
	assert.Contains(t, patients[0].Adresse, "Villeurbanne")
}

func TestExtractPatients_DescriptionStructureeResumee(t *testing.T) {
	service := NewPatientAggregationService(configCabinetTest())

	dubois := snapshotTest(uuid.New(), "Dubois", "Marie")
	demande := demandeTest(dubois, "injection insuline", demandesdto.UrgenceNormale, demandesdto.StatutEnAttente, maintenant.AddDate(0, 0, -1), nil)
	demande.Description = `{"soin":{"categorie":"injection insuline","precisions":"matin et soir"},"infirmiere":"Sophie"}`

	illisible := demandeTest(dubois, "pansement", demandesdto.UrgenceNormale, demandesdto.StatutEnAttente, maintenant.AddDate(0, 0, -2), nil)
	illisible.Description = "texte libre saisi au téléphone"

	patients := service.ExtractPatients([]demandesdto.DemandeRdv{demande, illisible}, maintenant)
	require.Len(t, patients, 1)
	require.Len(t, patients[0].SoinsRecus, 2)

	// Payload illisible : description nulle, jamais d'erreur
	assert.Nil(t, patients[0].SoinsRecus[0].Description)

	structure := patients[0].SoinsRecus[1]
	require.NotNil(t, structure.Description)
	assert.Equal(t, "matin et soir", *structure.Description)
	require.NotNil(t, structure.Infirmiere)
	assert.Equal(t, "Sophie", *structure.Infirmiere)
}
