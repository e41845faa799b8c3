package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rdv-soins-core/internal/infrastructure/database/redis"
	demandesdto "rdv-soins-core/internal/modules/demandes/dto"
	"rdv-soins-core/internal/modules/wizard/dto"
)

type fakeDemandeCreator struct {
	created []*demandesdto.CreateDemandeRequest
	err     error
}

func (f *fakeDemandeCreator) Create(ctx context.Context, req *demandesdto.CreateDemandeRequest) (*demandesdto.DemandeRdv, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, req)
	return &demandesdto.DemandeRdv{
		ID:       uuid.New(),
		TypeSoin: req.TypeSoin,
		Urgence:  req.Urgence,
		Statut:   demandesdto.StatutEnAttente,
	}, nil
}

func newTestService(t *testing.T) (*WizardSessionService, *miniredis.Miniredis, *fakeDemandeCreator) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	creator := &fakeDemandeCreator{}
	service := NewWizardSessionService(client, redis.NewRedisKeyGenerator(), time.Hour, creator)
	return service, mr, creator
}

func etapeSoinTest() *dto.EtapeSoin {
	lieu := "à domicile"
	return &dto.EtapeSoin{
		TypeSoin:   "injection insuline",
		Precisions: "matin et soir",
		Urgence:    demandesdto.UrgenceElevee,
		Lieu:       &lieu,
	}
}

func etapeDisponibilitesTest() *dto.EtapeDisponibilites {
	date := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	creneau := "08:30"
	return &dto.EtapeDisponibilites{
		DateSouhaitee: &date,
		Creneau:       &creneau,
	}
}

func etapePatientTest() *dto.EtapePatient {
	return &dto.EtapePatient{
		Nom:           "Dubois",
		Prenom:        "Marie",
		Telephone:     "06 12 34 56 78",
		Rue:           "12 rue des Lilas",
		CodePostal:    "69003",
		Ville:         "Lyon",
		DateNaissance: time.Date(1952, 4, 18, 0, 0, 0, 0, time.UTC),
	}
}

func TestWizardSession_InitPuisGet(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	session, err := service.Init(ctx)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, session.ID)
	assert.False(t, session.Complete())

	relue, err := service.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, relue.ID)
	assert.Nil(t, relue.Soin)
	assert.Nil(t, relue.Patient)
}

func TestWizardSession_GetInconnue(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestWizardSession_EtapesIndependantes(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	session, err := service.Init(ctx)
	require.NoError(t, err)

	_, err = service.SaveSoin(ctx, session.ID, etapeSoinTest())
	require.NoError(t, err)

	_, err = service.SavePatient(ctx, session.ID, etapePatientTest())
	require.NoError(t, err)

	relue, err := service.Get(ctx, session.ID)
	require.NoError(t, err)

	// Chaque étape n'écrase que sa propre section
	require.NotNil(t, relue.Soin)
	assert.Equal(t, "injection insuline", relue.Soin.TypeSoin)
	require.NotNil(t, relue.Patient)
	assert.Equal(t, "Dubois", relue.Patient.Nom)
	assert.Nil(t, relue.Disponibilites)
	assert.False(t, relue.Complete())
}

func TestWizardSession_UrgenceParDefaut(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	session, err := service.Init(ctx)
	require.NoError(t, err)

	etape := etapeSoinTest()
	etape.Urgence = ""
	relue, err := service.SaveSoin(ctx, session.ID, etape)
	require.NoError(t, err)
	assert.Equal(t, demandesdto.UrgenceNormale, relue.Soin.Urgence)
}

func TestWizardSession_UrgenceInvalide(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	session, err := service.Init(ctx)
	require.NoError(t, err)

	etape := etapeSoinTest()
	etape.Urgence = "CRITIQUE"
	_, err = service.SaveSoin(ctx, session.ID, etape)
	assert.Error(t, err)
}

func TestWizardSession_Expiration(t *testing.T) {
	service, mr, _ := newTestService(t)
	ctx := context.Background()

	session, err := service.Init(ctx)
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = service.Get(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestWizardSession_SubmitIncomplete(t *testing.T) {
	service, _, creator := newTestService(t)
	ctx := context.Background()

	session, err := service.Init(ctx)
	require.NoError(t, err)

	_, err = service.SaveSoin(ctx, session.ID, etapeSoinTest())
	require.NoError(t, err)

	_, err = service.Submit(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionIncomplete)
	assert.Empty(t, creator.created)

	// La session survit à une soumission refusée
	_, err = service.Get(ctx, session.ID)
	assert.NoError(t, err)
}

func TestWizardSession_SubmitComplete(t *testing.T) {
	service, _, creator := newTestService(t)
	ctx := context.Background()

	session, err := service.Init(ctx)
	require.NoError(t, err)

	_, err = service.SaveSoin(ctx, session.ID, etapeSoinTest())
	require.NoError(t, err)
	medecin := "Dr Morel"
	_, err = service.SaveOrdonnance(ctx, session.ID, &dto.EtapeOrdonnance{
		Disponible:   true,
		Medecin:      &medecin,
		Renouvelable: true,
	})
	require.NoError(t, err)
	_, err = service.SaveDisponibilites(ctx, session.ID, etapeDisponibilitesTest())
	require.NoError(t, err)
	_, err = service.SavePatient(ctx, session.ID, etapePatientTest())
	require.NoError(t, err)

	demande, err := service.Submit(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "injection insuline", demande.TypeSoin)

	require.Len(t, creator.created, 1)
	req := creator.created[0]
	assert.Equal(t, "Dubois", req.Patient.Nom)
	assert.Equal(t, demandesdto.UrgenceElevee, req.Urgence)
	require.NotNil(t, req.DateRdv)
	assert.Equal(t, time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC), *req.DateRdv)
	require.NotNil(t, req.HeureRdv)
	assert.Equal(t, "08:30", *req.HeureRdv)

	// Description stockée sous forme structurée
	description := demandesdto.ParseDescription(req.Description)
	assert.True(t, description.Structuree)
	require.NotNil(t, description.Details)
	assert.Equal(t, "injection insuline", description.Details.Categorie)
	require.NotNil(t, description.Ordonnance)
	assert.Equal(t, "Dr Morel", description.Ordonnance.Medecin)

	// Clear-on-submit
	_, err = service.Get(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestWizardSession_SubmitJourneeEntiere(t *testing.T) {
	service, _, creator := newTestService(t)
	ctx := context.Background()

	session, err := service.Init(ctx)
	require.NoError(t, err)

	_, err = service.SaveSoin(ctx, session.ID, etapeSoinTest())
	require.NoError(t, err)
	date := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	_, err = service.SaveDisponibilites(ctx, session.ID, &dto.EtapeDisponibilites{
		DateSouhaitee:  &date,
		JourneeEntiere: true,
	})
	require.NoError(t, err)
	_, err = service.SavePatient(ctx, session.ID, etapePatientTest())
	require.NoError(t, err)

	_, err = service.Submit(ctx, session.ID)
	require.NoError(t, err)

	require.Len(t, creator.created, 1)
	require.NotNil(t, creator.created[0].HeureRdv)
	assert.Equal(t, demandesdto.HeureJourneeEntiere, *creator.created[0].HeureRdv)
}

func TestWizardSession_Reset(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	session, err := service.Init(ctx)
	require.NoError(t, err)

	require.NoError(t, service.Reset(ctx, session.ID))

	_, err = service.Get(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Reset d'une session déjà absente reste sans erreur
	assert.NoError(t, service.Reset(ctx, session.ID))
}
