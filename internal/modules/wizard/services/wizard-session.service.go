package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"rdv-soins-core/internal/infrastructure/database/redis"
	demandesdto "rdv-soins-core/internal/modules/demandes/dto"
	"rdv-soins-core/internal/modules/wizard/dto"
)

// ErrSessionIncomplete retournée par Submit quand des étapes manquent
var ErrSessionIncomplete = fmt.Errorf("session wizard incomplète")

// ErrSessionNotFound retournée quand la session a expiré ou n'existe pas
var ErrSessionNotFound = fmt.Errorf("session wizard non trouvée")

// DemandeCreator contrat minimal vers le domaine demandes
type DemandeCreator interface {
	Create(ctx context.Context, req *demandesdto.CreateDemandeRequest) (*demandesdto.DemandeRdv, error)
}

// WizardSessionService gère le cycle de vie des sessions du formulaire
// multi-étapes dans Redis. Chaque mutation rafraîchit le TTL.
type WizardSessionService struct {
	redis    *goredis.Client
	keys     *redis.RedisKeyGenerator
	ttl      time.Duration
	demandes DemandeCreator
}

// NewWizardSessionService crée une nouvelle instance du service
func NewWizardSessionService(
	rdb *goredis.Client,
	keys *redis.RedisKeyGenerator,
	ttl time.Duration,
	demandes DemandeCreator,
) *WizardSessionService {
	return &WizardSessionService{
		redis:    rdb,
		keys:     keys,
		ttl:      ttl,
		demandes: demandes,
	}
}

// Init crée une session vide et retourne son identifiant
func (s *WizardSessionService) Init(ctx context.Context) (*dto.WizardSession, error) {
	now := time.Now().UTC()
	session := &dto.WizardSession{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// Get retourne l'état courant d'une session
func (s *WizardSessionService) Get(ctx context.Context, id uuid.UUID) (*dto.WizardSession, error) {
	key, err := s.key(id)
	if err != nil {
		return nil, err
	}

	data, err := s.redis.Get(ctx, key).Result()
	if err == goredis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read wizard session: %w", err)
	}

	var session dto.WizardSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to decode wizard session: %w", err)
	}

	return &session, nil
}

// SaveSoin enregistre l'étape type de soin
func (s *WizardSessionService) SaveSoin(ctx context.Context, id uuid.UUID, etape *dto.EtapeSoin) (*dto.WizardSession, error) {
	if etape.Urgence == "" {
		etape.Urgence = demandesdto.UrgenceNormale
	}
	if !etape.Urgence.Valid() {
		return nil, fmt.Errorf("urgence invalide: %s", etape.Urgence)
	}

	return s.mutate(ctx, id, func(session *dto.WizardSession) {
		session.Soin = etape
	})
}

// SaveOrdonnance enregistre l'étape prescription
func (s *WizardSessionService) SaveOrdonnance(ctx context.Context, id uuid.UUID, etape *dto.EtapeOrdonnance) (*dto.WizardSession, error) {
	return s.mutate(ctx, id, func(session *dto.WizardSession) {
		session.Ordonnance = etape
	})
}

// SaveDisponibilites enregistre l'étape disponibilités
func (s *WizardSessionService) SaveDisponibilites(ctx context.Context, id uuid.UUID, etape *dto.EtapeDisponibilites) (*dto.WizardSession, error) {
	return s.mutate(ctx, id, func(session *dto.WizardSession) {
		session.Disponibilites = etape
	})
}

// SavePatient enregistre l'étape état civil
func (s *WizardSessionService) SavePatient(ctx context.Context, id uuid.UUID, etape *dto.EtapePatient) (*dto.WizardSession, error) {
	return s.mutate(ctx, id, func(session *dto.WizardSession) {
		session.Patient = etape
	})
}

// Submit transforme une session complète en demande de rendez-vous
// puis efface la session
func (s *WizardSessionService) Submit(ctx context.Context, id uuid.UUID) (*demandesdto.DemandeRdv, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !session.Complete() {
		return nil, ErrSessionIncomplete
	}

	req, err := buildDemandeRequest(session)
	if err != nil {
		return nil, err
	}

	demande, err := s.demandes.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create demande from wizard: %w", err)
	}

	// Clear-on-submit : la session ne survit pas à la soumission
	if err := s.Reset(ctx, id); err != nil {
		fmt.Printf("[WIZARD] ⚠️ Session %s non effacée après soumission: %v\n", id, err)
	}

	return demande, nil
}

// Reset efface une session (redémarrage explicite du formulaire)
func (s *WizardSessionService) Reset(ctx context.Context, id uuid.UUID) error {
	key, err := s.key(id)
	if err != nil {
		return err
	}

	if err := s.redis.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete wizard session: %w", err)
	}

	return nil
}

func (s *WizardSessionService) mutate(ctx context.Context, id uuid.UUID, apply func(*dto.WizardSession)) (*dto.WizardSession, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	apply(session)
	session.UpdatedAt = time.Now().UTC()

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *WizardSessionService) save(ctx context.Context, session *dto.WizardSession) error {
	key, err := s.key(session.ID)
	if err != nil {
		return err
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode wizard session: %w", err)
	}

	if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store wizard session: %w", err)
	}

	return nil
}

func (s *WizardSessionService) key(id uuid.UUID) (string, error) {
	return s.keys.GenerateKey("wizard_session", id.String())
}

// buildDemandeRequest assemble la demande à partir des étapes de la session
func buildDemandeRequest(session *dto.WizardSession) (*demandesdto.CreateDemandeRequest, error) {
	urgence := string(session.Soin.Urgence)
	description := demandesdto.DescriptionSoin{
		Structuree: true,
		Details: &demandesdto.DetailsSoin{
			Categorie:  session.Soin.TypeSoin,
			Precisions: session.Soin.Precisions,
			Materiel:   session.Soin.Materiel,
		},
		Urgence: &urgence,
		Lieu:    session.Soin.Lieu,
	}

	if session.Ordonnance != nil && session.Ordonnance.Disponible {
		medecin := ""
		if session.Ordonnance.Medecin != nil {
			medecin = *session.Ordonnance.Medecin
		}
		description.Ordonnance = &demandesdto.OrdonnanceInfo{
			Medecin:          medecin,
			DatePrescription: session.Ordonnance.DatePrescription,
			Renouvelable:     session.Ordonnance.Renouvelable,
		}
	}

	var heureRdv *string
	if session.Disponibilites.JourneeEntiere {
		journee := demandesdto.HeureJourneeEntiere
		heureRdv = &journee
	} else if session.Disponibilites.Creneau != nil {
		heureRdv = session.Disponibilites.Creneau
	}

	if session.Disponibilites.DateSouhaitee != nil {
		souhait := session.Disponibilites.DateSouhaitee.Format("2006-01-02")
		description.DatePreferee = &souhait
	}
	description.CreneauPrefere = heureRdv

	raw, err := demandesdto.NouvelleDescription(description)
	if err != nil {
		return nil, fmt.Errorf("failed to encode description payload: %w", err)
	}

	return &demandesdto.CreateDemandeRequest{
		Patient:     *session.Patient,
		TypeSoin:    session.Soin.TypeSoin,
		Description: raw,
		DateRdv:     session.Disponibilites.DateSouhaitee,
		HeureRdv:    heureRdv,
		Urgence:     session.Soin.Urgence,
	}, nil
}
