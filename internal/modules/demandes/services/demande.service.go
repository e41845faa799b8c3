package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"rdv-soins-core/internal/infrastructure/database/postgres"
	"rdv-soins-core/internal/modules/demandes/dto"
	"rdv-soins-core/internal/modules/demandes/queries"
	notifdto "rdv-soins-core/internal/modules/notifications/dto"
	notifsvc "rdv-soins-core/internal/modules/notifications/services"
	"rdv-soins-core/internal/shared/utils"
)

// DemandeService gère la persistance des demandes de rendez-vous
type DemandeService struct {
	db            *postgres.Client
	tx            *postgres.TransactionManager
	notifications *notifsvc.NotificationService
}

// NewDemandeService crée une nouvelle instance du service
func NewDemandeService(
	db *postgres.Client,
	tx *postgres.TransactionManager,
	notifications *notifsvc.NotificationService,
) *DemandeService {
	return &DemandeService{
		db:            db,
		tx:            tx,
		notifications: notifications,
	}
}

// List retourne toutes les demandes avec leur snapshot patient.
// C'est l'entrée du moteur d'agrégation patients.
func (s *DemandeService) List(ctx context.Context) ([]dto.DemandeRdv, error) {
	rows, err := s.db.Query(ctx, queries.DemandeQueries.ListDemandes)
	if err != nil {
		return nil, fmt.Errorf("failed to list demandes: %w", err)
	}
	defer rows.Close()

	demandes := []dto.DemandeRdv{}
	for rows.Next() {
		demande, err := scanDemande(rows)
		if err != nil {
			// Une ligne illisible n'invalide pas toute la liste
			continue
		}
		demandes = append(demandes, demande)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read demandes: %w", err)
	}

	return demandes, nil
}

// Get retourne une demande par identifiant
func (s *DemandeService) Get(ctx context.Context, id uuid.UUID) (*dto.DemandeRdv, error) {
	row := s.db.QueryRow(ctx, queries.DemandeQueries.GetDemandeByID, id)

	demande, err := scanDemande(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("demande non trouvée: %s", id)
		}
		return nil, fmt.Errorf("failed to get demande: %w", err)
	}

	return &demande, nil
}

// Create crée une demande en résolvant d'abord l'identité du patient :
// un patient existant (téléphone + date de naissance, ou email) est réutilisé
// et son état civil corrigé; sinon un nouveau patient est créé.
func (s *DemandeService) Create(ctx context.Context, req *dto.CreateDemandeRequest) (*dto.DemandeRdv, error) {
	if req.Urgence == "" {
		req.Urgence = dto.UrgenceNormale
	}
	if !req.Urgence.Valid() {
		return nil, fmt.Errorf("urgence invalide: %s", req.Urgence)
	}

	demandeID := uuid.New()
	var patientID uuid.UUID

	err := s.tx.WithTransaction(ctx, func(tx *postgres.Transaction) error {
		resolved, err := s.resolvePatient(ctx, tx, &req.Patient)
		if err != nil {
			return err
		}
		patientID = resolved

		return tx.QueryRow(ctx, queries.DemandeQueries.InsertDemande,
			demandeID,
			patientID,
			req.TypeSoin,
			req.Description,
			req.DateRdv,
			req.HeureRdv,
			string(req.Urgence),
			string(dto.StatutEnAttente),
		).Scan(new(time.Time), new(time.Time))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create demande: %w", err)
	}

	demande, err := s.Get(ctx, demandeID)
	if err != nil {
		return nil, err
	}

	s.publier(ctx, notifdto.Notification{
		Type:       notifdto.NotificationNouvelleDemande,
		DemandeID:  demandeID.String(),
		PatientNom: req.Patient.Nom,
		Message:    fmt.Sprintf("Nouvelle demande de %s %s (%s)", req.Patient.Prenom, req.Patient.Nom, req.TypeSoin),
	})

	return demande, nil
}

// UpdateStatut change le statut d'une demande
func (s *DemandeService) UpdateStatut(ctx context.Context, id uuid.UUID, statut dto.StatutDemande) (*dto.DemandeRdv, error) {
	if !statut.Valid() {
		return nil, fmt.Errorf("statut invalide: %s", statut)
	}

	var updatedAt time.Time
	err := s.db.QueryRow(ctx, queries.DemandeQueries.UpdateStatut, id, string(statut)).Scan(&updatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("demande non trouvée: %s", id)
		}
		return nil, fmt.Errorf("failed to update statut: %w", err)
	}

	demande, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patientNom := ""
	if demande.Patient != nil {
		patientNom = demande.Patient.Nom
	}
	s.publier(ctx, notifdto.Notification{
		Type:       notifdto.NotificationChangementStatut,
		DemandeID:  id.String(),
		PatientNom: patientNom,
		Message:    fmt.Sprintf("Demande %s passée au statut %s", id, statut),
	})

	return demande, nil
}

// Replanifier déplace le rendez-vous d'une demande (glisser-déposer du planning)
func (s *DemandeService) Replanifier(ctx context.Context, id uuid.UUID, dateRdv time.Time, heureRdv *string) (*dto.DemandeRdv, error) {
	var updatedAt time.Time
	err := s.db.QueryRow(ctx, queries.DemandeQueries.Replanifier, id, dateRdv, heureRdv).Scan(&updatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("demande non trouvée: %s", id)
		}
		return nil, fmt.Errorf("failed to reschedule demande: %w", err)
	}

	demande, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patientNom := ""
	if demande.Patient != nil {
		patientNom = demande.Patient.Nom
	}
	s.publier(ctx, notifdto.Notification{
		Type:       notifdto.NotificationReplanification,
		DemandeID:  id.String(),
		PatientNom: patientNom,
		Message:    fmt.Sprintf("Rendez-vous replanifié au %s", dateRdv.Format("02/01/2006")),
	})

	return demande, nil
}

// Delete supprime définitivement une demande
func (s *DemandeService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.db.Exec(ctx, queries.DemandeQueries.DeleteDemande, id); err != nil {
		return fmt.Errorf("failed to delete demande: %w", err)
	}
	return nil
}

// resolvePatient applique l'heuristique d'identité dans la transaction :
// correspondance (téléphone, date de naissance) ou email, sinon création
func (s *DemandeService) resolvePatient(ctx context.Context, tx *postgres.Transaction, patient *dto.CreatePatientRequest) (uuid.UUID, error) {
	telephone := utils.NormaliserTelephone(patient.Telephone)

	var existing uuid.UUID
	err := tx.QueryRow(ctx, queries.DemandeQueries.FindPatientByIdentite,
		telephone,
		patient.DateNaissance,
		patient.Email,
	).Scan(&existing)

	switch {
	case err == nil:
		// Patient connu : corriger son état civil, l'identifiant reste stable
		if err := tx.Exec(ctx, queries.DemandeQueries.UpdatePatientSnapshot,
			existing,
			patient.Nom,
			patient.Prenom,
			patient.Telephone,
			patient.Email,
			patient.Rue,
			patient.Complement,
			patient.CodePostal,
			patient.Ville,
			patient.DateNaissance,
			patient.NumeroSecu,
		); err != nil {
			return uuid.Nil, fmt.Errorf("failed to update patient snapshot: %w", err)
		}
		return existing, nil

	case err == pgx.ErrNoRows:
		newID := uuid.New()
		err := tx.QueryRow(ctx, queries.DemandeQueries.InsertPatient,
			newID,
			patient.Nom,
			patient.Prenom,
			patient.Telephone,
			patient.Email,
			patient.Rue,
			patient.Complement,
			patient.CodePostal,
			patient.Ville,
			patient.DateNaissance,
			patient.NumeroSecu,
		).Scan(&newID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to insert patient: %w", err)
		}
		return newID, nil

	default:
		return uuid.Nil, fmt.Errorf("failed to resolve patient identity: %w", err)
	}
}

// publier envoie une notification en best-effort
func (s *DemandeService) publier(ctx context.Context, notification notifdto.Notification) {
	if err := s.notifications.Publier(ctx, notification); err != nil {
		fmt.Printf("[DEMANDES] ⚠️ Notification non publiée: %v\n", err)
	}
}

// scanDemande lit une ligne demande + snapshot patient (LEFT JOIN)
func scanDemande(row pgx.Row) (dto.DemandeRdv, error) {
	var demande dto.DemandeRdv
	var urgence, statut string

	var patientID *uuid.UUID
	var nom, prenom, telephone, rue, codePostal, ville *string
	var email, complement, numeroSecu *string
	var dateNaissance *time.Time

	err := row.Scan(
		&demande.ID,
		&demande.TypeSoin,
		&demande.Description,
		&demande.DateRdv,
		&demande.HeureRdv,
		&urgence,
		&statut,
		&demande.CreatedAt,
		&demande.UpdatedAt,
		&patientID,
		&nom,
		&prenom,
		&telephone,
		&email,
		&rue,
		&complement,
		&codePostal,
		&ville,
		&dateNaissance,
		&numeroSecu,
	)
	if err != nil {
		return dto.DemandeRdv{}, err
	}

	demande.Urgence = dto.UrgenceDemande(urgence)
	demande.Statut = dto.StatutDemande(statut)

	if patientID != nil {
		demande.Patient = &dto.PatientSnapshot{
			ID:         *patientID,
			Email:      email,
			Complement: complement,
			NumeroSecu: numeroSecu,
		}
		if nom != nil {
			demande.Patient.Nom = *nom
		}
		if prenom != nil {
			demande.Patient.Prenom = *prenom
		}
		if telephone != nil {
			demande.Patient.Telephone = *telephone
		}
		if rue != nil {
			demande.Patient.Rue = *rue
		}
		if codePostal != nil {
			demande.Patient.CodePostal = *codePostal
		}
		if ville != nil {
			demande.Patient.Ville = *ville
		}
		if dateNaissance != nil {
			demande.Patient.DateNaissance = *dateNaissance
		}
	}

	return demande, nil
}
