package queries

// DemandeQueries contient toutes les requêtes SQL du domaine demandes
var DemandeQueries = struct {
	ListDemandes          string
	GetDemandeByID        string
	FindPatientByIdentite string
	InsertPatient         string
	UpdatePatientSnapshot string
	InsertDemande         string
	UpdateStatut          string
	Replanifier           string
	DeleteDemande         string
}{
	// ListDemandes - Liste complète avec snapshot patient embarqué.
	// LEFT JOIN volontaire : une demande orpheline reste visible et sera
	// écartée par le moteur d'agrégation, pas par la requête.
	ListDemandes: `
		SELECT
			d.id,
			d.type_soin,
			d.description,
			d.date_rdv,
			d.heure_rdv,
			d.urgence,
			d.statut,
			d.created_at,
			d.updated_at,
			p.id,
			p.nom,
			p.prenom,
			p.telephone,
			p.email,
			p.rue,
			p.complement,
			p.code_postal,
			p.ville,
			p.date_naissance,
			p.numero_secu
		FROM demandes d
		LEFT JOIN patients p ON p.id = d.patient_id
		ORDER BY d.created_at DESC;
	`,

	// GetDemandeByID - Détail d'une demande
	GetDemandeByID: `
		SELECT
			d.id,
			d.type_soin,
			d.description,
			d.date_rdv,
			d.heure_rdv,
			d.urgence,
			d.statut,
			d.created_at,
			d.updated_at,
			p.id,
			p.nom,
			p.prenom,
			p.telephone,
			p.email,
			p.rue,
			p.complement,
			p.code_postal,
			p.ville,
			p.date_naissance,
			p.numero_secu
		FROM demandes d
		LEFT JOIN patients p ON p.id = d.patient_id
		WHERE d.id = $1;
	`,

	// FindPatientByIdentite - Résolution best-effort de l'identité patient :
	// (téléphone normalisé + date de naissance) ou email
	FindPatientByIdentite: `
		SELECT p.id
		FROM patients p
		WHERE (regexp_replace(p.telephone, '[^0-9]', '', 'g') = $1 AND p.date_naissance = $2)
			OR ($3::text IS NOT NULL AND p.email = $3)
		ORDER BY p.updated_at DESC
		LIMIT 1;
	`,

	// InsertPatient - Création d'un nouveau patient
	InsertPatient: `
		INSERT INTO patients (
			id, nom, prenom, telephone, email, rue, complement,
			code_postal, ville, date_naissance, numero_secu,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id;
	`,

	// UpdatePatientSnapshot - Correction de l'état civil lors d'une nouvelle
	// demande (l'identifiant reste stable, les champs peuvent dériver)
	UpdatePatientSnapshot: `
		UPDATE patients SET
			nom = $2,
			prenom = $3,
			telephone = $4,
			email = $5,
			rue = $6,
			complement = $7,
			code_postal = $8,
			ville = $9,
			date_naissance = $10,
			numero_secu = $11,
			updated_at = NOW()
		WHERE id = $1;
	`,

	// InsertDemande - Création d'une demande de rendez-vous
	InsertDemande: `
		INSERT INTO demandes (
			id, patient_id, type_soin, description, date_rdv, heure_rdv,
			urgence, statut, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at;
	`,

	// UpdateStatut - Changement de statut
	UpdateStatut: `
		UPDATE demandes SET
			statut = $2,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at;
	`,

	// Replanifier - Déplacement d'un rendez-vous depuis le planning
	Replanifier: `
		UPDATE demandes SET
			date_rdv = $2,
			heure_rdv = $3,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at;
	`,

	// DeleteDemande - Suppression définitive
	DeleteDemande: `
		DELETE FROM demandes WHERE id = $1;
	`,
}
