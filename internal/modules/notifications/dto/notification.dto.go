package dto

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TypeNotification type d'événement affiché dans le centre de notifications
type TypeNotification string

const (
	NotificationNouvelleDemande  TypeNotification = "nouvelle_demande"
	NotificationChangementStatut TypeNotification = "changement_statut"
	NotificationReplanification  TypeNotification = "replanification"
)

// Valid vérifie que la valeur appartient à l'énumération fermée
func (t TypeNotification) Valid() bool {
	switch t {
	case NotificationNouvelleDemande, NotificationChangementStatut, NotificationReplanification:
		return true
	}
	return false
}

// Notification document du centre de notifications (stocké dans MongoDB)
type Notification struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type       TypeNotification   `bson:"type" json:"type"`
	DemandeID  string             `bson:"demande_id,omitempty" json:"demande_id,omitempty"`
	PatientNom string             `bson:"patient_nom,omitempty" json:"patient_nom,omitempty"`
	Message    string             `bson:"message" json:"message"`
	Lue        bool               `bson:"lue" json:"lue"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

// ListeNotificationsResponse réponse de GET /notifications
type ListeNotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
	NonLues       int64          `json:"non_lues"`
}
