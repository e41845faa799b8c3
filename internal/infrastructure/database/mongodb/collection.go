package mongodb

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CollectionManager struct {
	client *Client
}

func NewCollectionManager(client *Client) *CollectionManager {
	return &CollectionManager{client: client}
}

// NotificationsCollection nom de la collection du centre de notifications
const NotificationsCollection = "notifications"

// EnsureNotificationsCollection crée la collection notifications avec son
// schéma de validation et ses index si elle n'existe pas encore
func (cm *CollectionManager) EnsureNotificationsCollection(ctx context.Context) error {
	validator := bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"type", "message", "lue", "created_at"},
			"properties": bson.M{
				"type": bson.M{
					"bsonType":    "string",
					"description": "Type de notification (nouvelle_demande, changement_statut, replanification)",
				},
				"demande_id": bson.M{
					"bsonType":    "string",
					"description": "Identifiant de la demande concernée",
				},
				"patient_nom": bson.M{
					"bsonType":    "string",
					"description": "Nom du patient concerné",
				},
				"message": bson.M{
					"bsonType":    "string",
					"description": "Message affiché dans le centre de notifications",
				},
				"lue": bson.M{
					"bsonType":    "bool",
					"description": "Notification lue ou non",
				},
				"created_at": bson.M{
					"bsonType":    "date",
					"description": "Date de création",
				},
			},
		},
	}

	opts := options.CreateCollection().SetValidator(validator)

	if err := cm.client.database.CreateCollection(ctx, NotificationsCollection, opts); err != nil {
		// La collection peut déjà exister, ce n'est pas une erreur
		if !isNamespaceExists(err) {
			return fmt.Errorf("failed to create collection %s: %w", NotificationsCollection, err)
		}
	}

	// Index: tri chronologique et comptage des non-lues
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "lue", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	if _, err := cm.client.Collection(NotificationsCollection).Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create indexes on %s: %w", NotificationsCollection, err)
	}

	return nil
}

func isNamespaceExists(err error) bool {
	if cmdErr, ok := err.(mongo.CommandError); ok {
		return cmdErr.Code == 48 // NamespaceExists
	}
	return strings.Contains(err.Error(), "already exists")
}
