package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"rdv-soins-core/internal/infrastructure/database/mongodb"
	"rdv-soins-core/internal/modules/notifications/dto"
)

// NotificationService gère le centre de notifications du tableau de bord
type NotificationService struct {
	mongo *mongodb.Client
}

// NewNotificationService crée une nouvelle instance du service
func NewNotificationService(mongo *mongodb.Client) *NotificationService {
	return &NotificationService{
		mongo: mongo,
	}
}

// Publier insère une notification. Appelé en best-effort par le domaine
// demandes : une erreur ici ne doit jamais faire échouer l'opération métier.
func (s *NotificationService) Publier(ctx context.Context, notification dto.Notification) error {
	if !notification.Type.Valid() {
		return fmt.Errorf("type de notification invalide: %s", notification.Type)
	}

	notification.ID = primitive.NilObjectID
	notification.Lue = false
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}

	_, err := s.collection().InsertOne(ctx, notification)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	return nil
}

// Lister retourne les notifications les plus récentes
func (s *NotificationService) Lister(ctx context.Context, limit int64) ([]dto.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.collection().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer cursor.Close(ctx)

	notifications := []dto.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}

	return notifications, nil
}

// CompterNonLues retourne le nombre de notifications non lues
func (s *NotificationService) CompterNonLues(ctx context.Context) (int64, error) {
	count, err := s.collection().CountDocuments(ctx, bson.M{"lue": false})
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarquerLue marque une notification comme lue
func (s *NotificationService) MarquerLue(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("identifiant de notification invalide: %w", err)
	}

	result, err := s.collection().UpdateByID(ctx, objectID, bson.M{"$set": bson.M{"lue": true}})
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("notification non trouvée: %s", id)
	}

	return nil
}

// MarquerToutesLues marque toutes les notifications comme lues
func (s *NotificationService) MarquerToutesLues(ctx context.Context) (int64, error) {
	result, err := s.collection().UpdateMany(ctx, bson.M{"lue": false}, bson.M{"$set": bson.M{"lue": true}})
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return result.ModifiedCount, nil
}

func (s *NotificationService) collection() *mongo.Collection {
	return s.mongo.Collection(mongodb.NotificationsCollection)
}
