package mongodb

import (
	"context"
	"fmt"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/domain"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const messageCollectionName = "contact_messages"

// MessageRepository implements domain.MessageRepository on MongoDB.
type MessageRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewMessageRepository(db *mongo.Database, log *logger.Logger) (*MessageRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("mongo database cannot be nil")
	}
	return &MessageRepository{
		collection: db.Collection(messageCollectionName),
		logger:     log.Named("MessageRepository"),
	}, nil
}

func (r *MessageRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "created_at", Value: -1}}})
	if err != nil {
		r.logger.Error("Failed to create indexes for messages collection", zap.Error(err))
		return fmt.Errorf("create indexes for %s: %w", messageCollectionName, err)
	}
	return nil
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	doc := toMessageDocument(msg)
	doc.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert contact message", zap.Error(err))
		return fmt.Errorf("db insert failed: %w", err)
	}
	msg.ID = doc.ID.Hex()
	return nil
}

func (r *MessageRepository) List(ctx context.Context) ([]*domain.ContactMessage, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		r.logger.Error("Failed to find contact messages", zap.Error(err))
		return nil, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*messageDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("db cursor all failed: %w", err)
	}
	out := make([]*domain.ContactMessage, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.logger.Error("Failed to delete contact message", zap.Error(err), zap.String("message_id", id))
		return fmt.Errorf("db delete failed: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
