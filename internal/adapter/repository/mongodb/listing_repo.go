package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/domain"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const listingCollectionName = "property_listings"

// ListingRepository implements domain.ListingRepository on MongoDB.
type ListingRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewListingRepository creates the repository. Call EnsureIndexes before
// serving traffic.
func NewListingRepository(db *mongo.Database, log *logger.Logger) (*ListingRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("mongo database cannot be nil")
	}
	return &ListingRepository{
		collection: db.Collection(listingCollectionName),
		logger:     log.Named("ListingRepository"),
	}, nil
}

// EnsureIndexes creates the indexes backing the browse and admin queries.
func (r *ListingRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "property_type", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		r.logger.Error("Failed to create indexes for listings collection", zap.Error(err))
		return fmt.Errorf("create indexes for %s: %w", listingCollectionName, err)
	}
	r.logger.Info("Ensured indexes for listings collection")
	return nil
}

// Create inserts a listing and sets its ID.
func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	doc, err := toListingDocument(listing)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert listing", zap.Error(err))
		return fmt.Errorf("db insert failed: %w", err)
	}
	listing.ID = doc.ID.Hex()
	r.logger.Debug("Listing inserted", zap.String("listing_id", listing.ID))
	return nil
}

// GetByID retrieves a listing by its ID.
func (r *ListingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc listingDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Failed to get listing", zap.Error(err), zap.String("listing_id", id))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return doc.toDomain(), nil
}

// Find returns all matching listings, newest first. No pagination.
func (r *ListingRepository) Find(ctx context.Context, filter domain.ListingFilter) ([]*domain.Listing, error) {
	query := bson.M{}
	if filter.Status != nil {
		query["status"] = *filter.Status
	}
	if filter.PropertyType != nil {
		query["property_type"] = *filter.PropertyType
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		r.logger.Error("Failed to find listings", zap.Error(err), zap.Any("query", query))
		return nil, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*listingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Failed to decode listings", zap.Error(err))
		return nil, fmt.Errorf("db cursor all failed: %w", err)
	}
	return toDomainListings(docs), nil
}

// Update overwrites the editable fields, images and updated_at.
// Status is left as stored.
func (r *ListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	doc, err := toListingDocument(listing)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"title":         doc.Title,
		"description":   doc.Description,
		"price":         doc.Price,
		"area":          doc.Area,
		"location":      doc.Location,
		"property_type": doc.PropertyType,
		"contact_name":  doc.ContactName,
		"contact_phone": doc.ContactPhone,
		"contact_email": doc.ContactEmail,
		"images":        doc.Images,
		"updated_at":    doc.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": doc.ID}, update)
	if err != nil {
		r.logger.Error("Failed to update listing", zap.Error(err), zap.String("listing_id", listing.ID))
		return fmt.Errorf("db update failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus sets status and updated_at, conditional on the stored
// status when from is set.
func (r *ListingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.ListingStatus, updatedAt time.Time) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	filter := bson.M{"_id": oid}
	if from != "" {
		filter["status"] = from
	}
	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": bson.M{
		"status":     to,
		"updated_at": updatedAt,
	}})
	if err != nil {
		r.logger.Error("Failed to update listing status", zap.Error(err), zap.String("listing_id", id))
		return fmt.Errorf("db update failed: %w", err)
	}
	if result.MatchedCount > 0 {
		return nil
	}
	if from == "" {
		return domain.ErrNotFound
	}

	n, err := r.collection.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("db count failed: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: listing is no longer %s", domain.ErrInvalidTransition, from)
}

// Delete removes a listing by ID.
func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.logger.Error("Failed to delete listing", zap.Error(err), zap.String("listing_id", id))
		return fmt.Errorf("db delete failed: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
