package mongodb

import (
	"fmt"
	"time"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// listingDocument is the stored shape of a listing.
type listingDocument struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Title        string               `bson:"title"`
	Description  string               `bson:"description"`
	Price        string               `bson:"price"`
	Area         string               `bson:"area"`
	Location     string               `bson:"location"`
	PropertyType domain.PropertyType  `bson:"property_type"`
	ContactName  string               `bson:"contact_name"`
	ContactPhone string               `bson:"contact_phone"`
	ContactEmail string               `bson:"contact_email"`
	Images       []string             `bson:"images"`
	Status       domain.ListingStatus `bson:"status"`
	UserID       *string              `bson:"user_id"`
	CreatedAt    time.Time            `bson:"created_at"`
	UpdatedAt    time.Time            `bson:"updated_at"`
}

// messageDocument is the stored shape of a contact message.
type messageDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone"`
	Message   string             `bson:"message"`
	CreatedAt time.Time          `bson:"created_at"`
}

// parseID maps a malformed id to ErrNotFound: no such document can exist.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: malformed id '%s'", domain.ErrNotFound, id)
	}
	return oid, nil
}

func toListingDocument(l *domain.Listing) (*listingDocument, error) {
	docID := primitive.NilObjectID
	if l.ID != "" {
		oid, err := parseID(l.ID)
		if err != nil {
			return nil, err
		}
		docID = oid
	}
	images := l.Images
	if images == nil {
		images = []string{}
	}
	return &listingDocument{
		ID:           docID,
		Title:        l.Title,
		Description:  l.Description,
		Price:        l.Price,
		Area:         l.Area,
		Location:     l.Location,
		PropertyType: l.PropertyType,
		ContactName:  l.ContactName,
		ContactPhone: l.ContactPhone,
		ContactEmail: l.ContactEmail,
		Images:       images,
		Status:       l.Status,
		UserID:       l.UserID,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}, nil
}

func (d *listingDocument) toDomain() *domain.Listing {
	images := d.Images
	if images == nil {
		images = []string{}
	}
	return &domain.Listing{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Description:  d.Description,
		Price:        d.Price,
		Area:         d.Area,
		Location:     d.Location,
		PropertyType: d.PropertyType,
		ContactName:  d.ContactName,
		ContactPhone: d.ContactPhone,
		ContactEmail: d.ContactEmail,
		Images:       images,
		Status:       d.Status,
		UserID:       d.UserID,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

func toDomainListings(docs []*listingDocument) []*domain.Listing {
	out := make([]*domain.Listing, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out
}

func toMessageDocument(m *domain.ContactMessage) *messageDocument {
	return &messageDocument{
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
}

func (d *messageDocument) toDomain() *domain.ContactMessage {
	return &domain.ContactMessage{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Message:   d.Message,
		CreatedAt: d.CreatedAt.UTC(),
	}
}
