package domain

import (
	"context"
	"time"
)

// ListingRepository persists listings. Implementations return ErrNotFound
// for unknown ids and never mutate Status through Update.
type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) error
	GetByID(ctx context.Context, id string) (*Listing, error)
	// Find returns every listing matching the filter, newest first.
	Find(ctx context.Context, filter ListingFilter) ([]*Listing, error)
	Update(ctx context.Context, listing *Listing) error
	// UpdateStatus sets status and updated_at. A non-empty from makes the
	// write conditional on the stored status still being from; a mismatch
	// returns ErrInvalidTransition.
	UpdateStatus(ctx context.Context, id string, from, to ListingStatus, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

// MessageRepository persists contact form submissions.
type MessageRepository interface {
	Create(ctx context.Context, msg *ContactMessage) error
	List(ctx context.Context) ([]*ContactMessage, error)
	Delete(ctx context.Context, id string) error
}

// ImageStorage is the blob store holding listing images.
type ImageStorage interface {
	Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error)
	PublicURL(objectName string) string
}
