package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/domain"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/logger"
	"go.uber.org/zap"
)

// Event subjects published after successful mutations.
const (
	SubjectListingSubmitted      = "listing.submitted"
	SubjectListingCreatedByAdmin = "listing.created_by_admin"
	SubjectListingApproved       = "listing.approved"
	SubjectListingRejected       = "listing.rejected"
	SubjectListingUpdated        = "listing.updated"
	SubjectListingDeleted        = "listing.deleted"
	SubjectContactReceived       = "contact.received"
)

// EventPublisher delivers lifecycle events. Delivery is best-effort.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// ListingCache caches the approved listings of each property type.
//
// GetApproved also returns the cache generation it looked under. A caller
// that misses reads the store and hands that generation back to SetApproved,
// which must drop the write if InvalidateApproved has run in between.
type ListingCache interface {
	GetApproved(ctx context.Context, propertyType domain.PropertyType) (listings []*domain.Listing, generation int64, found bool, err error)
	SetApproved(ctx context.Context, propertyType domain.PropertyType, generation int64, listings []*domain.Listing) error
	InvalidateApproved(ctx context.Context) error
}

// ContactNotifier forwards a stored contact message to the email relay.
type ContactNotifier interface {
	Notify(ctx context.Context, msg *domain.ContactMessage) error
}

func publishEvent(ctx context.Context, events EventPublisher, log *logger.Logger, subject string, data map[string]interface{}) {
	if events == nil {
		return
	}
	if err := events.Publish(ctx, subject, data); err != nil {
		log.Warn("Failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}

// invalidateApproved drops cached browse results. Failures only leave
// entries to expire by TTL, so they are logged and swallowed.
func invalidateApproved(ctx context.Context, cache ListingCache, log *logger.Logger) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateApproved(ctx); err != nil {
		log.Warn("Failed to invalidate approved listings cache", zap.Error(err))
	}
}

// repoErr keeps domain sentinels intact and tags anything else as a
// repository failure.
func repoErr(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrInvalidTransition) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrRepository, op, err)
}
