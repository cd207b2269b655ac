package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/domain"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/logger"
	"go.uber.org/zap"
)

// EditListingInput replaces the editable fields of a listing. When Images
// is non-empty the uploaded set replaces the previous images wholesale.
type EditListingInput struct {
	Fields domain.ListingFields
	Images []ImageUpload
}

// ModerationUsecase implements the admin workflow. Every mutation re-reads
// the listing from the store and returns that copy.
type ModerationUsecase struct {
	listings domain.ListingRepository
	messages domain.MessageRepository
	uploader *imageUploader
	cache    ListingCache
	events   EventPublisher
	policy   domain.TransitionPolicy
	logger   *logger.Logger
	now      func() time.Time
}

func NewModerationUsecase(
	listings domain.ListingRepository,
	messages domain.MessageRepository,
	storage domain.ImageStorage,
	cache ListingCache,
	events EventPublisher,
	policy domain.TransitionPolicy,
	log *logger.Logger,
) *ModerationUsecase {
	named := log.Named("ModerationUsecase")
	if policy == "" {
		policy = domain.PolicyStrict
	}
	return &ModerationUsecase{
		listings: listings,
		messages: messages,
		uploader: newImageUploader(storage, named),
		cache:    cache,
		events:   events,
		policy:   policy,
		logger:   named,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Policy reports the configured transition policy.
func (uc *ModerationUsecase) Policy() domain.TransitionPolicy {
	return uc.policy
}

// List returns listings under the given status filter, newest first.
func (uc *ModerationUsecase) List(ctx context.Context, rawFilter string) ([]*domain.Listing, domain.StatusFilter, error) {
	filter, err := domain.ParseStatusFilter(rawFilter)
	if err != nil {
		return nil, "", err
	}
	uc.logger.Debug("Listing for moderation", zap.String("filter", string(filter)))

	listings, err := uc.listings.Find(ctx, domain.ListingFilter{Status: filter.Status()})
	if err != nil {
		uc.logger.Error("Failed to list listings for moderation", zap.Error(err), zap.String("filter", string(filter)))
		return nil, filter, repoErr("find listings", err)
	}
	return listings, filter, nil
}

// Approve moves a listing to approved.
func (uc *ModerationUsecase) Approve(ctx context.Context, id string) (*domain.Listing, error) {
	return uc.transition(ctx, id, domain.StatusApproved, SubjectListingApproved)
}

// Reject moves a listing to rejected.
func (uc *ModerationUsecase) Reject(ctx context.Context, id string) (*domain.Listing, error) {
	return uc.transition(ctx, id, domain.StatusRejected, SubjectListingRejected)
}

func (uc *ModerationUsecase) transition(ctx context.Context, id string, to domain.ListingStatus, subject string) (*domain.Listing, error) {
	uc.logger.Info("Moderating listing", zap.String("listing_id", id), zap.String("new_status", string(to)))

	current, err := uc.listings.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr("get listing", err)
	}
	if err := uc.policy.Check(current.Status, to); err != nil {
		uc.logger.Warn("Status transition refused",
			zap.String("listing_id", id),
			zap.String("from", string(current.Status)),
			zap.String("to", string(to)),
			zap.String("policy", string(uc.policy)))
		return nil, err
	}

	// strict moderation only writes if nobody moved the listing since the read
	var from domain.ListingStatus
	if uc.policy == domain.PolicyStrict {
		from = current.Status
	}
	// repeating the current status still refreshes updated_at
	if err := uc.listings.UpdateStatus(ctx, id, from, to, uc.now()); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			uc.logger.Warn("Listing status changed during moderation",
				zap.String("listing_id", id), zap.String("expected", string(from)), zap.String("to", string(to)))
			return nil, err
		}
		uc.logger.Error("Failed to update listing status", zap.Error(err), zap.String("listing_id", id))
		return nil, repoErr("update status", err)
	}

	updated, err := uc.listings.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr("reload listing", err)
	}

	invalidateApproved(ctx, uc.cache, uc.logger)
	publishEvent(ctx, uc.events, uc.logger, subject, map[string]interface{}{
		"listing_id":   id,
		"old_status":   current.Status,
		"new_status":   to,
		"moderated_at": updated.UpdatedAt.Format(time.RFC3339Nano),
	})
	return updated, nil
}

// Edit replaces the editable fields. Status is left unchanged.
func (uc *ModerationUsecase) Edit(ctx context.Context, id string, in EditListingInput) (*domain.Listing, error) {
	uc.logger.Info("Editing listing", zap.String("listing_id", id), zap.Int("new_images", len(in.Images)))

	fields, err := SubmitListingInput{Fields: in.Fields, Images: in.Images}.validate()
	if err != nil {
		return nil, err
	}

	listing, err := uc.listings.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr("get listing", err)
	}

	if len(in.Images) > 0 {
		urls, err := uc.uploader.uploadAll(ctx, prefixEdit, in.Images)
		if err != nil {
			return nil, err
		}
		listing.Images = urls
	}

	listing.Apply(fields)
	listing.UpdatedAt = uc.now()
	if err := uc.listings.Update(ctx, listing); err != nil {
		uc.logger.Error("Failed to update listing", zap.Error(err), zap.String("listing_id", id))
		return nil, repoErr("update listing", err)
	}

	updated, err := uc.listings.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr("reload listing", err)
	}

	invalidateApproved(ctx, uc.cache, uc.logger)
	publishEvent(ctx, uc.events, uc.logger, SubjectListingUpdated, map[string]interface{}{
		"listing_id": id,
		"status":     updated.Status,
		"images":     len(updated.Images),
		"updated_at": updated.UpdatedAt.Format(time.RFC3339Nano),
	})
	return updated, nil
}

// Delete removes a listing. Deleting a missing listing succeeds.
func (uc *ModerationUsecase) Delete(ctx context.Context, id string) error {
	uc.logger.Info("Deleting listing", zap.String("listing_id", id))

	if err := uc.listings.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			uc.logger.Error("Failed to delete listing", zap.Error(err), zap.String("listing_id", id))
			return repoErr("delete listing", err)
		}
		uc.logger.Info("Listing already absent, delete is a no-op", zap.String("listing_id", id))
	}

	invalidateApproved(ctx, uc.cache, uc.logger)
	publishEvent(ctx, uc.events, uc.logger, SubjectListingDeleted, map[string]interface{}{
		"listing_id": id,
		"deleted_at": uc.now().Format(time.RFC3339Nano),
	})
	return nil
}

// CreateApproved stores an admin-authored listing directly as approved.
func (uc *ModerationUsecase) CreateApproved(ctx context.Context, in SubmitListingInput) (*domain.Listing, error) {
	uc.logger.Info("Creating listing as admin", zap.String("title", in.Fields.Title), zap.Int("images", len(in.Images)))

	fields, err := in.validate()
	if err != nil {
		return nil, err
	}

	urls, err := uc.uploader.uploadAll(ctx, prefixAdmin, in.Images)
	if err != nil {
		return nil, err
	}

	listing := domain.NewListing(fields, urls, domain.StatusApproved)
	if err := uc.listings.Create(ctx, listing); err != nil {
		uc.logger.Error("Failed to store admin listing", zap.Error(err), zap.Strings("orphaned_images", urls))
		return nil, repoErr("create listing", err)
	}

	created, err := uc.listings.GetByID(ctx, listing.ID)
	if err != nil {
		return nil, repoErr("reload listing", err)
	}

	invalidateApproved(ctx, uc.cache, uc.logger)
	publishEvent(ctx, uc.events, uc.logger, SubjectListingCreatedByAdmin, map[string]interface{}{
		"listing_id":    created.ID,
		"title":         created.Title,
		"property_type": created.PropertyType,
		"created_at":    created.CreatedAt.Format(time.RFC3339Nano),
	})
	return created, nil
}

// ListMessages returns contact messages, newest first.
func (uc *ModerationUsecase) ListMessages(ctx context.Context) ([]*domain.ContactMessage, error) {
	msgs, err := uc.messages.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list contact messages", zap.Error(err))
		return nil, repoErr("list messages", err)
	}
	return msgs, nil
}

// DeleteMessage removes a contact message. Missing ids succeed.
func (uc *ModerationUsecase) DeleteMessage(ctx context.Context, id string) error {
	uc.logger.Info("Deleting contact message", zap.String("message_id", id))
	if err := uc.messages.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		uc.logger.Error("Failed to delete contact message", zap.Error(err), zap.String("message_id", id))
		return repoErr("delete message", err)
	}
	return nil
}
