package usecase

import (
	"context"
	"time"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/domain"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/logger"
	"go.uber.org/zap"
)

// SubmitListingInput is a listing form with its image files.
type SubmitListingInput struct {
	Fields domain.ListingFields
	Images []ImageUpload
}

// validate normalizes the fields and checks them before any network call.
func (in SubmitListingInput) validate() (domain.ListingFields, error) {
	fields := in.Fields.Normalize()
	if err := fields.Validate(); err != nil {
		return domain.ListingFields{}, err
	}
	if err := validateImages(in.Images); err != nil {
		return domain.ListingFields{}, err
	}
	return fields, nil
}

// SubmissionUsecase handles public listing submissions.
type SubmissionUsecase struct {
	repo     domain.ListingRepository
	uploader *imageUploader
	cache    ListingCache
	events   EventPublisher
	logger   *logger.Logger
}

func NewSubmissionUsecase(repo domain.ListingRepository, storage domain.ImageStorage, cache ListingCache, events EventPublisher, log *logger.Logger) *SubmissionUsecase {
	named := log.Named("SubmissionUsecase")
	return &SubmissionUsecase{
		repo:     repo,
		uploader: newImageUploader(storage, named),
		cache:    cache,
		events:   events,
		logger:   named,
	}
}

// Submit validates the form, uploads images in order and stores the
// listing as pending.
func (uc *SubmissionUsecase) Submit(ctx context.Context, in SubmitListingInput) (*domain.Listing, error) {
	uc.logger.Info("Submitting listing",
		zap.String("title", in.Fields.Title),
		zap.String("property_type", string(in.Fields.PropertyType)),
		zap.Int("images", len(in.Images)))

	fields, err := in.validate()
	if err != nil {
		uc.logger.Warn("Listing submission rejected", zap.Error(err))
		return nil, err
	}

	urls, err := uc.uploader.uploadAll(ctx, prefixPublic, in.Images)
	if err != nil {
		return nil, err
	}

	listing := domain.NewListing(fields, urls, domain.StatusPending)
	if err := uc.repo.Create(ctx, listing); err != nil {
		uc.logger.Error("Failed to store submitted listing", zap.Error(err), zap.Strings("orphaned_images", urls))
		return nil, repoErr("create listing", err)
	}

	invalidateApproved(ctx, uc.cache, uc.logger)
	publishEvent(ctx, uc.events, uc.logger, SubjectListingSubmitted, map[string]interface{}{
		"listing_id":    listing.ID,
		"title":         listing.Title,
		"property_type": listing.PropertyType,
		"status":        listing.Status,
		"created_at":    listing.CreatedAt.Format(time.RFC3339Nano),
	})

	uc.logger.Info("Listing submitted for review", zap.String("listing_id", listing.ID))
	return listing, nil
}
