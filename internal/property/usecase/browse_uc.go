package usecase

import (
	"context"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/domain"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/logger"
	"go.uber.org/zap"
)

// BrowseItem is an approved listing with its "contact seller" links.
type BrowseItem struct {
	Listing     *domain.Listing
	ContactLink string
	CallLink    string
	EmailLink   string
}

// BrowseUsecase serves the public listing view.
type BrowseUsecase struct {
	repo   domain.ListingRepository
	cache  ListingCache
	logger *logger.Logger
}

func NewBrowseUsecase(repo domain.ListingRepository, cache ListingCache, log *logger.Logger) *BrowseUsecase {
	return &BrowseUsecase{repo: repo, cache: cache, logger: log.Named("BrowseUsecase")}
}

// ListApproved returns every approved listing of the requested property
// type, newest first. typeParam falls back to residential.
func (uc *BrowseUsecase) ListApproved(ctx context.Context, typeParam string) ([]BrowseItem, domain.PropertyType, error) {
	propertyType := domain.ParsePropertyType(typeParam)

	listings, err := uc.approved(ctx, propertyType)
	if err != nil {
		return nil, propertyType, err
	}

	items := make([]BrowseItem, 0, len(listings))
	for _, l := range listings {
		// the store filter already guarantees this; the public view must never leak moderation state
		if l.Status != domain.StatusApproved || l.PropertyType != propertyType {
			continue
		}
		items = append(items, BrowseItem{
			Listing:     l,
			ContactLink: domain.ContactLink(l),
			CallLink:    domain.CallLink(l),
			EmailLink:   domain.EmailLink(l),
		})
	}
	return items, propertyType, nil
}

func (uc *BrowseUsecase) approved(ctx context.Context, propertyType domain.PropertyType) ([]*domain.Listing, error) {
	var (
		generation int64
		fillCache  bool
	)
	if uc.cache != nil {
		cached, gen, ok, err := uc.cache.GetApproved(ctx, propertyType)
		switch {
		case err != nil:
			uc.logger.Warn("Approved listings cache read failed, falling back to store", zap.Error(err))
		case ok:
			uc.logger.Debug("Approved listings cache hit", zap.String("property_type", string(propertyType)))
			return cached, nil
		default:
			generation, fillCache = gen, true
		}
	}

	status := domain.StatusApproved
	listings, err := uc.repo.Find(ctx, domain.ListingFilter{Status: &status, PropertyType: &propertyType})
	if err != nil {
		uc.logger.Error("Failed to load approved listings", zap.Error(err))
		return nil, repoErr("find approved listings", err)
	}

	// the generation was read before Find, so a concurrent invalidation makes this write a no-op
	if fillCache {
		if err := uc.cache.SetApproved(ctx, propertyType, generation, listings); err != nil {
			uc.logger.Warn("Failed to cache approved listings", zap.Error(err))
		}
	}
	return listings, nil
}
