package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/logger"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/domain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	approvedKeyPrefix = "listings:approved:"
	generationKey     = approvedKeyPrefix + "gen"
)

// setIfCurrent writes KEYS[2] only while KEYS[1] still holds generation ARGV[1].
var setIfCurrent = redis.NewScript(`
local current = redis.call('GET', KEYS[1]) or '0'
if current ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

// cachedListing is the JSON form of a listing held in Redis.
type cachedListing struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Price        string    `json:"price"`
	Area         string    `json:"area"`
	Location     string    `json:"location"`
	PropertyType string    `json:"property_type"`
	ContactName  string    `json:"contact_name"`
	ContactPhone string    `json:"contact_phone"`
	ContactEmail string    `json:"contact_email"`
	Images       []string  `json:"images"`
	Status       string    `json:"status"`
	UserID       *string   `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func fromDomain(l *domain.Listing) cachedListing {
	return cachedListing{
		ID:           l.ID,
		Title:        l.Title,
		Description:  l.Description,
		Price:        l.Price,
		Area:         l.Area,
		Location:     l.Location,
		PropertyType: string(l.PropertyType),
		ContactName:  l.ContactName,
		ContactPhone: l.ContactPhone,
		ContactEmail: l.ContactEmail,
		Images:       l.Images,
		Status:       string(l.Status),
		UserID:       l.UserID,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

func (c cachedListing) toDomain() *domain.Listing {
	images := c.Images
	if images == nil {
		images = []string{}
	}
	return &domain.Listing{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		Price:        c.Price,
		Area:         c.Area,
		Location:     c.Location,
		PropertyType: domain.PropertyType(c.PropertyType),
		ContactName:  c.ContactName,
		ContactPhone: c.ContactPhone,
		ContactEmail: c.ContactEmail,
		Images:       images,
		Status:       domain.ListingStatus(c.Status),
		UserID:       c.UserID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ListingCache stores the approved listings of each property type in Redis.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

func NewListingCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *ListingCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ListingCache{client: client, ttl: ttl, logger: log.Named("ListingCache")}
}

func approvedKey(generation int64, propertyType domain.PropertyType) string {
	return approvedKeyPrefix + strconv.FormatInt(generation, 10) + ":" + string(propertyType)
}

func (c *ListingCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		c.logger.Error("Redis Get operation failed", zap.String("key", generationKey), zap.Error(err))
		return 0, fmt.Errorf("ListingCache.generation: %w", err)
	}
	return gen, nil
}

// GetApproved reports a miss with found=false and a nil error. The returned
// generation is the one SetApproved expects after a miss.
func (c *ListingCache) GetApproved(ctx context.Context, propertyType domain.PropertyType) ([]*domain.Listing, int64, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, 0, false, err
	}

	key := approvedKey(gen, propertyType)
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, gen, false, nil
		}
		c.logger.Error("Redis Get operation failed", zap.String("key", key), zap.Error(err))
		return nil, gen, false, fmt.Errorf("ListingCache.GetApproved for key '%s': %w", key, err)
	}

	var cached []cachedListing
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, gen, false, fmt.Errorf("ListingCache.GetApproved decode '%s': %w", key, err)
	}
	out := make([]*domain.Listing, 0, len(cached))
	for _, item := range cached {
		out = append(out, item.toDomain())
	}
	return out, gen, true, nil
}

// SetApproved stores listings under generation. The write is dropped when
// the generation has moved on since it was read.
func (c *ListingCache) SetApproved(ctx context.Context, propertyType domain.PropertyType, generation int64, listings []*domain.Listing) error {
	cached := make([]cachedListing, 0, len(listings))
	for _, l := range listings {
		cached = append(cached, fromDomain(l))
	}
	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("ListingCache.SetApproved encode: %w", err)
	}

	key := approvedKey(generation, propertyType)
	written, err := setIfCurrent.Run(ctx, c.client, []string{generationKey, key},
		strconv.FormatInt(generation, 10), data, c.ttl.Milliseconds()).Int()
	if err != nil {
		c.logger.Error("Redis conditional Set failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("ListingCache.SetApproved for key '%s': %w", key, err)
	}
	if written == 0 {
		c.logger.Debug("Skipped caching stale approved listings", zap.String("key", key))
		return nil
	}
	c.logger.Debug("Cached approved listings", zap.String("key", key), zap.Int("count", len(listings)), zap.Duration("ttl", c.ttl))
	return nil
}

// InvalidateApproved moves every property type to a new generation. Entries
// of older generations are never read again and expire by TTL.
func (c *ListingCache) InvalidateApproved(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		c.logger.Error("Redis Incr operation failed", zap.String("key", generationKey), zap.Error(err))
		return fmt.Errorf("ListingCache.InvalidateApproved: %w", err)
	}
	return nil
}
