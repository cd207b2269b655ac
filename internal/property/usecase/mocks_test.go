package usecase

import (
	"context"
	"time"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/domain"
	"github.com/stretchr/testify/mock"
)

type MockListingRepository struct{ mock.Mock }

func (m *MockListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}
func (m *MockListingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}
func (m *MockListingRepository) Find(ctx context.Context, filter domain.ListingFilter) ([]*domain.Listing, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Listing), args.Error(1)
}
func (m *MockListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}
func (m *MockListingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.ListingStatus, updatedAt time.Time) error {
	args := m.Called(ctx, id, from, to, updatedAt)
	return args.Error(0)
}
func (m *MockListingRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockMessageRepository struct{ mock.Mock }

func (m *MockMessageRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
func (m *MockMessageRepository) List(ctx context.Context) ([]*domain.ContactMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ContactMessage), args.Error(1)
}
func (m *MockMessageRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockImageStorage struct{ mock.Mock }

func (m *MockImageStorage) Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, objectName, contentType, data)
	return args.String(0), args.Error(1)
}
func (m *MockImageStorage) PublicURL(objectName string) string {
	args := m.Called(objectName)
	return args.String(0)
}

type MockListingCache struct{ mock.Mock }

func (m *MockListingCache) GetApproved(ctx context.Context, propertyType domain.PropertyType) ([]*domain.Listing, int64, bool, error) {
	args := m.Called(ctx, propertyType)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Bool(2), args.Error(3)
	}
	return args.Get(0).([]*domain.Listing), args.Get(1).(int64), args.Bool(2), args.Error(3)
}
func (m *MockListingCache) SetApproved(ctx context.Context, propertyType domain.PropertyType, generation int64, listings []*domain.Listing) error {
	args := m.Called(ctx, propertyType, generation, listings)
	return args.Error(0)
}
func (m *MockListingCache) InvalidateApproved(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

type MockContactNotifier struct{ mock.Mock }

func (m *MockContactNotifier) Notify(ctx context.Context, msg *domain.ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func testFields(propertyType domain.PropertyType) domain.ListingFields {
	return domain.ListingFields{
		Title:        "Plot A",
		Description:  "Corner plot",
		Price:        "45 Lakhs",
		Area:         "2400 sq.ft",
		Location:     "Salem",
		PropertyType: propertyType,
		ContactName:  "Ravi",
		ContactPhone: "+91 93604 93616",
		ContactEmail: "ravi@example.com",
	}
}

func testImages(n int) []ImageUpload {
	images := make([]ImageUpload, n)
	for i := range images {
		images[i] = ImageUpload{FileName: "photo.jpg", ContentType: "image/jpeg", Data: []byte{0xff, 0xd8, byte(i)}}
	}
	return images
}

var fixedNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
