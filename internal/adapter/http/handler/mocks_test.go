package handler

import (
	"context"
	"time"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/domain"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/usecase"
	"github.com/stretchr/testify/mock"
)

type MockListingSubmitter struct{ mock.Mock }

func (m *MockListingSubmitter) Submit(ctx context.Context, in usecase.SubmitListingInput) (*domain.Listing, error) {
	args := m.Called(ctx, in)
	if l, ok := args.Get(0).(*domain.Listing); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockListingBrowser struct{ mock.Mock }

func (m *MockListingBrowser) ListApproved(ctx context.Context, typeParam string) ([]usecase.BrowseItem, domain.PropertyType, error) {
	args := m.Called(ctx, typeParam)
	items, _ := args.Get(0).([]usecase.BrowseItem)
	return items, args.Get(1).(domain.PropertyType), args.Error(2)
}

type MockModerator struct{ mock.Mock }

func (m *MockModerator) List(ctx context.Context, rawFilter string) ([]*domain.Listing, domain.StatusFilter, error) {
	args := m.Called(ctx, rawFilter)
	listings, _ := args.Get(0).([]*domain.Listing)
	return listings, args.Get(1).(domain.StatusFilter), args.Error(2)
}

func (m *MockModerator) Approve(ctx context.Context, id string) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*domain.Listing)
	return l, args.Error(1)
}

func (m *MockModerator) Reject(ctx context.Context, id string) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*domain.Listing)
	return l, args.Error(1)
}

func (m *MockModerator) Edit(ctx context.Context, id string, in usecase.EditListingInput) (*domain.Listing, error) {
	args := m.Called(ctx, id, in)
	l, _ := args.Get(0).(*domain.Listing)
	return l, args.Error(1)
}

func (m *MockModerator) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockModerator) CreateApproved(ctx context.Context, in usecase.SubmitListingInput) (*domain.Listing, error) {
	args := m.Called(ctx, in)
	l, _ := args.Get(0).(*domain.Listing)
	return l, args.Error(1)
}

func (m *MockModerator) ListMessages(ctx context.Context) ([]*domain.ContactMessage, error) {
	args := m.Called(ctx)
	msgs, _ := args.Get(0).([]*domain.ContactMessage)
	return msgs, args.Error(1)
}

func (m *MockModerator) DeleteMessage(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockContactSubmitter struct{ mock.Mock }

func (m *MockContactSubmitter) Submit(ctx context.Context, in usecase.ContactInput) (*usecase.ContactReceipt, error) {
	args := m.Called(ctx, in)
	r, _ := args.Get(0).(*usecase.ContactReceipt)
	return r, args.Error(1)
}

type MockSessionIssuer struct{ mock.Mock }

func (m *MockSessionIssuer) Login(password string) (string, time.Time, error) {
	args := m.Called(password)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

var fixedTime = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func sampleListing(id string, status domain.ListingStatus) *domain.Listing {
	return &domain.Listing{
		ID:           id,
		Title:        "2BHK Flat",
		Description:  "Near bus stand",
		Price:        "₹45 Lakhs",
		Area:         "1200 sq.ft",
		Location:     "Coimbatore",
		PropertyType: domain.PropertyResidential,
		ContactName:  "Ravi",
		ContactPhone: "+91 98400 12345",
		ContactEmail: "ravi@example.com",
		Images:       []string{"http://blob/property-images/1-a.jpg"},
		Status:       status,
		CreatedAt:    fixedTime,
		UpdatedAt:    fixedTime,
	}
}
