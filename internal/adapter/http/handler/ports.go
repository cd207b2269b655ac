package handler

import (
	"context"
	"time"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/domain"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/usecase"
)

// ListingSubmitter is the public submission flow.
type ListingSubmitter interface {
	Submit(ctx context.Context, in usecase.SubmitListingInput) (*domain.Listing, error)
}

// ListingBrowser is the public browse flow.
type ListingBrowser interface {
	ListApproved(ctx context.Context, typeParam string) ([]usecase.BrowseItem, domain.PropertyType, error)
}

// Moderator is the admin moderation flow.
type Moderator interface {
	List(ctx context.Context, rawFilter string) ([]*domain.Listing, domain.StatusFilter, error)
	Approve(ctx context.Context, id string) (*domain.Listing, error)
	Reject(ctx context.Context, id string) (*domain.Listing, error)
	Edit(ctx context.Context, id string, in usecase.EditListingInput) (*domain.Listing, error)
	Delete(ctx context.Context, id string) error
	CreateApproved(ctx context.Context, in usecase.SubmitListingInput) (*domain.Listing, error)
	ListMessages(ctx context.Context) ([]*domain.ContactMessage, error)
	DeleteMessage(ctx context.Context, id string) error
}

// ContactSubmitter is the public contact flow.
type ContactSubmitter interface {
	Submit(ctx context.Context, in usecase.ContactInput) (*usecase.ContactReceipt, error)
}

// SessionIssuer exchanges the admin password for a session token.
type SessionIssuer interface {
	Login(password string) (string, time.Time, error)
}
