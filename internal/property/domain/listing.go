package domain

import (
	"fmt"
	"strings"
	"time"
)

// MaxImages is the upper bound on images attached to one listing.
const MaxImages = 5

// ListingStatus is the moderation state of a listing.
type ListingStatus string

const (
	StatusPending  ListingStatus = "pending"
	StatusApproved ListingStatus = "approved"
	StatusRejected ListingStatus = "rejected"
)

// IsValid checks if the status is one of the defined constants.
func (s ListingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// PropertyType partitions listings into the two public display buckets.
type PropertyType string

const (
	PropertyResidential PropertyType = "residential"
	PropertyCommercial  PropertyType = "commercial"
)

func (t PropertyType) IsValid() bool {
	return t == PropertyResidential || t == PropertyCommercial
}

// ParsePropertyType maps a browse query parameter to a bucket.
// Unknown or empty values select the residential bucket.
func ParsePropertyType(raw string) PropertyType {
	if t := PropertyType(strings.ToLower(strings.TrimSpace(raw))); t.IsValid() {
		return t
	}
	return PropertyResidential
}

// StatusFilter selects listings in the admin view.
type StatusFilter string

const (
	FilterPending  StatusFilter = "pending"
	FilterApproved StatusFilter = "approved"
	FilterRejected StatusFilter = "rejected"
	FilterAll      StatusFilter = "all"
)

// ParseStatusFilter defaults to pending when raw is empty.
func ParseStatusFilter(raw string) (StatusFilter, error) {
	f := StatusFilter(strings.ToLower(strings.TrimSpace(raw)))
	switch f {
	case "":
		return FilterPending, nil
	case FilterPending, FilterApproved, FilterRejected, FilterAll:
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown status filter '%s'", ErrInvalidInput, raw)
}

// Status returns the status the filter selects, or nil for "all".
func (f StatusFilter) Status() *ListingStatus {
	if f == FilterAll {
		return nil
	}
	s := ListingStatus(f)
	return &s
}

// Listing is a property offered for sale or rent.
// Price and Area are display strings, not numbers.
type Listing struct {
	ID           string
	Title        string
	Description  string
	Price        string
	Area         string
	Location     string
	PropertyType PropertyType
	ContactName  string
	ContactPhone string
	ContactEmail string
	Images       []string
	Status       ListingStatus
	UserID       *string // no submitter accounts exist, always nil
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ListingFields are the user-editable attributes of a listing.
type ListingFields struct {
	Title        string
	Description  string
	Price        string
	Area         string
	Location     string
	PropertyType PropertyType
	ContactName  string
	ContactPhone string
	ContactEmail string
}

// Normalize trims surrounding whitespace from every field.
func (f ListingFields) Normalize() ListingFields {
	return ListingFields{
		Title:        strings.TrimSpace(f.Title),
		Description:  strings.TrimSpace(f.Description),
		Price:        strings.TrimSpace(f.Price),
		Area:         strings.TrimSpace(f.Area),
		Location:     strings.TrimSpace(f.Location),
		PropertyType: PropertyType(strings.ToLower(strings.TrimSpace(string(f.PropertyType)))),
		ContactName:  strings.TrimSpace(f.ContactName),
		ContactPhone: strings.TrimSpace(f.ContactPhone),
		ContactEmail: strings.TrimSpace(f.ContactEmail),
	}
}

// Validate requires every field and a known property type.
func (f ListingFields) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"title", f.Title},
		{"description", f.Description},
		{"price", f.Price},
		{"area", f.Area},
		{"location", f.Location},
		{"property_type", string(f.PropertyType)},
		{"contact_name", f.ContactName},
		{"contact_phone", f.ContactPhone},
		{"contact_email", f.ContactEmail},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidInput, r.name)
		}
	}
	if !f.PropertyType.IsValid() {
		return fmt.Errorf("%w: property_type must be residential or commercial", ErrInvalidInput)
	}
	return nil
}

// Apply copies the fields onto the listing.
func (l *Listing) Apply(f ListingFields) {
	l.Title = f.Title
	l.Description = f.Description
	l.Price = f.Price
	l.Area = f.Area
	l.Location = f.Location
	l.PropertyType = f.PropertyType
	l.ContactName = f.ContactName
	l.ContactPhone = f.ContactPhone
	l.ContactEmail = f.ContactEmail
}

// NewListing builds a listing with the given initial status.
func NewListing(f ListingFields, images []string, status ListingStatus) *Listing {
	now := time.Now().UTC()
	l := &Listing{
		Images:    images,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if l.Images == nil {
		l.Images = []string{}
	}
	l.Apply(f)
	return l
}

// ListingFilter holds optional query constraints. Results are always
// ordered by creation time, newest first.
type ListingFilter struct {
	Status       *ListingStatus
	PropertyType *PropertyType
}
