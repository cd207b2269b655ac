package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/auth"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/logger"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/domain"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/usecase"
	"go.uber.org/zap"
)

type listingResponse struct {
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

type browseItemResponse struct {
	listingResponse
	ContactLink string `json:"contact_link"`
	CallLink    string `json:"call_link"`
	EmailLink   string `json:"email_link"`
}

type messageResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func toListingResponse(l *domain.Listing) listingResponse {
	images := l.Images
	if images == nil {
		images = []string{}
	}
	return listingResponse{
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
		Images:       images,
		Status:       string(l.Status),
		UserID:       l.UserID,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

func toListingResponses(listings []*domain.Listing) []listingResponse {
	out := make([]listingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingResponse(l))
	}
	return out
}

func toBrowseResponses(items []usecase.BrowseItem) []browseItemResponse {
	out := make([]browseItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, browseItemResponse{
			listingResponse: toListingResponse(item.Listing),
			ContactLink:     item.ContactLink,
			CallLink:        item.CallLink,
			EmailLink:       item.EmailLink,
		})
	}
	return out
}

func toMessageResponse(m *domain.ContactMessage) messageResponse {
	return messageResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, log *logger.Logger, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("Failed to encode response", zap.Error(err))
	}
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrAdminDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with {"error": "..."}. Internal failures are logged
// and reported without detail.
func writeError(w http.ResponseWriter, log *logger.Logger, op string, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error(op+" failed", zap.Error(err))
		msg = "internal server error"
	} else {
		log.Debug(op+" rejected", zap.Int("status", status), zap.Error(err))
	}
	writeJSON(w, log, status, map[string]string{"error": msg})
}
