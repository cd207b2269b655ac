package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/auth"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/logger"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/metrics"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/domain"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func listingForm(t *testing.T, fields map[string]string, images int) (*bytes.Buffer, string) {
	t.Helper()
	return listingFormSized(t, fields, images, 4)
}

// listingFormSized writes images of size bytes each, starting with a JPEG marker.
func listingFormSized(t *testing.T, fields map[string]string, images, size int) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for i := 0; i < images; i++ {
		part, err := w.CreateFormFile("images", fmt.Sprintf("photo%d.jpg", i))
		require.NoError(t, err)
		data := make([]byte, size)
		copy(data, []byte{0xff, 0xd8, 0xff, byte(i)})
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func validFormFields() map[string]string {
	return map[string]string{
		"title":         "2BHK Flat",
		"description":   "Near bus stand",
		"price":         "₹45 Lakhs",
		"area":          "1200 sq.ft",
		"location":      "Coimbatore",
		"property_type": "residential",
		"contact_name":  "Ravi",
		"contact_phone": "+91 98400 12345",
		"contact_email": "ravi@example.com",
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestListingHandler_HandleSubmitListing(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		submitter := new(MockListingSubmitter)
		m := metrics.NewMetricsManager("test-portal")
		h := NewListingHandler(submitter, nil, m, logger.NewNop())

		submitter.On("Submit", mock.Anything, mock.MatchedBy(func(in usecase.SubmitListingInput) bool {
			return in.Fields.Title == "2BHK Flat" &&
				in.Fields.PropertyType == domain.PropertyResidential &&
				len(in.Images) == 2 &&
				in.Images[0].FileName == "photo0.jpg" &&
				len(in.Images[1].Data) == 4
		})).Return(sampleListing("L1", domain.StatusPending), nil).Once()

		body, contentType := listingForm(t, validFormFields(), 2)
		req := httptest.NewRequest(http.MethodPost, "/api/listings", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.HandleSubmitListing(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "L1", got["id"])
		assert.Equal(t, "pending", got["status"])
		assert.Nil(t, got["user_id"])
		assert.Equal(t, 1.0, testutil.ToFloat64(m.ListingsSubmittedTotal))
		submitter.AssertExpectations(t)
	})

	t.Run("FullSetOfLargeImagesAccepted", func(t *testing.T) {
		submitter := new(MockListingSubmitter)
		h := NewListingHandler(submitter, nil, nil, logger.NewNop())

		const size = 7 << 20
		submitter.On("Submit", mock.Anything, mock.MatchedBy(func(in usecase.SubmitListingInput) bool {
			return len(in.Images) == domain.MaxImages && len(in.Images[domain.MaxImages-1].Data) == size
		})).Return(sampleListing("L2", domain.StatusPending), nil).Once()

		body, contentType := listingFormSized(t, validFormFields(), domain.MaxImages, size)
		require.Greater(t, body.Len(), 32<<20)
		req := httptest.NewRequest(http.MethodPost, "/api/listings", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.HandleSubmitListing(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		submitter.AssertExpectations(t)
	})

	t.Run("OversizedImageRejected", func(t *testing.T) {
		submitter := new(MockListingSubmitter)
		h := NewListingHandler(submitter, nil, nil, logger.NewNop())

		body, contentType := listingFormSized(t, validFormFields(), 1, maxImageBytes+1)
		req := httptest.NewRequest(http.MethodPost, "/api/listings", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.HandleSubmitListing(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec), "exceeds")
		submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})

	t.Run("TooManyImagesRejectedBeforeUsecase", func(t *testing.T) {
		submitter := new(MockListingSubmitter)
		h := NewListingHandler(submitter, nil, nil, logger.NewNop())

		body, contentType := listingForm(t, validFormFields(), 6)
		req := httptest.NewRequest(http.MethodPost, "/api/listings", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.HandleSubmitListing(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec), "maximum 5 images allowed")
		submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})

	t.Run("NotMultipart", func(t *testing.T) {
		h := NewListingHandler(new(MockListingSubmitter), nil, nil, logger.NewNop())
		req := httptest.NewRequest(http.MethodPost, "/api/listings", strings.NewReader(`{"title":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		h.HandleSubmitListing(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("StorageFailureIs500", func(t *testing.T) {
		submitter := new(MockListingSubmitter)
		h := NewListingHandler(submitter, nil, nil, logger.NewNop())
		submitter.On("Submit", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: upload photo0.jpg", domain.ErrStorage)).Once()

		body, contentType := listingForm(t, validFormFields(), 1)
		req := httptest.NewRequest(http.MethodPost, "/api/listings", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.HandleSubmitListing(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal server error", decodeError(t, rec))
	})
}

func TestListingHandler_HandleBrowseListings(t *testing.T) {
	browser := new(MockListingBrowser)
	h := NewListingHandler(nil, browser, nil, logger.NewNop())

	l := sampleListing("L9", domain.StatusApproved)
	l.PropertyType = domain.PropertyCommercial
	browser.On("ListApproved", mock.Anything, "commercial").Return([]usecase.BrowseItem{
		{Listing: l, ContactLink: domain.ContactLink(l), CallLink: domain.CallLink(l), EmailLink: domain.EmailLink(l)},
	}, domain.PropertyCommercial, nil).Once()

	rec := httptest.NewRecorder()
	h.HandleBrowseListings(rec, httptest.NewRequest(http.MethodGet, "/api/listings?type=commercial", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		PropertyType string `json:"property_type"`
		Listings     []struct {
			ID          string `json:"id"`
			ContactLink string `json:"contact_link"`
			CallLink    string `json:"call_link"`
			EmailLink   string `json:"email_link"`
		} `json:"listings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "commercial", got.PropertyType)
	require.Len(t, got.Listings, 1)
	assert.Equal(t, "L9", got.Listings[0].ID)
	assert.True(t, strings.HasPrefix(got.Listings[0].ContactLink, "https://wa.me/919840012345?text="))
	assert.Equal(t, domain.CallLink(l), got.Listings[0].CallLink)
	assert.True(t, strings.HasPrefix(got.Listings[0].EmailLink, "mailto:"+l.ContactEmail+"?subject=Inquiry%20about%20"))
}

func TestListingHandler_HandleBrowseListings_EmptyIsList(t *testing.T) {
	browser := new(MockListingBrowser)
	h := NewListingHandler(nil, browser, nil, logger.NewNop())
	browser.On("ListApproved", mock.Anything, "").Return([]usecase.BrowseItem{}, domain.PropertyResidential, nil).Once()

	rec := httptest.NewRecorder()
	h.HandleBrowseListings(rec, httptest.NewRequest(http.MethodGet, "/api/listings", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"property_type":"residential","listings":[]}`, rec.Body.String())
}

// serveAdmin routes through chi so URL params resolve.
func serveAdmin(h *AdminHandler, method, pattern, target string, fn func(*AdminHandler) http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, fn(h))
	if req == nil {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAdminHandler_Transitions(t *testing.T) {
	t.Run("ApproveReturnsRefetchedListing", func(t *testing.T) {
		mod := new(MockModerator)
		m := metrics.NewMetricsManager("test-portal")
		h := NewAdminHandler(mod, m, logger.NewNop())
		mod.On("Approve", mock.Anything, "L1").Return(sampleListing("L1", domain.StatusApproved), nil).Once()

		rec := serveAdmin(h, http.MethodPost, "/api/admin/listings/{id}/approve", "/api/admin/listings/L1/approve",
			func(h *AdminHandler) http.HandlerFunc { return h.HandleApproveListing }, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"approved"`)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.ModerationActionsTotal.WithLabelValues("approve")))
	})

	t.Run("DisallowedTransitionIs409", func(t *testing.T) {
		mod := new(MockModerator)
		h := NewAdminHandler(mod, nil, logger.NewNop())
		mod.On("Reject", mock.Anything, "L1").
			Return(nil, fmt.Errorf("%w: approved -> rejected", domain.ErrInvalidTransition)).Once()

		rec := serveAdmin(h, http.MethodPost, "/api/admin/listings/{id}/reject", "/api/admin/listings/L1/reject",
			func(h *AdminHandler) http.HandlerFunc { return h.HandleRejectListing }, nil)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("UnknownIdIs404", func(t *testing.T) {
		mod := new(MockModerator)
		h := NewAdminHandler(mod, nil, logger.NewNop())
		mod.On("Approve", mock.Anything, "nope").Return(nil, domain.ErrNotFound).Once()

		rec := serveAdmin(h, http.MethodPost, "/api/admin/listings/{id}/approve", "/api/admin/listings/nope/approve",
			func(h *AdminHandler) http.HandlerFunc { return h.HandleApproveListing }, nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "entity not found", decodeError(t, rec))
	})
}

func TestAdminHandler_List(t *testing.T) {
	t.Run("DefaultsToPending", func(t *testing.T) {
		mod := new(MockModerator)
		h := NewAdminHandler(mod, nil, logger.NewNop())
		mod.On("List", mock.Anything, "").
			Return([]*domain.Listing{sampleListing("L1", domain.StatusPending)}, domain.FilterPending, nil).Once()

		rec := httptest.NewRecorder()
		h.HandleListListings(rec, httptest.NewRequest(http.MethodGet, "/api/admin/listings", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"pending"`)
	})

	t.Run("UnknownFilterIs400", func(t *testing.T) {
		mod := new(MockModerator)
		h := NewAdminHandler(mod, nil, logger.NewNop())
		mod.On("List", mock.Anything, "archived").
			Return(nil, domain.StatusFilter(""), fmt.Errorf("%w: unknown status filter 'archived'", domain.ErrInvalidInput)).Once()

		rec := httptest.NewRecorder()
		h.HandleListListings(rec, httptest.NewRequest(http.MethodGet, "/api/admin/listings?status=archived", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAdminHandler_EditAndDelete(t *testing.T) {
	t.Run("EditPassesFieldsAndImages", func(t *testing.T) {
		mod := new(MockModerator)
		h := NewAdminHandler(mod, nil, logger.NewNop())
		mod.On("Edit", mock.Anything, "L1", mock.MatchedBy(func(in usecase.EditListingInput) bool {
			return in.Fields.Location == "Coimbatore" && len(in.Images) == 1
		})).Return(sampleListing("L1", domain.StatusPending), nil).Once()

		body, contentType := listingForm(t, validFormFields(), 1)
		req := httptest.NewRequest(http.MethodPut, "/api/admin/listings/L1", body)
		req.Header.Set("Content-Type", contentType)

		rec := serveAdmin(h, http.MethodPut, "/api/admin/listings/{id}", "", func(h *AdminHandler) http.HandlerFunc { return h.HandleEditListing }, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		mod.AssertExpectations(t)
	})

	t.Run("DeleteIs204", func(t *testing.T) {
		mod := new(MockModerator)
		h := NewAdminHandler(mod, nil, logger.NewNop())
		mod.On("Delete", mock.Anything, "L1").Return(nil).Once()

		rec := serveAdmin(h, http.MethodDelete, "/api/admin/listings/{id}", "/api/admin/listings/L1",
			func(h *AdminHandler) http.HandlerFunc { return h.HandleDeleteListing }, nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("DeleteMessageIs204", func(t *testing.T) {
		mod := new(MockModerator)
		h := NewAdminHandler(mod, nil, logger.NewNop())
		mod.On("DeleteMessage", mock.Anything, "M1").Return(nil).Once()

		rec := serveAdmin(h, http.MethodDelete, "/api/admin/messages/{id}", "/api/admin/messages/M1",
			func(h *AdminHandler) http.HandlerFunc { return h.HandleDeleteMessage }, nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestContactHandler_HandleSubmitContact(t *testing.T) {
	t.Run("RelayFailureStillCreated", func(t *testing.T) {
		sub := new(MockContactSubmitter)
		m := metrics.NewMetricsManager("test-portal")
		h := NewContactHandler(sub, m, logger.NewNop())
		sub.On("Submit", mock.Anything, usecase.ContactInput{Name: "A", Email: "a@x.com", Phone: "1", Message: "hi"}).
			Return(&usecase.ContactReceipt{
				Message:    &domain.ContactMessage{ID: "M1", Name: "A", Email: "a@x.com", Phone: "1", Message: "hi", CreatedAt: fixedTime},
				RelayError: errors.New("relay returned status 502"),
			}, nil).Once()

		rec := httptest.NewRecorder()
		h.HandleSubmitContact(rec, httptest.NewRequest(http.MethodPost, "/api/contact",
			strings.NewReader(`{"name":"A","email":"a@x.com","phone":"1","message":"hi"}`)))

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"M1"`)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.ContactMessagesTotal))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.RelayFailuresTotal))
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		sub := new(MockContactSubmitter)
		h := NewContactHandler(sub, nil, logger.NewNop())

		rec := httptest.NewRecorder()
		h.HandleSubmitContact(rec, httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(`{"name":`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		sub.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})
}

func TestAuthHandler_HandleCreateSession(t *testing.T) {
	exp := fixedTime.Add(12 * time.Hour)
	cases := []struct {
		name       string
		token      string
		err        error
		wantStatus int
	}{
		{name: "Success", token: "tok", wantStatus: http.StatusOK},
		{name: "WrongPassword", err: fmt.Errorf("%w: invalid password", domain.ErrUnauthorized), wantStatus: http.StatusUnauthorized},
		{name: "AdminDisabled", err: auth.ErrAdminDisabled, wantStatus: http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			issuer := new(MockSessionIssuer)
			h := NewAuthHandler(issuer, logger.NewNop())
			issuer.On("Login", "pw").Return(tc.token, exp, tc.err).Once()

			rec := httptest.NewRecorder()
			h.HandleCreateSession(rec, httptest.NewRequest(http.MethodPost, "/api/admin/session", strings.NewReader(`{"password":"pw"}`)))

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.err == nil {
				assert.Contains(t, rec.Body.String(), `"token":"tok"`)
			}
		})
	}
}
