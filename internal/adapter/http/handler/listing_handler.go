package handler

import (
	"net/http"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/logger"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/metrics"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/usecase"
	"go.uber.org/zap"
)

// ListingHandler serves the public listing routes.
type ListingHandler struct {
	submitter ListingSubmitter
	browser   ListingBrowser
	metrics   *metrics.MetricsManager
	logger    *logger.Logger
}

func NewListingHandler(submitter ListingSubmitter, browser ListingBrowser, m *metrics.MetricsManager, log *logger.Logger) *ListingHandler {
	return &ListingHandler{
		submitter: submitter,
		browser:   browser,
		metrics:   m,
		logger:    log.Named("ListingHandler"),
	}
}

// HandleSubmitListing stores a public submission as pending.
func (h *ListingHandler) HandleSubmitListing(w http.ResponseWriter, r *http.Request) {
	fields, images, err := parseListingForm(w, r)
	if err != nil {
		writeError(w, h.logger, "SubmitListing", err)
		return
	}

	listing, err := h.submitter.Submit(r.Context(), usecase.SubmitListingInput{Fields: fields, Images: images})
	if err != nil {
		writeError(w, h.logger, "SubmitListing", err)
		return
	}

	if h.metrics != nil {
		h.metrics.ListingsSubmittedTotal.Inc()
	}
	h.logger.Info("Listing submitted", zap.String("listing_id", listing.ID), zap.Int("images", len(listing.Images)))
	writeJSON(w, h.logger, http.StatusCreated, toListingResponse(listing))
}

// HandleBrowseListings returns approved listings of ?type=, residential by default.
func (h *ListingHandler) HandleBrowseListings(w http.ResponseWriter, r *http.Request) {
	items, propertyType, err := h.browser.ListApproved(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, h.logger, "BrowseListings", err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"property_type": string(propertyType),
		"listings":      toBrowseResponses(items),
	})
}
