package handler

import (
	"net/http"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/logger"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/metrics"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/usecase"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdminHandler serves the moderation routes. All of them sit behind JWTAuth.
type AdminHandler struct {
	moderator Moderator
	metrics   *metrics.MetricsManager
	logger    *logger.Logger
}

func NewAdminHandler(moderator Moderator, m *metrics.MetricsManager, log *logger.Logger) *AdminHandler {
	return &AdminHandler{moderator: moderator, metrics: m, logger: log.Named("AdminHandler")}
}

func (h *AdminHandler) countAction(action string) {
	if h.metrics != nil {
		h.metrics.ModerationActionsTotal.WithLabelValues(action).Inc()
	}
}

func (h *AdminHandler) HandleListListings(w http.ResponseWriter, r *http.Request) {
	listings, filter, err := h.moderator.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, h.logger, "ListListings", err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"status":   string(filter),
		"listings": toListingResponses(listings),
	})
}

func (h *AdminHandler) HandleCreateListing(w http.ResponseWriter, r *http.Request) {
	fields, images, err := parseListingForm(w, r)
	if err != nil {
		writeError(w, h.logger, "CreateListing", err)
		return
	}
	listing, err := h.moderator.CreateApproved(r.Context(), usecase.SubmitListingInput{Fields: fields, Images: images})
	if err != nil {
		writeError(w, h.logger, "CreateListing", err)
		return
	}
	h.countAction("create")
	writeJSON(w, h.logger, http.StatusCreated, toListingResponse(listing))
}

func (h *AdminHandler) HandleEditListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	fields, images, err := parseListingForm(w, r)
	if err != nil {
		writeError(w, h.logger, "EditListing", err)
		return
	}
	listing, err := h.moderator.Edit(r.Context(), id, usecase.EditListingInput{Fields: fields, Images: images})
	if err != nil {
		writeError(w, h.logger, "EditListing", err)
		return
	}
	h.countAction("edit")
	writeJSON(w, h.logger, http.StatusOK, toListingResponse(listing))
}

func (h *AdminHandler) HandleApproveListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	listing, err := h.moderator.Approve(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, "ApproveListing", err)
		return
	}
	h.countAction("approve")
	h.logger.Info("Listing approved", zap.String("listing_id", id))
	writeJSON(w, h.logger, http.StatusOK, toListingResponse(listing))
}

func (h *AdminHandler) HandleRejectListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	listing, err := h.moderator.Reject(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, "RejectListing", err)
		return
	}
	h.countAction("reject")
	h.logger.Info("Listing rejected", zap.String("listing_id", id))
	writeJSON(w, h.logger, http.StatusOK, toListingResponse(listing))
}

func (h *AdminHandler) HandleDeleteListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.moderator.Delete(r.Context(), id); err != nil {
		writeError(w, h.logger, "DeleteListing", err)
		return
	}
	h.countAction("delete")
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) HandleListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.moderator.ListMessages(r.Context())
	if err != nil {
		writeError(w, h.logger, "ListMessages", err)
		return
	}
	out := make([]messageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, toMessageResponse(m))
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{"messages": out})
}

func (h *AdminHandler) HandleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	if err := h.moderator.DeleteMessage(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, "DeleteMessage", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
