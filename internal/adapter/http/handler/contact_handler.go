package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/logger"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/metrics"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/domain"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/usecase"
	"go.uber.org/zap"
)

const maxContactBodyBytes = 64 << 10

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type ContactHandler struct {
	submitter ContactSubmitter
	metrics   *metrics.MetricsManager
	logger    *logger.Logger
}

func NewContactHandler(submitter ContactSubmitter, m *metrics.MetricsManager, log *logger.Logger) *ContactHandler {
	return &ContactHandler{submitter: submitter, metrics: m, logger: log.Named("ContactHandler")}
}

// HandleSubmitContact stores a contact message. Relay failures are
// counted but do not change the response.
func (h *ContactHandler) HandleSubmitContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxContactBodyBytes)).Decode(&req); err != nil {
		writeError(w, h.logger, "SubmitContact", fmt.Errorf("%w: invalid request body: %v", domain.ErrInvalidInput, err))
		return
	}

	receipt, err := h.submitter.Submit(r.Context(), usecase.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		writeError(w, h.logger, "SubmitContact", err)
		return
	}

	if h.metrics != nil {
		h.metrics.ContactMessagesTotal.Inc()
		if receipt.RelayError != nil {
			h.metrics.RelayFailuresTotal.Inc()
		}
	}
	h.logger.Info("Contact message stored", zap.String("message_id", receipt.Message.ID))
	writeJSON(w, h.logger, http.StatusCreated, toMessageResponse(receipt.Message))
}
