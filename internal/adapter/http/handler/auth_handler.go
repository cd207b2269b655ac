package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/logger"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/domain"
)

type sessionRequest struct {
	Password string `json:"password"`
}

type sessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AuthHandler struct {
	issuer SessionIssuer
	logger *logger.Logger
}

func NewAuthHandler(issuer SessionIssuer, log *logger.Logger) *AuthHandler {
	return &AuthHandler{issuer: issuer, logger: log.Named("AuthHandler")}
}

// HandleCreateSession exchanges the admin password for a bearer token.
func (h *AuthHandler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil {
		writeError(w, h.logger, "CreateSession", fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput))
		return
	}

	token, expiresAt, err := h.issuer.Login(req.Password)
	if err != nil {
		writeError(w, h.logger, "CreateSession", err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, sessionResponse{Token: token, ExpiresAt: expiresAt})
}
