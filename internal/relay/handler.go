package relay

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/mailer"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"
)

const (
	maxBodyBytes = 64 << 10
	sendTimeout  = 15 * time.Second

	// DefaultFromEmail and DefaultContactEmail apply when unset in config.
	DefaultFromEmail    = "onboarding@resend.dev"
	DefaultContactEmail = "ayyavu.ayyavupromoters@gmail.com"
)

// Submission is a contact form payload.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Handler accepts contact submissions and emails them to the site owner.
type Handler struct {
	mailer    mailer.Mailer // nil skips delivery
	fromEmail string
	toEmail   string
	schema    *jsonschema.Schema
	logger    *logger.Logger
}

func NewHandler(m mailer.Mailer, fromEmail, toEmail string, log *logger.Logger) (*Handler, error) {
	schema, err := compileContactSchema()
	if err != nil {
		return nil, err
	}
	if fromEmail == "" {
		fromEmail = DefaultFromEmail
	}
	if toEmail == "" {
		toEmail = DefaultContactEmail
	}
	return &Handler{
		mailer:    m,
		fromEmail: fromEmail,
		toEmail:   toEmail,
		schema:    schema,
		logger:    log.Named("RelayHandler"),
	}, nil
}

// Routes mounts the relay on a chi router with open CORS.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:     []string{"*"},
		AllowedMethods:     []string{"POST", "OPTIONS"},
		AllowedHeaders:     []string{"authorization", "x-client-info", "apikey", "content-type"},
		OptionsPassthrough: true,
	}))

	r.Options("/*", h.handleOptions)
	r.Post("/", h.HandleSubmit)
	r.Post("/send-contact-email", h.HandleSubmit)
	return r
}

func (h *Handler) handleOptions(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// HandleSubmit validates the payload and sends the notification. Delivery
// failures are logged and never change the response.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": err.Error()})
		return
	}

	submission, err := decodeSubmission(h.schema, body)
	if err != nil {
		h.logger.Warn("Contact form error", zap.Error(err))
		h.writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": err.Error()})
		return
	}

	h.logger.Info("Contact form submission",
		zap.String("name", submission.Name),
		zap.String("email", submission.Email),
		zap.String("phone", submission.Phone),
		zap.Int("message_length", len(submission.Message)))

	h.deliver(r.Context(), submission)

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Contact form submitted successfully",
	})
}

func (h *Handler) deliver(ctx context.Context, s Submission) {
	if h.mailer == nil {
		h.logger.Info("No mail transport configured, skipping email send")
		return
	}

	html, err := RenderHTML(s)
	if err != nil {
		h.logger.Error("Failed to render email", zap.Error(err))
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	err = h.mailer.Send(sendCtx, mailer.Email{
		From:    h.fromEmail,
		To:      []string{h.toEmail},
		Subject: Subject(s),
		HTML:    html,
		Text:    RenderText(s),
	})
	if err != nil {
		h.logger.Error("Failed to send email", zap.Error(err))
		return
	}
	h.logger.Info("Email sent successfully")
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
