package usecase

import (
	"context"
	"time"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/domain"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/logger"
	"go.uber.org/zap"
)

// ContactInput is the public contact form.
type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// ContactReceipt reports the stored message and, if the email relay
// failed, why. A relay failure never fails the submission.
type ContactReceipt struct {
	Message    *domain.ContactMessage
	RelayError error
}

// ContactUsecase stores contact messages and notifies the email relay.
type ContactUsecase struct {
	repo     domain.MessageRepository
	notifier ContactNotifier
	events   EventPublisher
	logger   *logger.Logger
}

func NewContactUsecase(repo domain.MessageRepository, notifier ContactNotifier, events EventPublisher, log *logger.Logger) *ContactUsecase {
	return &ContactUsecase{
		repo:     repo,
		notifier: notifier,
		events:   events,
		logger:   log.Named("ContactUsecase"),
	}
}

// Submit stores the message, then calls the relay best-effort.
func (uc *ContactUsecase) Submit(ctx context.Context, in ContactInput) (*ContactReceipt, error) {
	msg, err := domain.NewContactMessage(in.Name, in.Email, in.Phone, in.Message)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, msg); err != nil {
		uc.logger.Error("Failed to store contact message", zap.Error(err))
		return nil, repoErr("create message", err)
	}
	uc.logger.Info("Contact message stored", zap.String("message_id", msg.ID))

	receipt := &ContactReceipt{Message: msg}
	if uc.notifier != nil {
		if err := uc.notifier.Notify(ctx, msg); err != nil {
			uc.logger.Warn("Email relay notification failed", zap.String("message_id", msg.ID), zap.Error(err))
			receipt.RelayError = err
		}
	}

	publishEvent(ctx, uc.events, uc.logger, SubjectContactReceived, map[string]interface{}{
		"message_id": msg.ID,
		"name":       msg.Name,
		"created_at": msg.CreatedAt.Format(time.RFC3339Nano),
	})
	return receipt, nil
}
