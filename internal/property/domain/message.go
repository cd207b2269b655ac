package domain

import (
	"fmt"
	"strings"
	"time"
)

// ContactMessage is a submission of the public contact form.
type ContactMessage struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Message   string
	CreatedAt time.Time
}

// NewContactMessage trims and validates the four required fields.
func NewContactMessage(name, email, phone, message string) (*ContactMessage, error) {
	m := &ContactMessage{
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		Phone:     strings.TrimSpace(phone),
		Message:   strings.TrimSpace(message),
		CreatedAt: time.Now().UTC(),
	}
	switch {
	case m.Name == "":
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	case m.Email == "":
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	case m.Phone == "":
		return nil, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	case m.Message == "":
		return nil, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	return m, nil
}
