package codebinge

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// SubscriptionService is the interface that wraps methods related to the subscriber list
type SubscriptionService interface {
	// Subscribe inserts an active subscriber. An existing email is reactivated, never duplicated.
	Subscribe(ctx context.Context, email string) error
	// Unsubscribe flips the active flag off. Unknown emails are ignored.
	Unsubscribe(ctx context.Context, email string) error
	FindActive(ctx context.Context) ([]string, error)
	CountActive(ctx context.Context) (int, error)
}

// Subscriber represents a newsletter subscriber
type Subscriber struct {
	ID           string    `storm:"id" json:"id"`
	Email        string    `storm:"unique" json:"email"`
	IsActive     bool      `storm:"index" json:"is_active"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// Subscription actions
const (
	ActionSubscribe   = "subscribe"
	ActionUnsubscribe = "unsubscribe"
)

type SubscriptionRequest struct {
	Email  string `json:"email"`
	Action string `json:"action"`
}

type SubscriptionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SubscriberCountResponse struct {
	Count int `json:"count"`
}

// ValidateEmail reports an invalid error unless email is a syntactically valid address.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return Errorf(ErrInvalid, "Valid email is required")
	}
	if err := validate.Var(email, "required,email"); err != nil {
		return &Error{Code: ErrInvalid, Message: "Valid email is required", Err: err}
	}
	return nil
}

// Validate checks the request email, defaulting a missing action to subscribe.
func (r *SubscriptionRequest) Validate() error {
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	if r.Action == "" {
		r.Action = ActionSubscribe
	}
	if err := validate.Var(r.Action, "oneof=subscribe unsubscribe"); err != nil {
		return &Error{Code: ErrInvalid, Message: "Invalid action", Err: err}
	}
	return nil
}
