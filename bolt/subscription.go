package bolt

import (
	"context"
	"time"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/q"
	"github.com/go-errors/errors"
	"github.com/samber/lo"
	uuid "github.com/satori/go.uuid"

	"github.com/quantonganh/codebinge"
)

type subscriptionService struct {
	db *DB
}

func NewSubscriptionService(db *DB) codebinge.SubscriptionService {
	return &subscriptionService{
		db: db,
	}
}

// Subscribe saves a new active subscriber; when the email already exists it is reactivated
func (ss *subscriptionService) Subscribe(_ context.Context, email string) error {
	if err := codebinge.ValidateEmail(email); err != nil {
		return err
	}

	s := &codebinge.Subscriber{
		ID:           uuid.NewV4().String(),
		Email:        email,
		IsActive:     true,
		SubscribedAt: time.Now().UTC(),
	}
	err := ss.db.stormDB.Save(s)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storm.ErrAlreadyExists) {
		return unavailable("bolt.Subscribe", errors.Errorf("failed to save: %v", err))
	}

	return ss.setActive(email, true)
}

// Unsubscribe deactivates a subscriber, ignoring unknown emails
func (ss *subscriptionService) Unsubscribe(_ context.Context, email string) error {
	err := ss.setActive(email, false)
	if errors.Is(err, storm.ErrNotFound) {
		return nil
	}
	return err
}

func (ss *subscriptionService) setActive(email string, active bool) error {
	var s codebinge.Subscriber
	if err := ss.db.stormDB.One("Email", email, &s); err != nil {
		if errors.Is(err, storm.ErrNotFound) {
			return err
		}
		return unavailable("bolt.setActive", errors.Errorf("failed to find by email: %v", err))
	}

	if err := ss.db.stormDB.UpdateField(&s, "IsActive", active); err != nil {
		return unavailable("bolt.setActive", errors.Errorf("failed to update: %v", err))
	}

	return nil
}

// FindActive finds the emails of active subscribers
func (ss *subscriptionService) FindActive(_ context.Context) ([]string, error) {
	var subscribers []codebinge.Subscriber
	if err := ss.db.stormDB.Find("IsActive", true, &subscribers); err != nil {
		if errors.Is(err, storm.ErrNotFound) {
			return nil, nil
		}
		return nil, unavailable("bolt.FindActive", errors.Errorf("failed to find by status: %v", err))
	}

	return lo.Map(subscribers, func(s codebinge.Subscriber, _ int) string {
		return s.Email
	}), nil
}

// CountActive counts active subscribers
func (ss *subscriptionService) CountActive(_ context.Context) (int, error) {
	n, err := ss.db.stormDB.Select(q.Eq("IsActive", true)).Count(&codebinge.Subscriber{})
	if err != nil {
		return 0, unavailable("bolt.CountActive", errors.Errorf("failed to count: %v", err))
	}

	return n, nil
}
