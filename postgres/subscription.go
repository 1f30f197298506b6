package postgres

import (
	"context"

	"github.com/pkg/errors"
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

// Subscribe inserts an active subscriber; a unique violation on email reactivates the existing row
func (ss *subscriptionService) Subscribe(ctx context.Context, email string) error {
	if err := codebinge.ValidateEmail(email); err != nil {
		return err
	}

	_, err := ss.db.sqlDB.ExecContext(ctx,
		`INSERT INTO newsletter_subscribers (id, email, is_active, subscribed_at) VALUES ($1, $2, true, NOW())`,
		uuid.NewV4().String(), email)
	if err == nil {
		return nil
	}
	if !isUniqueViolation(err) {
		return unavailable("postgres.Subscribe", errors.Wrap(err, "insert subscriber"))
	}

	if _, err := ss.db.sqlDB.ExecContext(ctx,
		`UPDATE newsletter_subscribers SET is_active = true WHERE email = $1`, email); err != nil {
		return unavailable("postgres.Subscribe", errors.Wrap(err, "reactivate subscriber"))
	}

	return nil
}

// Unsubscribe deactivates a subscriber
func (ss *subscriptionService) Unsubscribe(ctx context.Context, email string) error {
	if _, err := ss.db.sqlDB.ExecContext(ctx,
		`UPDATE newsletter_subscribers SET is_active = false WHERE email = $1`, email); err != nil {
		return unavailable("postgres.Unsubscribe", errors.Wrap(err, "deactivate subscriber"))
	}
	return nil
}

// FindActive returns the email of every active subscriber
func (ss *subscriptionService) FindActive(ctx context.Context) ([]string, error) {
	rows, err := ss.db.sqlDB.QueryContext(ctx,
		`SELECT email FROM newsletter_subscribers WHERE is_active = true`)
	if err != nil {
		return nil, unavailable("postgres.FindActive", errors.Wrap(err, "select active subscribers"))
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, unavailable("postgres.FindActive", errors.Wrap(err, "scan subscriber"))
		}
		emails = append(emails, email)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("postgres.FindActive", err)
	}

	return emails, nil
}

// CountActive counts active subscribers
func (ss *subscriptionService) CountActive(ctx context.Context) (int, error) {
	var n int
	if err := ss.db.sqlDB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM newsletter_subscribers WHERE is_active = true`).Scan(&n); err != nil {
		return 0, unavailable("postgres.CountActive", errors.Wrap(err, "count active subscribers"))
	}
	return n, nil
}
