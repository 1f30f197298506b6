package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantonganh/codebinge"
)

const (
	insertSubscriberQuery     = `INSERT INTO newsletter_subscribers (id, email, is_active, subscribed_at) VALUES ($1, $2, true, NOW())`
	reactivateSubscriberQuery = `UPDATE newsletter_subscribers SET is_active = true WHERE email = $1`
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	db := NewDB("postgres://test")
	db.sqlDB = sqlDB
	return db, mock
}

func TestSubscribe(t *testing.T) {
	db, mock := newMockDB(t)
	ss := NewSubscriptionService(db)

	mock.ExpectExec(regexp.QuoteMeta(insertSubscriberQuery)).
		WithArgs(sqlmock.AnyArg(), "foo@gmail.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, ss.Subscribe(context.Background(), "foo@gmail.com"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscribeDuplicateReactivates(t *testing.T) {
	db, mock := newMockDB(t)
	ss := NewSubscriptionService(db)

	mock.ExpectExec(regexp.QuoteMeta(insertSubscriberQuery)).
		WithArgs(sqlmock.AnyArg(), "foo@gmail.com").
		WillReturnError(&pq.Error{Code: uniqueViolation, Message: "duplicate key value violates unique constraint"})
	mock.ExpectExec(regexp.QuoteMeta(reactivateSubscriberQuery)).
		WithArgs("foo@gmail.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, ss.Subscribe(context.Background(), "foo@gmail.com"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscribeInvalidEmail(t *testing.T) {
	db, mock := newMockDB(t)
	ss := NewSubscriptionService(db)

	for _, email := range []string{"", "   ", "not-an-email"} {
		err := ss.Subscribe(context.Background(), email)
		require.Error(t, err)
		assert.Equal(t, codebinge.ErrInvalid, codebinge.ErrorCode(err))
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscribeStoreFailure(t *testing.T) {
	db, mock := newMockDB(t)
	ss := NewSubscriptionService(db)

	mock.ExpectExec(regexp.QuoteMeta(insertSubscriberQuery)).
		WillReturnError(errors.New("connection refused"))

	err := ss.Subscribe(context.Background(), "foo@gmail.com")
	require.Error(t, err)
	assert.Equal(t, codebinge.ErrUnavailable, codebinge.ErrorCode(err))
}

func TestUnsubscribe(t *testing.T) {
	db, mock := newMockDB(t)
	ss := NewSubscriptionService(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE newsletter_subscribers SET is_active = false WHERE email = $1`)).
		WithArgs("ghost@gmail.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, ss.Unsubscribe(context.Background(), "ghost@gmail.com"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindActiveAndCount(t *testing.T) {
	db, mock := newMockDB(t)
	ss := NewSubscriptionService(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT email FROM newsletter_subscribers WHERE is_active = true`)).
		WillReturnRows(sqlmock.NewRows([]string{"email"}).
			AddRow("a@example.com").
			AddRow("b@example.com"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM newsletter_subscribers WHERE is_active = true`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	emails, err := ss.FindActive(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a@example.com", "b@example.com"}, emails)

	n, err := ss.CountActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(emails), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindActiveStoreUnavailable(t *testing.T) {
	db, mock := newMockDB(t)
	ss := NewSubscriptionService(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT email FROM newsletter_subscribers WHERE is_active = true`)).
		WillReturnError(errors.New("connection reset by peer"))

	_, err := ss.FindActive(context.Background())
	require.Error(t, err)
	assert.Equal(t, codebinge.ErrUnavailable, codebinge.ErrorCode(err))
}
