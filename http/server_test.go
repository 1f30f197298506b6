package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantonganh/codebinge"
	"github.com/quantonganh/codebinge/auth"
	"github.com/quantonganh/codebinge/judge"
	"github.com/quantonganh/codebinge/mock"
)

const (
	adminEmail = "admin@codebinge.dev"
	userEmail  = "user@example.com"
)

var sessions = auth.NewSessions("test-secret")

func newTestServer(t *testing.T) *Server {
	t.Helper()

	s, err := NewServer()
	require.NoError(t, err)
	s.Sessions = sessions
	s.Guard = auth.NewAllowList([]string{adminEmail})
	return s
}

func sessionFor(t *testing.T, email string) string {
	t.Helper()

	token, err := sessions.Issue(email, time.Hour)
	require.NoError(t, err)
	return token
}

func do(t *testing.T, s *Server, method, target string, body interface{}, token string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, target, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: s.SessionCookie, Value: token})
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return w, resp
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)

	w, resp := do(t, s, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", resp["status"])
}

func TestSubscriptionToggle(t *testing.T) {
	tests := []struct {
		name    string
		body    codebinge.SubscriptionRequest
		setup   func(*mock.SubscriptionService)
		status  int
		message string
		errMsg  string
	}{
		{
			name: "subscribe by default",
			body: codebinge.SubscriptionRequest{Email: "foo@gmail.com"},
			setup: func(m *mock.SubscriptionService) {
				m.On("Subscribe", "foo@gmail.com").Return(nil)
			},
			status:  http.StatusOK,
			message: subscribedMessage,
		},
		{
			name: "unsubscribe",
			body: codebinge.SubscriptionRequest{Email: "foo@gmail.com", Action: codebinge.ActionUnsubscribe},
			setup: func(m *mock.SubscriptionService) {
				m.On("Unsubscribe", "foo@gmail.com").Return(nil)
			},
			status:  http.StatusOK,
			message: unsubscribedMessage,
		},
		{
			name:   "invalid email",
			body:   codebinge.SubscriptionRequest{Email: "not-an-email"},
			status: http.StatusBadRequest,
			errMsg: "Valid email is required",
		},
		{
			name:   "invalid action",
			body:   codebinge.SubscriptionRequest{Email: "foo@gmail.com", Action: "pause"},
			status: http.StatusBadRequest,
			errMsg: "Invalid action",
		},
		{
			name: "store failure",
			body: codebinge.SubscriptionRequest{Email: "foo@gmail.com"},
			setup: func(m *mock.SubscriptionService) {
				m.On("Subscribe", "foo@gmail.com").Return(&codebinge.Error{Code: codebinge.ErrUnavailable, Err: errors.New("connection refused")})
			},
			status: http.StatusInternalServerError,
			errMsg: internalErrorMessage,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			subscriptions := new(mock.SubscriptionService)
			if tc.setup != nil {
				tc.setup(subscriptions)
			}
			s := newTestServer(t)
			s.SubscriptionService = subscriptions

			w, resp := do(t, s, http.MethodPost, "/api/admin/newsletter", tc.body, "")
			assert.Equal(t, tc.status, w.Code)
			if tc.errMsg != "" {
				assert.Equal(t, tc.errMsg, resp["error"])
				return
			}
			assert.Equal(t, true, resp["success"])
			assert.Equal(t, tc.message, resp["message"])
			subscriptions.AssertExpectations(t)
		})
	}
}

func TestSendNewsletter(t *testing.T) {
	req := codebinge.NewsletterRequest{Subject: "Weekly Update", Content: "New problems added!"}

	newsletters := new(mock.NewsletterService)
	newsletters.On("Send", &codebinge.Identity{Email: adminEmail}, req).
		Return(&codebinge.DispatchResult{Success: true, SentCount: 3}, nil)

	s := newTestServer(t)
	s.NewsletterService = newsletters

	w, resp := do(t, s, http.MethodPost, "/api/admin/newsletter/send", req, sessionFor(t, adminEmail))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, float64(3), resp["sentCount"])
}

func TestSendNewsletterErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		errMsg string
	}{
		{"missing fields", codebinge.Errorf(codebinge.ErrInvalid, "Subject and content are required"), http.StatusBadRequest, "Subject and content are required"},
		{"no recipients", codebinge.ErrNoRecipients, http.StatusNotFound, "No active subscribers found"},
		{"transport unconfigured", codebinge.ErrTransportUnconfigured, http.StatusInternalServerError, "Mail transport is not configured"},
		{"store unavailable", &codebinge.Error{Code: codebinge.ErrUnavailable, Err: errors.New("timeout")}, http.StatusInternalServerError, internalErrorMessage},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			newsletters := new(mock.NewsletterService)
			newsletters.On("Send", mock.Anything, mock.Anything).Return(nil, tc.err)

			s := newTestServer(t)
			s.NewsletterService = newsletters

			w, resp := do(t, s, http.MethodPost, "/api/admin/newsletter/send", codebinge.NewsletterRequest{}, sessionFor(t, adminEmail))
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.errMsg, resp["error"])
		})
	}
}

func TestSendNewsletterUnauthorizedBeforeBody(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"anonymous", ""},
		{"forged session", "forged-token"},
		{"non-admin session", sessionFor(t, userEmail)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			newsletters := new(mock.NewsletterService)

			s := newTestServer(t)
			s.NewsletterService = newsletters

			req, err := http.NewRequest(http.MethodPost, "/api/admin/newsletter/send", strings.NewReader("not json"))
			require.NoError(t, err)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}

			w := httptest.NewRecorder()
			s.router.ServeHTTP(w, req)

			var resp map[string]string
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Unauthorized", resp["error"])
			newsletters.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		})
	}
}

func TestSendNewsletterMalformedBody(t *testing.T) {
	s := newTestServer(t)
	s.NewsletterService = new(mock.NewsletterService)

	req, err := http.NewRequest(http.MethodPost, "/api/admin/newsletter/send", strings.NewReader("not json"))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+sessionFor(t, adminEmail))

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscriberCount(t *testing.T) {
	subscriptions := new(mock.SubscriptionService)
	subscriptions.On("CountActive").Return(42, nil)

	s := newTestServer(t)
	s.SubscriptionService = subscriptions

	w, resp := do(t, s, http.MethodGet, "/api/admin/newsletter/subscribers", nil, sessionFor(t, adminEmail))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(42), resp["count"])

	w, resp = do(t, s, http.MethodGet, "/api/admin/newsletter/subscribers", nil, sessionFor(t, userEmail))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", resp["error"])
	subscriptions.AssertNumberOfCalls(t, "CountActive", 1)
}

func TestLeetCodeProxy(t *testing.T) {
	judgeService := new(mock.JudgeService)
	judgeService.On("LeetCodeStats", "neal_wu").Return(&codebinge.LeetCodeStats{Username: "neal_wu", TotalSolved: 160}, nil)
	judgeService.On("LeetCodeStats", "").Return(nil, codebinge.Errorf(codebinge.ErrInvalid, "Username is required"))

	s := newTestServer(t)
	s.JudgeService = judgeService

	w, resp := do(t, s, http.MethodGet, "/api/leetcode?username=neal_wu", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(160), resp["totalSolved"])

	w, resp = do(t, s, http.MethodGet, "/api/leetcode", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username is required", resp["error"])
}

func TestCodeforcesProxyNotFound(t *testing.T) {
	judgeService := new(mock.JudgeService)
	judgeService.On("CodeforcesStats", "nobody").Return(nil, codebinge.Errorf(codebinge.ErrNotFound, "Codeforces user nobody not found"))

	s := newTestServer(t)
	s.JudgeService = judgeService

	w, resp := do(t, s, http.MethodGet, "/api/codeforces?username=nobody", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Codeforces user nobody not found", resp["error"])
}

func TestDashboard(t *testing.T) {
	judgeService := new(mock.JudgeService)
	judgeService.On("LeetCodeStats", "neal_wu").Return(&codebinge.LeetCodeStats{TotalSolved: 160, TodaySolved: 2}, nil)
	judgeService.On("CodeforcesStats", "tourist").Return(&codebinge.CodeforcesStats{SolvedCount: 40, TodaySolved: 1}, nil)

	s := newTestServer(t)
	s.DashboardService = judge.NewDashboardService(judgeService)

	w, resp := do(t, s, http.MethodGet, "/api/dashboard?leetcode=neal_wu&codeforces=tourist", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(200), resp["totalSolved"])
	assert.Equal(t, float64(3), resp["todaySolved"])
}

func TestProfileRequiresSession(t *testing.T) {
	s := newTestServer(t)
	s.ProfileService = new(mock.ProfileService)

	w, resp := do(t, s, http.MethodGet, "/api/profile", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", resp["error"])
}

func TestProfileGet(t *testing.T) {
	profiles := new(mock.ProfileService)
	profiles.On("FindByEmail", userEmail).Return(&codebinge.Profile{Email: userEmail, LeetCodeUsername: "neal_wu"}, nil)

	s := newTestServer(t)
	s.ProfileService = profiles

	w, resp := do(t, s, http.MethodGet, "/api/profile", nil, sessionFor(t, userEmail))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "neal_wu", resp["leetcode_username"])
}

func TestProfileSaveCreatesOnFirstUse(t *testing.T) {
	profiles := new(mock.ProfileService)
	profiles.On("FindByEmail", userEmail).Return(nil, codebinge.Errorf(codebinge.ErrNotFound, "profile not found"))
	profiles.On("Save", &codebinge.Profile{
		Email:              userEmail,
		Username:           "binger",
		LeetCodeUsername:   "neal_wu",
		CodeforcesUsername: "tourist",
	}).Return(nil)

	s := newTestServer(t)
	s.ProfileService = profiles

	body := codebinge.ProfileRequest{Username: " binger ", LeetCodeUsername: "neal_wu", CodeforcesUsername: "tourist"}
	w, resp := do(t, s, http.MethodPut, "/api/profile", body, sessionFor(t, userEmail))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "binger", resp["username"])
	profiles.AssertExpectations(t)
}
