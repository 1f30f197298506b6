package http

import (
	"context"
	"net"
	"net/http"
	"os"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/quantonganh/codebinge"
)

const (
	shutdownTimeout = 1 * time.Second

	defaultSessionCookie = "codebinge_session"
)

// Server represents HTTP server
type Server struct {
	ln     net.Listener
	server *http.Server
	router *mux.Router

	Addr          string
	SessionCookie string

	SubscriptionService codebinge.SubscriptionService
	NewsletterService   codebinge.NewsletterService
	ProfileService      codebinge.ProfileService
	JudgeService        codebinge.JudgeService
	DashboardService    codebinge.DashboardService
	Guard               codebinge.Guard
	Sessions            codebinge.SessionVerifier
}

// NewServer create new HTTP server
func NewServer() (*Server, error) {
	s := &Server{
		server:        &http.Server{},
		router:        mux.NewRouter().StrictSlash(true),
		SessionCookie: defaultSessionCookie,
	}

	zlog := zerolog.New(os.Stdout).With().
		Timestamp().
		Logger()
	s.router.Use(hlog.NewHandler(zlog))
	s.router.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("")
	}))
	s.router.Use(hlog.UserAgentHandler("user_agent"))
	s.router.Use(hlog.RefererHandler("referer"))
	s.router.Use(hlog.RequestIDHandler("req_id", "Request-Id"))

	sentryHandler := sentryhttp.New(sentryhttp.Options{})
	s.router.Use(sentryHandler.Handle)

	s.server.Handler = http.HandlerFunc(s.serveHTTP)

	s.router.HandleFunc("/health", s.healthCheckHandler).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(s.identify)

	api.HandleFunc("/admin/newsletter", s.Error(s.subscriptionToggleHandler)).Methods(http.MethodPost)
	api.HandleFunc("/admin/newsletter/send", s.Error(s.sendNewsletterHandler)).Methods(http.MethodPost)
	api.HandleFunc("/admin/newsletter/subscribers", s.Error(s.subscriberCountHandler)).Methods(http.MethodGet)

	api.HandleFunc("/leetcode", s.Error(s.leetcodeHandler)).Methods(http.MethodGet)
	api.HandleFunc("/codeforces", s.Error(s.codeforcesHandler)).Methods(http.MethodGet)
	api.HandleFunc("/dashboard", s.Error(s.dashboardHandler)).Methods(http.MethodGet)

	api.HandleFunc("/profile", s.Error(s.profileHandler)).Methods(http.MethodGet)
	api.HandleFunc("/profile", s.Error(s.saveProfileHandler)).Methods(http.MethodPut)

	return s, nil
}

// Port returns server port
func (s *Server) Port() int {
	if s.ln == nil {
		return 0
	}
	return s.ln.Addr().(*net.TCPAddr).Port
}

func (s *Server) serveHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// Open opens a connection to HTTP server
func (s *Server) Open() (err error) {
	s.ln, err = net.Listen("tcp", s.Addr)
	if err != nil {
		return errors.Errorf("failed to listen to port %s: %v", s.Addr, err)
	}

	go func() {
		_ = s.server.Serve(s.ln)
	}()

	return nil
}

// Close shutdowns HTTP server
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}
