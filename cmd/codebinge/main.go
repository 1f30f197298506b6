package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/quantonganh/codebinge"
	"github.com/quantonganh/codebinge/auth"
	"github.com/quantonganh/codebinge/bolt"
	"github.com/quantonganh/codebinge/http"
	"github.com/quantonganh/codebinge/judge"
	"github.com/quantonganh/codebinge/newsletter"
	"github.com/quantonganh/codebinge/postgres"
	"github.com/quantonganh/codebinge/ses"
	"github.com/quantonganh/codebinge/smtp"
)

func main() {
	config, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn: config.Sentry.DSN,
	}); err != nil {
		log.Fatalf("sentry.Init: %v", err)
	}
	defer sentry.Flush(2 * time.Second)

	a := newApp(config)

	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		<-c
		cancel()
	}()

	if err := a.Run(ctx); err != nil {
		_ = a.Close()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	<-ctx.Done()

	if err := a.Close(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*codebinge.Config, error) {
	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("http.addr", ":8080")
	viper.SetDefault("db.type", "postgres")
	viper.SetDefault("db.path", "codebinge.db")
	viper.SetDefault("mail.provider", "smtp")
	viper.SetDefault("smtp.port", 587)
	viper.SetDefault("session.cookie", "codebinge_session")
	viper.SetDefault("judge.timeout", 30*time.Second)
	viper.SetDefault("judge.cache.ttl", 10*time.Minute)

	// Keys without defaults are invisible to Unmarshal unless bound.
	for _, key := range []string{
		"db.dsn",
		"smtp.host", "smtp.secure", "smtp.username", "smtp.password",
		"ses.region", "ses.accesskey", "ses.secretkey",
		"mail.from", "site.url", "admin.emails", "session.secret",
		"judge.leetcodeurl", "judge.codeforcesurl", "judge.cache.addr",
		"sentry.dsn",
	} {
		if err := viper.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config *codebinge.Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	return config, nil
}

type app struct {
	config     *codebinge.Config
	logger     zerolog.Logger
	db         codebinge.Database
	rdb        *redis.Client
	httpServer *http.Server
}

func newApp(config *codebinge.Config) *app {
	httpServer, err := http.NewServer()
	if err != nil {
		log.Fatalf("%+v\n", err)
	}

	return &app{
		config:     config,
		logger:     zerolog.New(os.Stdout).With().Timestamp().Logger(),
		httpServer: httpServer,
	}
}

func (a *app) Run(ctx context.Context) error {
	subscriptions, profiles, err := a.openStore()
	if err != nil {
		return err
	}

	mailer, err := a.newMailer(ctx)
	if err != nil {
		return err
	}

	renderer, err := newsletter.NewRenderer(a.config.Site.URL)
	if err != nil {
		return err
	}

	guard := auth.NewAllowList(a.config.Admin.Emails)
	dispatcher := newsletter.NewDispatcher(mailer, a.logger)

	var judgeService codebinge.JudgeService = judge.NewClient(a.config, a.logger)
	if addr := a.config.Judge.Cache.Addr; addr != "" {
		a.rdb = redis.NewClient(&redis.Options{Addr: addr})
		judgeService = judge.NewCache(judgeService, a.rdb, a.config.Judge.Cache.TTL, a.logger)
	}

	a.httpServer.Addr = a.config.HTTP.Addr
	if a.config.Session.Cookie != "" {
		a.httpServer.SessionCookie = a.config.Session.Cookie
	}
	a.httpServer.Guard = guard
	a.httpServer.Sessions = auth.NewSessions(a.config.Session.Secret)
	a.httpServer.SubscriptionService = subscriptions
	a.httpServer.ProfileService = profiles
	a.httpServer.NewsletterService = newsletter.NewService(guard, subscriptions, renderer, dispatcher, a.logger)
	a.httpServer.JudgeService = judgeService
	a.httpServer.DashboardService = judge.NewDashboardService(judgeService)

	if err := a.httpServer.Open(); err != nil {
		return err
	}
	a.logger.Info().Int("port", a.httpServer.Port()).Msg("listening")

	return nil
}

func (a *app) openStore() (codebinge.SubscriptionService, codebinge.ProfileService, error) {
	switch a.config.DB.Type {
	case "bolt":
		db := bolt.NewDB(a.config.DB.Path)
		if err := db.Open(); err != nil {
			return nil, nil, err
		}
		a.db = db
		return bolt.NewSubscriptionService(db), bolt.NewProfileService(db), nil
	case "postgres":
		db := postgres.NewDB(a.config.DB.DSN)
		if err := db.Open(); err != nil {
			return nil, nil, err
		}
		a.db = db
		return postgres.NewSubscriptionService(db), postgres.NewProfileService(db), nil
	default:
		return nil, nil, errors.Errorf("unknown db.type %q", a.config.DB.Type)
	}
}

// newMailer returns a nil Mailer when the selected provider is not configured;
// sends then fail with codebinge.ErrTransportUnconfigured.
func (a *app) newMailer(ctx context.Context) (codebinge.Mailer, error) {
	switch a.config.Mail.Provider {
	case "ses":
		return ses.NewMailer(ctx, a.config)
	case "smtp":
		if a.config.SMTP.Host == "" {
			a.logger.Warn().Msg("smtp.host is empty, newsletters cannot be delivered")
			return nil, nil
		}
		return smtp.NewMailer(a.config), nil
	default:
		return nil, errors.Errorf("unknown mail.provider %q", a.config.Mail.Provider)
	}
}

func (a *app) Close() error {
	if a.httpServer != nil {
		if err := a.httpServer.Close(); err != nil {
			return err
		}
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			return err
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return err
		}
	}

	return nil
}
