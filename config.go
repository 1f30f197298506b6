package codebinge

import "time"

// Config represents the main config
type Config struct {
	DB struct {
		Type string // "postgres" or "bolt"
		DSN  string
		Path string
	}

	HTTP struct {
		Addr string
	}

	SMTP struct {
		Host     string
		Port     int
		Secure   bool
		Username string
		Password string
	}

	SES struct {
		Region    string
		AccessKey string
		SecretKey string
	}

	Mail struct {
		Provider string // "smtp" or "ses"
		From     string
	}

	Site struct {
		URL string
	}

	Admin struct {
		Emails []string
	}

	Session struct {
		Secret string
		Cookie string
	}

	Judge struct {
		LeetCodeURL   string
		CodeforcesURL string
		Timeout       time.Duration
		Cache         struct {
			Addr string
			TTL  time.Duration
		}
	}

	Sentry struct {
		DSN string
	}
}
