package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"clubsphere_backend/pkg/utils"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Mongo       MongoConfig
	Auth        AuthConfig
	Stripe      StripeConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
	LogLevel    string
	Environment string
}

type ServerConfig struct {
	Port            string
	SiteDomain      string
	ShutdownTimeout time.Duration
}

type MongoConfig struct {
	URI          string
	DatabaseName string
	Transactions bool
	Timeout      time.Duration
}

type AuthConfig struct {
	// FirebaseServiceKey is the base64 encoded service account JSON.
	FirebaseServiceKey string
	// JWTSecret enables the HS256 verifier, used when no identity provider
	// credentials are available (local development, tests).
	JWTSecret string
}

type StripeConfig struct {
	SecretKey string
	Currency  string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	PerMinute int
}

// LoadDotEnv reads a .env file into the environment if one exists. Variables that
// are already set win over the file.
func LoadDotEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err == nil {
			utils.LogInfo("Loaded environment file", map[string]interface{}{"path": p})
		}
	}
}

func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Port:            utils.Getenv("PORT", "3000"),
			SiteDomain:      strings.TrimRight(utils.Getenv("SITE_DOMAIN", "http://localhost:5173"), "/"),
			ShutdownTimeout: time.Duration(utils.GetenvInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Mongo: MongoConfig{
			URI:          mongoURI(),
			DatabaseName: utils.Getenv("MONGO_DB_NAME", "ClubsSphere"),
			Transactions: utils.GetenvBool("MONGO_TRANSACTIONS", true),
			Timeout:      time.Duration(utils.GetenvInt("DB_TIMEOUT_SECONDS", 5)) * time.Second,
		},
		Auth: AuthConfig{
			FirebaseServiceKey: utils.Getenv("FB_SERVICE_KEY", ""),
			JWTSecret:          utils.Getenv("AUTH_JWT_SECRET", ""),
		},
		Stripe: StripeConfig{
			SecretKey: utils.Getenv("STRIPE_SECRET_KEY", ""),
			Currency:  strings.ToLower(utils.Getenv("STRIPE_CURRENCY", "usd")),
		},
		CORS: CORSConfig{
			AllowedOrigins: utils.GetenvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
		},
		RateLimit: RateLimitConfig{
			PerMinute: utils.GetenvInt("RATE_LIMIT_PER_MINUTE", 0),
		},
		LogLevel:    utils.Getenv("LOG_LEVEL", "info"),
		Environment: utils.Getenv("ENVIRONMENT", "development"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the combinations Load cannot default.
func (c Config) Validate() error {
	var errs []error
	if c.Mongo.URI == "" {
		errs = append(errs, errors.New("MONGO_URI (or MONGO_USER, MONGO_PASS and MONGO_HOST) is required"))
	}
	if c.Mongo.Timeout <= 0 {
		errs = append(errs, errors.New("DB_TIMEOUT_SECONDS must be positive"))
	}
	if c.Auth.FirebaseServiceKey == "" && c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("FB_SERVICE_KEY or AUTH_JWT_SECRET is required"))
	}
	if c.Auth.JWTSecret != "" && len(c.Auth.JWTSecret) < 32 {
		errs = append(errs, errors.New("AUTH_JWT_SECRET must be at least 32 characters"))
	}
	if c.RateLimit.PerMinute < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MINUTE cannot be negative"))
	}
	if c.IsProduction() {
		if c.Stripe.SecretKey == "" {
			errs = append(errs, errors.New("STRIPE_SECRET_KEY is required in production"))
		}
		if _, err := url.ParseRequestURI(c.Server.SiteDomain); err != nil || strings.Contains(c.Server.SiteDomain, "localhost") {
			errs = append(errs, fmt.Errorf("SITE_DOMAIN must be a public URL in production, got %q", c.Server.SiteDomain))
		}
	}
	return errors.Join(errs...)
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// mongoURI prefers MONGO_URI and otherwise builds an Atlas style SRV uri from parts.
func mongoURI() string {
	if uri := utils.Getenv("MONGO_URI", ""); uri != "" {
		return uri
	}
	user := utils.Getenv("MONGO_USER", "")
	pass := utils.Getenv("MONGO_PASS", "")
	host := utils.Getenv("MONGO_HOST", "")
	if user == "" || pass == "" || host == "" {
		return ""
	}
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(user, pass),
		Host:     host,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority&appName=" + url.QueryEscape(utils.Getenv("MONGO_APP_NAME", "ClubSphere")),
	}
	return u.String()
}
