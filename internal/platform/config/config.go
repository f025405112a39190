package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Rate provider (openexchangerates.org)
	OpenExchangeRatesAPIKey  string
	OpenExchangeRatesBaseURL string

	// Monzo OAuth2 + API
	MonzoClientID     string
	MonzoClientSecret string
	MonzoAccountID    string
	MonzoUserID       string
	MonzoRedirectURL  string
	MonzoAuthURL      string
	MonzoAPIBaseURL   string

	// JWT issued on login
	JWTSecret           string
	JWTIssuer           string
	JWTAudience         string
	JWTExpiryDuration   time.Duration
	JWTRememberDuration time.Duration

	// Outbound HTTP and scheduler
	HTTPClientTimeout time.Duration
	RateFetchInterval time.Duration
	TimeZone          string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("OPENEXCHANGERATES_API_KEY", "")
	viper.SetDefault("OPENEXCHANGERATES_BASE_URL", "https://openexchangerates.org/api")
	viper.SetDefault("MONZO_CLIENT_ID", "")
	viper.SetDefault("MONZO_CLIENT_SECRET", "")
	viper.SetDefault("MONZO_ACCOUNT_ID", "")
	viper.SetDefault("MONZO_USER_ID", "")
	viper.SetDefault("MONZO_REDIRECT_URL", "http://localhost:8080/auth/callback")
	viper.SetDefault("MONZO_AUTH_URL", "https://auth.monzo.com/")
	viper.SetDefault("MONZO_API_BASE_URL", "https://api.monzo.com")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "https://www.finnconnect.com/")
	viper.SetDefault("JWT_AUDIENCE", "FinnConnect")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_REMEMBER_DURATION", "168h")
	viper.SetDefault("HTTP_CLIENT_TIMEOUT", "10s")
	viper.SetDefault("RATE_FETCH_INTERVAL", "24h")
	viper.SetDefault("TIME_ZONE", "CET")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.OpenExchangeRatesAPIKey = viper.GetString("OPENEXCHANGERATES_API_KEY")
	if cfg.OpenExchangeRatesAPIKey == "" {
		log.Println("Warning: OPENEXCHANGERATES_API_KEY not set. Rate ingestion will not function.")
	}
	cfg.OpenExchangeRatesBaseURL = viper.GetString("OPENEXCHANGERATES_BASE_URL")

	cfg.MonzoClientID = viper.GetString("MONZO_CLIENT_ID")
	cfg.MonzoClientSecret = viper.GetString("MONZO_CLIENT_SECRET")
	cfg.MonzoAccountID = viper.GetString("MONZO_ACCOUNT_ID")
	cfg.MonzoUserID = viper.GetString("MONZO_USER_ID")
	cfg.MonzoRedirectURL = viper.GetString("MONZO_REDIRECT_URL")
	cfg.MonzoAuthURL = viper.GetString("MONZO_AUTH_URL")
	cfg.MonzoAPIBaseURL = viper.GetString("MONZO_API_BASE_URL")
	if cfg.MonzoClientID == "" || cfg.MonzoClientSecret == "" {
		log.Println("Warning: MONZO_CLIENT_ID/MONZO_CLIENT_SECRET not set. Monzo OAuth will not function.")
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.JWTAudience = viper.GetString("JWT_AUDIENCE")

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiry = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiry)
	}
	cfg.JWTExpiryDuration = jwtExpiry

	rememberStr := viper.GetString("JWT_REMEMBER_DURATION")
	remember, err := time.ParseDuration(rememberStr)
	if err != nil {
		remember = 7 * 24 * time.Hour
		log.Printf("Warning: Invalid value for JWT_REMEMBER_DURATION ('%s'). Defaulting to %s.\n", rememberStr, remember)
	}
	cfg.JWTRememberDuration = remember

	timeoutStr := viper.GetString("HTTP_CLIENT_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 10 * time.Second
		log.Printf("Warning: Invalid value for HTTP_CLIENT_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
	}
	cfg.HTTPClientTimeout = timeout

	intervalStr := viper.GetString("RATE_FETCH_INTERVAL")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		interval = 24 * time.Hour
		log.Printf("Warning: Invalid value for RATE_FETCH_INTERVAL ('%s'). Defaulting to %s.\n", intervalStr, interval)
	}
	cfg.RateFetchInterval = interval

	cfg.TimeZone = viper.GetString("TIME_ZONE")

	return cfg, nil
}
