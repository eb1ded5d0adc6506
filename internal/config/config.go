package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port     string `mapstructure:"PORT"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	TableName        string `mapstructure:"TABLE_NAME"`
	Region           string `mapstructure:"AWS_REGION"`
	DynamoDBEndpoint string `mapstructure:"DYNAMODB_ENDPOINT"`

	IdentityProvider  string `mapstructure:"IDENTITY_PROVIDER"`
	FirebaseProjectID string `mapstructure:"FIREBASE_PROJECT_ID"`
	CognitoUserPoolID string `mapstructure:"COGNITO_USER_POOL_ID"`
	CognitoClientID   string `mapstructure:"COGNITO_CLIENT_ID"`

	RedisAddr         string        `mapstructure:"REDIS_ADDR"`
	RedisPassword     string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB           int           `mapstructure:"REDIS_DB"`
	SessionCookieName string        `mapstructure:"SESSION_COOKIE_NAME"`
	SessionTTL        time.Duration `mapstructure:"SESSION_TTL"`
	CookieSecure      bool          `mapstructure:"COOKIE_SECURE"`

	S3Bucket        string `mapstructure:"S3_BUCKET"`
	S3Endpoint      string `mapstructure:"S3_ENDPOINT"`
	S3PublicBaseURL string `mapstructure:"S3_PUBLIC_BASE_URL"`

	GenAIBaseURL    string        `mapstructure:"GENAI_BASE_URL"`
	GenAIAPIKey     string        `mapstructure:"GENAI_API_KEY"`
	GenAIModel      string        `mapstructure:"GENAI_MODEL"`
	GenAITimeout    time.Duration `mapstructure:"GENAI_TIMEOUT"`
	GenAIMaxRetries int           `mapstructure:"GENAI_MAX_RETRIES"`

	GenerateRatePerMinute int  `mapstructure:"GENERATE_RATE_PER_MINUTE"`
	SeedCategories        bool `mapstructure:"SEED_CATEGORIES"`
}

var defaults = map[string]any{
	"PORT":                     "8080",
	"LOG_LEVEL":                "info",
	"TABLE_NAME":               "",
	"AWS_REGION":               "",
	"DYNAMODB_ENDPOINT":        "",
	"IDENTITY_PROVIDER":        "firebase",
	"FIREBASE_PROJECT_ID":      "",
	"COGNITO_USER_POOL_ID":     "",
	"COGNITO_CLIENT_ID":        "",
	"REDIS_ADDR":               "",
	"REDIS_PASSWORD":           "",
	"REDIS_DB":                 0,
	"SESSION_COOKIE_NAME":      "warisin_session",
	"SESSION_TTL":              "168h",
	"COOKIE_SECURE":            true,
	"S3_BUCKET":                "",
	"S3_ENDPOINT":              "",
	"S3_PUBLIC_BASE_URL":       "",
	"GENAI_BASE_URL":           "https://generativelanguage.googleapis.com",
	"GENAI_API_KEY":            "",
	"GENAI_MODEL":              "gemini-1.5-flash",
	"GENAI_TIMEOUT":            "20s",
	"GENAI_MAX_RETRIES":        2,
	"GENERATE_RATE_PER_MINUTE": 10,
	"SEED_CATEGORIES":          true,
}

// Load reads an optional .env file, then the process environment.
func Load() (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	}
	return FromViper(viper.New())
}

// FromViper resolves the configuration from v after registering defaults
// and binding every key to the environment.
func FromViper(v *viper.Viper) (Config, error) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return Config{}, err
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.IdentityProvider = strings.ToLower(strings.TrimSpace(cfg.IdentityProvider))
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var missing []string
	require := func(key, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}
	require("TABLE_NAME", c.TableName)
	require("AWS_REGION", c.Region)
	require("REDIS_ADDR", c.RedisAddr)
	require("S3_BUCKET", c.S3Bucket)
	switch c.IdentityProvider {
	case "firebase":
		require("FIREBASE_PROJECT_ID", c.FirebaseProjectID)
	case "cognito":
		require("COGNITO_USER_POOL_ID", c.CognitoUserPoolID)
		require("COGNITO_CLIENT_ID", c.CognitoClientID)
	default:
		return fmt.Errorf("unknown IDENTITY_PROVIDER %q", c.IdentityProvider)
	}
	if len(missing) > 0 {
		return errors.New("missing required settings: " + strings.Join(missing, ", "))
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.GenAIMaxRetries < 0 {
		return errors.New("GENAI_MAX_RETRIES must not be negative")
	}
	if c.GenerateRatePerMinute <= 0 {
		return errors.New("GENERATE_RATE_PER_MINUTE must be positive")
	}
	return nil
}
