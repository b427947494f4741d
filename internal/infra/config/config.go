package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is built once at startup and shared read-only by reference.
type Config struct {
	DatabaseURL string `validate:"required"`

	AccessTokenKey  string        `validate:"required"`
	AccessTokenTTL  time.Duration `validate:"gt=0"`
	RefreshTokenKey string        `validate:"required,nefield=AccessTokenKey"`
	RefreshTokenTTL time.Duration `validate:"gt=0"`
	TokenAlgorithm  string        `validate:"oneof=HS256 HS384 HS512"`
	PasswordPepper  string

	HTTPAddress string `validate:"required"`
	GRPCAddress string `validate:"required"`
	LogLevel    string

	AllowedOrigins   []string
	AllowCredentials bool
	RateLimitRPS     int `validate:"gt=0"`
	RateLimitBurst   int `validate:"gt=0"`

	// UTCOffset is the canonical timezone offset for every stored timestamp.
	UTCOffset time.Duration
}

// Load reads an optional .env file from the working directory and then the
// process environment.
func Load() (*Config, error) {
	return LoadFrom(".env")
}

func LoadFrom(envFile string) (*Config, error) {
	if envFile != "" {
		// Already exported variables win over the file.
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("TOKEN_ALGORITHM", "HS256")
	v.SetDefault("HTTP_ADDRESS", ":8080")
	v.SetDefault("GRPC_ADDRESS", ":50051")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("ALLOW_CREDENTIALS", false)
	v.SetDefault("RATE_LIMIT_RPS", 50)
	v.SetDefault("RATE_LIMIT_BURST", 100)
	v.SetDefault("CANONICAL_UTC_OFFSET_HOURS", -3)

	cfg := &Config{
		DatabaseURL:      v.GetString("DATABASE_URL"),
		AccessTokenKey:   v.GetString("ACCESS_TOKEN_KEY"),
		AccessTokenTTL:   time.Duration(v.GetInt("ACCESS_TOKEN_EXPIRE_MINUTES")) * time.Minute,
		RefreshTokenKey:  v.GetString("REFRESH_TOKEN_KEY"),
		RefreshTokenTTL:  time.Duration(v.GetInt("REFRESH_TOKEN_EXPIRE_MINUTES")) * time.Minute,
		TokenAlgorithm:   strings.ToUpper(v.GetString("TOKEN_ALGORITHM")),
		PasswordPepper:   v.GetString("PASSWORD_PEPPER"),
		HTTPAddress:      v.GetString("HTTP_ADDRESS"),
		GRPCAddress:      v.GetString("GRPC_ADDRESS"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		AllowedOrigins:   splitList(v.GetString("ALLOWED_ORIGINS")),
		AllowCredentials: v.GetBool("ALLOW_CREDENTIALS"),
		RateLimitRPS:     v.GetInt("RATE_LIMIT_RPS"),
		RateLimitBurst:   v.GetInt("RATE_LIMIT_BURST"),
		UTCOffset:        time.Duration(v.GetInt("CANONICAL_UTC_OFFSET_HOURS")) * time.Hour,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.UTCOffset < -12*time.Hour || c.UTCOffset > 14*time.Hour {
		return fmt.Errorf("invalid config: CANONICAL_UTC_OFFSET_HOURS out of range: %s", c.UTCOffset)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
