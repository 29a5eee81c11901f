package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseEnv overlays values from environment variables:
//
//	PORT               listening port ("8000") or address (":8000")
//	DATABASE_URL       PostgreSQL DSN
//	SECRET_KEY         JWT signing secret (JWT_SECRET_KEY takes precedence)
//	APP_SETTINGS       profile: development, production, testing
//	ACCESS_TOKEN_TTL   Go duration, e.g. "15m"
//	REFRESH_TOKEN_TTL  Go duration, e.g. "720h"
//	LOG_LEVEL, LOG_FORMAT
//	CORS_ORIGINS, ADMIN_USERNAMES  comma separated lists
//	BCRYPT_COST
func parseEnv(config *Config, lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("PORT"); ok {
		if !strings.Contains(v, ":") {
			v = ":" + v
		}
		config.HTTPAddr = v
	}
	if v, ok := get("DATABASE_URL"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := get("SECRET_KEY"); ok {
		config.SecretKey = v
	}
	if v, ok := get("JWT_SECRET_KEY"); ok {
		config.SecretKey = v
	}
	if v, ok := get("APP_SETTINGS"); ok {
		config.Profile = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		config.LogLevel = v
	}
	if v, ok := get("LOG_FORMAT"); ok {
		config.LogFormat = v
	}
	if v, ok := get("CORS_ORIGINS"); ok {
		config.CORSAllowedOrigins = splitList(v)
	}
	if v, ok := get("ADMIN_USERNAMES"); ok {
		config.AdminUsernames = splitList(v)
	}

	if v, ok := get("ACCESS_TOKEN_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ACCESS_TOKEN_TTL: %w", err)
		}
		config.AccessTokenValidityDuration = d
	}
	if v, ok := get("REFRESH_TOKEN_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("REFRESH_TOKEN_TTL: %w", err)
		}
		config.RefreshTokenValidityDuration = d
	}
	if v, ok := get("BCRYPT_COST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BCRYPT_COST: %w", err)
		}
		config.BcryptCost = n
	}
	return nil
}
