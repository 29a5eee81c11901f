package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/roadwatch/internal/flagx"
	"github.com/dmitrijs2005/roadwatch/internal/timex"
)

// JsonConfig is the on-disk shape of the optional config file. Every field
// is optional; zero values leave the current setting untouched.
type JsonConfig struct {
	HTTPAddr                     string         `json:"http_addr"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	Profile                      string         `json:"profile"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	LogLevel                     string         `json:"log_level"`
	LogFormat                    string         `json:"log_format"`
	CORSAllowedOrigins           []string       `json:"cors_allowed_origins"`
	AdminUsernames               []string       `json:"admin_usernames"`
	BcryptCost                   int            `json:"bcrypt_cost"`
}

// parseJSON overlays values from the file named by -c/-config, if any.
func parseJSON(config *Config, args []string) error {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.Profile, c.Profile)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)
	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration.Duration > 0 {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if len(c.CORSAllowedOrigins) > 0 {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
	if len(c.AdminUsernames) > 0 {
		config.AdminUsernames = c.AdminUsernames
	}
	if c.BcryptCost > 0 {
		config.BcryptCost = c.BcryptCost
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
