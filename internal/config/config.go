// Package config builds the process configuration from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	DefaultBaseURL   = "https://api.localizejs.com/v2.0/projects/"
	DefaultMediaType = "application/json"
	DefaultDBPath    = "./data/localize.db"
)

// Config is constructed once at startup and handed to every operation.
type Config struct {
	Authorization string `mapstructure:"authorization" json:"-"`
	ProjectKey    string `mapstructure:"project_key" json:"project_key"`
	ContentType   string `mapstructure:"content_type" json:"content_type"`
	Accept        string `mapstructure:"accept" json:"accept"`
	BaseURL       string `mapstructure:"base_url" json:"base_url"`
	DBPath        string `mapstructure:"db_path" json:"db_path"`
	LogLevel      string `mapstructure:"log_level" json:"log_level"`
}

// MissingEnvError reports a required environment variable that is unset or empty.
type MissingEnvError struct {
	Name string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("%s environment variable must be set", e.Name)
}

var envBindings = map[string]string{
	"authorization": "AUTHORIZATION",
	"project_key":   "PROJECT_KEY",
	"content_type":  "CONTENT_TYPE",
	"accept":        "ACCEPT",
	"base_url":      "LOCALIZE_BASE_URL",
	"db_path":       "LOCALIZE_DB",
	"log_level":     "LOCALIZE_LOG_LEVEL",
}

// Load reads the configuration from the environment. AUTHORIZATION and
// PROJECT_KEY are required; everything else has a default.
func Load() (Config, error) {
	v := viper.New()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	v.SetDefault("content_type", DefaultMediaType)
	v.SetDefault("accept", DefaultMediaType)
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("db_path", DefaultDBPath)
	v.SetDefault("log_level", "info")

	cfg := Config{
		Authorization: v.GetString("authorization"),
		ProjectKey:    strings.TrimSpace(v.GetString("project_key")),
		ContentType:   v.GetString("content_type"),
		Accept:        v.GetString("accept"),
		BaseURL:       v.GetString("base_url"),
		DBPath:        v.GetString("db_path"),
		LogLevel:      strings.ToLower(v.GetString("log_level")),
	}

	if cfg.Authorization == "" {
		return Config{}, &MissingEnvError{Name: "AUTHORIZATION"}
	}
	if cfg.ProjectKey == "" {
		return Config{}, &MissingEnvError{Name: "PROJECT_KEY"}
	}

	return cfg, nil
}
