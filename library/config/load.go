// Package config loads runtime configuration and resolves credentials.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"

	"github.com/Laisky/exa-search-mcp/library/log"
)

// EnvExaAPIKey is the environment variable holding the Exa API credential.
const EnvExaAPIKey = "EXA_API_KEY"

// LoadFromFile loads the optional YAML settings file into the shared config.
// The server runs fine without a settings file; every knob has a default.
func LoadFromFile(cfgPath string) {
	if strings.TrimSpace(cfgPath) == "" {
		return
	}
	if _, err := os.Stat(cfgPath); err != nil {
		log.Logger.Info("settings file not found, using defaults",
			zap.String("config", cfgPath))
		return
	}

	gconfig.Shared.Set("cfg_dir", filepath.Dir(cfgPath))
	if err := gconfig.Shared.LoadFromFile(cfgPath); err != nil {
		log.Logger.Panic("load configuration",
			zap.Error(err),
			zap.String("config", cfgPath))
	}

	log.Logger.Info("load configuration",
		zap.String("config", cfgPath))
}

// ExaAPIKey resolves the Exa credential, preferring the process environment
// over the settings file. The key is read once at startup and treated as
// immutable for the process lifetime.
func ExaAPIKey() (string, error) {
	if key := strings.TrimSpace(os.Getenv(EnvExaAPIKey)); key != "" {
		return key, nil
	}
	if key := strings.TrimSpace(gconfig.Shared.GetString("settings.exa.api_key")); key != "" {
		return key, nil
	}

	return "", errors.Errorf("%s environment variable is required, get your key from https://exa.ai/", EnvExaAPIKey)
}
