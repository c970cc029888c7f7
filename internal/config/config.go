package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds everything read from the environment at startup.
type Config struct {
	SFUsername      string
	SFPassword      string
	SFSecurityToken string
	SFDomain        string
	SFAPIVersion    string
	OpenAIAPIKey    string
	OpenAIModel     string
	LogLevel        string
	CacheDir        string
	MappingsPath    string
}

func Load() Config {
	return Config{
		SFUsername:      envStr("SF_USERNAME", ""),
		SFPassword:      envStr("SF_PASSWORD", ""),
		SFSecurityToken: envStr("SF_SECURITY_TOKEN", ""),
		SFDomain:        envStr("SF_DOMAIN", "login"),
		SFAPIVersion:    envStr("SF_API_VERSION", "59.0"),
		OpenAIAPIKey:    envStr("OPENAI_API_KEY", ""),
		OpenAIModel:     envStr("OPENAI_MODEL", "gpt-3.5-turbo"),
		LogLevel:        envStr("LOG_LEVEL", "info"),
		CacheDir:        envStr("CLARITY_CACHE_DIR", "cache"),
		MappingsPath:    envStr("CLARITY_MAPPINGS_PATH", "data/field_mappings.json"),
	}
}

// Validate checks that every credential a run needs is present, and reports
// all missing variables at once. The OpenAI key is only required when the run
// will actually call the generation service.
func (c Config) Validate(requireOpenAI bool) error {
	var missing []string
	if c.SFUsername == "" {
		missing = append(missing, "SF_USERNAME")
	}
	if c.SFPassword == "" {
		missing = append(missing, "SF_PASSWORD")
	}
	if c.SFSecurityToken == "" {
		missing = append(missing, "SF_SECURITY_TOKEN")
	}
	if requireOpenAI && c.OpenAIAPIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
