package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SF_USERNAME", "SF_PASSWORD", "SF_SECURITY_TOKEN", "SF_DOMAIN", "SF_API_VERSION",
		"OPENAI_API_KEY", "OPENAI_MODEL", "LOG_LEVEL", "CLARITY_CACHE_DIR", "CLARITY_MAPPINGS_PATH",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.SFDomain != "login" {
		t.Errorf("SFDomain = %q, want login", cfg.SFDomain)
	}
	if cfg.SFAPIVersion != "59.0" {
		t.Errorf("SFAPIVersion = %q, want 59.0", cfg.SFAPIVersion)
	}
	if cfg.OpenAIModel != "gpt-3.5-turbo" {
		t.Errorf("OpenAIModel = %q, want gpt-3.5-turbo", cfg.OpenAIModel)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.CacheDir != "cache" {
		t.Errorf("CacheDir = %q, want cache", cfg.CacheDir)
	}
	if cfg.MappingsPath != "data/field_mappings.json" {
		t.Errorf("MappingsPath = %q", cfg.MappingsPath)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SF_USERNAME", "ops@example.com")
	t.Setenv("SF_DOMAIN", "test")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("CLARITY_CACHE_DIR", "/tmp/clarity-cache")

	cfg := Load()
	if cfg.SFUsername != "ops@example.com" {
		t.Errorf("SFUsername = %q", cfg.SFUsername)
	}
	if cfg.SFDomain != "test" {
		t.Errorf("SFDomain = %q, want test", cfg.SFDomain)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("OpenAIModel = %q", cfg.OpenAIModel)
	}
	if cfg.CacheDir != "/tmp/clarity-cache" {
		t.Errorf("CacheDir = %q", cfg.CacheDir)
	}
}

func TestValidateListsAllMissing(t *testing.T) {
	cfg := Config{}
	err := cfg.Validate(true)
	if err == nil {
		t.Fatal("expected error for empty config")
	}
	for _, name := range []string{"SF_USERNAME", "SF_PASSWORD", "SF_SECURITY_TOKEN", "OPENAI_API_KEY"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not name %s", err, name)
		}
	}
}

func TestValidateOpenAIOptionalInPreview(t *testing.T) {
	cfg := Config{SFUsername: "u", SFPassword: "p", SFSecurityToken: "t"}

	if err := cfg.Validate(false); err != nil {
		t.Errorf("Validate(false) = %v, want nil without OpenAI key", err)
	}
	if err := cfg.Validate(true); err == nil {
		t.Error("Validate(true) = nil, want error without OpenAI key")
	}
}
