package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// Save original env and restore after test
	originalEnv := os.Environ()
	defer func() {
		os.Clearenv()
		for _, env := range originalEnv {
			// Parse and restore each env var
			for i, c := range env {
				if c == '=' {
					os.Setenv(env[:i], env[i+1:])
					break
				}
			}
		}
	}()

	// Clear env to test defaults
	os.Clearenv()

	cfg := Load()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Port", cfg.Port, 8080},
		{"LogLevel", cfg.LogLevel, "info"},
		{"LLMModel", cfg.LLMModel, "gpt-4o-mini"},
		{"ContextCacheTTL", cfg.ContextCacheTTL, 30},
		{"OpenAIKey", cfg.OpenAIKey, ""},
		{"RedisAddr", cfg.RedisAddr, ""},
		{"NatsURL", cfg.NatsURL, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("expected %s=%v, got %v", tt.name, tt.expected, tt.got)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	// Save and restore env
	originalPort := os.Getenv("PORT")
	originalLogLevel := os.Getenv("LOG_LEVEL")
	defer func() {
		os.Setenv("PORT", originalPort)
		os.Setenv("LOG_LEVEL", originalLogLevel)
	}()

	// Set test values
	os.Setenv("PORT", "9090")
	os.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.LogLevel)
	}
}

func TestLoadLLMOverrides(t *testing.T) {
	// Save and restore env
	originalKey := os.Getenv("OPENAI_API_KEY")
	originalModel := os.Getenv("LLM_MODEL")
	defer func() {
		os.Setenv("OPENAI_API_KEY", originalKey)
		os.Setenv("LLM_MODEL", originalModel)
	}()

	// Set test values
	os.Setenv("OPENAI_API_KEY", "sk-test")
	os.Setenv("LLM_MODEL", "gpt-4o")

	cfg := Load()

	if cfg.OpenAIKey != "sk-test" {
		t.Errorf("expected OpenAI key 'sk-test', got %s", cfg.OpenAIKey)
	}
	if cfg.LLMModel != "gpt-4o" {
		t.Errorf("expected LLM model 'gpt-4o', got %s", cfg.LLMModel)
	}
}
