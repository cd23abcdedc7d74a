package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.LLM.APIKey = "test-key"
	cfg.Drive.DocumentIDs = []string{"doc-a", "doc-b"}
	cfg.Auth.Installed.ClientID = "client-id"
	cfg.Auth.Installed.ClientSecret = "client-secret"
	return cfg
}

func TestValidate_AcceptsCompleteConfig(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidate_MissingAPIKeyNamesTheKey(t *testing.T) {
	cfg := validConfig()
	cfg.LLM.APIKey = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing api key")
	}
	if !strings.Contains(err.Error(), "llm.api_key") {
		t.Fatalf("error does not name the missing key: %v", err)
	}
}

func TestValidate_MissingDocumentIDsNamesTheKey(t *testing.T) {
	cfg := validConfig()
	cfg.Drive.DocumentIDs = nil
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing document ids")
	}
	if !strings.Contains(err.Error(), "drive.document_ids") {
		t.Fatalf("error does not name the missing key: %v", err)
	}
}

func TestValidate_MissingCredentialShape(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.Installed.ClientID = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error when no credential shape is set")
	}
	if !strings.Contains(err.Error(), "auth.installed.client_id") {
		t.Fatalf("error does not name the credential keys: %v", err)
	}
}

func TestValidate_RejectsAmbiguousCredentialShapes(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.ServiceAccount.KeyFile = "key.json"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when two credential shapes are set")
	}
}

func TestLoad_EnvOverridesAndDocumentIDList(t *testing.T) {
	t.Setenv("CONFIG_FILE", "testdata/does-not-exist.toml")
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("DOCUMENT_IDS", " doc-a , doc-b ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.LLM.APIKey != "env-key" {
		t.Fatalf("expected api key from env, got %q", cfg.LLM.APIKey)
	}
	ids := cfg.DocumentIDs()
	if len(ids) != 2 || string(ids[0]) != "doc-a" || string(ids[1]) != "doc-b" {
		t.Fatalf("unexpected document ids: %v", ids)
	}
}

func TestDefaults_FallbackPhraseMatchesPersonaInstruction(t *testing.T) {
	cfg := defaultConfig()
	if !strings.Contains(cfg.Assistant.Persona, cfg.Assistant.FallbackPhrase) {
		t.Fatal("persona must instruct the model to emit the configured fallback phrase")
	}
}
