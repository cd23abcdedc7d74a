package auth

import (
	"errors"
	"testing"

	"github.com/Lauramora262/agente-onboarding-b-one/internal/config"
)

func TestFromConfig_SelectsInstalledApp(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth.TokenFile = "token.json"
	cfg.Auth.Installed.ClientID = "id"
	cfg.Auth.Installed.ClientSecret = "secret"

	strategy, err := FromConfig(cfg)
	if err != nil {
		t.Fatalf("selection failed: %v", err)
	}
	if strategy.Name() != "installed" {
		t.Fatalf("expected installed strategy, got %s", strategy.Name())
	}
}

func TestFromConfig_SelectsWebApp(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth.Web.ClientID = "id"
	cfg.Auth.Web.RedirectURL = "https://example.com/callback"

	strategy, err := FromConfig(cfg)
	if err != nil {
		t.Fatalf("selection failed: %v", err)
	}
	if strategy.Name() != "web" {
		t.Fatalf("expected web strategy, got %s", strategy.Name())
	}
}

func TestFromConfig_ServiceAccountWinsOverOAuthShapes(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth.ServiceAccount.KeyFile = "key.json"

	strategy, err := FromConfig(cfg)
	if err != nil {
		t.Fatalf("selection failed: %v", err)
	}
	if strategy.Name() != "service_account" {
		t.Fatalf("expected service_account strategy, got %s", strategy.Name())
	}
}

func TestFromConfig_NoShapeConfigured(t *testing.T) {
	if _, err := FromConfig(&config.Config{}); !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("expected ErrNoCredentials, got %v", err)
	}
}
