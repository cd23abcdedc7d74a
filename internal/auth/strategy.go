// Package auth obtains an authenticated HTTP client for the document store.
//
// Three interchangeable strategies are supported: an installed-app OAuth flow
// with on-disk token persistence, a web-app OAuth flow reusing a previously
// persisted token, and a service-account key. The strategy is selected by
// which credential shape is present in the configuration.
package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/Lauramora262/agente-onboarding-b-one/internal/config"
)

// ScopeDriveReadonly is the only scope ever requested from the document store.
const ScopeDriveReadonly = "https://www.googleapis.com/auth/drive.readonly"

var ErrNoCredentials = errors.New("no usable credential configuration found")

// CredentialStrategy yields an authenticated HTTP client for the Drive API.
type CredentialStrategy interface {
	Name() string
	Client(ctx context.Context) (*http.Client, error)
}

// FromConfig selects the strategy matching the populated credential shape.
func FromConfig(cfg *config.Config) (CredentialStrategy, error) {
	switch {
	case cfg.Auth.ServiceAccount.KeyFile != "":
		return NewServiceAccount(cfg.Auth.ServiceAccount.KeyFile), nil
	case cfg.Auth.Installed.ClientID != "":
		return NewInstalledApp(cfg.Auth.Installed, cfg.Auth.TokenFile), nil
	case cfg.Auth.Web.ClientID != "":
		return NewWebApp(cfg.Auth.Web, cfg.Auth.TokenFile), nil
	default:
		return nil, ErrNoCredentials
	}
}
