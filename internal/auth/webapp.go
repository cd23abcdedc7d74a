package auth

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/Lauramora262/agente-onboarding-b-one/internal/config"
)

// WebAppStrategy shares the installed-app token lifecycle but uses the
// configured redirect URL instead of a loopback listener. It cannot open a
// browser itself, so a token persisted by an earlier authorization (for
// example the installed flow run locally once) is required.
type WebAppStrategy struct {
	conf      *oauth2.Config
	tokenFile string
}

func NewWebApp(client config.OAuthClientConfig, tokenFile string) *WebAppStrategy {
	return &WebAppStrategy{
		conf: &oauth2.Config{
			ClientID:     client.ClientID,
			ClientSecret: client.ClientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:  client.AuthURI,
				TokenURL: client.TokenURI,
			},
			RedirectURL: client.RedirectURL,
			Scopes:      []string{ScopeDriveReadonly},
		},
		tokenFile: tokenFile,
	}
}

func (s *WebAppStrategy) Name() string { return "web" }

func (s *WebAppStrategy) Client(ctx context.Context) (*http.Client, error) {
	tok, err := loadToken(s.tokenFile)
	if err != nil {
		return nil, fmt.Errorf("web-app flow needs a previously authorized token at %s: %w", s.tokenFile, err)
	}
	if !tok.Valid() && tok.RefreshToken == "" {
		return nil, fmt.Errorf("stored token at %s is expired and has no refresh token; authorize at %s",
			s.tokenFile, s.conf.AuthCodeURL("", oauth2.AccessTypeOffline))
	}

	src := s.conf.TokenSource(ctx, tok)
	fresh, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("refresh stored token failed: %w", err)
	}
	if fresh.AccessToken != tok.AccessToken {
		if err := saveToken(s.tokenFile, fresh); err != nil {
			return nil, err
		}
	}
	return oauth2.NewClient(ctx, src), nil
}
