package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/Lauramora262/agente-onboarding-b-one/internal/config"
)

// authorizeTimeout bounds the wait for the interactive browser flow, so a
// headless deployment without a pre-existing token fails instead of hanging.
const authorizeTimeout = 3 * time.Minute

// InstalledAppStrategy implements the installed-app OAuth flow: reuse the
// persisted token if present, refresh it when expired, and otherwise run an
// interactive authorization against a loopback redirect, persisting the result.
type InstalledAppStrategy struct {
	conf      *oauth2.Config
	tokenFile string
}

func NewInstalledApp(client config.OAuthClientConfig, tokenFile string) *InstalledAppStrategy {
	return &InstalledAppStrategy{
		conf: &oauth2.Config{
			ClientID:     client.ClientID,
			ClientSecret: client.ClientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:  client.AuthURI,
				TokenURL: client.TokenURI,
			},
			Scopes: []string{ScopeDriveReadonly},
		},
		tokenFile: tokenFile,
	}
}

func (s *InstalledAppStrategy) Name() string { return "installed" }

func (s *InstalledAppStrategy) Client(ctx context.Context) (*http.Client, error) {
	if tok, err := loadToken(s.tokenFile); err == nil && (tok.Valid() || tok.RefreshToken != "") {
		return s.clientFromToken(ctx, tok)
	}

	tok, err := s.authorize(ctx)
	if err != nil {
		return nil, fmt.Errorf("installed-app authorization failed: %w", err)
	}
	if err := saveToken(s.tokenFile, tok); err != nil {
		return nil, err
	}
	return oauth2.NewClient(ctx, s.conf.TokenSource(ctx, tok)), nil
}

func (s *InstalledAppStrategy) clientFromToken(ctx context.Context, tok *oauth2.Token) (*http.Client, error) {
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

// authorize runs the loopback-redirect flow: it serves a one-shot callback on
// an ephemeral localhost port, prints the authorization URL for the operator,
// and exchanges the returned code.
func (s *InstalledAppStrategy) authorize(ctx context.Context) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("open loopback listener failed: %w", err)
	}
	defer listener.Close()

	conf := *s.conf
	conf.RedirectURL = fmt.Sprintf("http://%s/", listener.Addr().String())

	state, err := randomState()
	if err != nil {
		return nil, err
	}

	type callback struct {
		code string
		err  error
	}
	results := make(chan callback, 1)
	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("state") != state {
				http.Error(w, "state mismatch", http.StatusBadRequest)
				results <- callback{err: fmt.Errorf("authorization state mismatch")}
				return
			}
			code := r.URL.Query().Get("code")
			if code == "" {
				http.Error(w, "missing code", http.StatusBadRequest)
				results <- callback{err: fmt.Errorf("authorization response missing code")}
				return
			}
			fmt.Fprintln(w, "Autorización completada. Ya puedes cerrar esta pestaña.")
			results <- callback{code: code}
		}),
	}
	go func() { _ = server.Serve(listener) }()
	defer server.Close()

	log.Printf("authorize this app by visiting:\n%s", conf.AuthCodeURL(state, oauth2.AccessTypeOffline))

	select {
	case res := <-results:
		if res.err != nil {
			return nil, res.err
		}
		tok, err := conf.Exchange(ctx, res.code)
		if err != nil {
			return nil, fmt.Errorf("exchange authorization code failed: %w", err)
		}
		return tok, nil
	case <-time.After(authorizeTimeout):
		return nil, fmt.Errorf("timed out waiting for interactive authorization (no valid token at %s)", s.tokenFile)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate oauth state failed: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
