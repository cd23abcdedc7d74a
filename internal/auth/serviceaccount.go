package auth

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2/google"
)

// ServiceAccountStrategy builds credentials straight from a structured key
// file. No interactive step, no token persistence.
type ServiceAccountStrategy struct {
	keyFile string
}

func NewServiceAccount(keyFile string) *ServiceAccountStrategy {
	return &ServiceAccountStrategy{keyFile: keyFile}
}

func (s *ServiceAccountStrategy) Name() string { return "service_account" }

func (s *ServiceAccountStrategy) Client(ctx context.Context) (*http.Client, error) {
	raw, err := os.ReadFile(s.keyFile)
	if err != nil {
		return nil, fmt.Errorf("read service-account key file %s failed: %w", s.keyFile, err)
	}
	conf, err := google.JWTConfigFromJSON(raw, ScopeDriveReadonly)
	if err != nil {
		return nil, fmt.Errorf("parse service-account key failed: %w", err)
	}
	return conf.Client(ctx), nil
}
