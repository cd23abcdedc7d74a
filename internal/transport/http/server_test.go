package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Lauramora262/agente-onboarding-b-one/internal/ai"
	appsvc "github.com/Lauramora262/agente-onboarding-b-one/internal/app"
	"github.com/Lauramora262/agente-onboarding-b-one/internal/bootstrap"
	"github.com/Lauramora262/agente-onboarding-b-one/internal/cache"
	"github.com/Lauramora262/agente-onboarding-b-one/internal/config"
	"github.com/Lauramora262/agente-onboarding-b-one/internal/model"
)

type noopExporter struct{}

func (noopExporter) ExportPlainText(context.Context, model.DocumentID) ([]byte, error) {
	return []byte("contenido"), nil
}

type noopCompleter struct{}

func (noopCompleter) Complete(context.Context, ai.GenerateConfig, string) (string, error) {
	return "ok", nil
}

type noopLog struct{}

func (noopLog) Append(model.UnansweredEntry) error { return nil }

func newTestApp() *bootstrap.App {
	cfg := &config.Config{}
	cfg.App.Name = "agente-onboarding-b-one"
	cfg.App.Env = "test"
	cfg.App.GinMode = "test"

	contextSvc := appsvc.NewContextService(noopExporter{}, cache.NewContextCache(nil, 0), []model.DocumentID{"doc-a"})
	qa := appsvc.NewQAService(contextSvc, noopCompleter{}, ai.GenerateConfig{Model: "m"}, "persona", "fallback", noopLog{})

	return &bootstrap.App{
		Config:     cfg,
		ContextSvc: contextSvc,
		QA:         qa,
		StartedAt:  time.Now(),
	}
}

func TestRouter_HealthzHealthyWithoutRedis(t *testing.T) {
	router := NewRouter(newTestApp())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		App          string `json:"app"`
		Dependencies struct {
			Credentials struct {
				OK bool `json:"ok"`
			} `json:"credentials"`
			Redis struct {
				OK      bool   `json:"ok"`
				Message string `json:"message"`
			} `json:"redis"`
		} `json:"dependencies"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse health body failed: %v", err)
	}
	if body.App != "agente-onboarding-b-one" {
		t.Fatalf("unexpected app name %q", body.App)
	}
	if !body.Dependencies.Credentials.OK {
		t.Fatal("credentials should be healthy")
	}
	if !body.Dependencies.Redis.OK || body.Dependencies.Redis.Message != "disabled" {
		t.Fatalf("redis tier should report disabled, got %+v", body.Dependencies.Redis)
	}
}

func TestRouter_HealthzUnhealthyAfterSessionFailure(t *testing.T) {
	app := newTestApp()
	app.QA.FailSession(context.DeadlineExceeded)
	router := NewRouter(app)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
