package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/Lauramora262/agente-onboarding-b-one/internal/model"
)

var (
	ErrAuth          = errors.New("credential acquisition failed")
	ErrDocumentFetch = errors.New("document context build failed")
	ErrCompletion    = errors.New("completion request failed")
	ErrQuestionEmpty = errors.New("question is empty")
)

// DocumentExporter downloads the plain-text rendition of one document.
type DocumentExporter interface {
	ExportPlainText(ctx context.Context, id model.DocumentID) ([]byte, error)
}

// ContextCache memoizes built contexts by their exact ordered id sequence.
type ContextCache interface {
	Get(ctx context.Context, ids []model.DocumentID) (*model.DocumentContext, bool, error)
	Set(ctx context.Context, ids []model.DocumentID, dc *model.DocumentContext) error
}

// ContextService builds the concatenated document context on first use and
// serves it from cache afterwards. The build is all-or-nothing: if any single
// export fails there is no partial context, and the failure is latched until
// the process restarts.
type ContextService struct {
	exporter DocumentExporter
	cache    ContextCache
	ids      []model.DocumentID

	mu     sync.Mutex
	ready  bool
	failed error
}

func NewContextService(exporter DocumentExporter, cache ContextCache, ids []model.DocumentID) *ContextService {
	return &ContextService{
		exporter: exporter,
		cache:    cache,
		ids:      ids,
	}
}

func (s *ContextService) Context(ctx context.Context) (*model.DocumentContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failed != nil {
		return nil, s.failed
	}

	if dc, ok, err := s.cache.Get(ctx, s.ids); err == nil && ok {
		s.ready = true
		return dc, nil
	}

	dc, err := s.build(ctx)
	if err != nil {
		s.failed = fmt.Errorf("%w (restart required): %v", ErrDocumentFetch, err)
		return nil, s.failed
	}
	// Caching is best-effort; a dead redis tier must not fail the question.
	_ = s.cache.Set(ctx, s.ids, dc)
	s.ready = true
	return dc, nil
}

func (s *ContextService) build(ctx context.Context) (*model.DocumentContext, error) {
	var b strings.Builder
	for _, id := range s.ids {
		raw, err := s.exporter.ExportPlainText(ctx, id)
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(raw) {
			return nil, fmt.Errorf("document %s export is not valid UTF-8", id)
		}
		b.WriteString(fmt.Sprintf("\n--- INICIO DEL DOCUMENTO: %s ---\n", id))
		b.Write(raw)
		b.WriteString(fmt.Sprintf("\n--- FIN DEL DOCUMENTO: %s ---\n", id))
	}
	return &model.DocumentContext{
		IDs:     s.ids,
		Text:    b.String(),
		BuiltAt: time.Now(),
	}, nil
}

// Ready reports whether a context has been served at least once.
func (s *ContextService) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Failed returns the latched build failure, if any.
func (s *ContextService) Failed() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}
