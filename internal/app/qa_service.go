package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Lauramora262/agente-onboarding-b-one/internal/ai"
	"github.com/Lauramora262/agente-onboarding-b-one/internal/model"
)

// Completer sends one assembled prompt to the generative-text endpoint.
type Completer interface {
	Complete(ctx context.Context, cfg ai.GenerateConfig, prompt string) (string, error)
}

// UnansweredLog records questions that triggered the fallback phrase.
type UnansweredLog interface {
	Append(entry model.UnansweredEntry) error
}

// QAService runs one question through fetch-if-needed, prompt assembly and
// completion. Submissions are serialized: one is fully processed before the
// next is accepted. The only cross-question state is the cached context.
type QAService struct {
	contextSvc *ContextService
	llm        Completer
	llmConfig  ai.GenerateConfig
	persona    string
	fallback   string
	unanswered UnansweredLog

	askMu sync.Mutex

	stateMu    sync.Mutex
	phase      model.Phase
	sessionErr error
}

func NewQAService(
	contextSvc *ContextService,
	llm Completer,
	llmConfig ai.GenerateConfig,
	persona string,
	fallback string,
	unanswered UnansweredLog,
) *QAService {
	return &QAService{
		contextSvc: contextSvc,
		llm:        llm,
		llmConfig:  llmConfig,
		persona:    persona,
		fallback:   fallback,
		unanswered: unanswered,
		phase:      model.PhaseIdle,
	}
}

// FailSession marks the whole session unusable. Used when credential
// acquisition failed at startup: every later ask returns the error without
// touching the document store or the completion endpoint.
func (s *QAService) FailSession(err error) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.sessionErr = fmt.Errorf("%w: %v", ErrAuth, err)
}

type AskInput struct {
	Question string
}

type AskResult struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Unanswered bool   `json:"unanswered"`
}

func (s *QAService) Ask(ctx context.Context, input AskInput) (*AskResult, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return nil, ErrQuestionEmpty
	}

	s.askMu.Lock()
	defer s.askMu.Unlock()

	if err := s.SessionError(); err != nil {
		s.setPhase(model.PhaseError)
		return nil, err
	}

	if !s.contextSvc.Ready() {
		s.setPhase(model.PhaseFetching)
	}
	dc, err := s.contextSvc.Context(ctx)
	if err != nil {
		s.setPhase(model.PhaseError)
		return nil, err
	}

	s.setPhase(model.PhaseComposing)
	prompt := BuildPrompt(s.persona, dc.Text, question)

	s.setPhase(model.PhaseCompleting)
	raw, err := s.llm.Complete(ctx, s.llmConfig, prompt)
	if err != nil {
		s.setPhase(model.PhaseError)
		return nil, fmt.Errorf("%w: %v", ErrCompletion, err)
	}

	answer := strings.TrimSpace(raw)
	unansweredHit := answer == "" || strings.Contains(answer, s.fallback)
	if unansweredHit {
		entry := model.UnansweredEntry{AskedAt: time.Now(), Question: question}
		if err := s.unanswered.Append(entry); err != nil {
			// Observational side effect only; the answer still renders.
			log.Printf("append unanswered log failed: %v", err)
		}
	}

	s.setPhase(model.PhaseRendered)
	return &AskResult{
		Question:   question,
		Answer:     answer,
		Unanswered: unansweredHit,
	}, nil
}

// Status describes the interaction state for the UI.
type Status struct {
	Phase        model.Phase `json:"phase"`
	SessionError string      `json:"session_error,omitempty"`
	ContextReady bool        `json:"context_ready"`
	ContextError string      `json:"context_error,omitempty"`
}

func (s *QAService) Status() Status {
	st := Status{
		Phase:        s.Phase(),
		ContextReady: s.contextSvc.Ready(),
	}
	if err := s.SessionError(); err != nil {
		st.SessionError = err.Error()
	}
	if err := s.contextSvc.Failed(); err != nil {
		st.ContextError = err.Error()
	}
	return st
}

func (s *QAService) Phase() model.Phase {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.phase
}

// SessionError returns the latched credential failure, if any.
func (s *QAService) SessionError() error {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.sessionErr
}

func (s *QAService) setPhase(p model.Phase) {
	s.stateMu.Lock()
	s.phase = p
	s.stateMu.Unlock()
}
