package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Lauramora262/agente-onboarding-b-one/internal/cache"
	"github.com/Lauramora262/agente-onboarding-b-one/internal/model"
)

// mockExporter implements DocumentExporter and counts export calls per id.
type mockExporter struct {
	texts map[model.DocumentID]string
	fail  map[model.DocumentID]bool
	calls int
}

func (m *mockExporter) ExportPlainText(_ context.Context, id model.DocumentID) ([]byte, error) {
	m.calls++
	if m.fail[id] {
		return nil, fmt.Errorf("export document %s failed: status 403: not shared", id)
	}
	return []byte(m.texts[id]), nil
}

func ids(raw ...string) []model.DocumentID {
	out := make([]model.DocumentID, len(raw))
	for i, r := range raw {
		out[i] = model.DocumentID(r)
	}
	return out
}

func TestContextService_FetchesEachDocumentOncePerProcess(t *testing.T) {
	exporter := &mockExporter{texts: map[model.DocumentID]string{"A": "alpha", "B": "beta"}}
	svc := NewContextService(exporter, cache.NewContextCache(nil, 0), ids("A", "B"))

	first, err := svc.Context(context.Background())
	if err != nil {
		t.Fatalf("first build failed: %v", err)
	}
	second, err := svc.Context(context.Background())
	if err != nil {
		t.Fatalf("second build failed: %v", err)
	}

	if exporter.calls != 2 {
		t.Fatalf("expected 2 export calls (one per document), got %d", exporter.calls)
	}
	if first.Text != second.Text {
		t.Fatal("cached context differs from built context")
	}
}

func TestContextService_BlocksAreDelimitedAndOrdered(t *testing.T) {
	exporter := &mockExporter{texts: map[model.DocumentID]string{"A": "alpha", "B": "beta"}}
	svc := NewContextService(exporter, cache.NewContextCache(nil, 0), ids("A", "B"))

	dc, err := svc.Context(context.Background())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	for _, marker := range []string{
		"--- INICIO DEL DOCUMENTO: A ---",
		"--- FIN DEL DOCUMENTO: A ---",
		"--- INICIO DEL DOCUMENTO: B ---",
		"--- FIN DEL DOCUMENTO: B ---",
	} {
		if !strings.Contains(dc.Text, marker) {
			t.Fatalf("context missing marker %q:\n%s", marker, dc.Text)
		}
	}
	if strings.Index(dc.Text, "alpha") > strings.Index(dc.Text, "beta") {
		t.Fatal("document blocks are not in configured order")
	}
}

func TestContextService_PermutedIDsProduceDifferentContext(t *testing.T) {
	texts := map[model.DocumentID]string{"A": "alpha", "B": "beta"}

	forward := NewContextService(&mockExporter{texts: texts}, cache.NewContextCache(nil, 0), ids("A", "B"))
	backward := NewContextService(&mockExporter{texts: texts}, cache.NewContextCache(nil, 0), ids("B", "A"))

	fw, err := forward.Context(context.Background())
	if err != nil {
		t.Fatalf("forward build failed: %v", err)
	}
	bw, err := backward.Context(context.Background())
	if err != nil {
		t.Fatalf("backward build failed: %v", err)
	}
	if fw.Text == bw.Text {
		t.Fatal("permuted id sequences produced identical context text")
	}
}

func TestContextService_AllOrNothing(t *testing.T) {
	exporter := &mockExporter{
		texts: map[model.DocumentID]string{"A": "alpha", "C": "gamma"},
		fail:  map[model.DocumentID]bool{"B": true},
	}
	svc := NewContextService(exporter, cache.NewContextCache(nil, 0), ids("A", "B", "C"))

	dc, err := svc.Context(context.Background())
	if err == nil {
		t.Fatal("expected build error when one document fails")
	}
	if dc != nil {
		t.Fatalf("expected no partial context, got %+v", dc)
	}
	if !errors.Is(err, ErrDocumentFetch) {
		t.Fatalf("expected ErrDocumentFetch, got %v", err)
	}
}

func TestContextService_FailureIsLatchedUntilRestart(t *testing.T) {
	exporter := &mockExporter{fail: map[model.DocumentID]bool{"A": true}}
	svc := NewContextService(exporter, cache.NewContextCache(nil, 0), ids("A"))

	if _, err := svc.Context(context.Background()); err == nil {
		t.Fatal("expected first build to fail")
	}
	callsAfterFirst := exporter.calls

	if _, err := svc.Context(context.Background()); err == nil {
		t.Fatal("expected latched failure on second call")
	}
	if exporter.calls != callsAfterFirst {
		t.Fatalf("latched failure must not retry exports: %d calls after first, %d now", callsAfterFirst, exporter.calls)
	}
	if svc.Failed() == nil {
		t.Fatal("Failed() should report the latched error")
	}
}

func TestContextService_RejectsInvalidUTF8(t *testing.T) {
	exporter := &badBytesExporter{}
	svc := NewContextService(exporter, cache.NewContextCache(nil, 0), ids("A"))

	if _, err := svc.Context(context.Background()); err == nil {
		t.Fatal("expected error for invalid UTF-8 export")
	}
}

type badBytesExporter struct{}

func (badBytesExporter) ExportPlainText(context.Context, model.DocumentID) ([]byte, error) {
	return []byte{0xff, 0xfe, 0xfd}, nil
}
