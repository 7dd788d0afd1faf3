package postprocessors

import (
	"context"
	"errors"
	"testing"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
	"github.com/custodia-labs/newsbayes/internal/core/ports/driven"
)

// registryMockProcessor is a simple mock for testing registry functionality.
type registryMockProcessor struct {
	name string
}

func (m *registryMockProcessor) Name() string { return m.name }
func (m *registryMockProcessor) Process(_ context.Context, _ *domain.Document) error {
	return nil
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry returned nil")
	}
	if len(r.builders) != 0 {
		t.Errorf("expected empty builders, got %d", len(r.builders))
	}
}

func TestRegistry_Build_Success(t *testing.T) {
	r := NewRegistry()

	builder := func(cfg map[string]any) (driven.PostProcessor, error) {
		name := "default"
		if n, ok := cfg["name"].(string); ok {
			name = n
		}
		return &registryMockProcessor{name: name}, nil
	}

	r.Register("test", builder)

	proc, err := r.Build("test", map[string]any{"name": "custom"})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if proc.Name() != "custom" {
		t.Errorf("expected name 'custom', got %q", proc.Name())
	}
}

func TestRegistry_Build_UnknownProcessor(t *testing.T) {
	r := NewRegistry()

	_, err := r.Build("unknown", nil)
	if !errors.Is(err, domain.ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestRegistry_Has(t *testing.T) {
	r := NewRegistry()

	if r.Has("nonexistent") {
		t.Error("expected Has to return false for nonexistent processor")
	}

	r.Register("exists", func(_ map[string]any) (driven.PostProcessor, error) {
		return &registryMockProcessor{name: "exists"}, nil
	})

	if !r.Has("exists") {
		t.Error("expected Has to return true for registered processor")
	}
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	names := r.Names()
	want := []string{"footers", "headers", "quotes"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected %v, got %v", want, names)
		}
	}
}

func TestRegistry_BuildPipeline(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	p, err := r.BuildPipeline(domain.RemovableParts)
	if err != nil {
		t.Fatalf("BuildPipeline failed: %v", err)
	}

	doc := &domain.Document{Content: "From: a@b\nSubject: s\n\n> quoted\nanswer\n--\nsig"}
	if err := p.Process(context.Background(), doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Content != "answer" {
		t.Errorf("expected answer, got %q", doc.Content)
	}
}

func TestRegistry_BuildPipeline_Unknown(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	if _, err := r.BuildPipeline([]string{"headers", "signatures"}); !errors.Is(err, domain.ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestBuildQuotes_WithConfig(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	proc, err := r.Build("quotes", map[string]any{"pattern": "^#"})
	if err != nil {
		t.Fatalf("Build quotes failed: %v", err)
	}

	doc := &domain.Document{Content: "# comment\n> kept"}
	if err := proc.Process(context.Background(), doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Content != "> kept" {
		t.Errorf("expected custom pattern applied, got %q", doc.Content)
	}
}

func TestBuildQuotes_InvalidPattern(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	if _, err := r.Build("quotes", map[string]any{"pattern": "("}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGetStringFromConfig(t *testing.T) {
	tests := []struct {
		name     string
		cfg      map[string]any
		key      string
		expected string
	}{
		{"string value", map[string]any{"pattern": "x"}, "pattern", "x"},
		{"int value", map[string]any{"pattern": 1}, "pattern", ""},
		{"missing key", map[string]any{"other": "x"}, "pattern", ""},
		{"nil config", nil, "pattern", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getStringFromConfig(tt.cfg, tt.key); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
