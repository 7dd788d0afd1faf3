package headers

import (
	"context"
	"testing"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
)

func TestName(t *testing.T) {
	if got := New().Name(); got != "headers" {
		t.Errorf("expected name headers, got %q", got)
	}
}

func TestStrip(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"header and body", "From: a@b\nSubject: hi\n\nbody line\n", "body line\n"},
		{"only first blank line splits", "H: 1\n\npara one\n\npara two", "para one\n\npara two"},
		{"no blank line", "From: a@b\nSubject: hi\n", ""},
		{"empty", "", ""},
		{"leading blank line", "\n\nbody", "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Strip(tt.text); got != tt.want {
				t.Errorf("Strip(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestProcess(t *testing.T) {
	doc := &domain.Document{Content: "Subject: x\n\nhello"}
	if err := New().Process(context.Background(), doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Content != "hello" {
		t.Errorf("expected content hello, got %q", doc.Content)
	}
}
