package postprocessors

import (
	"github.com/custodia-labs/newsbayes/internal/core/ports/driven"
	"github.com/custodia-labs/newsbayes/internal/postprocessors/footers"
	"github.com/custodia-labs/newsbayes/internal/postprocessors/headers"
	"github.com/custodia-labs/newsbayes/internal/postprocessors/quotes"
)

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register("headers", buildHeaders)
	r.Register("footers", buildFooters)
	r.Register("quotes", buildQuotes)
}

func buildHeaders(_ map[string]any) (driven.PostProcessor, error) {
	return headers.New(), nil
}

func buildFooters(_ map[string]any) (driven.PostProcessor, error) {
	return footers.New(), nil
}

// buildQuotes creates a quote filter from generic config.
// Supported config keys:
//   - pattern (string): regular expression replacing the default quote marker
func buildQuotes(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []quotes.Option

	if pattern := getStringFromConfig(cfg, "pattern"); pattern != "" {
		opts = append(opts, quotes.WithPattern(pattern))
	}

	return quotes.New(opts...)
}

// getStringFromConfig safely extracts a string from generic config map.
func getStringFromConfig(cfg map[string]any, key string) string {
	if cfg == nil {
		return ""
	}
	s, _ := cfg[key].(string)
	return s
}
