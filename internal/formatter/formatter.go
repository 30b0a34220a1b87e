package formatter

import (
	"github.com/jacoelho/jpstream/internal/results"
)

// Match is one emitted value and the pattern that selected it.
type Match struct {
	Path  string `json:"path" yaml:"path"`
	Value any    `json:"value" yaml:"value"`
}

// Formatter defines the interface for different output formats.
// Implementations are responsible for determining the output device (stdout, file, etc.).
type Formatter interface {
	// Format writes a single match.
	Format(m Match) error
	// Summary writes the run summary.
	Summary(s *results.Summary) error
}
