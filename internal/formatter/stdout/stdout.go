package stdout

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/jacoelho/jpstream/internal/formatter"
	"github.com/jacoelho/jpstream/internal/results"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var ErrUnknownFormat = errors.New("unknown output format")

const separator = "--------------------------------------------------------------------------------"

// Formatter writes matches to one writer and the summary to another.
type Formatter struct {
	writer        io.Writer
	summaryWriter io.Writer
	encode        func(m formatter.Match) error
}

// New creates a formatter writing matches to stdout and the summary to stderr.
func New(format string) (formatter.Formatter, error) {
	return NewWithWriters(format, os.Stdout, os.Stderr)
}

// NewWithWriters creates a formatter with custom writers.
// This is useful for testing or redirecting output to files.
func NewWithWriters(format string, writer, summaryWriter io.Writer) (formatter.Formatter, error) {
	f := &Formatter{
		writer:        writer,
		summaryWriter: summaryWriter,
	}

	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(writer)
		enc.SetEscapeHTML(false)
		f.encode = func(m formatter.Match) error { return enc.Encode(m) }
	case FormatYAML:
		f.encode = f.encodeYAML
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	return f, nil
}

// Format writes m as one JSON line or one YAML document.
func (f *Formatter) Format(m formatter.Match) error {
	if err := f.encode(m); err != nil {
		return fmt.Errorf("failed to write match for %s: %w", m.Path, err)
	}
	return nil
}

func (f *Formatter) encodeYAML(m formatter.Match) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(f.writer, "---\n"); err != nil {
		return err
	}
	_, err = f.writer.Write(data)
	return err
}

// Summary prints per-input results followed by totals and per-path counts.
func (f *Formatter) Summary(s *results.Summary) error {
	for _, r := range s.InputResults {
		status := "Success"
		if r.Error != nil {
			status = fmt.Sprintf("Failed: %v", r.Error)
		}
		_, err := fmt.Fprintf(f.summaryWriter, "%s: %s (%d match(es) in %d ms)\n",
			displayName(r.Name), status, r.Matches, r.Duration.Milliseconds())
		if err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(f.summaryWriter, separator); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(f.summaryWriter, "Parsed inputs:    %d\n", s.ParsedInputs); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.summaryWriter, "Emitted matches:  %d (%.2f/s)\n", s.TotalMatches, s.MatchesPerSecond()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.summaryWriter, "Succeeded inputs: %d (%.1f%%)\n", s.SucceededInputs, s.SuccessPercentage()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.summaryWriter, "Failed inputs:    %d (%.1f%%)\n", s.FailedInputs, s.FailurePercentage()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.summaryWriter, "Duration:         %d ms\n", s.TotalDuration.Milliseconds()); err != nil {
		return err
	}

	paths := s.Paths()
	if len(paths) == 0 {
		return nil
	}

	if _, err := fmt.Fprintln(f.summaryWriter, separator); err != nil {
		return err
	}
	for _, p := range paths {
		if _, err := fmt.Fprintf(f.summaryWriter, "%s: %d\n", p, s.MatchesByPath[p]); err != nil {
			return err
		}
	}

	return nil
}

func displayName(name string) string {
	if name == "-" {
		return "<stdin>"
	}
	return name
}
