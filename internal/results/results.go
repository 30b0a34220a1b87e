package results

import (
	"maps"
	"slices"
	"time"
)

// InputResult is the outcome of parsing a single input.
type InputResult struct {
	Name     string
	Matches  int
	Duration time.Duration
	Error    error
}

type InputResultBuilder struct {
	name     string
	matches  int
	duration time.Duration
	err      error
}

func NewInputResultBuilder(name string) *InputResultBuilder {
	return &InputResultBuilder{
		name: name,
	}
}

func (b *InputResultBuilder) WithMatches(count int) *InputResultBuilder {
	b.matches = count
	return b
}

func (b *InputResultBuilder) WithDuration(duration time.Duration) *InputResultBuilder {
	b.duration = duration
	return b
}

func (b *InputResultBuilder) WithError(err error) *InputResultBuilder {
	b.err = err
	return b
}

func (b *InputResultBuilder) Build() InputResult {
	return InputResult{
		Name:     b.name,
		Matches:  b.matches,
		Duration: b.duration,
		Error:    b.err,
	}
}

// Summary aggregates a run over several inputs.
type Summary struct {
	InputResults    []InputResult
	ParsedInputs    int
	SucceededInputs int
	FailedInputs    int
	TotalMatches    int
	MatchesByPath   map[string]int
	TotalDuration   time.Duration
}

func NewSummary(expectedInputs int) *Summary {
	return &Summary{
		InputResults:  make([]InputResult, 0, expectedInputs),
		MatchesByPath: make(map[string]int),
	}
}

func (s *Summary) Add(builder *InputResultBuilder) {
	result := builder.Build()

	s.InputResults = append(s.InputResults, result)
	s.ParsedInputs++
	s.TotalMatches += result.Matches

	if result.Error != nil {
		s.FailedInputs++
	} else {
		s.SucceededInputs++
	}
}

// RecordMatch counts one emitted match for path.
func (s *Summary) RecordMatch(path string) {
	s.MatchesByPath[path]++
}

// Paths returns the paths that matched at least once, sorted.
func (s *Summary) Paths() []string {
	return slices.Sorted(maps.Keys(s.MatchesByPath))
}

func (s *Summary) SetTotalDuration(duration time.Duration) {
	s.TotalDuration = duration
}

func (s *Summary) MatchesPerSecond() float64 {
	if s.TotalDuration == 0 {
		return 0
	}
	return float64(s.TotalMatches) / s.TotalDuration.Seconds()
}

func (s *Summary) SuccessPercentage() float64 {
	if s.ParsedInputs == 0 {
		return 0
	}
	return (float64(s.SucceededInputs) / float64(s.ParsedInputs)) * 100
}

func (s *Summary) FailurePercentage() float64 {
	if s.ParsedInputs == 0 {
		return 0
	}
	return (float64(s.FailedInputs) / float64(s.ParsedInputs)) * 100
}

// Failed reports whether any input failed.
func (s *Summary) Failed() bool {
	return s.FailedInputs > 0
}
