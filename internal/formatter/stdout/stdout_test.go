package stdout

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jacoelho/jpstream/internal/formatter"
	"github.com/jacoelho/jpstream/internal/jsonpath"
	"github.com/jacoelho/jpstream/internal/results"
)

func book() *jsonpath.Record {
	r := jsonpath.NewRecord()
	r.Set("title", "Go")
	r.Set("price", 8.95)
	r.Set("tags", []any{"lang", int64(2)})
	return r
}

func TestFormatter_Format_JSON(t *testing.T) {
	tests := []struct {
		name     string
		matches  []formatter.Match
		expected string
	}{
		{
			name:     "scalar",
			matches:  []formatter.Match{{Path: "a.b", Value: int64(1)}},
			expected: `{"path":"a.b","value":1}` + "\n",
		},
		{
			name:     "null",
			matches:  []formatter.Match{{Path: "a", Value: nil}},
			expected: `{"path":"a","value":null}` + "\n",
		},
		{
			name:     "ordered_record",
			matches:  []formatter.Match{{Path: "store.book[*]", Value: book()}},
			expected: `{"path":"store.book[*]","value":{"title":"Go","price":8.95,"tags":["lang",2]}}` + "\n",
		},
		{
			name: "one_line_per_match",
			matches: []formatter.Match{
				{Path: "x[*]", Value: "first"},
				{Path: "x[*]", Value: false},
			},
			expected: `{"path":"x[*]","value":"first"}` + "\n" + `{"path":"x[*]","value":false}` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			f, err := NewWithWriters(FormatJSON, &out, &bytes.Buffer{})
			if err != nil {
				t.Fatalf("NewWithWriters() error: %v", err)
			}

			for _, m := range tt.matches {
				if err := f.Format(m); err != nil {
					t.Fatalf("Format() error: %v", err)
				}
			}

			if out.String() != tt.expected {
				t.Errorf("Format() output = %q, want %q", out.String(), tt.expected)
			}
		})
	}
}

func TestFormatter_Format_YAML(t *testing.T) {
	var out bytes.Buffer
	f, err := NewWithWriters(FormatYAML, &out, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("NewWithWriters() error: %v", err)
	}

	if err := f.Format(formatter.Match{Path: "store.book[*]", Value: book()}); err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	if err := f.Format(formatter.Match{Path: "a", Value: "plain"}); err != nil {
		t.Fatalf("Format() error: %v", err)
	}

	output := out.String()
	if got := strings.Count(output, "---\n"); got != 2 {
		t.Errorf("expected 2 documents, got %d:\n%s", got, output)
	}

	expected := []string{
		"store.book[*]",
		"title: Go",
		"price: 8.95",
		"path: a",
		"value: plain",
	}
	for _, s := range expected {
		if !strings.Contains(output, s) {
			t.Errorf("output missing %q:\n%s", s, output)
		}
	}

	if strings.Index(output, "title") > strings.Index(output, "price") {
		t.Errorf("record keys reordered:\n%s", output)
	}
}

func TestNewWithWriters_UnknownFormat(t *testing.T) {
	_, err := NewWithWriters("xml", &bytes.Buffer{}, &bytes.Buffer{})
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("NewWithWriters() error = %v, want %v", err, ErrUnknownFormat)
	}
}

func TestFormatter_Summary(t *testing.T) {
	tests := []struct {
		name       string
		summary    *results.Summary
		expected   []string
		unexpected []string
	}{
		{
			name: "successful_single_input",
			summary: &results.Summary{
				InputResults: []results.InputResult{
					{Name: "data.json", Matches: 3, Duration: 500 * time.Millisecond},
				},
				ParsedInputs:    1,
				SucceededInputs: 1,
				TotalMatches:    3,
				MatchesByPath:   map[string]int{"a[*]": 3},
				TotalDuration:   500 * time.Millisecond,
			},
			expected: []string{
				"data.json: Success (3 match(es) in 500 ms)",
				"Parsed inputs:    1",
				"Emitted matches:  3 (6.00/s)",
				"Succeeded inputs: 1 (100.0%)",
				"Failed inputs:    0 (0.0%)",
				"Duration:         500 ms",
				"a[*]: 3",
			},
		},
		{
			name: "failed_stdin",
			summary: &results.Summary{
				InputResults: []results.InputResult{
					{Name: "-", Matches: 1, Duration: 200 * time.Millisecond, Error: errors.New("malformed JSON")},
				},
				ParsedInputs:  1,
				FailedInputs:  1,
				TotalMatches:  1,
				MatchesByPath: map[string]int{"b": 1},
				TotalDuration: 200 * time.Millisecond,
			},
			expected: []string{
				"<stdin>: Failed: malformed JSON (1 match(es) in 200 ms)",
				"Emitted matches:  1 (5.00/s)",
				"Failed inputs:    1 (100.0%)",
				"b: 1",
			},
		},
		{
			name: "no_matches",
			summary: &results.Summary{
				InputResults: []results.InputResult{
					{Name: "empty.json"},
				},
				ParsedInputs:    1,
				SucceededInputs: 1,
				MatchesByPath:   map[string]int{},
			},
			expected: []string{
				"empty.json: Success (0 match(es) in 0 ms)",
				"Emitted matches:  0 (0.00/s)",
			},
			unexpected: []string{": 0\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, summary bytes.Buffer
			f, err := NewWithWriters(FormatJSON, &out, &summary)
			if err != nil {
				t.Fatalf("NewWithWriters() error: %v", err)
			}

			if err := f.Summary(tt.summary); err != nil {
				t.Fatalf("Summary() error: %v", err)
			}

			if out.Len() != 0 {
				t.Errorf("summary leaked into match output: %q", out.String())
			}

			output := summary.String()
			for _, s := range tt.expected {
				if !strings.Contains(output, s) {
					t.Errorf("Summary() output missing %q:\n%s", s, output)
				}
			}
			for _, s := range tt.unexpected {
				if strings.Contains(output, s) {
					t.Errorf("Summary() output should not contain %q:\n%s", s, output)
				}
			}
		})
	}
}
