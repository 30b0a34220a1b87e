package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jacoelho/jpstream/internal/config"
	"github.com/jacoelho/jpstream/internal/exit"
	"github.com/jacoelho/jpstream/internal/formatter"
	"github.com/jacoelho/jpstream/internal/formatter/stdout"
	"github.com/jacoelho/jpstream/internal/jsonpath"
	"github.com/jacoelho/jpstream/internal/ratelimit"
	"github.com/jacoelho/jpstream/internal/results"
)

// Runner extracts the configured paths from every input in turn.
type Runner struct {
	config      *config.Config
	engine      *jsonpath.Engine
	formatter   formatter.Formatter
	rateLimiter *ratelimit.Limiter
	logger      *slog.Logger

	stdin  io.Reader
	stdout io.Writer

	// per run
	ctx     context.Context
	summary *results.Summary
	matches int
}

// New creates a Runner reading stdin and writing to stdout and stderr.
// If creation fails, returns nil runner and exit result.
func New(cfg *config.Config, logger *slog.Logger) (*Runner, *exit.Result) {
	return NewWithIO(cfg, logger, os.Stdin, os.Stdout, os.Stderr)
}

// NewWithIO creates a Runner with custom streams.
func NewWithIO(cfg *config.Config, logger *slog.Logger, in io.Reader, out, errOut io.Writer) (*Runner, *exit.Result) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	opts := []jsonpath.Option{
		jsonpath.WithLogger(logger),
		jsonpath.WithObjectsAsMaps(cfg.ObjectsAsMaps),
	}
	if cfg.Strict {
		opts = append(opts, jsonpath.WithStrictPaths())
	}
	engine := jsonpath.New(opts...)

	for _, p := range cfg.Paths {
		if err := engine.AddPath(p); err != nil {
			return nil, exit.Errorf("Error: invalid path %q: %v\n", p, err)
		}
	}

	f, err := stdout.NewWithWriters(cfg.Format, out, errOut)
	if err != nil {
		return nil, exit.Errorf("Error creating runner: %v\n", err)
	}

	r := &Runner{
		config:      cfg,
		engine:      engine,
		formatter:   f,
		rateLimiter: ratelimit.New(cfg.RateLimit),
		logger:      logger,
		stdin:       in,
		stdout:      out,
		ctx:         context.Background(),
	}

	if err := engine.AddHandler(jsonpath.HandlerFunc(r.write)); err != nil {
		return nil, exit.Errorf("Error creating runner: %v\n", err)
	}

	return r, nil
}

// Run processes every input and returns the process exit code.
func (r *Runner) Run(ctx context.Context) int {
	if r.config.Explain {
		return r.explain()
	}

	s, err := r.ExecuteInputs(ctx, r.config.Inputs)

	if r.config.Summary {
		if ferr := r.formatter.Summary(s); ferr != nil {
			r.logger.Error("failed to write summary", slog.String("error", ferr.Error()))
		}
	}

	return exit.Code(err != nil || s.Failed())
}

// ExecuteInputs parses each input with the shared engine and returns the
// summary and the first error. A failed input does not stop the others;
// cancellation does.
func (r *Runner) ExecuteInputs(ctx context.Context, inputs []string) (*results.Summary, error) {
	s := results.NewSummary(len(inputs))
	r.ctx = ctx
	r.summary = s

	if !r.rateLimiter.Unlimited() {
		r.logger.Debug("rate limiting matches", slog.Float64("matches_per_second", r.rateLimiter.Limit()))
	}

	overallStart := time.Now()
	var firstError error

	for _, name := range inputs {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("interrupted", slog.Int("parsed", s.ParsedInputs), slog.Int("inputs", len(inputs)))
			if firstError == nil {
				firstError = err
			}
			break
		}

		start := time.Now()
		r.matches = 0
		err := r.executeInput(ctx, name)

		s.Add(results.NewInputResultBuilder(name).
			WithMatches(r.matches).
			WithDuration(time.Since(start)).
			WithError(err))

		if err != nil {
			r.logger.Error("input failed", slog.String("input", name), slog.String("error", err.Error()))
			if firstError == nil {
				firstError = err
			}
		}
	}

	s.SetTotalDuration(time.Since(overallStart))
	return s, firstError
}

func (r *Runner) executeInput(ctx context.Context, name string) error {
	if name == config.Stdin {
		if err := r.engine.Parse(ctx, r.stdin); err != nil {
			return fmt.Errorf("failed to parse stdin: %w", err)
		}
		return nil
	}

	file, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", name, err)
	}
	defer file.Close()

	if err := r.engine.Parse(ctx, file); err != nil {
		return fmt.Errorf("failed to parse file %s: %w", name, err)
	}
	return nil
}

// write is the engine handler: it paces, counts and prints each match.
func (r *Runner) write(path string, value any) error {
	if !r.rateLimiter.Unlimited() {
		if err := r.rateLimiter.Wait(r.ctx); err != nil {
			return err
		}
	}

	r.matches++
	if r.summary != nil {
		r.summary.RecordMatch(path)
	}

	return r.formatter.Format(formatter.Match{Path: path, Value: value})
}

func (r *Runner) explain() int {
	for _, p := range r.engine.Paths() {
		expr, err := jsonpath.Expression(p)
		if err != nil {
			r.logger.Error("cannot explain path", slog.String("path", p), slog.String("error", err.Error()))
			return exit.CodeFailure
		}
		fmt.Fprintf(r.stdout, "%s\t%s\n", p, expr)
	}
	return exit.CodeSuccess
}
