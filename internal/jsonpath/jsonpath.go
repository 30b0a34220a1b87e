package jsonpath

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jacoelho/jpstream/internal/stack"
	"github.com/jacoelho/jpstream/internal/tokenizer"
)

// compiledPath is one registered pattern together with its matching state.
type compiledPath struct {
	name       string
	components []component
	status     status
	build      *stack.Stack[container] // in-progress values, empty unless collecting
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for handler failures and parse errors.
// Engines log nothing by default.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithObjectsAsMaps decodes objects as *OrderedMap instead of *Record.
func WithObjectsAsMaps(enabled bool) Option {
	return func(e *Engine) {
		e.objectsAsMaps = enabled
	}
}

// WithStrictPaths makes AddPath reject patterns that Validate reports.
func WithStrictPaths() Option {
	return func(e *Engine) {
		e.strict = true
	}
}

// Engine matches registered patterns against a streamed JSON document.
//
// An Engine is not safe for concurrent use. Patterns, handlers and options
// may only change between parses; separate engines share nothing.
type Engine struct {
	paths         []*compiledPath
	handlers      []Handler
	position      *traversal
	objectsAsMaps bool
	strict        bool
	logger        *slog.Logger

	parsing bool
	run     runState
}

// runState holds what a single parse needs beyond the matching state.
type runState struct {
	ctx            context.Context
	logger         *slog.Logger
	matches        int
	failedHandlers int
}

func New(opts ...Option) *Engine {
	e := &Engine{
		position: newTraversal(),
		logger:   slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.run = runState{ctx: context.Background(), logger: e.logger}
	return e
}

// AddPath compiles and registers pattern. Patterns are reported to handlers
// exactly as given here.
func (e *Engine) AddPath(pattern string) error {
	if e.parsing {
		return ErrParseInProgress
	}

	if e.strict {
		if err := Validate(pattern); err != nil {
			return err
		}
	}

	e.paths = append(e.paths, &compiledPath{
		name:       pattern,
		components: compile(pattern),
		build:      stack.New[container](),
	})
	return nil
}

// Paths returns the registered patterns in registration order.
func (e *Engine) Paths() []string {
	names := make([]string, 0, len(e.paths))
	for _, p := range e.paths {
		names = append(names, p.name)
	}
	return names
}

// AddHandler registers h to receive every match.
func (e *Engine) AddHandler(h Handler) error {
	if e.parsing {
		return ErrParseInProgress
	}

	if !callable(h) {
		return ErrInvalidHandler
	}

	e.handlers = append(e.handlers, h)
	return nil
}

func callable(h Handler) bool {
	switch fn := h.(type) {
	case nil:
		return false
	case HandlerFunc:
		return fn != nil
	default:
		return true
	}
}

// Handlers returns the registered handlers in registration order.
func (e *Engine) Handlers() []Handler {
	return slices.Clone(e.handlers)
}

// SetObjectsAsMaps selects *OrderedMap (true) or *Record (false) for
// decoded objects. It has no effect on matching.
func (e *Engine) SetObjectsAsMaps(enabled bool) error {
	if e.parsing {
		return ErrParseInProgress
	}

	e.objectsAsMaps = enabled
	return nil
}

func (e *Engine) ObjectsAsMaps() bool {
	return e.objectsAsMaps
}

// Parse streams one JSON document from r and reports every match before
// returning. Matches completed before a syntax error have already been
// delivered; values still being collected are discarded. The returned error
// wraps ErrMalformed for invalid input, or is the context error when ctx
// ends first.
func (e *Engine) Parse(ctx context.Context, r io.Reader) error {
	if e.parsing {
		return ErrParseInProgress
	}

	e.parsing = true
	defer func() { e.parsing = false }()

	e.reset()
	e.run = runState{
		ctx:    ctx,
		logger: e.logger.With(slog.String("run_id", uuid.NewString())),
	}

	start := time.Now()
	err := tokenizer.Run(ctx, r, events{e: e})
	if err != nil {
		e.reset()
		e.run.logger.LogAttrs(ctx, slog.LevelWarn, "failed parsing JSON",
			slog.String("error", err.Error()),
			slog.Int("matches", e.run.matches),
		)

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	e.run.logger.LogAttrs(ctx, slog.LevelDebug, "parse completed",
		slog.Int("paths", len(e.paths)),
		slog.Int("matches", e.run.matches),
		slog.Int("handler_failures", e.run.failedHandlers),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}

// ParseBytes is Parse over an in-memory document.
func (e *Engine) ParseBytes(ctx context.Context, data []byte) error {
	return e.Parse(ctx, bytes.NewReader(data))
}

// ParseString is Parse over an in-memory document.
func (e *Engine) ParseString(ctx context.Context, data string) error {
	return e.Parse(ctx, strings.NewReader(data))
}

func (e *Engine) reset() {
	e.position.reset()
	for _, p := range e.paths {
		p.status = statusMatching
		p.build.Reset()
	}
}

func (e *Engine) scalar(v any) {
	e.checkForArrayMatches()
	e.collectScalar(v)
}

func (e *Engine) startContainer(kind containerKind) {
	e.checkForArrayMatches()
	e.openContainer(kind)

	if kind == kindObj {
		e.position.pushObject()
	} else {
		e.position.pushArray()
	}
}

func (e *Engine) mapKey(key string) {
	e.checkForArrayMatches()
	e.position.setCurrentKey(key)
	e.checkForMatches()
}

func (e *Engine) endContainer() {
	e.position.pop()
	e.closeContainer()
}

// events adapts the engine to the tokenizer callbacks.
type events struct {
	e *Engine
}

func (ev events) Null() { ev.e.scalar(nil) }
func (ev events) Bool(v bool) { ev.e.scalar(v) }
func (ev events) Integer(v int64) { ev.e.scalar(v) }
func (ev events) Double(v float64) { ev.e.scalar(v) }
func (ev events) String(v string) { ev.e.scalar(v) }
func (ev events) StartObject() { ev.e.startContainer(kindObj) }
func (ev events) MapKey(key string) { ev.e.mapKey(key) }
func (ev events) EndObject() { ev.e.endContainer() }
func (ev events) StartArray() { ev.e.startContainer(kindArr) }
func (ev events) EndArray() { ev.e.endContainer() }
