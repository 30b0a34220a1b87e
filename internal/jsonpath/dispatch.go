package jsonpath

import (
	"fmt"
	"log/slog"
)

// Handler receives every completed match. Handlers run synchronously on the
// parsing goroutine and must not register patterns or start another parse
// on the same Engine. The value is shared by all handlers: copy it before
// modifying it or keeping it past the call.
type Handler interface {
	Handle(path string, value any) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(path string, value any) error

func (f HandlerFunc) Handle(path string, value any) error {
	return f(path, value)
}

// emit hands a completed value to every handler in registration order.
// A failing or panicking handler is logged and does not stop the others
// or the parse.
func (e *Engine) emit(name string, value any) {
	e.run.matches++

	for i, h := range e.handlers {
		if err := safeHandle(h, name, value); err != nil {
			e.run.failedHandlers++
			e.run.logger.LogAttrs(e.run.ctx, slog.LevelWarn, "handler failed",
				slog.String("path", name),
				slog.Int("handler", i),
				slog.String("error", err.Error()),
			)
		}
	}
}

// safeHandle reports a handler panic as an error.
func safeHandle(h Handler, name string, value any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()

	return h.Handle(name, value)
}
