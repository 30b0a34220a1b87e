// Package tokenizer turns a JSON byte stream into the structural events
// consumed by the path engine. Exactly one top-level value is accepted.
package tokenizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jacoelho/jpstream/internal/stack"
)

var (
	// ErrSyntax indicates the input is not valid JSON.
	ErrSyntax = errors.New("tokenizer: syntax error")

	// ErrEmptyInput indicates the input ended before any value was read.
	ErrEmptyInput = errors.New("tokenizer: premature end of input")

	// ErrUnexpectedEOF indicates the input ended inside an object or array.
	ErrUnexpectedEOF = errors.New("tokenizer: unexpected end of input")

	// ErrTrailingData indicates more input follows the top-level value.
	ErrTrailingData = errors.New("tokenizer: trailing data after top-level value")
)

// Handler receives events in document order. Every StartObject and
// StartArray is balanced by EndObject and EndArray once Run returns nil,
// and MapKey is only delivered directly inside an object, right before the
// value it names.
type Handler interface {
	Null()
	Bool(v bool)
	Integer(v int64)
	Double(v float64)
	String(v string)
	StartObject()
	MapKey(key string)
	EndObject()
	StartArray()
	EndArray()
}

type frame struct {
	object    bool
	expectKey bool
}

type tokenizer struct {
	dec     *json.Decoder
	handler Handler
	frames  *stack.Stack[frame]
}

// Run decodes a single JSON value from r and reports it to h.
// Reads may be arbitrarily small; the decoder buffers what it needs.
// Separators are checked by the decoder: a missing or extra comma or colon,
// or a non-string key, is ErrSyntax.
func Run(ctx context.Context, r io.Reader, h Handler) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	t := &tokenizer{
		dec:     dec,
		handler: h,
		frames:  stack.NewWithCapacity[frame](16),
	}

	return t.run(ctx)
}

func (t *tokenizer) run(ctx context.Context) error {
	started := false

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		tok, err := t.dec.Token()
		if err == io.EOF {
			switch {
			case !started:
				return ErrEmptyInput
			case !t.frames.IsEmpty():
				return ErrUnexpectedEOF
			}
			return nil
		}
		if err != nil {
			return wrapDecodeError(err)
		}

		if started && t.frames.IsEmpty() {
			return ErrTrailingData
		}
		started = true

		if err := t.emit(tok); err != nil {
			return err
		}
	}
}

func (t *tokenizer) emit(tok json.Token) error {
	switch v := tok.(type) {
	case json.Delim:
		return t.delim(v)
	case string:
		if top := t.frames.PeekRef(); top != nil && top.object && top.expectKey {
			top.expectKey = false
			t.handler.MapKey(v)
			return nil
		}
		t.valueDone()
		t.handler.String(v)
	case json.Number:
		t.valueDone()
		return t.number(string(v))
	case float64:
		t.valueDone()
		t.handler.Double(v)
	case bool:
		t.valueDone()
		t.handler.Bool(v)
	case nil:
		t.valueDone()
		t.handler.Null()
	default:
		return fmt.Errorf("%w: unexpected token %T", ErrSyntax, tok)
	}

	return nil
}

func (t *tokenizer) delim(d json.Delim) error {
	switch d {
	case '{':
		t.valueDone()
		t.frames.Push(frame{object: true, expectKey: true})
		t.handler.StartObject()
	case '[':
		t.valueDone()
		t.frames.Push(frame{})
		t.handler.StartArray()
	case '}':
		if top, ok := t.frames.Pop(); !ok || !top.object {
			return fmt.Errorf("%w: unexpected '}'", ErrSyntax)
		}
		t.handler.EndObject()
	case ']':
		if top, ok := t.frames.Pop(); !ok || top.object {
			return fmt.Errorf("%w: unexpected ']'", ErrSyntax)
		}
		t.handler.EndArray()
	default:
		return fmt.Errorf("%w: unexpected delimiter %q", ErrSyntax, rune(d))
	}

	return nil
}

// valueDone records that the pending object member received its value, so
// the next string inside that object is a key again.
func (t *tokenizer) valueDone() {
	if top := t.frames.PeekRef(); top != nil && top.object {
		top.expectKey = true
	}
}

// number reports integer literals that fit an int64 as integers and every
// other literal as a double.
func (t *tokenizer) number(literal string) error {
	if !strings.ContainsAny(literal, ".eE") {
		if i, err := strconv.ParseInt(literal, 10, 64); err == nil {
			t.handler.Integer(i)
			return nil
		}
	}

	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return fmt.Errorf("%w: number %s: %v", ErrSyntax, literal, err)
	}

	t.handler.Double(f)
	return nil
}

func wrapDecodeError(err error) error {
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrUnexpectedEOF
	}

	return fmt.Errorf("%w: %v", ErrSyntax, err)
}
