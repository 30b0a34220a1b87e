package jsonpath

import "github.com/jacoelho/jpstream/internal/stack"

// traversal mirrors the current document position, one frame per open
// container. It is shared by every registered pattern.
type traversal struct {
	frames *stack.Stack[frame]
}

func newTraversal() *traversal {
	return &traversal{frames: stack.NewWithCapacity[frame](16)}
}

func (t *traversal) pushObject() {
	t.frames.Push(frame{kind: kindObj})
}

func (t *traversal) pushArray() {
	t.frames.Push(frame{kind: kindArr, index: -1})
}

// setCurrentKey is only called with an object frame on top.
func (t *traversal) setCurrentKey(key string) {
	if top := t.frames.PeekRef(); top != nil && top.kind == kindObj {
		top.key = key
		top.hasKey = true
	}
}

// advanceArrayIndex moves to the next element when the top frame is an
// array and reports whether it did.
func (t *traversal) advanceArrayIndex() bool {
	top := t.frames.PeekRef()
	if top == nil || top.kind != kindArr {
		return false
	}

	top.index++
	return true
}

func (t *traversal) pop() {
	t.frames.Pop()
}

func (t *traversal) depth() int {
	return t.frames.Size()
}

func (t *traversal) at(i int) frame {
	f, _ := t.frames.At(i)
	return f
}

func (t *traversal) top() (frame, bool) {
	return t.frames.Peek()
}

func (t *traversal) reset() {
	t.frames.Reset()
}
