package jsonpath

// collectScalar delivers or stores a scalar for every collecting pattern.
func (e *Engine) collectScalar(v any) {
	for _, p := range e.paths {
		if p.status != statusCollecting {
			continue
		}

		e.collected(p, v)
		if p.build.IsEmpty() {
			p.status = statusMatching
		}
	}
}

// openContainer starts a new in-progress value for every collecting pattern.
func (e *Engine) openContainer(kind containerKind) {
	for _, p := range e.paths {
		if p.status == statusCollecting {
			p.build.Push(newContainer(kind, e.objectsAsMaps))
		}
	}
}

// closeContainer finishes the innermost in-progress value of every
// collecting pattern. The traversal frame of the closed container must be
// popped first so the value is stored with its parent's key or index.
func (e *Engine) closeContainer() {
	for _, p := range e.paths {
		if p.status != statusCollecting {
			continue
		}

		c, ok := p.build.Pop()
		if !ok {
			p.status = statusMatching
			continue
		}

		e.collected(p, c.value())
		if p.build.IsEmpty() {
			p.status = statusMatching
		}
	}
}

// collected either completes the match, when nothing is left on the build
// stack, or stores v inside the enclosing in-progress value.
func (e *Engine) collected(p *compiledPath, v any) {
	top := p.build.PeekRef()
	if top == nil {
		e.emit(p.name, v)
		return
	}

	f, _ := e.position.top()
	top.insert(f, v)
}
