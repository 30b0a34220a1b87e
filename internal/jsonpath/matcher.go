package jsonpath

// tryMatch switches p to collecting when the current position is exactly
// the location its components describe.
func (e *Engine) tryMatch(p *compiledPath) {
	if len(p.components) != e.position.depth() {
		return
	}

	for i, c := range p.components {
		if !componentMatches(c, e.position.at(i)) {
			return
		}
	}

	p.status = statusCollecting
}

func componentMatches(c component, f frame) bool {
	if c.kind != f.kind {
		return false
	}
	if c.wildcard {
		return true
	}

	if c.kind == kindArr {
		return c.index == f.index
	}
	return f.hasKey && c.key == f.key
}

// checkForMatches runs once the key or index of the upcoming value is
// known, never on container start.
func (e *Engine) checkForMatches() {
	for _, p := range e.paths {
		if p.status == statusMatching {
			e.tryMatch(p)
		}
	}
}

// checkForArrayMatches advances the enclosing array, if any, before a new
// element of any type begins.
func (e *Engine) checkForArrayMatches() {
	if e.position.advanceArrayIndex() {
		e.checkForMatches()
	}
}
