// Package scope implements the lexical scope chain shared by the checker and
// the evaluator: a stack of frames mapping variable names to a payload, looked
// up innermost first.
package scope

// Chain is a stack of binding frames. The global frame is never popped.
type Chain[T any] struct {
	frames []map[string]T
}

// New creates a chain holding only the global frame
func New[T any]() *Chain[T] {
	return &Chain[T]{
		frames: []map[string]T{make(map[string]T)},
	}
}

// Push enters a new innermost frame
func (c *Chain[T]) Push() {
	c.frames = append(c.frames, make(map[string]T))
}

// Pop leaves the innermost frame. Popping the global frame is a programming error.
func (c *Chain[T]) Pop() {
	if len(c.frames) <= 1 {
		panic("scope: pop of global frame")
	}
	c.frames[len(c.frames)-1] = nil
	c.frames = c.frames[:len(c.frames)-1]
}

// Scoped runs fn inside a fresh frame, popping it however fn returns
func (c *Chain[T]) Scoped(fn func()) {
	c.Push()
	defer c.Pop()
	fn()
}

// Define binds name in the innermost frame, replacing an earlier binding there
func (c *Chain[T]) Define(name string, v T) {
	c.frames[len(c.frames)-1][name] = v
}

// Lookup resolves name innermost first
func (c *Chain[T]) Lookup(name string) (T, bool) {
	for i := len(c.frames) - 1; i >= 0; i-- {
		if v, ok := c.frames[i][name]; ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Depth returns the number of frames, global included
func (c *Chain[T]) Depth() int {
	return len(c.frames)
}
