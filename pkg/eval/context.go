package eval

import "sync"

// State is a snapshot of a Context.
type State struct {
	AngleUnit  AngleUnit
	LastAnswer float64
	// Whether LastAnswer holds a recorded answer.
	HasAnswer bool
}

// Context holds the state that persists across evaluations: the angle unit
// and the last answer. It is safe for concurrent use; an evaluation through
// an Evaler owns the Context for its whole duration.
type Context struct {
	mu    sync.Mutex
	state State
}

// NewContext returns a Context in degrees with no recorded answer.
func NewContext() *Context {
	return &Context{state: State{AngleUnit: Degrees}}
}

// State returns a snapshot of the context.
func (c *Context) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// AngleUnit returns the current angle unit.
func (c *Context) AngleUnit() AngleUnit {
	return c.State().AngleUnit
}

// SetAngleUnit sets the angle unit.
func (c *Context) SetAngleUnit(u AngleUnit) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.AngleUnit = u
}

// LastAnswer returns the last recorded answer, and whether there is one.
func (c *Context) LastAnswer() (float64, bool) {
	st := c.State()
	return st.LastAnswer, st.HasAnswer
}

// RecordAnswer records v as the last answer.
func (c *Context) RecordAnswer(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recordAnswer(v)
}

func (c *Context) recordAnswer(v float64) {
	c.state.LastAnswer = v
	c.state.HasAnswer = true
}

// Clear forgets the last answer. The angle unit is kept.
func (c *Context) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.LastAnswer = 0
	c.state.HasAnswer = false
}
