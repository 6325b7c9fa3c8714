// Package eval evaluates parsed calculator expressions.
//
// Evaluation is driven by a Mode, which selects a SymbolTable, and a Context,
// which holds the angle unit and the last answer. Evaluate is a pure function
// of the tree, the mode and a snapshot of the context; an Evaler ties the
// three together into a session.
package eval

import (
	"sync"

	"github.com/deskcalc/deskcalc/pkg/logutil"
	"github.com/deskcalc/deskcalc/pkg/parse"
)

var logger = logutil.GetLogger("[eval] ")

// Evaler evaluates source code in a session, recording every successful
// answer in its Context. An Evaler is safe to use concurrently.
type Evaler struct {
	// Guards mode and afterEval.
	mu        sync.Mutex
	mode      Mode
	afterEval []func(src parse.Source, value float64)

	Context *Context
}

// NewEvaler creates a new Evaler in the given mode with a fresh Context.
func NewEvaler(mode Mode) *Evaler {
	return &Evaler{mode: mode, Context: NewContext()}
}

// Mode returns the active mode.
func (ev *Evaler) Mode() Mode {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	return ev.mode
}

// SetMode sets the active mode. The Context is kept, so the last answer
// survives a mode switch.
func (ev *Evaler) SetMode(m Mode) {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	ev.mode = m
}

// AddAfterEval adds a function to run after a successful evaluation. The
// functions are called with the evaluated source and its value, in the order
// they were added.
func (ev *Evaler) AddAfterEval(f func(src parse.Source, value float64)) {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	ev.afterEval = append(ev.afterEval, f)
}

// Eval parses and evaluates a piece of source code. On success, the value is
// recorded as the last answer and the AfterEval hooks are run. The returned
// error may be a *parse.LexError, a *parse.SyntaxError or an *Exception.
func (ev *Evaler) Eval(src parse.Source) (float64, error) {
	tree, err := parse.Parse(src)
	if err != nil {
		return 0, err
	}
	ev.mu.Lock()
	mode := ev.mode
	hooks := append(([]func(parse.Source, float64))(nil), ev.afterEval...)
	ev.mu.Unlock()

	c := ev.Context
	c.mu.Lock()
	v, err := Evaluate(tree, mode, c.state)
	if err == nil {
		c.recordAnswer(v)
	}
	c.mu.Unlock()

	if err != nil {
		logger.Printf("%s: %q: %v", mode, src.Code, err)
		return 0, err
	}
	logger.Printf("%s: %q = %v", mode, src.Code, v)
	for _, hook := range hooks {
		hook(src, v)
	}
	return v, nil
}

// Check parses the source code and evaluates it without recording the answer
// or running any hooks. It returns the value the code would evaluate to.
func (ev *Evaler) Check(src parse.Source) (float64, error) {
	tree, err := parse.Parse(src)
	if err != nil {
		return 0, err
	}
	return Evaluate(tree, ev.Mode(), ev.Context.State())
}
