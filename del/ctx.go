package del

import (
	"github.com/mb0/dekl/log"
	"github.com/mb0/dekl/sch"
	"github.com/mb0/xelf/cor"
	"github.com/mb0/xelf/exp"
	"github.com/mb0/xelf/lit"
	"github.com/mb0/xelf/std"
	"github.com/mb0/xelf/typ"
)

// ErrNotConst indicates an embedded expression that does not evaluate to a constant.
var ErrNotConst = cor.StrError("expression not constant")

// Evaluator evaluates an embedded expression to a literal against a schema snapshot.
type Evaluator func(x exp.El, s *sch.Schema) (lit.Lit, error)

var stdEnv = std.Std

// StdEval resolves and evaluates x with the standard expression environment and returns the
// resulting literal or ErrNotConst.
func StdEval(x exp.El, s *sch.Schema) (lit.Lit, error) {
	if a, ok := x.(*exp.Atom); ok {
		return a.Lit, nil
	}
	c := exp.NewProg()
	x, err := c.Resl(stdEnv, x, typ.Void)
	if err != nil {
		return nil, cor.Errorf("resolve expression %v: %w", err, ErrNotConst)
	}
	a, err := c.Eval(stdEnv, x, typ.Void)
	if err != nil {
		return nil, cor.Errorf("eval expression %v: %w", err, ErrNotConst)
	}
	if at, ok := a.(*exp.Atom); ok {
		return at.Lit, nil
	}
	return nil, cor.Errorf("expression %s: %w", x, ErrNotConst)
}

// Frame is one level of the construction context stack. Subject names the object being
// declared or altered at this level, if any.
type Frame struct {
	Subject string
}

// Ctx threads referrer information, the expression evaluator and a logger through nested
// command construction. Each construction owns its own context, it is never shared.
type Ctx struct {
	Eval   Evaluator
	Log    log.Logger
	frames []Frame
}

// NewCtx returns a new context with the standard evaluator and root logger.
func NewCtx() *Ctx {
	return &Ctx{Eval: StdEval, Log: log.Root}
}

// Push adds a frame and returns a handle that must be passed to Pop.
func (c *Ctx) Push(f Frame) int {
	c.frames = append(c.frames, f)
	return len(c.frames) - 1
}

// Pop removes the frame for handle h and everything pushed above it.
func (c *Ctx) Pop(h int) {
	if h < len(c.frames) {
		c.frames = c.frames[:h]
	}
}

// Referrer returns the qualified name of the nearest enclosing subject or an empty string.
func (c *Ctx) Referrer() string {
	for i := len(c.frames) - 1; i >= 0; i-- {
		if c.frames[i].Subject != "" {
			return c.frames[i].Subject
		}
	}
	return ""
}

// Apply applies cmd to s with debug tracing on the context logger.
func (c *Ctx) Apply(s *sch.Schema, cmd *Cmd) (*sch.Schema, error) {
	res, err := cmd.Apply(s)
	if err != nil {
		c.Log.Error("apply failed", "op", cmd.Op, "name", cmd.Name, "err", err)
		return nil, err
	}
	c.Log.Debug("applied", "op", cmd.Op, "kind", cmd.Kind, "name", cmd.Name)
	return res, nil
}

func (c *Ctx) eval(x exp.El, s *sch.Schema) (lit.Lit, error) {
	ev := c.Eval
	if ev == nil {
		ev = StdEval
	}
	return ev(x, s)
}
