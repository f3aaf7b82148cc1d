package del

import (
	"github.com/mb0/dekl/sch"
	"github.com/mb0/xelf/bfr"
	"github.com/mb0/xelf/cor"
	"github.com/mb0/xelf/lit"
)

// Op is the mutation operation of a command.
type Op uint32

const (
	OpCreate Op = 1 << iota
	OpAlter
	OpDelete
)

func (op Op) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpAlter:
		return "alter"
	case OpDelete:
		return "delete"
	}
	return "unknown"
}

type state uint32

const (
	stateBuilt state = iota
	stateApplied
	stateFailed
)

// Set is one attribute assignment recorded by a command.
type Set struct {
	Key string
	Lit lit.Lit
}

// Cmd is one node of a command tree.
//
// A command is pure data: applying it is a deterministic function from one schema snapshot to
// the next. A command can be applied at most once, it transitions from built to either applied
// or failed.
type Cmd struct {
	Op   Op
	Kind sch.Kind
	Name string
	Sets []Set
	Subs []*Cmd

	state state
}

// New returns a new built command for the operation, kind and qualified target name.
func New(op Op, kind sch.Kind, name string) *Cmd {
	return &Cmd{Op: op, Kind: kind, Name: name}
}

// SetVal records an attribute assignment, replacing an earlier assignment of the same key.
func (c *Cmd) SetVal(key string, l lit.Lit) {
	for i, s := range c.Sets {
		if s.Key == key {
			c.Sets[i].Lit = l
			return
		}
	}
	c.Sets = append(c.Sets, Set{key, l})
}

// Val returns the recorded assignment for key, or false.
func (c *Cmd) Val(key string) (lit.Lit, bool) {
	for _, s := range c.Sets {
		if s.Key == key {
			return s.Lit, true
		}
	}
	return nil, false
}

// Apply executes the command tree against s and returns the resulting schema. The input schema
// is never changed. A node's own assignments take effect before its subcommands apply.
func (c *Cmd) Apply(s *sch.Schema) (*sch.Schema, error) {
	if c.state != stateBuilt {
		return nil, cor.Errorf("command %s %s %s already finished", c.Op, c.Kind, c.Name)
	}
	res, err := c.apply(s)
	if err != nil {
		c.state = stateFailed
		return nil, err
	}
	for _, sub := range c.Subs {
		res, err = sub.Apply(res)
		if err != nil {
			c.state = stateFailed
			return nil, err
		}
	}
	c.state = stateApplied
	return res, nil
}

func (c *Cmd) apply(s *sch.Schema) (*sch.Schema, error) {
	switch c.Op {
	case OpCreate:
		return c.applyCreate(s)
	case OpAlter:
		return c.applyAlter(s)
	case OpDelete:
		return c.applyDelete(s)
	}
	return nil, cor.Errorf("unknown command operation %d", c.Op)
}

func (c *Cmd) applyCreate(s *sch.Schema) (*sch.Schema, error) {
	if s.Get(c.Name) != nil {
		return nil, cor.Errorf("create %s %s: %w", c.Kind, c.Name, sch.ErrDupObject)
	}
	nfo := sch.KindInfo(c.Kind)
	o := &sch.Object{Kind: c.Kind, Name: c.Name}
	for _, set := range c.Sets {
		f := nfo.Field(set.Key)
		if f == nil {
			return nil, cor.Errorf("unknown field %s of %s", set.Key, c.Kind)
		}
		if f.Ephemeral || f.Name == "name" {
			continue
		}
		v, err := f.Check(set.Lit)
		if err != nil {
			return nil, cor.Errorf("create %s: %w", c.Name, err)
		}
		o.Vals = o.Vals.Set(set.Key, v)
	}
	if nfo.Bits&sch.BitRef != 0 {
		return attachRef(s, o)
	}
	return s.Add(o)
}

func (c *Cmd) applyAlter(s *sch.Schema) (*sch.Schema, error) {
	o := s.Get(c.Name)
	if o == nil {
		return nil, cor.Errorf("alter %s %s: %w", c.Kind, c.Name, sch.ErrNotFound)
	}
	nfo := sch.KindInfo(c.Kind)
	for _, set := range c.Sets {
		f := nfo.Field(set.Key)
		if f == nil {
			return nil, cor.Errorf("unknown field %s of %s", set.Key, c.Kind)
		}
		if f.Ephemeral || f.Name == "name" {
			continue
		}
		v, err := f.Check(set.Lit)
		if err != nil {
			return nil, cor.Errorf("alter %s: %w", c.Name, err)
		}
		o = o.WithVal(set.Key, v)
	}
	return s.Set(o), nil
}

func (c *Cmd) applyDelete(s *sch.Schema) (*sch.Schema, error) {
	o := s.Get(c.Name)
	if o == nil {
		return nil, cor.Errorf("delete %s %s: %w", c.Kind, c.Name, sch.ErrNotFound)
	}
	if sch.KindInfo(o.Kind).Bits&sch.BitRef != 0 {
		if sv, ok := o.Val("subject"); ok {
			if subj := s.Get(litChar(sv)); subj != nil {
				return sch.DelRef(s, subj, sch.Short(c.Name))
			}
		}
	}
	return s.Del(c.Name)
}

// attachRef inserts a referenced object and attaches it to its recorded subject.
func attachRef(s *sch.Schema, o *sch.Object) (*sch.Schema, error) {
	sv, ok := o.Val("subject")
	if !ok {
		return nil, cor.Errorf("referenced %s %s without subject", o.Kind, o.Name)
	}
	subj := s.Get(litChar(sv))
	if subj == nil {
		return nil, cor.Errorf("subject %s of %s: %w", litChar(sv), o.Name, sch.ErrNotFound)
	}
	return sch.AddRef(s, subj, o, true)
}

func (c *Cmd) String() string { return bfr.String(c) }
func (c *Cmd) WriteBfr(b *bfr.Ctx) error {
	b.WriteByte('(')
	b.WriteString(c.Op.String())
	b.WriteByte(' ')
	b.WriteString(c.Kind.String())
	b.WriteByte(' ')
	b.Quote(c.Name)
	for _, set := range c.Sets {
		b.WriteString(" :")
		b.WriteString(set.Key)
		b.WriteByte(' ')
		err := set.Lit.WriteBfr(b)
		if err != nil {
			return err
		}
	}
	for _, sub := range c.Subs {
		b.WriteByte(' ')
		err := sub.WriteBfr(b)
		if err != nil {
			return err
		}
	}
	b.WriteByte(')')
	return nil
}

func litChar(l lit.Lit) string {
	if c, ok := l.(lit.Character); ok {
		return c.Char()
	}
	return l.String()
}
