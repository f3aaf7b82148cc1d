package del

import (
	"github.com/mb0/dekl/ast"
	"github.com/mb0/dekl/sch"
	"github.com/mb0/xelf/cor"
	"github.com/mb0/xelf/exp"
	"github.com/mb0/xelf/lit"
)

// ErrUnresolved indicates a reference to a definition that cannot be found in the schema.
var ErrUnresolved = cor.StrError("unresolved reference")

// Build constructs a command tree from node n against the schema snapshot s.
//
// Build validates embedded expressions and references but does not change s; applying the
// returned command produces the mutated schema.
func Build(s *sch.Schema, n ast.Node, c *Ctx) (*Cmd, error) {
	switch n := n.(type) {
	case *ast.CreateObject:
		return buildSubject(s, OpCreate, n.Name, n.Abstract, n.Subs, c)
	case *ast.AlterObject:
		return buildSubject(s, OpAlter, n.Name, n.Abstract, n.Subs, c)
	case *ast.DropObject:
		return New(OpDelete, sch.KindObject, n.Name), nil
	case *ast.CreateAnnotation:
		cmd := New(OpCreate, sch.KindAnnotation, n.Name)
		cmd.SetVal("inheritable", lit.Bool(n.Inheritable))
		// definitions are always abstract, only values are concrete
		cmd.SetVal("abstract", lit.Bool(true))
		return cmd, nil
	case *ast.AlterAnnotation:
		cmd := New(OpAlter, sch.KindAnnotation, n.Name)
		if n.Inheritable != nil {
			cmd.SetVal("inheritable", lit.Bool(*n.Inheritable))
		}
		return cmd, nil
	case *ast.DropAnnotation:
		return New(OpDelete, sch.KindAnnotation, n.Name), nil
	case *ast.CreateAnnotationValue:
		return buildAnnoVal(s, OpCreate, n.Name, n.Value, c)
	case *ast.AlterAnnotationValue:
		return buildAnnoVal(s, OpAlter, n.Name, n.Value, c)
	case *ast.DropAnnotationValue:
		return New(OpDelete, sch.KindAnnotationValue, n.Name), nil
	}
	return nil, cor.Errorf("unexpected node type %T", n)
}

func buildSubject(s *sch.Schema, op Op, name string, abst *bool, subs []ast.Node, c *Ctx) (*Cmd, error) {
	cmd := New(op, sch.KindObject, name)
	if abst != nil {
		cmd.SetVal("abstract", lit.Bool(*abst))
	}
	h := c.Push(Frame{Subject: name})
	defer c.Pop(h)
	for _, sn := range subs {
		sub, err := Build(s, sn, c)
		if err != nil {
			return nil, err
		}
		cmd.Subs = append(cmd.Subs, sub)
	}
	return cmd, nil
}

func buildAnnoVal(s *sch.Schema, op Op, name string, x exp.El, c *Ctx) (*Cmd, error) {
	cmd := New(op, sch.KindAnnotationValue, name)
	h := c.Push(Frame{})
	defer c.Pop(h)
	short := sch.Short(name)
	v, err := c.eval(x, s)
	if err != nil {
		return nil, cor.Errorf("annotation %s: %w", short, err)
	}
	ch, ok := v.(lit.Character)
	if !ok {
		return nil, cor.Errorf("annotation %s value %s: %w", short, v, sch.ErrTypeMismatch)
	}
	cmd.SetVal("value", lit.Str(ch.Char()))
	if op != OpCreate {
		return cmd, nil
	}
	def := s.Get(short)
	if def == nil || def.Kind != sch.KindAnnotation {
		return nil, cor.Errorf("annotation %s: %w", short, ErrUnresolved)
	}
	// the referrer may name a subject the enclosing command is only about to create
	subject := c.Referrer()
	if subject == "" {
		subject = sch.Qual(name)
		if subject == "" || s.Get(subject) == nil {
			return nil, cor.Errorf("subject of annotation %s: %w", short, ErrUnresolved)
		}
	}
	if want := sch.ChildName(subject, short); want != name {
		return nil, cor.Errorf("annotation name %s not derived from subject %s",
			name, subject)
	}
	inh, err := def.ResolveVal(s, "inheritable")
	if err != nil {
		return nil, err
	}
	cmd.SetVal("subject", lit.Str(subject))
	cmd.SetVal("annotation", lit.Str(def.Name))
	// a value under a non-inheritable definition cannot be overridden by subclasses
	cmd.SetVal("final", lit.Bool(!bool(inh.(lit.Bool))))
	return cmd, nil
}
