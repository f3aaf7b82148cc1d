package del

import (
	"github.com/mb0/dekl/ast"
	"github.com/mb0/dekl/sch"
	"github.com/mb0/xelf/cor"
	"github.com/mb0/xelf/exp"
	"github.com/mb0/xelf/lit"
)

// Node projects the command tree back onto a fresh syntax node.
//
// Per kind projectors write the attributes they recognize and delegate everything else to the
// base projector, which covers the attributes commands imply without syntax representation.
func (c *Cmd) Node() (ast.Node, error) {
	switch c.Kind {
	case sch.KindObject:
		return c.objectNode()
	case sch.KindAnnotation:
		return c.annotationNode()
	case sch.KindAnnotationValue:
		return c.annoValNode()
	}
	return nil, cor.Errorf("no node for kind %s", c.Kind)
}

func (c *Cmd) objectNode() (ast.Node, error) {
	subs, err := c.subNodes()
	if err != nil {
		return nil, err
	}
	abstAttr := func(dst **bool) func(Set) (bool, error) {
		return func(s Set) (bool, error) {
			if s.Key != "abstract" {
				return false, nil
			}
			v, err := c.boolAttr(s)
			if err != nil {
				return false, err
			}
			*dst = &v
			return true, nil
		}
	}
	switch c.Op {
	case OpCreate:
		n := &ast.CreateObject{Name: c.Name, Subs: subs}
		return n, c.baseAttrs(abstAttr(&n.Abstract))
	case OpAlter:
		n := &ast.AlterObject{Name: c.Name, Subs: subs}
		return n, c.baseAttrs(abstAttr(&n.Abstract))
	case OpDelete:
		return &ast.DropObject{Name: c.Name}, nil
	}
	return nil, cor.Errorf("no node for %s %s", c.Op, c.Kind)
}

func (c *Cmd) annotationNode() (ast.Node, error) {
	switch c.Op {
	case OpCreate:
		n := &ast.CreateAnnotation{Name: c.Name}
		err := c.baseAttrs(func(s Set) (bool, error) {
			if s.Key != "inheritable" {
				return false, nil
			}
			v, err := c.boolAttr(s)
			if err != nil {
				return false, err
			}
			n.Inheritable = v
			return true, nil
		})
		return n, err
	case OpAlter:
		n := &ast.AlterAnnotation{Name: c.Name}
		err := c.baseAttrs(func(s Set) (bool, error) {
			if s.Key != "inheritable" {
				return false, nil
			}
			v, err := c.boolAttr(s)
			if err != nil {
				return false, err
			}
			n.Inheritable = &v
			return true, nil
		})
		return n, err
	case OpDelete:
		return &ast.DropAnnotation{Name: c.Name}, nil
	}
	return nil, cor.Errorf("no node for %s %s", c.Op, c.Kind)
}

func (c *Cmd) annoValNode() (ast.Node, error) {
	valAttr := func(set func(exp.El)) func(Set) (bool, error) {
		return func(s Set) (bool, error) {
			if s.Key != "value" {
				return false, nil
			}
			set(&exp.Atom{Lit: lit.Str(litChar(s.Lit))})
			return true, nil
		}
	}
	switch c.Op {
	case OpCreate:
		n := &ast.CreateAnnotationValue{Name: c.Name}
		err := c.baseAttrs(valAttr(func(x exp.El) { n.Value = x }))
		return n, err
	case OpAlter:
		n := &ast.AlterAnnotationValue{Name: c.Name}
		err := c.baseAttrs(valAttr(func(x exp.El) { n.Value = x }))
		return n, err
	case OpDelete:
		return &ast.DropAnnotationValue{Name: c.Name}, nil
	}
	return nil, cor.Errorf("no node for %s %s", c.Op, c.Kind)
}

func (c *Cmd) subNodes() ([]ast.Node, error) {
	if len(c.Subs) == 0 {
		return nil, nil
	}
	res := make([]ast.Node, 0, len(c.Subs))
	for _, sub := range c.Subs {
		n, err := sub.Node()
		if err != nil {
			return nil, err
		}
		res = append(res, n)
	}
	return res, nil
}

func (c *Cmd) boolAttr(s Set) (bool, error) {
	b, ok := s.Lit.(lit.Bool)
	if !ok {
		return false, cor.Errorf("%s of %s wants bool got %s", s.Key, c.Name, s.Lit)
	}
	return bool(b), nil
}

// baseAttrs projects every recorded assignment, asking own first and falling back to the base
// projector for attributes commands set without a syntax counterpart.
func (c *Cmd) baseAttrs(own func(Set) (bool, error)) error {
	for _, s := range c.Sets {
		if own != nil {
			ok, err := own(s)
			if err != nil {
				return err
			}
			if ok {
				continue
			}
		}
		switch s.Key {
		case "name", "abstract", "final", "subject", "annotation":
			// implied by the command, not represented in syntax
		default:
			return cor.Errorf("unhandled attribute %s of %s %s", s.Key, c.Op, c.Name)
		}
	}
	return nil
}
