/*
Package ast declares the syntax nodes consumed and produced by the command engine.

The nodes represent already parsed declaration statements. Each node can regenerate its
declaration text, so command trees projected back to syntax render as statements again.
*/
package ast

import (
	"github.com/mb0/xelf/bfr"
	"github.com/mb0/xelf/exp"
)

// Node is a parsed declaration statement.
type Node interface {
	String() string
	WriteBfr(b *bfr.Ctx) error
	node()
}

// CreateObject declares a new named catalog object, optionally with nested declarations
// such as annotation values attached to it. Abstract is nil when the declaration does not
// mention the flag.
type CreateObject struct {
	Name     string
	Abstract *bool
	Subs     []Node
}

// AlterObject alters an existing catalog object with nested declarations and optionally
// changes the abstract flag.
type AlterObject struct {
	Name     string
	Abstract *bool
	Subs     []Node
}

// DropObject removes a catalog object and everything it owns.
type DropObject struct {
	Name string
}

// CreateAnnotation declares a new abstract annotation definition.
type CreateAnnotation struct {
	Name        string
	Inheritable bool
}

// AlterAnnotation alters an existing annotation definition. Inheritable is nil when the
// declaration does not change it.
type AlterAnnotation struct {
	Name        string
	Inheritable *bool
}

// DropAnnotation removes an annotation definition.
type DropAnnotation struct {
	Name string
}

// CreateAnnotationValue attaches an annotation value to the enclosing subject. The value
// expression must evaluate to a constant.
type CreateAnnotationValue struct {
	Name  string
	Value exp.El
}

// AlterAnnotationValue replaces the value of an attached annotation.
type AlterAnnotationValue struct {
	Name  string
	Value exp.El
}

// DropAnnotationValue detaches an annotation value from its subject.
type DropAnnotationValue struct {
	Name string
}

func (*CreateObject) node()          {}
func (*AlterObject) node()           {}
func (*DropObject) node()            {}
func (*CreateAnnotation) node()      {}
func (*AlterAnnotation) node()       {}
func (*DropAnnotation) node()        {}
func (*CreateAnnotationValue) node() {}
func (*AlterAnnotationValue) node()  {}
func (*DropAnnotationValue) node()   {}

func (n *CreateObject) String() string          { return bfr.String(n) }
func (n *AlterObject) String() string           { return bfr.String(n) }
func (n *DropObject) String() string            { return bfr.String(n) }
func (n *CreateAnnotation) String() string      { return bfr.String(n) }
func (n *AlterAnnotation) String() string       { return bfr.String(n) }
func (n *DropAnnotation) String() string        { return bfr.String(n) }
func (n *CreateAnnotationValue) String() string { return bfr.String(n) }
func (n *AlterAnnotationValue) String() string  { return bfr.String(n) }
func (n *DropAnnotationValue) String() string   { return bfr.String(n) }

func (n *CreateObject) WriteBfr(b *bfr.Ctx) error {
	b.WriteString("(create object ")
	b.Quote(n.Name)
	writeFlag(b, "abstract", n.Abstract)
	err := writeSubs(b, n.Subs)
	b.WriteByte(')')
	return err
}
func (n *AlterObject) WriteBfr(b *bfr.Ctx) error {
	b.WriteString("(alter object ")
	b.Quote(n.Name)
	writeFlag(b, "abstract", n.Abstract)
	err := writeSubs(b, n.Subs)
	b.WriteByte(')')
	return err
}
func (n *DropObject) WriteBfr(b *bfr.Ctx) error {
	b.WriteString("(drop object ")
	b.Quote(n.Name)
	b.WriteByte(')')
	return nil
}
func (n *CreateAnnotation) WriteBfr(b *bfr.Ctx) error {
	b.WriteString("(create annotation ")
	b.Quote(n.Name)
	if n.Inheritable {
		b.WriteString(" :inheritable")
	}
	b.WriteByte(')')
	return nil
}
func (n *AlterAnnotation) WriteBfr(b *bfr.Ctx) error {
	b.WriteString("(alter annotation ")
	b.Quote(n.Name)
	writeFlag(b, "inheritable", n.Inheritable)
	b.WriteByte(')')
	return nil
}
func (n *DropAnnotation) WriteBfr(b *bfr.Ctx) error {
	b.WriteString("(drop annotation ")
	b.Quote(n.Name)
	b.WriteByte(')')
	return nil
}
func (n *CreateAnnotationValue) WriteBfr(b *bfr.Ctx) error {
	b.WriteString("(create annoval ")
	b.Quote(n.Name)
	err := writeVal(b, n.Value)
	b.WriteByte(')')
	return err
}
func (n *AlterAnnotationValue) WriteBfr(b *bfr.Ctx) error {
	b.WriteString("(alter annoval ")
	b.Quote(n.Name)
	err := writeVal(b, n.Value)
	b.WriteByte(')')
	return err
}
func (n *DropAnnotationValue) WriteBfr(b *bfr.Ctx) error {
	b.WriteString("(drop annoval ")
	b.Quote(n.Name)
	b.WriteByte(')')
	return nil
}

func writeSubs(b *bfr.Ctx, subs []Node) error {
	for _, sub := range subs {
		b.WriteByte(' ')
		err := sub.WriteBfr(b)
		if err != nil {
			return err
		}
	}
	return nil
}

// writeFlag writes an optional bool tag, a bare tag means true.
func writeFlag(b *bfr.Ctx, key string, v *bool) {
	if v == nil {
		return
	}
	b.WriteString(" :")
	b.WriteString(key)
	if !*v {
		b.WriteString(" false")
	}
}

func writeVal(b *bfr.Ctx, x exp.El) error {
	if x == nil {
		return nil
	}
	b.WriteByte(' ')
	return x.WriteBfr(b)
}
