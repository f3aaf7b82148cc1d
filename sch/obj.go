package sch

import (
	"fmt"

	"github.com/mb0/xelf/bfr"
	"github.com/mb0/xelf/cor"
	"github.com/mb0/xelf/lit"
)

// ErrNotInheritable indicates field resolution of an unset field that neither inherits nor has
// a default value.
var ErrNotInheritable = cor.StrError("field not inheritable")

// Kind enumerates the registered catalog object kinds.
type Kind uint32

const (
	KindObject Kind = iota + 1
	KindAnnotation
	KindAnnotationValue
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindAnnotation:
		return "annotation"
	case KindAnnotationValue:
		return "annoval"
	}
	return fmt.Sprintf("kind%d", k)
}

// Bit is a bit set describing the capabilities of an object kind.
type Bit uint32

const (
	BitInherit  Bit = 1 << iota // resolves fields through base objects
	BitSubject                  // owns short-name addressed children
	BitRef                      // owned by a subject, name derived from it
	BitAbstract                 // definition rather than a concrete value
)

// Info describes a registered object kind with its capabilities and field descriptors.
type Info struct {
	Kind    Kind
	Display string
	Bits    Bit
	// RefAttr names the ephemeral collection field holding the derived child index for
	// kinds with the subject capability.
	RefAttr string
	Fields  []Field
}

// Field returns the field descriptor for key or nil.
func (nfo *Info) Field(key string) *Field {
	for i, f := range nfo.Fields {
		if f.Name == key {
			return &nfo.Fields[i]
		}
	}
	return nil
}

var infos = make(map[Kind]*Info)

// Register adds a kind info to the lookup table. It must only be called during package init.
func Register(nfo *Info) *Info {
	if _, ok := infos[nfo.Kind]; ok {
		panic(fmt.Sprintf("kind %s already registered", nfo.Kind))
	}
	infos[nfo.Kind] = nfo
	return nfo
}

// KindInfo returns the registered info for kind or nil.
func KindInfo(k Kind) *Info { return infos[k] }

// Val is a named field value.
type Val struct {
	Key string
	Lit lit.Lit
}

// Vals is an ordered list of field values. All mutating operations return a new list.
type Vals []Val

// Get returns the value for key, or false if not set.
func (vs Vals) Get(key string) (lit.Lit, bool) {
	for _, v := range vs {
		if v.Key == key {
			return v.Lit, true
		}
	}
	return nil, false
}

// Set returns a new list with the value for key replaced or appended.
func (vs Vals) Set(key string, l lit.Lit) Vals {
	res := make(Vals, len(vs), len(vs)+1)
	copy(res, vs)
	for i, v := range res {
		if v.Key == key {
			res[i].Lit = l
			return res
		}
	}
	return append(res, Val{key, l})
}

// Del returns a new list without the value for key.
func (vs Vals) Del(key string) Vals {
	res := make(Vals, 0, len(vs))
	for _, v := range vs {
		if v.Key != key {
			res = append(res, v)
		}
	}
	return res
}

// Object is an immutable catalog object value addressed by qualified name.
//
// Field values are literals; fields referring to another object hold that object's qualified
// name as a character literal. Bases lists the names of base objects in declaration order for
// kinds with the inherit capability.
type Object struct {
	Kind  Kind
	Name  string
	Vals  Vals
	Bases []string
}

// Qualified returns the object's qualified name.
func (o *Object) Qualified() string { return o.Name }

// Val returns the locally set value for key, or false. The name field mirrors the object name.
func (o *Object) Val(key string) (lit.Lit, bool) {
	if key == "name" {
		return lit.Str(o.Name), true
	}
	return o.Vals.Get(key)
}

// WithVal returns a copy of the object with the value for key set.
func (o *Object) WithVal(key string, l lit.Lit) *Object {
	res := *o
	res.Vals = o.Vals.Set(key, l)
	return &res
}

// Equal reports whether both objects have the same kind, name and non-ephemeral field values.
func (o *Object) Equal(x *Object) bool {
	if o == x {
		return true
	}
	if o == nil || x == nil || o.Kind != x.Kind || o.Name != x.Name {
		return false
	}
	nfo := KindInfo(o.Kind)
	for _, f := range nfo.Fields {
		if f.Ephemeral {
			continue
		}
		a, aok := o.Val(f.Name)
		b, bok := x.Val(f.Name)
		if aok != bok {
			return false
		}
		if aok && a.String() != b.String() {
			return false
		}
	}
	if len(o.Bases) != len(x.Bases) {
		return false
	}
	for i, n := range o.Bases {
		if x.Bases[i] != n {
			return false
		}
	}
	return true
}

// ResolveVal resolves the field value for key against schema s.
//
// It returns the local value if set, otherwise the first base object in declaration order that
// resolves the field, provided the descriptor is inheritable, otherwise the field default.
func (o *Object) ResolveVal(s *Schema, key string) (lit.Lit, error) {
	nfo := KindInfo(o.Kind)
	f := nfo.Field(key)
	if f == nil {
		return nil, cor.Errorf("unknown field %s of %s", key, o.Name)
	}
	if v, ok := o.Val(key); ok {
		return v, nil
	}
	if f.Inheritable && !f.Ephemeral {
		for _, b := range o.Bases {
			p := s.Get(b)
			if p == nil {
				continue
			}
			v, err := p.ResolveVal(s, key)
			if err == nil {
				return v, nil
			}
		}
	}
	if f.Default != nil {
		return f.Default, nil
	}
	if !f.Inheritable {
		return nil, cor.Errorf("field %s of %s: %w", key, o.Name, ErrNotInheritable)
	}
	return nil, cor.Errorf("field %s of %s not set", key, o.Name)
}

// VerboseName returns a human readable descriptor for the object. Abstract definitions are
// prefixed accordingly and withParent appends the owning subject's verbose name recursively.
func (o *Object) VerboseName(s *Schema, withParent bool) string {
	nfo := KindInfo(o.Kind)
	vn := fmt.Sprintf("%s '%s'", nfo.Display, Short(o.Name))
	if nfo.Bits&BitAbstract != 0 {
		vn = "abstract " + vn
	}
	if withParent && nfo.Bits&BitRef != 0 {
		if sv, ok := o.Val("subject"); ok {
			if subj := s.Get(charStr(sv)); subj != nil {
				return fmt.Sprintf("%s of %s", vn, subj.VerboseName(s, true))
			}
		}
	}
	return vn
}

func (o *Object) String() string { return bfr.String(o) }
func (o *Object) WriteBfr(b *bfr.Ctx) error {
	b.WriteString("{name:")
	b.Quote(o.Name)
	b.WriteString(" kind:")
	b.Quote(o.Kind.String())
	nfo := KindInfo(o.Kind)
	for _, f := range nfo.Fields {
		if f.Ephemeral || f.Name == "name" {
			continue
		}
		v, ok := o.Vals.Get(f.Name)
		if !ok {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(f.Name)
		b.WriteByte(':')
		err := v.WriteBfr(b)
		if err != nil {
			return err
		}
	}
	if len(o.Bases) > 0 {
		b.WriteString(" bases:[")
		for i, n := range o.Bases {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.Quote(n)
		}
		b.WriteByte(']')
	}
	b.WriteByte('}')
	return nil
}

func charStr(l lit.Lit) string {
	if c, ok := l.(lit.Character); ok {
		return c.Char()
	}
	return l.String()
}
