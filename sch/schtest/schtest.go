// Package schtest has default schema fixtures and helpers for testing.
package schtest

import (
	"github.com/mb0/dekl/sch"
	"github.com/mb0/xelf/lit"
)

// Anno returns a new abstract annotation definition object.
func Anno(name string, inheritable bool) *sch.Object {
	o := &sch.Object{Kind: sch.KindAnnotation, Name: name}
	o = o.WithVal("inheritable", lit.Bool(inheritable))
	return o.WithVal("abstract", lit.Bool(true))
}

// Obj returns a new subject object with the given base names.
func Obj(name string, bases ...string) *sch.Object {
	return &sch.Object{Kind: sch.KindObject, Name: name, Bases: bases}
}

// AnnoVal returns a new annotation value object attached to subject under the short name of
// the definition def.
func AnnoVal(subject, def, value string, final bool) *sch.Object {
	o := &sch.Object{Kind: sch.KindAnnotationValue,
		Name: sch.ChildName(subject, sch.Short(def))}
	o = o.WithVal("subject", lit.Str(subject))
	o = o.WithVal("annotation", lit.Str(def))
	o = o.WithVal("value", lit.Str(value))
	return o.WithVal("final", lit.Bool(final))
}

// Must panics on err and otherwise returns s.
func Must(s *sch.Schema, err error) *sch.Schema {
	if err != nil {
		panic(err)
	}
	return s
}

// Base returns a schema with two annotation definitions and an empty subject named Foo:
// title is inheritable, secret is not.
func Base() *sch.Schema {
	s := Must(sch.New().Add(Anno("title", true)))
	s = Must(s.Add(Anno("secret", false)))
	return Must(s.Add(Obj("Foo")))
}
