package sch

import (
	"github.com/mb0/xelf/cor"
	"github.com/mb0/xelf/lit"
)

// ErrDupRef indicates an attempt to add a child under an already used short name.
var ErrDupRef = cor.StrError("duplicate reference")

// ErrRefNotFound indicates a short name without a child under the subject.
var ErrRefNotFound = cor.StrError("reference not found")

// AddRef returns a new schema with child added under subject, addressed by the short name
// derived from the child's qualified name. An existing child under the same short name fails
// unless replace is set, in which case it is swapped for the new child.
func AddRef(s *Schema, subject *Object, child *Object, replace bool) (*Schema, error) {
	short := Short(child.Name)
	name := ChildName(subject.Name, short)
	if child.Name != name {
		return nil, cor.Errorf("child name %s not derived from subject %s",
			child.Name, subject.Name)
	}
	if old := s.Get(name); old != nil && !replace {
		return nil, cor.Errorf("%s of %s: %w", short, subject.Name, ErrDupRef)
	}
	res := s.Set(child)
	return syncRefs(res, subject)
}

// DelRef returns a new schema without the child under subject addressed by short name.
func DelRef(s *Schema, subject *Object, short string) (*Schema, error) {
	name := ChildName(subject.Name, short)
	if s.Get(name) == nil {
		return nil, cor.Errorf("%s of %s: %w", short, subject.Name, ErrRefNotFound)
	}
	res, err := s.Del(name)
	if err != nil {
		return nil, err
	}
	return syncRefs(res, subject)
}

// Ref returns the child of subject addressed by short name or nil.
func Ref(s *Schema, subject *Object, short string) *Object {
	return s.Get(ChildName(subject.Name, short))
}

// Refs returns the short names of all children of subject in sorted order.
func Refs(s *Schema, subject *Object) []string {
	prefix := subject.Name + Sep
	var res []string
	for _, k := range s.Keys() {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			res = append(res, k[len(prefix):])
		}
	}
	return res
}

// syncRefs rederives the subject's ephemeral collection field from the children present in s
// and returns a schema with the updated subject.
func syncRefs(s *Schema, subject *Object) (*Schema, error) {
	cur := s.Get(subject.Name)
	if cur == nil {
		return nil, cor.Errorf("subject %s: %w", subject.Name, ErrNotFound)
	}
	nfo := KindInfo(cur.Kind)
	if nfo.Bits&BitSubject == 0 || nfo.RefAttr == "" {
		return nil, cor.Errorf("%s %s cannot own references", cur.Kind, cur.Name)
	}
	d := &lit.Dict{}
	for _, short := range Refs(s, cur) {
		_, err := d.SetKey(short, lit.Str(ChildName(cur.Name, short)))
		if err != nil {
			return nil, err
		}
	}
	return s.Set(cur.WithVal(nfo.RefAttr, d)), nil
}
