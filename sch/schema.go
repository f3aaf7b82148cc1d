package sch

import (
	"sort"
	"strings"

	"github.com/mb0/xelf/bfr"
	"github.com/mb0/xelf/cor"
)

// ErrDupObject indicates an attempt to add an object under an already used qualified name.
var ErrDupObject = cor.StrError("duplicate object")

// ErrNotFound indicates a qualified name without an object in the schema.
var ErrNotFound = cor.StrError("object not found")

// Schema is an immutable set of catalog objects addressed by qualified name.
//
// All mutating operations return a new schema value. The zero value is an empty schema.
type Schema struct {
	objs map[string]*Object
}

// New returns a new empty schema.
func New() *Schema { return &Schema{} }

// Len returns the number of objects in the schema.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.objs)
}

// Get returns the object with the qualified name or nil.
func (s *Schema) Get(name string) *Object {
	if s == nil {
		return nil
	}
	return s.objs[name]
}

// Keys returns all qualified names in the schema in sorted order.
func (s *Schema) Keys() []string {
	if s.Len() == 0 {
		return nil
	}
	res := make([]string, 0, len(s.objs))
	for k := range s.objs {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

// Add returns a new schema including o or an error if the name is already used.
func (s *Schema) Add(o *Object) (*Schema, error) {
	if s.Get(o.Name) != nil {
		return nil, cor.Errorf("%s %s: %w", o.Kind, o.Name, ErrDupObject)
	}
	return s.Set(o), nil
}

// Set returns a new schema with o inserted, replacing any object under the same name.
func (s *Schema) Set(o *Object) *Schema {
	res := s.clone(1)
	res.objs[o.Name] = o
	return res
}

// Del returns a new schema without the named object or an error if it does not exist.
// Deleting a subject also deletes all children with names derived from it.
func (s *Schema) Del(name string) (*Schema, error) {
	o := s.Get(name)
	if o == nil {
		return nil, cor.Errorf("%s: %w", name, ErrNotFound)
	}
	res := s.clone(0)
	delete(res.objs, name)
	if KindInfo(o.Kind).Bits&BitSubject != 0 {
		prefix := name + Sep
		for k := range res.objs {
			if strings.HasPrefix(k, prefix) {
				delete(res.objs, k)
			}
		}
	}
	return res, nil
}

func (s *Schema) clone(extra int) *Schema {
	res := &Schema{objs: make(map[string]*Object, s.Len()+extra)}
	if s != nil {
		for k, o := range s.objs {
			res.objs[k] = o
		}
	}
	return res
}

func (s *Schema) String() string { return bfr.String(s) }
func (s *Schema) WriteBfr(b *bfr.Ctx) error {
	b.WriteString("{objs:[")
	for i, k := range s.Keys() {
		if i > 0 {
			b.WriteByte(' ')
		}
		err := s.objs[k].WriteBfr(b)
		if err != nil {
			return err
		}
	}
	b.WriteString("]}")
	return nil
}
