package sch

import (
	"github.com/mb0/xelf/lit"
	"github.com/mb0/xelf/typ"
)

// Annotation definitions cannot be renamed, so the name has a low compcoef.
var annotation = Register(&Info{
	Kind: KindAnnotation, Display: "annotation",
	Bits: BitInherit | BitAbstract,
	Fields: []Field{
		{Name: "name", Type: typ.Str, Compcoef: 0.2},
		{Name: "inheritable", Type: typ.Bool, Default: lit.Bool(false), Compcoef: 0.2},
		{Name: "abstract", Type: typ.Bool, Default: lit.Bool(false), Compcoef: 0.909},
	},
})

var annotationValue = Register(&Info{
	Kind: KindAnnotationValue, Display: "annotation",
	Bits: BitInherit | BitRef,
	Fields: []Field{
		{Name: "name", Type: typ.Str, Compcoef: 0.2},
		{Name: "subject", Type: typ.Str, Compcoef: 1.0},
		{Name: "annotation", Type: typ.Str, Inheritable: true, Compcoef: 0.429},
		{Name: "value", Type: typ.Str, Inheritable: true, Compcoef: 0.909},
		{Name: "final", Type: typ.Bool, Default: lit.Bool(false), Compcoef: 0.909},
	},
})

var object = Register(&Info{
	Kind: KindObject, Display: "object",
	Bits: BitInherit | BitSubject, RefAttr: "annotations",
	Fields: []Field{
		{Name: "name", Type: typ.Str, Compcoef: 0.67},
		{Name: "abstract", Type: typ.Bool, Default: lit.Bool(false), Compcoef: 0.909},
		{Name: "annotations", Type: typ.Dict(typ.Any), Ephemeral: true, Coerce: true,
			Compcoef: 0.909},
	},
})

// AddAnnotation returns a new schema with val attached to subject.
func AddAnnotation(s *Schema, subject *Object, val *Object, replace bool) (*Schema, error) {
	return AddRef(s, subject, val, replace)
}

// DelAnnotation returns a new schema with the annotation value for name detached from subject.
// The name can be qualified or short.
func DelAnnotation(s *Schema, subject *Object, name string) (*Schema, error) {
	return DelRef(s, subject, Short(name))
}

// Annotation returns the annotation value string attached to subject for name, or false.
func Annotation(s *Schema, subject *Object, name string) (string, bool) {
	val := Ref(s, subject, Short(name))
	if val == nil || val.Kind != KindAnnotationValue {
		return "", false
	}
	v, ok := val.Val("value")
	if !ok {
		return "", false
	}
	return charStr(v), true
}
