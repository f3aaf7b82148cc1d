package sch

import (
	"github.com/mb0/xelf/cor"
	"github.com/mb0/xelf/lit"
	"github.com/mb0/xelf/typ"
)

// ErrTypeMismatch indicates a value that does not satisfy a field's declared type.
var ErrTypeMismatch = cor.StrError("type mismatch")

// Field describes one attribute of a catalog object kind.
//
// Inheritable fields resolve through the base object chain when not set locally. Ephemeral
// fields hold derived state and are excluded from diffing, hashing and inheritance. Compcoef
// is a coefficient in [0,1] weighing how much a change of this field matters when comparing
// two schema snapshots; zero removes the field from comparison entirely.
type Field struct {
	Name        string
	Type        typ.Type
	Inheritable bool
	Default     lit.Lit
	Compcoef    float64
	Ephemeral   bool
	Coerce      bool
}

// Check validates l against the declared field type and returns it, coerced if the descriptor
// allows coercion, or a type mismatch error.
func (f *Field) Check(l lit.Lit) (lit.Lit, error) {
	if l == nil {
		return nil, cor.Errorf("field %s wants %s got nothing: %w",
			f.Name, f.Type.Kind, ErrTypeMismatch)
	}
	if l.Typ().Kind&typ.MaskElem == f.Type.Kind&typ.MaskElem {
		return l, nil
	}
	if f.Coerce {
		v, err := lit.Convert(l, f.Type, 0)
		if err == nil {
			return v, nil
		}
	}
	return nil, cor.Errorf("field %s wants %s got %s: %w",
		f.Name, f.Type.Kind, l.Typ().Kind, ErrTypeMismatch)
}
