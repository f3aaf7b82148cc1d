/*
Package dif scores differences between schema snapshots and derives migration commands.

Fields weigh into the score with their comparison coefficient; ephemeral and zero-coefficient
fields never contribute. Diff emits a command list that transforms one snapshot into another,
the projection of those commands renders the migration's declaration text.
*/
package dif

import (
	"sort"

	"github.com/mb0/dekl/del"
	"github.com/mb0/dekl/sch"
	"github.com/mb0/xelf/lit"
)

// Similarity returns the coefficient-weighted similarity of two objects in [0,1], where one
// means indistinguishable and zero means unrelated.
func Similarity(a, b *sch.Object) float64 {
	if a == nil || b == nil {
		if a == b {
			return 1
		}
		return 0
	}
	if a.Kind != b.Kind {
		return 0
	}
	var wsum, dsum float64
	for _, f := range sch.KindInfo(a.Kind).Fields {
		if f.Ephemeral || f.Compcoef <= 0 {
			continue
		}
		wsum += f.Compcoef
		av, aok := a.Val(f.Name)
		bv, bok := b.Val(f.Name)
		if aok != bok || aok && av.String() != bv.String() {
			dsum += f.Compcoef
		}
	}
	if wsum == 0 {
		return 1
	}
	return 1 - dsum/wsum
}

// Diff returns commands that transform the old snapshot into the new one when applied in
// order: creations first, definitions before the values referring to them, then alterations,
// then deletions.
func Diff(old, new *sch.Schema) []*del.Cmd {
	var creates, alters, deletes []*del.Cmd
	for _, k := range new.Keys() {
		n := new.Get(k)
		o := old.Get(k)
		if o == nil {
			creates = append(creates, createCmd(n))
		} else if !o.Equal(n) {
			alters = append(alters, alterCmd(o, n))
		}
	}
	for _, k := range old.Keys() {
		if new.Get(k) != nil {
			continue
		}
		o := old.Get(k)
		if ownerDropped(old, new, o) {
			continue
		}
		deletes = append(deletes, del.New(del.OpDelete, o.Kind, o.Name))
	}
	sort.SliceStable(creates, func(i, j int) bool {
		return kindPrec(creates[i].Kind) < kindPrec(creates[j].Kind)
	})
	sort.SliceStable(deletes, func(i, j int) bool {
		return kindPrec(deletes[i].Kind) > kindPrec(deletes[j].Kind)
	})
	res := make([]*del.Cmd, 0, len(creates)+len(alters)+len(deletes))
	res = append(res, creates...)
	res = append(res, alters...)
	return append(res, deletes...)
}

func createCmd(o *sch.Object) *del.Cmd {
	cmd := del.New(del.OpCreate, o.Kind, o.Name)
	for _, f := range sch.KindInfo(o.Kind).Fields {
		if f.Ephemeral || f.Name == "name" {
			continue
		}
		if v, ok := o.Vals.Get(f.Name); ok {
			cmd.SetVal(f.Name, v)
		}
	}
	return cmd
}

func alterCmd(o, n *sch.Object) *del.Cmd {
	cmd := del.New(del.OpAlter, n.Kind, n.Name)
	for _, f := range sch.KindInfo(n.Kind).Fields {
		if f.Ephemeral || f.Name == "name" {
			continue
		}
		nv, ok := n.Vals.Get(f.Name)
		if !ok {
			continue
		}
		ov, ook := o.Vals.Get(f.Name)
		if !ook || ov.String() != nv.String() {
			cmd.SetVal(f.Name, nv)
		}
	}
	return cmd
}

// ownerDropped reports whether o is owned by a subject that is itself deleted, in which case
// the subject deletion already cascades to o.
func ownerDropped(old, new *sch.Schema, o *sch.Object) bool {
	if sch.KindInfo(o.Kind).Bits&sch.BitRef == 0 {
		return false
	}
	sv, ok := o.Val("subject")
	if !ok {
		return false
	}
	name := charStr(sv)
	return old.Get(name) != nil && new.Get(name) == nil
}

func charStr(l lit.Lit) string {
	if c, ok := l.(lit.Character); ok {
		return c.Char()
	}
	return l.String()
}

func kindPrec(k sch.Kind) int {
	switch k {
	case sch.KindAnnotation:
		return 0
	case sch.KindAnnotationValue:
		return 2
	}
	return 1
}
