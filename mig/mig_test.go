package mig

import (
	"strings"
	"testing"

	"github.com/mb0/dekl/sch/schtest"
	"github.com/mb0/xelf/lit"
)

func TestManifestUpdate(t *testing.T) {
	s := schtest.Base()
	mf, err := Manifest(nil).Update("test", s)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(mf) != 4 {
		t.Fatalf("want 4 versions got %d", len(mf))
	}
	if first := mf.First(); first.Name != "@test" || first.Vers != 1 {
		t.Errorf("want snapshot version first got %+v", first)
	}
	// no change keeps all versions
	mf2, err := mf.Update("test", s)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	for _, v := range mf2 {
		old, ok := mf.Get(v.Name)
		if !ok || old.Vers != v.Vers || old.Hash != v.Hash {
			t.Errorf("version churn for %s: %+v %+v", v.Name, old, v)
		}
	}
	// a field change bumps the object and the snapshot version
	s2 := s.Set(s.Get("title").WithVal("inheritable", lit.Bool(false)))
	mf3, err := mf.Update("test", s2)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	v, _ := mf3.Get("title")
	if v.Vers != 2 {
		t.Errorf("title want vers 2 got %d", v.Vers)
	}
	if v, _ := mf3.Get("@test"); v.Vers != 2 {
		t.Errorf("snapshot want vers 2 got %d", v.Vers)
	}
	if v, _ := mf3.Get("secret"); v.Vers != 1 {
		t.Errorf("secret want vers 1 got %d", v.Vers)
	}
}

func TestManifestReadWrite(t *testing.T) {
	mf, err := Manifest(nil).Update("test", schtest.Base())
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	var b strings.Builder
	_, err = mf.WriteTo(&b)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadManifest(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != len(mf) {
		t.Fatalf("want %d versions got %d", len(mf), len(got))
	}
	for i, v := range mf {
		if got[i].Name != v.Name || got[i].Vers != v.Vers || got[i].Hash != v.Hash {
			t.Errorf("version %s differs after round trip", v.Name)
		}
	}
}
