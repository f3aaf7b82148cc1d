package dif

import (
	"testing"

	"github.com/mb0/dekl/del"
	"github.com/mb0/dekl/sch"
	"github.com/mb0/dekl/sch/schtest"
	"github.com/mb0/xelf/lit"
)

func TestSimilarity(t *testing.T) {
	title := schtest.Anno("title", true)
	tests := []struct {
		name string
		a, b *sch.Object
		want float64
	}{
		{"same", title, schtest.Anno("title", true), 1},
		{"nil both", nil, nil, 1},
		{"nil one", title, nil, 0},
		{"kind", title, schtest.Obj("title"), 0},
	}
	for _, test := range tests {
		got := Similarity(test.a, test.b)
		if got != test.want {
			t.Errorf("%s want %g got %g", test.name, test.want, got)
		}
	}
	av := schtest.AnnoVal("Foo", "title", "a", false)
	// a changed value weighs heavily but not totally
	if got := Similarity(av, schtest.AnnoVal("Foo", "title", "b", false)); got <= 0 || got >= 1 {
		t.Errorf("value change want partial similarity got %g", got)
	}
	// the value coefficient outweighs the annotation reference coefficient
	valchg := Similarity(av, schtest.AnnoVal("Foo", "title", "b", false))
	refchg := Similarity(av, av.WithVal("annotation", lit.Str("label")))
	if valchg >= refchg {
		t.Errorf("value change %g not weightier than annotation change %g", valchg, refchg)
	}
}

func TestDiff(t *testing.T) {
	old := schtest.Base()
	s := schtest.Must(old.Add(schtest.Anno("label", true)))
	s = schtest.Must(s.Add(schtest.Obj("Bar")))
	s = schtest.Must(sch.AddRef(s, s.Get("Bar"), schtest.AnnoVal("Bar", "title", "hi", false), false))
	s = schtest.Must(s.Del("secret"))
	s = s.Set(s.Get("Foo").WithVal("abstract", lit.Bool(true)))

	cmds := Diff(old, s)
	if len(cmds) == 0 {
		t.Fatalf("no diff commands")
	}
	res := old
	var err error
	for _, cmd := range cmds {
		res, err = cmd.Apply(res)
		if err != nil {
			t.Fatalf("apply %s: %v", cmd, err)
		}
	}
	if got, want := res.String(), s.String(); got != want {
		t.Errorf("diff apply want %s got %s", want, got)
	}
	// no changes, no commands
	if cmds := Diff(s, s); len(cmds) != 0 {
		t.Errorf("self diff want no commands got %d", len(cmds))
	}
}

func TestDiffProject(t *testing.T) {
	old := schtest.Base()
	s := old.Set(schtest.Anno("secret", true))
	s = s.Set(s.Get("Foo").WithVal("abstract", lit.Bool(true)))
	s = schtest.Must(sch.AddRef(s, s.Get("Foo"),
		schtest.AnnoVal("Foo", "title", "hi", false), false))

	// every diff command renders as a declaration and builds back to an applyable command
	res := old
	for _, cmd := range Diff(old, s) {
		node, err := cmd.Node()
		if err != nil {
			t.Fatalf("project %s: %v", cmd, err)
		}
		again, err := del.Build(res, node, del.NewCtx())
		if err != nil {
			t.Fatalf("rebuild %s: %v", node, err)
		}
		res, err = again.Apply(res)
		if err != nil {
			t.Fatalf("apply %s: %v", node, err)
		}
	}
	if got, want := res.String(), s.String(); got != want {
		t.Errorf("projected diff want %s got %s", want, got)
	}
	def := res.Get("secret")
	if v, _ := def.Val("inheritable"); v.String() != lit.Bool(true).String() {
		t.Errorf("inheritable change lost in projection: %s", v)
	}
}

func TestDiffCascade(t *testing.T) {
	old := schtest.Must(schtest.Base().Add(schtest.AnnoVal("Foo", "title", "hi", false)))
	s, err := old.Del("Foo")
	if err != nil {
		t.Fatalf("del: %v", err)
	}
	cmds := Diff(old, s)
	if len(cmds) != 1 {
		t.Fatalf("want 1 command got %d: %v", len(cmds), cmds)
	}
	res, err := cmds[0].Apply(old)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if res.Get("Foo::title") != nil {
		t.Errorf("cascade left the annotation value behind")
	}
}
