package del

import (
	"errors"
	"testing"

	"github.com/mb0/dekl/ast"
	"github.com/mb0/dekl/log"
	"github.com/mb0/dekl/sch"
	"github.com/mb0/dekl/sch/schtest"
	"github.com/mb0/xelf/exp"
	"github.com/mb0/xelf/lit"
)

func str(s string) exp.El { return &exp.Atom{Lit: lit.Str(s)} }

func flag(v bool) *bool { return &v }

func testCtx(t *testing.T) *Ctx {
	c := NewCtx()
	c.Log = &log.Testing{TB: t}
	return c
}

func TestScenario(t *testing.T) {
	c := testCtx(t)
	s0 := sch.New()

	cmd, err := Build(s0, &ast.CreateAnnotation{Name: "my_anno"}, c)
	if err != nil {
		t.Fatalf("build create annotation: %v", err)
	}
	s1, err := c.Apply(s0, cmd)
	if err != nil {
		t.Fatalf("apply create annotation: %v", err)
	}
	if s0.Len() != 0 {
		t.Errorf("apply changed the input schema")
	}
	def := s1.Get("my_anno")
	if def == nil || def.Kind != sch.KindAnnotation {
		t.Fatalf("no annotation in s1")
	}
	if v, _ := def.Val("abstract"); v.String() != lit.Bool(true).String() {
		t.Errorf("definition not abstract: %s", v)
	}

	cmd, err = Build(s1, &ast.CreateObject{Name: "Foo"}, c)
	if err != nil {
		t.Fatalf("build create object: %v", err)
	}
	s1, err = c.Apply(s1, cmd)
	if err != nil {
		t.Fatalf("apply create object: %v", err)
	}

	h := c.Push(Frame{Subject: "Foo"})
	cmd, err = Build(s1, &ast.CreateAnnotationValue{
		Name: "Foo::my_anno", Value: str("hello"),
	}, c)
	c.Pop(h)
	if err != nil {
		t.Fatalf("build create value: %v", err)
	}
	s2, err := c.Apply(s1, cmd)
	if err != nil {
		t.Fatalf("apply create value: %v", err)
	}
	val := s2.Get("Foo::my_anno")
	if val == nil {
		t.Fatalf("no annotation value in s2")
	}
	if v, _ := val.Val("annotation"); v.String() != lit.Str("my_anno").String() {
		t.Errorf("annotation ref want my_anno got %s", v)
	}
	// the definition is not inheritable so the value must be final
	if v, _ := val.Val("final"); v.String() != lit.Bool(true).String() {
		t.Errorf("value not final: %s", v)
	}
	if v, ok := sch.Annotation(s2, s2.Get("Foo"), "my_anno"); !ok || v != "hello" {
		t.Errorf("annotation accessor want hello got %s %v", v, ok)
	}
	if _, ok := sch.Annotation(s1, s1.Get("Foo"), "my_anno"); ok {
		t.Errorf("apply changed the previous snapshot")
	}

	cmd, err = Build(s2, &ast.DropAnnotationValue{Name: "Foo::my_anno"}, c)
	if err != nil {
		t.Fatalf("build drop value: %v", err)
	}
	s3, err := c.Apply(s2, cmd)
	if err != nil {
		t.Fatalf("apply drop value: %v", err)
	}
	if _, ok := sch.Annotation(s3, s3.Get("Foo"), "my_anno"); ok {
		t.Errorf("annotation value still attached in s3")
	}
	if _, ok := sch.Annotation(s2, s2.Get("Foo"), "my_anno"); !ok {
		t.Errorf("drop changed the previous snapshot")
	}
}

func TestFinality(t *testing.T) {
	tests := []struct {
		def   string
		final bool
	}{
		{"title", false},
		{"secret", true},
	}
	s := schtest.Base()
	for _, test := range tests {
		c := testCtx(t)
		c.Push(Frame{Subject: "Foo"})
		cmd, err := Build(s, &ast.CreateAnnotationValue{
			Name: sch.ChildName("Foo", test.def), Value: str("v"),
		}, c)
		if err != nil {
			t.Errorf("build value for %s: %v", test.def, err)
			continue
		}
		v, ok := cmd.Val("final")
		if !ok {
			t.Errorf("no final attribute for %s", test.def)
			continue
		}
		if got := v.String(); got != lit.Bool(test.final).String() {
			t.Errorf("final for %s want %v got %s", test.def, test.final, got)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	s := schtest.Base()
	tests := []ast.Node{
		&ast.CreateAnnotation{Name: "my_anno"},
		&ast.CreateAnnotation{Name: "my_anno", Inheritable: true},
		&ast.AlterAnnotation{Name: "title"},
		&ast.AlterAnnotation{Name: "title", Inheritable: flag(false)},
		&ast.DropAnnotation{Name: "title"},
		&ast.CreateObject{Name: "Bar"},
		&ast.CreateObject{Name: "Bar", Abstract: flag(true)},
		&ast.AlterObject{Name: "Foo", Abstract: flag(false)},
		&ast.CreateObject{Name: "Bar", Subs: []ast.Node{
			&ast.CreateAnnotationValue{Name: "Bar::title", Value: str("hello")},
		}},
		&ast.AlterObject{Name: "Foo"},
		&ast.DropObject{Name: "Foo"},
		&ast.CreateAnnotationValue{Name: "Foo::title", Value: str("hello")},
		&ast.AlterAnnotationValue{Name: "Foo::title", Value: str("bye")},
		&ast.DropAnnotationValue{Name: "Foo::title"},
	}
	for _, test := range tests {
		c := testCtx(t)
		cmd, err := Build(s, test, c)
		if err != nil {
			t.Errorf("build %s: %v", test, err)
			continue
		}
		node, err := cmd.Node()
		if err != nil {
			t.Errorf("project %s: %v", test, err)
			continue
		}
		if got := node.String(); got != test.String() {
			t.Errorf("round trip want %s got %s", test, got)
		}
		// building from the projected node yields the same command
		again, err := Build(s, node, testCtx(t))
		if err != nil {
			t.Errorf("rebuild %s: %v", test, err)
			continue
		}
		if got, want := again.String(), cmd.String(); got != want {
			t.Errorf("rebuild want %s got %s", want, got)
		}
	}
}

func TestNested(t *testing.T) {
	c := testCtx(t)
	s := schtest.Base()
	cmd, err := Build(s, &ast.CreateObject{Name: "Bar", Subs: []ast.Node{
		&ast.CreateAnnotationValue{Name: "Bar::title", Value: str("a bar")},
		&ast.CreateAnnotationValue{Name: "Bar::secret", Value: str("hush")},
	}}, c)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if c.Referrer() != "" {
		t.Errorf("frame leaked after build: %s", c.Referrer())
	}
	res, err := c.Apply(s, cmd)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	bar := res.Get("Bar")
	if v, ok := sch.Annotation(res, bar, "title"); !ok || v != "a bar" {
		t.Errorf("title want a bar got %s %v", v, ok)
	}
	if v, ok := sch.Annotation(res, bar, "secret"); !ok || v != "hush" {
		t.Errorf("secret want hush got %s %v", v, ok)
	}
	// a command tree applies at most once
	if _, err = cmd.Apply(res); err == nil {
		t.Errorf("reapply did not fail")
	}
}

func TestBuildErrs(t *testing.T) {
	s := schtest.Base()
	c := testCtx(t)
	c.Push(Frame{Subject: "Foo"})
	tests := []struct {
		node ast.Node
		err  error
	}{
		{&ast.CreateAnnotationValue{Name: "Foo::nope", Value: str("v")}, ErrUnresolved},
		{&ast.CreateAnnotationValue{Name: "Foo::title",
			Value: &exp.Atom{Lit: lit.Int(1)}}, sch.ErrTypeMismatch},
	}
	for _, test := range tests {
		_, err := Build(s, test.node, c)
		if !errors.Is(err, test.err) {
			t.Errorf("build %s want %v got %v", test.node, test.err, err)
		}
	}
	// a failing evaluator reports non constant expressions
	c.Eval = func(x exp.El, s *sch.Schema) (lit.Lit, error) {
		return nil, ErrNotConst
	}
	node := &ast.CreateAnnotationValue{Name: "Foo::title", Value: str("v")}
	if _, err := Build(s, node, c); !errors.Is(err, ErrNotConst) {
		t.Errorf("want %v got %v", ErrNotConst, err)
	}
}

func TestApplyErrs(t *testing.T) {
	s := schtest.Base()
	tests := []struct {
		cmd *Cmd
		err error
	}{
		{New(OpCreate, sch.KindAnnotation, "title"), sch.ErrDupObject},
		{New(OpAlter, sch.KindAnnotation, "nope"), sch.ErrNotFound},
		{New(OpDelete, sch.KindObject, "nope"), sch.ErrNotFound},
		{New(OpDelete, sch.KindAnnotationValue, "Foo::title"), sch.ErrNotFound},
	}
	for _, test := range tests {
		_, err := test.cmd.Apply(s)
		if !errors.Is(err, test.err) {
			t.Errorf("apply %s want %v got %v", test.cmd, test.err, err)
		}
	}
	if s.Len() != 3 {
		t.Errorf("failed applies changed the schema: %d", s.Len())
	}
}
