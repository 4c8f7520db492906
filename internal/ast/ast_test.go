package ast

import (
	"testing"

	"wgslfront/internal/source"
	"wgslfront/internal/token"
)

func TestArenaHandles(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil {
		t.Fatal("handle 0 must be nil")
	}
	h1 := a.Allocate(10)
	h2 := a.Allocate(20)
	if h1 != 1 || h2 != 2 {
		t.Fatalf("handles = %d, %d", h1, h2)
	}
	p := a.Get(h1)
	a.Allocate(30)
	if *a.Get(h1) != 10 || *p != 10 {
		t.Error("value under handle changed after growth")
	}
	if a.Get(4) != nil || a.Len() != 3 {
		t.Error("out of range or Len wrong")
	}
	a.Reset()
	if a.Len() != 0 {
		t.Error("Reset did not clear")
	}
}

func TestExprPayloadAccessors(t *testing.T) {
	e := NewExprs(0)
	sp := source.Span{Start: 0, End: 1}
	one := e.NewNumber(sp, token.NumberValue{Kind: token.AbstractInt, Int: 1})
	x := e.NewUnresolved(sp, "x")
	sum := e.NewBinary(source.Span{Start: 0, End: 5}, OpAdd, one, x)

	bin, ok := e.Binary(sum)
	if !ok || bin.Left != one || bin.Right != x || bin.Op != OpAdd {
		t.Fatalf("Binary = %+v %v", bin, ok)
	}
	if _, ok := e.Binary(one); ok {
		t.Error("literal must not read as binary")
	}
	id, ok := e.Ident(x)
	if !ok || id.IsLocal() || id.Name != "x" {
		t.Errorf("Ident = %+v", id)
	}
	lit, ok := e.Literal(one)
	if !ok || lit.Kind != LitNumber || lit.Number.Int != 1 {
		t.Errorf("Literal = %+v", lit)
	}

	addr := e.NewAddrOf(sp, x)
	deref := e.NewDeref(sp, addr)
	if r, ok := e.Ref(deref); !ok || r.Operand != addr {
		t.Errorf("Ref(deref) = %+v", r)
	}
	if e.Get(deref).Kind.String() != "Deref" {
		t.Errorf("kind name = %q", e.Get(deref).Kind)
	}
}

func TestDependenciesKeepFirstUsage(t *testing.T) {
	var d Dependencies
	d.Add("Light", source.Span{Start: 5, End: 10})
	d.Add("shade", source.Span{Start: 20, End: 25})
	d.Add("Light", source.Span{Start: 40, End: 45})

	if d.Len() != 2 || !d.Contains("shade") || d.Contains("main") {
		t.Fatalf("deps = %+v", d.List())
	}
	if got := d.List()[0]; got.Name != "Light" || got.Usage.Start != 5 {
		t.Errorf("first = %+v", got)
	}
}

func TestNames(t *testing.T) {
	tests := []struct{ got, want string }{
		{F32.String(), "f32"},
		{U64.String(), "u64"},
		{Bool.String(), "bool"},
		{OpShiftLeft.String(), "<<"},
		{OpLogicalNot.String(), "!"},
		{FormatRgba8Unorm.String(), "rgba8unorm"},
		{FormatRgba16Snorm.String(), "rgba16snorm"},
		{BuiltInSubgroupInvocationID.String(), "subgroup_invocation_id"},
		{AddressSpace{Kind: SpaceStorage, Access: AccessLoad | AccessStore}.String(), "storage, read_write"},
		{DeclConstAssert.String(), "const_assert"},
		{StmtKill.String(), "Kill"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
	if len(StorageFormats()) != int(formatCount) || len(BuiltIns()) != int(builtInCount) {
		t.Error("enumeration helpers incomplete")
	}
}
