package descriptors

import (
	"testing"

	"github.com/loomlang/descriptor-loader/metadata"
)

func TestErrorType(t *testing.T) {
	et := ErrorType("unresolved class com/example/Gone")
	if !et.IsError() {
		t.Fatal("IsError")
	}
	if et.ErrorMessage() != "unresolved class com/example/Gone" {
		t.Errorf("message: got %q", et.ErrorMessage())
	}
	if got := et.String(); got != "<error: unresolved class com/example/Gone>" {
		t.Errorf("String: got %q", got)
	}

	sound := Type{Class: NewClass(metadata.ParseClassID("loom/Int"), NewModule("test"))}
	if sound.IsError() {
		t.Error("class type reported as error")
	}
}

func TestTypeString(t *testing.T) {
	module := NewModule("test")
	list := NewClass(metadata.ParseClassID("loom/collections/List"), module)
	str := NewClass(metadata.ParseClassID("loom/String"), module)
	e := NewTypeParameter(list, "E", 0, metadata.VarianceOut, false)
	list.TypeParameters = []*TypeParameter{e}

	cases := []struct {
		name string
		typ  Type
		want string
	}{
		{"plain class", Type{Class: str}, "loom/String"},
		{"nullable", Type{Class: str, Nullable: true}, "loom/String?"},
		{"type parameter", Type{Parameter: e}, "E"},
		{
			"generic",
			Type{Class: list, Arguments: []TypeProjection{{Type: Type{Class: str}}}},
			"loom/collections/List<loom/String>",
		},
		{
			"projected argument",
			Type{Class: list, Arguments: []TypeProjection{{Variance: metadata.VarianceOut, Type: Type{Class: str}}}},
			"loom/collections/List<out loom/String>",
		},
		{
			"star projection",
			Type{Class: list, Arguments: []TypeProjection{{Star: true}}},
			"loom/collections/List<*>",
		},
		{"empty", Type{}, "<error: empty type>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.typ.String(); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDefaultType(t *testing.T) {
	module := NewModule("test")
	c := NewClass(metadata.ParseClassID("loom/collections/Map"), module)
	c.TypeParameters = []*TypeParameter{
		NewTypeParameter(c, "K", 0, metadata.VarianceInvariant, false),
		NewTypeParameter(c, "V", 1, metadata.VarianceInvariant, false),
	}

	dt := c.DefaultType()
	if dt.Class != c {
		t.Fatal("DefaultType class")
	}
	if got := dt.String(); got != "loom/collections/Map<K, V>" {
		t.Errorf("String: got %q", got)
	}
}

func TestClassMembers(t *testing.T) {
	module := NewModule("test")
	c := NewClass(metadata.ParseClassID("loom/Pair"), module)
	ctor := NewConstructor(c)
	fn := NewFunction(c, "swap")
	prop := NewProperty(c, "first")
	c.Constructors = []*Constructor{ctor}
	c.Functions = []*Function{fn}
	c.Properties = []*Property{prop}

	members := c.Members()
	if len(members) != 3 {
		t.Fatalf("got %d members", len(members))
	}
	if members[0].Name() != ConstructorName {
		t.Errorf("members[0]: got %q", members[0].Name())
	}
	if members[1].Name() != "swap" || members[2].Name() != "first" {
		t.Errorf("member order: got %q, %q", members[1].Name(), members[2].Name())
	}
	for _, m := range members {
		if m.Parent() != Descriptor(c) {
			t.Errorf("%q: parent is not the class", m.Name())
		}
	}
}

func TestClassPlaceholder(t *testing.T) {
	module := NewModule("test")
	id := metadata.ParseClassID("com/example/Outer.Inner")
	c := NewClass(id, module)

	if c.ID() != id {
		t.Errorf("ID: got %v", c.ID())
	}
	if c.Name() != "Inner" {
		t.Errorf("Name: got %q", c.Name())
	}
	if c.Parent() != Descriptor(module) {
		t.Error("Parent is not the constructing container")
	}
}
