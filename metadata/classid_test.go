package metadata

import "testing"

func TestParseClassID(t *testing.T) {
	tests := []struct {
		input    string
		pkg      string
		relative string
	}{
		{"com/example/Foo", "com/example", "Foo"},
		{"com/example/Outer.Inner", "com/example", "Outer.Inner"},
		{"Foo", "", "Foo"},
		{"com/example", "com", "example"},
		{"a/b/c/Deep.Mid.Leaf", "a/b/c", "Deep.Mid.Leaf"},
	}

	for _, tt := range tests {
		id := ParseClassID(tt.input)
		if id.Package != tt.pkg {
			t.Errorf("ParseClassID(%q).Package: got %q, want %q", tt.input, id.Package, tt.pkg)
		}
		if id.Relative != tt.relative {
			t.Errorf("ParseClassID(%q).Relative: got %q, want %q", tt.input, id.Relative, tt.relative)
		}
		if id.String() != tt.input {
			t.Errorf("roundtrip of %q: got %q", tt.input, id.String())
		}
	}
}

func TestClassIDShortName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"com/example/Foo", "Foo"},
		{"com/example/Outer.Inner", "Inner"},
		{"Foo", "Foo"},
	}

	for _, tt := range tests {
		if got := ParseClassID(tt.input).ShortName(); got != tt.want {
			t.Errorf("ShortName(%q): got %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestClassIDNesting(t *testing.T) {
	outer := ParseClassID("com/example/Outer")
	if outer.IsNested() {
		t.Error("Outer should not be nested")
	}
	if !outer.IsTopLevel() {
		t.Error("Outer should be top level")
	}

	inner := outer.Nested("Inner")
	if inner.String() != "com/example/Outer.Inner" {
		t.Errorf("Nested: got %q", inner.String())
	}
	if !inner.IsNested() {
		t.Error("Inner should be nested")
	}
	if inner.IsTopLevel() {
		t.Error("Inner should not be top level")
	}
	if inner.Outer() != outer {
		t.Errorf("Outer(): got %v, want %v", inner.Outer(), outer)
	}

	deep := inner.Nested("Leaf")
	if deep.Outer() != inner {
		t.Errorf("Outer of deep nesting: got %v, want %v", deep.Outer(), inner)
	}
}

func TestClassIDPackageOnly(t *testing.T) {
	id := ClassID{Package: "com/example"}
	if id.String() != "com/example" {
		t.Errorf("package-only String: got %q", id.String())
	}
	if id.IsTopLevel() {
		t.Error("package-only id should not be top level")
	}
}
