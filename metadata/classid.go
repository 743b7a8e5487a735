package metadata

import "strings"

// ClassID uniquely identifies a class across the compilation universe.
// Its textual form is "com/example/Outer.Inner": package segments are
// separated by '/', nested class names by '.'. A ClassID with an empty
// relative name identifies a package facade.
type ClassID struct {
	Package  string // slash-separated package name, may be empty
	Relative string // dot-separated class name chain
}

// ParseClassID parses the textual form described on ClassID.
func ParseClassID(s string) ClassID {
	slash := strings.LastIndexByte(s, '/')
	if slash < 0 {
		return ClassID{Relative: s}
	}
	return ClassID{Package: s[:slash], Relative: s[slash+1:]}
}

func (id ClassID) String() string {
	if id.Package == "" {
		return id.Relative
	}
	if id.Relative == "" {
		return id.Package
	}
	return id.Package + "/" + id.Relative
}

// ShortName returns the innermost class name.
func (id ClassID) ShortName() string {
	if dot := strings.LastIndexByte(id.Relative, '.'); dot >= 0 {
		return id.Relative[dot+1:]
	}
	return id.Relative
}

// IsNested reports whether the class is declared inside another class.
func (id ClassID) IsNested() bool {
	return strings.IndexByte(id.Relative, '.') >= 0
}

// Outer returns the identifier of the enclosing class. It is only
// meaningful when IsNested reports true.
func (id ClassID) Outer() ClassID {
	dot := strings.LastIndexByte(id.Relative, '.')
	if dot < 0 {
		return ClassID{Package: id.Package}
	}
	return ClassID{Package: id.Package, Relative: id.Relative[:dot]}
}

// Nested returns the identifier of a class named name nested in id.
func (id ClassID) Nested(name string) ClassID {
	if id.Relative == "" {
		return ClassID{Package: id.Package, Relative: name}
	}
	return ClassID{Package: id.Package, Relative: id.Relative + "." + name}
}

// IsTopLevel reports whether the class is declared directly in a package.
func (id ClassID) IsTopLevel() bool {
	return id.Relative != "" && !id.IsNested()
}
