package metadata

// Decoded payload messages. Field names mirror the wire schema in
// decode.go; indices reference the payload's string table.

// ClassData is a decoded class payload together with its name resolver.
type ClassData struct {
	Class *Class
	Names *NameResolver
}

// PackageData is a decoded package facade payload together with its
// name resolver.
type PackageData struct {
	Package *Package
	Names   *NameResolver
}

// Class is the serialized form of a class declaration.
type Class struct {
	FqName         uint32
	Flags          Flags
	TypeParameters []*TypeParameter
	Supertypes     []*Type
	Constructors   []*Constructor
	Functions      []*Function
	Properties     []*Property
	NestedNames    []uint32
	EnumEntryNames []uint32
	Annotations    []*Annotation
}

// Package is the serialized form of a package facade's top-level members.
type Package struct {
	Functions  []*Function
	Properties []*Property
}

// Function is the serialized form of a function declaration.
type Function struct {
	Name            uint32
	Flags           Flags
	TypeParameters  []*TypeParameter
	ValueParameters []*ValueParameter
	ReturnType      *Type
	Annotations     []*Annotation
}

// Property is the serialized form of a property declaration.
type Property struct {
	Name        uint32
	Flags       Flags
	Type        *Type
	Constant    *Constant
	Annotations []*Annotation
}

// Constructor is the serialized form of a constructor declaration.
type Constructor struct {
	Flags           Flags
	ValueParameters []*ValueParameter
	Annotations     []*Annotation
}

// ValueParameter is the serialized form of a function or constructor
// parameter.
type ValueParameter struct {
	Name  uint32
	Flags Flags
	Type  *Type
}

// TypeParameter is the serialized form of a declared type parameter.
type TypeParameter struct {
	Name        uint32
	Variance    Variance
	UpperBounds []*Type
	Flags       Flags
}

// Type is the serialized form of a type expression. Exactly one of
// ClassName and TypeParameterName is set; both nil marks a payload that
// the type deserializer turns into an error type.
type Type struct {
	ClassName         *uint32
	TypeParameterName *uint32
	Arguments         []*Argument
	Nullable          bool
	FlexibleID        *uint32
	FlexibleUpper     *Type
}

// Projection of a type argument.
type Projection uint8

const (
	ProjectionInvariant Projection = iota
	ProjectionIn
	ProjectionOut
	ProjectionStar
)

// Argument is one generic argument of a Type.
type Argument struct {
	Projection Projection
	Type       *Type // nil for star projections
}

// Annotation is the serialized form of an annotation application.
type Annotation struct {
	ClassName uint32
	Arguments []*AnnotationArgument
}

// AnnotationArgument is one named value of an Annotation.
type AnnotationArgument struct {
	Name  uint32
	Value *Constant
}

// ConstantKind discriminates Constant payloads.
type ConstantKind uint8

const (
	ConstantInt ConstantKind = iota
	ConstantDouble
	ConstantString
	ConstantBool
)

// Constant is a serialized compile-time constant value.
type Constant struct {
	Kind        ConstantKind
	IntValue    int64
	DoubleValue float64
	StringIndex uint32
	BoolValue   bool
}
