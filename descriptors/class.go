package descriptors

import "github.com/loomlang/descriptor-loader/metadata"

// Class is the materialized representation of a compiled class.
//
// Within a session at most one Class exists per ClassID; the
// deserializer registers the instance before decoding its body, so a
// Class reachable during mutual recursion may still be under
// construction. Fields are fixed once the class is fully materialized.
type Class struct {
	id        metadata.ClassID
	name      Name
	container Descriptor

	Kind       metadata.ClassKind
	Visibility metadata.Visibility
	Modality   metadata.Modality

	TypeParameters []*TypeParameter
	Supertypes     []Type
	Constructors   []*Constructor
	Functions      []*Function
	Properties     []*Property
	NestedNames    []Name
	EnumEntries    []Name
	Annotations    []Annotation
}

// NewClass creates the placeholder instance that the deserializer
// registers before decoding the class body.
func NewClass(id metadata.ClassID, container Descriptor) *Class {
	return &Class{
		id:        id,
		name:      Name(id.ShortName()),
		container: container,
	}
}

func (c *Class) Name() Name         { return c.name }
func (c *Class) Parent() Descriptor { return c.container }

// ID returns the class's identifier.
func (c *Class) ID() metadata.ClassID { return c.id }

// Members returns all callable members in declaration order.
func (c *Class) Members() []Descriptor {
	out := make([]Descriptor, 0, len(c.Constructors)+len(c.Functions)+len(c.Properties))
	for _, ctor := range c.Constructors {
		out = append(out, ctor)
	}
	for _, fn := range c.Functions {
		out = append(out, fn)
	}
	for _, p := range c.Properties {
		out = append(out, p)
	}
	return out
}

// DefaultType returns the type "c<T1, ..., Tn>" with the class's own
// parameters as invariant arguments.
func (c *Class) DefaultType() Type {
	args := make([]TypeProjection, len(c.TypeParameters))
	for i, tp := range c.TypeParameters {
		args[i] = TypeProjection{Type: Type{Parameter: tp}}
	}
	return Type{Class: c, Arguments: args}
}
