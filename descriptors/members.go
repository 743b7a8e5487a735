package descriptors

import "github.com/loomlang/descriptor-loader/metadata"

// Function is a reconstructed function declaration.
type Function struct {
	name  Name
	owner Descriptor

	Visibility      metadata.Visibility
	Modality        metadata.Modality
	TypeParameters  []*TypeParameter
	ValueParameters []ValueParameter
	ReturnType      Type
	Annotations     []Annotation
}

// NewFunction creates a function owned by owner.
func NewFunction(owner Descriptor, name Name) *Function {
	return &Function{name: name, owner: owner}
}

func (f *Function) Name() Name         { return f.name }
func (f *Function) Parent() Descriptor { return f.owner }

// Property is a reconstructed property declaration.
type Property struct {
	name  Name
	owner Descriptor

	Visibility  metadata.Visibility
	Modality    metadata.Modality
	IsVar       bool
	Type        Type
	Constant    ConstantValue // compile-time value, nil when absent
	Annotations []Annotation
}

// NewProperty creates a property owned by owner.
func NewProperty(owner Descriptor, name Name) *Property {
	return &Property{name: name, owner: owner}
}

func (p *Property) Name() Name         { return p.name }
func (p *Property) Parent() Descriptor { return p.owner }

// ConstructorName is the conventional name of all constructors.
const ConstructorName Name = "<init>"

// Constructor is a reconstructed constructor declaration.
type Constructor struct {
	owner *Class

	Visibility      metadata.Visibility
	IsSecondary     bool
	ValueParameters []ValueParameter
	Annotations     []Annotation
}

// NewConstructor creates a constructor of class.
func NewConstructor(class *Class) *Constructor {
	return &Constructor{owner: class}
}

func (c *Constructor) Name() Name         { return ConstructorName }
func (c *Constructor) Parent() Descriptor { return c.owner }

// Class returns the constructed class.
func (c *Constructor) Class() *Class { return c.owner }

// ValueParameter is one parameter of a function or constructor.
type ValueParameter struct {
	Name     Name
	Type     Type
	IsVararg bool
}
