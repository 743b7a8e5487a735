package descriptors

import (
	"strings"

	"github.com/loomlang/descriptor-loader/metadata"
)

// Type is a reconstructed type expression. Exactly one of Class,
// Parameter and the error marker is set. Types are small values; the
// graph they form is cyclic through *Class pointers.
type Type struct {
	Class     *Class
	Parameter *TypeParameter
	Arguments []TypeProjection
	Nullable  bool
	errorMsg  string
}

// ErrorType marks a reference that could not be resolved. Error types
// are localized: one broken reference never fails the declaration that
// contains it.
func ErrorType(msg string) Type {
	return Type{errorMsg: msg}
}

// IsError reports whether the type is an unresolved-reference marker.
func (t Type) IsError() bool {
	return t.errorMsg != ""
}

// ErrorMessage returns the marker's description, empty for sound types.
func (t Type) ErrorMessage() string {
	return t.errorMsg
}

func (t Type) String() string {
	var b strings.Builder
	switch {
	case t.errorMsg != "":
		b.WriteString("<error: ")
		b.WriteString(t.errorMsg)
		b.WriteByte('>')
		return b.String()
	case t.Parameter != nil:
		b.WriteString(string(t.Parameter.Name()))
	case t.Class != nil:
		b.WriteString(t.Class.ID().String())
	default:
		return "<error: empty type>"
	}
	if len(t.Arguments) > 0 {
		b.WriteByte('<')
		for i, a := range t.Arguments {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.String())
		}
		b.WriteByte('>')
	}
	if t.Nullable {
		b.WriteByte('?')
	}
	return b.String()
}

// TypeProjection is one generic argument: a type with an optional
// variance projection, or a star projection.
type TypeProjection struct {
	Variance metadata.Variance
	Type     Type
	Star     bool
}

func (p TypeProjection) String() string {
	if p.Star {
		return "*"
	}
	if v := p.Variance.String(); v != "" {
		return v + " " + p.Type.String()
	}
	return p.Type.String()
}

// TypeParameter is a declared generic parameter. UpperBounds is filled
// after creation so that bounds may reference the parameter itself.
type TypeParameter struct {
	name        Name
	owner       Descriptor
	Index       int
	Variance    metadata.Variance
	Reified     bool
	UpperBounds []Type
}

// NewTypeParameter creates a type parameter owned by owner.
func NewTypeParameter(owner Descriptor, name Name, index int, variance metadata.Variance, reified bool) *TypeParameter {
	return &TypeParameter{
		name:     name,
		owner:    owner,
		Index:    index,
		Variance: variance,
		Reified:  reified,
	}
}

func (t *TypeParameter) Name() Name         { return t.name }
func (t *TypeParameter) Parent() Descriptor { return t.owner }
