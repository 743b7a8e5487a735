package metadata

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// StringTable interns names while assembling a payload.
type StringTable struct {
	index   map[string]uint32
	strings []string
}

// NewStringTable creates an empty table.
func NewStringTable() *StringTable {
	return &StringTable{index: make(map[string]uint32)}
}

// Ref interns s and returns its index.
func (t *StringTable) Ref(s string) uint32 {
	if i, ok := t.index[s]; ok {
		return i
	}
	i := uint32(len(t.strings))
	t.index[s] = i
	t.strings = append(t.strings, s)
	return i
}

// Strings returns the interned strings in index order.
func (t *StringTable) Strings() []string {
	return t.strings
}

// MarshalClassPayload assembles a class payload in the wire format
// documented in decode.go.
func MarshalClassPayload(table *StringTable, c *Class) []byte {
	var b []byte
	for _, s := range table.Strings() {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendString(b, s)
	}
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendBytes(b, appendClass(nil, c))
	return b
}

// MarshalPackagePayload assembles a package facade payload.
func MarshalPackagePayload(table *StringTable, p *Package) []byte {
	var b []byte
	for _, s := range table.Strings() {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendString(b, s)
	}
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendBytes(b, appendPackage(nil, p))
	return b
}

func appendClass(b []byte, c *Class) []byte {
	b = appendVarintField(b, 1, uint64(c.FqName))
	b = appendVarintField(b, 2, uint64(c.Flags))
	for _, tp := range c.TypeParameters {
		b = appendMessageField(b, 3, appendTypeParameter(nil, tp))
	}
	for _, st := range c.Supertypes {
		b = appendMessageField(b, 4, appendType(nil, st))
	}
	for _, ctor := range c.Constructors {
		b = appendMessageField(b, 5, appendConstructor(nil, ctor))
	}
	for _, fn := range c.Functions {
		b = appendMessageField(b, 6, appendFunction(nil, fn))
	}
	for _, prop := range c.Properties {
		b = appendMessageField(b, 7, appendProperty(nil, prop))
	}
	for _, n := range c.NestedNames {
		b = appendVarintField(b, 8, uint64(n))
	}
	for _, n := range c.EnumEntryNames {
		b = appendVarintField(b, 9, uint64(n))
	}
	for _, a := range c.Annotations {
		b = appendMessageField(b, 10, appendAnnotation(nil, a))
	}
	return b
}

func appendPackage(b []byte, p *Package) []byte {
	for _, fn := range p.Functions {
		b = appendMessageField(b, 1, appendFunction(nil, fn))
	}
	for _, prop := range p.Properties {
		b = appendMessageField(b, 2, appendProperty(nil, prop))
	}
	return b
}

func appendFunction(b []byte, f *Function) []byte {
	b = appendVarintField(b, 1, uint64(f.Name))
	b = appendVarintField(b, 2, uint64(f.Flags))
	for _, tp := range f.TypeParameters {
		b = appendMessageField(b, 3, appendTypeParameter(nil, tp))
	}
	for _, vp := range f.ValueParameters {
		b = appendMessageField(b, 4, appendValueParameter(nil, vp))
	}
	if f.ReturnType != nil {
		b = appendMessageField(b, 5, appendType(nil, f.ReturnType))
	}
	for _, a := range f.Annotations {
		b = appendMessageField(b, 6, appendAnnotation(nil, a))
	}
	return b
}

func appendProperty(b []byte, p *Property) []byte {
	b = appendVarintField(b, 1, uint64(p.Name))
	b = appendVarintField(b, 2, uint64(p.Flags))
	if p.Type != nil {
		b = appendMessageField(b, 3, appendType(nil, p.Type))
	}
	if p.Constant != nil {
		b = appendMessageField(b, 4, appendConstant(nil, p.Constant))
	}
	for _, a := range p.Annotations {
		b = appendMessageField(b, 5, appendAnnotation(nil, a))
	}
	return b
}

func appendConstructor(b []byte, c *Constructor) []byte {
	b = appendVarintField(b, 1, uint64(c.Flags))
	for _, vp := range c.ValueParameters {
		b = appendMessageField(b, 2, appendValueParameter(nil, vp))
	}
	for _, a := range c.Annotations {
		b = appendMessageField(b, 3, appendAnnotation(nil, a))
	}
	return b
}

func appendValueParameter(b []byte, v *ValueParameter) []byte {
	b = appendVarintField(b, 1, uint64(v.Name))
	b = appendVarintField(b, 2, uint64(v.Flags))
	if v.Type != nil {
		b = appendMessageField(b, 3, appendType(nil, v.Type))
	}
	return b
}

func appendTypeParameter(b []byte, t *TypeParameter) []byte {
	b = appendVarintField(b, 1, uint64(t.Name))
	b = appendVarintField(b, 2, uint64(t.Variance))
	for _, ub := range t.UpperBounds {
		b = appendMessageField(b, 3, appendType(nil, ub))
	}
	b = appendVarintField(b, 4, uint64(t.Flags))
	return b
}

func appendType(b []byte, t *Type) []byte {
	if t.ClassName != nil {
		b = appendVarintField(b, 1, uint64(*t.ClassName))
	}
	if t.TypeParameterName != nil {
		b = appendVarintField(b, 2, uint64(*t.TypeParameterName))
	}
	for _, a := range t.Arguments {
		b = appendMessageField(b, 3, appendArgument(nil, a))
	}
	if t.Nullable {
		b = appendVarintField(b, 4, 1)
	}
	if t.FlexibleID != nil {
		b = appendVarintField(b, 5, uint64(*t.FlexibleID))
	}
	if t.FlexibleUpper != nil {
		b = appendMessageField(b, 6, appendType(nil, t.FlexibleUpper))
	}
	return b
}

func appendArgument(b []byte, a *Argument) []byte {
	b = appendVarintField(b, 1, uint64(a.Projection))
	if a.Type != nil {
		b = appendMessageField(b, 2, appendType(nil, a.Type))
	}
	return b
}

func appendAnnotation(b []byte, a *Annotation) []byte {
	b = appendVarintField(b, 1, uint64(a.ClassName))
	for _, arg := range a.Arguments {
		b = appendMessageField(b, 2, appendAnnotationArgument(nil, arg))
	}
	return b
}

func appendAnnotationArgument(b []byte, a *AnnotationArgument) []byte {
	b = appendVarintField(b, 1, uint64(a.Name))
	if a.Value != nil {
		b = appendMessageField(b, 2, appendConstant(nil, a.Value))
	}
	return b
}

func appendConstant(b []byte, c *Constant) []byte {
	b = appendVarintField(b, 1, uint64(c.Kind))
	switch c.Kind {
	case ConstantInt:
		b = appendVarintField(b, 2, uint64(c.IntValue))
	case ConstantDouble:
		b = protowire.AppendTag(b, 3, protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, math.Float64bits(c.DoubleValue))
	case ConstantString:
		b = appendVarintField(b, 4, uint64(c.StringIndex))
	case ConstantBool:
		if c.BoolValue {
			b = appendVarintField(b, 5, 1)
		}
	}
	return b
}

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendMessageField(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}
