package deserialization

import (
	"github.com/loomlang/descriptor-loader/descriptors"
	"github.com/loomlang/descriptor-loader/metadata"
)

// MemberDeserializer reconstructs the callable members of a class or
// package facade. Members are decoded eagerly as part of constructing
// their container: a member list is always needed in full once the
// container is touched, so per-member memoization would buy nothing.
type MemberDeserializer struct {
	ctx *Context
}

// NewMemberDeserializer creates a member deserializer over ctx.
func NewMemberDeserializer(ctx *Context) *MemberDeserializer {
	return &MemberDeserializer{ctx: ctx}
}

// Function reconstructs a function declaration.
func (m *MemberDeserializer) Function(proto *metadata.Function) *descriptors.Function {
	fn := descriptors.NewFunction(m.ctx.declaration, nameOr(m.ctx.names, proto.Name, "<error>"))
	fn.Visibility = proto.Flags.Visibility()
	fn.Modality = proto.Flags.Modality()

	fnCtx, params := m.ctx.ChildContext(fn, proto.TypeParameters)
	fn.TypeParameters = params
	fn.ValueParameters = fnCtx.valueParameters(proto.ValueParameters)
	fn.ReturnType = fnCtx.Type(proto.ReturnType)
	fn.Annotations = m.ctx.components.annotations.LoadAnnotations(proto.Annotations, m.ctx.names)
	return fn
}

// Property reconstructs a property declaration.
func (m *MemberDeserializer) Property(proto *metadata.Property) *descriptors.Property {
	prop := descriptors.NewProperty(m.ctx.declaration, nameOr(m.ctx.names, proto.Name, "<error>"))
	prop.Visibility = proto.Flags.Visibility()
	prop.Modality = proto.Flags.Modality()
	prop.IsVar = proto.Flags.IsVar()
	prop.Type = m.ctx.Type(proto.Type)
	if proto.Constant != nil {
		if v, ok := m.ctx.components.constants.LoadConstant(proto.Constant, m.ctx.names); ok {
			prop.Constant = v
		}
	}
	prop.Annotations = m.ctx.components.annotations.LoadAnnotations(proto.Annotations, m.ctx.names)
	return prop
}

// Constructor reconstructs a constructor of class.
func (m *MemberDeserializer) Constructor(class *descriptors.Class, proto *metadata.Constructor) *descriptors.Constructor {
	ctor := descriptors.NewConstructor(class)
	ctor.Visibility = proto.Flags.Visibility()
	ctor.IsSecondary = proto.Flags.IsSecondary()
	ctor.ValueParameters = m.ctx.valueParameters(proto.ValueParameters)
	ctor.Annotations = m.ctx.components.annotations.LoadAnnotations(proto.Annotations, m.ctx.names)
	return ctor
}

func (ctx *Context) valueParameters(protos []*metadata.ValueParameter) []descriptors.ValueParameter {
	if len(protos) == 0 {
		return nil
	}
	params := make([]descriptors.ValueParameter, 0, len(protos))
	for _, p := range protos {
		params = append(params, descriptors.ValueParameter{
			Name:     nameOr(ctx.names, p.Name, "<error>"),
			Type:     ctx.Type(p.Type),
			IsVararg: p.Flags.IsVararg(),
		})
	}
	return params
}
