package deserialization

import (
	"github.com/loomlang/descriptor-loader/descriptors"
	"github.com/loomlang/descriptor-loader/metadata"
)

// TypeParameterScope is one nesting level of visible type parameters,
// chained by non-owning reference to the enclosing level. Scopes are
// never mutated once a child has been created from them.
type TypeParameterScope struct {
	parent *TypeParameterScope
	params []*descriptors.TypeParameter
}

// Resolve walks the chain innermost-first; the first scope containing a
// matching name wins, so inner parameters shadow outer ones.
func (s *TypeParameterScope) Resolve(name descriptors.Name) (*descriptors.TypeParameter, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		for _, p := range scope.params {
			if p.Name() == name {
				return p, true
			}
		}
	}
	return nil, false
}

// Context threads the state of one declaration's deserialization: the
// payload's name resolver, the declaration under construction, and the
// scope chain down from enclosing declarations. Contexts are ephemeral,
// never cached, and never shared across goroutines.
type Context struct {
	components  *Components
	names       *metadata.NameResolver
	declaration descriptors.Descriptor
	scope       *TypeParameterScope
}

// Components returns the session aggregate this context operates in.
func (ctx *Context) Components() *Components { return ctx.components }

// Names returns the active name resolver.
func (ctx *Context) Names() *metadata.NameResolver { return ctx.names }

// Declaration returns the declaration being materialized.
func (ctx *Context) Declaration() descriptors.Descriptor { return ctx.declaration }

// ChildContext creates the context for a declaration nested in this
// one, declaring protos as a new innermost scope level. The returned
// descriptors are created empty-bounded first and their upper bounds
// deserialized inside the child context, so bounds may reference the
// parameters themselves and anything the enclosing chain declares.
func (ctx *Context) ChildContext(declaration descriptors.Descriptor, protos []*metadata.TypeParameter) (*Context, []*descriptors.TypeParameter) {
	child, params := ctx.newChild(declaration, protos, ctx.names)
	child.fillBounds(protos, params)
	return child, params
}

// newChild builds the child context and its scope level without
// touching upper bounds. Creating parameters never recurses, so the
// class deserializer can publish its placeholder between newChild and
// fillBounds.
func (ctx *Context) newChild(declaration descriptors.Descriptor, protos []*metadata.TypeParameter, names *metadata.NameResolver) (*Context, []*descriptors.TypeParameter) {
	params := make([]*descriptors.TypeParameter, 0, len(protos))
	for i, proto := range protos {
		name := nameOr(names, proto.Name, "<error>")
		params = append(params, descriptors.NewTypeParameter(
			declaration, name, i, proto.Variance, proto.Flags.IsReified(),
		))
	}
	child := &Context{
		components:  ctx.components,
		names:       names,
		declaration: declaration,
		scope:       &TypeParameterScope{parent: ctx.scope, params: params},
	}
	return child, params
}

// fillBounds deserializes upper bounds inside the child context itself.
func (ctx *Context) fillBounds(protos []*metadata.TypeParameter, params []*descriptors.TypeParameter) {
	for i, proto := range protos {
		bounds := make([]descriptors.Type, 0, len(proto.UpperBounds))
		for _, b := range proto.UpperBounds {
			bounds = append(bounds, ctx.Type(b))
		}
		params[i].UpperBounds = bounds
	}
}

func nameOr(names *metadata.NameResolver, index uint32, fallback descriptors.Name) descriptors.Name {
	s, ok := names.String(index)
	if !ok {
		return fallback
	}
	return descriptors.Name(s)
}
