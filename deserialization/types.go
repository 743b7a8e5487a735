package deserialization

import (
	"github.com/loomlang/descriptor-loader/descriptors"
	"github.com/loomlang/descriptor-loader/errors"
	"github.com/loomlang/descriptor-loader/internal/observability"
	"github.com/loomlang/descriptor-loader/metadata"
	"go.uber.org/zap"
)

// Type reconstructs a type expression from its serialized form.
// Unresolvable references degrade to error types so that one broken
// dependency never fails the declaration containing the reference.
func (ctx *Context) Type(proto *metadata.Type) descriptors.Type {
	if proto == nil {
		return ctx.errorType(errors.New(errors.PhaseResolve, errors.KindInvalidData).
			Entity(ctx.entityID()).
			Detail("missing type").
			Build())
	}
	if proto.FlexibleUpper != nil {
		return ctx.flexibleType(proto)
	}
	return ctx.simpleType(proto)
}

func (ctx *Context) flexibleType(proto *metadata.Type) descriptors.Type {
	var id string
	if proto.FlexibleID != nil {
		if s, ok := ctx.names.String(*proto.FlexibleID); ok {
			id = s
		}
	}
	lower := ctx.simpleType(proto)
	upper := ctx.Type(proto.FlexibleUpper)
	if t, ok := ctx.components.flexible.Create(id, lower, upper); ok {
		return t
	}
	return ctx.errorType(errors.New(errors.PhaseResolve, errors.KindInvalidData).
		Entity(ctx.entityID()).
		Detail("unknown flexible type capability %q", id).
		Build())
}

func (ctx *Context) simpleType(proto *metadata.Type) descriptors.Type {
	switch {
	case proto.ClassName != nil:
		id, ok := ctx.names.ClassID(*proto.ClassName)
		if !ok {
			return ctx.errorType(errors.OutOfBounds(ctx.entityID(), nil, *proto.ClassName, ctx.names.Len()))
		}
		class, ok := ctx.components.DeserializeClass(id)
		if !ok {
			return ctx.errorType(errors.DanglingReference(ctx.entityID(), nil, id.String()))
		}
		return descriptors.Type{
			Class:     class,
			Arguments: ctx.typeArguments(proto.Arguments),
			Nullable:  proto.Nullable,
		}

	case proto.TypeParameterName != nil:
		name, ok := ctx.names.String(*proto.TypeParameterName)
		if !ok {
			return ctx.errorType(errors.OutOfBounds(ctx.entityID(), nil, *proto.TypeParameterName, ctx.names.Len()))
		}
		param, ok := ctx.scope.Resolve(descriptors.Name(name))
		if !ok {
			return ctx.errorType(errors.DanglingReference(ctx.entityID(), nil, name))
		}
		return descriptors.Type{
			Parameter: param,
			Arguments: ctx.typeArguments(proto.Arguments),
			Nullable:  proto.Nullable,
		}

	default:
		return ctx.errorType(errors.New(errors.PhaseResolve, errors.KindInvalidData).
			Entity(ctx.entityID()).
			Detail("type carries neither class nor type parameter reference").
			Build())
	}
}

func (ctx *Context) typeArguments(protos []*metadata.Argument) []descriptors.TypeProjection {
	if len(protos) == 0 {
		return nil
	}
	args := make([]descriptors.TypeProjection, 0, len(protos))
	for _, p := range protos {
		if p.Projection == metadata.ProjectionStar || p.Type == nil {
			args = append(args, descriptors.TypeProjection{Star: true})
			continue
		}
		args = append(args, descriptors.TypeProjection{
			Variance: projectionVariance(p.Projection),
			Type:     ctx.Type(p.Type),
		})
	}
	return args
}

func projectionVariance(p metadata.Projection) metadata.Variance {
	switch p {
	case metadata.ProjectionIn:
		return metadata.VarianceIn
	case metadata.ProjectionOut:
		return metadata.VarianceOut
	default:
		return metadata.VarianceInvariant
	}
}

func (ctx *Context) errorType(err *errors.Error) descriptors.Type {
	observability.ErrorTypes.Inc()
	Logger().Debug("type reference degraded to error type", zap.Error(err))
	return descriptors.ErrorType(err.Error())
}

func (ctx *Context) entityID() string {
	if ctx.declaration == nil {
		return ""
	}
	return string(ctx.declaration.Name())
}
