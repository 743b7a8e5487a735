package deserialization

import (
	"github.com/loomlang/descriptor-loader/descriptors"
	"github.com/loomlang/descriptor-loader/errors"
	"github.com/loomlang/descriptor-loader/metadata"
	"go.uber.org/zap"
)

// builtinAnnotationLoader translates serialized annotation records
// directly, dropping arguments whose names or values do not resolve.
type builtinAnnotationLoader struct{}

func (builtinAnnotationLoader) LoadAnnotations(annotations []*metadata.Annotation, names *metadata.NameResolver) []descriptors.Annotation {
	if len(annotations) == 0 {
		return nil
	}
	out := make([]descriptors.Annotation, 0, len(annotations))
	for _, proto := range annotations {
		id, ok := names.ClassID(proto.ClassName)
		if !ok {
			continue
		}
		anno := descriptors.Annotation{ClassID: id}
		if len(proto.Arguments) > 0 {
			anno.Arguments = make(map[descriptors.Name]descriptors.ConstantValue, len(proto.Arguments))
			for _, arg := range proto.Arguments {
				name, ok := names.String(arg.Name)
				if !ok || arg.Value == nil {
					continue
				}
				if v, ok := (builtinConstantLoader{}).LoadConstant(arg.Value, names); ok {
					anno.Arguments[descriptors.Name(name)] = v
				}
			}
		}
		out = append(out, anno)
	}
	return out
}

// builtinConstantLoader maps serialized constants onto Go values.
type builtinConstantLoader struct{}

func (builtinConstantLoader) LoadConstant(c *metadata.Constant, names *metadata.NameResolver) (descriptors.ConstantValue, bool) {
	switch c.Kind {
	case metadata.ConstantInt:
		return c.IntValue, true
	case metadata.ConstantDouble:
		return c.DoubleValue, true
	case metadata.ConstantString:
		s, ok := names.String(c.StringIndex)
		if !ok {
			return nil, false
		}
		return s, true
	case metadata.ConstantBool:
		return c.BoolValue, true
	default:
		Logger().Debug("constant dropped",
			zap.Error(errors.InvalidEnum("", nil, uint32(c.Kind), "constant kind")),
		)
		return nil, false
	}
}

// noFlexibleTypes rejects every capability id; flexible references
// degrade to error types unless a factory is installed.
type noFlexibleTypes struct{}

func (noFlexibleTypes) Create(id string, lower, upper descriptors.Type) (descriptors.Type, bool) {
	return descriptors.Type{}, false
}
