package metadata

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Wire schema, protobuf wire format. All message fields are length
// delimited unless noted.
//
//	ClassData:      1 strings (repeated), 2 class
//	PackageData:    1 strings (repeated), 2 package
//	Class:          1 fq_name, 2 flags, 3 type_parameters, 4 supertypes,
//	                5 constructors, 6 functions, 7 properties,
//	                8 nested_names, 9 enum_entries, 10 annotations
//	Package:        1 functions, 2 properties
//	Function:       1 name, 2 flags, 3 type_parameters,
//	                4 value_parameters, 5 return_type, 6 annotations
//	Property:       1 name, 2 flags, 3 type, 4 constant, 5 annotations
//	Constructor:    1 flags, 2 value_parameters, 3 annotations
//	ValueParameter: 1 name, 2 flags, 3 type
//	TypeParameter:  1 name, 2 variance, 3 upper_bounds, 4 flags
//	Type:           1 class_name, 2 type_parameter_name, 3 arguments,
//	                4 nullable, 5 flexible_id, 6 flexible_upper
//	Argument:       1 projection, 2 type
//	Annotation:     1 class_name, 2 arguments
//	AnnotationArg:  1 name, 2 value
//	Constant:       1 kind, 2 int, 3 double (fixed64), 4 string, 5 bool

// ReadClassData decodes a class payload.
func ReadClassData(payload []byte) (*ClassData, error) {
	strings, body, err := splitPayload(payload)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, fmt.Errorf("class payload: missing class record")
	}
	class, err := parseClass(body)
	if err != nil {
		return nil, err
	}
	return &ClassData{Class: class, Names: NewNameResolver(strings)}, nil
}

// ReadPackageData decodes a package facade payload.
func ReadPackageData(payload []byte) (*PackageData, error) {
	strings, body, err := splitPayload(payload)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, fmt.Errorf("package payload: missing package record")
	}
	pkg, err := parsePackage(body)
	if err != nil {
		return nil, err
	}
	return &PackageData{Package: pkg, Names: NewNameResolver(strings)}, nil
}

// splitPayload separates the string table from the root message body.
func splitPayload(b []byte) (strings []string, body []byte, err error) {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, nil, wireErr("payload", n)
		}
		b = b[n:]
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, nil, wireErr("string table", n)
			}
			strings = append(strings, string(v))
			b = b[n:]
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, nil, wireErr("root record", n)
			}
			body = v
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, nil, wireErr("payload", n)
			}
			b = b[n:]
		}
	}
	return strings, body, nil
}

func parseClass(b []byte) (*Class, error) {
	c := &Class{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, wireErr("class", n)
		}
		b = b[n:]
		var err error
		switch num {
		case 1:
			b, err = readUint32(b, typ, "class fq_name", &c.FqName)
		case 2:
			var raw uint32
			b, err = readUint32(b, typ, "class flags", &raw)
			c.Flags = Flags(raw)
		case 3:
			b, err = readMessage(b, typ, "type parameter", parseTypeParameter, &c.TypeParameters)
		case 4:
			b, err = readMessage(b, typ, "supertype", parseType, &c.Supertypes)
		case 5:
			b, err = readMessage(b, typ, "constructor", parseConstructor, &c.Constructors)
		case 6:
			b, err = readMessage(b, typ, "function", parseFunction, &c.Functions)
		case 7:
			b, err = readMessage(b, typ, "property", parseProperty, &c.Properties)
		case 8:
			b, err = readUint32List(b, typ, "nested name", &c.NestedNames)
		case 9:
			b, err = readUint32List(b, typ, "enum entry", &c.EnumEntryNames)
		case 10:
			b, err = readMessage(b, typ, "annotation", parseAnnotation, &c.Annotations)
		default:
			b, err = skipField(b, num, typ, "class")
		}
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}

func parsePackage(b []byte) (*Package, error) {
	p := &Package{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, wireErr("package", n)
		}
		b = b[n:]
		var err error
		switch num {
		case 1:
			b, err = readMessage(b, typ, "function", parseFunction, &p.Functions)
		case 2:
			b, err = readMessage(b, typ, "property", parseProperty, &p.Properties)
		default:
			b, err = skipField(b, num, typ, "package")
		}
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

func parseFunction(b []byte) (*Function, error) {
	f := &Function{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, wireErr("function", n)
		}
		b = b[n:]
		var err error
		switch num {
		case 1:
			b, err = readUint32(b, typ, "function name", &f.Name)
		case 2:
			var raw uint32
			b, err = readUint32(b, typ, "function flags", &raw)
			f.Flags = Flags(raw)
		case 3:
			b, err = readMessage(b, typ, "type parameter", parseTypeParameter, &f.TypeParameters)
		case 4:
			b, err = readMessage(b, typ, "value parameter", parseValueParameter, &f.ValueParameters)
		case 5:
			b, err = readSingleMessage(b, typ, "return type", parseType, &f.ReturnType)
		case 6:
			b, err = readMessage(b, typ, "annotation", parseAnnotation, &f.Annotations)
		default:
			b, err = skipField(b, num, typ, "function")
		}
		if err != nil {
			return nil, err
		}
	}
	return f, nil
}

func parseProperty(b []byte) (*Property, error) {
	p := &Property{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, wireErr("property", n)
		}
		b = b[n:]
		var err error
		switch num {
		case 1:
			b, err = readUint32(b, typ, "property name", &p.Name)
		case 2:
			var raw uint32
			b, err = readUint32(b, typ, "property flags", &raw)
			p.Flags = Flags(raw)
		case 3:
			b, err = readSingleMessage(b, typ, "property type", parseType, &p.Type)
		case 4:
			b, err = readSingleMessage(b, typ, "constant", parseConstant, &p.Constant)
		case 5:
			b, err = readMessage(b, typ, "annotation", parseAnnotation, &p.Annotations)
		default:
			b, err = skipField(b, num, typ, "property")
		}
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

func parseConstructor(b []byte) (*Constructor, error) {
	c := &Constructor{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, wireErr("constructor", n)
		}
		b = b[n:]
		var err error
		switch num {
		case 1:
			var raw uint32
			b, err = readUint32(b, typ, "constructor flags", &raw)
			c.Flags = Flags(raw)
		case 2:
			b, err = readMessage(b, typ, "value parameter", parseValueParameter, &c.ValueParameters)
		case 3:
			b, err = readMessage(b, typ, "annotation", parseAnnotation, &c.Annotations)
		default:
			b, err = skipField(b, num, typ, "constructor")
		}
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}

func parseValueParameter(b []byte) (*ValueParameter, error) {
	v := &ValueParameter{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, wireErr("value parameter", n)
		}
		b = b[n:]
		var err error
		switch num {
		case 1:
			b, err = readUint32(b, typ, "parameter name", &v.Name)
		case 2:
			var raw uint32
			b, err = readUint32(b, typ, "parameter flags", &raw)
			v.Flags = Flags(raw)
		case 3:
			b, err = readSingleMessage(b, typ, "parameter type", parseType, &v.Type)
		default:
			b, err = skipField(b, num, typ, "value parameter")
		}
		if err != nil {
			return nil, err
		}
	}
	return v, nil
}

func parseTypeParameter(b []byte) (*TypeParameter, error) {
	t := &TypeParameter{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, wireErr("type parameter", n)
		}
		b = b[n:]
		var err error
		switch num {
		case 1:
			b, err = readUint32(b, typ, "type parameter name", &t.Name)
		case 2:
			var raw uint32
			b, err = readUint32(b, typ, "variance", &raw)
			t.Variance = Variance(raw)
		case 3:
			b, err = readMessage(b, typ, "upper bound", parseType, &t.UpperBounds)
		case 4:
			var raw uint32
			b, err = readUint32(b, typ, "type parameter flags", &raw)
			t.Flags = Flags(raw)
		default:
			b, err = skipField(b, num, typ, "type parameter")
		}
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}

func parseType(b []byte) (*Type, error) {
	t := &Type{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, wireErr("type", n)
		}
		b = b[n:]
		var err error
		switch num {
		case 1:
			var v uint32
			b, err = readUint32(b, typ, "type class name", &v)
			t.ClassName = &v
		case 2:
			var v uint32
			b, err = readUint32(b, typ, "type parameter ref", &v)
			t.TypeParameterName = &v
		case 3:
			b, err = readMessage(b, typ, "type argument", parseArgument, &t.Arguments)
		case 4:
			b, err = readBool(b, typ, "nullable", &t.Nullable)
		case 5:
			var v uint32
			b, err = readUint32(b, typ, "flexible id", &v)
			t.FlexibleID = &v
		case 6:
			b, err = readSingleMessage(b, typ, "flexible upper bound", parseType, &t.FlexibleUpper)
		default:
			b, err = skipField(b, num, typ, "type")
		}
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}

func parseArgument(b []byte) (*Argument, error) {
	a := &Argument{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, wireErr("type argument", n)
		}
		b = b[n:]
		var err error
		switch num {
		case 1:
			var raw uint32
			b, err = readUint32(b, typ, "projection", &raw)
			a.Projection = Projection(raw)
		case 2:
			b, err = readSingleMessage(b, typ, "argument type", parseType, &a.Type)
		default:
			b, err = skipField(b, num, typ, "type argument")
		}
		if err != nil {
			return nil, err
		}
	}
	return a, nil
}

func parseAnnotation(b []byte) (*Annotation, error) {
	a := &Annotation{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, wireErr("annotation", n)
		}
		b = b[n:]
		var err error
		switch num {
		case 1:
			b, err = readUint32(b, typ, "annotation class", &a.ClassName)
		case 2:
			b, err = readMessage(b, typ, "annotation argument", parseAnnotationArgument, &a.Arguments)
		default:
			b, err = skipField(b, num, typ, "annotation")
		}
		if err != nil {
			return nil, err
		}
	}
	return a, nil
}

func parseAnnotationArgument(b []byte) (*AnnotationArgument, error) {
	a := &AnnotationArgument{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, wireErr("annotation argument", n)
		}
		b = b[n:]
		var err error
		switch num {
		case 1:
			b, err = readUint32(b, typ, "argument name", &a.Name)
		case 2:
			b, err = readSingleMessage(b, typ, "argument value", parseConstant, &a.Value)
		default:
			b, err = skipField(b, num, typ, "annotation argument")
		}
		if err != nil {
			return nil, err
		}
	}
	return a, nil
}

func parseConstant(b []byte) (*Constant, error) {
	c := &Constant{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, wireErr("constant", n)
		}
		b = b[n:]
		var err error
		switch num {
		case 1:
			var raw uint32
			b, err = readUint32(b, typ, "constant kind", &raw)
			c.Kind = ConstantKind(raw)
		case 2:
			if typ != protowire.VarintType {
				return nil, fmt.Errorf("constant int: unexpected wire type %d", typ)
			}
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, wireErr("constant int", n)
			}
			c.IntValue = int64(v)
			b = b[n:]
		case 3:
			if typ != protowire.Fixed64Type {
				return nil, fmt.Errorf("constant double: unexpected wire type %d", typ)
			}
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return nil, wireErr("constant double", n)
			}
			c.DoubleValue = fixed64ToFloat(v)
			b = b[n:]
		case 4:
			b, err = readUint32(b, typ, "constant string", &c.StringIndex)
		case 5:
			b, err = readBool(b, typ, "constant bool", &c.BoolValue)
		default:
			b, err = skipField(b, num, typ, "constant")
		}
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}

func readUint32(b []byte, typ protowire.Type, what string, out *uint32) ([]byte, error) {
	if typ != protowire.VarintType {
		return nil, fmt.Errorf("%s: unexpected wire type %d", what, typ)
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return nil, wireErr(what, n)
	}
	if v > 0xFFFFFFFF {
		return nil, fmt.Errorf("%s: value %d overflows uint32", what, v)
	}
	*out = uint32(v)
	return b[n:], nil
}

func readBool(b []byte, typ protowire.Type, what string, out *bool) ([]byte, error) {
	var v uint32
	rest, err := readUint32(b, typ, what, &v)
	if err != nil {
		return nil, err
	}
	*out = v != 0
	return rest, nil
}

// readUint32List accepts both packed and unpacked encodings.
func readUint32List(b []byte, typ protowire.Type, what string, out *[]uint32) ([]byte, error) {
	switch typ {
	case protowire.VarintType:
		var v uint32
		rest, err := readUint32(b, typ, what, &v)
		if err != nil {
			return nil, err
		}
		*out = append(*out, v)
		return rest, nil
	case protowire.BytesType:
		packed, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return nil, wireErr(what, n)
		}
		for len(packed) > 0 {
			v, m := protowire.ConsumeVarint(packed)
			if m < 0 {
				return nil, wireErr(what, m)
			}
			if v > 0xFFFFFFFF {
				return nil, fmt.Errorf("%s: value %d overflows uint32", what, v)
			}
			*out = append(*out, uint32(v))
			packed = packed[m:]
		}
		return b[n:], nil
	default:
		return nil, fmt.Errorf("%s: unexpected wire type %d", what, typ)
	}
}

func readMessage[T any](b []byte, typ protowire.Type, what string, parse func([]byte) (*T, error), out *[]*T) ([]byte, error) {
	var msg *T
	rest, err := readSingleMessage(b, typ, what, parse, &msg)
	if err != nil {
		return nil, err
	}
	*out = append(*out, msg)
	return rest, nil
}

func readSingleMessage[T any](b []byte, typ protowire.Type, what string, parse func([]byte) (*T, error), out **T) ([]byte, error) {
	if typ != protowire.BytesType {
		return nil, fmt.Errorf("%s: unexpected wire type %d", what, typ)
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, wireErr(what, n)
	}
	msg, err := parse(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	*out = msg
	return b[n:], nil
}

func skipField(b []byte, num protowire.Number, typ protowire.Type, in string) ([]byte, error) {
	n := protowire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return nil, wireErr(in, n)
	}
	return b[n:], nil
}

func wireErr(what string, n int) error {
	return fmt.Errorf("%s: %w", what, protowire.ParseError(n))
}

func fixed64ToFloat(v uint64) float64 {
	return math.Float64frombits(v)
}
