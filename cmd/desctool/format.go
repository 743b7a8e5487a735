package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/loomlang/descriptor-loader/descriptors"
)

func formatClass(c *descriptors.Class) string {
	var b strings.Builder

	for _, a := range c.Annotations {
		b.WriteString(formatAnnotation(a))
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "%s %s %s %s%s",
		c.Visibility, c.Modality, c.Kind, c.ID(), formatTypeParams(c.TypeParameters))
	if len(c.Supertypes) > 0 {
		b.WriteString(" : ")
		b.WriteString(joinTypes(c.Supertypes))
	}
	b.WriteByte('\n')

	for _, ctor := range c.Constructors {
		secondary := ""
		if ctor.IsSecondary {
			secondary = "secondary "
		}
		fmt.Fprintf(&b, "  %s %sconstructor%s\n",
			ctor.Visibility, secondary, formatValueParams(ctor.ValueParameters))
	}
	for _, f := range c.Functions {
		fmt.Fprintf(&b, "  %s\n", formatFunction(f))
	}
	for _, p := range c.Properties {
		fmt.Fprintf(&b, "  %s\n", formatProperty(p))
	}

	if len(c.EnumEntries) > 0 {
		fmt.Fprintf(&b, "  entries: %s\n", joinNames(c.EnumEntries))
	}
	if len(c.NestedNames) > 0 {
		fmt.Fprintf(&b, "  nested: %s\n", joinNames(c.NestedNames))
	}
	return b.String()
}

func formatFunction(f *descriptors.Function) string {
	return fmt.Sprintf("%s %s fun %s%s%s: %s",
		f.Visibility, f.Modality, f.Name(),
		formatTypeParams(f.TypeParameters),
		formatValueParams(f.ValueParameters),
		f.ReturnType)
}

func formatProperty(p *descriptors.Property) string {
	keyword := "val"
	if p.IsVar {
		keyword = "var"
	}
	s := fmt.Sprintf("%s %s %s %s: %s", p.Visibility, p.Modality, keyword, p.Name(), p.Type)
	if p.Constant != nil {
		s += fmt.Sprintf(" = %v", p.Constant)
	}
	return s
}

func formatTypeParams(params []*descriptors.TypeParameter) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, p := range params {
		var s strings.Builder
		if v := p.Variance.String(); v != "" {
			s.WriteString(v)
			s.WriteByte(' ')
		}
		if p.Reified {
			s.WriteString("reified ")
		}
		s.WriteString(string(p.Name()))
		if len(p.UpperBounds) > 0 {
			s.WriteString(": ")
			s.WriteString(joinTypes(p.UpperBounds))
		}
		parts[i] = s.String()
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func formatValueParams(params []descriptors.ValueParameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		vararg := ""
		if p.IsVararg {
			vararg = "vararg "
		}
		parts[i] = fmt.Sprintf("%s%s: %s", vararg, p.Name, p.Type)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func formatAnnotation(a descriptors.Annotation) string {
	if len(a.Arguments) == 0 {
		return "@" + a.ClassID.String()
	}
	names := make([]string, 0, len(a.Arguments))
	for name := range a.Arguments {
		names = append(names, string(name))
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s = %v", name, a.Arguments[descriptors.Name(name)])
	}
	return "@" + a.ClassID.String() + "(" + strings.Join(parts, ", ") + ")"
}

func memberSignature(member descriptors.Descriptor) string {
	switch m := member.(type) {
	case *descriptors.Function:
		return formatFunction(m)
	case *descriptors.Property:
		return formatProperty(m)
	default:
		return string(member.Name())
	}
}

func joinTypes(types []descriptors.Type) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

func joinNames(names []descriptors.Name) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return strings.Join(parts, ", ")
}
