package deserialization

import (
	"github.com/loomlang/descriptor-loader/descriptors"
	"github.com/loomlang/descriptor-loader/metadata"
)

// ClassDataFinder maps a class identifier to its decoded metadata.
// Implementations typically sit on top of classpath discovery.
type ClassDataFinder interface {
	FindClassData(id metadata.ClassID) (*metadata.ClassData, bool)
}

// ClassDataFinderFunc adapts a function to ClassDataFinder.
type ClassDataFinderFunc func(id metadata.ClassID) (*metadata.ClassData, bool)

func (f ClassDataFinderFunc) FindClassData(id metadata.ClassID) (*metadata.ClassData, bool) {
	return f(id)
}

// PackageFragmentProvider maps a package name to the module's fragment
// descriptor for it.
type PackageFragmentProvider interface {
	PackageFragment(fqName string) (*descriptors.PackageFragment, bool)
}

// PackageFragmentProviderFunc adapts a function to PackageFragmentProvider.
type PackageFragmentProviderFunc func(fqName string) (*descriptors.PackageFragment, bool)

func (f PackageFragmentProviderFunc) PackageFragment(fqName string) (*descriptors.PackageFragment, bool) {
	return f(fqName)
}

// AnnotationLoader turns serialized annotation records into descriptor
// annotations. Treated as an opaque service by the deserializers.
type AnnotationLoader interface {
	LoadAnnotations(annotations []*metadata.Annotation, names *metadata.NameResolver) []descriptors.Annotation
}

// ConstantLoader turns a serialized constant into a compile-time value.
type ConstantLoader interface {
	LoadConstant(c *metadata.Constant, names *metadata.NameResolver) (descriptors.ConstantValue, bool)
}

// FlexibleTypeFactory builds a flexible type from its lower and upper
// bounds. Unknown capability ids yield ok=false and the reference
// degrades to an error type.
type FlexibleTypeFactory interface {
	Create(id string, lower, upper descriptors.Type) (descriptors.Type, bool)
}

// ErrorReporter receives structured notifications of findings that are
// worth surfacing but never interrupt control flow.
type ErrorReporter interface {
	// ReportIncompatibleABIVersion is called once per resolution attempt
	// against an artifact this reader cannot decode.
	ReportIncompatibleABIVersion(class metadata.BinaryClass, found metadata.ABIVersion)
	// ReportLoadingError is called when an otherwise compatible,
	// correctly kinded payload fails to decode.
	ReportLoadingError(class metadata.BinaryClass, err error)
}

// Components bundles the shared collaborators every decode operation
// needs. Constructed once per compilation session; read-only after
// construction and safe for unsynchronized concurrent use.
type Components struct {
	module      *descriptors.Module
	finder      ClassDataFinder
	fragments   PackageFragmentProvider
	annotations AnnotationLoader
	constants   ConstantLoader
	flexible    FlexibleTypeFactory
	classes     *ClassDeserializer
}

// Option configures optional collaborators on Components.
type Option func(*Components)

// WithAnnotationLoader replaces the built-in annotation loader.
func WithAnnotationLoader(l AnnotationLoader) Option {
	return func(c *Components) { c.annotations = l }
}

// WithConstantLoader replaces the built-in constant loader.
func WithConstantLoader(l ConstantLoader) Option {
	return func(c *Components) { c.constants = l }
}

// WithFlexibleTypeFactory installs a flexible-type capability resolver.
func WithFlexibleTypeFactory(f FlexibleTypeFactory) Option {
	return func(c *Components) { c.flexible = f }
}

// NewComponents creates the session's component aggregate.
func NewComponents(module *descriptors.Module, finder ClassDataFinder, fragments PackageFragmentProvider, opts ...Option) *Components {
	c := &Components{
		module:      module,
		finder:      finder,
		fragments:   fragments,
		annotations: builtinAnnotationLoader{},
		constants:   builtinConstantLoader{},
		flexible:    noFlexibleTypes{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.classes = newClassDeserializer(c)
	return c
}

// Module returns the owning module descriptor.
func (c *Components) Module() *descriptors.Module { return c.module }

// Classes returns the session's class deserializer.
func (c *Components) Classes() *ClassDeserializer { return c.classes }

// DeserializeClass resolves an identifier through the memoized class
// deserializer. Used for references to classes not yet seen, such as a
// supertype named inside another class's metadata.
func (c *Components) DeserializeClass(id metadata.ClassID) (*descriptors.Class, bool) {
	return c.classes.DeserializeClass(id)
}

// CreateContext builds the root context for declarations owned directly
// by a package fragment.
func (c *Components) CreateContext(fragment *descriptors.PackageFragment, names *metadata.NameResolver) *Context {
	return &Context{
		components:  c,
		names:       names,
		declaration: fragment,
	}
}
