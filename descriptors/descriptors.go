package descriptors

import "strings"

// Name is a simple declaration name, never qualified.
type Name string

// Descriptor is implemented by every named symbol reconstructed from
// compiled metadata.
type Descriptor interface {
	// Name returns the declaration's simple name.
	Name() Name
	// Parent returns the enclosing declaration, or nil for modules.
	Parent() Descriptor
}

// Module is the root of a descriptor tree: the module whose compilation
// session owns every descriptor created from it.
type Module struct {
	name Name
}

// NewModule creates a module descriptor.
func NewModule(name Name) *Module {
	return &Module{name: name}
}

func (m *Module) Name() Name         { return m.name }
func (m *Module) Parent() Descriptor { return nil }

// PackageFragment is one module's view of a package.
type PackageFragment struct {
	module *Module
	fqName string // slash-separated, empty for the root package
}

// NewPackageFragment creates a package fragment descriptor.
func NewPackageFragment(module *Module, fqName string) *PackageFragment {
	return &PackageFragment{module: module, fqName: fqName}
}

func (p *PackageFragment) Name() Name {
	if p.fqName == "" {
		return ""
	}
	if slash := strings.LastIndexByte(p.fqName, '/'); slash >= 0 {
		return Name(p.fqName[slash+1:])
	}
	return Name(p.fqName)
}

func (p *PackageFragment) Parent() Descriptor { return p.module }

// FQName returns the slash-separated package name.
func (p *PackageFragment) FQName() string { return p.fqName }

// Module returns the owning module.
func (p *PackageFragment) Module() *Module { return p.module }
