package deserialization

import (
	"sync/atomic"

	"github.com/loomlang/descriptor-loader/descriptors"
	"github.com/loomlang/descriptor-loader/metadata"
)

// fakeClass is an in-memory BinaryClass handle for tests.
type fakeClass struct {
	id     metadata.ClassID
	header metadata.Header
}

func newFakeClass(id string, kind metadata.Kind, version metadata.ABIVersion, payload []byte) *fakeClass {
	return &fakeClass{
		id:     metadata.ParseClassID(id),
		header: metadata.Header{Kind: kind, Version: version, Payload: payload},
	}
}

func (f *fakeClass) ID() metadata.ClassID         { return f.id }
func (f *fakeClass) ClassHeader() metadata.Header { return f.header }

// mapFinder serves pre-built class data and counts lookups.
type mapFinder struct {
	data  map[metadata.ClassID]*metadata.ClassData
	calls atomic.Int64
}

func newMapFinder() *mapFinder {
	return &mapFinder{data: make(map[metadata.ClassID]*metadata.ClassData)}
}

func (m *mapFinder) put(id string, data *metadata.ClassData) {
	m.data[metadata.ParseClassID(id)] = data
}

func (m *mapFinder) FindClassData(id metadata.ClassID) (*metadata.ClassData, bool) {
	m.calls.Add(1)
	d, ok := m.data[id]
	return d, ok
}

// recordingReporter captures reports for assertion.
type recordingReporter struct {
	incompatible []metadata.ABIVersion
	loadErrors   []error
}

func (r *recordingReporter) ReportIncompatibleABIVersion(class metadata.BinaryClass, found metadata.ABIVersion) {
	r.incompatible = append(r.incompatible, found)
}

func (r *recordingReporter) ReportLoadingError(class metadata.BinaryClass, err error) {
	r.loadErrors = append(r.loadErrors, err)
}

func testFragments(module *descriptors.Module) PackageFragmentProviderFunc {
	cache := make(map[string]*descriptors.PackageFragment)
	return func(fqName string) (*descriptors.PackageFragment, bool) {
		if f, ok := cache[fqName]; ok {
			return f, true
		}
		f := descriptors.NewPackageFragment(module, fqName)
		cache[fqName] = f
		return f, true
	}
}

func newTestComponents(finder ClassDataFinder, opts ...Option) *Components {
	module := descriptors.NewModule("test")
	return NewComponents(module, finder, testFragments(module), opts...)
}

func classData(strings []string, class *metadata.Class) *metadata.ClassData {
	return &metadata.ClassData{Class: class, Names: metadata.NewNameResolver(strings)}
}

func u32(v uint32) *uint32 { return &v }
