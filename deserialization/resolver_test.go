package deserialization

import (
	"strings"
	"testing"

	"github.com/loomlang/descriptor-loader/metadata"
)

// greeterPayload builds a small but complete class payload through the
// real wire encoder.
func greeterPayload() []byte {
	table := metadata.NewStringTable()
	fq := table.Ref("com/example/Greeter")
	greet := table.Ref("greet")
	str := table.Ref("loom/String")

	return metadata.MarshalClassPayload(table, &metadata.Class{
		FqName: fq,
		Flags:  metadata.PackFlags(metadata.ClassKindClass, metadata.VisibilityPublic, metadata.ModalityFinal),
		Functions: []*metadata.Function{
			{Name: greet, ReturnType: &metadata.Type{ClassName: &str}},
		},
	})
}

func TestResolveClassReturnsIdenticalDescriptor(t *testing.T) {
	finder := newMapFinder()
	finder.put("loom/String", classData(
		[]string{"loom/String"},
		&metadata.Class{FqName: 0},
	))
	r := NewResolver(newTestComponents(finder), &recordingReporter{})

	handle := newFakeClass("com/example/Greeter", metadata.KindClass, metadata.CurrentABIVersion, greeterPayload())

	first, ok := r.ResolveClass(handle)
	if !ok || first == nil {
		t.Fatal("first resolution failed")
	}
	second, ok := r.ResolveClass(handle)
	if !ok {
		t.Fatal("second resolution failed")
	}
	if first != second {
		t.Error("repeated resolution returned a different instance")
	}

	if first.Name() != "Greeter" {
		t.Errorf("name: got %q", first.Name())
	}
	if len(first.Functions) != 1 {
		t.Fatalf("functions: got %d", len(first.Functions))
	}
	rt := first.Functions[0].ReturnType
	if rt.IsError() || rt.Class == nil || rt.Class.ID().String() != "loom/String" {
		t.Errorf("return type: got %v", rt)
	}
}

func TestResolveClassIncompatibleVersion(t *testing.T) {
	reporter := &recordingReporter{}
	r := NewResolver(newTestComponents(newMapFinder()), reporter)

	found := metadata.ABIVersion{Major: 2, Minor: 0, Patch: 0}
	handle := newFakeClass("com/example/Future", metadata.KindClass, found, greeterPayload())

	if _, ok := r.ResolveClass(handle); ok {
		t.Fatal("incompatible artifact resolved")
	}
	if len(reporter.incompatible) != 1 {
		t.Fatalf("got %d incompatibility reports, want 1", len(reporter.incompatible))
	}
	if reporter.incompatible[0] != found {
		t.Errorf("reported version: got %v, want %v", reporter.incompatible[0], found)
	}

	// Each attempt against the artifact reports again.
	r.ResolveClass(handle)
	if len(reporter.incompatible) != 2 {
		t.Errorf("got %d incompatibility reports after retry, want 2", len(reporter.incompatible))
	}
	if len(reporter.loadErrors) != 0 {
		t.Errorf("unexpected loading errors: %v", reporter.loadErrors)
	}
}

func TestResolveClassVersionCheckedBeforeKind(t *testing.T) {
	reporter := &recordingReporter{}
	r := NewResolver(newTestComponents(newMapFinder()), reporter)

	// Incompatible version and wrong kind at once: the version finding
	// must still be reported.
	handle := newFakeClass("com/example/Facade",
		metadata.KindPackageFacade,
		metadata.ABIVersion{Major: 2, Minor: 0, Patch: 0},
		greeterPayload())

	if _, ok := r.ResolveClass(handle); ok {
		t.Fatal("resolved")
	}
	if len(reporter.incompatible) != 1 {
		t.Errorf("got %d incompatibility reports, want 1", len(reporter.incompatible))
	}
}

func TestResolveClassKindMismatchIsSilent(t *testing.T) {
	reporter := &recordingReporter{}
	r := NewResolver(newTestComponents(newMapFinder()), reporter)

	handle := newFakeClass("com/example/Facade", metadata.KindPackageFacade, metadata.CurrentABIVersion, greeterPayload())

	if _, ok := r.ResolveClass(handle); ok {
		t.Fatal("facade handle resolved as a class")
	}
	if len(reporter.incompatible) != 0 || len(reporter.loadErrors) != 0 {
		t.Error("kind mismatch on a compatible artifact must not be reported")
	}
}

func TestResolveClassEmptyPayload(t *testing.T) {
	reporter := &recordingReporter{}
	r := NewResolver(newTestComponents(newMapFinder()), reporter)

	handle := newFakeClass("com/example/Empty", metadata.KindClass, metadata.CurrentABIVersion, nil)

	if _, ok := r.ResolveClass(handle); ok {
		t.Fatal("handle without payload resolved")
	}
	if len(reporter.incompatible) != 0 || len(reporter.loadErrors) != 0 {
		t.Error("missing payload must not be reported")
	}
}

func TestResolveClassMalformedPayloadReportedOnce(t *testing.T) {
	reporter := &recordingReporter{}
	components := newTestComponents(newMapFinder())
	r := NewResolver(components, reporter)

	handle := newFakeClass("com/example/Broken", metadata.KindClass, metadata.CurrentABIVersion, []byte{0xff})

	if _, ok := r.ResolveClass(handle); ok {
		t.Fatal("malformed payload resolved")
	}
	if len(reporter.loadErrors) != 1 {
		t.Fatalf("got %d loading errors, want 1", len(reporter.loadErrors))
	}
	if msg := reporter.loadErrors[0].Error(); !strings.Contains(msg, "com/example/Broken") {
		t.Errorf("loading error does not name the entity: %q", msg)
	}

	// The identifier is poisoned: the retry neither decodes nor reports.
	if _, ok := r.ResolveClass(handle); ok {
		t.Fatal("poisoned identifier resolved on retry")
	}
	if len(reporter.loadErrors) != 1 {
		t.Errorf("got %d loading errors after retry, want 1", len(reporter.loadErrors))
	}

	// Reference resolution sees the same verdict.
	if _, ok := components.DeserializeClass(metadata.ParseClassID("com/example/Broken")); ok {
		t.Error("poisoned identifier resolvable through the class deserializer")
	}
}

func TestCreatePackageScope(t *testing.T) {
	table := metadata.NewStringTable()
	plus := table.Ref("plus")
	pi := table.Ref("PI")
	intName := table.Ref("loom/Int")
	payload := metadata.MarshalPackagePayload(table, &metadata.Package{
		Functions: []*metadata.Function{
			{Name: plus, ReturnType: &metadata.Type{ClassName: &intName}},
			{Name: plus, ReturnType: &metadata.Type{ClassName: &intName}},
		},
		Properties: []*metadata.Property{
			{Name: pi, Type: &metadata.Type{ClassName: &intName}},
		},
	})

	finder := newMapFinder()
	finder.put("loom/Int", classData([]string{"loom/Int"}, &metadata.Class{FqName: 0}))
	components := newTestComponents(finder)
	r := NewResolver(components, &recordingReporter{})

	fragment, _ := components.fragments.PackageFragment("com/example")
	handle := newFakeClass("com/example/ExamplePackage", metadata.KindPackageFacade, metadata.CurrentABIVersion, payload)

	scope, ok := r.CreatePackageScope(fragment, handle)
	if !ok {
		t.Fatal("CreatePackageScope failed")
	}
	if scope.Fragment() != fragment {
		t.Error("scope bound to wrong fragment")
	}
	if got := len(scope.Members("plus")); got != 2 {
		t.Errorf("overloads of plus: got %d, want 2", got)
	}
	if got := len(scope.Members("PI")); got != 1 {
		t.Errorf("PI: got %d members", got)
	}
	if got := len(scope.Members("absent")); got != 0 {
		t.Errorf("unknown name: got %d members", got)
	}

	names := scope.AllNames()
	if len(names) != 2 || names[0] != "PI" || names[1] != "plus" {
		t.Errorf("AllNames: got %v", names)
	}
}

func TestCreatePackageScopeWrongKind(t *testing.T) {
	components := newTestComponents(newMapFinder())
	r := NewResolver(components, &recordingReporter{})

	fragment, _ := components.fragments.PackageFragment("com/example")
	handle := newFakeClass("com/example/Greeter", metadata.KindClass, metadata.CurrentABIVersion, greeterPayload())

	if _, ok := r.CreatePackageScope(fragment, handle); ok {
		t.Fatal("class handle produced a package scope")
	}
}
