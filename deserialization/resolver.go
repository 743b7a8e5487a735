package deserialization

import (
	"github.com/loomlang/descriptor-loader/descriptors"
	"github.com/loomlang/descriptor-loader/errors"
	"github.com/loomlang/descriptor-loader/internal/observability"
	"github.com/loomlang/descriptor-loader/metadata"
	"go.uber.org/zap"
)

// Resolver is the public entry point of the loader: it decides, from a
// compiled entity's header, whether to produce a class descriptor, a
// package scope, or nothing.
type Resolver struct {
	components *Components
	reporter   ErrorReporter
}

// NewResolver creates a resolver over the session's components. A nil
// reporter defaults to logging through this package's zap logger.
func NewResolver(components *Components, reporter ErrorReporter) *Resolver {
	if reporter == nil {
		reporter = LogReporter{}
	}
	return &Resolver{components: components, reporter: reporter}
}

// Components returns the session aggregate the resolver operates in.
func (r *Resolver) Components() *Components { return r.components }

// ResolveClass materializes the class descriptor for a compiled class.
// Absence is a normal outcome: wrong kind, missing payload and
// incompatible ABI version all yield (nil, false).
func (r *Resolver) ResolveClass(class metadata.BinaryClass) (*descriptors.Class, bool) {
	payload, ok := r.ReadData(class, metadata.KindClass)
	if !ok {
		return nil, false
	}
	// A settled verdict wins over re-decoding the payload; in particular
	// an identifier poisoned by an earlier decode failure stays absent.
	if cached, ok, done := r.components.classes.Cached(class.ID()); done {
		return cached, ok
	}
	data, err := metadata.ReadClassData(payload)
	if err != nil {
		r.rejectPayload(class, err)
		return nil, false
	}
	return r.components.classes.DeserializeClassData(class.ID(), data)
}

// CreatePackageScope builds the member scope of a compiled package
// facade, bound to fragment. Class-kind siblings are assumed already
// enumerated elsewhere, so the supplementary name set is empty.
func (r *Resolver) CreatePackageScope(fragment *descriptors.PackageFragment, class metadata.BinaryClass) (*PackageScope, bool) {
	payload, ok := r.ReadData(class, metadata.KindPackageFacade)
	if !ok {
		return nil, false
	}
	data, err := metadata.ReadPackageData(payload)
	if err != nil {
		r.rejectPayload(class, err)
		return nil, false
	}
	scope := NewPackageScope(fragment, data.Package, data.Names, r.components,
		func() []descriptors.Name { return nil })
	return scope, true
}

// ReadData returns the handle's payload when its header is ABI
// compatible and of the expected kind.
//
// The version check runs strictly before the kind check: an
// incompatible artifact is reported and never decoded, even when the
// kind would have matched. A kind mismatch on a compatible artifact is
// not an error, since the same handle is commonly probed for several
// kinds by different callers, and yields absence silently.
func (r *Resolver) ReadData(class metadata.BinaryClass, expected metadata.Kind) ([]byte, bool) {
	header := class.ClassHeader()
	if !header.IsCompatible() {
		observability.IncompatibleArtifacts.Inc()
		r.reporter.ReportIncompatibleABIVersion(class, header.Version)
	} else if header.Kind == expected && len(header.Payload) > 0 {
		return header.Payload, true
	}
	return nil, false
}

// rejectPayload reports a malformed payload and poisons its identifier
// so the failure is never retried.
func (r *Resolver) rejectPayload(class metadata.BinaryClass, err error) {
	observability.MalformedPayloads.Inc()
	r.reporter.ReportLoadingError(class, errors.Malformed(class.ID().String(), err))
	r.components.classes.MarkAbsent(class.ID())
}

// LogReporter is the default ErrorReporter: findings go to the package
// logger and control flow is never interrupted.
type LogReporter struct{}

func (LogReporter) ReportIncompatibleABIVersion(class metadata.BinaryClass, found metadata.ABIVersion) {
	Logger().Warn("incompatible metadata version",
		zap.Error(errors.IncompatibleABI(class.ID().String(), found, metadata.CurrentABIVersion)),
	)
}

func (LogReporter) ReportLoadingError(class metadata.BinaryClass, err error) {
	Logger().Warn("failed to load metadata",
		zap.String("class", class.ID().String()),
		zap.Error(err),
	)
}
