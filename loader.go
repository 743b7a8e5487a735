package descriptorloader

import (
	"github.com/loomlang/descriptor-loader/descriptors"
	"github.com/loomlang/descriptor-loader/deserialization"
)

// Session owns every descriptor created during one compilation run.
// It is safe for concurrent use once constructed.
type Session struct {
	module     *descriptors.Module
	components *deserialization.Components
	resolver   *deserialization.Resolver
}

// SessionOption configures optional collaborators on a Session.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	reporter ErrorReporter
	options  []deserialization.Option
}

// ErrorReporter is re-exported for session construction.
type ErrorReporter = deserialization.ErrorReporter

// WithErrorReporter replaces the default logging reporter.
func WithErrorReporter(r ErrorReporter) SessionOption {
	return func(c *sessionConfig) { c.reporter = r }
}

// WithComponents forwards options to the deserialization components,
// such as custom annotation or constant loaders.
func WithComponents(opts ...deserialization.Option) SessionOption {
	return func(c *sessionConfig) { c.options = append(c.options, opts...) }
}

// NewSession creates a compilation session for the named module.
// finder locates class metadata by identifier; fragments supplies the
// module's package fragment descriptors.
func NewSession(moduleName string, finder deserialization.ClassDataFinder, fragments deserialization.PackageFragmentProvider, opts ...SessionOption) *Session {
	cfg := sessionConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	module := descriptors.NewModule(descriptors.Name(moduleName))
	components := deserialization.NewComponents(module, finder, fragments, cfg.options...)
	return &Session{
		module:     module,
		components: components,
		resolver:   deserialization.NewResolver(components, cfg.reporter),
	}
}

// Module returns the session's module descriptor.
func (s *Session) Module() *descriptors.Module { return s.module }

// Components returns the session's component aggregate.
func (s *Session) Components() *deserialization.Components { return s.components }

// Resolver returns the session's entry point for compiled-class handles.
func (s *Session) Resolver() *deserialization.Resolver { return s.resolver }
