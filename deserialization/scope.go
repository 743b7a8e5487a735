package deserialization

import (
	"sort"
	"sync"

	"github.com/loomlang/descriptor-loader/descriptors"
	"github.com/loomlang/descriptor-loader/internal/observability"
	"github.com/loomlang/descriptor-loader/metadata"
)

// PackageScope is the lazily populated lookup surface over a compiled
// package facade's top-level members. The member map is computed once,
// on first query, and reused afterwards.
//
// classNames supplies names of sibling entities sourced by a different
// loader (for example platform-native classes of the same package); it
// may legitimately return an empty set. Supplied names appear in
// enumeration only; their descriptors are owned elsewhere.
type PackageScope struct {
	fragment   *descriptors.PackageFragment
	proto      *metadata.Package
	names      *metadata.NameResolver
	components *Components
	classNames func() []descriptors.Name

	once     sync.Once
	members  map[descriptors.Name][]descriptors.Descriptor
	allNames []descriptors.Name
}

// NewPackageScope creates a scope bound to fragment. Nothing is decoded
// until the first query.
func NewPackageScope(fragment *descriptors.PackageFragment, proto *metadata.Package, names *metadata.NameResolver, components *Components, classNames func() []descriptors.Name) *PackageScope {
	return &PackageScope{
		fragment:   fragment,
		proto:      proto,
		names:      names,
		components: components,
		classNames: classNames,
	}
}

// Fragment returns the package fragment this scope serves.
func (s *PackageScope) Fragment() *descriptors.PackageFragment {
	return s.fragment
}

// Members returns all members with the given name: possibly empty,
// possibly several for overloads.
func (s *PackageScope) Members(name descriptors.Name) []descriptors.Descriptor {
	s.once.Do(s.materialize)
	return s.members[name]
}

// AllNames enumerates the full name set, member names merged with the
// supplementary supplier's, sorted for stable iteration.
func (s *PackageScope) AllNames() []descriptors.Name {
	s.once.Do(s.materialize)
	return s.allNames
}

func (s *PackageScope) materialize() {
	ctx := s.components.CreateContext(s.fragment, s.names)
	m := NewMemberDeserializer(ctx)

	s.members = make(map[descriptors.Name][]descriptors.Descriptor)
	for _, proto := range s.proto.Functions {
		fn := m.Function(proto)
		s.members[fn.Name()] = append(s.members[fn.Name()], fn)
	}
	for _, proto := range s.proto.Properties {
		prop := m.Property(proto)
		s.members[prop.Name()] = append(s.members[prop.Name()], prop)
	}

	seen := make(map[descriptors.Name]struct{}, len(s.members))
	for name := range s.members {
		seen[name] = struct{}{}
		s.allNames = append(s.allNames, name)
	}
	for _, name := range s.classNames() {
		if _, dup := seen[name]; !dup {
			seen[name] = struct{}{}
			s.allNames = append(s.allNames, name)
		}
	}
	sort.Slice(s.allNames, func(i, j int) bool { return s.allNames[i] < s.allNames[j] })

	observability.PackageScopes.Inc()
}
