package main

import (
	"sort"
	"sync"

	"github.com/loomlang/descriptor-loader/descriptors"
	"github.com/loomlang/descriptor-loader/deserialization"
	"github.com/loomlang/descriptor-loader/errors"
	"github.com/loomlang/descriptor-loader/metadata"
)

// classpath indexes container files by identifier and serves decoded
// class metadata to the deserialization stack.
type classpath struct {
	handles map[metadata.ClassID]*metadata.FileClass
	order   []metadata.ClassID
}

func loadClasspath(paths []string) (*classpath, error) {
	cp := &classpath{handles: make(map[metadata.ClassID]*metadata.FileClass)}
	for _, path := range paths {
		fc, err := metadata.OpenFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseHeader, errors.KindInvalidData, err, path)
		}
		if _, dup := cp.handles[fc.ID()]; dup {
			continue
		}
		cp.handles[fc.ID()] = fc
		cp.order = append(cp.order, fc.ID())
	}
	sort.Slice(cp.order, func(i, j int) bool {
		return cp.order[i].String() < cp.order[j].String()
	})
	return cp, nil
}

func (c *classpath) FindClassData(id metadata.ClassID) (*metadata.ClassData, bool) {
	fc, ok := c.handles[id]
	if !ok {
		return nil, false
	}
	h := fc.ClassHeader()
	if !h.IsCompatible() || h.Kind != metadata.KindClass || len(h.Payload) == 0 {
		return nil, false
	}
	data, err := metadata.ReadClassData(h.Payload)
	if err != nil {
		return nil, false
	}
	return data, true
}

// session assembles the deserialization stack over a classpath.
type session struct {
	module     *descriptors.Module
	components *deserialization.Components
	resolver   *deserialization.Resolver
	fragment   func(fqName string) *descriptors.PackageFragment
}

func newSession(cp *classpath) *session {
	module := descriptors.NewModule("classpath")

	var mu sync.Mutex
	fragments := make(map[string]*descriptors.PackageFragment)
	fragmentFor := func(fqName string) *descriptors.PackageFragment {
		mu.Lock()
		defer mu.Unlock()
		f, ok := fragments[fqName]
		if !ok {
			f = descriptors.NewPackageFragment(module, fqName)
			fragments[fqName] = f
		}
		return f
	}

	components := deserialization.NewComponents(module, cp,
		deserialization.PackageFragmentProviderFunc(func(fqName string) (*descriptors.PackageFragment, bool) {
			return fragmentFor(fqName), true
		}))

	return &session{
		module:     module,
		components: components,
		resolver:   deserialization.NewResolver(components, nil),
		fragment:   fragmentFor,
	}
}
