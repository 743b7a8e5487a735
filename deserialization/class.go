package deserialization

import (
	stderrors "errors"
	"sync"

	"github.com/loomlang/descriptor-loader/descriptors"
	"github.com/loomlang/descriptor-loader/errors"
	"github.com/loomlang/descriptor-loader/internal/observability"
	"github.com/loomlang/descriptor-loader/memoize"
	"github.com/loomlang/descriptor-loader/metadata"
	"go.uber.org/zap"
)

// deserializedClass pairs a class descriptor with the context covering
// its own type parameters, so nested classes from separate payloads can
// chain their scope to the enclosing class's.
type deserializedClass struct {
	class *descriptors.Class
	ctx   *Context
}

// errMalformedPayload poisons identifiers whose payload failed wire
// decoding in the resolver.
var errMalformedPayload = stderrors.New("payload previously failed decoding")

// suppliedData carries metadata handed in by the resolver for the first
// request of an identifier, or a poison mark for payloads that failed
// decoding and must stay permanently absent.
type suppliedData struct {
	data      *metadata.ClassData
	malformed bool
}

// ClassDeserializer turns class identifiers into descriptors, memoized
// so repeated requests return the identical instance. Absence, whether
// from a finder miss or a malformed payload, is cached just as firmly:
// a failed identifier is never attempted twice.
type ClassDeserializer struct {
	components *Components
	classes    *memoize.Func[metadata.ClassID, *deserializedClass]

	mu       sync.Mutex
	supplied map[metadata.ClassID]suppliedData
}

func newClassDeserializer(c *Components) *ClassDeserializer {
	d := &ClassDeserializer{
		components: c,
		supplied:   make(map[metadata.ClassID]suppliedData),
	}
	d.classes = memoize.NewFunc(d.compute)
	return d
}

// DeserializeClass resolves id through the memoization cache, asking
// the class-data finder on first use.
func (d *ClassDeserializer) DeserializeClass(id metadata.ClassID) (*descriptors.Class, bool) {
	dc, ok := d.classes.Get(id)
	if !ok || dc == nil {
		return nil, false
	}
	return dc.class, true
}

// Cached returns the memoized verdict for id when one exists: the
// descriptor (or nil for identifiers settled as absent) and whether a
// verdict has been reached. It never triggers computation.
func (d *ClassDeserializer) Cached(id metadata.ClassID) (*descriptors.Class, bool, bool) {
	if !d.classes.IsCached(id) {
		return nil, false, false
	}
	class, ok := d.DeserializeClass(id)
	return class, ok, true
}

// DeserializeClassData resolves id using metadata already decoded by
// the caller, typically from the handle payload the resolver read. The
// supplied data only matters for the first request; afterwards the
// cached descriptor wins.
func (d *ClassDeserializer) DeserializeClassData(id metadata.ClassID, data *metadata.ClassData) (*descriptors.Class, bool) {
	d.offer(id, suppliedData{data: data})
	return d.DeserializeClass(id)
}

// MarkAbsent poisons id as permanently absent. Called by the resolver
// when a compatible, correctly kinded payload fails wire decoding.
func (d *ClassDeserializer) MarkAbsent(id metadata.ClassID) {
	d.offer(id, suppliedData{malformed: true})
	d.classes.Get(id)
}

func (d *ClassDeserializer) offer(id metadata.ClassID, s suppliedData) {
	d.mu.Lock()
	if _, exists := d.supplied[id]; !exists {
		d.supplied[id] = s
	}
	d.mu.Unlock()
}

func (d *ClassDeserializer) take(id metadata.ClassID) (suppliedData, bool) {
	d.mu.Lock()
	s, ok := d.supplied[id]
	if ok {
		delete(d.supplied, id)
	}
	d.mu.Unlock()
	return s, ok
}

func (d *ClassDeserializer) compute(id metadata.ClassID, publish func(*deserializedClass)) (*deserializedClass, bool) {
	data, err := d.classData(id)
	if err != nil {
		observability.ClassesAbsent.Inc()
		Logger().Warn("class metadata rejected",
			zap.String("class", id.String()),
			zap.Error(err),
		)
		return nil, false
	}
	if data == nil {
		observability.ClassesAbsent.Inc()
		Logger().Debug("no metadata for class", zap.Error(errors.NotFound(id.String())))
		return nil, false
	}
	if data.Class == nil || data.Names == nil {
		observability.ClassesAbsent.Inc()
		Logger().Warn("class metadata rejected",
			zap.String("class", id.String()),
			zap.Error(errMalformedPayload),
		)
		return nil, false
	}
	return d.build(id, data, publish), true
}

// classData locates metadata for id, preferring caller-supplied data
// over the finder. A nil result with nil error means a plain miss.
func (d *ClassDeserializer) classData(id metadata.ClassID) (*metadata.ClassData, error) {
	if s, ok := d.take(id); ok {
		if s.malformed {
			return nil, errMalformedPayload
		}
		if s.data != nil {
			return s.data, nil
		}
	}
	if data, ok := d.components.finder.FindClassData(id); ok {
		return data, nil
	}
	return nil, nil
}

// build materializes the descriptor. The placeholder is registered via
// publish before the body is decoded: any re-entrant request for the
// same identifier during supertype or member decoding receives the
// in-flight instance instead of recursing.
func (d *ClassDeserializer) build(id metadata.ClassID, data *metadata.ClassData, publish func(*deserializedClass)) *deserializedClass {
	proto := data.Class

	container, parentCtx := d.resolveContainer(id)
	class := descriptors.NewClass(id, container)

	if parentCtx == nil {
		parentCtx = &Context{
			components:  d.components,
			names:       data.Names,
			declaration: container,
		}
	}
	ctx, params := parentCtx.newChild(class, proto.TypeParameters, data.Names)
	dc := &deserializedClass{class: class, ctx: ctx}
	publish(dc)

	// Upper bounds may reference the class itself, so they are decoded
	// only after the placeholder is registered.
	ctx.fillBounds(proto.TypeParameters, params)

	class.Kind = proto.Flags.ClassKind()
	class.Visibility = proto.Flags.Visibility()
	class.Modality = proto.Flags.Modality()
	class.TypeParameters = params

	class.Supertypes = make([]descriptors.Type, 0, len(proto.Supertypes))
	for _, st := range proto.Supertypes {
		class.Supertypes = append(class.Supertypes, ctx.Type(st))
	}

	members := NewMemberDeserializer(ctx)
	for _, c := range proto.Constructors {
		class.Constructors = append(class.Constructors, members.Constructor(class, c))
	}
	for _, f := range proto.Functions {
		class.Functions = append(class.Functions, members.Function(f))
	}
	for _, p := range proto.Properties {
		class.Properties = append(class.Properties, members.Property(p))
	}

	for _, n := range proto.NestedNames {
		class.NestedNames = append(class.NestedNames, nameOr(data.Names, n, "<error>"))
	}
	for _, n := range proto.EnumEntryNames {
		class.EnumEntries = append(class.EnumEntries, nameOr(data.Names, n, "<error>"))
	}
	class.Annotations = d.components.annotations.LoadAnnotations(proto.Annotations, data.Names)

	observability.ClassesDeserialized.Inc()
	return dc
}

// resolveContainer finds the declaration a class belongs to: the outer
// class for nested classes (chaining its type-parameter scope), the
// package fragment for top-level ones, the module as a last resort.
func (d *ClassDeserializer) resolveContainer(id metadata.ClassID) (descriptors.Descriptor, *Context) {
	if id.IsNested() {
		if outer, ok := d.classes.Get(id.Outer()); ok && outer != nil {
			return outer.class, outer.ctx
		}
		Logger().Debug("outer class unresolved for nested class",
			zap.String("class", id.String()),
		)
	} else if fragment, ok := d.components.fragments.PackageFragment(id.Package); ok {
		return fragment, nil
	}
	return d.components.module, nil
}
