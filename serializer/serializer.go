// Package serializer implements spec §4.8's reflective serializer: a type
// registry that lets user-defined value types round-trip through a wire
// format built only from primitives, arrays, and plain records, the same
// {__type, __data} envelope shape a JSON-oriented engine would use to ship
// a Recording (spec §6) across a process boundary.
package serializer

import (
	"reflect"
	"sort"

	"github.com/tickforge/engine/enginerr"
)

// Instance is implemented by registered types: SerializeData returns a
// value built from primitives/arrays/records (never the receiver itself,
// to avoid infinite regress), and DeserializeData repopulates the receiver
// from that same shape.
type Instance interface {
	SerializeData() any
	DeserializeData(data any) error
}

// Factory constructs a fresh, zero-valued Instance for deserialization.
type Factory func() Instance

const maxDepth = 64

// Registry maps registered-type names to factories, and concrete Go types
// back to their registered name, so Serialize can find the right wrapper
// and Deserialize can find the right factory.
type Registry struct {
	factories map[string]Factory
	typeNames map[reflect.Type]string
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		typeNames: make(map[reflect.Type]string),
	}
}

// Register associates name with factory. Values whose concrete Go type
// matches factory()'s type serialize as {__type: name, ...}; unregistered
// types never produce that wrapper even if they happen to implement
// Instance.
func (r *Registry) Register(name string, factory Factory) {
	r.factories[name] = factory
	sample := factory()
	r.typeNames[reflect.TypeOf(sample)] = name
}

// cycleGuard tracks pointers currently on the recursion stack (to catch
// real cycles) and a depth counter (as a backstop against pathologically
// deep but acyclic structures), per spec §4.8.
type cycleGuard struct {
	onStack map[uintptr]bool
	depth   int
}

func newCycleGuard() *cycleGuard {
	return &cycleGuard{onStack: make(map[uintptr]bool)}
}

func (g *cycleGuard) enter(ptr uintptr) error {
	g.depth++
	if g.depth > maxDepth {
		return enginerr.NewCycleDetected("recursion depth exceeded %d", maxDepth)
	}
	if ptr != 0 {
		if g.onStack[ptr] {
			return enginerr.NewCycleDetected("self-referential structure detected")
		}
		g.onStack[ptr] = true
	}
	return nil
}

func (g *cycleGuard) leave(ptr uintptr) {
	g.depth--
	if ptr != 0 {
		delete(g.onStack, ptr)
	}
}

// Serialize converts v into a wire-format value built only from nil,
// primitives, []any, and map[string]any (the latter two always wrapped as
// {"__type": "Array"|"Object"|registeredName, "__data": ...}).
func (r *Registry) Serialize(v any) (any, error) {
	return r.serialize(v, newCycleGuard())
}

func (r *Registry) serialize(v any, guard *cycleGuard) (any, error) {
	if v == nil {
		return nil, nil
	}

	if inst, ok := v.(Instance); ok {
		if name, registered := r.typeNames[reflect.TypeOf(v)]; registered {
			if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr && rv.IsNil() {
				return nil, nil
			}
			ptr := pointerIdentity(reflect.ValueOf(v))
			if err := guard.enter(ptr); err != nil {
				return nil, err
			}
			defer guard.leave(ptr)

			data, err := r.serialize(inst.SerializeData(), guard)
			if err != nil {
				return nil, err
			}
			return map[string]any{"__type": name, "__data": data}, nil
		}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return v, nil

	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		ptr := pointerIdentity(rv)
		if err := guard.enter(ptr); err != nil {
			return nil, err
		}
		defer guard.leave(ptr)
		return r.serialize(rv.Elem().Interface(), guard)

	case reflect.Slice, reflect.Array:
		ptr := pointerIdentity(rv)
		if err := guard.enter(ptr); err != nil {
			return nil, err
		}
		defer guard.leave(ptr)

		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem, err := r.serialize(rv.Index(i).Interface(), guard)
			if err != nil {
				return nil, err
			}
			out[i] = elem
		}
		return map[string]any{"__type": "Array", "__data": out}, nil

	case reflect.Map:
		ptr := pointerIdentity(rv)
		if err := guard.enter(ptr); err != nil {
			return nil, err
		}
		defer guard.leave(ptr)

		keys := make([]string, 0, rv.Len())
		iter := rv.MapRange()
		values := make(map[string]reflect.Value, rv.Len())
		for iter.Next() {
			k := toStringKey(iter.Key())
			keys = append(keys, k)
			values[k] = iter.Value()
		}
		sort.Strings(keys)

		out := make(map[string]any, len(keys))
		for _, k := range keys {
			val, err := r.serialize(values[k].Interface(), guard)
			if err != nil {
				return nil, err
			}
			out[k] = val
		}
		return map[string]any{"__type": "Object", "__data": out}, nil

	case reflect.Struct:
		ptr := pointerIdentity(rv)
		if err := guard.enter(ptr); err != nil {
			return nil, err
		}
		defer guard.leave(ptr)

		out := make(map[string]any)
		t := rv.Type()
		for i := 0; i < rv.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			val, err := r.serialize(rv.Field(i).Interface(), guard)
			if err != nil {
				return nil, err
			}
			out[field.Name] = val
		}
		return map[string]any{"__type": "Object", "__data": out}, nil

	default:
		return v, nil
	}
}

// Deserialize reconstructs a value from wire-format data produced by
// Serialize. Registered types are reconstructed via their Factory;
// unregistered "Object"/"Array" wrappers become plain map[string]any /
// []any values, losing identity information, per spec §4.8.
func (r *Registry) Deserialize(data any) (any, error) {
	return r.deserialize(data, 0)
}

func (r *Registry) deserialize(data any, depth int) (any, error) {
	if depth > maxDepth {
		return nil, enginerr.NewCycleDetected("recursion depth exceeded %d", maxDepth)
	}
	if data == nil {
		return nil, nil
	}

	wrapper, ok := data.(map[string]any)
	if !ok {
		return data, nil
	}

	typeName, hasType := wrapper["__type"].(string)
	raw := wrapper["__data"]
	if !hasType {
		// Not a serializer-produced wrapper; treat defensively as a plain
		// record so ad-hoc inputs still deserialize.
		return r.deserializePlainObject(wrapper, depth)
	}

	switch typeName {
	case "Array":
		arr, _ := raw.([]any)
		out := make([]any, len(arr))
		for i, elem := range arr {
			v, err := r.deserialize(elem, depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case "Object":
		m, _ := raw.(map[string]any)
		return r.deserializePlainObject(m, depth)

	default:
		factory, ok := r.factories[typeName]
		if !ok {
			return r.deserialize(raw, depth+1)
		}
		inner, err := r.deserialize(raw, depth+1)
		if err != nil {
			return nil, err
		}
		inst := factory()
		if err := inst.DeserializeData(inner); err != nil {
			return nil, err
		}
		return inst, nil
	}
}

func (r *Registry) deserializePlainObject(m map[string]any, depth int) (any, error) {
	out := make(map[string]any, len(m))
	for k, v := range m {
		dv, err := r.deserialize(v, depth+1)
		if err != nil {
			return nil, err
		}
		out[k] = dv
	}
	return out, nil
}

func pointerIdentity(rv reflect.Value) uintptr {
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return 0
		}
		return rv.Pointer()
	default:
		return 0
	}
}

func toStringKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	return reflect.ValueOf(k.Interface()).String()
}
