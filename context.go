package workflow

import (
	"reflect"
	"strings"

	"github.com/enetx/g"
)

// Object is the caller-owned entity whose state attribute a StateMachine reads
// and writes. The machine never creates or discards objects.
//
// GetAttr returns None when the attribute is absent; the machine then assumes
// its initial state.
type Object interface {
	GetAttr(name g.String) g.Option[State]
	SetAttr(name g.String, value State) error
}

// Attrs is a map-backed Object for callers that have no type of their own.
type Attrs g.Map[g.String, State]

// GetAttr implements Object.
func (a Attrs) GetAttr(name g.String) g.Option[State] {
	if s, ok := a[name]; ok {
		return g.Some(s)
	}

	return g.None[State]()
}

// SetAttr implements Object.
// A nil Attrs cannot be written.
func (a Attrs) SetAttr(name g.String, value State) error {
	if a == nil {
		return &ErrAttribute{Name: string(name), Err: errNotSettable}
	}

	a[name] = value
	return nil
}

// Reflect adapts a pointer to a struct or a map with string keys into an Object.
//
// Struct attributes are resolved by a `workflow:"name"` field tag first, then
// by a case-insensitive match on the exported field name. A field may be a
// string kind (empty means absent), a pointer to a string kind (nil means
// absent) or an interface holding a string (nil means absent).
func Reflect(target any) (Object, error) {
	v := reflect.ValueOf(target)

	switch {
	case v.Kind() == reflect.Map && v.Type().Key().Kind() == reflect.String:
		if v.IsNil() {
			return nil, &ErrAttribute{Err: errNotSettable}
		}

		return reflected{v: v}, nil
	case v.Kind() == reflect.Pointer && !v.IsNil() && v.Elem().Kind() == reflect.Struct:
		return reflected{v: v.Elem()}, nil
	}

	return nil, &ErrAttribute{Err: errType}
}

type reflected struct{ v reflect.Value }

func (r reflected) GetAttr(name g.String) g.Option[State] {
	if r.v.Kind() == reflect.Map {
		key := reflect.ValueOf(string(name)).Convert(r.v.Type().Key())
		return stateOf(r.v.MapIndex(key))
	}

	field, ok := r.field(name)
	if !ok {
		return g.None[State]()
	}

	return stateOf(field)
}

func (r reflected) SetAttr(name g.String, value State) error {
	if r.v.Kind() == reflect.Map {
		key := reflect.ValueOf(string(name)).Convert(r.v.Type().Key())
		elem, err := stateValue(r.v.Type().Elem(), value)
		if err != nil {
			return &ErrAttribute{Name: string(name), Err: err}
		}

		r.v.SetMapIndex(key, elem)
		return nil
	}

	field, ok := r.field(name)
	if !ok {
		return &ErrAttribute{Name: string(name), Err: errNotFound}
	}

	if !field.CanSet() {
		return &ErrAttribute{Name: string(name), Err: errNotSettable}
	}

	elem, err := stateValue(field.Type(), value)
	if err != nil {
		return &ErrAttribute{Name: string(name), Err: err}
	}

	field.Set(elem)
	return nil
}

func (r reflected) field(name g.String) (reflect.Value, bool) {
	fields := reflect.VisibleFields(r.v.Type())

	for _, sf := range fields {
		if !sf.Anonymous && sf.IsExported() && name != "" && sf.Tag.Get("workflow") == string(name) {
			return r.fieldByIndex(sf.Index)
		}
	}

	for _, sf := range fields {
		if !sf.Anonymous && sf.IsExported() && strings.EqualFold(sf.Name, string(name)) {
			return r.fieldByIndex(sf.Index)
		}
	}

	return reflect.Value{}, false
}

// fieldByIndex resolves a promoted field. A nil embedded pointer hides it.
func (r reflected) fieldByIndex(index []int) (reflect.Value, bool) {
	v, err := r.v.FieldByIndexErr(index)
	if err != nil {
		return reflect.Value{}, false
	}

	return v, true
}

// stateOf reads a state out of a field or map value.
func stateOf(v reflect.Value) g.Option[State] {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return g.None[State]()
		}

		v = v.Elem()
	}

	if !v.IsValid() || v.Kind() != reflect.String || v.Len() == 0 {
		return g.None[State]()
	}

	return g.Some(State(v.String()))
}

// stateValue builds a value of type t holding s.
func stateValue(t reflect.Type, s State) (reflect.Value, error) {
	str := reflect.ValueOf(string(s))

	switch {
	case t.Kind() == reflect.String:
		return str.Convert(t), nil
	case t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.String:
		p := reflect.New(t.Elem())
		p.Elem().Set(str.Convert(t.Elem()))

		return p, nil
	case t.Kind() == reflect.Interface && str.Type().Implements(t):
		return str.Convert(t), nil
	}

	return reflect.Value{}, errType
}
