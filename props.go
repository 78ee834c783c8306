package quill

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
)

// Props is a node's property tree. Values may be concrete, nested Props,
// []any, or Animated references at any depth.
type Props map[string]any

// Animated is a reference to a value that changes over time. Current reads
// the value at the present animation clock without side effects.
type Animated interface {
	Current() (any, error)
}

// Observable is an Animated value that can notify subscribers when it
// changes. The dependency registry subscribes to every Observable found in a
// node's props.
type Observable interface {
	Animated
	Subscribe(fn func()) (cancel func(), err error)
}

// Keys returns the prop keys in sorted order.
func (p Props) Keys() []string {
	return slices.Sorted(maps.Keys(p))
}

// Float returns the numeric value stored under key. ok is false when the key
// is absent; err is set when it is present but not a number.
func (p Props) Float(key string) (v float64, ok bool, err error) {
	raw, ok := p[key]
	if !ok {
		return 0, false, nil
	}
	v, err = toFloat(raw)
	if err != nil {
		return 0, true, &PropError{Path: key, Err: err}
	}
	return v, true, nil
}

// FloatOr returns the numeric value under key, or def when absent or invalid.
func (p Props) FloatOr(key string, def float64) float64 {
	v, ok, err := p.Float(key)
	if !ok || err != nil {
		return def
	}
	return v
}

func toFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidProp, v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: %T is not a number", ErrInvalidProp, raw)
	}
}

// isNil reports whether v is nil or an interface holding a typed nil.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// walkAnimated calls fn for every Animated value in the tree, depth-first in
// sorted key order. Walking stops at the first error fn returns.
func walkAnimated(path string, v any, fn func(path string, a Animated) error) error {
	switch t := v.(type) {
	case Animated:
		return fn(path, t)
	case Props:
		return walkMap(path, t, fn)
	case map[string]any:
		return walkMap(path, t, fn)
	case []any:
		for i, item := range t {
			if err := walkAnimated(fmt.Sprintf("%s[%d]", path, i), item, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

func walkMap(path string, m map[string]any, fn func(path string, a Animated) error) error {
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if err := walkAnimated(joinPath(path, k), m[k], fn); err != nil {
			return err
		}
	}
	return nil
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// --- Subscriptions ---

type subscriber struct {
	id uint64
	fn func()
}

// subscribers is an ordered subscriber list. Notification order is
// subscription order.
type subscribers struct {
	next uint64
	list []subscriber
}

func (s *subscribers) add(fn func()) func() {
	s.next++
	id := s.next
	s.list = append(s.list, subscriber{id: id, fn: fn})
	return func() { s.remove(id) }
}

func (s *subscribers) remove(id uint64) {
	for i, sub := range s.list {
		if sub.id == id {
			s.list = slices.Delete(s.list, i, i+1)
			return
		}
	}
}

func (s *subscribers) notify() {
	// Copy so a subscriber may cancel itself while being notified.
	for _, sub := range slices.Clone(s.list) {
		sub.fn()
	}
}

// --- Shared ---

// Shared is a mutable animated cell. Set replaces the value and notifies
// subscribers; nodes reading it pick up the new value on their next draw.
type Shared struct {
	value    any
	version  uint64
	disposed bool
	subs     subscribers
}

// NewShared creates a shared value holding v.
func NewShared(v any) *Shared {
	return &Shared{value: v}
}

// Current returns the held value.
func (s *Shared) Current() (any, error) {
	if s.disposed {
		return nil, ErrDisposedValue
	}
	return s.value, nil
}

// Set stores v and notifies subscribers. No-op after Dispose.
func (s *Shared) Set(v any) {
	if s.disposed {
		return
	}
	s.value = v
	s.version++
	s.subs.notify()
}

// Version counts the Set calls so far.
func (s *Shared) Version() uint64 {
	return s.version
}

// Subscribe registers fn to run after every Set.
func (s *Shared) Subscribe(fn func()) (func(), error) {
	if s.disposed {
		return nil, ErrDisposedValue
	}
	return s.subs.add(fn), nil
}

// Subscribers returns the number of live subscriptions.
func (s *Shared) Subscribers() int {
	return len(s.subs.list)
}

// Dispose drops all subscribers. Later reads fail with ErrDisposedValue.
func (s *Shared) Dispose() {
	s.disposed = true
	s.subs.list = nil
}

func (s *Shared) String() string {
	return fmt.Sprintf("shared(%v)", s.value)
}

// --- Derived ---

// Derived computes its value from other animated values on every read. It
// is observable through the values it was declared to depend on.
type Derived struct {
	fn   func() (any, error)
	deps []Observable
}

// NewDerived creates a derived value. deps lists the observables fn reads so
// that subscribers are notified when any of them changes.
func NewDerived(fn func() (any, error), deps ...Observable) *Derived {
	return &Derived{fn: fn, deps: deps}
}

// Current runs the derivation.
func (d *Derived) Current() (any, error) {
	return d.fn()
}

// Subscribe subscribes fn to every dependency. If any subscription fails the
// ones already made are cancelled.
func (d *Derived) Subscribe(fn func()) (func(), error) {
	cancels := make([]func(), 0, len(d.deps))
	cancelAll := func() {
		for _, c := range cancels {
			c()
		}
	}
	for _, dep := range d.deps {
		if isNil(dep) {
			cancelAll()
			return nil, ErrNilAnimated
		}
		c, err := dep.Subscribe(fn)
		if err != nil {
			cancelAll()
			return nil, err
		}
		cancels = append(cancels, c)
	}
	return cancelAll, nil
}

func (d *Derived) String() string {
	return fmt.Sprintf("derived(%d deps)", len(d.deps))
}
