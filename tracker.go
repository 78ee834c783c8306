package quill

import (
	"fmt"
	"slices"
)

// DependencyTracker registers a node's animated props so that changes to
// them can be observed. Register is called once per node construction (and
// again when a node's props are replaced).
type DependencyTracker interface {
	Register(owner uint32, props Props) (Registration, error)
}

// Registration is a live dependency registration. Release is idempotent.
type Registration interface {
	Release()
}

// NopTracker accepts any props and tracks nothing. Useful for static trees.
type NopTracker struct{}

// Register always succeeds.
func (NopTracker) Register(uint32, Props) (Registration, error) {
	return nopRegistration{}, nil
}

type nopRegistration struct{}

func (nopRegistration) Release() {}

// Registry is the default DependencyTracker. It subscribes to every
// Observable in a node's props and records the owning node as invalidated
// when one of them changes.
type Registry struct {
	regs     map[uint32]*registration
	dirty    map[uint32]struct{}
	onChange func(owner uint32)
}

// NewRegistry creates an empty registry. onChange, if non-nil, runs after a
// registered node is invalidated.
func NewRegistry(onChange func(owner uint32)) *Registry {
	return &Registry{
		regs:     make(map[uint32]*registration),
		dirty:    make(map[uint32]struct{}),
		onChange: onChange,
	}
}

type registration struct {
	registry *Registry
	owner    uint32
	cancels  []func()
	released bool
}

// Register walks props and subscribes to each Observable. Non-observable
// Animated values are accepted and simply re-read on every draw. A nil
// animated value or a failed subscription releases everything subscribed so
// far and returns a *PropError naming the offending key.
func (r *Registry) Register(owner uint32, props Props) (Registration, error) {
	reg := &registration{registry: r, owner: owner}
	err := walkMap("", props, func(path string, a Animated) error {
		if isNil(a) {
			return &PropError{Path: path, Err: ErrNilAnimated}
		}
		obs, ok := a.(Observable)
		if !ok {
			return nil
		}
		cancel, err := obs.Subscribe(func() { r.invalidate(owner) })
		if err != nil {
			return &PropError{Path: path, Err: err}
		}
		reg.cancels = append(reg.cancels, cancel)
		return nil
	})
	if err != nil {
		reg.cancel()
		return nil, fmt.Errorf("register node %d: %w", owner, err)
	}
	if prev, ok := r.regs[owner]; ok {
		prev.cancel()
	}
	r.regs[owner] = reg
	return reg, nil
}

func (r *Registry) invalidate(owner uint32) {
	r.dirty[owner] = struct{}{}
	if r.onChange != nil {
		r.onChange(owner)
	}
}

// Dirty reports whether any registered node was invalidated since the last
// TakeDirty.
func (r *Registry) Dirty() bool {
	return len(r.dirty) > 0
}

// TakeDirty returns the invalidated owners in ascending order and clears the set.
func (r *Registry) TakeDirty() []uint32 {
	if len(r.dirty) == 0 {
		return nil
	}
	owners := make([]uint32, 0, len(r.dirty))
	for id := range r.dirty {
		owners = append(owners, id)
	}
	clear(r.dirty)
	slices.Sort(owners)
	return owners
}

// Len returns the number of live registrations.
func (r *Registry) Len() int {
	return len(r.regs)
}

// Subscriptions returns the number of observables the owner is subscribed to.
func (r *Registry) Subscriptions(owner uint32) int {
	if reg, ok := r.regs[owner]; ok {
		return len(reg.cancels)
	}
	return 0
}

func (reg *registration) cancel() {
	for _, c := range reg.cancels {
		c()
	}
	reg.cancels = nil
}

// Release cancels every subscription and forgets the owner.
func (reg *registration) Release() {
	if reg.released {
		return
	}
	reg.released = true
	reg.cancel()
	if cur, ok := reg.registry.regs[reg.owner]; ok && cur == reg {
		delete(reg.registry.regs, reg.owner)
		delete(reg.registry.dirty, reg.owner)
	}
}
