// Package observable provides small synchronous observer primitives:
// Value holds a current value and notifies on change, Signal is a
// broadcast stream with no current value.
//
// Both types are single-threaded: they must only be used from one
// goroutine (the game's logic loop). Delivery is synchronous and in
// subscription order, within the caller's stack. A subscriber that
// re-enters the owning object during notification can observe
// intermediate state; callers must not rely on doing so.
package observable

type subscriber[T any] struct {
	fn func(T)
}

// Value holds a current value of type T and notifies subscribers
// whenever it is set.
type Value[T any] struct {
	value     T
	subs      []*subscriber[T]
	completed bool
}

// NewValue creates a Value holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		value: initial,
	}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	return v.value
}

// Set stores value and notifies all subscribers in subscription order.
// After Complete it does nothing.
func (v *Value[T]) Set(value T) {
	if v.completed {
		return
	}
	v.value = value
	for _, s := range v.subs {
		s.fn(value)
	}
}

// Subscribe registers fn and immediately delivers the current value to
// it. The returned func removes the subscription; it is safe to call
// more than once.
func (v *Value[T]) Subscribe(fn func(T)) func() {
	if v.completed {
		return func() {}
	}
	s := &subscriber[T]{fn: fn}
	v.subs = append(v.subs, s)
	fn(v.value)
	return func() {
		v.subs = remove(v.subs, s)
	}
}

// Complete tears the Value down: all subscribers are removed and
// further Set calls are ignored. Complete is idempotent.
func (v *Value[T]) Complete() {
	if v.completed {
		return
	}
	v.completed = true
	v.subs = nil
}

// Signal is a broadcast event stream with no current value.
type Signal[T any] struct {
	subs      []*subscriber[T]
	completed bool
}

// NewSignal creates an empty Signal.
func NewSignal[T any]() *Signal[T] {
	return &Signal[T]{}
}

// Emit delivers event to all subscribers in subscription order. After
// Complete it does nothing.
func (s *Signal[T]) Emit(event T) {
	if s.completed {
		return
	}
	for _, sub := range s.subs {
		sub.fn(event)
	}
}

// Subscribe registers fn for future events. The returned func removes
// the subscription; it is safe to call more than once.
func (s *Signal[T]) Subscribe(fn func(T)) func() {
	if s.completed {
		return func() {}
	}
	sub := &subscriber[T]{fn: fn}
	s.subs = append(s.subs, sub)
	return func() {
		s.subs = remove(s.subs, sub)
	}
}

// Complete tears the Signal down: all subscribers are removed and
// further Emit calls are ignored. Complete is idempotent.
func (s *Signal[T]) Complete() {
	if s.completed {
		return
	}
	s.completed = true
	s.subs = nil
}

func remove[T any](subs []*subscriber[T], target *subscriber[T]) []*subscriber[T] {
	for i, s := range subs {
		if s == target {
			return append(subs[:i:i], subs[i+1:]...)
		}
	}
	return subs
}
