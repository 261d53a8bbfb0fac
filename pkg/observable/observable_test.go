package observable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_SubscribeDeliversCurrentValue(t *testing.T) {
	v := NewValue(42)

	var got []int
	v.Subscribe(func(n int) {
		got = append(got, n)
	})

	assert.Equal(t, []int{42}, got)
	assert.Equal(t, 42, v.Get())
}

func TestValue_SetNotifiesInSubscriptionOrder(t *testing.T) {
	v := NewValue(0)

	var order []string
	v.Subscribe(func(n int) {
		if n != 0 {
			order = append(order, "first")
		}
	})
	v.Subscribe(func(n int) {
		if n != 0 {
			order = append(order, "second")
		}
	})

	v.Set(1)

	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, 1, v.Get())
}

func TestValue_Unsubscribe(t *testing.T) {
	v := NewValue(0)

	count := 0
	unsubscribe := v.Subscribe(func(n int) {
		count++
	})
	v.Set(1)
	unsubscribe()
	v.Set(2)
	// A second call is a no-op.
	unsubscribe()
	v.Set(3)

	assert.Equal(t, 2, count) // initial delivery + Set(1)
	assert.Equal(t, 3, v.Get())
}

func TestValue_CompleteStopsNotifications(t *testing.T) {
	v := NewValue(0)

	count := 0
	v.Subscribe(func(n int) {
		count++
	})

	v.Complete()
	v.Complete()
	v.Set(1)

	assert.Equal(t, 1, count) // only the initial delivery
	assert.Equal(t, 0, v.Get())
}

func TestSignal_EmitFansOut(t *testing.T) {
	s := NewSignal[string]()

	var got []string
	s.Subscribe(func(event string) {
		got = append(got, "a:"+event)
	})
	s.Subscribe(func(event string) {
		got = append(got, "b:"+event)
	})

	s.Emit("jump")

	assert.Equal(t, []string{"a:jump", "b:jump"}, got)
}

func TestSignal_Unsubscribe(t *testing.T) {
	s := NewSignal[int]()

	count := 0
	unsubscribe := s.Subscribe(func(int) {
		count++
	})
	s.Emit(1)
	unsubscribe()
	s.Emit(2)

	assert.Equal(t, 1, count)
}

func TestSignal_CompleteStopsDelivery(t *testing.T) {
	s := NewSignal[int]()

	count := 0
	s.Subscribe(func(int) {
		count++
	})

	s.Complete()
	s.Complete()
	s.Emit(1)

	assert.Equal(t, 0, count)
}
