package engine

import (
	"slices"
	"testing"
)

func TestEventBusOrder(t *testing.T) {
	b := NewEventBus()
	var got []string
	b.On("x", func(args ...any) { got = append(got, "first:"+args[0].(string)) })
	b.On("x", func(args ...any) { got = append(got, "second:"+args[0].(string)) })
	b.On("y", func(...any) { got = append(got, "other") })

	b.Emit("x", "a")
	b.Emit("none")

	if want := []string{"first:a", "second:a"}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEventBusRemove(t *testing.T) {
	b := NewEventBus()
	var n int
	h := b.On("x", func(...any) { n++ })
	b.On("x", func(...any) { n += 10 })

	h.Remove()
	h.Remove()
	b.Off("x", h)
	b.Emit("x")

	if n != 10 {
		t.Errorf("n = %d, want 10", n)
	}

	var zero Handle
	zero.Remove()
}

func TestEventBusRemoveDuringEmit(t *testing.T) {
	b := NewEventBus()
	var calls []int
	var second Handle
	b.On("x", func(...any) {
		calls = append(calls, 1)
		second.Remove()
	})
	second = b.On("x", func(...any) { calls = append(calls, 2) })

	b.Emit("x")
	b.Emit("x")

	// the running emit still sees the listener it started with
	if want := []int{1, 2, 1}; !slices.Equal(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}
