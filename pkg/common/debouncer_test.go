package common

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerRunsLastOnly(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var calls atomic.Int32
	var last atomic.Int32
	for i := 1; i <= 5; i++ {
		d.Trigger(func() {
			calls.Add(1)
			last.Store(int32(i))
		})
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(150 * time.Millisecond)
	if calls.Load() != 1 {
		t.Errorf("Expected 1 call but got %d", calls.Load())
	}
	if last.Load() != 5 {
		t.Errorf("Expected the last trigger to win but got %d", last.Load())
	}
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Cancel()
	time.Sleep(80 * time.Millisecond)
	if calls.Load() != 0 {
		t.Errorf("Expected no calls after cancel but got %d", calls.Load())
	}
}
