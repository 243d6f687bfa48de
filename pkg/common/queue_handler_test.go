package common

import (
	"sync"
	"testing"
	"time"
)

func TestQueueHandlerProcessesInChunks(t *testing.T) {
	var mu sync.Mutex
	batches := [][]int{}
	q := NewQueueHandler(func(items []int) {
		mu.Lock()
		defer mu.Unlock()
		batches = append(batches, append([]int{}, items...))
	}, 2, time.Hour)
	q.Add(1, 2, 3, 4, 5)
	q.Close()

	mu.Lock()
	defer mu.Unlock()
	if len(batches) != 3 {
		t.Fatalf("Expected 3 batches but got %d", len(batches))
	}
	if len(batches[2]) != 1 || batches[2][0] != 5 {
		t.Errorf("Expected last batch [5] but got %v", batches[2])
	}
	if q.Len() != 0 {
		t.Errorf("Expected empty queue after close but got %d", q.Len())
	}
}

func TestQueueHandlerTicks(t *testing.T) {
	got := make(chan []string, 1)
	q := NewQueueHandler(func(items []string) {
		got <- items
	}, 10, 10*time.Millisecond)
	defer q.Close()
	q.Add("a")
	select {
	case items := <-got:
		if len(items) != 1 || items[0] != "a" {
			t.Errorf("Expected [a] but got %v", items)
		}
	case <-time.After(2 * time.Second):
		t.Errorf("Expected the queue to be processed")
	}
}
