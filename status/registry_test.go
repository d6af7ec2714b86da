package status

import (
	"sync"
	"testing"
)

func TestMetricMapReusesPointer(t *testing.T) {
	r := NewRegistry()

	a := r.Ints.Get("sim.frame")
	a.Store(41)
	b := r.Ints.Get("sim.frame")

	if a != b {
		t.Error("second Get returned a different pointer")
	}
	if b.Load() != 41 {
		t.Errorf("value = %d, want 41", b.Load())
	}
	if !r.Ints.Has("sim.frame") || r.Ints.Has("sim.missing") {
		t.Error("Has reports wrong keys")
	}
}

func TestMetricMapRangeSorted(t *testing.T) {
	r := NewRegistry()
	r.Floats.Get("z.last").Set(3)
	r.Floats.Get("a.first").Set(1)
	r.Floats.Get("m.middle").Set(2)

	var keys []string
	r.Floats.Range(func(key string, _ *AtomicFloat) {
		keys = append(keys, key)
	})

	want := []string{"a.first", "m.middle", "z.last"}
	for i, k := range want {
		if keys[i] != k {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
	if r.TotalCount() != 3 {
		t.Errorf("TotalCount = %d, want 3", r.TotalCount())
	}
}

func TestAtomicFloatAddConcurrent(t *testing.T) {
	var f AtomicFloat

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				f.Add(0.5)
			}
		}()
	}
	wg.Wait()

	if got := f.Get(); got != 4000 {
		t.Errorf("sum = %v, want 4000", got)
	}
}
