package metrics

import "testing"

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	snap := mc.Snapshot()

	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
}

func TestMemoryCollector_Delta(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	before := mc.Snapshot()

	// Allocate some memory
	_ = make([]byte, 1024*1024) // 1 MB

	after := mc.Snapshot()

	// Sys should not decrease between snapshots
	if after.Sys < before.Sys {
		t.Error("Sys should not decrease between snapshots")
	}
}

func TestMemorySnapshot_Growth(t *testing.T) {
	t.Parallel()

	before := MemorySnapshot{HeapAlloc: 100}
	if got := (MemorySnapshot{HeapAlloc: 150}).Growth(before); got != 50 {
		t.Errorf("Growth = %d, want 50", got)
	}
	if got := (MemorySnapshot{HeapAlloc: 50}).Growth(before); got != 0 {
		t.Errorf("Growth after shrink = %d, want 0", got)
	}
}
