package cache

import (
	"testing"

	"golang.org/x/exp/slices"
)

const testLFUCapacity = 2

func emptyLFU() *LFU[int, string] {
	return NewLFU[int, string](testLFUCapacity)
}

func TestLFU_GetAndPut(t *testing.T) {
	lfu := emptyLFU()

	// test miss on empty cache
	if _, ok := lfu.Get(1); ok {
		t.Errorf("Actual ok = true, Expected == false")
	}

	// test read-after-write
	lfu.Put(1, "a")
	value, ok := lfu.Get(1)
	if !ok {
		t.Errorf("Actual ok = false, Expected == true")
	}
	if value != "a" {
		t.Errorf("Actual value = %s, Expected == a", value)
	}

	// test miss leaves the cache untouched
	if _, ok := lfu.Get(2); ok {
		t.Errorf("Actual ok = true, Expected == false")
	}
	if lfu.Len() != 1 {
		t.Errorf("Actual Len = %d, Expected == 1", lfu.Len())
	}
}

func TestLFU_EvictionOrder(t *testing.T) {
	lfu := emptyLFU()

	lfu.Put(1, "a")
	lfu.Put(2, "b")

	value, ok := lfu.Get(1)
	if !ok || value != "a" {
		t.Errorf("Actual Get(1) = %s, %t, Expected == a, true", value, ok)
	}

	// test key 2, the only entry at frequency 1, is the victim
	lfu.Put(3, "c")
	if _, ok := lfu.Get(2); ok {
		t.Errorf("Actual Get(2) ok = true, Expected == false")
	}

	value, ok = lfu.Get(1)
	if !ok || value != "a" {
		t.Errorf("Actual Get(1) = %s, %t, Expected == a, true", value, ok)
	}
	value, ok = lfu.Get(3)
	if !ok || value != "c" {
		t.Errorf("Actual Get(3) = %s, %t, Expected == c, true", value, ok)
	}

	// test key 3 with two accesses is still colder than key 1 with three
	lfu.Put(4, "d")
	if _, ok := lfu.Get(3); ok {
		t.Errorf("Actual Get(3) ok = true, Expected == false")
	}
	if !lfu.Contains(1) {
		t.Errorf("Actual Contains(1) = false, Expected == true")
	}
	if !lfu.Contains(4) {
		t.Errorf("Actual Contains(4) = false, Expected == true")
	}
	if lfu.Len() != 2 {
		t.Errorf("Actual Len = %d, Expected == 2", lfu.Len())
	}
}

func TestLFU_CapacityBound(t *testing.T) {
	const capacity = 4
	lfu := NewLFU[int, int](capacity)

	for i := 0; i < 100; i++ {
		lfu.Put(i, i)
		if lfu.Len() > capacity {
			t.Errorf("Actual Len = %d, Expected <= %d", lfu.Len(), capacity)
		}
	}

	if lfu.Len() != capacity {
		t.Errorf("Actual Len = %d, Expected == %d", lfu.Len(), capacity)
	}
	if lfu.Cap() != capacity {
		t.Errorf("Actual Cap = %d, Expected == %d", lfu.Cap(), capacity)
	}
}

func TestLFU_NonPositiveCapacity(t *testing.T) {
	capacities := []int{0, -1, -42}

	for _, capacity := range capacities {
		lfu := NewLFU[int, string](capacity)

		// test every Put is ignored
		lfu.Put(1, "a")
		if lfu.Len() != 0 {
			t.Errorf("Actual Len = %d, Expected == 0", lfu.Len())
		}
		if _, ok := lfu.Get(1); ok {
			t.Errorf("Actual ok = true, Expected == false")
		}
		if len(lfu.Keys()) != 0 {
			t.Errorf("Actual Keys = %v, Expected == []", lfu.Keys())
		}
	}
}

func TestLFU_Overwrite(t *testing.T) {
	lfu := emptyLFU()

	lfu.Put(1, "a")
	lfu.Put(2, "b")
	lfu.Put(1, "A")

	// test the overwrite took
	value, ok := lfu.Peek(1)
	if !ok || value != "A" {
		t.Errorf("Actual Peek(1) = %s, %t, Expected == A, true", value, ok)
	}
	if lfu.Len() != 2 {
		t.Errorf("Actual Len = %d, Expected == 2", lfu.Len())
	}

	// test the overwrite counted as an access: key 2 is now the victim
	lfu.Put(3, "c")
	if lfu.Contains(2) {
		t.Errorf("Actual Contains(2) = true, Expected == false")
	}
	if !lfu.Contains(1) {
		t.Errorf("Actual Contains(1) = false, Expected == true")
	}
}

func TestLFU_RecencyTieBreak(t *testing.T) {
	lfu := NewLFU[int, string](3)

	lfu.Put(1, "a")
	lfu.Put(2, "b")
	lfu.Put(3, "c")

	// test all three share frequency 1, so the oldest insert goes first
	lfu.Put(4, "d")
	if lfu.Contains(1) {
		t.Errorf("Actual Contains(1) = true, Expected == false")
	}

	// test promotion moves key 2 out of the lowest class
	if _, ok := lfu.Get(2); !ok {
		t.Errorf("Actual Get(2) ok = false, Expected == true")
	}
	lfu.Put(5, "e")
	if lfu.Contains(3) {
		t.Errorf("Actual Contains(3) = true, Expected == false")
	}
	if !lfu.Contains(4) {
		t.Errorf("Actual Contains(4) = false, Expected == true")
	}
}

func TestLFU_PeekDoesNotPromote(t *testing.T) {
	lfu := emptyLFU()

	lfu.Put(1, "a")
	lfu.Put(2, "b")

	// test peeks and membership checks leave key 1 the victim
	for i := 0; i < 3; i++ {
		if _, ok := lfu.Peek(1); !ok {
			t.Errorf("Actual Peek(1) ok = false, Expected == true")
		}
		if !lfu.Contains(1) {
			t.Errorf("Actual Contains(1) = false, Expected == true")
		}
	}

	lfu.Put(3, "c")
	if lfu.Contains(1) {
		t.Errorf("Actual Contains(1) = true, Expected == false")
	}
	if !lfu.Contains(2) {
		t.Errorf("Actual Contains(2) = false, Expected == true")
	}
}

func TestLFU_SingleEntryChurn(t *testing.T) {
	lfu := NewLFU[int, string](1)

	// test promotions through five frequency classes keep one live bucket
	lfu.Put(1, "a")
	for i := 0; i < 5; i++ {
		if _, ok := lfu.Get(1); !ok {
			t.Errorf("Actual Get(1) ok = false, Expected == true")
		}
	}
	if actual := lfu.String(); actual != "LFU{6:[1]}" {
		t.Errorf("Actual String = %s, Expected == LFU{6:[1]}", actual)
	}

	// test a high frequency does not protect the only entry
	lfu.Put(2, "b")
	if lfu.Contains(1) {
		t.Errorf("Actual Contains(1) = true, Expected == false")
	}
	if actual := lfu.String(); actual != "LFU{1:[2]}" {
		t.Errorf("Actual String = %s, Expected == LFU{1:[2]}", actual)
	}
}

func TestLFU_Keys(t *testing.T) {
	lfu := NewLFU[int, string](4)

	if len(lfu.Keys()) != 0 {
		t.Errorf("Actual Keys = %v, Expected == []", lfu.Keys())
	}

	lfu.Put(1, "a")
	lfu.Put(2, "b")
	lfu.Put(3, "c")
	lfu.Put(4, "d")
	lfu.Get(3)
	lfu.Get(4)
	lfu.Get(4)

	// test eviction order: frequency first, then least recently promoted
	expected := []int{1, 2, 3, 4}
	if actual := lfu.Keys(); !slices.Equal(actual, expected) {
		t.Errorf("Actual Keys = %v, Expected == %v", actual, expected)
	}
	if actual := lfu.String(); actual != "LFU{1:[2 1] 2:[3] 3:[4]}" {
		t.Errorf("Actual String = %s, Expected == LFU{1:[2 1] 2:[3] 3:[4]}", actual)
	}
}

func TestLFU_String(t *testing.T) {
	lfu := emptyLFU()

	if actual := lfu.String(); actual != "LFU{}" {
		t.Errorf("Actual String = %s, Expected == LFU{}", actual)
	}

	lfu.Put(1, "a")
	lfu.Put(2, "b")
	if actual := lfu.String(); actual != "LFU{1:[2 1]}" {
		t.Errorf("Actual String = %s, Expected == LFU{1:[2 1]}", actual)
	}

	lfu.Get(1)
	if actual := lfu.String(); actual != "LFU{1:[2] 2:[1]}" {
		t.Errorf("Actual String = %s, Expected == LFU{1:[2] 2:[1]}", actual)
	}
}

// FuzzLFU_Operations drives an LFU cache and a naive reference model with the
// same operation stream and expects identical observable state after every
// step. Each byte is one operation on an 8-key space: values below 128 are a
// Get, the rest a Put.
func FuzzLFU_Operations(f *testing.F) {
	f.Add([]byte{130, 131, 0, 132, 1, 133, 2, 130})
	f.Add([]byte{128, 128, 128, 0, 0, 0})
	f.Add([]byte{255, 254, 253, 252, 251, 250, 249, 248, 127})

	f.Fuzz(func(t *testing.T, ops []byte) {
		const capacity = 4
		lfu := NewLFU[int, int](capacity)
		model := newModelLFU(capacity)

		for i, op := range ops {
			key := int(op % 8)

			if op < 128 {
				actual, ok := lfu.Get(key)
				expected, expectedOK := model.Get(key)
				if ok != expectedOK {
					t.Fatalf("Step %d: Actual Get(%d) ok = %t, Expected == %t", i, key, ok, expectedOK)
				}
				if ok && actual != expected {
					t.Fatalf("Step %d: Actual Get(%d) = %d, Expected == %d", i, key, actual, expected)
				}
			} else {
				lfu.Put(key, i)
				model.Put(key, i)
			}

			if lfu.Len() != model.Len() {
				t.Fatalf("Step %d: Actual Len = %d, Expected == %d", i, lfu.Len(), model.Len())
			}
			if lfu.Len() > capacity {
				t.Fatalf("Step %d: Actual Len = %d, Expected <= %d", i, lfu.Len(), capacity)
			}
			if actual, expected := lfu.Keys(), model.Keys(); !slices.Equal(actual, expected) {
				t.Fatalf("Step %d: Actual Keys = %v, Expected == %v", i, actual, expected)
			}
		}
	})
}

// modelLFU is a deliberately slow reference: explicit frequency counters and
// promotion timestamps, victim found by scanning.
type modelLFU struct {
	capacity int
	clock    int
	entries  []*modelEntry
}

type modelEntry struct {
	key      int
	value    int
	freq     int
	promoted int
}

func newModelLFU(capacity int) *modelLFU {
	return &modelLFU{capacity: capacity}
}

func (m *modelLFU) Get(key int) (int, bool) {
	for _, e := range m.entries {
		if e.key == key {
			m.touch(e)
			return e.value, true
		}
	}
	return 0, false
}

func (m *modelLFU) Put(key int, value int) {
	if m.capacity <= 0 {
		return
	}

	for _, e := range m.entries {
		if e.key == key {
			e.value = value
			m.touch(e)
			return
		}
	}

	if len(m.entries) == m.capacity {
		m.sort()
		m.entries = m.entries[1:]
	}

	e := &modelEntry{key: key, value: value, freq: 1, promoted: m.clock}
	m.clock++
	m.entries = append(m.entries, e)
}

func (m *modelLFU) Len() int {
	return len(m.entries)
}

// Keys returns the keys in eviction order, lowest frequency and oldest
// promotion first.
func (m *modelLFU) Keys() []int {
	m.sort()
	keys := make([]int, 0, len(m.entries))
	for _, e := range m.entries {
		keys = append(keys, e.key)
	}
	return keys
}

func (m *modelLFU) touch(e *modelEntry) {
	e.freq++
	e.promoted = m.clock
	m.clock++
}

func (m *modelLFU) sort() {
	slices.SortFunc(m.entries, func(a, b *modelEntry) bool {
		if a.freq != b.freq {
			return a.freq < b.freq
		}
		return a.promoted < b.promoted
	})
}
