package ordered

import "testing"

func TestInsertionOrder(t *testing.T) {
	m := New[string, int]()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("c", 3)
	m.Set("a", 4) // overwrite keeps position

	var keys []string
	var values []int
	m.Range(func(k string, v int) bool {
		keys = append(keys, k)
		values = append(values, v)
		return true
	})
	wantKeys := []string{"b", "a", "c"}
	wantValues := []int{1, 4, 3}
	for i := range wantKeys {
		if keys[i] != wantKeys[i] || values[i] != wantValues[i] {
			t.Fatalf("Range order = %v %v, want %v %v", keys, values, wantKeys, wantValues)
		}
	}
	if m.Len() != 3 {
		t.Errorf("Len = %d, want 3", m.Len())
	}
}

func TestSetIfAbsent(t *testing.T) {
	m := New[string, string]()
	if !m.SetIfAbsent("k", "first") {
		t.Fatal("SetIfAbsent on a new key returned false")
	}
	if m.SetIfAbsent("k", "second") {
		t.Fatal("SetIfAbsent on an existing key returned true")
	}
	if v, _ := m.Get("k"); v != "first" {
		t.Errorf("value = %q, want first", v)
	}
}

func TestRangeEarlyStop(t *testing.T) {
	m := New[int, int]()
	for i := 0; i < 5; i++ {
		m.Set(i, i)
	}
	count := 0
	m.Range(func(k, v int) bool {
		count++
		return count < 2
	})
	if count != 2 {
		t.Errorf("Range visited %d entries after early stop, want 2", count)
	}
}
