package flight

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestDoComputesOnce(t *testing.T) {
	var calls atomic.Int32
	c := NewCache(func(k string) (string, error) {
		calls.Add(1)
		return "value for " + k, nil
	})

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := c.Do("a")
			if err != nil || got != "value for a" {
				t.Errorf("Do = %q, %v", got, err)
			}
		}()
	}
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Errorf("work ran %d times, want 1", n)
	}

	if _, err := c.Do("b"); err != nil {
		t.Fatal(err)
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("work ran %d times after second key, want 2", n)
	}
}

func TestErrorsNotMemoized(t *testing.T) {
	var calls int
	c := NewCache(func(k string) (int, error) {
		calls++
		if calls == 1 {
			return 0, errors.New("transient")
		}
		return 7, nil
	})

	if _, err := c.Do("k"); err == nil {
		t.Fatal("first call should fail")
	}
	got, err := c.Do("k")
	if err != nil || got != 7 {
		t.Fatalf("second call = %d, %v", got, err)
	}
	if calls != 2 {
		t.Errorf("work ran %d times, want 2", calls)
	}
}

func TestInvalidate(t *testing.T) {
	var calls int
	c := NewCache(func(k string) (int, error) {
		calls++
		return calls, nil
	})

	if v, _ := c.Do("k"); v != 1 {
		t.Fatalf("first Do = %d", v)
	}
	if v, _ := c.Do("k"); v != 1 {
		t.Fatalf("memoized Do = %d", v)
	}
	c.Invalidate("k")
	if v, _ := c.Do("k"); v != 2 {
		t.Fatalf("Do after Invalidate = %d", v)
	}
}
