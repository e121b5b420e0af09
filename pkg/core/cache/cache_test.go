package cache

import (
	"errors"
	"testing"
	"time"
)

func TestGetOrComputeCachesValue(t *testing.T) {
	c := New(time.Minute)
	calls := 0
	compute := func() (interface{}, error) {
		calls++
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrCompute("k", compute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v.(int) != 42 {
			t.Fatalf("expected 42, got %v", v)
		}
	}
	if calls != 1 {
		t.Errorf("expected a single compute, got %d", calls)
	}
}

func TestGetOrComputeRecomputesWhenStale(t *testing.T) {
	c := New(time.Minute)
	current := time.Now()
	c.now = func() time.Time { return current }

	calls := 0
	compute := func() (interface{}, error) {
		calls++
		return calls, nil
	}

	if _, err := c.GetOrCompute("k", compute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	current = current.Add(2 * time.Minute)
	v, err := c.GetOrCompute("k", compute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(int) != 2 {
		t.Errorf("expected recompute after expiry, got %v", v)
	}
}

func TestGetOrComputeErrorNotCached(t *testing.T) {
	c := New(time.Minute)
	boom := errors.New("boom")
	_, err := c.GetOrCompute("k", func() (interface{}, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected compute error, got %v", err)
	}
	if c.Len() != 0 {
		t.Error("failed compute must not populate the cache")
	}
}

func TestKey(t *testing.T) {
	if got := Key("technology", "growth", "north_america"); got != "technology|growth|north_america" {
		t.Errorf("unexpected key: %s", got)
	}
}
