package ratelimit

import (
	"testing"
	"time"
)

func testClock(start time.Time) (*time.Time, func() time.Time) {
	current := start
	return &current, func() time.Time { return current }
}

func TestLimiterAllowsUpToMax(t *testing.T) {
	l := New(3, time.Minute, 5*time.Minute)
	_, l.now = testClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	for i := 0; i < 3; i++ {
		if d := l.Allow("agent-1"); !d.OK {
			t.Fatalf("request %d rejected, want allowed", i+1)
		}
	}
	if d := l.Allow("agent-1"); d.OK {
		t.Fatal("request over budget allowed, want rejected")
	}
}

func TestLimiterBlockOutlivesWindow(t *testing.T) {
	l := New(2, time.Minute, 5*time.Minute)
	now, clock := testClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	l.now = clock

	l.Allow("agent-1")
	l.Allow("agent-1")
	d := l.Allow("agent-1")
	if d.OK {
		t.Fatal("violation allowed, want rejected")
	}
	if d.RetryAfter != 5*time.Minute {
		t.Fatalf("RetryAfter = %v, want %v", d.RetryAfter, 5*time.Minute)
	}

	// A fresh window does not clear the block.
	*now = now.Add(2 * time.Minute)
	d = l.Allow("agent-1")
	if d.OK {
		t.Fatal("blocked identifier allowed after window rollover")
	}
	if d.RetryAfter != 3*time.Minute {
		t.Fatalf("RetryAfter = %v, want %v", d.RetryAfter, 3*time.Minute)
	}
}

func TestLimiterBlockLapses(t *testing.T) {
	l := New(1, time.Minute, 2*time.Minute)
	now, clock := testClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	l.now = clock

	l.Allow("agent-1")
	if d := l.Allow("agent-1"); d.OK {
		t.Fatal("violation allowed, want rejected")
	}

	*now = now.Add(3 * time.Minute)
	if d := l.Allow("agent-1"); !d.OK {
		t.Fatal("request rejected after block lapsed, want allowed")
	}
}

func TestLimiterIsolatesIdentifiers(t *testing.T) {
	l := New(1, time.Minute, time.Minute)
	_, l.now = testClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	l.Allow("agent-1")
	if d := l.Allow("agent-1"); d.OK {
		t.Fatal("agent-1 over budget allowed, want rejected")
	}
	if d := l.Allow("agent-2"); !d.OK {
		t.Fatal("agent-2 rejected, want allowed")
	}
}

func TestLimiterSweep(t *testing.T) {
	l := New(1, time.Minute, 10*time.Minute)
	now, clock := testClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	l.now = clock

	l.Allow("stale")
	l.Allow("blocked")
	l.Allow("blocked")

	*now = now.Add(2 * time.Minute)
	if evicted := l.Sweep(); evicted != 1 {
		t.Fatalf("evicted = %d, want 1 (block still active)", evicted)
	}
	if d := l.Allow("blocked"); d.OK {
		t.Fatal("blocked identifier allowed after sweep")
	}

	*now = now.Add(15 * time.Minute)
	if evicted := l.Sweep(); evicted != 1 {
		t.Fatalf("evicted = %d, want 1 (block lapsed)", evicted)
	}
	if d := l.Allow("blocked"); !d.OK {
		t.Fatal("identifier rejected after eviction, want fresh allowance")
	}
}
