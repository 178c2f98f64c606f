package realtime

import (
	"testing"
	"time"
)

func TestFailureSchedulesWithinBudget(t *testing.T) {
	fired := make(chan struct{}, 1)
	p := NewReconnectPolicy(ReconnectConfig{MaxAttempts: 5, BaseDelay: time.Millisecond},
		func() { fired <- struct{}{} }, nil, nil)

	if !p.Failure() {
		t.Fatalf("first failure should schedule a retry")
	}
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatalf("scheduled retry never fired")
	}
	if got := p.Attempts(); got != 1 {
		t.Fatalf("attempts = %d, want 1", got)
	}
}

func TestBudgetExhaustionInvokesCallback(t *testing.T) {
	exhausted := 0
	p := NewReconnectPolicy(ReconnectConfig{MaxAttempts: 5, BaseDelay: time.Hour},
		func() {}, func() { exhausted++ }, nil)

	for i := 0; i < 5; i++ {
		if !p.Failure() {
			t.Fatalf("failure %d should have scheduled a retry", i+1)
		}
	}
	if p.Failure() {
		t.Fatalf("sixth failure must not schedule")
	}
	if exhausted != 1 {
		t.Fatalf("onExhausted calls = %d, want 1", exhausted)
	}
	// Still exhausted, callback fires again to surface the state.
	if p.Failure() {
		t.Fatalf("failure after exhaustion must not schedule")
	}
}

func TestResetRestoresBudget(t *testing.T) {
	p := NewReconnectPolicy(ReconnectConfig{MaxAttempts: 2, BaseDelay: time.Hour},
		func() {}, nil, nil)

	p.Failure()
	p.Failure()
	if p.Failure() {
		t.Fatalf("budget of 2 should be spent")
	}

	p.Reset()
	if got := p.Attempts(); got != 0 {
		t.Fatalf("attempts = %d after reset, want 0", got)
	}
	if !p.Failure() {
		t.Fatalf("failure after reset should schedule again")
	}
}

func TestStopCancelsPendingRetry(t *testing.T) {
	fired := make(chan struct{}, 1)
	p := NewReconnectPolicy(ReconnectConfig{MaxAttempts: 5, BaseDelay: 10 * time.Millisecond},
		func() { fired <- struct{}{} }, nil, nil)

	p.Failure()
	p.Stop()

	select {
	case <-fired:
		t.Fatalf("retry fired after Stop")
	case <-time.After(50 * time.Millisecond):
	}

	if p.Failure() {
		t.Fatalf("stopped policy must not schedule")
	}
}

func TestBackoffDoubles(t *testing.T) {
	p := NewReconnectPolicy(ReconnectConfig{MaxAttempts: 3, BaseDelay: time.Second},
		func() {}, nil, nil)
	defer p.Stop()

	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}
	for i, w := range want {
		p.Failure()
		got := p.baseDelay << (p.Attempts() - 1)
		if got != w {
			t.Fatalf("attempt %d delay = %v, want %v", i+1, got, w)
		}
	}
}
