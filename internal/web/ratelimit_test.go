package web

import (
	"testing"
	"time"
)

func TestRateLimiter_AllowsUpToRate(t *testing.T) {
	rl := &rateLimiter{visitors: make(map[string]*visitor), rate: 3, window: time.Minute}

	for i := 0; i < 3; i++ {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.allow("10.0.0.1") {
		t.Error("request over the rate should be rejected")
	}
}

func TestRateLimiter_PerIP(t *testing.T) {
	rl := &rateLimiter{visitors: make(map[string]*visitor), rate: 1, window: time.Minute}

	if !rl.allow("10.0.0.1") {
		t.Fatal("first ip should be allowed")
	}
	if !rl.allow("10.0.0.2") {
		t.Error("second ip has its own bucket")
	}
	if rl.allow("10.0.0.1") {
		t.Error("first ip is out of tokens")
	}
}

func TestRateLimiter_WindowReset(t *testing.T) {
	rl := &rateLimiter{visitors: make(map[string]*visitor), rate: 1, window: 10 * time.Millisecond}

	if !rl.allow("10.0.0.1") {
		t.Fatal("first request should be allowed")
	}
	if rl.allow("10.0.0.1") {
		t.Fatal("second request should be rejected inside the window")
	}

	time.Sleep(25 * time.Millisecond)

	if !rl.allow("10.0.0.1") {
		t.Error("tokens should refill after the window passes")
	}
}
