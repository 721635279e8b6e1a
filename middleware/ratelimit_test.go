package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := newRateLimiter(3, time.Hour)

	for i := 0; i < 3; i++ {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.allow("10.0.0.1") {
		t.Error("request over the limit should be rejected")
	}

	// Other clients have their own budget.
	if !rl.allow("10.0.0.2") {
		t.Error("different ip should not share the exhausted budget")
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := newRateLimiter(1, 10*time.Millisecond)

	if !rl.allow("10.0.0.1") {
		t.Fatal("first request should be allowed")
	}
	if rl.allow("10.0.0.1") {
		t.Fatal("second request in the window should be rejected")
	}

	time.Sleep(20 * time.Millisecond)

	if !rl.allow("10.0.0.1") {
		t.Error("request after the window reset should be allowed")
	}
}
