package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_Allow(t *testing.T) {
	limiter := New(Config{
		RequestsPerMinute: 3,
	})

	userID := "tg:12345"

	for i := 0; i < 3; i++ {
		if !limiter.Allow(userID) {
			t.Errorf("Request %d should be allowed", i+1)
		}
	}

	if limiter.Allow(userID) {
		t.Error("Fourth request should be blocked due to rate limit")
	}
}

func TestLimiter_DifferentUsers(t *testing.T) {
	limiter := New(Config{
		RequestsPerMinute: 1,
	})

	user1 := "tg:111"
	user2 := "ip:10.0.0.2"

	if !limiter.Allow(user1) {
		t.Error("User1 first request should be allowed")
	}

	if !limiter.Allow(user2) {
		t.Error("User2 first request should be allowed")
	}

	if limiter.Allow(user1) {
		t.Error("User1 second request should be blocked")
	}

	if limiter.Allow(user2) {
		t.Error("User2 second request should be blocked")
	}
}

func TestLimiter_RemainingRequests(t *testing.T) {
	limiter := New(Config{
		RequestsPerMinute: 5,
	})

	userID := "tg:12345"

	if remaining := limiter.RemainingRequests(userID); remaining != 5 {
		t.Errorf("RemainingRequests() = %d, want 5", remaining)
	}

	limiter.Allow(userID)
	limiter.Allow(userID)
	limiter.Allow(userID)

	if remaining := limiter.RemainingRequests(userID); remaining != 2 {
		t.Errorf("RemainingRequests() = %d, want 2", remaining)
	}

	limiter.Allow(userID)
	limiter.Allow(userID)

	if remaining := limiter.RemainingRequests(userID); remaining != 0 {
		t.Errorf("RemainingRequests() = %d, want 0", remaining)
	}
}

func TestLimiter_ResetTime(t *testing.T) {
	limiter := New(Config{
		RequestsPerMinute: 1,
	})

	userID := "tg:12345"

	before := time.Now()
	limiter.Allow(userID)

	resetTime := limiter.ResetTime(userID)

	expectedReset := before.Add(time.Minute)
	tolerance := 2 * time.Second

	if resetTime.Before(expectedReset.Add(-tolerance)) || resetTime.After(expectedReset.Add(tolerance)) {
		t.Errorf("ResetTime() = %v, expected around %v", resetTime, expectedReset)
	}
}

func TestLimiter_DefaultConfig(t *testing.T) {
	limiter := New(Config{
		RequestsPerMinute: 0,
	})

	userID := "tg:12345"

	for i := 0; i < 10; i++ {
		if !limiter.Allow(userID) {
			t.Errorf("Request %d should be allowed with default config", i+1)
		}
	}

	// 11th should be blocked
	if limiter.Allow(userID) {
		t.Error("11th request should be blocked")
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := New(Config{
		RequestsPerMinute: 100,
	})

	done := make(chan bool)
	userID := "tg:12345"

	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 20; j++ {
				limiter.Allow(userID)
			}
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}

	remaining := limiter.RemainingRequests(userID)
	if remaining != 0 {
		t.Errorf("RemainingRequests() = %d, want 0 after concurrent access", remaining)
	}
}

func TestLimiter_WindowSlides(t *testing.T) {
	limiter := New(Config{RequestsPerMinute: 1})
	now := time.Now()
	limiter.now = func() time.Time { return now }

	if !limiter.Allow("k") {
		t.Fatal("first request should be allowed")
	}
	if limiter.Allow("k") {
		t.Fatal("second request inside window should be blocked")
	}

	now = now.Add(time.Minute + time.Second)
	if !limiter.Allow("k") {
		t.Error("request after window should be allowed")
	}
}

func TestLimiter_Cleanup(t *testing.T) {
	limiter := New(Config{RequestsPerMinute: 5})
	now := time.Now()
	limiter.now = func() time.Time { return now }

	limiter.Allow("old")
	now = now.Add(2 * time.Minute)
	limiter.Allow("new")

	limiter.cleanup()

	if got := limiter.size(); got != 1 {
		t.Errorf("size after cleanup = %d, want 1", got)
	}
}

func TestLimiter_RunStopsWithContext(t *testing.T) {
	limiter := New(Config{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		limiter.Run(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after context cancel")
	}
}
