// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package keylock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestLockerSerializesSameKey(t *testing.T) {
	l := New()

	var inside, maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			unlock, err := l.Lock(context.Background(), "user-1")
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			defer unlock()

			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}

	wg.Wait()

	if maxInside != 1 {
		t.Errorf("expected at most one holder, got %d", maxInside)
	}

	if l.size() != 0 {
		t.Errorf("expected entries to be released, got %d", l.size())
	}
}

func TestLockerDifferentKeysDoNotBlock(t *testing.T) {
	l := New()

	unlockA, err := l.Lock(context.Background(), "user-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	unlockB, err := l.Lock(ctx, "user-b")
	if err != nil {
		t.Fatalf("expected independent key to lock, got %v", err)
	}
	unlockB()
}

func TestLockerContextCancelled(t *testing.T) {
	l := New()

	unlock, err := l.Lock(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := l.Lock(ctx, "user-1"); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}

	unlock()
	// calling twice must not release someone else's lock
	unlock()

	if l.size() != 0 {
		t.Errorf("expected no entries left, got %d", l.size())
	}
}

func TestLockerUnlockIsIdempotent(t *testing.T) {
	l := New()

	unlock, err := l.Lock(context.Background(), "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	unlock()
	unlock()

	if l.size() != 0 {
		t.Fatalf("expected no entries left, got %d", l.size())
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	again, err := l.Lock(ctx, "42")
	if err != nil {
		t.Fatalf("expected the key to be free after unlock, got %v", err)
	}
	again()
}
