package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type fakePurger struct {
	n   int64
	err error
}

func (f *fakePurger) PurgeExpired() (int64, error) { return f.n, f.err }

func TestPurgeExpiredCodes(t *testing.T) {
	n, err := PurgeExpiredCodes(&fakePurger{n: 3})
	if err != nil || n != 3 {
		t.Errorf("PurgeExpiredCodes() = %d, %v", n, err)
	}
	if _, err := PurgeExpiredCodes(&fakePurger{err: errors.New("locked")}); err == nil {
		t.Error("expected error")
	}
}

func TestRunEvery(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var runs atomic.Int32
	done := make(chan struct{})

	go func() {
		RunEvery(ctx, "test", 5*time.Millisecond, func() error {
			if runs.Add(1) == 3 {
				cancel()
			}
			return errors.New("ignored")
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("RunEvery did not stop after cancel")
	}
	if runs.Load() < 3 {
		t.Errorf("runs = %d, want >= 3", runs.Load())
	}
}
