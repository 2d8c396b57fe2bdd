package bufferpool

import (
	"context"
	"testing"
	"time"
)

func TestLeaseAllocatesUpToBudget(t *testing.T) {
	p := New(1024, 2)
	ctx := context.Background()

	b1, err := p.Lease(ctx)
	if err != nil {
		t.Fatalf("Lease() error = %v", err)
	}
	if len(b1) != 1024 {
		t.Errorf("len(b1) = %d, want 1024", len(b1))
	}

	b2, err := p.Lease(ctx)
	if err != nil {
		t.Fatalf("Lease() error = %v", err)
	}

	if p.InFlight() != 2 {
		t.Errorf("InFlight() = %d, want 2", p.InFlight())
	}

	p.Release(b1)
	p.Release(b2)

	if p.InFlight() != 0 {
		t.Errorf("InFlight() after release = %d, want 0", p.InFlight())
	}
}

func TestLeaseBlocksWhenExhausted(t *testing.T) {
	p := New(64, 1)
	ctx := context.Background()

	buf, err := p.Lease(ctx)
	if err != nil {
		t.Fatalf("Lease() error = %v", err)
	}

	done := make(chan struct{})
	go func() {
		if _, err := p.Lease(ctx); err != nil {
			t.Errorf("second Lease() error = %v", err)
		}
		close(done)
	}()

	select {
	case <-done:
		t.Fatalf("second Lease() returned before a buffer was released")
	case <-time.After(50 * time.Millisecond):
	}

	p.Release(buf)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("second Lease() did not unblock after release")
	}
}

func TestLeaseCancellation(t *testing.T) {
	p := New(64, 1)
	ctx := context.Background()

	if _, err := p.Lease(ctx); err != nil {
		t.Fatalf("Lease() error = %v", err)
	}

	cctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Lease(cctx); err == nil {
		t.Fatalf("Lease() with cancelled context returned no error")
	}
}

func TestReleaseRejectsWrongSize(t *testing.T) {
	p := New(64, 1)
	p.Release(make([]byte, 32))

	if p.InFlight() != 0 {
		t.Errorf("InFlight() = %d after releasing wrong-size buffer, want 0", p.InFlight())
	}
}
