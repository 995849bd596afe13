package debounce

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestSubmit_DeliversLatestResult(t *testing.T) {
	r := NewRunner[string](2 * time.Millisecond)

	out, ok, err := r.Submit(context.Background(), func(ctx context.Context) (string, error) {
		return "results", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true for sole submission")
	}
	if out != "results" {
		t.Fatalf("expected %q, got %q", "results", out)
	}
}

func TestSubmit_SlowEarlierQueryNeverWins(t *testing.T) {
	// Query "A" resolves only after "AB" has been submitted; the final
	// delivered result must be "AB"'s alone.
	r := NewRunner[string](2 * time.Millisecond)

	release := make(chan struct{})
	var wg sync.WaitGroup
	var aOut string
	var aOK bool

	wg.Add(1)
	go func() {
		defer wg.Done()
		aOut, aOK, _ = r.Submit(context.Background(), func(ctx context.Context) (string, error) {
			select {
			case <-release:
			case <-ctx.Done():
				return "", ctx.Err()
			}
			return "results-for-A", nil
		})
	}()

	// Let "A" clear its quiescence window and get in flight.
	time.Sleep(10 * time.Millisecond)

	abOut, abOK, err := r.Submit(context.Background(), func(ctx context.Context) (string, error) {
		return "results-for-AB", nil
	})
	close(release)
	wg.Wait()

	if err != nil {
		t.Fatalf("unexpected error for AB: %v", err)
	}
	if !abOK || abOut != "results-for-AB" {
		t.Fatalf("expected AB's results delivered, got ok=%v out=%q", abOK, abOut)
	}
	if aOK {
		t.Fatalf("superseded submission A must be discarded, got ok=true out=%q", aOut)
	}
}

func TestSubmit_CancellationIsNotAnError(t *testing.T) {
	r := NewRunner[int](2 * time.Millisecond)

	var wg sync.WaitGroup
	var firstOK bool
	var firstErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstOK, firstErr = r.Submit(context.Background(), func(ctx context.Context) (int, error) {
			<-ctx.Done()
			return 0, ctx.Err()
		})
	}()

	time.Sleep(10 * time.Millisecond)

	_, ok, err := r.Submit(context.Background(), func(ctx context.Context) (int, error) {
		return 42, nil
	})
	wg.Wait()

	if err != nil || !ok {
		t.Fatalf("second submission failed: ok=%v err=%v", ok, err)
	}
	if firstErr != nil {
		t.Fatalf("cancelled submission surfaced an error: %v", firstErr)
	}
	if firstOK {
		t.Fatal("cancelled submission reported ok=true")
	}
}

func TestSubmit_GenuineFailureSurfaces(t *testing.T) {
	r := NewRunner[int](time.Millisecond)
	boom := errors.New("upstream unavailable")

	_, ok, err := r.Submit(context.Background(), func(ctx context.Context) (int, error) {
		return 0, boom
	})
	if !ok {
		t.Fatal("latest submission should report ok=true even on failure")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected genuine failure to surface, got %v", err)
	}
}

func TestCancel_AbortsPendingSubmission(t *testing.T) {
	r := NewRunner[int](20 * time.Millisecond)

	var wg sync.WaitGroup
	var ok bool
	called := false

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, ok, _ = r.Submit(context.Background(), func(ctx context.Context) (int, error) {
			called = true
			return 1, nil
		})
	}()

	time.Sleep(5 * time.Millisecond)
	r.Cancel()
	wg.Wait()

	if ok {
		t.Fatal("cancelled submission reported ok=true")
	}
	if called {
		t.Fatal("cancelled submission issued its request anyway")
	}
}
